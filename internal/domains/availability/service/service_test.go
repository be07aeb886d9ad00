package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"sheen/config"
	"sheen/infras/otel/mocks"
	availabilityMocks "sheen/internal/domains/availability/mocks"
	"sheen/internal/domains/availability/model"
	"sheen/internal/domains/availability/model/dto"
	"sheen/internal/domains/availability/service"
	cacheMocks "sheen/shared/cache/mocks"
	"sheen/shared/failure"
)

const testCleanerID = "7a8d5f10-4f2b-4a77-9a64-2b0cf6f1d9be"

func newAvailabilityService(t *testing.T) (service.Availability, *availabilityMocks.MockAvailability, *cacheMocks.MockRedisCache) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := availabilityMocks.NewMockAvailability(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, cfg, mockCache, mocks.NewOtel())

	return svc, mockRepo, mockCache
}

func TestAvailabilityService_Save(t *testing.T) {
	req := dto.SavePreferencesRequest{
		PreferredDays:                  []int64{1, 3, 5},
		AutoDeclineOutsideAvailability: true,
	}

	t.Run("first save inserts", func(t *testing.T) {
		svc, mockRepo, _ := newAvailabilityService(t)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(nil)

		assert.NoError(t, svc.Save(context.Background(), req, testCleanerID))
	})

	t.Run("second save updates in place", func(t *testing.T) {
		svc, mockRepo, _ := newAvailabilityService(t)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		assert.NoError(t, svc.Save(context.Background(), req, testCleanerID))
	})

	t.Run("repository error propagates", func(t *testing.T) {
		svc, mockRepo, _ := newAvailabilityService(t)

		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, errors.New("database error"))

		assert.Error(t, svc.Save(context.Background(), req, testCleanerID))
	})
}

func TestAvailabilityService_ForCleaner(t *testing.T) {
	t.Run("missing preferences means no restriction", func(t *testing.T) {
		svc, mockRepo, _ := newAvailabilityService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Preferences{}, nil)

		prefs, slots, err := svc.ForCleaner(context.Background(), testCleanerID)

		assert.NoError(t, err)
		assert.Nil(t, prefs)
		assert.Nil(t, slots)
	})

	t.Run("saved preferences come back with slots", func(t *testing.T) {
		svc, mockRepo, _ := newAvailabilityService(t)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Preferences{ID: "pref-1", CleanerID: testCleanerID}, nil)
		mockRepo.EXPECT().
			GetSlots(gomock.Any(), testCleanerID).
			Return([]model.BlockedSlot{{ID: "slot-1", SlotDate: "2026-09-21"}}, nil)

		prefs, slots, err := svc.ForCleaner(context.Background(), testCleanerID)

		assert.NoError(t, err)
		assert.NotNil(t, prefs)
		assert.Len(t, slots, 1)
	})
}

func TestAvailabilityService_Get(t *testing.T) {
	t.Run("cache miss falls through to repository", func(t *testing.T) {
		svc, mockRepo, mockCache := newAvailabilityService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Preferences{ID: "pref-1", CleanerID: testCleanerID}, nil)
		mockRepo.EXPECT().
			GetSlots(gomock.Any(), testCleanerID).
			Return(nil, nil)

		res, err := svc.Get(context.Background(), testCleanerID)

		assert.NoError(t, err)
		assert.Empty(t, res.BlockedSlots)
	})

	t.Run("nothing saved reports not found", func(t *testing.T) {
		svc, mockRepo, mockCache := newAvailabilityService(t)

		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Preferences{}, nil)

		_, err := svc.Get(context.Background(), testCleanerID)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
