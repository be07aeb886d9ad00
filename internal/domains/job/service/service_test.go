package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"sheen/config"
	"sheen/infras/otel/mocks"
	availabilityModel "sheen/internal/domains/availability/model"
	availabilityMocks "sheen/internal/domains/availability/service/mocks"
	jobMocks "sheen/internal/domains/job/mocks"
	"sheen/internal/domains/job/model"
	"sheen/internal/domains/job/model/dto"
	"sheen/internal/domains/job/service"
	cacheMocks "sheen/shared/cache/mocks"
	"sheen/shared/constant"
	eventMocks "sheen/shared/event/mocks"
	"sheen/shared/failure"
)

const (
	testJobID     = "0f1e7c2a-33c8-4e06-9d19-6c06dfbe28a1"
	testCleanerID = "7a8d5f10-4f2b-4a77-9a64-2b0cf6f1d9be"
)

func newJobService(t *testing.T) (service.Job, *jobMocks.MockJob, *availabilityMocks.MockAvailability, *cacheMocks.MockRedisCache, *eventMocks.MockPublisher) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := jobMocks.NewMockJob(ctrl)
	mockAvailability := availabilityMocks.NewMockAvailability(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockEvents := eventMocks.NewMockPublisher(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	// Cache writes, invalidations and event publishes run on detached
	// goroutines; the tests only pin down the synchronous calls.
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockEvents.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockAvailability, cfg, mockCache, mockOtel, mockEvents)

	return svc, mockRepo, mockAvailability, mockCache, mockEvents
}

func pendingJob() model.Job {
	return model.Job{
		ID:               testJobID,
		CustomerID:       "customer-1",
		CustomerName:     "Jane Smith",
		ServiceType:      "deep",
		BookingDate:      time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC),
		BookingTime:      "10:00",
		Address:          "12 Main St",
		Status:           model.StatusPending,
		TotalAmountCents: 12000,
	}
}

func TestJobService_Claim(t *testing.T) {
	t.Run("successful claim", func(t *testing.T) {
		svc, mockRepo, _, _, _ := newJobService(t)

		claimed := pendingJob()
		claimed.Status = model.StatusAccepted
		claimed.CleanerID = strPtr(testCleanerID)

		mockRepo.EXPECT().
			Claim(gomock.Any(), testJobID, testCleanerID, gomock.Any()).
			Return(int64(1), nil)
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(claimed, nil)

		res, err := svc.Claim(context.Background(), testJobID, testCleanerID)

		assert.NoError(t, err)
		assert.Equal(t, string(model.StatusAccepted), res.Status)
		assert.Equal(t, testCleanerID, *res.CleanerID)
	})

	t.Run("lost race reports conflict", func(t *testing.T) {
		svc, mockRepo, _, _, _ := newJobService(t)

		taken := pendingJob()
		taken.Status = model.StatusAccepted
		taken.CleanerID = strPtr("someone-else")

		mockRepo.EXPECT().
			Claim(gomock.Any(), testJobID, testCleanerID, gomock.Any()).
			Return(int64(0), nil)
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(taken, nil)

		_, err := svc.Claim(context.Background(), testJobID, testCleanerID)

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("unknown job reports not found", func(t *testing.T) {
		svc, mockRepo, _, _, _ := newJobService(t)

		mockRepo.EXPECT().
			Claim(gomock.Any(), testJobID, testCleanerID, gomock.Any()).
			Return(int64(0), nil)
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Job{}, nil)

		_, err := svc.Claim(context.Background(), testJobID, testCleanerID)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("team job is never claimable", func(t *testing.T) {
		svc, mockRepo, _, _, _ := newJobService(t)

		teamJob := pendingJob()
		teamJob.RequiresTeam = true

		mockRepo.EXPECT().
			Claim(gomock.Any(), testJobID, testCleanerID, gomock.Any()).
			Return(int64(0), nil)
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(teamJob, nil)

		_, err := svc.Claim(context.Background(), testJobID, testCleanerID)

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Contains(t, err.Error(), "team")
	})

	t.Run("declined job reports not pending", func(t *testing.T) {
		svc, mockRepo, _, _, _ := newJobService(t)

		declined := pendingJob()
		declined.Status = model.StatusDeclined

		mockRepo.EXPECT().
			Claim(gomock.Any(), testJobID, testCleanerID, gomock.Any()).
			Return(int64(0), nil)
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(declined, nil)

		_, err := svc.Claim(context.Background(), testJobID, testCleanerID)

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
		assert.Contains(t, err.Error(), "no longer pending")
	})

	t.Run("repository error propagates", func(t *testing.T) {
		svc, mockRepo, _, _, _ := newJobService(t)

		mockRepo.EXPECT().
			Claim(gomock.Any(), testJobID, testCleanerID, gomock.Any()).
			Return(int64(0), errors.New("database error"))

		_, err := svc.Claim(context.Background(), testJobID, testCleanerID)

		assert.Error(t, err)
	})
}

func TestJobService_Available(t *testing.T) {
	t.Run("filters jobs through availability rules", func(t *testing.T) {
		svc, mockRepo, mockAvailability, _, _ := newJobService(t)

		allowedJob := pendingJob()

		blockedJob := pendingJob()
		blockedJob.ID = "blocked-job"
		blockedJob.BookingDate = time.Date(2026, 9, 21, 0, 0, 0, 0, time.UTC)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Job{allowedJob, blockedJob}, nil)

		prefs := &availabilityModel.Preferences{
			CleanerID:    testCleanerID,
			BlockedDates: pq.StringArray{"2026-09-21"},
		}
		mockAvailability.EXPECT().
			ForCleaner(gomock.Any(), testCleanerID).
			Return(prefs, nil, nil)

		res, err := svc.Available(context.Background(), testCleanerID, "")

		assert.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)
		assert.Equal(t, testJobID, res.Jobs[0].ID)
	})

	t.Run("no preferences allows everything", func(t *testing.T) {
		svc, mockRepo, mockAvailability, _, _ := newJobService(t)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Job{pendingJob()}, nil)
		mockAvailability.EXPECT().
			ForCleaner(gomock.Any(), testCleanerID).
			Return(nil, nil, nil)

		res, err := svc.Available(context.Background(), testCleanerID, "")

		assert.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)
	})
}

func TestJobService_UpdateStatus(t *testing.T) {
	t.Run("forward transition succeeds", func(t *testing.T) {
		svc, mockRepo, _, _, _ := newJobService(t)

		mockRepo.EXPECT().
			UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(int64(1), nil)

		err := svc.UpdateStatus(context.Background(), dto.UpdateStatusRequest{Status: "on_my_way"}, testJobID, testCleanerID)

		assert.NoError(t, err)
	})

	t.Run("direct jump is rejected", func(t *testing.T) {
		svc, _, _, _, _ := newJobService(t)

		err := svc.UpdateStatus(context.Background(), dto.UpdateStatusRequest{Status: "accepted"}, testJobID, testCleanerID)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("wrong cleaner is forbidden", func(t *testing.T) {
		svc, mockRepo, _, _, _ := newJobService(t)

		job := pendingJob()
		job.Status = model.StatusAccepted
		job.CleanerID = strPtr("someone-else")

		mockRepo.EXPECT().
			UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(int64(0), nil)
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(job, nil)

		err := svc.UpdateStatus(context.Background(), dto.UpdateStatusRequest{Status: "on_my_way"}, testJobID, testCleanerID)

		assert.Error(t, err)
		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("out of order transition reports conflict", func(t *testing.T) {
		svc, mockRepo, _, _, _ := newJobService(t)

		job := pendingJob()
		job.Status = model.StatusAccepted
		job.CleanerID = strPtr(testCleanerID)

		mockRepo.EXPECT().
			UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(int64(0), nil)
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(job, nil)

		err := svc.UpdateStatus(context.Background(), dto.UpdateStatusRequest{Status: "in_progress"}, testJobID, testCleanerID)

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestJobService_Cancel(t *testing.T) {
	t.Run("pending job cancels", func(t *testing.T) {
		svc, mockRepo, _, _, _ := newJobService(t)

		mockRepo.EXPECT().
			UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(int64(1), nil)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
		err := svc.Cancel(ctx, testJobID)

		assert.NoError(t, err)
	})

	t.Run("completed job cannot be cancelled", func(t *testing.T) {
		svc, mockRepo, _, _, _ := newJobService(t)

		job := pendingJob()
		job.Status = model.StatusCompleted

		mockRepo.EXPECT().
			UpdateCount(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(int64(0), nil)
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(job, nil)

		ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
		err := svc.Cancel(ctx, testJobID)

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestJobService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateJobRequest
		setupMock func(mockRepo *jobMocks.MockJob)
		wantErr   bool
	}{
		{
			name: "successful creation",
			req: dto.CreateJobRequest{
				CustomerID:       "customer-1",
				CustomerName:     "Jane Smith",
				ServiceType:      "standard",
				BookingDate:      "2026-09-14",
				BookingTime:      "10:00",
				Address:          "12 Main St",
				TotalAmountCents: 12000,
			},
			setupMock: func(mockRepo *jobMocks.MockJob) {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "repository error",
			req: dto.CreateJobRequest{
				CustomerID:       "customer-1",
				CustomerName:     "Jane Smith",
				ServiceType:      "standard",
				BookingDate:      "2026-09-14",
				BookingTime:      "10:00",
				Address:          "12 Main St",
				TotalAmountCents: 12000,
			},
			setupMock: func(mockRepo *jobMocks.MockJob) {
				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
		{
			name: "invalid booking date",
			req: dto.CreateJobRequest{
				CustomerID:       "customer-1",
				CustomerName:     "Jane Smith",
				ServiceType:      "standard",
				BookingDate:      "14-09-2026",
				BookingTime:      "10:00",
				Address:          "12 Main St",
				TotalAmountCents: 12000,
			},
			setupMock: func(*jobMocks.MockJob) {},
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _, _, _ := newJobService(t)
			tt.setupMock(mockRepo)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func strPtr(s string) *string {
	return &s
}
