package service

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"

	"sheen/config"
	"sheen/infras/otel"
	"sheen/internal/domains/availability/model"
	"sheen/internal/domains/availability/model/dto"
	"sheen/internal/domains/availability/repository"
	"sheen/shared"
	"sheen/shared/cache"
	"sheen/shared/constant"
	"sheen/shared/failure"
	"sheen/shared/timezone"
)

const (
	cacheGetPreferences = "availability:get"
)

type Availability interface {
	Get(ctx context.Context, cleanerID string) (dto.PreferencesResponse, error)
	Save(ctx context.Context, req dto.SavePreferencesRequest, cleanerID string) error
	AddBlockedSlot(ctx context.Context, req dto.AddBlockedSlotRequest, cleanerID string) error
	RemoveBlockedSlot(ctx context.Context, slotID, cleanerID string) error

	// ForCleaner is the read the job-listing and claim paths use. A nil
	// Preferences means the cleaner never saved any, which allows all jobs.
	ForCleaner(ctx context.Context, cleanerID string) (*model.Preferences, []model.BlockedSlot, error)
}

type serviceImpl struct {
	repo  repository.Availability
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Availability, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Availability {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Get(ctx context.Context, cleanerID string) (res dto.PreferencesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetPreferences, cleanerID)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for availability preferences")

		return res, nil
	}

	prefs, slots, err := s.ForCleaner(ctx, cleanerID)
	if err != nil {
		return res, err
	}

	if prefs == nil {
		return res, failure.NotFound("availability preferences not found") //nolint:wrapcheck
	}

	res.FromModel(*prefs, slots)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save availability preferences to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Save(ctx context.Context, req dto.SavePreferencesRequest, cleanerID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Save")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(cleanerID, model.FieldCleanerID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if availability preferences exist")

		return fmt.Errorf("failed to check if availability preferences exist: %w", err)
	}

	if exist {
		updated := map[string]any{
			model.FieldPreferredStartTime:    req.PreferredStartTime,
			model.FieldPreferredEndTime:      req.PreferredEndTime,
			model.FieldPreferredDays:         pq.Int64Array(req.PreferredDays),
			model.FieldBlockedDates:          pq.StringArray(req.BlockedDates),
			model.FieldAutoDeclineOutside:    req.AutoDeclineOutsideAvailability,
			model.FieldAutoDeclineBelowMin:   req.AutoDeclineBelowMinValue,
			model.FieldMinBookingValueCents:  req.MinBookingValueCents,
			model.FieldPreferredServiceTypes: pq.StringArray(req.PreferredServiceTypes),
			model.FieldMaxTravelDistanceKm:   req.MaxTravelDistanceKm,
			constant.FieldModifiedAt:         timezone.Now(),
			constant.FieldModifiedBy:         cleanerID,
		}

		if err = s.repo.Update(ctx, updated, filter); err != nil {
			log.Error().Err(err).Msg("failed to update availability preferences")

			return fmt.Errorf("failed to update availability preferences: %w", err)
		}
	} else {
		if err = s.repo.Insert(ctx, req.ToModel(cleanerID)); err != nil {
			log.Error().Err(err).Msg("failed to create availability preferences")

			return fmt.Errorf("failed to create availability preferences: %w", err)
		}
	}

	s.invalidate(ctx, cleanerID)

	return nil
}

func (s *serviceImpl) AddBlockedSlot(ctx context.Context, req dto.AddBlockedSlotRequest, cleanerID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddBlockedSlot")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.repo.InsertSlot(ctx, req.ToModel(cleanerID)); err != nil {
		log.Error().Err(err).Msg("failed to add blocked slot")

		return fmt.Errorf("failed to add blocked slot: %w", err)
	}

	s.invalidate(ctx, cleanerID)

	return nil
}

func (s *serviceImpl) RemoveBlockedSlot(ctx context.Context, slotID, cleanerID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RemoveBlockedSlot")
	defer scope.End()
	defer scope.TraceIfError(err)

	if err = s.repo.DeleteSlot(ctx, slotID, cleanerID); err != nil {
		log.Error().Err(err).Msg("failed to remove blocked slot")

		return fmt.Errorf("failed to remove blocked slot: %w", err)
	}

	s.invalidate(ctx, cleanerID)

	return nil
}

func (s *serviceImpl) ForCleaner(ctx context.Context, cleanerID string) (*model.Preferences, []model.BlockedSlot, error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ForCleaner")
	defer scope.End()

	prefs, err := s.repo.Get(ctx, shared.FilterByID(cleanerID, model.FieldCleanerID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get availability preferences")

		return nil, nil, fmt.Errorf("failed to get availability preferences: %w", err)
	}

	if prefs.ID == constant.Empty {
		return nil, nil, nil
	}

	slots, err := s.repo.GetSlots(ctx, cleanerID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get blocked slots")

		return nil, nil, fmt.Errorf("failed to get blocked slots: %w", err)
	}

	return &prefs, slots, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, cleanerID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPreferences, cleanerID)); err != nil {
			log.Error().Err(err).Msg("failed to delete availability preferences from cache")
		}
	}()
}
