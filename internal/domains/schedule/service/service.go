package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"sheen/config"
	"sheen/infras/otel"
	jobModel "sheen/internal/domains/job/model"
	jobRepo "sheen/internal/domains/job/repository"
	"sheen/internal/domains/schedule/model"
	"sheen/internal/domains/schedule/model/dto"
	"sheen/internal/domains/schedule/occurrence"
	"sheen/internal/domains/schedule/repository"
	userModel "sheen/internal/domains/user/model"
	userRepo "sheen/internal/domains/user/repository"
	"sheen/shared"
	"sheen/shared/cache"
	"sheen/shared/constant"
	gDto "sheen/shared/dto"
	"sheen/shared/event"
	"sheen/shared/failure"
	gModel "sheen/shared/model"
	"sheen/shared/timezone"
)

const (
	cacheGetSchedule    = "schedule:get"
	cacheGetAllSchedule = "schedule:gets"
	cacheCountSchedule  = "schedule:count"
)

type Schedule interface {
	Create(ctx context.Context, req dto.CreateScheduleRequest) error
	Get(ctx context.Context, id string) (dto.ScheduleResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetSchedulesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req dto.UpdateScheduleRequest, id string) error
	Delete(ctx context.Context, id string) error
	Upcoming(ctx context.Context, id string, horizonMonths int) (dto.UpcomingDatesResponse, error)
	BulkAction(ctx context.Context, req dto.BulkActionRequest, id, actorID, actorRole string) (dto.BulkActionResponse, error)
	GenerateMonth(ctx context.Context, year int, month time.Month) (dto.GenerateMonthResponse, error)
}

type serviceImpl struct {
	repo     repository.Schedule
	jobRepo  jobRepo.Job
	userRepo userRepo.User
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
	events   event.Publisher
}

func New(repo repository.Schedule, jobs jobRepo.Job, users userRepo.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, events event.Publisher) Schedule {
	return &serviceImpl{
		repo:     repo,
		jobRepo:  jobs,
		userRepo: users,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
		events:   events,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateScheduleRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	customerExists, err := s.userRepo.Exist(ctx, shared.FilterByID(req.CustomerID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if customer exists")

		return fmt.Errorf("failed to check if customer exists: %w", err)
	}

	if !customerExists {
		return failure.BadRequestFromString("customer does not exist") //nolint:wrapcheck
	}

	sched, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse schedule request")

		return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) //nolint:wrapcheck
	}

	// Reject frequency/day-field mismatches before they reach storage.
	if _, err = occurrence.ForMonth(sched, sched.StartDate.Year(), sched.StartDate.Month()); err != nil {
		return err
	}

	if err = s.repo.Insert(ctx, sched); err != nil {
		log.Error().Err(err).Msg("failed to create schedule")

		return fmt.Errorf("failed to create schedule: %w", err)
	}

	s.invalidateLists(ctx)

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ScheduleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetSchedule, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for schedule")

		return res, nil
	}

	sched, err := s.getSchedule(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(sched)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save schedule to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetSchedulesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllSchedule, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for schedules")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count schedules")

		return res, fmt.Errorf("failed to count schedules: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get schedules")

		return res, fmt.Errorf("failed to get schedules: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save schedules to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountSchedule, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count schedules")

		return res, fmt.Errorf("failed to count schedules: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save schedule count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateScheduleRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req.Empty() {
		return failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	sched, err := s.getSchedule(ctx, id)
	if err != nil {
		return err
	}

	// Frequency edits must keep the day fields coherent, so the merged
	// schedule goes through the same expansion check as Create.
	if req.ChangesRecurrence() {
		if req.Frequency != "" {
			sched.Frequency = model.Frequency(req.Frequency)
		}

		if req.DayOfWeek != nil {
			sched.DayOfWeek = req.DayOfWeek
		}

		if req.DayOfMonth != nil {
			sched.DayOfMonth = req.DayOfMonth
		}

		if len(req.DaysOfWeek) > 0 {
			sched.DaysOfWeek = req.DaysOfWeek
		}

		if _, err = occurrence.ForMonth(sched, sched.StartDate.Year(), sched.StartDate.Month()); err != nil {
			return err
		}
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update schedule")

		return fmt.Errorf("failed to update schedule: %w", err)
	}

	s.invalidateSchedule(ctx, id)

	return nil
}

// Delete deactivates the schedule and cascades a cancellation over its
// pending future bookings. The schedule row itself stays for audit.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if schedule exists")

		return fmt.Errorf("failed to check if schedule exists: %w", err)
	}

	if !exist {
		return failure.NotFound("schedule not found") //nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, map[string]any{
		model.FieldIsActive:      false,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}, filter); err != nil {
		log.Error().Err(err).Msg("failed to deactivate schedule")

		return fmt.Errorf("failed to deactivate schedule: %w", err)
	}

	cancelled, err := s.jobRepo.UpdateCount(ctx, map[string]any{
		jobModel.FieldStatus:     string(jobModel.StatusCancelled),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    jobModel.FieldRecurringScheduleID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    jobModel.TableName,
			},
			gDto.Filter{
				ArgName:  "expected_status",
				Field:    jobModel.FieldStatus,
				Operator: gDto.FilterOperatorIn,
				Value:    []string{string(jobModel.StatusPending), string(jobModel.StatusAccepted)},
				Table:    jobModel.TableName,
			},
			gDto.Filter{
				ArgName:  "future_date",
				Field:    jobModel.FieldBookingDate,
				Operator: gDto.FilterOperatorGreaterEq,
				Value:    timezone.Now().Format("2006-01-02"),
				Table:    jobModel.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to cancel bookings for deleted schedule")

		return fmt.Errorf("failed to cancel bookings for deleted schedule: %w", err)
	}

	log.Info().Str("scheduleID", id).Int64("cancelled", cancelled).Msg("schedule deleted, future bookings cancelled")

	s.invalidateSchedule(ctx, id)

	return nil
}

func (s *serviceImpl) Upcoming(ctx context.Context, id string, horizonMonths int) (res dto.UpcomingDatesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upcoming")
	defer scope.End()
	defer scope.TraceIfError(err)

	sched, err := s.getSchedule(ctx, id)
	if err != nil {
		return res, err
	}

	dates, err := occurrence.Upcoming(sched, timezone.Now(), horizonMonths)
	if err != nil {
		return res, err
	}

	res.FromDates(sched.ID, sched.PreferredTime, dates)

	return res, nil
}

// BulkAction applies one lifecycle action across a schedule and its
// bookings. Ownership comes first: only the assigned cleaner (or an
// admin) may act, and a mismatch is a denial rather than a silent no-op.
func (s *serviceImpl) BulkAction(ctx context.Context, req dto.BulkActionRequest, id, actorID, actorRole string) (res dto.BulkActionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BulkAction")
	defer scope.End()
	defer scope.TraceIfError(err)

	sched, err := s.getSchedule(ctx, id)
	if err != nil {
		return res, err
	}

	cleanerID := actorID

	if actorRole == constant.RoleAdmin {
		if sched.CleanerID == nil {
			return res, failure.Conflict("schedule has no assigned cleaner") //nolint:wrapcheck
		}

		cleanerID = *sched.CleanerID
	} else if sched.CleanerID == nil || *sched.CleanerID != actorID {
		return res, failure.Forbidden("schedule is not assigned to you") //nolint:wrapcheck
	}

	res.Action = req.Action

	switch req.Action {
	case dto.BulkActionAcceptAll:
		res.Affected, err = s.bulkStatus(ctx, id, cleanerID, actorID, jobModel.StatusAccepted)
	case dto.BulkActionDeclineAll:
		res.Affected, err = s.bulkStatus(ctx, id, cleanerID, actorID, jobModel.StatusDeclined)
	case dto.BulkActionPause:
		res.Affected, err = s.setActive(ctx, id, actorID, false)
	case dto.BulkActionResume:
		res.Affected, err = s.setActive(ctx, id, actorID, true)
	default:
		return res, failure.BadRequestFromString(fmt.Sprintf("unknown bulk action: %s", req.Action)) //nolint:wrapcheck
	}

	if err != nil {
		return res, err
	}

	s.invalidateSchedule(ctx, id)

	go func() {
		c := context.WithoutCancel(ctx)

		name := event.NameScheduleBulk
		if req.Action == dto.BulkActionPause {
			name = event.NameSchedulePaused
		}

		if err := s.events.Publish(c, event.Notification{
			Name:       name,
			ScheduleID: id,
			CleanerID:  cleanerID,
			CustomerID: sched.CustomerID,
			Action:     req.Action,
			Affected:   res.Affected,
		}); err != nil {
			log.Error().Err(err).Msg("failed to publish bulk action event")
		}
	}()

	return res, nil
}

// bulkStatus moves every pending booking of (schedule, cleaner) to the
// target status in one conditional multi-row update. Zero affected rows
// is a valid outcome the caller reports, not an error.
func (s *serviceImpl) bulkStatus(ctx context.Context, scheduleID, cleanerID, actor string, target jobModel.Status) (int64, error) {
	mod := map[string]any{
		jobModel.FieldStatus:     string(target),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}

	if target == jobModel.StatusAccepted {
		mod[jobModel.FieldCleanerID] = cleanerID
		mod[jobModel.FieldAcceptedAt] = timezone.Now()
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    jobModel.FieldRecurringScheduleID,
				Operator: gDto.FilterOperatorEq,
				Value:    scheduleID,
				Table:    jobModel.TableName,
			},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorOr,
				Filters: []any{
					gDto.Filter{
						ArgName:  "expected_cleaner",
						Field:    jobModel.FieldCleanerID,
						Operator: gDto.FilterOperatorEq,
						Value:    cleanerID,
						Table:    jobModel.TableName,
					},
					gDto.Filter{
						Field:    jobModel.FieldCleanerID,
						Operator: gDto.FilterIsNull,
						Table:    jobModel.TableName,
					},
				},
			},
			gDto.Filter{
				ArgName:  "expected_status",
				Field:    jobModel.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    string(jobModel.StatusPending),
				Table:    jobModel.TableName,
			},
		},
	}

	affected, err := s.jobRepo.UpdateCount(ctx, mod, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to apply bulk status update")

		return 0, fmt.Errorf("failed to apply bulk status update: %w", err)
	}

	return affected, nil
}

// setActive flips generation on or off. Pausing never touches bookings
// that already exist; it only stops future materialization.
func (s *serviceImpl) setActive(ctx context.Context, scheduleID, actor string, active bool) (int64, error) {
	err := s.repo.Update(ctx, map[string]any{
		model.FieldIsActive:      active,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: actor,
	}, shared.FilterByID(scheduleID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to toggle schedule active flag")

		return 0, fmt.Errorf("failed to toggle schedule active flag: %w", err)
	}

	return 1, nil
}

// GenerateMonth materializes bookings for every active schedule for
// (year, month). Each schedule is first claimed through the generation
// marker, so reruns and overlapping triggers cannot double-book a month.
func (s *serviceImpl) GenerateMonth(ctx context.Context, year int, month time.Month) (res dto.GenerateMonthResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GenerateMonth")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	marker := fmt.Sprintf("%04d-%02d", year, month)
	res.Month = marker

	schedules, err := s.repo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldIsActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.TableName,
			},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to list active schedules")

		return res, fmt.Errorf("failed to list active schedules: %w", err)
	}

	for _, sched := range schedules {
		claimed, err := s.repo.MarkGenerated(ctx, sched.ID, marker, user)
		if err != nil {
			log.Error().Err(err).Str("scheduleID", sched.ID).Msg("failed to claim schedule for generation")

			return res, fmt.Errorf("failed to claim schedule for generation: %w", err)
		}

		if claimed == 0 {
			continue
		}

		created, err := s.materialize(ctx, sched, year, month, user)
		if err != nil {
			return res, err
		}

		res.SchedulesProcessed++
		res.BookingsCreated += created
	}

	log.Info().
		Str("month", marker).
		Int("schedules", res.SchedulesProcessed).
		Int("bookings", res.BookingsCreated).
		Msg("monthly occurrence generation completed")

	return res, nil
}

func (s *serviceImpl) materialize(ctx context.Context, sched model.Schedule, year int, month time.Month, actor string) (int, error) {
	dates, err := occurrence.ForMonth(sched, year, month)
	if err != nil {
		log.Error().Err(err).Str("scheduleID", sched.ID).Msg("occurrence expansion failed")

		return 0, err
	}

	if len(dates) == 0 {
		return 0, nil
	}

	customer, err := s.userRepo.Get(ctx, shared.FilterByID(sched.CustomerID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer for schedule")

		return 0, fmt.Errorf("failed to get customer for schedule: %w", err)
	}

	customerName := constant.Empty
	if customer.FullName != nil {
		customerName = *customer.FullName
	}

	customerPhone := constant.Empty
	if customer.Phone != nil {
		customerPhone = *customer.Phone
	}

	jobs := make([]jobModel.Job, len(dates))
	for i, date := range dates {
		scheduleID := sched.ID

		jobs[i] = jobModel.Job{
			ID:                   uuid.NewString(),
			RecurringScheduleID:  &scheduleID,
			CustomerID:           sched.CustomerID,
			CustomerName:         customerName,
			CustomerPhone:        customerPhone,
			ServiceType:          sched.ServiceType,
			BookingDate:          date,
			BookingTime:          sched.PreferredTime,
			Address:              sched.Address,
			Status:               jobModel.StatusPending,
			CleanerID:            nil,
			TotalAmountCents:     sched.TotalAmountCents,
			CleanerEarningsCents: sched.CleanerEarningsCents,
			Metadata: gModel.Metadata{
				CreatedAt:  timezone.Now(),
				ModifiedAt: timezone.Now(),
				CreatedBy:  actor,
				ModifiedBy: actor,
			},
		}
	}

	if err = s.jobRepo.InsertBulk(ctx, jobs); err != nil {
		log.Error().Err(err).Str("scheduleID", sched.ID).Msg("failed to insert generated bookings")

		return 0, fmt.Errorf("failed to insert generated bookings: %w", err)
	}

	return len(jobs), nil
}

func (s *serviceImpl) getSchedule(ctx context.Context, id string) (model.Schedule, error) {
	sched, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get schedule")

		return sched, fmt.Errorf("failed to get schedule: %w", err)
	}

	if sched.ID == constant.Empty {
		return sched, failure.NotFound("schedule not found") //nolint:wrapcheck
	}

	return sched, nil
}

func (s *serviceImpl) invalidateSchedule(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetSchedule, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete schedule from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllSchedule)
		shared.InvalidateCaches(c, s.cache, cacheCountSchedule)
	}()
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllSchedule)
		shared.InvalidateCaches(c, s.cache, cacheCountSchedule)
	}()
}
