package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"sheen/config"
	"sheen/infras/otel"
	availabilityFilter "sheen/internal/domains/availability/filter"
	availabilityService "sheen/internal/domains/availability/service"
	"sheen/internal/domains/job/model"
	"sheen/internal/domains/job/model/dto"
	"sheen/internal/domains/job/repository"
	"sheen/shared"
	"sheen/shared/cache"
	"sheen/shared/constant"
	gDto "sheen/shared/dto"
	"sheen/shared/event"
	"sheen/shared/failure"
	"sheen/shared/timezone"
)

const (
	cacheGetJob    = "job:get"
	cacheGetAllJob = "job:gets"
	cacheCountJob  = "job:count"
)

type Job interface {
	Create(ctx context.Context, req dto.CreateJobRequest) error
	Get(ctx context.Context, id string) (dto.JobResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetJobsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req dto.UpdateJobRequest, id string) error
	Cancel(ctx context.Context, id string) error

	Available(ctx context.Context, cleanerID, date string) (dto.AvailableJobsResponse, error)
	Claim(ctx context.Context, jobID, cleanerID string) (dto.JobResponse, error)
	UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, jobID, cleanerID string) error
}

type serviceImpl struct {
	repo         repository.Job
	availability availabilityService.Availability
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
	events       event.Publisher
}

func New(repo repository.Job, availability availabilityService.Availability, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, events event.Publisher) Job {
	return &serviceImpl{
		repo:         repo,
		availability: availability,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
		events:       events,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateJobRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	job, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse job request")

		return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) //nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, job); err != nil {
		log.Error().Err(err).Msg("failed to create job")

		return fmt.Errorf("failed to create job: %w", err)
	}

	s.invalidateLists(ctx)

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.JobResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetJob, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for job")

		return res, nil
	}

	job, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get job")

		return res, fmt.Errorf("failed to get job: %w", err)
	}

	if job.ID == constant.Empty {
		return res, failure.NotFound("job not found") //nolint:wrapcheck
	}

	res.FromModel(job)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save job to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetJobsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllJob, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for jobs")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count jobs")

		return res, fmt.Errorf("failed to count jobs: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get jobs")

		return res, fmt.Errorf("failed to get jobs: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save jobs to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountJob, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count jobs")

		return res, fmt.Errorf("failed to count jobs: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save job count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateJobRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateJobRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") //nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if job exists")

		return fmt.Errorf("failed to check if job exists: %w", err)
	}

	if !exist {
		return failure.NotFound("job not found") //nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if req.BookingDate != "" {
		updatedFields[model.FieldBookingDate] = req.BookingDate
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update job")

		return fmt.Errorf("failed to update job: %w", err)
	}

	s.invalidateJob(ctx, id)

	return nil
}

// Cancel soft-cancels a job: bookings are archived, never hard-deleted,
// so reviews and payouts keep their reference.
func (s *serviceImpl) Cancel(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "expected_status",
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorIn,
				Value:    []string{string(model.StatusPending), string(model.StatusAccepted)},
				Table:    model.TableName,
			},
		},
	}

	affected, err := s.repo.UpdateCount(ctx, map[string]any{
		model.FieldStatus:        string(model.StatusCancelled),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to cancel job")

		return fmt.Errorf("failed to cancel job: %w", err)
	}

	if affected == 0 {
		job, getErr := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if getErr != nil {
			return fmt.Errorf("failed to get job: %w", getErr)
		}

		if job.ID == constant.Empty {
			return failure.NotFound("job not found") //nolint:wrapcheck
		}

		return failure.Conflict(fmt.Sprintf("job cannot be cancelled while %s", job.Status)) //nolint:wrapcheck
	}

	s.invalidateJob(ctx, id)

	return nil
}

// Available lists pending, unassigned, non-team jobs and passes each one
// through the cleaner's availability rules. Distance is not computed here
// (addresses are not geocoded), so the distance rule never fires today.
func (s *serviceImpl) Available(ctx context.Context, cleanerID, date string) (res dto.AvailableJobsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Available")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    string(model.StatusPending),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldCleanerID,
				Operator: gDto.FilterIsNull,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldRequiresTeam,
				Operator: gDto.FilterOperatorEq,
				Value:    false,
				Table:    model.TableName,
			},
		},
	}

	if date != "" {
		filter.Filters = append(filter.Filters, gDto.Filter{
			Field:    model.FieldBookingDate,
			Operator: gDto.FilterOperatorEq,
			Value:    date,
			Table:    model.TableName,
		})
	}

	params := gDto.QueryParams{
		SortBy:  model.FieldBookingDate,
		SortDir: gDto.SortDirAsc,
	}

	jobs, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to list open jobs")

		return res, fmt.Errorf("failed to list open jobs: %w", err)
	}

	prefs, slots, err := s.availability.ForCleaner(ctx, cleanerID)
	if err != nil {
		return res, err
	}

	allowed := make([]model.Job, 0, len(jobs))

	for _, job := range jobs {
		decision := availabilityFilter.Evaluate(prefs, slots, availabilityFilter.Candidate{
			Date:             job.BookingDate.Format("2006-01-02"),
			Time:             job.BookingTime,
			ServiceType:      job.ServiceType,
			TotalAmountCents: job.TotalAmountCents,
		})
		if decision.Allowed {
			allowed = append(allowed, job)
		}
	}

	res.FromModels(allowed)

	return res, nil
}

// Claim lets exactly one cleaner take a pending job. The mutual exclusion
// lives entirely in the repository's conditional update; when that update
// touches no row we re-read purely to tell the cleaner why.
func (s *serviceImpl) Claim(ctx context.Context, jobID, cleanerID string) (res dto.JobResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Claim")
	defer scope.End()
	defer scope.TraceIfError(err)

	affected, err := s.repo.Claim(ctx, jobID, cleanerID, timezone.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to claim job")

		return res, fmt.Errorf("failed to claim job: %w", err)
	}

	if affected == 0 {
		return res, s.classifyClaimDenial(ctx, jobID)
	}

	job, err := s.repo.Get(ctx, shared.FilterByID(jobID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get claimed job")

		return res, fmt.Errorf("failed to get claimed job: %w", err)
	}

	res.FromModel(job)

	scope.AddEvent("Job claimed by cleaner " + cleanerID)
	s.invalidateJob(ctx, jobID)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.events.Publish(c, event.Notification{
			Name:       event.NameJobClaimed,
			JobID:      jobID,
			CleanerID:  cleanerID,
			CustomerID: job.CustomerID,
			Status:     string(job.Status),
		}); err != nil {
			log.Error().Err(err).Msg("failed to publish job claimed event")
		}
	}()

	return res, nil
}

// classifyClaimDenial turns a zero-row claim into a precise denial. The
// re-read happens after the atomic attempt and is diagnostic only;
// correctness never rests on it.
func (s *serviceImpl) classifyClaimDenial(ctx context.Context, jobID string) error {
	job, err := s.repo.Get(ctx, shared.FilterByID(jobID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get job after denied claim")

		return fmt.Errorf("failed to get job: %w", err)
	}

	switch {
	case job.ID == constant.Empty:
		return failure.NotFound("job not found") //nolint:wrapcheck
	case job.RequiresTeam:
		return failure.Conflict("this job requires a team and is assigned by an admin") //nolint:wrapcheck
	case job.CleanerID != nil:
		return failure.Conflict("this job was just taken by another cleaner") //nolint:wrapcheck
	case job.Status != model.StatusPending:
		return failure.Conflict(fmt.Sprintf("job is no longer pending (current status: %s)", job.Status)) //nolint:wrapcheck
	default:
		return failure.Conflict("this job was just taken by another cleaner") //nolint:wrapcheck
	}
}

// UpdateStatus advances a claimed job along the forward path. The current
// status check rides in the WHERE clause, same pattern as Claim, so two
// rapid taps on "start" cannot double-apply.
func (s *serviceImpl) UpdateStatus(ctx context.Context, req dto.UpdateStatusRequest, jobID, cleanerID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	target := model.Status(req.Status)

	expected, ok := target.Predecessor()
	if !ok {
		return failure.BadRequestFromString(fmt.Sprintf("status %s cannot be set directly", target)) //nolint:wrapcheck
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    jobID,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "expected_cleaner",
				Field:    model.FieldCleanerID,
				Operator: gDto.FilterOperatorEq,
				Value:    cleanerID,
				Table:    model.TableName,
			},
			gDto.Filter{
				ArgName:  "expected_status",
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    string(expected),
				Table:    model.TableName,
			},
		},
	}

	affected, err := s.repo.UpdateCount(ctx, map[string]any{
		model.FieldStatus:        string(target),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: cleanerID,
	}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to update job status")

		return fmt.Errorf("failed to update job status: %w", err)
	}

	if affected == 0 {
		return s.classifyStatusDenial(ctx, jobID, cleanerID, expected)
	}

	s.invalidateJob(ctx, jobID)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.events.Publish(c, event.Notification{
			Name:      event.NameJobStatus,
			JobID:     jobID,
			CleanerID: cleanerID,
			Status:    string(target),
		}); err != nil {
			log.Error().Err(err).Msg("failed to publish job status event")
		}
	}()

	return nil
}

func (s *serviceImpl) classifyStatusDenial(ctx context.Context, jobID, cleanerID string, expected model.Status) error {
	job, err := s.repo.Get(ctx, shared.FilterByID(jobID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get job after denied status update")

		return fmt.Errorf("failed to get job: %w", err)
	}

	switch {
	case job.ID == constant.Empty:
		return failure.NotFound("job not found") //nolint:wrapcheck
	case job.CleanerID == nil || *job.CleanerID != cleanerID:
		return failure.Forbidden("job is not assigned to you") //nolint:wrapcheck
	default:
		return failure.Conflict(fmt.Sprintf("job must be %s first (current status: %s)", expected, job.Status)) //nolint:wrapcheck
	}
}

func (s *serviceImpl) invalidateJob(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetJob, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete job from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllJob)
		shared.InvalidateCaches(c, s.cache, cacheCountJob)
	}()
}

func (s *serviceImpl) invalidateLists(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllJob)
		shared.InvalidateCaches(c, s.cache, cacheCountJob)
	}()
}
