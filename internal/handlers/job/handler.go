package job

import (
	"net/http"

	"sheen/infras/otel"
	"sheen/internal/domains/job/model"
	"sheen/internal/domains/job/model/dto"
	"sheen/internal/domains/job/service"
	"sheen/shared/constant"
	gDto "sheen/shared/dto"
	"sheen/shared/validator"
	"sheen/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Job
	otel    otel.Otel
}

func New(service service.Job, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/jobs", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateJob)
		routerGroup.Get("/", handler.GetJobs)
		routerGroup.Get("/available", handler.GetAvailableJobs)
		routerGroup.Get("/myjobs", handler.GetMyJobs)
		routerGroup.Get("/{id}", handler.GetJobByID)
		routerGroup.Patch("/{id}", handler.UpdateJob)
		routerGroup.Delete("/{id}", handler.CancelJob)
		routerGroup.Post("/{id}/claim", handler.ClaimJob)
		routerGroup.Patch("/{id}/status", handler.UpdateJobStatus)
	})
}

// CreateJob handles the creation of a standalone booking.
// @Summary Create a new job
// @Description Create a one-off cleaning booking.
// @Tags Job
// @Accept json
// @Produce json
// @Param request body dto.CreateJobRequest true "Create Job Request"
// @Success 201 {object} response.Message "Job created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/jobs [post]
// @Security BearerAuth
func (handler *Handler) CreateJob(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateJob")
	defer scope.End()

	req := dto.CreateJobRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create job")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Job created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Job created successfully")
}

// GetJobs retrieves bookings with optional filters.
// @Summary Get jobs
// @Description Retrieve bookings with optional filtering and pagination.
// @Tags Job
// @Accept json
// @Produce json
// @Param status query string false "Filter by status"
// @Param customer_id query string false "Filter by customer"
// @Param cleaner_id query string false "Filter by cleaner"
// @Param booking_date query string false "Filter by booking date (YYYY-MM-DD)"
// @Success 200 {object} dto.GetJobsResponse "List of jobs"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/jobs [get]
// @Security BearerAuth
func (handler *Handler) GetJobs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetJobs")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	for _, field := range []string{model.FieldStatus, model.FieldCustomerID, model.FieldCleanerID, model.FieldBookingDate} {
		if value := r.URL.Query().Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	jobs, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get jobs")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Jobs retrieved successfully")

	response.WithJSON(w, http.StatusOK, jobs)
}

// GetAvailableJobs lists open jobs the calling cleaner can claim.
// @Summary Get claimable jobs
// @Description List pending unassigned jobs, filtered through the cleaner's availability preferences.
// @Tags Job
// @Accept json
// @Produce json
// @Param date query string false "Only jobs on this date (YYYY-MM-DD)"
// @Success 200 {object} dto.AvailableJobsResponse "Claimable jobs"
// @Failure 500 {object} response.Error
// @Router /v1/jobs/available [get]
// @Security BearerAuth
func (handler *Handler) GetAvailableJobs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableJobs")
	defer scope.End()

	cleanerID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	date := r.URL.Query().Get(model.FieldBookingDate)

	jobs, err := handler.service.Available(ctx, cleanerID, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get available jobs")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Available jobs retrieved successfully")

	response.WithJSON(w, http.StatusOK, jobs)
}

// GetMyJobs lists the calling cleaner's assigned jobs.
// @Summary Get my jobs
// @Description List jobs assigned to the calling cleaner.
// @Tags Job
// @Accept json
// @Produce json
// @Param status query string false "Filter by status"
// @Success 200 {object} dto.GetJobsResponse "Assigned jobs"
// @Failure 500 {object} response.Error
// @Router /v1/jobs/myjobs [get]
// @Security BearerAuth
func (handler *Handler) GetMyJobs(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyJobs")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	cleanerID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldCleanerID,
				Operator: gDto.FilterOperatorEq,
				Value:    cleanerID,
				Table:    model.TableName,
			},
		},
	}

	if status := r.URL.Query().Get(model.FieldStatus); status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	jobs, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get my jobs")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("My jobs retrieved successfully")

	response.WithJSON(w, http.StatusOK, jobs)
}

// GetJobByID retrieves a booking by its ID.
// @Summary Get a job by ID
// @Description Retrieve a booking by its unique identifier.
// @Tags Job
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} dto.JobResponse "Job details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/jobs/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetJobByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetJobByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	job, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get job by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Job retrieved successfully")

	response.WithJSON(w, http.StatusOK, job)
}

// UpdateJob updates an existing booking.
// @Summary Update a job by ID
// @Description Update the details of an existing booking.
// @Tags Job
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param request body dto.UpdateJobRequest true "Update Job Request"
// @Success 200 {object} response.Message "Job updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/jobs/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateJob")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateJobRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update job")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Job updated successfully")

	response.WithMessage(w, http.StatusOK, "Job updated successfully")
}

// CancelJob cancels a pending or accepted booking.
// @Summary Cancel a job by ID
// @Description Cancel a booking that has not started yet. Completed or in-progress jobs cannot be cancelled.
// @Tags Job
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} response.Message "Job cancelled successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/jobs/{id} [delete]
// @Security BearerAuth
func (handler *Handler) CancelJob(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelJob")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Cancel(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel job")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Job cancelled successfully")

	response.WithMessage(w, http.StatusOK, "Job cancelled successfully")
}

// ClaimJob lets the calling cleaner claim a pending job.
// @Summary Claim a job
// @Description Atomically claim a pending unassigned job for the calling cleaner. At most one cleaner wins.
// @Tags Job
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} dto.JobResponse "Claimed job"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/jobs/{id}/claim [post]
// @Security BearerAuth
func (handler *Handler) ClaimJob(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ClaimJob")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	cleanerID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	job, err := handler.service.Claim(ctx, id, cleanerID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to claim job")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Job claimed successfully by cleaner " + cleanerID)

	response.WithJSON(w, http.StatusOK, job)
}

// UpdateJobStatus advances a job along its status path.
// @Summary Update job status
// @Description Move a claimed job forward: accepted to on_my_way to in_progress to completed.
// @Tags Job
// @Accept json
// @Produce json
// @Param id path string true "Job ID"
// @Param request body dto.UpdateStatusRequest true "Update Status Request"
// @Success 200 {object} response.Message "Status updated successfully"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/jobs/{id}/status [patch]
// @Security BearerAuth
func (handler *Handler) UpdateJobStatus(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateJobStatus")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)
	cleanerID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	req := dto.UpdateStatusRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.UpdateStatus(ctx, req, id, cleanerID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update job status")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Job status updated to " + req.Status)

	response.WithMessage(w, http.StatusOK, "Status updated successfully")
}
