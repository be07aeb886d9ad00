package schedule

import (
	"net/http"
	"strconv"
	"time"

	"sheen/infras/otel"
	"sheen/internal/domains/schedule/model"
	"sheen/internal/domains/schedule/model/dto"
	"sheen/internal/domains/schedule/occurrence"
	"sheen/internal/domains/schedule/service"
	"sheen/shared/constant"
	gDto "sheen/shared/dto"
	"sheen/shared/failure"
	"sheen/shared/timezone"
	"sheen/shared/validator"
	"sheen/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Schedule
	otel    otel.Otel
}

func New(service service.Schedule, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/schedules", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateSchedule)
		routerGroup.Get("/", handler.GetSchedules)
		routerGroup.Post("/generate", handler.GenerateMonth)
		routerGroup.Get("/{id}", handler.GetScheduleByID)
		routerGroup.Patch("/{id}", handler.UpdateSchedule)
		routerGroup.Delete("/{id}", handler.DeleteSchedule)
		routerGroup.Get("/{id}/upcoming", handler.GetUpcomingDates)
		routerGroup.Post("/{id}/bulk", handler.BulkAction)
	})
}

// CreateSchedule handles the creation of a new recurring schedule.
// @Summary Create a new recurring schedule
// @Description Create a recurring cleaning schedule for a customer.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param request body dto.CreateScheduleRequest true "Create Schedule Request"
// @Success 201 {object} response.Message "Schedule created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/schedules [post]
// @Security BearerAuth
func (handler *Handler) CreateSchedule(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateSchedule")
	defer scope.End()

	req := dto.CreateScheduleRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create schedule")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Schedule created successfully by user " + user)

	response.WithMessage(writer, http.StatusCreated, "Schedule created successfully")
}

// GetSchedules retrieves recurring schedules with optional filters.
// @Summary Get recurring schedules
// @Description Retrieve recurring schedules with optional filtering and pagination.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param customer_id query string false "Filter by customer"
// @Param cleaner_id query string false "Filter by cleaner"
// @Param frequency query string false "Filter by frequency"
// @Param is_active query boolean false "Filter by active flag"
// @Success 200 {object} dto.GetSchedulesResponse "List of schedules"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/schedules [get]
// @Security BearerAuth
func (handler *Handler) GetSchedules(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSchedules")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
	}

	for _, field := range []string{model.FieldCustomerID, model.FieldCleanerID, model.FieldFrequency} {
		if value := r.URL.Query().Get(field); value != "" {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	if active := r.URL.Query().Get(model.FieldIsActive); active != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsActive,
			Operator: gDto.FilterOperatorEq,
			Value:    active == "true",
			Table:    model.TableName,
		})
	}

	schedules, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get schedules")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Schedules retrieved successfully")

	response.WithJSON(w, http.StatusOK, schedules)
}

// GetScheduleByID retrieves a recurring schedule by its ID.
// @Summary Get a schedule by ID
// @Description Retrieve a recurring schedule by its unique identifier.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} dto.ScheduleResponse "Schedule details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/schedules/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetScheduleByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetScheduleByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	schedule, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get schedule by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Schedule retrieved successfully")

	response.WithJSON(w, http.StatusOK, schedule)
}

// UpdateSchedule updates an existing recurring schedule.
// @Summary Update a schedule by ID
// @Description Update the details of an existing recurring schedule.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Param request body dto.UpdateScheduleRequest true "Update Schedule Request"
// @Success 200 {object} response.Message "Schedule updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/schedules/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateSchedule")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateScheduleRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update schedule")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Schedule updated successfully")

	response.WithMessage(w, http.StatusOK, "Schedule updated successfully")
}

// DeleteSchedule deactivates a schedule and cancels its future bookings.
// @Summary Delete a schedule by ID
// @Description Deactivate a recurring schedule and cancel its pending future bookings.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Success 200 {object} response.Message "Schedule deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/schedules/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteSchedule")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete schedule")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Schedule deleted successfully")

	response.WithMessage(w, http.StatusOK, "Schedule deleted successfully")
}

// GetUpcomingDates lists the next occurrence dates of a schedule.
// @Summary Get upcoming dates for a schedule
// @Description List the upcoming occurrence dates of a recurring schedule, capped at 50 dates.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Param months query int false "Horizon in months (default 12)"
// @Success 200 {object} dto.UpcomingDatesResponse "Upcoming dates"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/schedules/{id}/upcoming [get]
// @Security BearerAuth
func (handler *Handler) GetUpcomingDates(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUpcomingDates")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	months := occurrence.DefaultHorizonMonths

	if raw := r.URL.Query().Get("months"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			err = failure.BadRequestFromString("months must be a positive integer")
			scope.TraceError(err)

			response.WithError(w, err)

			return
		}

		months = parsed
	}

	dates, err := handler.service.Upcoming(ctx, id, months)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get upcoming dates")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Upcoming dates retrieved successfully")

	response.WithJSON(w, http.StatusOK, dates)
}

// BulkAction applies a lifecycle action to a schedule and its bookings.
// @Summary Apply a bulk action to a schedule
// @Description Accept or decline all pending bookings of a schedule, or pause/resume generation.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Param request body dto.BulkActionRequest true "Bulk Action Request"
// @Success 200 {object} dto.BulkActionResponse "Action applied"
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/schedules/{id}/bulk [post]
// @Security BearerAuth
func (handler *Handler) BulkAction(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BulkAction")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.BulkActionRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	actorID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	actorRole, _ := ctx.Value(constant.ContextKeyUserRole).(string)

	res, err := handler.service.BulkAction(ctx, req, id, actorID, actorRole)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to apply bulk action")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bulk action " + req.Action + " applied by user " + actorID)

	response.WithJSON(w, http.StatusOK, res)
}

// GenerateMonth materializes bookings for all active schedules.
// @Summary Generate bookings for a month
// @Description Create booking rows for every active schedule for the given month. Safe to rerun.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param month query string false "Target month (YYYY-MM, defaults to next month)"
// @Success 200 {object} dto.GenerateMonthResponse "Generation summary"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/schedules/generate [post]
// @Security BearerAuth
func (handler *Handler) GenerateMonth(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GenerateMonth")
	defer scope.End()

	target := timezone.Now().AddDate(0, 1, 0)

	if raw := r.URL.Query().Get("month"); raw != "" {
		parsed, err := time.Parse("2006-01", raw)
		if err != nil {
			err = failure.BadRequestFromString("month must be in YYYY-MM format")
			scope.TraceError(err)

			response.WithError(w, err)

			return
		}

		target = parsed
	}

	res, err := handler.service.GenerateMonth(ctx, target.Year(), target.Month())
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to generate month")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Bookings generated for " + res.Month)

	response.WithJSON(w, http.StatusOK, res)
}
