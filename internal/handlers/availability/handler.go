package availability

import (
	"net/http"

	"sheen/infras/otel"
	"sheen/internal/domains/availability/model/dto"
	"sheen/internal/domains/availability/service"
	"sheen/shared/constant"
	"sheen/shared/validator"
	"sheen/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/availability", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetPreferences)
		routerGroup.Put("/", handler.SavePreferences)
		routerGroup.Post("/slots", handler.AddBlockedSlot)
		routerGroup.Delete("/slots/{id}", handler.RemoveBlockedSlot)
	})
}

// GetPreferences retrieves the calling cleaner's availability preferences.
// @Summary Get availability preferences
// @Description Retrieve the calling cleaner's availability preferences and blocked slots.
// @Tags Availability
// @Accept json
// @Produce json
// @Success 200 {object} dto.PreferencesResponse "Availability preferences"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability [get]
// @Security BearerAuth
func (handler *Handler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPreferences")
	defer scope.End()

	cleanerID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	prefs, err := handler.service.Get(ctx, cleanerID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability preferences")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Availability preferences retrieved successfully")

	response.WithJSON(w, http.StatusOK, prefs)
}

// SavePreferences creates or replaces the cleaner's availability preferences.
// @Summary Save availability preferences
// @Description Create or fully replace the calling cleaner's availability preferences.
// @Tags Availability
// @Accept json
// @Produce json
// @Param request body dto.SavePreferencesRequest true "Save Preferences Request"
// @Success 200 {object} response.Message "Preferences saved successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability [put]
// @Security BearerAuth
func (handler *Handler) SavePreferences(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SavePreferences")
	defer scope.End()

	cleanerID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	req := dto.SavePreferencesRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Save(ctx, req, cleanerID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to save availability preferences")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Availability preferences saved by cleaner " + cleanerID)

	response.WithMessage(w, http.StatusOK, "Preferences saved successfully")
}

// AddBlockedSlot blocks a time window on a specific date.
// @Summary Add a blocked slot
// @Description Block a time window on a specific date so no jobs inside it are offered.
// @Tags Availability
// @Accept json
// @Produce json
// @Param request body dto.AddBlockedSlotRequest true "Add Blocked Slot Request"
// @Success 201 {object} response.Message "Blocked slot added successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability/slots [post]
// @Security BearerAuth
func (handler *Handler) AddBlockedSlot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddBlockedSlot")
	defer scope.End()

	cleanerID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	req := dto.AddBlockedSlotRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.AddBlockedSlot(ctx, req, cleanerID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to add blocked slot")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Blocked slot added by cleaner " + cleanerID)

	response.WithMessage(w, http.StatusCreated, "Blocked slot added successfully")
}

// RemoveBlockedSlot removes one of the cleaner's blocked slots.
// @Summary Remove a blocked slot
// @Description Remove a previously added blocked slot by its ID.
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path string true "Blocked Slot ID"
// @Success 200 {object} response.Message "Blocked slot removed successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availability/slots/{id} [delete]
// @Security BearerAuth
func (handler *Handler) RemoveBlockedSlot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemoveBlockedSlot")
	defer scope.End()

	cleanerID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	slotID := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.RemoveBlockedSlot(ctx, slotID, cleanerID); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove blocked slot")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Blocked slot removed by cleaner " + cleanerID)

	response.WithMessage(w, http.StatusOK, "Blocked slot removed successfully")
}
