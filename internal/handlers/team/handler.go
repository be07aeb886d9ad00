package team

import (
	"net/http"

	"sheen/infras/otel"
	"sheen/internal/domains/team/model/dto"
	"sheen/internal/domains/team/service"
	"sheen/shared/constant"
	"sheen/shared/validator"
	"sheen/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Team
	otel    otel.Otel
}

func New(service service.Team, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/teams", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.AssignTeam)
		routerGroup.Get("/{bookingID}", handler.GetBookingTeam)
	})
}

// AssignTeam assigns or replaces the crew for a team booking.
// @Summary Assign a booking team
// @Description Assign or replace the crew for a booking that requires a team. Membership is replaced wholesale.
// @Tags Team
// @Accept json
// @Produce json
// @Param request body dto.AssignTeamRequest true "Team assignment"
// @Success 201 {object} dto.TeamResponse "Assigned team"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/teams [post]
// @Security BearerAuth
func (handler *Handler) AssignTeam(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AssignTeam")
	defer scope.End()

	var req dto.AssignTeamRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate team assignment request")

		response.WithError(w, err)

		return
	}

	actorID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res, err := handler.service.Assign(ctx, req, actorID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to assign team")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Team assigned to booking " + req.BookingID)

	response.WithJSON(w, http.StatusCreated, res)
}

// GetBookingTeam returns the crew assigned to a booking.
// @Summary Get a booking's team
// @Description Get the crew assigned to a team booking, including its members.
// @Tags Team
// @Accept json
// @Produce json
// @Param bookingID path string true "Booking ID"
// @Success 200 {object} dto.TeamResponse "Assigned team"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/teams/{bookingID} [get]
// @Security BearerAuth
func (handler *Handler) GetBookingTeam(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingTeam")
	defer scope.End()

	bookingID := chi.URLParam(r, "bookingID")

	res, err := handler.service.ForBooking(ctx, bookingID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get booking team")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking team retrieved successfully")

	response.WithJSON(w, http.StatusOK, res)
}
