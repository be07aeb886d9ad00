package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"

	"github.com/rs/zerolog/log"

	"sheen/config"
	"sheen/infras/otel"
	jobModel "sheen/internal/domains/job/model"
	jobRepo "sheen/internal/domains/job/repository"
	"sheen/internal/domains/team/model"
	"sheen/internal/domains/team/model/dto"
	"sheen/internal/domains/team/repository"
	"sheen/shared"
	"sheen/shared/constant"
	"sheen/shared/event"
	"sheen/shared/failure"
)

type Team interface {
	Assign(ctx context.Context, req dto.AssignTeamRequest, actorID string) (dto.TeamResponse, error)
	ForBooking(ctx context.Context, bookingID string) (dto.TeamResponse, error)
}

type serviceImpl struct {
	repo   repository.Team
	jobs   jobRepo.Job
	cfg    *config.Config
	otel   otel.Otel
	events event.Publisher
}

func New(repo repository.Team, jobs jobRepo.Job, cfg *config.Config, otel otel.Otel, events event.Publisher) Team {
	return &serviceImpl{
		repo:   repo,
		jobs:   jobs,
		cfg:    cfg,
		otel:   otel,
		events: events,
	}
}

// Assign installs or replaces the crew for a team booking. The booking
// must carry requires_team and the supervisor must be one of the
// members.
func (service *serviceImpl) Assign(ctx context.Context, req dto.AssignTeamRequest, actorID string) (dto.TeamResponse, error) {
	ctx, scope := service.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+"."+model.EntityName+".Assign")
	defer scope.End()

	if !req.HasSupervisor() {
		return dto.TeamResponse{}, failure.BadRequestFromString("supervisor must also be listed as a team member")
	}

	booking, err := service.jobs.Get(ctx, shared.FilterByID(req.BookingID, jobModel.FieldID, jobModel.TableName))
	if err != nil {
		return dto.TeamResponse{}, err
	}

	if booking.ID == "" {
		return dto.TeamResponse{}, failure.NotFound("booking")
	}

	if !booking.RequiresTeam {
		return dto.TeamResponse{}, failure.Conflict("booking does not require a team")
	}

	team, members := req.ToModel(actorID)

	if err := service.repo.Replace(ctx, team, members); err != nil {
		return dto.TeamResponse{}, err
	}

	go func(asyncCtx context.Context) {
		notification := event.Notification{
			Name:      event.NameTeamAssigned,
			JobID:     booking.ID,
			CleanerID: team.SupervisorID,
		}

		if publishErr := service.events.Publish(asyncCtx, notification); publishErr != nil {
			log.Warn().Err(publishErr).Str("booking_id", booking.ID).Msg("failed to publish team assignment event")
		}
	}(context.WithoutCancel(ctx))

	return dto.TeamResponse{}.FromModel(team, members), nil
}

func (service *serviceImpl) ForBooking(ctx context.Context, bookingID string) (dto.TeamResponse, error) {
	ctx, scope := service.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+"."+model.EntityName+".ForBooking")
	defer scope.End()

	team, err := service.repo.Get(ctx, shared.FilterByID(bookingID, model.FieldBookingID, model.TableName))
	if err != nil {
		return dto.TeamResponse{}, err
	}

	if team.ID == "" {
		return dto.TeamResponse{}, failure.NotFound(model.EntityName)
	}

	members, err := service.repo.GetMembers(ctx, team.ID)
	if err != nil {
		return dto.TeamResponse{}, err
	}

	return dto.TeamResponse{}.FromModel(team, members), nil
}
