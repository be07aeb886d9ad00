package dto

import (
	"github.com/google/uuid"

	"sheen/internal/domains/team/model"
	gModel "sheen/shared/model"
	"sheen/shared/timezone"
)

type TeamMemberRequest struct {
	CleanerID     string `json:"cleaner_id"     validate:"required,uuid"`
	EarningsCents int64  `json:"earnings_cents" validate:"gte=0"`
}

type AssignTeamRequest struct {
	BookingID    string              `json:"booking_id"    validate:"required,uuid"`
	Name         string              `json:"name"          validate:"required,oneof=alpha bravo charlie delta"`
	SupervisorID string              `json:"supervisor_id" validate:"required,uuid"`
	Members      []TeamMemberRequest `json:"members"       validate:"required,min=1,dive"`
}

// HasSupervisor reports whether the supervisor also appears in the
// member list.
func (r *AssignTeamRequest) HasSupervisor() bool {
	for _, member := range r.Members {
		if member.CleanerID == r.SupervisorID {
			return true
		}
	}

	return false
}

func (r *AssignTeamRequest) ToModel(actorID string) (model.Team, []model.Member) {
	meta := gModel.Metadata{
		CreatedAt:  timezone.Now(),
		ModifiedAt: timezone.Now(),
		CreatedBy:  actorID,
		ModifiedBy: actorID,
	}

	team := model.Team{
		ID:           uuid.NewString(),
		BookingID:    r.BookingID,
		Name:         model.Name(r.Name),
		SupervisorID: r.SupervisorID,
		Metadata:     meta,
	}

	members := make([]model.Member, 0, len(r.Members))
	for _, member := range r.Members {
		members = append(members, model.Member{
			ID:            uuid.NewString(),
			TeamID:        team.ID,
			CleanerID:     member.CleanerID,
			EarningsCents: member.EarningsCents,
			Metadata:      meta,
		})
	}

	return team, members
}

type TeamMemberResponse struct {
	CleanerID     string `json:"cleaner_id"`
	EarningsCents int64  `json:"earnings_cents"`
}

type TeamResponse struct {
	ID           string               `json:"id"`
	BookingID    string               `json:"booking_id"`
	Name         string               `json:"name"`
	SupervisorID string               `json:"supervisor_id"`
	Members      []TeamMemberResponse `json:"members"`
}

func (r TeamResponse) FromModel(team model.Team, members []model.Member) TeamResponse {
	res := TeamResponse{
		ID:           team.ID,
		BookingID:    team.BookingID,
		Name:         string(team.Name),
		SupervisorID: team.SupervisorID,
		Members:      make([]TeamMemberResponse, 0, len(members)),
	}

	for _, member := range members {
		res.Members = append(res.Members, TeamMemberResponse{
			CleanerID:     member.CleanerID,
			EarningsCents: member.EarningsCents,
		})
	}

	return res
}
