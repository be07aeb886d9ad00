package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"sheen/config"
	"sheen/infras/otel/mocks"
	jobMocks "sheen/internal/domains/job/mocks"
	jobModel "sheen/internal/domains/job/model"
	teamMocks "sheen/internal/domains/team/mocks"
	"sheen/internal/domains/team/model"
	"sheen/internal/domains/team/model/dto"
	"sheen/internal/domains/team/service"
	eventMocks "sheen/shared/event/mocks"
	"sheen/shared/failure"
)

const (
	testBookingID    = "8c28a6dd-3d22-4e5f-94a9-b9e0cf4f92e4"
	testSupervisorID = "2f4b8c1a-96e0-4ad3-8c54-0df4c0a8ab77"
	testMemberID     = "6d1f3a9b-2c87-45be-910a-7dd20b6f6e31"
	testAdminID      = "b1a2c3d4-5e6f-4a7b-8c9d-0e1f2a3b4c5d"
)

func newTeamService(t *testing.T) (service.Team, *teamMocks.MockTeam, *jobMocks.MockJob) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := teamMocks.NewMockTeam(ctrl)
	mockJobs := jobMocks.NewMockJob(ctrl)
	mockEvents := eventMocks.NewMockPublisher(ctrl)
	mockOtel := mocks.NewOtel()

	// Event publishes run on a detached goroutine; the tests only pin
	// down the synchronous calls.
	mockEvents.EXPECT().Publish(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, mockJobs, &config.Config{}, mockOtel, mockEvents)

	return svc, mockRepo, mockJobs
}

func assignRequest() dto.AssignTeamRequest {
	return dto.AssignTeamRequest{
		BookingID:    testBookingID,
		Name:         string(model.NameAlpha),
		SupervisorID: testSupervisorID,
		Members: []dto.TeamMemberRequest{
			{CleanerID: testSupervisorID, EarningsCents: 9000},
			{CleanerID: testMemberID, EarningsCents: 6000},
		},
	}
}

func TestTeamAssign(t *testing.T) {
	t.Run("replaces the booking's crew", func(t *testing.T) {
		svc, mockRepo, mockJobs := newTeamService(t)

		mockJobs.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(jobModel.Job{ID: testBookingID, RequiresTeam: true}, nil)
		mockRepo.EXPECT().
			Replace(gomock.Any(), gomock.Any(), gomock.Len(2)).
			DoAndReturn(func(_ context.Context, team model.Team, members []model.Member) error {
				assert.Equal(t, testBookingID, team.BookingID)
				assert.Equal(t, model.NameAlpha, team.Name)
				assert.Equal(t, testSupervisorID, team.SupervisorID)
				for _, member := range members {
					assert.Equal(t, team.ID, member.TeamID)
				}
				return nil
			})

		res, err := svc.Assign(context.Background(), assignRequest(), testAdminID)

		assert.NoError(t, err)
		assert.Equal(t, testBookingID, res.BookingID)
		assert.Len(t, res.Members, 2)
	})

	t.Run("rejects a supervisor outside the member list", func(t *testing.T) {
		svc, _, _ := newTeamService(t)

		req := assignRequest()
		req.Members = req.Members[1:]

		_, err := svc.Assign(context.Background(), req, testAdminID)

		assert.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("rejects an unknown booking", func(t *testing.T) {
		svc, _, mockJobs := newTeamService(t)

		mockJobs.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(jobModel.Job{}, nil)

		_, err := svc.Assign(context.Background(), assignRequest(), testAdminID)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("rejects a booking that does not require a team", func(t *testing.T) {
		svc, _, mockJobs := newTeamService(t)

		mockJobs.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(jobModel.Job{ID: testBookingID, RequiresTeam: false}, nil)

		_, err := svc.Assign(context.Background(), assignRequest(), testAdminID)

		assert.Error(t, err)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("propagates repository errors", func(t *testing.T) {
		svc, mockRepo, mockJobs := newTeamService(t)

		mockJobs.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(jobModel.Job{ID: testBookingID, RequiresTeam: true}, nil)
		mockRepo.EXPECT().
			Replace(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("tx failed"))

		_, err := svc.Assign(context.Background(), assignRequest(), testAdminID)

		assert.Error(t, err)
	})
}

func TestTeamForBooking(t *testing.T) {
	t.Run("returns the crew with its members", func(t *testing.T) {
		svc, mockRepo, _ := newTeamService(t)

		team := model.Team{ID: "team-1", BookingID: testBookingID, Name: model.NameBravo, SupervisorID: testSupervisorID}
		members := []model.Member{
			{ID: "m-1", TeamID: "team-1", CleanerID: testSupervisorID, EarningsCents: 9000},
			{ID: "m-2", TeamID: "team-1", CleanerID: testMemberID, EarningsCents: 6000},
		}

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(team, nil)
		mockRepo.EXPECT().GetMembers(gomock.Any(), "team-1").Return(members, nil)

		res, err := svc.ForBooking(context.Background(), testBookingID)

		assert.NoError(t, err)
		assert.Equal(t, string(model.NameBravo), res.Name)
		assert.Len(t, res.Members, 2)
	})

	t.Run("returns 404 when the booking has no crew", func(t *testing.T) {
		svc, mockRepo, _ := newTeamService(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Team{}, nil)

		_, err := svc.ForBooking(context.Background(), testBookingID)

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
