package dto

import (
	"time"

	"github.com/google/uuid"

	"sheen/internal/domains/job/model"
	"sheen/shared"
	gDto "sheen/shared/dto"
	gModel "sheen/shared/model"
	"sheen/shared/timezone"
)

type CreateJobRequest struct {
	RecurringScheduleID  *string `json:"recurring_schedule_id" validate:"omitempty,uuid"`
	CustomerID           string  `json:"customer_id"           validate:"required,uuid"`
	CustomerName         string  `json:"customer_name"         validate:"required,max=100"`
	CustomerPhone        string  `json:"customer_phone"        validate:"omitempty,max=20"`
	ServiceType          string  `json:"service_type"          validate:"required,max=50"`
	BookingDate          string  `json:"booking_date"          validate:"required,datetime=2006-01-02"`
	BookingTime          string  `json:"booking_time"          validate:"required,datetime=15:04"`
	Address              string  `json:"address"               validate:"required"`
	RequiresTeam         bool    `json:"requires_team"`
	TotalAmountCents     int64   `json:"total_amount_cents"    validate:"required,gt=0"`
	ServiceFeeCents      int64   `json:"service_fee_cents"     validate:"omitempty,gte=0"`
	CleanerEarningsCents int64   `json:"cleaner_earnings_cents" validate:"omitempty,gte=0"`
}

func (r *CreateJobRequest) ToModel(user string) (model.Job, error) {
	bookingDate, err := time.Parse("2006-01-02", r.BookingDate)
	if err != nil {
		return model.Job{}, err
	}

	return model.Job{
		ID:                   uuid.NewString(),
		RecurringScheduleID:  r.RecurringScheduleID,
		CustomerID:           r.CustomerID,
		CustomerName:         r.CustomerName,
		CustomerPhone:        r.CustomerPhone,
		ServiceType:          r.ServiceType,
		BookingDate:          bookingDate,
		BookingTime:          r.BookingTime,
		Address:              r.Address,
		Status:               model.StatusPending,
		RequiresTeam:         r.RequiresTeam,
		TotalAmountCents:     r.TotalAmountCents,
		ServiceFeeCents:      r.ServiceFeeCents,
		CleanerEarningsCents: r.CleanerEarningsCents,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateJobRequest struct {
	CustomerName  string `db:"customer_name"  json:"customer_name"  validate:"omitempty,max=100"`
	CustomerPhone string `db:"customer_phone" json:"customer_phone" validate:"omitempty,max=20"`
	BookingDate   string `json:"booking_date"                       validate:"omitempty,datetime=2006-01-02"`
	BookingTime   string `db:"booking_time"   json:"booking_time"   validate:"omitempty,datetime=15:04"`
	Address       string `db:"address"        json:"address"        validate:"omitempty"`
	TipCents      int64  `db:"tip_cents"      json:"tip_cents"      validate:"omitempty,gte=0"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=on_my_way in_progress completed"`
}

type JobResponse struct {
	ID                   string  `json:"id"`
	RecurringScheduleID  *string `json:"recurring_schedule_id,omitempty"`
	CustomerID           string  `json:"customer_id"`
	CustomerName         string  `json:"customer_name"`
	CustomerPhone        string  `json:"customer_phone,omitempty"`
	ServiceType          string  `json:"service_type"`
	BookingDate          string  `json:"booking_date"`
	BookingTime          string  `json:"booking_time"`
	Address              string  `json:"address"`
	Status               string  `json:"status"`
	CleanerID            *string `json:"cleaner_id,omitempty"`
	RequiresTeam         bool    `json:"requires_team"`
	TotalAmountCents     int64   `json:"total_amount_cents"`
	ServiceFeeCents      int64   `json:"service_fee_cents"`
	CleanerEarningsCents int64   `json:"cleaner_earnings_cents"`
	TipCents             int64   `json:"tip_cents"`
	AcceptedAt           *string `json:"accepted_at,omitempty"`
	ReviewID             *string `json:"review_id,omitempty"`
	ReviewRequestedAt    *string `json:"review_requested_at,omitempty"`
	gDto.Metadata
}

func (r *JobResponse) FromModel(job model.Job) {
	r.ID = job.ID
	r.RecurringScheduleID = job.RecurringScheduleID
	r.CustomerID = job.CustomerID
	r.CustomerName = job.CustomerName
	r.CustomerPhone = job.CustomerPhone
	r.ServiceType = job.ServiceType
	r.BookingDate = job.BookingDate.Format("2006-01-02")
	r.BookingTime = job.BookingTime
	r.Address = job.Address
	r.Status = string(job.Status)
	r.CleanerID = job.CleanerID
	r.RequiresTeam = job.RequiresTeam
	r.TotalAmountCents = job.TotalAmountCents
	r.ServiceFeeCents = job.ServiceFeeCents
	r.CleanerEarningsCents = job.CleanerEarningsCents
	r.TipCents = job.TipCents

	if job.AcceptedAt != nil {
		accepted := timezone.Format(*job.AcceptedAt, time.RFC3339)
		r.AcceptedAt = &accepted
	}

	r.ReviewID = job.ReviewID

	if job.ReviewRequestedAt != nil {
		requested := timezone.Format(*job.ReviewRequestedAt, time.RFC3339)
		r.ReviewRequestedAt = &requested
	}

	r.Metadata.FromModel(job.Metadata)
}

type GetJobsResponse struct {
	Jobs      []JobResponse `json:"jobs"`
	TotalPage int           `json:"total_page"`
	TotalData int           `json:"total_data"`
}

func (r *GetJobsResponse) FromModels(models []model.Job, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Jobs = make([]JobResponse, len(models))
	for i, mod := range models {
		r.Jobs[i].FromModel(mod)
	}
}

type AvailableJobsResponse struct {
	Jobs      []JobResponse `json:"jobs"`
	TotalData int           `json:"total_data"`
}

func (r *AvailableJobsResponse) FromModels(models []model.Job) {
	r.TotalData = len(models)

	r.Jobs = make([]JobResponse, len(models))
	for i, mod := range models {
		r.Jobs[i].FromModel(mod)
	}
}
