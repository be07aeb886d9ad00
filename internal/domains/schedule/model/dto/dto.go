package dto

import (
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"sheen/internal/domains/schedule/model"
	"sheen/shared"
	gDto "sheen/shared/dto"
	gModel "sheen/shared/model"
	"sheen/shared/timezone"
)

const (
	BulkActionAcceptAll  = "accept-all"
	BulkActionDeclineAll = "decline-all"
	BulkActionPause      = "pause"
	BulkActionResume     = "resume"
)

type CreateScheduleRequest struct {
	CustomerID           string   `json:"customer_id"            validate:"required,uuid"`
	CleanerID            *string  `json:"cleaner_id"             validate:"omitempty,uuid"`
	ServiceType          string   `json:"service_type"           validate:"required,max=50"`
	Frequency            string   `json:"frequency"              validate:"required,oneof=weekly bi-weekly monthly custom-weekly custom-bi-weekly"`
	DayOfWeek            *int16   `json:"day_of_week"            validate:"omitempty,gte=0,lte=6"`
	DayOfMonth           *int16   `json:"day_of_month"           validate:"omitempty,gte=1,lte=31"`
	DaysOfWeek           []int64  `json:"days_of_week"           validate:"omitempty,dive,gte=0,lte=6"`
	PreferredTime        string   `json:"preferred_time"         validate:"required,datetime=15:04"`
	Bedrooms             int      `json:"bedrooms"               validate:"omitempty,gte=0"`
	Bathrooms            int      `json:"bathrooms"              validate:"omitempty,gte=0"`
	Extras               []string `json:"extras"                 validate:"omitempty,dive,max=50"`
	Address              string   `json:"address"                validate:"required"`
	StartDate            string   `json:"start_date"             validate:"required,datetime=2006-01-02"`
	EndDate              *string  `json:"end_date"               validate:"omitempty,datetime=2006-01-02"`
	TotalAmountCents     int64    `json:"total_amount_cents"     validate:"required,gt=0"`
	CleanerEarningsCents int64    `json:"cleaner_earnings_cents" validate:"omitempty,gte=0"`
}

func (r *CreateScheduleRequest) ToModel(user string) (model.Schedule, error) {
	startDate, err := time.Parse("2006-01-02", r.StartDate)
	if err != nil {
		return model.Schedule{}, err
	}

	var endDate *time.Time

	if r.EndDate != nil {
		parsed, err := time.Parse("2006-01-02", *r.EndDate)
		if err != nil {
			return model.Schedule{}, err
		}

		endDate = &parsed
	}

	return model.Schedule{
		ID:                   uuid.NewString(),
		CustomerID:           r.CustomerID,
		CleanerID:            r.CleanerID,
		ServiceType:          r.ServiceType,
		Frequency:            model.Frequency(r.Frequency),
		DayOfWeek:            r.DayOfWeek,
		DayOfMonth:           r.DayOfMonth,
		DaysOfWeek:           pq.Int64Array(r.DaysOfWeek),
		PreferredTime:        r.PreferredTime,
		Bedrooms:             r.Bedrooms,
		Bathrooms:            r.Bathrooms,
		Extras:               pq.StringArray(r.Extras),
		Address:              r.Address,
		IsActive:             true,
		StartDate:            startDate,
		EndDate:              endDate,
		TotalAmountCents:     r.TotalAmountCents,
		CleanerEarningsCents: r.CleanerEarningsCents,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateScheduleRequest struct {
	CleanerID            *string       `db:"cleaner_id"             json:"cleaner_id"             validate:"omitempty,uuid"`
	ServiceType          string        `db:"service_type"           json:"service_type"           validate:"omitempty,max=50"`
	Frequency            string        `db:"frequency"              json:"frequency"              validate:"omitempty,oneof=weekly bi-weekly monthly custom-weekly custom-bi-weekly"`
	DayOfWeek            *int16        `db:"day_of_week"            json:"day_of_week"            validate:"omitempty,gte=0,lte=6"`
	DayOfMonth           *int16        `db:"day_of_month"           json:"day_of_month"           validate:"omitempty,gte=1,lte=31"`
	DaysOfWeek           pq.Int64Array `db:"days_of_week"           json:"days_of_week"           validate:"omitempty,dive,gte=0,lte=6"`
	PreferredTime        string        `db:"preferred_time"         json:"preferred_time"         validate:"omitempty,datetime=15:04"`
	Address              string        `db:"address"                json:"address"                validate:"omitempty"`
	EndDate              string        `db:"end_date"               json:"end_date"               validate:"omitempty,datetime=2006-01-02"`
	TotalAmountCents     int64         `db:"total_amount_cents"     json:"total_amount_cents"     validate:"omitempty,gt=0"`
	CleanerEarningsCents int64         `db:"cleaner_earnings_cents" json:"cleaner_earnings_cents" validate:"omitempty,gte=0"`
}

// Empty reports whether no updatable field was provided.
func (r UpdateScheduleRequest) Empty() bool {
	return reflect.ValueOf(r).IsZero()
}

// ChangesRecurrence reports whether the request touches the frequency or
// any of its day fields, which must stay a coherent pair.
func (r UpdateScheduleRequest) ChangesRecurrence() bool {
	return r.Frequency != "" || r.DayOfWeek != nil || r.DayOfMonth != nil || len(r.DaysOfWeek) > 0
}

type BulkActionRequest struct {
	Action string `json:"action" validate:"required,oneof=accept-all decline-all pause resume"`
}

type BulkActionResponse struct {
	Action   string `json:"action"`
	Affected int64  `json:"affected"`
}

type UpcomingDateResponse struct {
	Date          string `json:"date"`
	Display       string `json:"display"`
	PreferredTime string `json:"preferred_time"`
}

type UpcomingDatesResponse struct {
	ScheduleID string                 `json:"schedule_id"`
	Dates      []UpcomingDateResponse `json:"dates"`
	TotalData  int                    `json:"total_data"`
}

func (r *UpcomingDatesResponse) FromDates(scheduleID, preferredTime string, dates []time.Time) {
	r.ScheduleID = scheduleID
	r.TotalData = len(dates)

	r.Dates = make([]UpcomingDateResponse, len(dates))
	for i, date := range dates {
		r.Dates[i] = UpcomingDateResponse{
			Date:          date.Format("2006-01-02"),
			Display:       date.Format("Monday, January 2, 2006"),
			PreferredTime: preferredTime,
		}
	}
}

type ScheduleResponse struct {
	ID                   string   `json:"id"`
	CustomerID           string   `json:"customer_id"`
	CleanerID            *string  `json:"cleaner_id,omitempty"`
	ServiceType          string   `json:"service_type"`
	Frequency            string   `json:"frequency"`
	DayOfWeek            *int16   `json:"day_of_week,omitempty"`
	DayOfMonth           *int16   `json:"day_of_month,omitempty"`
	DaysOfWeek           []int64  `json:"days_of_week,omitempty"`
	PreferredTime        string   `json:"preferred_time"`
	Bedrooms             int      `json:"bedrooms"`
	Bathrooms            int      `json:"bathrooms"`
	Extras               []string `json:"extras,omitempty"`
	Address              string   `json:"address"`
	IsActive             bool     `json:"is_active"`
	StartDate            string   `json:"start_date"`
	EndDate              *string  `json:"end_date,omitempty"`
	LastGeneratedMonth   *string  `json:"last_generated_month,omitempty"`
	TotalAmountCents     int64    `json:"total_amount_cents"`
	CleanerEarningsCents int64    `json:"cleaner_earnings_cents"`
	gDto.Metadata
}

func (r *ScheduleResponse) FromModel(sched model.Schedule) {
	r.ID = sched.ID
	r.CustomerID = sched.CustomerID
	r.CleanerID = sched.CleanerID
	r.ServiceType = sched.ServiceType
	r.Frequency = string(sched.Frequency)
	r.DayOfWeek = sched.DayOfWeek
	r.DayOfMonth = sched.DayOfMonth
	r.DaysOfWeek = sched.DaysOfWeek
	r.PreferredTime = sched.PreferredTime
	r.Bedrooms = sched.Bedrooms
	r.Bathrooms = sched.Bathrooms
	r.Extras = sched.Extras
	r.Address = sched.Address
	r.IsActive = sched.IsActive
	r.StartDate = sched.StartDate.Format("2006-01-02")
	r.LastGeneratedMonth = sched.LastGeneratedMonth
	r.TotalAmountCents = sched.TotalAmountCents
	r.CleanerEarningsCents = sched.CleanerEarningsCents

	if sched.EndDate != nil {
		end := sched.EndDate.Format("2006-01-02")
		r.EndDate = &end
	}

	r.Metadata.FromModel(sched.Metadata)
}

type GetSchedulesResponse struct {
	Schedules []ScheduleResponse `json:"schedules"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetSchedulesResponse) FromModels(models []model.Schedule, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Schedules = make([]ScheduleResponse, len(models))
	for i, mod := range models {
		r.Schedules[i].FromModel(mod)
	}
}

type GenerateMonthResponse struct {
	Month              string `json:"month"`
	SchedulesProcessed int    `json:"schedules_processed"`
	BookingsCreated    int    `json:"bookings_created"`
}
