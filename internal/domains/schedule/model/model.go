package model

import (
	"time"

	"github.com/lib/pq"

	"sheen/shared/model"
)

const (
	TableName  = "recurring_schedules"
	EntityName = "schedule"

	FieldID                 = "id"
	FieldCustomerID         = "customer_id"
	FieldCleanerID          = "cleaner_id"
	FieldServiceType        = "service_type"
	FieldFrequency          = "frequency"
	FieldDayOfWeek          = "day_of_week"
	FieldDayOfMonth         = "day_of_month"
	FieldDaysOfWeek         = "days_of_week"
	FieldPreferredTime      = "preferred_time"
	FieldIsActive           = "is_active"
	FieldStartDate          = "start_date"
	FieldEndDate            = "end_date"
	FieldLastGeneratedMonth = "last_generated_month"
)

// Frequency is the cadence on which a schedule produces bookings.
type Frequency string

const (
	FrequencyWeekly         Frequency = "weekly"
	FrequencyBiWeekly       Frequency = "bi-weekly"
	FrequencyMonthly        Frequency = "monthly"
	FrequencyCustomWeekly   Frequency = "custom-weekly"
	FrequencyCustomBiWeekly Frequency = "custom-bi-weekly"
)

// Valid reports whether the frequency is one of the known cadences.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyWeekly, FrequencyBiWeekly, FrequencyMonthly, FrequencyCustomWeekly, FrequencyCustomBiWeekly:
		return true
	}

	return false
}

// Schedule is a standing instruction to produce bookings on a cadence.
// Exactly one of DayOfWeek, DayOfMonth or DaysOfWeek is meaningful,
// determined by Frequency.
type Schedule struct {
	ID                   string         `db:"id"`
	CustomerID           string         `db:"customer_id"`
	CleanerID            *string        `db:"cleaner_id"`
	ServiceType          string         `db:"service_type"`
	Frequency            Frequency      `db:"frequency"`
	DayOfWeek            *int16         `db:"day_of_week"`
	DayOfMonth           *int16         `db:"day_of_month"`
	DaysOfWeek           pq.Int64Array  `db:"days_of_week"`
	PreferredTime        string         `db:"preferred_time"`
	Bedrooms             int            `db:"bedrooms"`
	Bathrooms            int            `db:"bathrooms"`
	Extras               pq.StringArray `db:"extras"`
	Address              string         `db:"address"`
	IsActive             bool           `db:"is_active"`
	StartDate            time.Time      `db:"start_date"`
	EndDate              *time.Time     `db:"end_date"`
	LastGeneratedMonth   *string        `db:"last_generated_month"`
	TotalAmountCents     int64          `db:"total_amount_cents"`
	CleanerEarningsCents int64          `db:"cleaner_earnings_cents"`
	model.Metadata
}
