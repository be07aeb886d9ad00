package model

import (
	"time"

	"sheen/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "job"

	FieldID                  = "id"
	FieldRecurringScheduleID = "recurring_schedule_id"
	FieldCustomerID          = "customer_id"
	FieldCustomerName        = "customer_name"
	FieldCustomerPhone       = "customer_phone"
	FieldServiceType         = "service_type"
	FieldBookingDate         = "booking_date"
	FieldBookingTime         = "booking_time"
	FieldAddress             = "address"
	FieldStatus              = "status"
	FieldCleanerID           = "cleaner_id"
	FieldRequiresTeam        = "requires_team"
	FieldAcceptedAt          = "accepted_at"
	FieldReviewID            = "review_id"
)

// Status is the booking state machine. The forward path is
// pending -> accepted -> on_my_way -> in_progress -> completed; declined
// and cancelled are the side exits.
type Status string

const (
	StatusPending    Status = "pending"
	StatusAccepted   Status = "accepted"
	StatusOnMyWay    Status = "on_my_way"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusDeclined   Status = "declined"
	StatusCancelled  Status = "cancelled"
)

// Valid reports whether the status is a known state.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusOnMyWay, StatusInProgress, StatusCompleted, StatusDeclined, StatusCancelled:
		return true
	}

	return false
}

// Predecessor returns the state that must currently hold for a transition
// into s, for the cleaner-driven forward path only.
func (s Status) Predecessor() (Status, bool) {
	switch s {
	case StatusOnMyWay:
		return StatusAccepted, true
	case StatusInProgress:
		return StatusOnMyWay, true
	case StatusCompleted:
		return StatusInProgress, true
	}

	return "", false
}

// Job is one concrete cleaning appointment, standalone or generated from
// a recurring schedule. CleanerID stays nil while the job is unclaimed;
// team jobs never populate it and are assigned through booking_teams
// instead.
type Job struct {
	ID                   string     `db:"id"`
	RecurringScheduleID  *string    `db:"recurring_schedule_id"`
	CustomerID           string     `db:"customer_id"`
	CustomerName         string     `db:"customer_name"`
	CustomerPhone        string     `db:"customer_phone"`
	ServiceType          string     `db:"service_type"`
	BookingDate          time.Time  `db:"booking_date"`
	BookingTime          string     `db:"booking_time"`
	Address              string     `db:"address"`
	Status               Status     `db:"status"`
	CleanerID            *string    `db:"cleaner_id"`
	RequiresTeam         bool       `db:"requires_team"`
	TotalAmountCents     int64      `db:"total_amount_cents"`
	ServiceFeeCents      int64      `db:"service_fee_cents"`
	CleanerEarningsCents int64      `db:"cleaner_earnings_cents"`
	TipCents             int64      `db:"tip_cents"`
	AcceptedAt           *time.Time `db:"accepted_at"`
	ReviewID             *string    `db:"review_id"`
	ReviewRequestedAt    *time.Time `db:"review_requested_at"`
	model.Metadata
}
