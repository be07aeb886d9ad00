package model

import (
	"github.com/lib/pq"

	"sheen/shared/model"
)

const (
	TableName  = "availability_preferences"
	EntityName = "availability"

	FieldID                    = "id"
	FieldCleanerID             = "cleaner_id"
	FieldPreferredStartTime    = "preferred_start_time"
	FieldPreferredEndTime      = "preferred_end_time"
	FieldPreferredDays         = "preferred_days"
	FieldBlockedDates          = "blocked_dates"
	FieldAutoDeclineOutside    = "auto_decline_outside_availability"
	FieldAutoDeclineBelowMin   = "auto_decline_below_min_value"
	FieldMinBookingValueCents  = "min_booking_value_cents"
	FieldPreferredServiceTypes = "preferred_service_types"
	FieldMaxTravelDistanceKm   = "max_travel_distance_km"
)

const (
	SlotTableName  = "availability_blocked_slots"
	SlotEntityName = "blocked_slot"

	SlotFieldID        = "id"
	SlotFieldCleanerID = "cleaner_id"
	SlotFieldSlotDate  = "slot_date"
	SlotFieldStartTime = "start_time"
	SlotFieldEndTime   = "end_time"
)

// Preferences constrains which jobs are presented to a cleaner. A missing
// record means no restriction. Each auto-decline switch independently
// gates whether its rule is enforced; with the switch off the underlying
// data is informational only.
type Preferences struct {
	ID                             string         `db:"id"`
	CleanerID                      string         `db:"cleaner_id"`
	PreferredStartTime             *string        `db:"preferred_start_time"`
	PreferredEndTime               *string        `db:"preferred_end_time"`
	PreferredDays                  pq.Int64Array  `db:"preferred_days"`
	BlockedDates                   pq.StringArray `db:"blocked_dates"`
	AutoDeclineOutsideAvailability bool           `db:"auto_decline_outside_availability"`
	AutoDeclineBelowMinValue       bool           `db:"auto_decline_below_min_value"`
	MinBookingValueCents           *int64         `db:"min_booking_value_cents"`
	PreferredServiceTypes          pq.StringArray `db:"preferred_service_types"`
	MaxTravelDistanceKm            *float64       `db:"max_travel_distance_km"`
	model.Metadata
}

// BlockedSlot is a cleaner-declared unavailable window on one specific
// date. The interval is half-open: start inclusive, end exclusive.
type BlockedSlot struct {
	ID        string `db:"id"`
	CleanerID string `db:"cleaner_id"`
	SlotDate  string `db:"slot_date"`
	StartTime string `db:"start_time"`
	EndTime   string `db:"end_time"`
	model.Metadata
}
