package model

import "sheen/shared/model"

const (
	TableName  = "booking_photos"
	EntityName = "photo"

	FieldID        = "id"
	FieldBookingID = "booking_id"
	FieldCleanerID = "cleaner_id"
	FieldPhase     = "phase"
	FieldURL       = "url"
	FieldCaption   = "caption"
)

// Phase marks whether a photo documents the state before or after the
// cleaning.
type Phase string

const (
	PhaseBefore Phase = "before"
	PhaseAfter  Phase = "after"
)

func (p Phase) Valid() bool {
	return p == PhaseBefore || p == PhaseAfter
}

type Photo struct {
	ID        string `db:"id"`
	BookingID string `db:"booking_id"`
	CleanerID string `db:"cleaner_id"`
	Phase     Phase  `db:"phase"`
	URL       string `db:"url"`
	Caption   string `db:"caption"`
	model.Metadata
}
