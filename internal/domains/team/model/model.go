package model

import (
	"sheen/shared/model"
)

const (
	TableName       = "booking_teams"
	MemberTableName = "booking_team_members"
	EntityName      = "team"

	FieldID           = "id"
	FieldBookingID    = "booking_id"
	FieldName         = "name"
	FieldSupervisorID = "supervisor_id"
	FieldTeamID       = "team_id"
	FieldCleanerID    = "cleaner_id"
)

// Name is one of the fixed crew names used for multi-cleaner bookings.
type Name string

const (
	NameAlpha   Name = "alpha"
	NameBravo   Name = "bravo"
	NameCharlie Name = "charlie"
	NameDelta   Name = "delta"
)

// Valid reports whether the name is a known crew.
func (n Name) Valid() bool {
	switch n {
	case NameAlpha, NameBravo, NameCharlie, NameDelta:
		return true
	}

	return false
}

// Team is the single crew record attached to a booking that requires a
// team. The supervisor must also appear as a member.
type Team struct {
	ID           string `db:"id"`
	BookingID    string `db:"booking_id"`
	Name         Name   `db:"name"`
	SupervisorID string `db:"supervisor_id"`
	model.Metadata
}

// Member links one cleaner to a team with that cleaner's share of the
// booking's earnings.
type Member struct {
	ID            string `db:"id"`
	TeamID        string `db:"team_id"`
	CleanerID     string `db:"cleaner_id"`
	EarningsCents int64  `db:"earnings_cents"`
	model.Metadata
}
