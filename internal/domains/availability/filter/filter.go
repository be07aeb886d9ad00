package filter

import (
	"slices"
	"time"

	"sheen/internal/domains/availability/model"
)

// Candidate is the job snapshot the filter evaluates. Date is the ISO
// calendar date (YYYY-MM-DD) and Time the 24-hour HH:MM start time.
// DistanceKm is nil when no computed distance is available.
type Candidate struct {
	Date             string
	Time             string
	ServiceType      string
	TotalAmountCents int64
	DistanceKm       *float64
}

// Decision is the outcome for one candidate. Reason is set on denial.
type Decision struct {
	Allowed bool
	Reason  string
}

const (
	ReasonBlockedDate    = "date is blocked"
	ReasonBlockedSlot    = "time falls in a blocked slot"
	ReasonOutsideDays    = "outside preferred days"
	ReasonOutsideWindow  = "outside preferred time window"
	ReasonBelowMinValue  = "below minimum booking value"
	ReasonBeyondDistance = "beyond maximum travel distance"
)

var allow = Decision{Allowed: true}

// Evaluate decides whether one job is shown or claimable under one
// cleaner's preferences. Nil preferences allow everything. Rules run in a
// fixed order and the first failing rule supplies the denial reason.
func Evaluate(prefs *model.Preferences, slots []model.BlockedSlot, job Candidate) Decision {
	if prefs == nil {
		return allow
	}

	// Blocked dates deny unconditionally, no switch involved.
	if slices.Contains(prefs.BlockedDates, job.Date) {
		return Decision{Reason: ReasonBlockedDate}
	}

	for _, slot := range slots {
		if slot.SlotDate == job.Date && inHalfOpenWindow(job.Time, slot.StartTime, slot.EndTime) {
			return Decision{Reason: ReasonBlockedSlot}
		}
	}

	if prefs.AutoDeclineOutsideAvailability {
		if len(prefs.PreferredDays) > 0 {
			weekday, ok := weekdayOf(job.Date)
			if ok && !slices.Contains(prefs.PreferredDays, int64(weekday)) {
				return Decision{Reason: ReasonOutsideDays}
			}
		}

		if prefs.PreferredStartTime != nil && prefs.PreferredEndTime != nil &&
			!inHalfOpenWindow(job.Time, *prefs.PreferredStartTime, *prefs.PreferredEndTime) {
			return Decision{Reason: ReasonOutsideWindow}
		}
	}

	if prefs.AutoDeclineBelowMinValue && prefs.MinBookingValueCents != nil &&
		job.TotalAmountCents < *prefs.MinBookingValueCents {
		return Decision{Reason: ReasonBelowMinValue}
	}

	// An absent distance means unknown, which never denies.
	if prefs.MaxTravelDistanceKm != nil && job.DistanceKm != nil &&
		*job.DistanceKm > *prefs.MaxTravelDistanceKm {
		return Decision{Reason: ReasonBeyondDistance}
	}

	// Preferred service types stay a soft preference: collected, never
	// enforced.
	return allow
}

func inHalfOpenWindow(value, start, end string) bool {
	return value >= start && value < end
}

func weekdayOf(date string) (time.Weekday, bool) {
	parsed, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, false
	}

	return parsed.Weekday(), true
}
