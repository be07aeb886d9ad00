package occurrence

import (
	"fmt"
	"time"

	"sheen/internal/domains/schedule/model"
	"sheen/shared/failure"
)

const (
	// DefaultHorizonMonths is how far Upcoming looks ahead when the caller
	// does not say.
	DefaultHorizonMonths = 12

	// MaxUpcomingDates caps the number of dates Upcoming ever returns.
	MaxUpcomingDates = 50

	daysPerWeek = 7
)

// ForMonth expands a schedule into the ordered calendar dates within
// (year, month) on which a booking should exist. It is pure: no I/O, no
// clock reads, identical output for identical input.
//
// Dates earlier than the schedule start date are dropped. An end date is
// inclusive: an occurrence falling exactly on it is generated.
func ForMonth(sched model.Schedule, year int, month time.Month) ([]time.Time, error) {
	if err := validate(sched); err != nil {
		return nil, err
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	var dates []time.Time

	switch sched.Frequency {
	case model.FrequencyWeekly:
		dates = weekdayDates(year, month, daysInMonth, int(*sched.DayOfWeek))
	case model.FrequencyBiWeekly:
		dates = biWeeklyDates(year, month, daysInMonth, int(*sched.DayOfWeek), sched.StartDate)
	case model.FrequencyMonthly:
		// A schedule on day 31 simply skips shorter months rather than
		// drifting to month-end, so the customer's billing day never moves.
		if int(*sched.DayOfMonth) <= daysInMonth {
			dates = []time.Time{time.Date(year, month, int(*sched.DayOfMonth), 0, 0, 0, 0, time.UTC)}
		}
	case model.FrequencyCustomWeekly:
		for day := 1; day <= daysInMonth; day++ {
			date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
			if containsWeekday(sched.DaysOfWeek, date.Weekday()) {
				dates = append(dates, date)
			}
		}
	case model.FrequencyCustomBiWeekly:
		// The even-offset anchor rule applies independently per weekday.
		for day := 1; day <= daysInMonth; day++ {
			date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
			if containsWeekday(sched.DaysOfWeek, date.Weekday()) && onBiWeeklyCadence(date, sched.StartDate) {
				dates = append(dates, date)
			}
		}
	}

	return boundaryFilter(dates, sched.StartDate, sched.EndDate), nil
}

// Upcoming layers "actionable dates from now on" over ForMonth: it walks
// month by month from the month of `from`, keeps dates on or after `from`,
// and stops after horizonMonths months or MaxUpcomingDates dates,
// whichever comes first. A non-positive horizon means DefaultHorizonMonths.
func Upcoming(sched model.Schedule, from time.Time, horizonMonths int) ([]time.Time, error) {
	if horizonMonths <= 0 {
		horizonMonths = DefaultHorizonMonths
	}

	today := midnight(from)
	cursor := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)

	var upcoming []time.Time

	for i := 0; i < horizonMonths; i++ {
		dates, err := ForMonth(sched, cursor.Year(), cursor.Month())
		if err != nil {
			return nil, err
		}

		for _, date := range dates {
			if date.Before(today) {
				continue
			}

			upcoming = append(upcoming, date)

			if len(upcoming) == MaxUpcomingDates {
				return upcoming, nil
			}
		}

		cursor = cursor.AddDate(0, 1, 0)
	}

	return upcoming, nil
}

func validate(sched model.Schedule) error {
	if !sched.Frequency.Valid() {
		return failure.BadRequestFromString(fmt.Sprintf("unknown frequency: %s", sched.Frequency)) //nolint:wrapcheck
	}

	switch sched.Frequency {
	case model.FrequencyWeekly, model.FrequencyBiWeekly:
		if sched.DayOfWeek == nil || *sched.DayOfWeek < 0 || *sched.DayOfWeek > 6 {
			return failure.BadRequestFromString("day_of_week must be between 0 and 6") //nolint:wrapcheck
		}
	case model.FrequencyMonthly:
		if sched.DayOfMonth == nil || *sched.DayOfMonth < 1 || *sched.DayOfMonth > 31 {
			return failure.BadRequestFromString("day_of_month must be between 1 and 31") //nolint:wrapcheck
		}
	case model.FrequencyCustomWeekly, model.FrequencyCustomBiWeekly:
		if len(sched.DaysOfWeek) == 0 {
			return failure.BadRequestFromString("days_of_week must not be empty") //nolint:wrapcheck
		}

		for _, day := range sched.DaysOfWeek {
			if day < 0 || day > 6 {
				return failure.BadRequestFromString("days_of_week entries must be between 0 and 6") //nolint:wrapcheck
			}
		}
	}

	return nil
}

func weekdayDates(year int, month time.Month, daysInMonth, weekday int) []time.Time {
	var dates []time.Time

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if int(date.Weekday()) == weekday {
			dates = append(dates, date)
		}
	}

	return dates
}

func biWeeklyDates(year int, month time.Month, daysInMonth, weekday int, startDate time.Time) []time.Time {
	var dates []time.Time

	for day := 1; day <= daysInMonth; day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if int(date.Weekday()) == weekday && onBiWeeklyCadence(date, startDate) {
			dates = append(dates, date)
		}
	}

	return dates
}

// onBiWeeklyCadence anchors the cadence to the first date on or after the
// schedule start that shares the candidate's weekday, then keeps only
// even week offsets from that anchor. Counting whole weeks from a fixed
// anchor is what lets the every-other-week rhythm survive month
// boundaries.
func onBiWeeklyCadence(date, startDate time.Time) bool {
	anchor := firstWeekdayOnOrAfter(midnight(startDate), date.Weekday())
	if date.Before(anchor) {
		return false
	}

	days := int(date.Sub(anchor).Hours() / 24)
	weeks := days / daysPerWeek

	return weeks%2 == 0
}

func firstWeekdayOnOrAfter(date time.Time, weekday time.Weekday) time.Time {
	offset := (int(weekday) - int(date.Weekday()) + daysPerWeek) % daysPerWeek

	return date.AddDate(0, 0, offset)
}

func boundaryFilter(dates []time.Time, startDate time.Time, endDate *time.Time) []time.Time {
	start := midnight(startDate)

	var filtered []time.Time

	for _, date := range dates {
		if date.Before(start) {
			continue
		}

		if endDate != nil && date.After(midnight(*endDate)) {
			continue
		}

		filtered = append(filtered, date)
	}

	return filtered
}

func containsWeekday(days []int64, weekday time.Weekday) bool {
	for _, day := range days {
		if day == int64(weekday) {
			return true
		}
	}

	return false
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
