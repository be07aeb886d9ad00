package filter_test

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"sheen/internal/domains/availability/filter"
	"sheen/internal/domains/availability/model"
)

func strptr(v string) *string     { return &v }
func int64ptr(v int64) *int64     { return &v }
func floatptr(v float64) *float64 { return &v }

func TestEvaluate_NilPreferencesAllowEverything(t *testing.T) {
	decision := filter.Evaluate(nil, nil, filter.Candidate{
		Date: "2024-06-10",
		Time: "03:00",
	})

	assert.True(t, decision.Allowed)
}

func TestEvaluate_BlockedDateDeniesRegardlessOfSwitches(t *testing.T) {
	prefs := &model.Preferences{
		BlockedDates:                   pq.StringArray{"2024-06-10"},
		AutoDeclineOutsideAvailability: false,
		AutoDeclineBelowMinValue:       false,
	}

	decision := filter.Evaluate(prefs, nil, filter.Candidate{
		Date:             "2024-06-10",
		Time:             "10:00",
		TotalAmountCents: 1_000_000,
	})

	assert.False(t, decision.Allowed)
	assert.Equal(t, filter.ReasonBlockedDate, decision.Reason)
}

func TestEvaluate_BlockedSlotHalfOpenInterval(t *testing.T) {
	prefs := &model.Preferences{}
	slots := []model.BlockedSlot{
		{SlotDate: "2024-06-11", StartTime: "09:00", EndTime: "12:00"},
	}

	tests := []struct {
		name    string
		time    string
		allowed bool
	}{
		{name: "before the slot", time: "08:59", allowed: true},
		{name: "at slot start", time: "09:00", allowed: false},
		{name: "inside the slot", time: "11:59", allowed: false},
		{name: "at slot end", time: "12:00", allowed: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := filter.Evaluate(prefs, slots, filter.Candidate{Date: "2024-06-11", Time: tt.time})

			assert.Equal(t, tt.allowed, decision.Allowed)
			if !tt.allowed {
				assert.Equal(t, filter.ReasonBlockedSlot, decision.Reason)
			}
		})
	}
}

func TestEvaluate_PreferredDaysGatedBySwitch(t *testing.T) {
	prefs := &model.Preferences{
		PreferredDays:                  pq.Int64Array{1, 2, 3}, // Mon-Wed
		AutoDeclineOutsideAvailability: false,
	}

	// 2024-06-08 is a Saturday.
	decision := filter.Evaluate(prefs, nil, filter.Candidate{Date: "2024-06-08", Time: "10:00"})
	assert.True(t, decision.Allowed, "switch off means preferred days are informational only")

	prefs.AutoDeclineOutsideAvailability = true

	decision = filter.Evaluate(prefs, nil, filter.Candidate{Date: "2024-06-08", Time: "10:00"})
	assert.False(t, decision.Allowed)
	assert.Equal(t, filter.ReasonOutsideDays, decision.Reason)

	// 2024-06-10 is a Monday.
	decision = filter.Evaluate(prefs, nil, filter.Candidate{Date: "2024-06-10", Time: "10:00"})
	assert.True(t, decision.Allowed)
}

func TestEvaluate_PreferredTimeWindowGatedBySwitch(t *testing.T) {
	prefs := &model.Preferences{
		PreferredStartTime:             strptr("08:00"),
		PreferredEndTime:               strptr("16:00"),
		AutoDeclineOutsideAvailability: false,
	}

	decision := filter.Evaluate(prefs, nil, filter.Candidate{Date: "2024-06-10", Time: "18:00"})
	assert.True(t, decision.Allowed, "switch off means the window never filters")

	prefs.AutoDeclineOutsideAvailability = true

	decision = filter.Evaluate(prefs, nil, filter.Candidate{Date: "2024-06-10", Time: "18:00"})
	assert.False(t, decision.Allowed)
	assert.Equal(t, filter.ReasonOutsideWindow, decision.Reason)

	decision = filter.Evaluate(prefs, nil, filter.Candidate{Date: "2024-06-10", Time: "16:00"})
	assert.False(t, decision.Allowed, "window end is exclusive")

	decision = filter.Evaluate(prefs, nil, filter.Candidate{Date: "2024-06-10", Time: "08:00"})
	assert.True(t, decision.Allowed, "window start is inclusive")
}

func TestEvaluate_MinimumValue(t *testing.T) {
	prefs := &model.Preferences{
		AutoDeclineBelowMinValue: true,
		MinBookingValueCents:     int64ptr(10_000),
	}

	decision := filter.Evaluate(prefs, nil, filter.Candidate{Date: "2024-06-10", Time: "10:00", TotalAmountCents: 9_999})
	assert.False(t, decision.Allowed)
	assert.Equal(t, filter.ReasonBelowMinValue, decision.Reason)

	decision = filter.Evaluate(prefs, nil, filter.Candidate{Date: "2024-06-10", Time: "10:00", TotalAmountCents: 10_000})
	assert.True(t, decision.Allowed, "exactly the minimum is allowed")

	prefs.AutoDeclineBelowMinValue = false

	decision = filter.Evaluate(prefs, nil, filter.Candidate{Date: "2024-06-10", Time: "10:00", TotalAmountCents: 1})
	assert.True(t, decision.Allowed, "switch off disables the rule")
}

func TestEvaluate_MaxDistance(t *testing.T) {
	prefs := &model.Preferences{
		MaxTravelDistanceKm: floatptr(25),
	}

	decision := filter.Evaluate(prefs, nil, filter.Candidate{Date: "2024-06-10", Time: "10:00", DistanceKm: floatptr(30)})
	assert.False(t, decision.Allowed)
	assert.Equal(t, filter.ReasonBeyondDistance, decision.Reason)

	decision = filter.Evaluate(prefs, nil, filter.Candidate{Date: "2024-06-10", Time: "10:00", DistanceKm: floatptr(25)})
	assert.True(t, decision.Allowed)

	decision = filter.Evaluate(prefs, nil, filter.Candidate{Date: "2024-06-10", Time: "10:00"})
	assert.True(t, decision.Allowed, "unknown distance never denies")
}

func TestEvaluate_ServiceTypesNeverDeny(t *testing.T) {
	prefs := &model.Preferences{
		PreferredServiceTypes: pq.StringArray{"standard", "deep"},
	}

	decision := filter.Evaluate(prefs, nil, filter.Candidate{Date: "2024-06-10", Time: "10:00", ServiceType: "move-out"})

	assert.True(t, decision.Allowed)
}

func TestEvaluate_FirstFailingRuleWins(t *testing.T) {
	prefs := &model.Preferences{
		BlockedDates:                   pq.StringArray{"2024-06-10"},
		PreferredDays:                  pq.Int64Array{1},
		AutoDeclineOutsideAvailability: true,
		AutoDeclineBelowMinValue:       true,
		MinBookingValueCents:           int64ptr(50_000),
	}

	// The job fails blocked-date and min-value at once; the blocked-date
	// reason wins because it is evaluated first.
	decision := filter.Evaluate(prefs, nil, filter.Candidate{Date: "2024-06-10", Time: "10:00", TotalAmountCents: 100})

	assert.False(t, decision.Allowed)
	assert.Equal(t, filter.ReasonBlockedDate, decision.Reason)
}
