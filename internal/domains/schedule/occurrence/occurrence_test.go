package occurrence_test

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"sheen/internal/domains/schedule/model"
	"sheen/internal/domains/schedule/occurrence"
)

func date(value string) time.Time {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}

	return parsed
}

func dateStrings(dates []time.Time) []string {
	formatted := make([]string, len(dates))
	for i, d := range dates {
		formatted[i] = d.Format("2006-01-02")
	}

	return formatted
}

func int16ptr(v int16) *int16 { return &v }

func TestForMonth_Weekly(t *testing.T) {
	sched := model.Schedule{
		Frequency: model.FrequencyWeekly,
		DayOfWeek: int16ptr(1), // Monday
		StartDate: date("2024-01-01"),
	}

	dates, err := occurrence.ForMonth(sched, 2024, time.January)

	assert.NoError(t, err)
	assert.Equal(t, []string{"2024-01-01", "2024-01-08", "2024-01-15", "2024-01-22", "2024-01-29"}, dateStrings(dates))
}

func TestForMonth_WeeklyCountIsFourOrFive(t *testing.T) {
	sched := model.Schedule{
		Frequency: model.FrequencyWeekly,
		DayOfWeek: int16ptr(3),
		StartDate: date("2023-01-01"),
	}

	for month := time.January; month <= time.December; month++ {
		dates, err := occurrence.ForMonth(sched, 2024, month)

		assert.NoError(t, err)
		assert.Contains(t, []int{4, 5}, len(dates), "month %s", month)

		for i := 1; i < len(dates); i++ {
			assert.True(t, dates[i].After(dates[i-1]), "dates must be ascending")
		}
	}
}

func TestForMonth_MonthlyDay31SkipsShortMonths(t *testing.T) {
	sched := model.Schedule{
		Frequency:  model.FrequencyMonthly,
		DayOfMonth: int16ptr(31),
		StartDate:  date("2024-01-01"),
	}

	february, err := occurrence.ForMonth(sched, 2024, time.February)
	assert.NoError(t, err)
	assert.Empty(t, february, "February has no day 31 and must not clamp")

	april, err := occurrence.ForMonth(sched, 2024, time.April)
	assert.NoError(t, err)
	assert.Empty(t, april, "April has 30 days")

	january, err := occurrence.ForMonth(sched, 2024, time.January)
	assert.NoError(t, err)
	assert.Equal(t, []string{"2024-01-31"}, dateStrings(january))

	march, err := occurrence.ForMonth(sched, 2024, time.March)
	assert.NoError(t, err)
	assert.Equal(t, []string{"2024-03-31"}, dateStrings(march))
}

func TestForMonth_BiWeeklyAnchorSurvivesMonthBoundary(t *testing.T) {
	sched := model.Schedule{
		Frequency: model.FrequencyBiWeekly,
		DayOfWeek: int16ptr(1),
		StartDate: date("2024-01-01"), // a Monday
	}

	january, err := occurrence.ForMonth(sched, 2024, time.January)
	assert.NoError(t, err)

	february, err := occurrence.ForMonth(sched, 2024, time.February)
	assert.NoError(t, err)

	all := append(january, february...)
	assert.Equal(t, []string{"2024-01-01", "2024-01-15", "2024-01-29", "2024-02-12", "2024-02-26"}, dateStrings(all))

	for i := 1; i < len(all); i++ {
		assert.Equal(t, 14*24*time.Hour, all[i].Sub(all[i-1]), "occurrences must be exactly 14 days apart")
	}
}

func TestForMonth_CustomWeekly(t *testing.T) {
	sched := model.Schedule{
		Frequency:  model.FrequencyCustomWeekly,
		DaysOfWeek: pq.Int64Array{1, 4}, // Monday and Thursday
		StartDate:  date("2024-01-01"),
	}

	dates, err := occurrence.ForMonth(sched, 2024, time.January)

	assert.NoError(t, err)
	assert.Equal(t, []string{
		"2024-01-01", "2024-01-04", "2024-01-08", "2024-01-11",
		"2024-01-15", "2024-01-18", "2024-01-22", "2024-01-25", "2024-01-29",
	}, dateStrings(dates))
}

func TestForMonth_CustomBiWeeklyAnchorsPerWeekday(t *testing.T) {
	sched := model.Schedule{
		Frequency:  model.FrequencyCustomBiWeekly,
		DaysOfWeek: pq.Int64Array{1, 4},
		StartDate:  date("2024-01-01"),
	}

	dates, err := occurrence.ForMonth(sched, 2024, time.January)

	assert.NoError(t, err)
	// Mondays anchor at Jan 1, Thursdays at Jan 4; each weekday keeps its
	// own every-other-week rhythm.
	assert.Equal(t, []string{"2024-01-01", "2024-01-04", "2024-01-15", "2024-01-18", "2024-01-29"}, dateStrings(dates))
}

func TestForMonth_StartDateMidMonth(t *testing.T) {
	sched := model.Schedule{
		Frequency: model.FrequencyWeekly,
		DayOfWeek: int16ptr(1),
		StartDate: date("2024-01-16"),
	}

	dates, err := occurrence.ForMonth(sched, 2024, time.January)

	assert.NoError(t, err)
	assert.Equal(t, []string{"2024-01-22", "2024-01-29"}, dateStrings(dates))
}

func TestForMonth_EndDateInclusive(t *testing.T) {
	end := date("2024-01-15")
	sched := model.Schedule{
		Frequency: model.FrequencyWeekly,
		DayOfWeek: int16ptr(1),
		StartDate: date("2024-01-01"),
		EndDate:   &end,
	}

	dates, err := occurrence.ForMonth(sched, 2024, time.January)

	assert.NoError(t, err)
	assert.Equal(t, []string{"2024-01-01", "2024-01-08", "2024-01-15"}, dateStrings(dates), "an occurrence on the end date itself is generated")
}

func TestForMonth_InvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		sched model.Schedule
	}{
		{
			name:  "unknown frequency",
			sched: model.Schedule{Frequency: "fortnightly"},
		},
		{
			name:  "weekly without day of week",
			sched: model.Schedule{Frequency: model.FrequencyWeekly},
		},
		{
			name:  "weekly with day of week out of range",
			sched: model.Schedule{Frequency: model.FrequencyWeekly, DayOfWeek: int16ptr(7)},
		},
		{
			name:  "monthly without day of month",
			sched: model.Schedule{Frequency: model.FrequencyMonthly},
		},
		{
			name:  "custom weekly with empty set",
			sched: model.Schedule{Frequency: model.FrequencyCustomWeekly},
		},
		{
			name:  "custom weekly with out of range entry",
			sched: model.Schedule{Frequency: model.FrequencyCustomWeekly, DaysOfWeek: pq.Int64Array{1, 9}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := occurrence.ForMonth(tt.sched, 2024, time.January)

			assert.Error(t, err)
		})
	}
}

func TestForMonth_Idempotent(t *testing.T) {
	sched := model.Schedule{
		Frequency: model.FrequencyBiWeekly,
		DayOfWeek: int16ptr(5),
		StartDate: date("2024-02-09"),
	}

	first, err := occurrence.ForMonth(sched, 2024, time.March)
	assert.NoError(t, err)

	second, err := occurrence.ForMonth(sched, 2024, time.March)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestUpcoming_WeeklyWednesdaysOneMonthHorizon(t *testing.T) {
	sched := model.Schedule{
		Frequency: model.FrequencyWeekly,
		DayOfWeek: int16ptr(3),
		StartDate: date("2024-03-01"),
	}

	dates, err := occurrence.Upcoming(sched, date("2024-03-01"), 1)

	assert.NoError(t, err)
	assert.Equal(t, []string{"2024-03-06", "2024-03-13", "2024-03-20", "2024-03-27"}, dateStrings(dates))
}

func TestUpcoming_DropsDatesBeforeFrom(t *testing.T) {
	sched := model.Schedule{
		Frequency: model.FrequencyWeekly,
		DayOfWeek: int16ptr(1),
		StartDate: date("2024-01-01"),
	}

	dates, err := occurrence.Upcoming(sched, date("2024-01-20"), 1)

	assert.NoError(t, err)
	assert.Equal(t, []string{"2024-01-22", "2024-01-29"}, dateStrings(dates))
}

func TestUpcoming_CappedAtMaxDates(t *testing.T) {
	sched := model.Schedule{
		Frequency:  model.FrequencyCustomWeekly,
		DaysOfWeek: pq.Int64Array{0, 1, 2, 3, 4, 5, 6},
		StartDate:  date("2024-01-01"),
	}

	dates, err := occurrence.Upcoming(sched, date("2024-01-01"), 12)

	assert.NoError(t, err)
	assert.Len(t, dates, occurrence.MaxUpcomingDates)
}

func TestUpcoming_DefaultHorizon(t *testing.T) {
	sched := model.Schedule{
		Frequency:  model.FrequencyMonthly,
		DayOfMonth: int16ptr(15),
		StartDate:  date("2024-01-01"),
	}

	dates, err := occurrence.Upcoming(sched, date("2024-01-01"), 0)

	assert.NoError(t, err)
	assert.Len(t, dates, 12, "default horizon is twelve months")
}
