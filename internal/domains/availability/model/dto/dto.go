package dto

import (
	"github.com/google/uuid"
	"github.com/lib/pq"

	"sheen/internal/domains/availability/model"
	gDto "sheen/shared/dto"
	gModel "sheen/shared/model"
	"sheen/shared/timezone"
)

type SavePreferencesRequest struct {
	PreferredStartTime             *string  `json:"preferred_start_time"    validate:"omitempty,datetime=15:04"`
	PreferredEndTime               *string  `json:"preferred_end_time"      validate:"omitempty,datetime=15:04"`
	PreferredDays                  []int64  `json:"preferred_days"          validate:"omitempty,dive,gte=0,lte=6"`
	BlockedDates                   []string `json:"blocked_dates"           validate:"omitempty,dive,datetime=2006-01-02"`
	AutoDeclineOutsideAvailability bool     `json:"auto_decline_outside_availability"`
	AutoDeclineBelowMinValue       bool     `json:"auto_decline_below_min_value"`
	MinBookingValueCents           *int64   `json:"min_booking_value_cents" validate:"omitempty,gt=0"`
	PreferredServiceTypes          []string `json:"preferred_service_types" validate:"omitempty,dive,max=50"`
	MaxTravelDistanceKm            *float64 `json:"max_travel_distance_km"  validate:"omitempty,gt=0"`
}

func (r *SavePreferencesRequest) ToModel(cleanerID string) model.Preferences {
	return model.Preferences{
		ID:                             uuid.NewString(),
		CleanerID:                      cleanerID,
		PreferredStartTime:             r.PreferredStartTime,
		PreferredEndTime:               r.PreferredEndTime,
		PreferredDays:                  pq.Int64Array(r.PreferredDays),
		BlockedDates:                   pq.StringArray(r.BlockedDates),
		AutoDeclineOutsideAvailability: r.AutoDeclineOutsideAvailability,
		AutoDeclineBelowMinValue:       r.AutoDeclineBelowMinValue,
		MinBookingValueCents:           r.MinBookingValueCents,
		PreferredServiceTypes:          pq.StringArray(r.PreferredServiceTypes),
		MaxTravelDistanceKm:            r.MaxTravelDistanceKm,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  cleanerID,
			ModifiedBy: cleanerID,
		},
	}
}

type AddBlockedSlotRequest struct {
	SlotDate  string `json:"slot_date"  validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time"   validate:"required,datetime=15:04,gtfield=StartTime"`
}

func (r *AddBlockedSlotRequest) ToModel(cleanerID string) model.BlockedSlot {
	return model.BlockedSlot{
		ID:        uuid.NewString(),
		CleanerID: cleanerID,
		SlotDate:  r.SlotDate,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  cleanerID,
			ModifiedBy: cleanerID,
		},
	}
}

type BlockedSlotResponse struct {
	ID        string `json:"id"`
	SlotDate  string `json:"slot_date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func (r *BlockedSlotResponse) FromModel(slot model.BlockedSlot) {
	r.ID = slot.ID
	r.SlotDate = slot.SlotDate
	r.StartTime = slot.StartTime
	r.EndTime = slot.EndTime
}

type PreferencesResponse struct {
	PreferredStartTime             *string               `json:"preferred_start_time,omitempty"`
	PreferredEndTime               *string               `json:"preferred_end_time,omitempty"`
	PreferredDays                  []int64               `json:"preferred_days"`
	BlockedDates                   []string              `json:"blocked_dates"`
	AutoDeclineOutsideAvailability bool                  `json:"auto_decline_outside_availability"`
	AutoDeclineBelowMinValue       bool                  `json:"auto_decline_below_min_value"`
	MinBookingValueCents           *int64                `json:"min_booking_value_cents,omitempty"`
	PreferredServiceTypes          []string              `json:"preferred_service_types"`
	MaxTravelDistanceKm            *float64              `json:"max_travel_distance_km,omitempty"`
	BlockedSlots                   []BlockedSlotResponse `json:"blocked_slots"`
	gDto.Metadata
}

func (r *PreferencesResponse) FromModel(prefs model.Preferences, slots []model.BlockedSlot) {
	r.PreferredStartTime = prefs.PreferredStartTime
	r.PreferredEndTime = prefs.PreferredEndTime
	r.PreferredDays = prefs.PreferredDays
	r.BlockedDates = prefs.BlockedDates
	r.AutoDeclineOutsideAvailability = prefs.AutoDeclineOutsideAvailability
	r.AutoDeclineBelowMinValue = prefs.AutoDeclineBelowMinValue
	r.MinBookingValueCents = prefs.MinBookingValueCents
	r.PreferredServiceTypes = prefs.PreferredServiceTypes
	r.MaxTravelDistanceKm = prefs.MaxTravelDistanceKm

	r.BlockedSlots = make([]BlockedSlotResponse, len(slots))
	for i, slot := range slots {
		r.BlockedSlots[i].FromModel(slot)
	}

	r.Metadata.FromModel(prefs.Metadata)
}
