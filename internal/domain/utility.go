package domain

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

type UtilityType string

const (
	UtilityTypeElectricity UtilityType = "ELECTRICITY"
	UtilityTypeWater       UtilityType = "WATER"
	UtilityTypeInternet    UtilityType = "INTERNET"
	UtilityTypeOther       UtilityType = "OTHER"
)

func (t UtilityType) Valid() bool {
	switch t {
	case UtilityTypeElectricity, UtilityTypeWater, UtilityTypeInternet, UtilityTypeOther:
		return true
	}
	return false
}

// UtilityReading is a metered consumption snapshot. Consumption and cost are
// derived, never stored. Readings are immutable once saved; corrections go
// through deletion and re-entry.
type UtilityReading struct {
	recorder

	ID               string      `json:"id"`
	RoomID           string      `json:"room_id"`
	Type             UtilityType `json:"type"`
	PreviousReading  float64     `json:"previous_reading"`
	CurrentReading   float64     `json:"current_reading"`
	RatePerUnitCents int64       `json:"rate_per_unit_cents"`
	ReadingDate      time.Time   `json:"reading_date"`
	PeriodStart      time.Time   `json:"billing_period_start"`
	PeriodEnd        time.Time   `json:"billing_period_end"`
	CreatedAt        time.Time   `json:"created_at"`
}

// NewUtilityReading validates every rule and reports all failures together.
// The reading-regression rule protects all downstream billing math.
func NewUtilityReading(roomID string, utilityType UtilityType, previous, current float64, ratePerUnitCents int64, readingDate, periodStart, periodEnd time.Time) (*UtilityReading, error) {
	var violations []string
	if strings.TrimSpace(roomID) == "" {
		violations = append(violations, "room id is required")
	}
	if !utilityType.Valid() {
		violations = append(violations, fmt.Sprintf("unknown utility type %q", string(utilityType)))
	}
	if previous < 0 {
		violations = append(violations, "previous reading cannot be negative")
	}
	if current < 0 {
		violations = append(violations, "current reading cannot be negative")
	}
	if current < previous {
		violations = append(violations, "current reading cannot be less than previous reading")
	}
	if ratePerUnitCents <= 0 {
		violations = append(violations, "rate per unit must be a positive amount")
	}
	if periodEnd.Before(periodStart) {
		violations = append(violations, "billing period end cannot be before billing period start")
	}
	if len(violations) > 0 {
		return nil, NewValidationError(violations...)
	}
	r := &UtilityReading{
		ID:               uuid.NewString(),
		RoomID:           roomID,
		Type:             utilityType,
		PreviousReading:  previous,
		CurrentReading:   current,
		RatePerUnitCents: ratePerUnitCents,
		ReadingDate:      readingDate,
		PeriodStart:      periodStart,
		PeriodEnd:        periodEnd,
		CreatedAt:        time.Now(),
	}
	r.record(EventUtilityReadingRecorded, map[string]string{
		"reading_id": r.ID,
		"room_id":    roomID,
		"type":       string(utilityType),
	})
	return r, nil
}

// Consumption is the metered usage for the period.
func (r *UtilityReading) Consumption() float64 {
	return r.CurrentReading - r.PreviousReading
}

// CostCents is consumption times the per-unit rate, rounded to the cent.
func (r *UtilityReading) CostCents() int64 {
	return int64(math.Round(r.Consumption() * float64(r.RatePerUnitCents)))
}
