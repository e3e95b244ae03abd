package domain

import (
	"time"
)

// DateLayout is the calendar-date wire format used by the backoffice API.
const DateLayout = "2006-01-02"

// RateAdjustment is a dated delta applied on top of a room type's base rate.
// Amounts may be negative; adjustments are append-only (never deleted here).
type RateAdjustment struct {
	ID               int64   `json:"id"`
	RoomTypeID       int64   `json:"room_type_id"`
	AdjustmentAmount float64 `json:"adjustment_amount"`
	EffectiveDate    string  `json:"effective_date"`
	Reason           string  `json:"reason"`
}

type RateAdjustmentCreate struct {
	RoomTypeID       int64   `json:"room_type_id"`
	AdjustmentAmount float64 `json:"adjustment_amount"`
	EffectiveDate    string  `json:"effective_date"`
	Reason           string  `json:"reason"`
}

// EffectiveRate is derived, never persisted: base rate plus the most recent
// qualifying adjustment as of EffectiveDate.
type EffectiveRate struct {
	RoomTypeID        int64   `json:"room_type_id"`
	BaseRate          float64 `json:"base_rate"`
	EffectiveRate     float64 `json:"effective_rate"`
	AdjustmentApplied float64 `json:"adjustment_applied"`
	EffectiveDate     string  `json:"effective_date"`
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// EffectiveRateOn computes the effective rate for rt on the given date from an
// adjustment history: the applied adjustment is the one with the latest
// effective_date <= on, ties broken by the highest id (latest insert wins,
// matching the backend). With no eligible adjustment the base rate stands.
// Adjustments belonging to other room types or carrying unparseable dates are
// ignored.
func EffectiveRateOn(rt RoomType, adjustments []RateAdjustment, on time.Time) EffectiveRate {
	var best *RateAdjustment
	var bestDate time.Time
	for i := range adjustments {
		a := &adjustments[i]
		if a.RoomTypeID != rt.ID {
			continue
		}
		d, err := ParseDate(a.EffectiveDate)
		if err != nil || d.After(on) {
			continue
		}
		if best == nil || d.After(bestDate) || (d.Equal(bestDate) && a.ID > best.ID) {
			best = a
			bestDate = d
		}
	}

	out := EffectiveRate{
		RoomTypeID:    rt.ID,
		BaseRate:      rt.BaseRate,
		EffectiveRate: rt.BaseRate,
		EffectiveDate: FormatDate(on),
	}
	if best != nil {
		out.AdjustmentApplied = best.AdjustmentAmount
		out.EffectiveRate = rt.BaseRate + best.AdjustmentAmount
	}
	return out
}
