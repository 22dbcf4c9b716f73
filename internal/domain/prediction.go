package domain

import (
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// CalendarDateLayout wire format of prediction dates.
const CalendarDateLayout = "2006-01-02"

// CalendarDate day without time of day or zone.
type CalendarDate struct {
	time.Time
}

// NewCalendarDate creates a CalendarDate in UTC.
func NewCalendarDate(year int, month time.Month, day int) CalendarDate {
	return CalendarDate{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseCalendarDate parses YYYY-MM-DD.
func ParseCalendarDate(s string) (CalendarDate, error) {
	t, err := time.Parse(CalendarDateLayout, s)
	if err != nil {
		return CalendarDate{}, errors.Wrapf(err, "parse calendar date %q", s)
	}
	return CalendarDate{Time: t}, nil
}

// String returns the YYYY-MM-DD representation.
func (d CalendarDate) String() string {
	return d.Format(CalendarDateLayout)
}

// Long returns the human readable form, e.g. "May 18, 2026".
func (d CalendarDate) Long() string {
	return d.Format("January 2, 2006")
}

// MarshalJSON encodes the date as YYYY-MM-DD.
func (d CalendarDate) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a YYYY-MM-DD string.
func (d *CalendarDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return errors.Wrap(err, "calendar date must be a string")
	}
	parsed, err := ParseCalendarDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// FinalPrediction the single predicted price reported for a symbol.
type FinalPrediction struct {
	Date               CalendarDate    `json:"date"`
	PredictedPriceUSDT decimal.Decimal `json:"predicted_price_usdt"`
}

// PredictionResult validated prediction for a symbol.
type PredictionResult struct {
	Symbol          Symbol          `json:"symbol"`
	FinalPrediction FinalPrediction `json:"final_prediction"`
}

// Equal reports whether both results carry the same symbol, date and price.
func (r PredictionResult) Equal(other PredictionResult) bool {
	return r.Symbol == other.Symbol &&
		r.FinalPrediction.Date.Equal(other.FinalPrediction.Date.Time) &&
		r.FinalPrediction.PredictedPriceUSDT.Equal(other.FinalPrediction.PredictedPriceUSDT)
}
