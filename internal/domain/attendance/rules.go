package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	lateFromHour    = 9
	halfDayFromHour = 10
)

// ClassifyStatus maps a check-in to a status using only the hour of the
// check-in's wall clock. A nil check-in is absent.
func ClassifyStatus(checkIn *time.Time) Status {
	if checkIn == nil {
		return StatusAbsent
	}

	hour := checkIn.Hour()
	switch {
	case hour >= halfDayFromHour:
		return StatusHalfDay
	case hour >= lateFromHour:
		return StatusLate
	default:
		return StatusPresent
	}
}

var millisPerHour = decimal.NewFromInt(int64(time.Hour / time.Millisecond))

// CalculateHours returns the elapsed hours between check-in and check-out rounded
// to two decimals. Missing timestamps yield zero.
func CalculateHours(checkIn, checkOut *time.Time) (decimal.Decimal, error) {
	if checkIn == nil || checkOut == nil {
		return decimal.Zero, nil
	}
	if checkOut.Before(*checkIn) {
		return decimal.Zero, ErrCheckOutBeforeCheckIn
	}

	elapsed := checkOut.Sub(*checkIn).Milliseconds()
	return decimal.NewFromInt(elapsed).Div(millisPerHour).Round(2), nil
}
