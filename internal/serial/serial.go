// Package serial converts spreadsheet date serial numbers to calendar time.
//
// Spreadsheet applications store dates as fractional days since an epoch.
// The 1900 system counts from 1900-01-00 and inherits the Lotus 1-2-3 bug
// that treats 1900 as a leap year; the 1904 system counts from 1904-01-01
// and has no phantom day.  Both the root rodf package and the cell renderer
// use this package so the conversion stays in one place.
package serial

import (
	"fmt"
	"math"
	"time"
)

// Max1900 is the exclusive upper bound of 1900-system serials
// (one above 9999-12-31).
const Max1900 = 2_958_466

// Max1904 is the matching bound for the 1904 system, which is offset by
// 1462 days.
const Max1904 = Max1900 - 1462

// ToTime converts serial to a UTC time.  date1904 selects the date system.
//
// For the 1900 system:
//
//   - serial == 0  → midnight on 1900-01-01
//   - serial >= 61 → one day is subtracted for the phantom 1900-02-29
//   - 1 ≤ serial ≤ 60 → no compensation (serial 60 yields 1900-03-01)
//
// The fractional part becomes whole seconds using half-second rounding; a
// fraction that rounds to 86400 s rolls over to the next day.
func ToTime(serial float64, date1904 bool) (time.Time, error) {
	if math.IsNaN(serial) || math.IsInf(serial, 0) {
		return time.Time{}, fmt.Errorf("invalid serial %v", serial)
	}
	if serial < 0 {
		return time.Time{}, fmt.Errorf("negative serial %v not supported", serial)
	}
	limit := float64(Max1900)
	if date1904 {
		limit = Max1904
	}
	if serial > limit {
		return time.Time{}, fmt.Errorf("serial %v exceeds maximum supported value %v", serial, limit)
	}

	secs, rollover := fracSeconds(serial)
	days := int(serial) + rollover
	clock := time.Duration(secs) * time.Second

	if date1904 {
		base := time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC)
		return base.Add(time.Duration(days)*24*time.Hour + clock), nil
	}

	base := time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC)
	switch {
	case days == 0:
		return time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC).Add(clock), nil
	case days >= 61:
		return base.Add(time.Duration(days-1)*24*time.Hour + clock), nil
	default:
		return base.Add(time.Duration(days)*24*time.Hour + clock), nil
	}
}

// fracSeconds returns the whole-second time of day encoded in the fractional
// part of serial (0–86399) and 1 when rounding pushed it past midnight.
func fracSeconds(serial float64) (secs int64, rollover int) {
	const roundEpsilon = 1e-9
	const nanosPerDay = float64(24 * time.Hour)

	frac := serial - math.Trunc(serial) + roundEpsilon
	d := time.Duration(frac * nanosPerDay)
	secs = int64(d / time.Second)
	if d%time.Second > 500*time.Millisecond {
		secs++
	}
	if secs < 0 {
		secs = 0
	}
	return secs % 86400, int(secs / 86400)
}
