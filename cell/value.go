package cell

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mmagn/rodf/internal/serial"
)

// Kind identifies which member of the [Value] variant is populated.
type Kind uint8

const (
	// KindAbsent is the zero Value: no content at all.
	KindAbsent Kind = iota
	// KindText holds a string.
	KindText
	// KindNumber holds a float64.
	KindNumber
	// KindDate holds a calendar date.
	KindDate
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindDate:
		return "date"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is the scalar a cell is constructed from.  It is a closed variant:
// exactly one of absent, text, number or date.  The zero Value is absent.
type Value struct {
	kind Kind
	text string
	num  float64
	date time.Time
}

// Text returns a text value.
func Text(s string) Value { return Value{kind: KindText, text: s} }

// Number returns a numeric value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Int returns a numeric value holding i.
func Int(i int64) Value { return Value{kind: KindNumber, num: float64(i)} }

// Date returns a date value.  Only the year, month and day of t are
// rendered.
func Date(t time.Time) Value { return Value{kind: KindDate, date: t} }

// DateOf returns the date value for the given calendar day.
func DateOf(year int, month time.Month, day int) Value {
	return Date(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// Kind reports which member of the variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsAbsent reports whether v is the absent value.
func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

// blank reports whether v has no printable text.  Only text values can be
// blank; numbers and dates always print something.
func (v Value) blank() bool {
	switch v.kind {
	case KindAbsent:
		return true
	case KindText:
		return strings.TrimSpace(v.text) == ""
	}
	return false
}

// ── text forms ────────────────────────────────────────────────────────────────

const isoDate = "2006-01-02"

// display returns the form placed inside a paragraph for string cells.
func (v Value) display() (string, error) {
	switch v.kind {
	case KindText:
		return v.text, nil
	case KindNumber:
		return formatNumber(v.num)
	case KindDate:
		return v.date.Format(isoDate), nil
	}
	return "", nil
}

// decimal returns the office:value form.  Text passes through verbatim; a
// date has no decimal form.
func (v Value) decimal() (string, error) {
	switch v.kind {
	case KindText:
		return v.text, nil
	case KindNumber:
		return formatNumber(v.num)
	case KindDate:
		return "", fmt.Errorf("cell: %w: date %s has no decimal form", ErrFormat, v.date.Format(isoDate))
	}
	return "", nil
}

// dateLayouts are tried in order when a text value is rendered as a date.
var dateLayouts = []string{isoDate, time.RFC3339, time.RFC3339Nano}

// isoDay returns the office:date-value form.  Text is parsed, and a number
// is read as a 1900-system spreadsheet serial.
func (v Value) isoDay() (string, error) {
	switch v.kind {
	case KindDate:
		return v.date.Format(isoDate), nil
	case KindText:
		s := strings.TrimSpace(v.text)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t.Format(isoDate), nil
			}
		}
		return "", fmt.Errorf("cell: %w: %q is not a date", ErrFormat, v.text)
	case KindNumber:
		t, err := serial.ToTime(v.num, false)
		if err != nil {
			return "", fmt.Errorf("cell: %w: %w", ErrFormat, err)
		}
		return t.Format(isoDate), nil
	}
	return "", nil
}

// formatNumber renders f the way a spreadsheet's General format does:
// integral values below 1e15 without a decimal point, everything else in
// Go's shortest round-tripping form.
func formatNumber(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("cell: %w: %v is not finite", ErrFormat, f)
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10), nil
	}
	return strconv.FormatFloat(f, 'G', -1, 64), nil
}
