// Package dateformat maps spreadsheet date/time format tokens (as produced by
// the nfp tokenizer, e.g. "YYYY", "MMM", "hh", "AM/PM") to the ODF
// number:date-style and number:time-style child elements that express them.
//
// It exists solely so numfmt can keep the token table apart from the
// section-walking logic; it has no public-API contract of its own.
package dateformat

import "strings"

// Part describes one ODF data-style element.
type Part struct {
	// Name is the qualified element name, e.g. "number:year".
	Name string
	// Long selects number:style="long" (four-digit year, zero-padded day…).
	Long bool
	// Textual selects number:textual="true" (month names).
	Textual bool
	// Calendar is true for year, month, day and weekday parts.  A style that
	// contains at least one calendar part is a date style; otherwise it is a
	// time style.
	Calendar bool
}

// Lookup returns the element for a date/time token.  The token is matched
// case-insensitively.  minute must be true when an "m" or "mm" token denotes
// minutes rather than a month (it follows an hour or precedes a second).
//
// ok is false for tokens that have no ODF equivalent.
func Lookup(token string, minute bool) (p Part, ok bool) {
	switch strings.ToUpper(token) {
	case "YYYY":
		return Part{Name: "number:year", Long: true, Calendar: true}, true
	case "YY":
		return Part{Name: "number:year", Calendar: true}, true
	case "MMMMM", "MMMM":
		return Part{Name: "number:month", Long: true, Textual: true, Calendar: true}, true
	case "MMM":
		return Part{Name: "number:month", Textual: true, Calendar: true}, true
	case "MM":
		if minute {
			return Part{Name: "number:minutes", Long: true}, true
		}
		return Part{Name: "number:month", Long: true, Calendar: true}, true
	case "M":
		if minute {
			return Part{Name: "number:minutes"}, true
		}
		return Part{Name: "number:month", Calendar: true}, true
	case "DDDD":
		return Part{Name: "number:day-of-week", Long: true, Calendar: true}, true
	case "DDD":
		return Part{Name: "number:day-of-week", Calendar: true}, true
	case "DD":
		return Part{Name: "number:day", Long: true, Calendar: true}, true
	case "D":
		return Part{Name: "number:day", Calendar: true}, true
	case "HH":
		return Part{Name: "number:hours", Long: true}, true
	case "H":
		return Part{Name: "number:hours"}, true
	case "SS":
		return Part{Name: "number:seconds", Long: true}, true
	case "S":
		return Part{Name: "number:seconds"}, true
	case "AM/PM", "A/P":
		return Part{Name: "number:am-pm"}, true
	}
	return Part{}, false
}

// LookupElapsed returns the element for an elapsed-time token ([h], [mm],
// [ss] with brackets already stripped by the tokenizer).
func LookupElapsed(token string) (p Part, ok bool) {
	switch strings.ToUpper(token) {
	case "HH":
		return Part{Name: "number:hours", Long: true}, true
	case "H":
		return Part{Name: "number:hours"}, true
	case "MM":
		return Part{Name: "number:minutes", Long: true}, true
	case "M":
		return Part{Name: "number:minutes"}, true
	case "SS":
		return Part{Name: "number:seconds", Long: true}, true
	case "S":
		return Part{Name: "number:seconds"}, true
	}
	return Part{}, false
}

// IsHour reports whether token is an hour token.
func IsHour(token string) bool {
	u := strings.ToUpper(token)
	return u == "H" || u == "HH"
}

// IsSecond reports whether token is a second token.
func IsSecond(token string) bool {
	u := strings.ToUpper(token)
	return u == "S" || u == "SS"
}
