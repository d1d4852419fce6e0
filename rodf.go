// Package rodf renders OpenDocument spreadsheet (.ods) table rows and cells
// as XML fragments.  No cgo is required.
//
// # Quick start
//
//	r := rodf.NewRow(0, "ro1")
//	r.AddCell(cell.Text("Total"), cell.Options{})
//	r.AddCell(cell.Number(42.5), cell.Options{Type: cell.TypeFloat, Span: 2})
//
//	s, err := r.Render()
//	// <table:table-row table:style-name="ro1">
//	//   <table:table-cell><text:p>Total</text:p></table:table-cell>
//	//   <table:table-cell office:value-type="float" office:value="42.5" table:number-columns-spanned="2"/>
//	//   <table:table-cell/>
//	// </table:table-row>
//
// Fragments carry no namespace declarations and no XML prolog.  They are
// meant to be placed inside a <table:table> element of a content.xml whose
// root declares the office, table, text and xlink prefixes.
//
// # Cells
//
// [cell.Cell] never guesses a type from its value: a cell is a string cell
// unless [cell.Options.Type] says otherwise.  See the cell package for the
// full rendering rules.
//
// # Dates
//
// Spreadsheet applications exchange dates as floating-point serial numbers.
// [DateFromSerial] turns a serial into a date [cell.Value]; [ConvertDate] and
// [ConvertDateEx] expose the underlying [time.Time] conversion.
//
// # Number formats
//
// The numfmt package converts spreadsheet format codes such as "#,##0.00" or
// "yyyy-mm-dd" into ODF data styles.  [IsDateFormat] is a lower-level helper
// for callers that only need to know whether a format holds a date.
package rodf

import (
	"fmt"
	"time"

	"github.com/mmagn/rodf/cell"
	"github.com/mmagn/rodf/internal/serial"
	"github.com/mmagn/rodf/numfmt"
	"github.com/mmagn/rodf/row"
)

// Version is the current version of the rodf library.
const Version = "1.0.0"

// NewCell returns a cell holding v.  It is shorthand for [cell.New].
func NewCell(v cell.Value, opts cell.Options) *cell.Cell {
	return cell.New(v, opts)
}

// NewRow returns a row seeded with initialCount empty cells.  It is
// shorthand for [row.New].
func NewRow(initialCount int, style string) *row.Row {
	return row.New(initialCount, style)
}

// ConvertDate converts a 1900-system date serial to a [time.Time] value.
//
// Serial 60 is the phantom 1900-02-29 inherited from Lotus 1-2-3 and yields
// 1900-03-01; from serial 61 on one day is subtracted to compensate.  The
// fractional part is rounded to whole seconds.
func ConvertDate(date float64) (time.Time, error) {
	t, err := serial.ToTime(date, false)
	if err != nil {
		return time.Time{}, fmt.Errorf("rodf: ConvertDate: %w", err)
	}
	return t, nil
}

// ConvertDateEx converts a date serial to a [time.Time] value, respecting
// the date system.  When date1904 is true serial 0 is 1904-01-01 and no
// leap-day correction applies.
func ConvertDateEx(date float64, date1904 bool) (time.Time, error) {
	t, err := serial.ToTime(date, date1904)
	if err != nil {
		return time.Time{}, fmt.Errorf("rodf: ConvertDateEx: %w", err)
	}
	return t, nil
}

// DateFromSerial returns the date value for a serial.  The time of day is
// dropped, as date cells render the calendar day only.
func DateFromSerial(date float64, date1904 bool) (cell.Value, error) {
	t, err := serial.ToTime(date, date1904)
	if err != nil {
		return cell.Value{}, fmt.Errorf("rodf: DateFromSerial: %w", err)
	}
	return cell.DateOf(t.Year(), t.Month(), t.Day()), nil
}

// IsDateFormat reports whether a number format holds a date or time.
//
// id is the spreadsheet numFmtId.  For built-in formats (id < 164) code is
// ignored; for custom formats code is converted with [numfmt.Parse] and the
// resulting style kind decides.  Unlike some readers, the time-only
// built-ins 18–21 count as date formats here.
func IsDateFormat(id int, code string) bool {
	if id < 164 {
		return numfmt.IsDateID(id)
	}
	ds, err := numfmt.Parse("", code)
	if err != nil {
		return false
	}
	k := ds.Kind()
	return k == numfmt.KindDate || k == numfmt.KindTime
}
