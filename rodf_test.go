package rodf_test

// Tests for the root convenience API.  Rendering rules are covered in the
// cell, row and numfmt packages; these tests only check the wiring.

import (
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/mmagn/rodf"
	"github.com/mmagn/rodf/cell"
)

// ── ConvertDate ───────────────────────────────────────────────────────────────

func TestConvertDate(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		want    time.Time
		wantErr bool
	}{
		{
			name:  "serial 0 gives 1900-01-01",
			input: 0,
			want:  time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "serial 0 with time component",
			input: 0.5,
			want:  time.Date(1900, 1, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name:  "serial 60 gives 1900-03-01 (phantom leap day)",
			input: 60,
			want:  time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "serial 61 compensates for Lotus leap-year bug",
			input: 61,
			want:  time.Date(1900, 3, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:  "fractional serial rounds to whole seconds",
			input: 41235.45578,
			want:  time.Date(2012, 11, 22, 10, 56, 19, 0, time.UTC),
		},
		{name: "negative serial", input: -1, wantErr: true},
		{name: "NaN", input: math.NaN(), wantErr: true},
		{name: "+Inf", input: math.Inf(1), wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := rodf.ConvertDate(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}
				if !strings.HasPrefix(err.Error(), "rodf: ConvertDate:") {
					t.Errorf("error %q lacks package prefix", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(tc.want) {
				t.Errorf("ConvertDate(%v) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestConvertDateEx1904(t *testing.T) {
	got, err := rodf.ConvertDateEx(0, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := time.Date(1904, 1, 1, 0, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("ConvertDateEx(0, true) = %v, want %v", got, want)
	}

	// The same calendar day is 1462 serials apart in the two systems.
	a, _ := rodf.ConvertDateEx(40283, false)
	b, _ := rodf.ConvertDateEx(40283-1462, true)
	if !a.Equal(b) {
		t.Errorf("1900 and 1904 systems disagree: %v vs %v", a, b)
	}
}

// ── DateFromSerial ────────────────────────────────────────────────────────────

func TestDateFromSerial(t *testing.T) {
	v, err := rodf.DateFromSerial(40283.75, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Kind() != cell.KindDate {
		t.Fatalf("kind = %s, want date", v.Kind())
	}

	out, err := rodf.NewCell(v, cell.Options{Type: cell.TypeDate}).Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<table:table-cell office:value-type="date" office:date-value="2010-04-15"/>`
	if out != want {
		t.Errorf("got  %s\nwant %s", out, want)
	}

	if _, err := rodf.DateFromSerial(-3, false); err == nil {
		t.Error("expected error for negative serial")
	}
}

// ── NewRow / NewCell ──────────────────────────────────────────────────────────

func TestNewRow(t *testing.T) {
	r := rodf.NewRow(1, "ro1")
	r.Append(rodf.NewCell(cell.Text("x"), cell.Options{Span: 2}))

	out, err := r.Render()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	want := `<table:table-row table:style-name="ro1">` +
		`<table:table-cell/>` +
		`<table:table-cell table:number-columns-spanned="2"><text:p>x</text:p></table:table-cell>` +
		`<table:table-cell/>` +
		`</table:table-row>`
	if out != want {
		t.Errorf("got  %s\nwant %s", out, want)
	}
}

func TestNewRowPropagatesCellError(t *testing.T) {
	r := rodf.NewRow(0, "")
	r.AddCell(cell.Number(math.NaN()), cell.Options{Type: cell.TypeFloat})
	if _, err := r.Render(); !errors.Is(err, cell.ErrFormat) {
		t.Errorf("err = %v, want ErrFormat", err)
	}
}

// ── IsDateFormat ──────────────────────────────────────────────────────────────

func TestIsDateFormat(t *testing.T) {
	tests := []struct {
		name string
		id   int
		code string
		want bool
	}{
		// ── built-in date IDs ─────────────────────────────────────────────────
		{name: "built-in 14 (mm-dd-yy)", id: 14, want: true},
		{name: "built-in 17", id: 17, want: true},
		{name: "built-in 18 (h:mm AM/PM)", id: 18, want: true},
		{name: "built-in 22 (m/d/yy hh:mm)", id: 22, want: true},
		{name: "built-in 27", id: 27, want: true},
		{name: "built-in 46", id: 46, want: true},
		{name: "built-in 58", id: 58, want: true},
		// ── built-in non-date IDs ─────────────────────────────────────────────
		{name: "built-in 0 (General)", id: 0, want: false},
		{name: "built-in 4 (#,##0.00)", id: 4, want: false},
		{name: "built-in 11 (0.00E+00)", id: 11, want: false},
		{name: "built-in 49 (@)", id: 49, want: false},
		{name: "boundary 13", id: 13, want: false},
		{name: "boundary 23", id: 23, want: false},
		{name: "boundary 163", id: 163, code: "yyyy", want: false},
		// ── custom format IDs (>= 164) ────────────────────────────────────────
		{name: "custom yyyy-mm-dd", id: 164, code: "yyyy-mm-dd", want: true},
		{name: "custom dd/mm/yyyy hh:mm", id: 165, code: "dd/mm/yyyy hh:mm", want: true},
		{name: "custom numeric 0.00", id: 166, code: "0.00", want: false},
		{name: "custom text @", id: 167, code: "@", want: false},
		// d inside double quotes must not trigger
		{name: "custom quoted d", id: 168, code: `"date"0.00`, want: false},
		// the locale tag must not trigger
		{name: "custom locale tag", id: 169, code: `[$-409]0.00`, want: false},
		{name: "custom YYYY", id: 170, code: "YYYY", want: true},
		{name: "custom HH:MM", id: 173, code: "HH:MM", want: true},
		{name: "custom empty", id: 174, code: "", want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := rodf.IsDateFormat(tc.id, tc.code)
			if got != tc.want {
				t.Errorf("IsDateFormat(%d, %q) = %v, want %v", tc.id, tc.code, got, tc.want)
			}
		})
	}
}
