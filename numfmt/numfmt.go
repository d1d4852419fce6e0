// Package numfmt converts spreadsheet number-format codes into OpenDocument
// data styles (<number:number-style>, <number:date-style> and friends).
//
// A data style is referenced by name from a cell style, which is in turn
// referenced by [cell.Options.Style]; this package produces the data-style
// fragment only.  Placing it in office:automatic-styles is up to the caller.
//
// All format-code parsing is delegated to [github.com/xuri/nfp]; this package
// only maps the resulting token stream to ODF elements.  Only the first
// section of a code (the positive-number section) is converted.
//
//	ds, err := numfmt.Parse("N2", "#,##0.00")
//	// <number:number-style style:name="N2"><number:number number:decimal-places="2"
//	//   number:min-decimal-places="2" number:min-integer-digits="1" number:grouping="true"/>
//	// </number:number-style>
package numfmt

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xuri/nfp"

	"github.com/mmagn/rodf/cell"
	"github.com/mmagn/rodf/internal/dateformat"
	"github.com/mmagn/rodf/internal/markup"
)

// ErrUnsupported is wrapped by every error Parse and FromBuiltIn return.
var ErrUnsupported = errors.New("unsupported number format")

// Kind is the family of data style a format code converts to.
type Kind uint8

// Data-style families.
const (
	KindNumber Kind = iota
	KindPercentage
	KindCurrency
	KindDate
	KindTime
	KindText
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindPercentage:
		return "percentage"
	case KindCurrency:
		return "currency"
	case KindDate:
		return "date"
	case KindTime:
		return "time"
	case KindText:
		return "text"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// element returns the root element name for k.
func (k Kind) element() string {
	switch k {
	case KindPercentage:
		return "number:percentage-style"
	case KindCurrency:
		return "number:currency-style"
	case KindDate:
		return "number:date-style"
	case KindTime:
		return "number:time-style"
	case KindText:
		return "number:text-style"
	}
	return "number:number-style"
}

// Element and attribute names.
const (
	tagText        = "number:text"
	tagTextContent = "number:text-content"
	tagCurrency    = "number:currency-symbol"
	tagNumber      = "number:number"
	tagScientific  = "number:scientific-number"
	tagFraction    = "number:fraction"

	attrName          = "style:name"
	attrStyle         = "number:style"
	attrTextual       = "number:textual"
	attrTruncate      = "number:truncate-on-overflow"
	attrDecimals      = "number:decimal-places"
	attrMinDecimals   = "number:min-decimal-places"
	attrMinInteger    = "number:min-integer-digits"
	attrDisplayFactor = "number:display-factor"
	attrGrouping      = "number:grouping"
	attrMinExponent   = "number:min-exponent-digits"
	attrMinNumerator  = "number:min-numerator-digits"
	attrMinDenom      = "number:min-denominator-digits"
	attrDenomValue    = "number:denominator-value"
)

// currencySymbols are the literal characters promoted to
// <number:currency-symbol>.
const currencySymbols = "$€£¥"

// part is one child element of a data style.  Text-bearing parts
// (number:text, number:currency-symbol) carry text; the rest are empty.
type part struct {
	name  string
	attrs []markup.Attr
	text  string
}

func (p part) hasText() bool { return p.name == tagText || p.name == tagCurrency }

// DataStyle is a converted number format.  It is immutable once returned.
type DataStyle struct {
	name     string
	code     string
	kind     Kind
	truncate bool
	parts    []part
}

// Name returns the style:name the data style is rendered with.
func (d *DataStyle) Name() string { return d.name }

// Code returns the format code the style was converted from.
func (d *DataStyle) Code() string { return d.code }

// Kind returns the data-style family.
func (d *DataStyle) Kind() Kind { return d.kind }

// ValueType returns the cell value type matching the style.  Time styles map
// to [cell.TypeFloat]: the cell package has no time type.
func (d *DataStyle) ValueType() cell.ValueType {
	switch d.kind {
	case KindPercentage:
		return cell.TypePercentage
	case KindCurrency:
		return cell.TypeCurrency
	case KindDate:
		return cell.TypeDate
	case KindText:
		return cell.TypeString
	}
	return cell.TypeFloat
}

func (d *DataStyle) render(w *markup.Writer) {
	root := d.kind.element()
	attrs := []markup.Attr{{Name: attrName, Value: d.name}}
	if d.truncate {
		attrs = append(attrs, markup.Attr{Name: attrTruncate, Value: "false"})
	}
	w.Start(root, attrs...)
	for _, p := range d.parts {
		if p.hasText() {
			w.TextElement(p.name, p.text, p.attrs...)
			continue
		}
		w.Empty(p.name, p.attrs...)
	}
	w.End(root)
}

// Render returns the data-style fragment.
func (d *DataStyle) Render() string {
	var w markup.Writer
	d.render(&w)
	return w.String()
}

// WriteTo writes the data-style fragment to dst.
func (d *DataStyle) WriteTo(dst io.Writer) (int64, error) {
	var w markup.Writer
	d.render(&w)
	return w.WriteTo(dst)
}

// FromBuiltIn converts the built-in format with the given numFmtId.
func FromBuiltIn(name string, id int) (*DataStyle, error) {
	code, ok := BuiltIn[id]
	if !ok {
		return nil, fmt.Errorf("numfmt: %w: unknown built-in id %d", ErrUnsupported, id)
	}
	return Parse(name, code)
}

// Parse converts the first section of code into a data style named name.
// It returns an error wrapping [ErrUnsupported] when code is empty or its
// first section holds nothing that maps to a data style.
func Parse(name, code string) (*DataStyle, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("numfmt: %w: empty format code", ErrUnsupported)
	}
	ps := nfp.NumberFormatParser()
	sections := ps.Parse(code)
	if len(sections) == 0 || len(sections[0].Items) == 0 {
		return nil, fmt.Errorf("numfmt: %w: %q has no sections", ErrUnsupported, code)
	}
	items := sections[0].Items

	d := &DataStyle{name: name, code: code}
	b := builder{d: d}
	switch classify(items) {
	case classGeneral:
		d.kind = KindNumber
		d.parts = []part{{name: tagNumber, attrs: []markup.Attr{{Name: attrMinInteger, Value: "1"}}}}
	case classDateTime:
		b.dateTime(items)
	case classText:
		b.text(items)
	case classNumber:
		b.number(items)
	default:
		return nil, fmt.Errorf("numfmt: %w: %q has no placeholders", ErrUnsupported, code)
	}
	return d, nil
}

// ── classification ────────────────────────────────────────────────────────────

type class uint8

const (
	classNone class = iota
	classGeneral
	classDateTime
	classText
	classNumber
)

// classify picks the conversion path for a section.  Date tokens win over
// digit placeholders so that "mm:ss.0" stays a time format.
func classify(items []nfp.Token) class {
	var general, dt, text, num bool
	for _, tok := range items {
		switch tok.TType {
		case nfp.TokenTypeGeneral:
			general = true
		case nfp.TokenTypeDateTimes, nfp.TokenTypeElapsedDateTimes:
			dt = true
		case nfp.TokenTypeTextPlaceHolder:
			text = true
		case nfp.TokenTypeZeroPlaceHolder, nfp.TokenTypeHashPlaceHolder, nfp.TokenTypeDigitalPlaceHolder:
			num = true
		}
	}
	switch {
	case general:
		return classGeneral
	case dt:
		return classDateTime
	case text:
		return classText
	case num:
		return classNumber
	}
	return classNone
}

// ── builder ───────────────────────────────────────────────────────────────────

type builder struct {
	d *DataStyle
}

func (b *builder) add(p part) { b.d.parts = append(b.d.parts, p) }

// literal appends text, merging it into a preceding number:text.
func (b *builder) literal(s string) {
	if s == "" {
		return
	}
	if n := len(b.d.parts); n > 0 && b.d.parts[n-1].name == tagText {
		b.d.parts[n-1].text += s
		return
	}
	b.add(part{name: tagText, text: s})
}

// currency appends a currency symbol and marks the style as currency.
func (b *builder) currency(sym string) {
	b.d.kind = KindCurrency
	b.add(part{name: tagCurrency, text: sym})
}

// literalOrCurrency splits s around its first currency symbol.
func (b *builder) literalOrCurrency(s string) {
	i := strings.IndexAny(s, currencySymbols)
	if i < 0 {
		b.literal(s)
		return
	}
	_, size := utf8.DecodeRuneInString(s[i:])
	sym := s[i : i+size]
	b.literal(s[:i])
	b.currency(sym)
	b.literal(s[i+len(sym):])
}

// ── text ──────────────────────────────────────────────────────────────────────

func (b *builder) text(items []nfp.Token) {
	b.d.kind = KindText
	for _, tok := range items {
		switch tok.TType {
		case nfp.TokenTypeTextPlaceHolder:
			b.add(part{name: tagTextContent})
		case nfp.TokenTypeLiteral:
			b.literal(tok.TValue)
		}
	}
}

// ── dates and times ───────────────────────────────────────────────────────────

func (b *builder) dateTime(items []nfp.Token) {
	calendar := false
	seconds := -1 // index in parts of the last seconds element
	point := false

	for i, tok := range items {
		switch tok.TType {
		case nfp.TokenTypeDateTimes:
			p, ok := dateformat.Lookup(tok.TValue, isMinute(items, i))
			if !ok {
				continue
			}
			calendar = calendar || p.Calendar
			b.add(datePart(p))
			seconds = -1
			if p.Name == "number:seconds" {
				seconds = len(b.d.parts) - 1
			}
		case nfp.TokenTypeElapsedDateTimes:
			p, ok := dateformat.LookupElapsed(tok.TValue)
			if !ok {
				continue
			}
			b.d.truncate = true
			b.add(datePart(p))
			seconds = -1
			if p.Name == "number:seconds" {
				seconds = len(b.d.parts) - 1
			}
		case nfp.TokenTypeDecimalPoint:
			if seconds >= 0 {
				point = true
				continue
			}
			b.literal(tok.TValue)
		case nfp.TokenTypeZeroPlaceHolder:
			if point && seconds >= 0 {
				sec := &b.d.parts[seconds]
				sec.attrs = append(sec.attrs, markup.Attr{Name: attrDecimals, Value: strconv.Itoa(len(tok.TValue))})
				point, seconds = false, -1
			}
		case nfp.TokenTypeLiteral:
			b.literal(tok.TValue)
			point = false
		}
	}

	b.d.kind = KindTime
	if calendar {
		b.d.kind = KindDate
	}
}

func datePart(p dateformat.Part) part {
	var attrs []markup.Attr
	if p.Long {
		attrs = append(attrs, markup.Attr{Name: attrStyle, Value: "long"})
	}
	if p.Textual {
		attrs = append(attrs, markup.Attr{Name: attrTextual, Value: "true"})
	}
	return part{name: p.Name, attrs: attrs}
}

// isMinute reports whether the month-or-minute token at items[i] denotes
// minutes: the nearest date token before it is an hour, or the nearest after
// it is a second.
func isMinute(items []nfp.Token, i int) bool {
	u := strings.ToUpper(items[i].TValue)
	if u != "M" && u != "MM" {
		return false
	}
	for j := i - 1; j >= 0; j-- {
		if isDateToken(items[j]) {
			if dateformat.IsHour(items[j].TValue) {
				return true
			}
			break
		}
	}
	for j := i + 1; j < len(items); j++ {
		if isDateToken(items[j]) {
			return dateformat.IsSecond(items[j].TValue)
		}
	}
	return false
}

func isDateToken(tok nfp.Token) bool {
	return tok.TType == nfp.TokenTypeDateTimes || tok.TType == nfp.TokenTypeElapsedDateTimes
}

// ── numbers ───────────────────────────────────────────────────────────────────

// numberShape accumulates the digit layout of a numeric section.
type numberShape struct {
	intZeros    int
	hasInt      bool
	decimals    int
	minDecimals int
	grouping    bool
	pendingSep  int
	scale       int

	afterPoint bool

	exponent  bool
	expDigits int

	fraction   bool
	sawSlash   bool
	numerator  int
	denomDigit int
	denomValue string
	last       nfp.Token
}

func (b *builder) number(items []nfp.Token) {
	var s numberShape
	for _, tok := range items {
		if tok.TType == nfp.TokenTypeFraction {
			s.fraction = true
		}
	}

	idx := -1 // index in parts of the number element
	place := func() {
		if idx < 0 {
			idx = len(b.d.parts)
			b.add(part{})
		}
	}
	percent := false

	for _, tok := range items {
		n := len(tok.TValue)
		switch tok.TType {
		case nfp.TokenTypeZeroPlaceHolder, nfp.TokenTypeHashPlaceHolder, nfp.TokenTypeDigitalPlaceHolder:
			place()
			zero := tok.TType == nfp.TokenTypeZeroPlaceHolder
			switch {
			case s.exponent:
				if zero {
					s.expDigits += n
				}
			case s.sawSlash:
				s.denomDigit += n
			case s.afterPoint:
				s.decimals += n
				if zero {
					s.minDecimals += n
				}
			default:
				if s.fraction && s.last.TValue != "" {
					s.hasInt = true
				}
				if zero {
					s.intZeros += n
				}
				if s.pendingSep > 0 {
					s.grouping = true
					s.pendingSep = 0
				}
				s.last = tok
			}
		case nfp.TokenTypeThousandsSeparator:
			s.pendingSep++
		case nfp.TokenTypeDecimalPoint:
			place()
			s.afterPoint = true
			s.scale += s.pendingSep
			s.pendingSep = 0
		case nfp.TokenTypeExponential:
			s.exponent = true
			s.scale += s.pendingSep
			s.pendingSep = 0
		case nfp.TokenTypeFraction:
			s.sawSlash = true
			s.numerator = len(s.last.TValue)
			if s.last.TType == nfp.TokenTypeZeroPlaceHolder {
				s.intZeros -= s.numerator
			}
		case nfp.TokenTypeDenominator:
			s.denomValue = tok.TValue
		case nfp.TokenTypePercent:
			percent = true
			b.literal(tok.TValue)
		case nfp.TokenTypeCurrencyLanguage:
			for _, p := range tok.Parts {
				if p.Token.TType == nfp.TokenSubTypeCurrencyString && p.Token.TValue != "" {
					b.currency(p.Token.TValue)
					break
				}
			}
		case nfp.TokenTypeLiteral:
			// Spacing between the integer part and the numerator belongs to
			// the fraction element.
			if s.fraction && idx >= 0 && !s.sawSlash {
				continue
			}
			b.literalOrCurrency(tok.TValue)
		}
	}
	s.scale += s.pendingSep

	b.d.parts[idx] = s.element()
	if percent && b.d.kind != KindCurrency {
		b.d.kind = KindPercentage
	}
}

// element returns the number, scientific-number or fraction element.
func (s *numberShape) element() part {
	itoa := strconv.Itoa
	switch {
	case s.fraction:
		var attrs []markup.Attr
		if s.hasInt {
			attrs = append(attrs, markup.Attr{Name: attrMinInteger, Value: itoa(s.intZeros)})
		}
		attrs = append(attrs, markup.Attr{Name: attrMinNumerator, Value: itoa(s.numerator)})
		if s.denomValue != "" {
			attrs = append(attrs, markup.Attr{Name: attrDenomValue, Value: s.denomValue})
		} else {
			attrs = append(attrs, markup.Attr{Name: attrMinDenom, Value: itoa(s.denomDigit)})
		}
		if s.grouping {
			attrs = append(attrs, markup.Attr{Name: attrGrouping, Value: "true"})
		}
		return part{name: tagFraction, attrs: attrs}
	case s.exponent:
		return part{name: tagScientific, attrs: []markup.Attr{
			{Name: attrDecimals, Value: itoa(s.decimals)},
			{Name: attrMinDecimals, Value: itoa(s.minDecimals)},
			{Name: attrMinInteger, Value: itoa(s.intZeros)},
			{Name: attrMinExponent, Value: itoa(s.expDigits)},
		}}
	}
	attrs := []markup.Attr{
		{Name: attrDecimals, Value: itoa(s.decimals)},
		{Name: attrMinDecimals, Value: itoa(s.minDecimals)},
		{Name: attrMinInteger, Value: itoa(s.intZeros)},
	}
	if s.scale > 0 {
		attrs = append(attrs, markup.Attr{Name: attrDisplayFactor, Value: "1" + strings.Repeat("000", s.scale)})
	}
	if s.grouping {
		attrs = append(attrs, markup.Attr{Name: attrGrouping, Value: "true"})
	}
	return part{name: tagNumber, attrs: attrs}
}
