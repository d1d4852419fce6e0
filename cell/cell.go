// Package cell renders a single OpenDocument spreadsheet cell
// (<table:table-cell>) from a value, a declared type and a handful of
// options.
//
// # Type resolution
//
// A cell's effective type is [Options.Type] when set and [TypeString]
// otherwise; the value is never inspected to guess a type.  String cells
// carry their value in a <text:p> child.  Every other type carries it in
// attributes only: office:date-value for [TypeDate], office:value for the
// numeric-like types.
//
// # Output
//
//	c := cell.New(cell.Number(34.2), cell.Options{Type: cell.TypeFloat})
//	s, _ := c.Render()
//	// <table:table-cell office:value-type="float" office:value="34.2"/>
//
// A cell spanning n columns renders as n sibling elements: the primary one,
// then n-1 empty covered cells.  Fragments carry no namespace declarations;
// the enclosing document declares the table, office, text and xlink
// prefixes.
package cell

import (
	"errors"
	"io"
	"strconv"

	"github.com/mmagn/rodf/internal/markup"
)

// ErrFormat is wrapped by every error Render returns.  It signals a value
// that cannot be written in the form its type requires, e.g. a NaN float or
// a date string that does not parse.
var ErrFormat = errors.New("cannot format value")

// ValueType is the wire name written to office:value-type.
type ValueType string

// Known value types.  Any other non-empty ValueType is rendered like
// [TypeFloat]: its value goes to office:value.
const (
	TypeString     ValueType = "string"
	TypeFloat      ValueType = "float"
	TypePercentage ValueType = "percentage"
	TypeCurrency   ValueType = "currency"
	TypeDate       ValueType = "date"
)

// Tristate is a flag that distinguishes "never set" from "set to false".
type Tristate uint8

// Tristate values.  Unset and False render identically today; they are kept
// apart so callers can tell "left at default" from "explicitly off".
const (
	Unset Tristate = iota
	True
	False
)

// Bool converts b to True or False.
func Bool(b bool) Tristate {
	if b {
		return True
	}
	return False
}

// Options configures a cell at construction.  The zero Options describes a
// plain string cell spanning one column.
type Options struct {
	// Type overrides the default TypeString.
	Type ValueType
	// Formula is written verbatim to table:formula.
	Formula string
	// MatrixFormula marks Formula as a 1x1 array formula.  Only True has an
	// effect; Unset and False render identically.
	MatrixFormula Tristate
	// Style is the table:style-name reference.  It is not validated.
	Style string
	// Span is the number of columns the cell covers.  Values below 1 mean 1.
	Span int
	// URL wraps the value-derived paragraph of a string cell in a hyperlink.
	URL string
}

// Element and attribute names.
const (
	tagCell      = "table:table-cell"
	tagParagraph = "text:p"
	tagLink      = "text:a"

	attrValueType     = "office:value-type"
	attrValue         = "office:value"
	attrDateValue     = "office:date-value"
	attrFormula       = "table:formula"
	attrMatrixColumns = "table:number-matrix-columns-spanned"
	attrMatrixRows    = "table:number-matrix-rows-spanned"
	attrStyle         = "table:style-name"
	attrColumns       = "table:number-columns-spanned"
	attrHref          = "xlink:href"
)

// paragraph is one <text:p> entry.  The value-derived entry stores no text
// of its own; it is formatted from the cell value at render time.
type paragraph struct {
	text      string
	fromValue bool
}

// Cell is one table cell.  Everything except the style and the paragraph
// list is fixed by [New].
//
// Render does not mutate the cell, so concurrent renders are safe.  Calls
// to SetStyle or Paragraph must not race with a render.
type Cell struct {
	value   Value
	typ     ValueType
	formula string
	matrix  Tristate
	style   string
	span    int
	url     string

	paragraphs []paragraph
}

// New returns a cell holding v.  When the effective type is TypeString and v
// has non-blank text, the paragraph list starts with an entry for v.
func New(v Value, opts Options) *Cell {
	c := &Cell{
		value:   v,
		typ:     opts.Type,
		formula: opts.Formula,
		matrix:  opts.MatrixFormula,
		style:   opts.Style,
		span:    opts.Span,
		url:     opts.URL,
	}
	if c.typ == "" {
		c.typ = TypeString
	}
	if c.span < 1 {
		c.span = 1
	}
	if c.typ == TypeString && !v.blank() {
		c.paragraphs = append(c.paragraphs, paragraph{fromValue: true})
	}
	return c
}

// Create builds a cell, lets fn add paragraphs or adjust the style, and
// returns the rendered fragment.  fn may be nil.
func Create(v Value, opts Options, fn func(c *Cell)) (string, error) {
	c := New(v, opts)
	if fn != nil {
		fn(c)
	}
	return c.Render()
}

// Paragraph appends a <text:p> holding text after any existing paragraphs.
// An empty string is ignored.  Explicit paragraphs are never hyperlinked.
func (c *Cell) Paragraph(text string) {
	if text == "" {
		return
	}
	c.paragraphs = append(c.paragraphs, paragraph{text: text})
}

// SetStyle replaces the style name.  An empty name removes the attribute.
func (c *Cell) SetStyle(name string) { c.style = name }

// Style returns the current style name.
func (c *Cell) Style() string { return c.style }

// Type returns the effective value type.
func (c *Cell) Type() ValueType { return c.typ }

// Span returns the number of columns the cell covers (always >= 1).
func (c *Cell) Span() int { return c.span }

// Value returns the value the cell was constructed with.
func (c *Cell) Value() Value { return c.value }

// hasValue reports whether the value is rendered at all.  For string cells
// blank text counts as no value.
func (c *Cell) hasValue() bool {
	if c.value.IsAbsent() {
		return false
	}
	return c.typ != TypeString || !c.value.blank()
}

// attributes returns the primary element's attributes in output order.
func (c *Cell) attributes() ([]markup.Attr, error) {
	var attrs []markup.Attr
	hasValue := c.hasValue()

	if c.typ != TypeString && (hasValue || c.formula != "") {
		attrs = append(attrs, markup.Attr{Name: attrValueType, Value: string(c.typ)})
	}
	if hasValue {
		switch c.typ {
		case TypeString:
			// Carried by the paragraph.
		case TypeDate:
			s, err := c.value.isoDay()
			if err != nil {
				return nil, err
			}
			attrs = append(attrs, markup.Attr{Name: attrDateValue, Value: s})
		default:
			s, err := c.value.decimal()
			if err != nil {
				return nil, err
			}
			attrs = append(attrs, markup.Attr{Name: attrValue, Value: s})
		}
	}
	if c.formula != "" {
		attrs = append(attrs, markup.Attr{Name: attrFormula, Value: c.formula})
	}
	if c.matrix == True {
		attrs = append(attrs,
			markup.Attr{Name: attrMatrixColumns, Value: "1"},
			markup.Attr{Name: attrMatrixRows, Value: "1"},
		)
	}
	if c.style != "" {
		attrs = append(attrs, markup.Attr{Name: attrStyle, Value: c.style})
	}
	if c.span > 1 {
		attrs = append(attrs, markup.Attr{Name: attrColumns, Value: strconv.Itoa(c.span)})
	}
	return attrs, nil
}

// render writes the full fragment, covered cells included, to w.
func (c *Cell) render(w *markup.Writer) error {
	attrs, err := c.attributes()
	if err != nil {
		return err
	}

	if len(c.paragraphs) == 0 {
		w.Empty(tagCell, attrs...)
	} else {
		w.Start(tagCell, attrs...)
		for _, p := range c.paragraphs {
			if !p.fromValue {
				w.TextElement(tagParagraph, p.text)
				continue
			}
			text, err := c.value.display()
			if err != nil {
				return err
			}
			if c.url == "" {
				w.TextElement(tagParagraph, text)
				continue
			}
			w.Start(tagParagraph)
			w.TextElement(tagLink, text, markup.Attr{Name: attrHref, Value: c.url})
			w.End(tagParagraph)
		}
		w.End(tagCell)
	}

	for i := 1; i < c.span; i++ {
		w.Empty(tagCell)
	}
	return nil
}

// Render returns the cell's XML fragment.  It returns an error wrapping
// [ErrFormat] when the value cannot be written in its type's form.
func (c *Cell) Render() (string, error) {
	var w markup.Writer
	if err := c.render(&w); err != nil {
		return "", err
	}
	return w.String(), nil
}

// WriteTo writes the cell's XML fragment to dst.  Nothing is written when
// rendering fails.
func (c *Cell) WriteTo(dst io.Writer) (int64, error) {
	var w markup.Writer
	if err := c.render(&w); err != nil {
		return 0, err
	}
	return w.WriteTo(dst)
}
