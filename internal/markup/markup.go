// Package markup provides the small XML writing helpers shared by the cell,
// row and numfmt packages.
//
// It exists solely to keep escaping and tag assembly in one place; it has no
// public-API contract of its own.  All callers are within the same module.
package markup

import (
	"io"
	"strings"
)

// escaper replaces exactly the five predefined XML entities.  Tabs, newlines
// and other control characters pass through untouched.
var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&apos;",
)

// Escape returns s with the five predefined XML entities escaped.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Attr is one name="value" pair.  Name is written as-is (it is always a
// package constant such as "table:style-name"); Value is escaped.
type Attr struct {
	Name  string
	Value string
}

// Writer accumulates an XML fragment.  The zero value is ready to use.
//
// Writer never validates nesting: callers open and close elements in the
// right order.
type Writer struct {
	sb strings.Builder
}

// Start writes an opening tag with the given attributes.
func (w *Writer) Start(name string, attrs ...Attr) {
	w.sb.WriteByte('<')
	w.sb.WriteString(name)
	w.writeAttrs(attrs)
	w.sb.WriteByte('>')
}

// Empty writes a self-closing element.
func (w *Writer) Empty(name string, attrs ...Attr) {
	w.sb.WriteByte('<')
	w.sb.WriteString(name)
	w.writeAttrs(attrs)
	w.sb.WriteString("/>")
}

// End writes a closing tag.
func (w *Writer) End(name string) {
	w.sb.WriteString("</")
	w.sb.WriteString(name)
	w.sb.WriteByte('>')
}

// Text writes escaped character data.
func (w *Writer) Text(s string) {
	_, _ = escaper.WriteString(&w.sb, s)
}

// Raw writes an already-serialised fragment verbatim.
func (w *Writer) Raw(s string) {
	w.sb.WriteString(s)
}

// TextElement writes <name attrs>text</name>.
func (w *Writer) TextElement(name, text string, attrs ...Attr) {
	w.Start(name, attrs...)
	w.Text(text)
	w.End(name)
}

// Len reports the number of bytes written so far.
func (w *Writer) Len() int { return w.sb.Len() }

// String returns the accumulated fragment.
func (w *Writer) String() string { return w.sb.String() }

// WriteTo writes the accumulated fragment to dst.
func (w *Writer) WriteTo(dst io.Writer) (int64, error) {
	n, err := io.WriteString(dst, w.sb.String())
	return int64(n), err
}

func (w *Writer) writeAttrs(attrs []Attr) {
	for _, a := range attrs {
		w.sb.WriteByte(' ')
		w.sb.WriteString(a.Name)
		w.sb.WriteString(`="`)
		_, _ = escaper.WriteString(&w.sb, a.Value)
		w.sb.WriteByte('"')
	}
}
