// Package row renders an OpenDocument spreadsheet row (<table:table-row>)
// holding an ordered sequence of cells.
package row

import (
	"fmt"
	"io"

	"github.com/mmagn/rodf/cell"
	"github.com/mmagn/rodf/internal/markup"
)

const (
	tagRow    = "table:table-row"
	attrStyle = "table:style-name"
)

// Row is an ordered list of cells plus an optional style.  The row owns its
// cells; cells are rendered in the order they were added.
//
// Like [cell.Cell], a Row may be rendered concurrently but must not be
// mutated while a render is in progress.
type Row struct {
	cells []*cell.Cell
	style string
}

// New returns a row that starts with initialCount empty cells.  A negative
// count is treated as zero.
func New(initialCount int, style string) *Row {
	r := &Row{style: style}
	for i := 0; i < initialCount; i++ {
		r.cells = append(r.cells, cell.New(cell.Value{}, cell.Options{}))
	}
	return r
}

// Create builds a row, lets fn add cells, and returns the rendered fragment.
// fn may be nil.
func Create(initialCount int, style string, fn func(r *Row)) (string, error) {
	r := New(initialCount, style)
	if fn != nil {
		fn(r)
	}
	return r.Render()
}

// AddCell constructs a cell from v and opts and appends it.
func (r *Row) AddCell(v cell.Value, opts cell.Options) {
	r.cells = append(r.cells, cell.New(v, opts))
}

// Append adds an already-built cell, e.g. one that had paragraphs added.
// The row takes ownership of c.  A nil cell is ignored.
func (r *Row) Append(c *cell.Cell) {
	if c == nil {
		return
	}
	r.cells = append(r.cells, c)
}

// SetStyle replaces the row style.  An empty name removes the attribute.
func (r *Row) SetStyle(name string) { r.style = name }

// Style returns the row style name.
func (r *Row) Style() string { return r.style }

// Len returns the number of cells in the row.  A spanned cell counts once.
func (r *Row) Len() int { return len(r.cells) }

// Cells returns the row's cells in order.  The returned slice is a copy; the
// cells themselves are shared.
func (r *Row) Cells() []*cell.Cell {
	out := make([]*cell.Cell, len(r.cells))
	copy(out, r.cells)
	return out
}

// Columns returns the number of columns the row covers, counting every
// column a spanned cell occupies.
func (r *Row) Columns() int {
	n := 0
	for _, c := range r.cells {
		n += c.Span()
	}
	return n
}

func (r *Row) render(w *markup.Writer) error {
	var attrs []markup.Attr
	if r.style != "" {
		attrs = append(attrs, markup.Attr{Name: attrStyle, Value: r.style})
	}
	if len(r.cells) == 0 {
		w.Empty(tagRow, attrs...)
		return nil
	}

	w.Start(tagRow, attrs...)
	for i, c := range r.cells {
		frag, err := c.Render()
		if err != nil {
			return fmt.Errorf("row: cell %d: %w", i, err)
		}
		w.Raw(frag)
	}
	w.End(tagRow)
	return nil
}

// Render returns the row's XML fragment.  The first cell that fails to
// render aborts the row; the error names the cell's 0-based index and wraps
// the cell error.
func (r *Row) Render() (string, error) {
	var w markup.Writer
	if err := r.render(&w); err != nil {
		return "", err
	}
	return w.String(), nil
}

// WriteTo writes the row's XML fragment to dst.  Nothing is written when
// rendering fails.
func (r *Row) WriteTo(dst io.Writer) (int64, error) {
	var w markup.Writer
	if err := r.render(&w); err != nil {
		return 0, err
	}
	return w.WriteTo(dst)
}
