package row_test

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmagn/rodf/cell"
	"github.com/mmagn/rodf/internal/odftest"
	"github.com/mmagn/rodf/row"
)

func render(t *testing.T, r *row.Row) string {
	t.Helper()
	out, err := r.Render()
	require.NoError(t, err)
	return out
}

// ── composition ───────────────────────────────────────────────────────────────

func TestEmptyRow(t *testing.T) {
	out, err := row.Create(0, "", nil)
	require.NoError(t, err)
	assert.Equal(t, `<table:table-row/>`, out)

	rows := odftest.Parse(t, out).Children("table:table-row")
	require.Len(t, rows, 1)
	assert.Empty(t, rows[0].Nodes)
}

func TestAddCells(t *testing.T) {
	out, err := row.Create(0, "", func(r *row.Row) {
		r.AddCell(cell.Value{}, cell.Options{})
		r.AddCell(cell.Value{}, cell.Options{})
	})
	require.NoError(t, err)
	assert.Equal(t, `<table:table-row><table:table-cell/><table:table-cell/></table:table-row>`, out)

	rows := odftest.Parse(t, out).Children("table:table-row")
	require.Len(t, rows, 1)
	assert.Len(t, rows[0].Nodes, 2)
	assert.Len(t, rows[0].Children("table:table-cell"), 2)
}

func TestInitialCount(t *testing.T) {
	r := row.New(3, "")
	assert.Equal(t, 3, r.Len())
	r.AddCell(cell.Text("last"), cell.Options{})

	cells := odftest.Parse(t, render(t, r)).Find("table:table-cell")
	require.Len(t, cells, 4)
	for _, c := range cells[:3] {
		assert.Empty(t, c.Nodes, "initial cells are empty")
	}
	ps := cells[3].Children("text:p")
	require.Len(t, ps, 1)
	assert.Equal(t, "last", ps[0].Text)

	assert.Equal(t, 0, row.New(-2, "").Len())
}

func TestOrderPreserved(t *testing.T) {
	r := row.New(0, "")
	for _, s := range []string{"a", "b", "c"} {
		r.AddCell(cell.Text(s), cell.Options{})
	}
	var got []string
	for _, p := range odftest.Parse(t, render(t, r)).Find("text:p") {
		got = append(got, p.Text)
	}
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestSpannedCellsExpand(t *testing.T) {
	r := row.New(1, "")
	r.AddCell(cell.Text("Spreadsheet title"), cell.Options{Span: 4})
	r.AddCell(cell.Number(1), cell.Options{Type: cell.TypeFloat})

	assert.Equal(t, 3, r.Len())
	assert.Equal(t, 6, r.Columns())

	rows := odftest.Parse(t, render(t, r)).Children("table:table-row")
	require.Len(t, rows, 1)
	assert.Len(t, rows[0].Children("table:table-cell"), 6)
}

func TestAppendPrebuiltCell(t *testing.T) {
	c := cell.New(cell.Value{}, cell.Options{})
	c.Paragraph("testing")

	r := row.New(0, "")
	r.Append(c)
	r.Append(nil)
	assert.Equal(t, 1, r.Len())
	assert.Equal(t,
		`<table:table-row><table:table-cell><text:p>testing</text:p></table:table-cell></table:table-row>`,
		render(t, r))
}

func TestCellsIsCopy(t *testing.T) {
	r := row.New(2, "")
	cells := r.Cells()
	require.Len(t, cells, 2)
	cells[0] = nil
	assert.NotNil(t, r.Cells()[0])
}

// ── style ─────────────────────────────────────────────────────────────────────

func TestStyleInConstructor(t *testing.T) {
	out, err := row.Create(0, "dark", func(r *row.Row) {
		r.AddCell(cell.Value{}, cell.Options{})
	})
	require.NoError(t, err)
	assert.Equal(t, `<table:table-row table:style-name="dark"><table:table-cell/></table:table-row>`, out)

	rows := odftest.Parse(t, out).Children("table:table-row")
	require.Len(t, rows, 1)
	style, _ := rows[0].Attr("table:style-name")
	assert.Equal(t, "dark", style)
	assert.Len(t, rows[0].Children("table:table-cell"), 1)
}

func TestSetStyle(t *testing.T) {
	r := row.New(0, "")
	r.SetStyle("dark")
	assert.Equal(t, "dark", r.Style())
	assert.Equal(t, `<table:table-row table:style-name="dark"/>`, render(t, r))

	r.SetStyle("")
	assert.Equal(t, `<table:table-row/>`, render(t, r))
}

// ── rendering ─────────────────────────────────────────────────────────────────

func TestRenderIdempotent(t *testing.T) {
	r := row.New(1, "ro1")
	r.AddCell(cell.Text("x"), cell.Options{Span: 2, URL: "http://www.example.org"})
	first := render(t, r)
	assert.Equal(t, first, render(t, r))
}

func TestWriteTo(t *testing.T) {
	r := row.New(2, "ro1")
	var buf bytes.Buffer
	n, err := r.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, render(t, r), buf.String())
	assert.Equal(t, int64(buf.Len()), n)
}

func TestCellErrorAbortsRow(t *testing.T) {
	r := row.New(1, "")
	r.AddCell(cell.Number(math.NaN()), cell.Options{Type: cell.TypeFloat})

	out, err := r.Render()
	require.Error(t, err)
	assert.Empty(t, out)
	assert.True(t, errors.Is(err, cell.ErrFormat))
	assert.Contains(t, err.Error(), "row: cell 1:")

	var buf bytes.Buffer
	_, err = r.WriteTo(&buf)
	assert.Error(t, err)
	assert.Zero(t, buf.Len())
}
