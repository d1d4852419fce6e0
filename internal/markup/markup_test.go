package markup

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Test", "Test"},
		{"ampersand", "A & B", "A &amp; B"},
		{"angle brackets", "<b>", "&lt;b&gt;"},
		{"quotes", `"it's"`, "&quot;it&apos;s&quot;"},
		{"whitespace untouched", "a\tb\nc\r", "a\tb\nc\r"},
		{"already escaped is escaped again", "&amp;", "&amp;amp;"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Escape(tc.in))
		})
	}
}

func TestWriter(t *testing.T) {
	var w Writer
	w.Start("table:table-row", Attr{"table:style-name", `a"b`})
	w.Empty("table:table-cell")
	w.TextElement("text:p", "x<y")
	w.End("table:table-row")

	want := `<table:table-row table:style-name="a&quot;b"><table:table-cell/><text:p>x&lt;y</text:p></table:table-row>`
	assert.Equal(t, want, w.String())
	assert.Equal(t, len(want), w.Len())

	var buf bytes.Buffer
	n, err := w.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(len(want)), n)
	assert.Equal(t, want, buf.String())
}

func TestWriterRaw(t *testing.T) {
	var w Writer
	w.Start("a")
	w.Raw("<b/>")
	w.End("a")
	assert.Equal(t, "<a><b/></a>", w.String())
}
