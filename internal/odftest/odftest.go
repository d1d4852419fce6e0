// Package odftest decodes rendered ODF fragments so tests can assert on
// element counts and attributes instead of exact byte strings.
//
// Fragments are wrapped in a synthetic <root> element before decoding.  No
// namespaces are declared, so encoding/xml keeps prefixes as-is: an element
// written as table:table-cell decodes with Space "table" and Local
// "table-cell".
package odftest

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/require"
)

// Node is one decoded element.
type Node struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Nodes   []Node     `xml:",any"`
	Text    string     `xml:",chardata"`
}

// Parse decodes fragment and returns the synthetic root.  The test fails
// immediately if fragment is not well-formed.
func Parse(t testing.TB, fragment string) Node {
	t.Helper()
	var root Node
	err := xml.Unmarshal([]byte("<root>"+fragment+"</root>"), &root)
	require.NoError(t, err, "fragment is not well-formed XML: %s", fragment)
	return root
}

func split(qname string) xml.Name {
	if i := strings.IndexByte(qname, ':'); i >= 0 {
		return xml.Name{Space: qname[:i], Local: qname[i+1:]}
	}
	return xml.Name{Local: qname}
}

// Is reports whether n is the element named by the prefixed name qname.
func (n Node) Is(qname string) bool {
	return n.XMLName == split(qname)
}

// Attr returns the value of the prefixed attribute qname and whether it is
// present at all.
func (n Node) Attr(qname string) (string, bool) {
	want := split(qname)
	for _, a := range n.Attrs {
		if a.Name == want {
			return a.Value, true
		}
	}
	return "", false
}

// Children returns the direct children named qname.
func (n Node) Children(qname string) []Node {
	var out []Node
	for _, c := range n.Nodes {
		if c.Is(qname) {
			out = append(out, c)
		}
	}
	return out
}

// Find returns every descendant named qname in document order.
func (n Node) Find(qname string) []Node {
	var out []Node
	for _, c := range n.Nodes {
		if c.Is(qname) {
			out = append(out, c)
		}
		out = append(out, c.Find(qname)...)
	}
	return out
}

// Dump returns a readable rendering of the tree rooted at n, for failure
// messages.
func (n Node) Dump() string {
	return spew.Sdump(n)
}
