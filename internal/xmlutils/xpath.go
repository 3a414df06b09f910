// Package xmlutils wraps gopkg.in/xmlpath.v2 for the CAMT.053 statement reader.
package xmlutils

import (
	"fmt"
	"io"
	"strings"

	"gopkg.in/xmlpath.v2"
)

// Parse reads an XML document and returns its root node.
func Parse(r io.Reader) (*xmlpath.Node, error) {
	root, err := xmlpath.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	return root, nil
}

// Nodes returns every node matched by the compiled path, in document order.
func Nodes(root *xmlpath.Node, path *xmlpath.Path) []*xmlpath.Node {
	var nodes []*xmlpath.Node
	iter := path.Iter(root)
	for iter.Next() {
		nodes = append(nodes, iter.Node())
	}
	return nodes
}

// FirstValue returns the cleaned text of the first path that yields a non-empty value.
func FirstValue(node *xmlpath.Node, paths ...*xmlpath.Path) string {
	for _, p := range paths {
		if v, ok := p.String(node); ok {
			if v = CleanText(v); v != "" {
				return v
			}
		}
	}
	return ""
}

// Exists reports whether the path matches anything below node.
func Exists(node *xmlpath.Node, path *xmlpath.Path) bool {
	return path.Exists(node)
}

// CleanText collapses whitespace runs, including newlines and tabs, into single spaces.
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
