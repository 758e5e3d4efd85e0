// Package xmltree parses raw XML bytes into a generic attributed tree.
//
// Unlike struct unmarshalling, the tree keeps every element, attribute, and
// text run in document order, so callers can walk parts whose shape is only
// known at runtime. Attribute names keep the document's prefixed form
// verbatim (an attribute written r:id is looked up as "r:id"); no namespace
// resolution is performed.
package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// Node is one element in a parsed tree.
type Node struct {
	Tag      string
	Text     string // concatenated character data
	Attrs    []Attr // document order
	Children []*Node
}

// Attr is a single attribute with its name as written in the document.
type Attr struct {
	Name  string
	Value string
}

// ParseError reports malformed XML, with the line where the parser stopped
// when available (zero otherwise).
type ParseError struct {
	Line int64
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("xmltree: parse error at line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("xmltree: parse error: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Attr returns the value of the named attribute. The second return value
// distinguishes a missing attribute from one whose value is empty.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// Child returns the first direct child with the given tag, or nil.
func (n *Node) Child(tag string) *Node {
	for _, c := range n.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// HasChild reports whether at least one direct child has the given tag.
func (n *Node) HasChild(tag string) bool {
	return n.Child(tag) != nil
}

// scope tracks the xmlns bindings introduced by one element, so prefixed
// names can be reconstructed after the decoder has resolved them.
type scope struct {
	prefixes map[string]string // namespace URL -> prefix
	defaults []string          // default namespace URLs, innermost last
}

// Parse parses the raw bytes of one XML part into a tree and returns its
// root element.
func Parse(data []byte) (*Node, error) {
	d := xml.NewDecoder(bytes.NewReader(data))

	var root *Node
	var stack []*Node
	sc := &scope{prefixes: make(map[string]string)}

	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, wrapParseError(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			sc.push(t.Attr)
			node := &Node{Tag: sc.elementName(t.Name)}
			for _, a := range t.Attr {
				node.Attrs = append(node.Attrs, Attr{
					Name:  sc.attrName(a.Name),
					Value: a.Value,
				})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, wrapParseError(errors.New("multiple root elements"))
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)

		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}

		case xml.CharData:
			if len(stack) > 0 {
				cur := stack[len(stack)-1]
				cur.Text += string(t)
			}
		}
	}

	if root == nil {
		return nil, wrapParseError(errors.New("no root element"))
	}
	return root, nil
}

func wrapParseError(err error) error {
	var syn *xml.SyntaxError
	if errors.As(err, &syn) {
		return &ParseError{Line: int64(syn.Line), Err: err}
	}
	return &ParseError{Err: err}
}

// push records the xmlns bindings declared on an element. Bindings are kept
// for the rest of the parse; OOXML parts declare all namespaces on the root,
// so per-element scoping is not tracked.
func (s *scope) push(attrs []xml.Attr) {
	for _, a := range attrs {
		switch {
		case a.Name.Space == "xmlns":
			s.prefixes[a.Value] = a.Name.Local
		case a.Name.Space == "" && a.Name.Local == "xmlns":
			s.defaults = append(s.defaults, a.Value)
		}
	}
}

// elementName reconstructs an element's tag as written. Elements in a
// default namespace come back as their plain local name.
func (s *scope) elementName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	for _, d := range s.defaults {
		if d == n.Space {
			return n.Local
		}
	}
	if p, ok := s.prefixes[n.Space]; ok {
		return p + ":" + n.Local
	}
	// Undeclared prefix: the decoder leaves it verbatim in Space.
	return n.Space + ":" + n.Local
}

// attrName reconstructs an attribute's name as written.
func (s *scope) attrName(n xml.Name) string {
	switch {
	case n.Space == "":
		return n.Local
	case n.Space == "xmlns":
		return "xmlns:" + n.Local
	}
	if p, ok := s.prefixes[n.Space]; ok {
		return p + ":" + n.Local
	}
	return n.Space + ":" + n.Local
}
