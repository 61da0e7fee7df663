// Package doxml provides the XML document layer for Doxygen-style input.
// It wraps antchfx/xmlquery with the mixed-content primitives the content
// model parser needs: leading text, per-child tail text, and node removal.
//
// Security Notes:
//   - XXE (External Entity) attacks are mitigated because xmlquery uses Go's
//     xml.Decoder internally, which does not fetch external entities.
package doxml

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"
)

// Document represents a parsed XML document.
type Document struct {
	root *xmlquery.Node
}

// Element represents an XML element node.
type Element struct {
	node *xmlquery.Node
}

// Parse parses XML data and returns a Document.
func Parse(data []byte) (*Document, error) {
	root, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseReader parses XML from a reader and returns a Document.
func ParseReader(r io.Reader) (*Document, error) {
	root, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing XML: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseFile parses the XML file at path and returns a Document.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return doc, nil
}

// Root returns the root element of the document, or nil if the document
// has no element content.
func (d *Document) Root() *Element {
	if d.root == nil {
		return nil
	}
	for child := d.root.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			return &Element{node: child}
		}
	}
	return nil
}

// Name returns the element's tag name.
func (e *Element) Name() string {
	return e.node.Data
}

// Attr returns the value of the named attribute, or "" if absent.
func (e *Element) Attr(name string) string {
	return e.node.SelectAttr(name)
}

// HasAttr reports whether the named attribute is present.
func (e *Element) HasAttr(name string) bool {
	for _, a := range e.node.Attr {
		if a.Name.Local == name {
			return true
		}
	}
	return false
}

// Text returns the text content that precedes the element's first child
// element. This matches the "leading text" of a mixed-content element.
func (e *Element) Text() string {
	var buf bytes.Buffer
	for child := e.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			break
		}
		if child.Type == xmlquery.TextNode || child.Type == xmlquery.CharDataNode {
			buf.WriteString(child.Data)
		}
	}
	return buf.String()
}

// Tail returns the text content between this element's end tag and the next
// sibling element (or the parent's end tag).
func (e *Element) Tail() string {
	var buf bytes.Buffer
	for sib := e.node.NextSibling; sib != nil; sib = sib.NextSibling {
		if sib.Type == xmlquery.ElementNode {
			break
		}
		if sib.Type == xmlquery.TextNode || sib.Type == xmlquery.CharDataNode {
			buf.WriteString(sib.Data)
		}
	}
	return buf.String()
}

// InnerText returns all text content of the element and its descendants.
func (e *Element) InnerText() string {
	return e.node.InnerText()
}

// Children returns the child element nodes in document order.
func (e *Element) Children() []*Element {
	var children []*Element
	for child := e.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode {
			children = append(children, &Element{node: child})
		}
	}
	return children
}

// Find returns the first direct child element with the given tag name,
// or nil if there is none.
func (e *Element) Find(tag string) *Element {
	for child := e.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode && child.Data == tag {
			return &Element{node: child}
		}
	}
	return nil
}

// FindAll returns all direct child elements with the given tag name.
func (e *Element) FindAll(tag string) []*Element {
	var found []*Element
	for child := e.node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == xmlquery.ElementNode && child.Data == tag {
			found = append(found, &Element{node: child})
		}
	}
	return found
}

// Query executes an XPath expression relative to the element and returns
// the first match, or nil if there is none.
func (e *Element) Query(expr string) (*Element, error) {
	if _, err := xpath.Compile(expr); err != nil {
		return nil, fmt.Errorf("invalid xpath %q: %w", expr, err)
	}
	node, err := xmlquery.Query(e.node, expr)
	if err != nil {
		return nil, fmt.Errorf("xpath query %q failed: %w", expr, err)
	}
	if node == nil {
		return nil, nil
	}
	return &Element{node: node}, nil
}

// Parent returns the parent element, or nil at the document root.
func (e *Element) Parent() *Element {
	p := e.node.Parent
	if p == nil || p.Type != xmlquery.ElementNode {
		return nil
	}
	return &Element{node: p}
}

// RemoveChild unlinks the given direct child (and its tail text) from the
// element. It returns an error if child is not a direct child.
func (e *Element) RemoveChild(child *Element) error {
	if child.node.Parent != e.node {
		return fmt.Errorf("removing <%s>: not a child of <%s>", child.Name(), e.Name())
	}
	// The tail belongs to the removed element, as in every tree model where
	// trailing text is carried by the preceding node.
	for sib := child.node.NextSibling; sib != nil; {
		if sib.Type == xmlquery.ElementNode {
			break
		}
		next := sib.NextSibling
		if sib.Type == xmlquery.TextNode || sib.Type == xmlquery.CharDataNode {
			xmlquery.RemoveFromTree(sib)
		}
		sib = next
	}
	xmlquery.RemoveFromTree(child.node)
	return nil
}

// Same reports whether two Elements refer to the same underlying node.
func (e *Element) Same(other *Element) bool {
	return other != nil && e.node == other.node
}
