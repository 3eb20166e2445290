package dom

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

//go:embed page.html
var pageHTML string

// ErrElementNotFound is returned when no element has the requested id.
var ErrElementNotFound = errors.New("element not found")

// HTML element names used when reading forms.
const (
	htmlElementInput    = "input"
	htmlElementTextarea = "textarea"
)

// Document is an in-memory HTML page.
//
// A Document is not safe for concurrent use. The controller's event loop is
// its only writer.
type Document struct {
	root *html.Node

	// values holds the current value of each input, keyed by element id.
	values map[string]string
}

// NewPage returns a fresh copy of the flashdeck page with nothing rendered.
func NewPage() *Document {
	d, err := Parse(strings.NewReader(pageHTML))
	if err != nil {
		// The page is embedded at build time.
		panic(fmt.Sprintf("dom: embedded page does not parse: %v", err))
	}
	return d
}

// Parse reads an HTML document. Input values are initialised from their
// value attributes.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	d := &Document{root: root, values: make(map[string]string)}
	walk(root, func(n *html.Node) bool {
		if isInput(n) {
			if id := attr(n, "id"); id != "" {
				d.values[id] = attr(n, "value")
			}
		}
		return true
	})
	return d, nil
}

// ByID returns the element with the given id, or nil.
func (d *Document) ByID(id string) *html.Node {
	var found *html.Node
	walk(d.root, func(n *html.Node) bool {
		if n.Type == html.ElementNode && attr(n, "id") == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// ByClass returns every element under the element with id parentID whose
// class list contains class, in document order. An empty parentID searches
// the whole document.
func (d *Document) ByClass(parentID, class string) []*html.Node {
	root := d.root
	if parentID != "" {
		root = d.ByID(parentID)
		if root == nil {
			return nil
		}
	}

	var nodes []*html.Node
	walk(root, func(n *html.Node) bool {
		if n != root && n.Type == html.ElementNode && HasClass(n, class) {
			nodes = append(nodes, n)
		}
		return true
	})
	return nodes
}

// SetVisible sets the element's display style to block or none.
func (d *Document) SetVisible(id string, visible bool) error {
	n := d.ByID(id)
	if n == nil {
		return fmt.Errorf("%w: #%s", ErrElementNotFound, id)
	}

	display := "none"
	if visible {
		display = "block"
	}
	setAttr(n, "style", setStyleProperty(attr(n, "style"), "display", display))
	return nil
}

// IsVisible reports whether the element exists and neither it nor any
// ancestor has display: none.
func (d *Document) IsVisible(id string) bool {
	n := d.ByID(id)
	if n == nil {
		return false
	}
	for ; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && styleProperty(attr(n, "style"), "display") == "none" {
			return false
		}
	}
	return true
}

// ReplaceChildren removes every child of the element and appends children
// in order. With no children it empties the element.
func (d *Document) ReplaceChildren(id string, children ...*html.Node) error {
	n := d.ByID(id)
	if n == nil {
		return fmt.Errorf("%w: #%s", ErrElementNotFound, id)
	}

	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	for _, c := range children {
		if c.Parent != nil {
			c.Parent.RemoveChild(c)
		}
		n.AppendChild(c)
	}
	return nil
}

// Children returns the element children of the element with id.
func (d *Document) Children(id string) []*html.Node {
	n := d.ByID(id)
	if n == nil {
		return nil
	}
	var children []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			children = append(children, c)
		}
	}
	return children
}

// SetValue sets the current value of an input.
func (d *Document) SetValue(id, value string) error {
	n := d.ByID(id)
	if n == nil || !isInput(n) {
		return fmt.Errorf("%w: input #%s", ErrElementNotFound, id)
	}
	d.values[id] = value
	return nil
}

// Value returns the current value of an input, or "" if there is none.
func (d *Document) Value(id string) string {
	return d.values[id]
}

// FormValues returns the current values of the inputs inside the form with
// id formID, keyed by their name attribute.
func (d *Document) FormValues(formID string) (map[string]string, error) {
	form := d.ByID(formID)
	if form == nil || form.DataAtom != atom.Form {
		return nil, fmt.Errorf("%w: form #%s", ErrElementNotFound, formID)
	}

	values := make(map[string]string)
	walk(form, func(n *html.Node) bool {
		if !isInput(n) {
			return true
		}
		name := attr(n, "name")
		if name == "" {
			return true
		}
		values[name] = d.values[attr(n, "id")]
		return true
	})
	return values, nil
}

// MarkInvalid sets aria-invalid on the inputs of the form named in names
// and clears it from the form's other inputs.
func (d *Document) MarkInvalid(formID string, names []string) error {
	form := d.ByID(formID)
	if form == nil || form.DataAtom != atom.Form {
		return fmt.Errorf("%w: form #%s", ErrElementNotFound, formID)
	}

	invalid := make(map[string]bool, len(names))
	for _, name := range names {
		invalid[name] = true
	}
	walk(form, func(n *html.Node) bool {
		if !isInput(n) {
			return true
		}
		if invalid[attr(n, "name")] {
			setAttr(n, "aria-invalid", "true")
		} else {
			removeAttr(n, "aria-invalid")
		}
		return true
	})
	return nil
}

// Invalid returns the names of the form's inputs marked aria-invalid.
func (d *Document) Invalid(formID string) []string {
	form := d.ByID(formID)
	if form == nil {
		return nil
	}
	var names []string
	walk(form, func(n *html.Node) bool {
		if isInput(n) && attr(n, "aria-invalid") == "true" {
			names = append(names, attr(n, "name"))
		}
		return true
	})
	return names
}

// Text returns the text content of the element with id.
func (d *Document) Text(id string) string {
	n := d.ByID(id)
	if n == nil {
		return ""
	}
	return TextContent(n)
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// RenderElement returns the outer HTML of the element with id.
func (d *Document) RenderElement(id string) (string, error) {
	n := d.ByID(id)
	if n == nil {
		return "", fmt.Errorf("%w: #%s", ErrElementNotFound, id)
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// walk visits n and its descendants depth-first in document order until
// fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

func isInput(n *html.Node) bool {
	return n.Type == html.ElementNode && (n.Data == htmlElementInput || n.Data == htmlElementTextarea)
}
