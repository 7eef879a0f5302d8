package ivr

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// element is a generic XML element tree node. The authoring tool's schema is
// too irregular (the same logical field moves between tags and depths across
// module variants) to model with static xml struct tags, so extraction works
// over a plain navigable tree instead.
type element struct {
	name     string
	attrs    []xml.Attr
	text     string
	children []*element
}

// parseDocument strictly parses one XML document and returns its root
// element. Malformed markup, undeclared entities, truncated input, and
// trailing sibling roots are all reported as errors; callers turn those into
// per-script failures.
func parseDocument(text string) (*element, error) {
	dec := xml.NewDecoder(strings.NewReader(text))

	var root *element
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if root != nil {
			return nil, fmt.Errorf("unexpected second root element <%s>", start.Name.Local)
		}
		root, err = buildElement(dec, start)
		if err != nil {
			return nil, err
		}
	}
	if root == nil {
		return nil, errors.New("document contains no elements")
	}
	return root, nil
}

// buildElement consumes tokens up to and including start's matching end tag.
func buildElement(dec *xml.Decoder, start xml.StartElement) (*element, error) {
	el := &element{
		name:  start.Name.Local,
		attrs: start.Attr,
	}
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("unexpected EOF inside <%s>", el.name)
			}
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child, err := buildElement(dec, t)
			if err != nil {
				return nil, err
			}
			el.children = append(el.children, child)
		case xml.CharData:
			text.Write(t)
		case xml.EndElement:
			el.text = text.String()
			return el, nil
		}
	}
}

// attr returns the named attribute's value, or "".
func (e *element) attr(name string) string {
	for _, a := range e.attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// trimText returns the element's own character data, whitespace-trimmed.
func (e *element) trimText() string {
	return strings.TrimSpace(e.text)
}

// child returns the first direct child with the given tag, or nil.
func (e *element) child(name string) *element {
	for _, c := range e.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// childText returns the trimmed text of the first direct child with the
// given tag, or "" when the child is absent. A present-but-empty child is
// indistinguishable from an absent one, which is exactly the policy the
// extractors want.
func (e *element) childText(name string) string {
	if c := e.child(name); c != nil {
		return c.trimText()
	}
	return ""
}

// descendants returns every descendant with the given tag in document order,
// the ".//name" search the extractors are built on.
func (e *element) descendants(name string) []*element {
	var out []*element
	e.walkDescendants(func(d *element) {
		if d.name == name {
			out = append(out, d)
		}
	})
	return out
}

func (e *element) walkDescendants(fn func(*element)) {
	for _, c := range e.children {
		fn(c)
		c.walkDescendants(fn)
	}
}

// locate evaluates a slash-separated candidate path with ".//" semantics on
// the first segment: descendants matching the head, then direct children for
// each remaining segment. Returns every match in document order.
func (e *element) locate(path string) []*element {
	segs := strings.Split(path, "/")
	matches := e.descendants(segs[0])
	for _, seg := range segs[1:] {
		var next []*element
		for _, m := range matches {
			for _, c := range m.children {
				if c.name == seg {
					next = append(next, c)
				}
			}
		}
		matches = next
	}
	return matches
}
