package story

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/couchcryptid/sandre-etl/internal/sandre"
)

// Assemble creates <tag> and appends the story to it.
func Assemble(tag string, s Story) (*etree.Element, error) {
	el := etree.NewElement(tag)
	if err := AppendTo(el, s); err != nil {
		return nil, err
	}
	return el, nil
}

// AppendTo emits the story's nodes, in order, as children of parent.
func AppendTo(parent *etree.Element, s Story) error {
	for i, n := range s {
		if err := emit(parent, n); err != nil {
			return fmt.Errorf("<%s> node %d: %w", parent.Tag, i, err)
		}
	}
	return nil
}

func emit(parent *etree.Element, n Node) error {
	switch n.kind {
	case scalar:
		if len(n.children) > 0 {
			return fmt.Errorf("%w: scalar <%s> cannot hold child elements", sandre.ErrMalformedStory, n.tag)
		}
		if len(n.values) == 0 {
			if n.force {
				withAttrs(parent.CreateElement(n.tag), n.attrs)
			}
			return nil
		}
		for _, v := range n.values {
			withAttrs(parent.CreateElement(n.tag), n.attrs).SetText(v)
		}
		return nil

	case container:
		el := withAttrs(etree.NewElement(n.tag), n.attrs)
		if err := AppendTo(el, n.sub); err != nil {
			return err
		}
		for _, child := range n.children {
			el.AddChild(child)
		}
		if len(el.ChildElements()) == 0 && !n.force {
			return nil
		}
		parent.AddChild(el)
		return nil

	default:
		return fmt.Errorf("%w: <%s> has neither values nor a nested story", sandre.ErrMalformedStory, n.tag)
	}
}

func withAttrs(el *etree.Element, attrs []Attr) *etree.Element {
	for _, a := range attrs {
		el.CreateAttr(a.Key, a.Value)
	}
	return el
}
