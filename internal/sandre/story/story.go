// Package story builds SANDRE element trees from declarative stories.
//
// A Story is an ordered list of nodes; the list order is the wire order.
// Mappers describe an entity as a story and let Assemble turn it into
// elements:
//
//	s := story.Story{
//		story.Text("CdSiteHydro", site.Code),
//		story.Text("LbSiteHydro", site.Label),
//		story.List("StationsHydro", stations),
//	}
//	el, err := story.Assemble("SiteHydro", s)
//
// Nodes are built only through the constructors in this package. A Node
// is either a Scalar (zero or more textual values, one sibling element per
// value) or a Container (a nested story plus optional pre-built children).
package story

import (
	"strconv"
	"time"

	"github.com/beevik/etree"

	"github.com/couchcryptid/sandre-etl/internal/sandre"
)

type kind uint8

const (
	scalar kind = iota + 1
	container
)

// Attr is an attribute applied to every element a node emits.
type Attr struct {
	Key   string
	Value string
}

// Node is one emission rule. The zero Node is malformed.
type Node struct {
	kind     kind
	tag      string
	values   []string
	attrs    []Attr
	force    bool
	sub      Story
	children []*etree.Element
}

// Story is an ordered sequence of nodes.
type Story []Node

// Scalar emits one <tag> per value. With no values it emits nothing unless
// forced.
func Scalar(tag string, values ...string) Node {
	return Node{kind: scalar, tag: tag, values: values}
}

// Container emits <tag> wrapping the nested story.
func Container(tag string, sub ...Node) Node {
	return Node{kind: container, tag: tag, sub: sub}
}

// List emits <tag> wrapping pre-built children, typically one element per
// item of a collection.
func List(tag string, children []*etree.Element) Node {
	return Node{kind: container, tag: tag, children: children}
}

// Tag returns the element name the node emits.
func (n Node) Tag() string { return n.tag }

// WithAttr returns a copy of n carrying an extra attribute.
func (n Node) WithAttr(key, value string) Node {
	attrs := make([]Attr, len(n.attrs), len(n.attrs)+1)
	copy(attrs, n.attrs)
	n.attrs = append(attrs, Attr{Key: key, Value: value})
	return n
}

// Forced returns a copy of n that emits one empty element when it has
// nothing else to emit.
func (n Node) Forced() Node {
	n.force = true
	return n
}

// Append returns a copy of n with computed children added after its nested
// story. Only containers accept children.
func (n Node) Append(children ...*etree.Element) Node {
	all := make([]*etree.Element, 0, len(n.children)+len(children))
	all = append(all, n.children...)
	n.children = append(all, children...)
	return n
}

// Text is a Scalar holding s, or nothing when s is empty.
func Text(tag, s string) Node {
	if s == "" {
		return Scalar(tag)
	}
	return Scalar(tag, s)
}

// Int is a Scalar holding v.
func Int(tag string, v int) Node {
	return Scalar(tag, strconv.Itoa(v))
}

// OptInt is a Scalar holding *v, or nothing when v is nil.
func OptInt(tag string, v *int) Node {
	if v == nil {
		return Scalar(tag)
	}
	return Int(tag, *v)
}

// Float is a Scalar holding v.
func Float(tag string, v float64) Node {
	return Scalar(tag, sandre.FormatFloat(v))
}

// OptFloat is a Scalar holding *v, or nothing when v is nil.
func OptFloat(tag string, v *float64) Node {
	if v == nil {
		return Scalar(tag)
	}
	return Float(tag, *v)
}

// Time is a Scalar holding t, or nothing when t is zero.
func Time(tag string, t time.Time) Node {
	if t.IsZero() {
		return Scalar(tag)
	}
	return Scalar(tag, sandre.FormatTime(t))
}

// Bool is a Scalar holding v.
func Bool(tag string, v bool) Node {
	return Scalar(tag, sandre.FormatBool(v))
}

// OptBool is a Scalar holding *v, or nothing when v is nil.
func OptBool(tag string, v *bool) Node {
	if v == nil {
		return Scalar(tag)
	}
	return Bool(tag, *v)
}
