// Package extract reads typed values out of SANDRE element trees.
//
// Every reader takes the parent element and the child tag. A missing parent,
// a missing child, or a child without text all mean "absent" and are never
// errors. Text that cannot be cast to the requested type is a
// *sandre.MalformedElementError, and callers must let it abort the decode.
// Booleans are the exception: any text reads as true or false.
package extract

import (
	"strings"
	"time"

	"github.com/beevik/etree"

	"github.com/couchcryptid/sandre-etl/internal/sandre"
)

// Cast converts element text to a typed value.
type Cast[T any] func(text string) (T, error)

// Child returns the first child named tag, or nil.
func Child(parent *etree.Element, tag string) *etree.Element {
	if parent == nil {
		return nil
	}
	return parent.SelectElement(tag)
}

// Children returns every child named tag.
func Children(parent *etree.Element, tag string) []*etree.Element {
	if parent == nil {
		return nil
	}
	return parent.SelectElements(tag)
}

// Path follows tags one level at a time and returns the children named by
// the last tag. Path(site, "StationsHydro", "StationHydro") lists stations.
func Path(parent *etree.Element, tags ...string) []*etree.Element {
	if len(tags) == 0 {
		return nil
	}
	level := []*etree.Element{parent}
	for _, tag := range tags {
		var next []*etree.Element
		for _, el := range level {
			next = append(next, Children(el, tag)...)
		}
		level = next
	}
	return level
}

// Value reads the text of parent/tag through cast. ok is false when the
// value is absent.
func Value[T any](parent *etree.Element, tag string, cast Cast[T], typeName string) (v T, ok bool, err error) {
	text, ok := rawText(parent, tag)
	if !ok {
		return v, false, nil
	}
	v, err = cast(text)
	if err != nil {
		return v, false, &sandre.MalformedElementError{Tag: tag, Text: text, Type: typeName, Err: err}
	}
	return v, true, nil
}

// Text returns the trimmed text of parent/tag, or "" when absent.
func Text(parent *etree.Element, tag string) string {
	text, _ := rawText(parent, tag)
	return text
}

// Int reads a decimal integer.
func Int(parent *etree.Element, tag string) (int, bool, error) {
	return Value[int](parent, tag, sandre.ParseInt, "int")
}

// Float reads a decimal number.
func Float(parent *etree.Element, tag string) (float64, bool, error) {
	return Value[float64](parent, tag, sandre.ParseFloat, "float")
}

// Time reads a wire date; absent reads as the zero time.
func Time(parent *etree.Element, tag string) (time.Time, error) {
	t, _, err := Value[time.Time](parent, tag, sandre.ParseTime, "datetime")
	return t, err
}

// Bool reads a boolean with the permissive wire rule.
func Bool(parent *etree.Element, tag string) (value, ok bool) {
	text, ok := rawText(parent, tag)
	if !ok {
		return false, false
	}
	return sandre.ParseBool(text), true
}

// OptInt reads an optional integer.
func OptInt(parent *etree.Element, tag string) (*int, error) {
	v, ok, err := Int(parent, tag)
	return optional(v, ok, err)
}

// OptFloat reads an optional decimal number.
func OptFloat(parent *etree.Element, tag string) (*float64, error) {
	v, ok, err := Float(parent, tag)
	return optional(v, ok, err)
}

// OptBool reads an optional boolean.
func OptBool(parent *etree.Element, tag string) *bool {
	v, ok := Bool(parent, tag)
	if !ok {
		return nil
	}
	return &v
}

func optional[T any](v T, ok bool, err error) (*T, error) {
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

func rawText(parent *etree.Element, tag string) (string, bool) {
	child := Child(parent, tag)
	if child == nil {
		return "", false
	}
	text := strings.TrimSpace(child.Text())
	return text, text != ""
}
