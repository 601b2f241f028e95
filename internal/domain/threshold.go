package domain

import (
	"fmt"
	"time"
)

// ThresholdKey identifies a threshold across a document.
type ThresholdKey struct {
	SiteCode string
	Code     string
}

func (k ThresholdKey) String() string { return k.SiteCode + "/" + k.Code }

// ThresholdValue is one value of a threshold, attached to the site or to one
// of its stations. Threshold names the owning aggregate.
type ThresholdValue struct {
	Threshold     ThresholdKey
	Entity        EntityRef
	Value         float64
	Tolerance     *float64
	ActivatedAt   time.Time
	DeactivatedAt time.Time
}

// Threshold is an alert threshold on a site. Values are kept in read order.
type Threshold struct {
	SiteCode    string
	Code        string
	Type        *int
	Nature      *int
	Duration    *float64
	Label       string
	Mnemo       string
	Severity    *int
	Forced      *bool
	Publication *int
	Comment     string
	UpdatedAt   time.Time

	Values []ThresholdValue
}

// Key returns the identity of the threshold.
func (t Threshold) Key() ThresholdKey {
	return ThresholdKey{SiteCode: t.SiteCode, Code: t.Code}
}

// SiteValues returns the values attached to the site itself.
func (t Threshold) SiteValues() []ThresholdValue {
	return t.valuesOf(EntitySite)
}

// StationValues returns the values attached to stations.
func (t Threshold) StationValues() []ThresholdValue {
	return t.valuesOf(EntityStation)
}

func (t Threshold) valuesOf(kind EntityKind) []ThresholdValue {
	var out []ThresholdValue
	for _, v := range t.Values {
		if v.Entity.Kind == kind {
			out = append(out, v)
		}
	}
	return out
}

// MetadataDiff returns the name of the first descriptive field that differs
// between t and o, or "" when they agree. Values are not compared.
func (t Threshold) MetadataDiff(o Threshold) string {
	switch {
	case t.SiteCode != o.SiteCode:
		return "site_code"
	case t.Code != o.Code:
		return "code"
	case !ptrEqual(t.Type, o.Type):
		return "type"
	case !ptrEqual(t.Nature, o.Nature):
		return "nature"
	case !ptrEqual(t.Duration, o.Duration):
		return "duration"
	case t.Label != o.Label:
		return "label"
	case t.Mnemo != o.Mnemo:
		return "mnemo"
	case !ptrEqual(t.Severity, o.Severity):
		return "severity"
	case !ptrEqual(t.Forced, o.Forced):
		return "forced"
	case !ptrEqual(t.Publication, o.Publication):
		return "publication"
	case t.Comment != o.Comment:
		return "comment"
	case !t.UpdatedAt.Equal(o.UpdatedAt):
		return "updated_at"
	}
	return ""
}

// WithoutValues returns a copy of the metadata with no values.
func (t Threshold) WithoutValues() Threshold {
	t.Values = nil
	return t
}

// Validate checks the identity and the value targets.
func (t Threshold) Validate() error {
	id := t.Key().String()
	if err := required("threshold", id, "site_code", t.SiteCode); err != nil {
		return err
	}
	if err := required("threshold", id, "code", t.Code); err != nil {
		return err
	}
	for i, v := range t.Values {
		switch v.Entity.Kind {
		case EntitySite:
			if v.Entity.Code != t.SiteCode {
				return invalid("threshold", id, fmt.Sprintf("values[%d]", i), "site value on %q", v.Entity.Code)
			}
		case EntityStation:
			if v.Entity.Code == "" {
				return invalid("threshold", id, fmt.Sprintf("values[%d]", i), "station code required")
			}
		default:
			return invalid("threshold", id, fmt.Sprintf("values[%d]", i), "cannot attach a value to a %s", v.Entity.Kind)
		}
	}
	return nil
}

func ptrEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
