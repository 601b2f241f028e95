package domain

import "fmt"

// EntityKind discriminates the hydro entities a value can be attached to.
type EntityKind uint8

const (
	EntitySite EntityKind = iota + 1
	EntityStation
	EntitySensor
)

// Code lengths per entity kind.
const (
	SiteCodeLen    = 8
	StationCodeLen = 10
	SensorCodeLen  = 12
)

// MarshalText writes the kind name.
func (k EntityKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// String returns a short lowercase name.
func (k EntityKind) String() string {
	switch k {
	case EntitySite:
		return "site"
	case EntityStation:
		return "station"
	case EntitySensor:
		return "sensor"
	default:
		return "unknown"
	}
}

// EntityRef points at a site, a station or a sensor by code.
type EntityRef struct {
	Kind EntityKind
	Code string
}

// SiteRef references a hydro site.
func SiteRef(code string) EntityRef { return EntityRef{Kind: EntitySite, Code: code} }

// StationRef references a hydro station.
func StationRef(code string) EntityRef { return EntityRef{Kind: EntityStation, Code: code} }

// SensorRef references a sensor.
func SensorRef(code string) EntityRef { return EntityRef{Kind: EntitySensor, Code: code} }

// IsZero reports whether the reference is unset.
func (r EntityRef) IsZero() bool { return r.Kind == 0 && r.Code == "" }

func (r EntityRef) String() string {
	return fmt.Sprintf("%s:%s", r.Kind, r.Code)
}

// InferEntityKind recovers the kind of an untyped entity code from its
// length.
func InferEntityKind(code string) (EntityRef, error) {
	switch len(code) {
	case SiteCodeLen:
		return SiteRef(code), nil
	case StationCodeLen:
		return StationRef(code), nil
	case SensorCodeLen:
		return SensorRef(code), nil
	default:
		return EntityRef{}, &ValidationError{
			Entity: "entity",
			Field:  "code",
			Reason: fmt.Sprintf("%q has %d characters, expected %d, %d or %d", code, len(code), SiteCodeLen, StationCodeLen, SensorCodeLen),
		}
	}
}
