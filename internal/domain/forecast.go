package domain

import (
	"encoding/json"
	"fmt"
	"slices"
	"time"
)

// Tendency is one of the three fixed forecast tendencies.
type Tendency uint8

const (
	TendencyMean Tendency = iota + 1
	TendencyMin
	TendencyMax
)

// Tendencies lists the tendencies in wire order.
var Tendencies = []Tendency{TendencyMean, TendencyMin, TendencyMax}

func (t Tendency) String() string {
	switch t {
	case TendencyMean:
		return "moy"
	case TendencyMin:
		return "min"
	case TendencyMax:
		return "max"
	default:
		return "unknown"
	}
}

// VariantKind discriminates forecast variants.
type VariantKind uint8

const (
	VariantTendency VariantKind = iota + 1
	VariantProbability
)

// Variant is either a tendency or a non-exceedance probability in percent.
// It is comparable and can key a map.
type Variant struct {
	Kind        VariantKind
	Tendency    Tendency
	Probability int
}

// Trend returns the tendency variant t.
func Trend(t Tendency) Variant { return Variant{Kind: VariantTendency, Tendency: t} }

// Prob returns the probability variant p.
func Prob(p int) Variant { return Variant{Kind: VariantProbability, Probability: p} }

func (v Variant) String() string {
	switch v.Kind {
	case VariantTendency:
		return v.Tendency.String()
	case VariantProbability:
		return fmt.Sprintf("p%d", v.Probability)
	default:
		return "unknown"
	}
}

// MarshalText writes the variant label.
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// Compare orders tendencies before probabilities, tendencies in wire order
// and probabilities ascending.
func (v Variant) Compare(o Variant) int {
	if v.Kind != o.Kind {
		return int(v.Kind) - int(o.Kind)
	}
	if v.Kind == VariantTendency {
		return int(v.Tendency) - int(o.Tendency)
	}
	return v.Probability - o.Probability
}

// ForecastPoint is one forecast value.
type ForecastPoint struct {
	Date    time.Time
	Variant Variant
	Value   float64
}

type forecastKey struct {
	date    int64
	variant Variant
}

// ForecastSeries indexes forecast points by (date, variant). Adding a point
// whose key already exists replaces the previous value.
type ForecastSeries struct {
	points []ForecastPoint
	index  map[forecastKey]int
}

// NewForecastSeries builds a series from points, in order.
func NewForecastSeries(points ...ForecastPoint) *ForecastSeries {
	s := &ForecastSeries{}
	for _, p := range points {
		s.Add(p)
	}
	return s
}

// Add stores p, replacing any point with the same date and variant.
func (s *ForecastSeries) Add(p ForecastPoint) {
	if s.index == nil {
		s.index = make(map[forecastKey]int)
	}
	p.Date = p.Date.UTC()
	k := forecastKey{date: p.Date.Unix(), variant: p.Variant}
	if i, ok := s.index[k]; ok {
		s.points[i] = p
		return
	}
	s.index[k] = len(s.points)
	s.points = append(s.points, p)
}

// Get returns the value stored for (date, v).
func (s *ForecastSeries) Get(date time.Time, v Variant) (float64, bool) {
	if s == nil {
		return 0, false
	}
	i, ok := s.index[forecastKey{date: date.Unix(), variant: v}]
	if !ok {
		return 0, false
	}
	return s.points[i].Value, true
}

// Len returns the number of distinct (date, variant) keys.
func (s *ForecastSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.points)
}

// Points returns a copy of the points ordered by date, then variant.
func (s *ForecastSeries) Points() []ForecastPoint {
	if s == nil {
		return nil
	}
	out := slices.Clone(s.points)
	slices.SortStableFunc(out, func(a, b ForecastPoint) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return a.Variant.Compare(b.Variant)
	})
	return out
}

// Split returns the ordered points partitioned into tendencies and
// probabilities.
func (s *ForecastSeries) Split() (tendencies, probabilities []ForecastPoint) {
	for _, p := range s.Points() {
		if p.Variant.Kind == VariantTendency {
			tendencies = append(tendencies, p)
		} else {
			probabilities = append(probabilities, p)
		}
	}
	return tendencies, probabilities
}

// Equal reports whether both series hold the same points.
func (s *ForecastSeries) Equal(o *ForecastSeries) bool {
	a, b := s.Points(), o.Points()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Date.Equal(b[i].Date) || a[i].Variant != b[i].Variant || a[i].Value != b[i].Value {
			return false
		}
	}
	return true
}

// MarshalJSON writes the series as its ordered point list.
func (s *ForecastSeries) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Points())
}

// MarshalYAML writes the series as its ordered point list.
func (s *ForecastSeries) MarshalYAML() (any, error) {
	return s.Points(), nil
}

// Validate checks variants and probability bounds.
func (s *ForecastSeries) Validate() error {
	for _, p := range s.Points() {
		switch p.Variant.Kind {
		case VariantTendency:
			if p.Variant.Tendency < TendencyMean || p.Variant.Tendency > TendencyMax {
				return invalid("forecast", p.Date.Format(time.RFC3339), "tendency", "unknown tendency %d", p.Variant.Tendency)
			}
		case VariantProbability:
			if p.Variant.Probability < 0 || p.Variant.Probability > 100 {
				return invalid("forecast", p.Date.Format(time.RFC3339), "probability", "%d outside 0..100", p.Variant.Probability)
			}
		default:
			return invalid("forecast", p.Date.Format(time.RFC3339), "variant", "unset")
		}
	}
	return nil
}
