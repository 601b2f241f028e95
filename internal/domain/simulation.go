package domain

import "time"

// Magnitudes.
const (
	MagnitudeHeight = "H"
	MagnitudeFlow   = "Q"
)

func validMagnitude(m string) bool {
	return m == MagnitudeHeight || m == MagnitudeFlow
}

// Simulation is the output of a forecast model run on a site or a station.
type Simulation struct {
	Entity          EntityRef
	ModelCode       string
	IntervenantCode string
	ContactCode     string
	Magnitude       string
	ProducedAt      time.Time
	Quality         *int
	Status          *int
	Public          *bool
	Comment         string
	Forecasts       *ForecastSeries
}

// Validate checks the target, the magnitude and the forecasts.
func (s Simulation) Validate() error {
	id := s.Entity.Code
	if err := required("simulation", id, "entity", s.Entity.Code); err != nil {
		return err
	}
	if s.Entity.Kind != EntitySite && s.Entity.Kind != EntityStation {
		return invalid("simulation", id, "entity", "cannot simulate on a %s", s.Entity.Kind)
	}
	if !validMagnitude(s.Magnitude) {
		return invalid("simulation", id, "magnitude", "%q is not H or Q", s.Magnitude)
	}
	if s.ProducedAt.IsZero() {
		return invalid("simulation", id, "produced_at", "required")
	}
	if s.Quality != nil && (*s.Quality < 0 || *s.Quality > 100) {
		return invalid("simulation", id, "quality", "%d outside 0..100", *s.Quality)
	}
	if s.Forecasts != nil {
		return s.Forecasts.Validate()
	}
	return nil
}

// Observation is one measured value of a series.
type Observation struct {
	Date       time.Time
	Value      float64
	Method     *int
	Quality    *int
	Continuity *bool
}

// Series is a set of observations of one magnitude on one entity.
type Series struct {
	Entity       EntityRef
	Magnitude    string
	Start        time.Time
	End          time.Time
	ProducedAt   time.Time
	Status       *int
	Observations []Observation
}

// Validate checks the target, the magnitude and the observation dates.
func (s Series) Validate() error {
	id := s.Entity.Code
	if err := required("series", id, "entity", s.Entity.Code); err != nil {
		return err
	}
	if !validMagnitude(s.Magnitude) {
		return invalid("series", id, "magnitude", "%q is not H or Q", s.Magnitude)
	}
	if !s.Start.IsZero() && !s.End.IsZero() && s.End.Before(s.Start) {
		return invalid("series", id, "end", "before start")
	}
	for _, o := range s.Observations {
		if o.Date.IsZero() {
			return invalid("series", id, "observation", "date required")
		}
	}
	return nil
}
