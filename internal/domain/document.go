package domain

import (
	"errors"
	"fmt"

	"github.com/couchcryptid/sandre-etl/internal/sandre"
)

// Document is the content of one bulletin. It is owned by a single decode or
// encode call.
type Document struct {
	Scenario     Scenario
	Intervenants []Intervenant
	Sites        []Site
	Thresholds   []Threshold
	Models       []ForecastModel
	Events       []Event
	Series       []Series
	Simulations  []Simulation
}

// Site returns the site with the given code.
func (d *Document) Site(code string) (Site, bool) {
	for _, s := range d.Sites {
		if s.Code == code {
			return s, true
		}
	}
	return Site{}, false
}

// Validate checks every entity of the document and stops at the first
// failure.
func (d *Document) Validate() error {
	if d == nil {
		return errors.New("nil document")
	}
	if err := d.Scenario.Validate(); err != nil {
		return err
	}
	for _, i := range d.Intervenants {
		if err := i.Validate(); err != nil {
			return err
		}
	}
	for _, s := range d.Sites {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	for _, t := range d.Thresholds {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	for _, m := range d.Models {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	for _, e := range d.Events {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	for _, s := range d.Series {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	for _, s := range d.Simulations {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Summary counts the entities of a document.
type Summary struct {
	Version      string `json:"version" yaml:"version"`
	Emitter      string `json:"emitter" yaml:"emitter"`
	Intervenants int    `json:"intervenants" yaml:"intervenants"`
	Sites        int    `json:"sites" yaml:"sites"`
	Stations     int    `json:"stations" yaml:"stations"`
	Thresholds   int    `json:"thresholds" yaml:"thresholds"`
	Models       int    `json:"models" yaml:"models"`
	Events       int    `json:"events" yaml:"events"`
	Series       int    `json:"series" yaml:"series"`
	Observations int    `json:"observations" yaml:"observations"`
	Simulations  int    `json:"simulations" yaml:"simulations"`
	Forecasts    int    `json:"forecasts" yaml:"forecasts"`
}

// Summarize counts the entities of d.
func (d *Document) Summarize() Summary {
	s := Summary{
		Version:      d.Scenario.Version.String(),
		Emitter:      d.Scenario.Emitter.IntervenantCode,
		Intervenants: len(d.Intervenants),
		Sites:        len(d.Sites),
		Thresholds:   len(d.Thresholds),
		Models:       len(d.Models),
		Events:       len(d.Events),
		Series:       len(d.Series),
		Simulations:  len(d.Simulations),
	}
	for _, site := range d.Sites {
		s.Stations += len(site.Stations)
	}
	for _, series := range d.Series {
		s.Observations += len(series.Observations)
	}
	for _, sim := range d.Simulations {
		s.Forecasts += sim.Forecasts.Len()
	}
	return s
}

// Key returns the bulletin identity used to key output messages.
func (d *Document) Key() string {
	return fmt.Sprintf("%s|%s", d.Scenario.Emitter.IntervenantCode, sandre.FormatTime(d.Scenario.CreatedAt))
}
