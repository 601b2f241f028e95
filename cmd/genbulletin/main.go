// Command genbulletin writes a synthetic SANDRE Hydrometrie bulletin for load
// tests and fixtures. The output is reproducible for a given seed: every
// timestamp derives from a fixed creation date and the codec runs on a fixed
// clock.
//
// Each generated site carries two stations, a threshold with several
// site-level values (split into several groups when written as 1.1), an
// event, an observation series per station and a simulation with tendency
// and probabilistic forecasts.
//
// Usage:
//
//	go run ./cmd/genbulletin -out data/sample/load_v2.xml -version 2 -sites 50 -seed 7
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"os"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/sandre-etl/internal/domain"
	"github.com/couchcryptid/sandre-etl/internal/sandre"
	"github.com/couchcryptid/sandre-etl/internal/sandre/codec"
)

var createdAt = time.Date(2024, time.May, 1, 6, 0, 0, 0, time.UTC)

const (
	emitterCode = "1537"
	modelCode   = "PHEBUS_24"
	forecastLen = 6
)

var probabilities = []int{10, 50, 90}

type options struct {
	sites int
	seed  uint64
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "-", "output file (- for stdout)")
	version := flag.String("version", "2", "schema version (1.1 or 2)")
	sites := flag.Int("sites", 10, "number of sites")
	seed := flag.Uint64("seed", 1, "random seed")
	flag.Parse()

	if *sites <= 0 {
		flag.Usage()
		return fmt.Errorf("-sites must be positive")
	}
	v, err := sandre.ParseVersion(*version)
	if err != nil {
		return err
	}

	doc := generate(options{sites: *sites, seed: *seed})
	data, err := codec.New(codec.WithClock(clockwork.NewFakeClockAt(createdAt))).Encode(doc, v)
	if err != nil {
		return fmt.Errorf("encode bulletin: %w", err)
	}

	if *out == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		return fmt.Errorf("write bulletin: %w", err)
	}
	s := doc.Summarize()
	log.Printf("wrote %s: version %s, %d sites, %d thresholds, %d simulations, %d forecasts",
		*out, v, s.Sites, s.Thresholds, s.Simulations, s.Forecasts)
	return nil
}

// generate builds a valid document. Values are rounded to one decimal.
func generate(opts options) *domain.Document {
	rng := rand.New(rand.NewPCG(opts.seed, opts.seed^0x5a5d7e))
	round := func(f float64) float64 { return math.Round(f*10) / 10 }
	ptr := func(n int) *int { return &n }

	doc := &domain.Document{
		Scenario: domain.Scenario{
			Code:      domain.ScenarioCode,
			Name:      "Echange de données hydrométriques",
			CreatedAt: createdAt,
			Emitter:   domain.Party{IntervenantCode: emitterCode, IntervenantScheme: domain.SchemeSANDRE, ContactCode: "1"},
		},
		Intervenants: []domain.Intervenant{{
			Code:     emitterCode,
			Scheme:   domain.SchemeSANDRE,
			Name:     "SCHAPI",
			Contacts: []domain.Contact{{Code: "1", Name: "Prevision"}},
		}},
		Models: []domain.ForecastModel{{Code: modelCode, Label: "Modèle pluie-débit", Type: ptr(1)}},
	}

	for i := range opts.sites {
		site := fmt.Sprintf("X%07d", i+1)
		stations := []string{site + "01", site + "02"}
		base := 50 + rng.Float64()*500

		s := domain.Site{Code: site, Label: fmt.Sprintf("Site %d", i+1), Type: "STANDARD"}
		for j, st := range stations {
			s.Stations = append(s.Stations, domain.Station{
				Code:    st,
				Label:   fmt.Sprintf("Station %d.%d", i+1, j+1),
				Type:    "LIMNI",
				Sensors: []domain.Sensor{{Code: st + "01", Label: "Capteur", Magnitude: domain.MagnitudeHeight}},
			})
		}
		doc.Sites = append(doc.Sites, s)

		th := domain.Threshold{
			SiteCode: site, Code: "1", Type: ptr(1), Nature: ptr(32),
			Label: "Vigilance", Severity: ptr(40), Publication: ptr(10),
		}
		key := th.Key()
		for k := range 1 + rng.IntN(3) {
			th.Values = append(th.Values, domain.ThresholdValue{
				Threshold:   key,
				Entity:      domain.SiteRef(site),
				Value:       round(base * (1 + float64(k)*0.1)),
				ActivatedAt: createdAt.AddDate(-k, 0, 0),
			})
		}
		for _, st := range stations {
			th.Values = append(th.Values, domain.ThresholdValue{
				Threshold: key,
				Entity:    domain.StationRef(st),
				Value:     round(base * 0.8),
			})
		}
		doc.Thresholds = append(doc.Thresholds, th)

		ev := domain.Event{
			Entity:      domain.SiteRef(site),
			ContactCode: "1",
			Date:        createdAt.Add(-time.Duration(rng.IntN(48)) * time.Hour),
			Description: "Relevé de crue",
			Publication: ptr(10),
		}
		if i%3 == 2 {
			ev.Publication = ptr(domain.PublicationRestricted)
			ev.UpdatedAt = createdAt.Add(-time.Hour)
			ev.EndedAt = ev.UpdatedAt
		}
		doc.Events = append(doc.Events, ev)

		for _, st := range stations {
			series := domain.Series{
				Entity:     domain.StationRef(st),
				Magnitude:  domain.MagnitudeHeight,
				Start:      createdAt.Add(-3 * time.Hour),
				End:        createdAt,
				ProducedAt: createdAt,
			}
			level := base
			for h := range 4 {
				level = round(level + rng.NormFloat64()*5)
				series.Observations = append(series.Observations, domain.Observation{
					Date:    series.Start.Add(time.Duration(h) * time.Hour),
					Value:   level,
					Quality: ptr(16),
				})
			}
			doc.Series = append(doc.Series, series)
		}

		forecasts := domain.NewForecastSeries()
		level := base
		for h := 1; h <= forecastLen; h++ {
			date := createdAt.Add(time.Duration(h) * time.Hour)
			level = round(level + rng.NormFloat64()*10)
			spread := round(5 + float64(h)*2)
			forecasts.Add(domain.ForecastPoint{Date: date, Variant: domain.Trend(domain.TendencyMean), Value: level})
			forecasts.Add(domain.ForecastPoint{Date: date, Variant: domain.Trend(domain.TendencyMin), Value: round(level - spread)})
			forecasts.Add(domain.ForecastPoint{Date: date, Variant: domain.Trend(domain.TendencyMax), Value: round(level + spread)})
			for _, p := range probabilities {
				forecasts.Add(domain.ForecastPoint{Date: date, Variant: domain.Prob(p), Value: round(level + spread*float64(p-50)/50)})
			}
		}
		doc.Simulations = append(doc.Simulations, domain.Simulation{
			Entity:          domain.SiteRef(site),
			ModelCode:       modelCode,
			IntervenantCode: emitterCode,
			ContactCode:     "1",
			Magnitude:       domain.MagnitudeHeight,
			ProducedAt:      createdAt,
			Quality:         ptr(50 + rng.IntN(51)),
			Status:          ptr(4),
			Forecasts:       forecasts,
		})
	}
	return doc
}
