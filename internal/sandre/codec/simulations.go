package codec

import (
	"github.com/beevik/etree"

	"github.com/couchcryptid/sandre-etl/internal/domain"
	"github.com/couchcryptid/sandre-etl/internal/sandre/extract"
	"github.com/couchcryptid/sandre-etl/internal/sandre/forecast"
	"github.com/couchcryptid/sandre-etl/internal/sandre/story"
	"github.com/couchcryptid/sandre-etl/internal/sandre/tags"
)

func (r *reader) simulations(data *etree.Element) ([]domain.Simulation, error) {
	var out []domain.Simulation
	for _, el := range extract.Path(data, r.tag(tags.Simulations), r.tag(tags.Simulation)) {
		ref, err := r.entity(el, "simulation")
		if err != nil {
			return nil, err
		}
		sim := domain.Simulation{
			Entity:          ref,
			ModelCode:       extract.Text(el, r.tag(tags.ModelCode)),
			IntervenantCode: extract.Text(el, r.tag(tags.IntervenantCode)),
			ContactCode:     extract.Text(el, r.tag(tags.ContactCode)),
			Magnitude:       extract.Text(el, r.tag(tags.SimulationMagnitude)),
			Public:          extract.OptBool(el, r.tag(tags.SimulationPublic)),
			Comment:         extract.Text(el, r.tag(tags.SimulationComment)),
		}
		if sim.ProducedAt, err = extract.Time(el, r.tag(tags.SimulationProduced)); err != nil {
			return nil, err
		}
		if sim.Quality, err = extract.OptInt(el, r.tag(tags.SimulationQuality)); err != nil {
			return nil, err
		}
		if sim.Status, err = extract.OptInt(el, r.tag(tags.SimulationStatus)); err != nil {
			return nil, err
		}
		prevs := extract.Path(el, r.tag(tags.Forecasts), r.tag(tags.Forecast))
		if sim.Forecasts, err = forecast.Pivot(prevs, r.dict); err != nil {
			return nil, err
		}
		out = append(out, sim)
	}
	return out, nil
}

func (w *writer) simulations(list []domain.Simulation) (story.Node, error) {
	items := make(story.Story, 0, len(list))
	for _, sim := range list {
		stories, err := forecast.Unpivot(sim.Forecasts, w.dict)
		if err != nil {
			return story.Node{}, err
		}
		prevs := make(story.Story, 0, len(stories))
		for _, s := range stories {
			prevs = append(prevs, story.Container(w.tag(tags.Forecast), s...))
		}

		items = append(items, story.Container(w.tag(tags.Simulation),
			w.entity(sim.Entity),
			story.Text(w.tag(tags.SimulationMagnitude), sim.Magnitude),
			story.Time(w.tag(tags.SimulationProduced), sim.ProducedAt),
			story.OptInt(w.tag(tags.SimulationQuality), sim.Quality),
			story.OptInt(w.tag(tags.SimulationStatus), sim.Status),
			story.OptBool(w.tag(tags.SimulationPublic), sim.Public),
			story.Text(w.tag(tags.SimulationComment), sim.Comment),
			story.Text(w.tag(tags.ModelCode), sim.ModelCode),
			story.Text(w.tag(tags.IntervenantCode), sim.IntervenantCode),
			story.Text(w.tag(tags.ContactCode), sim.ContactCode),
			story.Container(w.tag(tags.Forecasts), prevs...),
		))
	}
	return story.Container(w.tag(tags.Simulations), items...), nil
}
