package codec

import (
	"github.com/beevik/etree"

	"github.com/couchcryptid/sandre-etl/internal/domain"
	"github.com/couchcryptid/sandre-etl/internal/sandre"
	"github.com/couchcryptid/sandre-etl/internal/sandre/extract"
	"github.com/couchcryptid/sandre-etl/internal/sandre/story"
	"github.com/couchcryptid/sandre-etl/internal/sandre/tags"
)

func (r *reader) models(ref *etree.Element) ([]domain.ForecastModel, error) {
	var out []domain.ForecastModel
	for _, el := range extract.Path(ref, r.tag(tags.Models), r.tag(tags.Model)) {
		typ, err := extract.OptInt(el, r.tag(tags.ModelType))
		if err != nil {
			return nil, err
		}
		out = append(out, domain.ForecastModel{
			Code:        extract.Text(el, r.tag(tags.ModelCode)),
			Label:       extract.Text(el, r.tag(tags.ModelLabel)),
			Type:        typ,
			Description: extract.Text(el, r.tag(tags.ModelDescription)),
		})
	}
	return out, nil
}

func (w *writer) models(list []domain.ForecastModel) story.Node {
	items := make(story.Story, 0, len(list))
	for _, m := range list {
		items = append(items, story.Container(w.tag(tags.Model),
			story.Text(w.tag(tags.ModelCode), m.Code),
			story.Text(w.tag(tags.ModelLabel), m.Label),
			story.OptInt(w.tag(tags.ModelType), m.Type),
			story.Text(w.tag(tags.ModelDescription), m.Description),
		))
	}
	return story.Container(w.tag(tags.Models), items...)
}

// events reads the event list. A 1.1 event published as archived becomes a
// restricted event ended at its update date, or at the decode time when it
// has none.
func (r *reader) events(data *etree.Element) ([]domain.Event, error) {
	var out []domain.Event
	for _, el := range extract.Path(data, r.tag(tags.Events), r.tag(tags.Event)) {
		ref, err := r.entity(el, "event")
		if err != nil {
			return nil, err
		}
		ev := domain.Event{
			Entity:      ref,
			ContactCode: extract.Text(el, r.tag(tags.ContactCode)),
			Description: extract.Text(el, r.tag(tags.EventDescription)),
		}
		if ev.Date, err = extract.Time(el, r.tag(tags.EventDate)); err != nil {
			return nil, err
		}
		if ev.Publication, err = extract.OptInt(el, r.tag(tags.EventPublication)); err != nil {
			return nil, err
		}
		if ev.UpdatedAt, err = extract.Time(el, r.tag(tags.EventUpdated)); err != nil {
			return nil, err
		}
		if r.dict.Has(tags.EventEnd) {
			if ev.EndedAt, err = extract.Time(el, r.tag(tags.EventEnd)); err != nil {
				return nil, err
			}
		} else if ev.Publication != nil && *ev.Publication == domain.PublicationArchived {
			restricted := domain.PublicationRestricted
			ev.Publication = &restricted
			ev.EndedAt = ev.UpdatedAt
			if ev.EndedAt.IsZero() {
				ev.EndedAt = r.now()
			}
		}
		out = append(out, ev)
	}
	return out, nil
}

func (w *writer) events(list []domain.Event) story.Node {
	items := make(story.Story, 0, len(list))
	for _, ev := range list {
		publication := ev.Publication
		if !w.dict.Has(tags.EventEnd) && !ev.EndedAt.IsZero() {
			archived := domain.PublicationArchived
			publication = &archived
		}
		s := story.Story{
			w.entity(ev.Entity),
			story.Text(w.tag(tags.ContactCode), ev.ContactCode),
			story.Time(w.tag(tags.EventDate), ev.Date),
			story.Text(w.tag(tags.EventDescription), ev.Description),
			story.OptInt(w.tag(tags.EventPublication), publication),
			story.Time(w.tag(tags.EventUpdated), ev.UpdatedAt),
		}
		if w.dict.Has(tags.EventEnd) {
			s = append(s, story.Time(w.tag(tags.EventEnd), ev.EndedAt))
		}
		items = append(items, story.Container(w.tag(tags.Event), s...))
	}
	return story.Container(w.tag(tags.Events), items...)
}

func (r *reader) series(data *etree.Element) ([]domain.Series, error) {
	var out []domain.Series
	for _, el := range extract.Path(data, r.tag(tags.SeriesList), r.tag(tags.Series)) {
		ref, err := r.entity(el, "series")
		if err != nil {
			return nil, err
		}
		s := domain.Series{
			Entity:    ref,
			Magnitude: extract.Text(el, r.tag(tags.SeriesMagnitude)),
		}
		if s.Start, err = extract.Time(el, r.tag(tags.SeriesStart)); err != nil {
			return nil, err
		}
		if s.End, err = extract.Time(el, r.tag(tags.SeriesEnd)); err != nil {
			return nil, err
		}
		if r.dict.Has(tags.SeriesProduced) {
			if s.ProducedAt, err = extract.Time(el, r.tag(tags.SeriesProduced)); err != nil {
				return nil, err
			}
		}
		if s.Status, err = extract.OptInt(el, r.tag(tags.SeriesStatus)); err != nil {
			return nil, err
		}
		for _, o := range extract.Path(el, r.tag(tags.Observations), r.tag(tags.Observation)) {
			obs, err := r.observation(o)
			if err != nil {
				return nil, err
			}
			s.Observations = append(s.Observations, obs)
		}
		out = append(out, s)
	}
	return out, nil
}

func (r *reader) observation(el *etree.Element) (domain.Observation, error) {
	var (
		obs domain.Observation
		err error
	)
	if obs.Date, err = extract.Time(el, r.tag(tags.ObservationDate)); err != nil {
		return obs, err
	}
	v, ok, err := extract.Float(el, r.tag(tags.ObservationValue))
	if err != nil {
		return obs, err
	}
	if !ok {
		return obs, &domain.ValidationError{Entity: "observation", ID: sandre.FormatTime(obs.Date), Field: "value", Reason: "required"}
	}
	obs.Value = v
	if obs.Method, err = extract.OptInt(el, r.tag(tags.ObservationMethod)); err != nil {
		return obs, err
	}
	if obs.Quality, err = extract.OptInt(el, r.tag(tags.ObservationQuality)); err != nil {
		return obs, err
	}
	obs.Continuity = extract.OptBool(el, r.tag(tags.ObservationContinuity))
	return obs, nil
}

func (w *writer) series(list []domain.Series) story.Node {
	items := make(story.Story, 0, len(list))
	for _, s := range list {
		observations := make(story.Story, 0, len(s.Observations))
		for _, o := range s.Observations {
			observations = append(observations, story.Container(w.tag(tags.Observation),
				story.Time(w.tag(tags.ObservationDate), o.Date),
				story.Float(w.tag(tags.ObservationValue), o.Value),
				story.OptInt(w.tag(tags.ObservationMethod), o.Method),
				story.OptInt(w.tag(tags.ObservationQuality), o.Quality),
				story.OptBool(w.tag(tags.ObservationContinuity), o.Continuity),
			))
		}
		node := story.Story{
			w.entity(s.Entity),
			story.Text(w.tag(tags.SeriesMagnitude), s.Magnitude),
			story.Time(w.tag(tags.SeriesStart), s.Start),
			story.Time(w.tag(tags.SeriesEnd), s.End),
		}
		if w.dict.Has(tags.SeriesProduced) {
			node = append(node, story.Time(w.tag(tags.SeriesProduced), s.ProducedAt))
		}
		node = append(node,
			story.OptInt(w.tag(tags.SeriesStatus), s.Status),
			story.Container(w.tag(tags.Observations), observations...),
		)
		items = append(items, story.Container(w.tag(tags.Series), node...))
	}
	return story.Container(w.tag(tags.SeriesList), items...)
}
