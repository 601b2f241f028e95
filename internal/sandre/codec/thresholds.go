package codec

import (
	"github.com/beevik/etree"

	"github.com/couchcryptid/sandre-etl/internal/domain"
	"github.com/couchcryptid/sandre-etl/internal/sandre/extract"
	"github.com/couchcryptid/sandre-etl/internal/sandre/story"
	"github.com/couchcryptid/sandre-etl/internal/sandre/tags"
	"github.com/couchcryptid/sandre-etl/internal/sandre/threshold"
)

// thresholdGroup reads one wire group and merges it into the arena. siteCode
// applies when the group does not name its site.
func (r *reader) thresholdGroup(el *etree.Element, siteCode string) error {
	th := domain.Threshold{
		SiteCode: siteCode,
		Code:     extract.Text(el, r.tag(tags.ThresholdCode)),
		Label:    extract.Text(el, r.tag(tags.ThresholdLabel)),
		Mnemo:    extract.Text(el, r.tag(tags.ThresholdMnemo)),
		Forced:   extract.OptBool(el, r.tag(tags.ThresholdForced)),
		Comment:  extract.Text(el, r.tag(tags.ThresholdComment)),
	}
	if !r.dict.ThresholdsUnderSite() {
		if code := extract.Text(el, r.tag(tags.SiteCode)); code != "" {
			th.SiteCode = code
		}
	}

	var err error
	if th.Type, err = extract.OptInt(el, r.tag(tags.ThresholdType)); err != nil {
		return err
	}
	if th.Nature, err = extract.OptInt(el, r.tag(tags.ThresholdNature)); err != nil {
		return err
	}
	if th.Duration, err = extract.OptFloat(el, r.tag(tags.ThresholdDuration)); err != nil {
		return err
	}
	if th.Severity, err = extract.OptInt(el, r.tag(tags.ThresholdSeverity)); err != nil {
		return err
	}
	if th.Publication, err = extract.OptInt(el, r.tag(tags.ThresholdPublication)); err != nil {
		return err
	}
	if th.UpdatedAt, err = extract.Time(el, r.tag(tags.ThresholdUpdated)); err != nil {
		return err
	}

	// 1.1 groups carry their single site value inline.
	siteValues := []*etree.Element{el}
	if r.dict.Has(tags.SiteThresholdValues) {
		siteValues = extract.Path(el, r.tag(tags.SiteThresholdValues), r.tag(tags.SiteThresholdValue))
	}
	for _, sv := range siteValues {
		v, ok, err := r.thresholdValue(sv, domain.SiteRef(th.SiteCode), tags.SiteThresholdFlow,
			tags.SiteThresholdActivated, tags.SiteThresholdDeactivated, tags.SiteThresholdTolerance)
		if err != nil {
			return err
		}
		if ok {
			th.Values = append(th.Values, v)
		} else if sv != el {
			return &domain.ValidationError{Entity: "threshold", ID: th.Key().String(), Field: "site_value", Reason: "value required"}
		}
	}

	for _, sv := range extract.Path(el, r.tag(tags.StationThresholdValues), r.tag(tags.StationThresholdValue)) {
		ref := domain.StationRef(extract.Text(sv, r.tag(tags.StationCode)))
		v, ok, err := r.thresholdValue(sv, ref, tags.StationThresholdHeight,
			tags.StationThresholdActivated, tags.StationThresholdDeactivated, tags.StationThresholdTolerance)
		if err != nil {
			return err
		}
		if !ok {
			return &domain.ValidationError{Entity: "threshold", ID: th.Key().String(), Field: "station_value", Reason: "value required"}
		}
		th.Values = append(th.Values, v)
	}

	return r.thresholds.Add(th)
}

func (r *reader) thresholdValue(el *etree.Element, ref domain.EntityRef, value, activated, deactivated, tolerance tags.Key) (domain.ThresholdValue, bool, error) {
	f, ok, err := extract.Float(el, r.tag(value))
	if err != nil || !ok {
		return domain.ThresholdValue{}, false, err
	}
	v := domain.ThresholdValue{Entity: ref, Value: f}
	if v.ActivatedAt, err = extract.Time(el, r.tag(activated)); err != nil {
		return domain.ThresholdValue{}, false, err
	}
	if v.DeactivatedAt, err = extract.Time(el, r.tag(deactivated)); err != nil {
		return domain.ThresholdValue{}, false, err
	}
	if v.Tolerance, err = extract.OptFloat(el, r.tag(tolerance)); err != nil {
		return domain.ThresholdValue{}, false, err
	}
	return v, true, nil
}

// thresholdGroups splits each threshold as the generation requires and
// returns one story node per wire group. standalone groups name their site.
func (w *writer) thresholdGroups(list []domain.Threshold, standalone bool) ([]story.Node, error) {
	var out []story.Node
	for _, th := range list {
		groups, err := threshold.Split(th, w.dict.MaxSiteThresholdValues())
		if err != nil {
			return nil, err
		}
		for _, g := range groups {
			out = append(out, w.thresholdGroup(g, standalone))
		}
	}
	return out, nil
}

func (w *writer) thresholdGroup(th domain.Threshold, standalone bool) story.Node {
	s := story.Story{story.Text(w.tag(tags.ThresholdCode), th.Code)}
	if standalone {
		s = append(s, story.Text(w.tag(tags.SiteCode), th.SiteCode))
	}
	s = append(s,
		story.OptInt(w.tag(tags.ThresholdType), th.Type),
		story.OptInt(w.tag(tags.ThresholdNature), th.Nature),
		story.OptFloat(w.tag(tags.ThresholdDuration), th.Duration),
		story.Text(w.tag(tags.ThresholdLabel), th.Label),
		story.Text(w.tag(tags.ThresholdMnemo), th.Mnemo),
	)

	var inline story.Story
	siteValues := make(story.Story, 0, len(th.Values))
	for _, v := range th.SiteValues() {
		fields := w.thresholdValue(v, tags.SiteThresholdFlow, tags.SiteThresholdActivated, tags.SiteThresholdDeactivated)
		tolerance := story.OptFloat(w.tag(tags.SiteThresholdTolerance), v.Tolerance)
		if !w.dict.Has(tags.SiteThresholdValues) {
			// At most one after Split.
			s = append(s, fields...)
			inline = story.Story{tolerance}
			continue
		}
		siteValues = append(siteValues, story.Container(w.tag(tags.SiteThresholdValue), append(fields, tolerance)...))
	}

	s = append(s,
		story.OptInt(w.tag(tags.ThresholdSeverity), th.Severity),
		story.OptBool(w.tag(tags.ThresholdForced), th.Forced),
		story.OptInt(w.tag(tags.ThresholdPublication), th.Publication),
	)
	s = append(s, inline...)
	s = append(s,
		story.Text(w.tag(tags.ThresholdComment), th.Comment),
		story.Time(w.tag(tags.ThresholdUpdated), th.UpdatedAt),
	)
	if w.dict.Has(tags.SiteThresholdValues) {
		s = append(s, story.Container(w.tag(tags.SiteThresholdValues), siteValues...))
	}

	stationValues := make(story.Story, 0, len(th.Values))
	for _, v := range th.StationValues() {
		fields := story.Story{story.Text(w.tag(tags.StationCode), v.Entity.Code)}
		fields = append(fields, w.thresholdValue(v, tags.StationThresholdHeight, tags.StationThresholdActivated, tags.StationThresholdDeactivated)...)
		fields = append(fields, story.OptFloat(w.tag(tags.StationThresholdTolerance), v.Tolerance))
		stationValues = append(stationValues, story.Container(w.tag(tags.StationThresholdValue), fields...))
	}
	s = append(s, story.Container(w.tag(tags.StationThresholdValues), stationValues...))

	return story.Container(w.tag(tags.ThresholdGroup), s...)
}

func (w *writer) thresholdValue(v domain.ThresholdValue, value, activated, deactivated tags.Key) story.Story {
	return story.Story{
		story.Float(w.tag(value), v.Value),
		story.Time(w.tag(activated), v.ActivatedAt),
		story.Time(w.tag(deactivated), v.DeactivatedAt),
	}
}
