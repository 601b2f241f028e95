package codec

import (
	"github.com/beevik/etree"

	"github.com/couchcryptid/sandre-etl/internal/domain"
	"github.com/couchcryptid/sandre-etl/internal/sandre/extract"
	"github.com/couchcryptid/sandre-etl/internal/sandre/story"
	"github.com/couchcryptid/sandre-etl/internal/sandre/tags"
)

// sites reads the site tree. Threshold groups found inside a site go to the
// threshold arena with the site code as default.
func (r *reader) sites(ref *etree.Element) ([]domain.Site, error) {
	var out []domain.Site
	for _, el := range extract.Path(ref, r.tag(tags.Sites), r.tag(tags.Site)) {
		site := domain.Site{
			Code:  extract.Text(el, r.tag(tags.SiteCode)),
			Label: extract.Text(el, r.tag(tags.SiteLabel)),
			Type:  extract.Text(el, r.tag(tags.SiteType)),
			Mnemo: extract.Text(el, r.tag(tags.SiteMnemo)),
		}
		for _, st := range extract.Path(el, r.tag(tags.Stations), r.tag(tags.Station)) {
			station := domain.Station{
				Code:  extract.Text(st, r.tag(tags.StationCode)),
				Label: extract.Text(st, r.tag(tags.StationLabel)),
				Type:  extract.Text(st, r.tag(tags.StationType)),
			}
			for _, c := range extract.Path(st, r.tag(tags.Sensors), r.tag(tags.Sensor)) {
				sensor := domain.Sensor{
					Code:      extract.Text(c, r.tag(tags.SensorCode)),
					Label:     extract.Text(c, r.tag(tags.SensorLabel)),
					Magnitude: extract.Text(c, r.tag(tags.SensorMeasure)),
				}
				if r.dict.Has(tags.SensorTrial) {
					sensor.Trial = extract.OptBool(c, r.tag(tags.SensorTrial))
				}
				station.Sensors = append(station.Sensors, sensor)
			}
			site.Stations = append(site.Stations, station)
		}
		for _, g := range extract.Path(el, r.tag(tags.ThresholdGroups), r.tag(tags.ThresholdGroup)) {
			if err := r.thresholdGroup(g, site.Code); err != nil {
				return nil, err
			}
		}
		out = append(out, site)
	}
	return out, nil
}

func (w *writer) sites(doc *domain.Document) (story.Node, error) {
	var bySite map[string][]domain.Threshold
	if w.dict.ThresholdsUnderSite() {
		var err error
		if bySite, err = w.nestedThresholds(doc); err != nil {
			return story.Node{}, err
		}
	}

	items := make(story.Story, 0, len(doc.Sites))
	for _, site := range doc.Sites {
		stations := make(story.Story, 0, len(site.Stations))
		for _, st := range site.Stations {
			sensors := make(story.Story, 0, len(st.Sensors))
			for _, c := range st.Sensors {
				s := story.Story{
					story.Text(w.tag(tags.SensorCode), c.Code),
					story.Text(w.tag(tags.SensorLabel), c.Label),
					story.Text(w.tag(tags.SensorMeasure), c.Magnitude),
				}
				if w.dict.Has(tags.SensorTrial) {
					s = append(s, story.OptBool(w.tag(tags.SensorTrial), c.Trial))
				}
				sensors = append(sensors, story.Container(w.tag(tags.Sensor), s...))
			}
			stations = append(stations, story.Container(w.tag(tags.Station),
				story.Text(w.tag(tags.StationCode), st.Code),
				story.Text(w.tag(tags.StationLabel), st.Label),
				story.Text(w.tag(tags.StationType), st.Type),
				story.Container(w.tag(tags.Sensors), sensors...),
			))
		}

		s := story.Story{
			story.Text(w.tag(tags.SiteCode), site.Code),
			story.Text(w.tag(tags.SiteLabel), site.Label),
			story.Text(w.tag(tags.SiteType), site.Type),
			story.Text(w.tag(tags.SiteMnemo), site.Mnemo),
			story.Container(w.tag(tags.Stations), stations...),
		}
		if groups := bySite[site.Code]; len(groups) > 0 {
			nodes, err := w.thresholdGroups(groups, false)
			if err != nil {
				return story.Node{}, err
			}
			s = append(s, story.Container(w.tag(tags.ThresholdGroups), nodes...))
		}
		items = append(items, story.Container(w.tag(tags.Site), s...))
	}
	return story.Container(w.tag(tags.Sites), items...), nil
}

// nestedThresholds groups thresholds by site for generations that nest them.
// A threshold on a site absent from the document cannot be written there.
func (w *writer) nestedThresholds(doc *domain.Document) (map[string][]domain.Threshold, error) {
	out := make(map[string][]domain.Threshold)
	for _, th := range doc.Thresholds {
		if _, ok := doc.Site(th.SiteCode); !ok {
			return nil, &domain.ValidationError{
				Entity: "threshold",
				ID:     th.Key().String(),
				Field:  "site_code",
				Reason: "site not present in the document",
			}
		}
		out[th.SiteCode] = append(out[th.SiteCode], th)
	}
	return out, nil
}
