// Package forecast converts between the wire forecast groups of a
// simulation and the (date, variant) indexed domain series.
//
// On the wire each <Prev> carries one date, up to three tendency values and
// a list of probability values. Writing emits two independent passes: one
// <Prev> per date holding the tendencies, then one <Prev> per date holding
// the probabilities sorted ascending.
package forecast

import (
	"github.com/beevik/etree"

	"github.com/couchcryptid/sandre-etl/internal/domain"
	"github.com/couchcryptid/sandre-etl/internal/sandre/extract"
	"github.com/couchcryptid/sandre-etl/internal/sandre/story"
	"github.com/couchcryptid/sandre-etl/internal/sandre/tags"
)

var tendencyKeys = map[domain.Tendency]tags.Key{
	domain.TendencyMean: tags.ForecastMean,
	domain.TendencyMin:  tags.ForecastMin,
	domain.TendencyMax:  tags.ForecastMax,
}

// Pivot reads a sequence of <Prev> elements into a series. Points sharing a
// (date, variant) key are tolerated; the last one read wins.
func Pivot(prevs []*etree.Element, dict *tags.Dictionary) (*domain.ForecastSeries, error) {
	series := domain.NewForecastSeries()
	for _, prev := range prevs {
		date, err := extract.Time(prev, dict.Tag(tags.ForecastDate))
		if err != nil {
			return nil, err
		}
		if date.IsZero() {
			return nil, &domain.ValidationError{Entity: "forecast", Field: "date", Reason: "required"}
		}

		for _, t := range domain.Tendencies {
			v, ok, err := extract.Float(prev, dict.Tag(tendencyKeys[t]))
			if err != nil {
				return nil, err
			}
			if ok {
				series.Add(domain.ForecastPoint{Date: date, Variant: domain.Trend(t), Value: v})
			}
		}

		for _, pp := range extract.Path(prev, dict.Tag(tags.Probabilities), dict.Tag(tags.Probability)) {
			p, err := probabilityPoint(pp, dict)
			if err != nil {
				return nil, err
			}
			p.Date = date
			series.Add(p)
		}
	}
	return series, nil
}

func probabilityPoint(el *etree.Element, dict *tags.Dictionary) (domain.ForecastPoint, error) {
	percent, ok, err := extract.Int(el, dict.Tag(tags.ProbabilityPercent))
	if err != nil {
		return domain.ForecastPoint{}, err
	}
	if !ok {
		return domain.ForecastPoint{}, &domain.ValidationError{Entity: "forecast", Field: "probability", Reason: "required"}
	}
	v, ok, err := extract.Float(el, dict.Tag(tags.ProbabilityResult))
	if err != nil {
		return domain.ForecastPoint{}, err
	}
	if !ok {
		return domain.ForecastPoint{}, &domain.ValidationError{Entity: "forecast", Field: "probability_result", Reason: "required"}
	}
	return domain.ForecastPoint{Variant: domain.Prob(percent), Value: v}, nil
}

// Unpivot builds the <Prev> stories of a series: the tendency pass, dates
// ascending with values in moy, min, max order, then the probability pass,
// dates ascending with probabilities ascending.
func Unpivot(series *domain.ForecastSeries, dict *tags.Dictionary) ([]story.Story, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}
	tendencies, probabilities := series.Split()

	var out []story.Story
	for _, points := range byDate(tendencies) {
		s := story.Story{story.Time(dict.Tag(tags.ForecastDate), points[0].Date)}
		for _, p := range points {
			s = append(s, story.Float(dict.Tag(tendencyKeys[p.Variant.Tendency]), p.Value))
		}
		out = append(out, s)
	}
	for _, points := range byDate(probabilities) {
		probs := make([]story.Node, 0, len(points))
		for _, p := range points {
			probs = append(probs, story.Container(dict.Tag(tags.Probability),
				story.Int(dict.Tag(tags.ProbabilityPercent), p.Variant.Probability),
				story.Float(dict.Tag(tags.ProbabilityResult), p.Value),
			))
		}
		out = append(out, story.Story{
			story.Time(dict.Tag(tags.ForecastDate), points[0].Date),
			story.Container(dict.Tag(tags.Probabilities), probs...),
		})
	}
	return out, nil
}

// byDate groups points already ordered by date then variant.
func byDate(points []domain.ForecastPoint) [][]domain.ForecastPoint {
	var groups [][]domain.ForecastPoint
	for i, p := range points {
		if i == 0 || !p.Date.Equal(points[i-1].Date) {
			groups = append(groups, nil)
		}
		groups[len(groups)-1] = append(groups[len(groups)-1], p)
	}
	return groups
}
