// Package threshold reconciles the cardinality of thresholds between the
// wire and the domain.
//
// On the wire a threshold may be spread over several groups that repeat its
// metadata and each carry some of its values. [Set] merges those groups into
// one aggregate per (site code, threshold code). On write, 1.1 bulletins
// allow a single site-level value per group, so [Split] spreads extra
// site-level values over additional groups.
package threshold

import (
	"slices"

	"github.com/couchcryptid/sandre-etl/internal/domain"
	"github.com/couchcryptid/sandre-etl/internal/sandre"
)

// Set is the merge arena for one decode call. Aggregates are stored by key
// and every value names its aggregate through ThresholdValue.Threshold.
type Set struct {
	order []domain.ThresholdKey
	byKey map[domain.ThresholdKey]*domain.Threshold
}

// NewSet returns an empty arena.
func NewSet() *Set {
	return &Set{byKey: make(map[domain.ThresholdKey]*domain.Threshold)}
}

// Add merges one wire group. A group whose key is already known must repeat
// the stored metadata exactly; its values are then appended to the stored
// aggregate.
func (s *Set) Add(group domain.Threshold) error {
	key := group.Key()
	agg, ok := s.byKey[key]
	if !ok {
		agg = new(domain.Threshold)
		*agg = group.WithoutValues()
		s.byKey[key] = agg
		s.order = append(s.order, key)
	} else if field := agg.MetadataDiff(group); field != "" {
		return &sandre.InconsistentThresholdError{SiteCode: key.SiteCode, Code: key.Code, Field: field}
	}
	for _, v := range group.Values {
		v.Threshold = key
		agg.Values = append(agg.Values, v)
	}
	return nil
}

// Get returns a copy of the aggregate stored under key. Copies list site
// values before station values, each in read order.
func (s *Set) Get(key domain.ThresholdKey) (domain.Threshold, bool) {
	agg, ok := s.byKey[key]
	if !ok {
		return domain.Threshold{}, false
	}
	return clone(*agg), true
}

// Len returns the number of distinct aggregates.
func (s *Set) Len() int { return len(s.order) }

// Thresholds returns copies of the aggregates in first-seen order, with the
// value order of Get.
func (s *Set) Thresholds() []domain.Threshold {
	if len(s.order) == 0 {
		return nil
	}
	out := make([]domain.Threshold, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, clone(*s.byKey[key]))
	}
	return out
}

// Merge folds groups into deduplicated aggregates, in first-seen order.
func Merge(groups []domain.Threshold) ([]domain.Threshold, error) {
	set := NewSet()
	for _, g := range groups {
		if err := set.Add(g); err != nil {
			return nil, err
		}
	}
	return set.Thresholds(), nil
}

// Split spreads the site-level values of th so that no group carries more
// than maxSiteValues of them. The first group keeps the first site-level
// value and every station-level value; each extra site-level value moves to
// a new group sharing the key and the metadata. maxSiteValues 0 means no
// limit and returns th unchanged.
func Split(th domain.Threshold, maxSiteValues int) ([]domain.Threshold, error) {
	if maxSiteValues <= 0 {
		return []domain.Threshold{th}, nil
	}

	key := th.Key()
	head := th.WithoutValues()
	var extra []domain.Threshold
	siteValues := 0
	for _, v := range th.Values {
		v.Threshold = key
		if v.Entity.Kind != domain.EntitySite || siteValues < maxSiteValues {
			if v.Entity.Kind == domain.EntitySite {
				siteValues++
			}
			head.Values = append(head.Values, v)
			continue
		}
		g := th.WithoutValues()
		g.Values = []domain.ThresholdValue{v}
		extra = append(extra, g)
	}

	out := append([]domain.Threshold{head}, extra...)
	for _, g := range out {
		if n := len(g.SiteValues()); n > maxSiteValues {
			return nil, &sandre.UnsplittableThresholdError{SiteCode: key.SiteCode, Code: key.Code, SiteValues: n, Limit: maxSiteValues}
		}
	}
	return out, nil
}

func clone(th domain.Threshold) domain.Threshold {
	th.Values = slices.Clone(th.Values)
	slices.SortStableFunc(th.Values, func(a, b domain.ThresholdValue) int {
		return int(a.Entity.Kind) - int(b.Entity.Kind)
	})
	return th
}
