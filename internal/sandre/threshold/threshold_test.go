package threshold

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/sandre-etl/internal/domain"
	"github.com/couchcryptid/sandre-etl/internal/sandre"
)

const site = "A1234567"

func group(label string, values ...domain.ThresholdValue) domain.Threshold {
	return domain.Threshold{SiteCode: site, Code: "33", Label: label, Values: values}
}

func station(code string, v float64) domain.ThresholdValue {
	return domain.ThresholdValue{Entity: domain.StationRef(code), Value: v}
}

func siteValue(v float64) domain.ThresholdValue {
	return domain.ThresholdValue{Entity: domain.SiteRef(site), Value: v}
}

func TestMerge_TwoStationGroups(t *testing.T) {
	got, err := Merge([]domain.Threshold{
		group("vigilance", station("S1", 100)),
		group("vigilance", station("S2", 200)),
	})
	require.NoError(t, err)
	require.Len(t, got, 1)

	th := got[0]
	assert.Equal(t, "vigilance", th.Label)
	require.Len(t, th.Values, 2)
	assert.Equal(t, "S1", th.Values[0].Entity.Code)
	assert.Equal(t, 100.0, th.Values[0].Value)
	assert.Equal(t, "S2", th.Values[1].Entity.Code)
	assert.Equal(t, 200.0, th.Values[1].Value)
	for _, v := range th.Values {
		assert.Equal(t, th.Key(), v.Threshold)
	}
}

func TestMerge_InconsistentLabel(t *testing.T) {
	_, err := Merge([]domain.Threshold{
		group("vigilance", station("S1", 100)),
		group("alerte", station("S2", 200)),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, sandre.ErrInconsistentThreshold)

	var ie *sandre.InconsistentThresholdError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, site, ie.SiteCode)
	assert.Equal(t, "33", ie.Code)
	assert.Equal(t, "label", ie.Field)
}

func TestMerge_DetectsEveryMetadataField(t *testing.T) {
	one, two := 1, 2
	yes := true
	half := 0.5
	mutations := map[string]func(th *domain.Threshold){
		"type":        func(th *domain.Threshold) { th.Type = &two },
		"nature":      func(th *domain.Threshold) { th.Nature = &one },
		"duration":    func(th *domain.Threshold) { th.Duration = &half },
		"mnemo":       func(th *domain.Threshold) { th.Mnemo = "x" },
		"severity":    func(th *domain.Threshold) { th.Severity = &two },
		"forced":      func(th *domain.Threshold) { th.Forced = &yes },
		"publication": func(th *domain.Threshold) { th.Publication = &one },
		"comment":     func(th *domain.Threshold) { th.Comment = "x" },
	}
	for field, mutate := range mutations {
		t.Run(field, func(t *testing.T) {
			base := group("vigilance", station("S1", 100))
			base.Type = &one
			other := base
			other.Values = []domain.ThresholdValue{station("S2", 200)}
			mutate(&other)

			_, err := Merge([]domain.Threshold{base, other})
			var ie *sandre.InconsistentThresholdError
			require.ErrorAs(t, err, &ie)
			assert.Equal(t, field, ie.Field)
		})
	}
}

func TestMerge_OrderIndependent(t *testing.T) {
	a := group("l", station("S1", 1))
	b := group("l", station("S2", 2), siteValue(5))
	c := group("l", station("S3", 3))

	sortValues := cmpopts.SortSlices(func(x, y domain.ThresholdValue) bool { return x.Entity.Code < y.Entity.Code })
	var first []domain.Threshold
	for _, order := range [][]domain.Threshold{{a, b, c}, {c, b, a}, {b, a, c}, {c, a, b}} {
		got, err := Merge(order)
		require.NoError(t, err)
		require.Len(t, got, 1)
		if first == nil {
			first = got
			continue
		}
		assert.Empty(t, cmp.Diff(first, got, sortValues))
	}
}

func TestMerge_FirstSeenOrder(t *testing.T) {
	other := domain.Threshold{SiteCode: "B1234567", Code: "1"}
	got, err := Merge([]domain.Threshold{
		group("l", station("S1", 1)),
		other,
		group("l", station("S2", 2)),
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "33", got[0].Code)
	assert.Equal(t, "B1234567", got[1].SiteCode)
	assert.Empty(t, got[1].Values)
}

func TestSet_ReturnsCopies(t *testing.T) {
	set := NewSet()
	require.NoError(t, set.Add(group("l", station("S1", 1))))

	th, ok := set.Get(domain.ThresholdKey{SiteCode: site, Code: "33"})
	require.True(t, ok)
	th.Values[0].Value = 99

	again, _ := set.Get(th.Key())
	assert.Equal(t, 1.0, again.Values[0].Value)
	assert.Equal(t, 1, set.Len())

	_, ok = set.Get(domain.ThresholdKey{SiteCode: site, Code: "34"})
	assert.False(t, ok)
}

func TestSplit(t *testing.T) {
	th := group("l", siteValue(1), station("S1", 10), siteValue(2), station("S2", 20), siteValue(3))

	got, err := Split(th, 1)
	require.NoError(t, err)
	require.Len(t, got, 3)

	assert.Len(t, got[0].SiteValues(), 1)
	assert.Equal(t, 1.0, got[0].SiteValues()[0].Value)
	assert.Len(t, got[0].StationValues(), 2, "station values stay together")
	assert.Equal(t, []domain.ThresholdValue{{Threshold: th.Key(), Entity: domain.SiteRef(site), Value: 2}}, got[1].Values)
	assert.Equal(t, 3.0, got[2].Values[0].Value)
	for _, g := range got {
		assert.Equal(t, th.Key(), g.Key())
		assert.Empty(t, th.MetadataDiff(g))
	}

	merged, err := Merge(got)
	require.NoError(t, err)
	require.Len(t, merged, 1)
	assert.Len(t, merged[0].Values, 5)
}

func TestSplit_NoOp(t *testing.T) {
	th := group("l", siteValue(1), siteValue(2))
	got, err := Split(th, 0)
	require.NoError(t, err)
	assert.Equal(t, []domain.Threshold{th}, got)

	one := group("l", siteValue(1), station("S1", 1), station("S2", 2))
	got, err = Split(one, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Len(t, got[0].Values, 3)
}

func TestThresholds_SiteValuesFirst(t *testing.T) {
	got, err := Merge([]domain.Threshold{
		group("l", siteValue(1), station("S1", 10)),
		group("l", siteValue(2), station("S2", 20)),
	})
	require.NoError(t, err)
	require.Len(t, got, 1)

	var values []float64
	for _, v := range got[0].Values {
		values = append(values, v.Value)
	}
	assert.Equal(t, []float64{1, 2, 10, 20}, values)

	split, err := Split(got[0], 1)
	require.NoError(t, err)
	again, err := Merge(split)
	require.NoError(t, err)
	assert.Equal(t, got, again)
}
