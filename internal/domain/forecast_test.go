package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	day1 = time.Date(2010, 2, 26, 15, 0, 0, 0, time.UTC)
	day2 = time.Date(2010, 2, 26, 18, 0, 0, 0, time.UTC)
)

func TestVariant_Compare(t *testing.T) {
	ordered := []Variant{Trend(TendencyMean), Trend(TendencyMin), Trend(TendencyMax), Prob(0), Prob(20), Prob(50), Prob(100)}
	for i := range ordered {
		for j := range ordered {
			got := ordered[i].Compare(ordered[j])
			switch {
			case i < j:
				assert.Negative(t, got, "%s < %s", ordered[i], ordered[j])
			case i > j:
				assert.Positive(t, got, "%s > %s", ordered[i], ordered[j])
			default:
				assert.Zero(t, got)
			}
		}
	}
}

func TestVariant_String(t *testing.T) {
	assert.Equal(t, "moy", Trend(TendencyMean).String())
	assert.Equal(t, "max", Trend(TendencyMax).String())
	assert.Equal(t, "p50", Prob(50).String())
	assert.Equal(t, "unknown", Variant{}.String())
}

func TestForecastSeries_LastWriteWins(t *testing.T) {
	s := NewForecastSeries(
		ForecastPoint{Date: day1, Variant: Trend(TendencyMean), Value: 23},
		ForecastPoint{Date: day1, Variant: Trend(TendencyMean), Value: 24},
	)

	assert.Equal(t, 1, s.Len())
	v, ok := s.Get(day1, Trend(TendencyMean))
	require.True(t, ok)
	assert.Equal(t, 24.0, v)

	_, ok = s.Get(day1, Trend(TendencyMax))
	assert.False(t, ok)
}

func TestForecastSeries_GetIgnoresZone(t *testing.T) {
	paris := time.FixedZone("CET", 3600)
	s := NewForecastSeries(ForecastPoint{Date: day1.In(paris), Variant: Prob(50), Value: 3})

	v, ok := s.Get(day1, Prob(50))
	require.True(t, ok)
	assert.Equal(t, 3.0, v)
	assert.Equal(t, time.UTC, s.Points()[0].Date.Location())
}

func TestForecastSeries_DatesOutsideNanosecondRange(t *testing.T) {
	early := time.Date(1500, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2500, 1, 1, 0, 0, 0, 0, time.UTC)
	s := NewForecastSeries(
		ForecastPoint{Date: early, Variant: Trend(TendencyMean), Value: 1},
		ForecastPoint{Date: late, Variant: Trend(TendencyMean), Value: 2},
	)

	require.Equal(t, 2, s.Len())
	v, ok := s.Get(early, Trend(TendencyMean))
	require.True(t, ok)
	assert.Equal(t, 1.0, v)
	v, ok = s.Get(late, Trend(TendencyMean))
	require.True(t, ok)
	assert.Equal(t, 2.0, v)
}

func TestForecastSeries_PointsOrder(t *testing.T) {
	s := NewForecastSeries(
		ForecastPoint{Date: day2, Variant: Prob(90), Value: 1},
		ForecastPoint{Date: day1, Variant: Prob(20), Value: 2},
		ForecastPoint{Date: day1, Variant: Trend(TendencyMax), Value: 3},
		ForecastPoint{Date: day1, Variant: Trend(TendencyMean), Value: 4},
		ForecastPoint{Date: day2, Variant: Trend(TendencyMin), Value: 5},
	)

	var got []string
	for _, p := range s.Points() {
		got = append(got, p.Date.Format("15")+" "+p.Variant.String())
	}
	assert.Equal(t, []string{"15 moy", "15 max", "15 p20", "18 min", "18 p90"}, got)

	tendencies, probabilities := s.Split()
	assert.Len(t, tendencies, 3)
	assert.Len(t, probabilities, 2)
}

func TestForecastSeries_Nil(t *testing.T) {
	var s *ForecastSeries
	assert.Zero(t, s.Len())
	assert.Nil(t, s.Points())
	_, ok := s.Get(day1, Prob(1))
	assert.False(t, ok)
	assert.True(t, s.Equal(NewForecastSeries()))
	require.NoError(t, s.Validate())
}

func TestForecastSeries_Equal(t *testing.T) {
	a := NewForecastSeries(
		ForecastPoint{Date: day1, Variant: Trend(TendencyMean), Value: 23},
		ForecastPoint{Date: day1, Variant: Trend(TendencyMax), Value: 25},
	)
	b := NewForecastSeries(
		ForecastPoint{Date: day1, Variant: Trend(TendencyMax), Value: 25},
		ForecastPoint{Date: day1, Variant: Trend(TendencyMean), Value: 23},
	)
	assert.True(t, a.Equal(b))

	b.Add(ForecastPoint{Date: day1, Variant: Trend(TendencyMax), Value: 26})
	assert.False(t, a.Equal(b))
}

func TestForecastSeries_Validate(t *testing.T) {
	ok := NewForecastSeries(ForecastPoint{Date: day1, Variant: Prob(100), Value: 1})
	require.NoError(t, ok.Validate())

	bad := NewForecastSeries(ForecastPoint{Date: day1, Variant: Prob(101), Value: 1})
	var ve *ValidationError
	require.ErrorAs(t, bad.Validate(), &ve)
	assert.Equal(t, "probability", ve.Field)

	unset := NewForecastSeries(ForecastPoint{Date: day1, Value: 1})
	require.ErrorAs(t, unset.Validate(), &ve)
	assert.Equal(t, "variant", ve.Field)
}
