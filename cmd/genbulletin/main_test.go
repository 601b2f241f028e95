package main

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/sandre-etl/internal/domain"
	"github.com/couchcryptid/sandre-etl/internal/sandre"
	"github.com/couchcryptid/sandre-etl/internal/sandre/codec"
)

func TestGenerate_Valid(t *testing.T) {
	doc := generate(options{sites: 5, seed: 3})
	require.NoError(t, doc.Validate())

	s := doc.Summarize()
	assert.Equal(t, 5, s.Sites)
	assert.Equal(t, 10, s.Stations)
	assert.Equal(t, 5, s.Thresholds)
	assert.Equal(t, 5, s.Simulations)
	assert.Equal(t, 5*forecastLen*(3+len(probabilities)), s.Forecasts)
}

func TestGenerate_Deterministic(t *testing.T) {
	a := generate(options{sites: 3, seed: 42})
	b := generate(options{sites: 3, seed: 42})
	assert.Empty(t, cmp.Diff(a, b))

	c := generate(options{sites: 3, seed: 43})
	assert.NotEmpty(t, cmp.Diff(a, c))
}

func TestGenerate_RoundTripV2(t *testing.T) {
	doc := generate(options{sites: 4, seed: 9})
	c := codec.New(codec.WithClock(clockwork.NewFakeClockAt(createdAt)))

	data, err := c.Encode(doc, sandre.V2)
	require.NoError(t, err)
	got, err := c.Decode(data)
	require.NoError(t, err)

	assert.Empty(t, cmp.Diff(doc, got, cmpopts.IgnoreFields(domain.Scenario{}, "Version")))
}

func TestGenerate_V11SplitsSiteValues(t *testing.T) {
	doc := generate(options{sites: 8, seed: 5})
	wantGroups := 0
	for _, th := range doc.Thresholds {
		wantGroups += len(th.SiteValues())
	}

	data, err := codec.New(codec.WithClock(clockwork.NewFakeClockAt(createdAt))).Encode(doc, sandre.V1_1)
	require.NoError(t, err)

	xml := etree.NewDocument()
	require.NoError(t, xml.ReadFromBytes(data))
	assert.Len(t, xml.FindElements(".//ValeursSeuilSiteHydro"), wantGroups)

	got, err := codec.New(codec.WithClock(clockwork.NewFakeClockAt(createdAt))).Decode(data)
	require.NoError(t, err)
	require.Len(t, got.Thresholds, len(doc.Thresholds))
	for i := range doc.Thresholds {
		assert.Len(t, got.Thresholds[i].Values, len(doc.Thresholds[i].Values))
	}
}
