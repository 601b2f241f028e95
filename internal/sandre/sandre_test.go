package sandre

import (
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	v, err := ParseVersion("1.1")
	require.NoError(t, err)
	assert.Equal(t, V1_1, v)
	assert.Equal(t, "1.1", v.String())

	v, err = ParseVersion("2")
	require.NoError(t, err)
	assert.Equal(t, V2, v)
	assert.Equal(t, "2", v.String())

	for _, lit := range []string{"", "2.0", "1", " 2", "v2"} {
		_, err := ParseVersion(lit)
		require.Error(t, err, lit)
		assert.ErrorIs(t, err, ErrUnknownVersion)

		var uv *UnknownVersionError
		require.ErrorAs(t, err, &uv)
		assert.Equal(t, lit, uv.Version)
	}
}

func TestVersionValid(t *testing.T) {
	assert.True(t, V1_1.Valid())
	assert.True(t, V2.Valid())
	assert.False(t, Version(0).Valid())
	assert.Equal(t, "unknown", Version(9).String())
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"true", "TRUE", "Vrai", "vrai", "1", " true "} {
		assert.True(t, ParseBool(s), s)
	}
	for _, s := range []string{"false", "faux", "0", "yes", "", "2"} {
		assert.False(t, ParseBool(s), s)
	}
}

func TestFormatAndParseTime(t *testing.T) {
	ts := time.Date(2010, 2, 26, 15, 0, 0, 0, time.UTC)
	assert.Equal(t, "2010-02-26T15:00:00", FormatTime(ts))

	paris := time.FixedZone("CET", 3600)
	assert.Equal(t, "2010-02-26T14:00:00", FormatTime(ts.In(paris).Add(-time.Hour)))

	got, err := ParseTime("2010-02-26T15:00:00")
	require.NoError(t, err)
	assert.True(t, ts.Equal(got))
	assert.Equal(t, time.UTC, got.Location())

	got, err = ParseTime("2010-02-26")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2010, 2, 26, 0, 0, 0, 0, time.UTC), got)

	_, err = ParseTime("26/02/2010")
	assert.Error(t, err)
}

func TestParseTime_DropsFractionalSeconds(t *testing.T) {
	for _, s := range []string{"2010-02-26T15:00:00.75", "2010-02-26T15:00:00.999999999Z"} {
		got, err := ParseTime(s)
		require.NoError(t, err, s)
		assert.Equal(t, time.Date(2010, 2, 26, 15, 0, 0, 0, time.UTC), got, s)
		assert.Equal(t, "2010-02-26T15:00:00", FormatTime(got))
	}
}

func TestParseFloat(t *testing.T) {
	valid := map[string]float64{"23": 23, "-1.5": -1.5, "+0.25": 0.25, ".5": 0.5, "12.": 12, " 7 ": 7}
	for s, want := range valid {
		got, err := ParseFloat(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}

	for _, s := range []string{"NaN", "nan", "Inf", "+Inf", "-Infinity", "0x1p4", "1e3", "1_000", "", "."} {
		_, err := ParseFloat(s)
		require.Error(t, err, s)
		assert.ErrorIs(t, err, strconv.ErrSyntax, s)
	}
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "23", FormatFloat(23))
	assert.Equal(t, "0.25", FormatFloat(0.25))
	assert.Equal(t, "-1.5", FormatFloat(-1.5))
}

func TestKind(t *testing.T) {
	_, numErr := strconv.Atoi("x")
	cases := []struct {
		err  error
		want string
	}{
		{nil, "none"},
		{&MalformedElementError{Tag: "ResObsHydro", Text: "x", Type: "float", Err: numErr}, "malformed_element"},
		{&InconsistentThresholdError{SiteCode: "A1234567", Code: "33", Field: "label"}, "inconsistent_threshold"},
		{&UnsplittableThresholdError{SiteCode: "A1234567", Code: "33", SiteValues: 2, Limit: 1}, "unsplittable_threshold"},
		{&NamespaceError{Element: "hydrometrie", URI: "urn:x"}, "namespace"},
		{&UnknownVersionError{Version: "3"}, "unknown_version"},
		{fmt.Errorf("assemble: %w", ErrMalformedStory), "malformed_story"},
		{fmt.Errorf("decode: %w", ErrMalformedDocument), "malformed_document"},
		{errors.New("boom"), "other"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Kind(tc.err))
	}
}

func TestMalformedElementErrorContext(t *testing.T) {
	_, numErr := strconv.ParseFloat("douze", 64)
	err := fmt.Errorf("decode: %w", &MalformedElementError{Tag: "ResObsHydro", Text: "douze", Type: "float", Err: numErr})

	assert.ErrorIs(t, err, ErrMalformedElement)
	assert.ErrorIs(t, err, strconv.ErrSyntax)
	assert.Contains(t, err.Error(), "ResObsHydro")
	assert.Contains(t, err.Error(), `"douze"`)
	assert.Contains(t, err.Error(), "float")
}
