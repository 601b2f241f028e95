package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/sandre-etl/internal/domain"
	"github.com/couchcryptid/sandre-etl/internal/sandre"
	"github.com/couchcryptid/sandre-etl/internal/sandre/codec"
)

var (
	sampleV11 = filepath.Join("..", "..", "data", "sample", "bulletin_v1.1.xml")
	sampleV2  = filepath.Join("..", "..", "data", "sample", "bulletin_v2.xml")
)

func execute(args ...string) (code int, stdout, stderr string) {
	var out, errOut bytes.Buffer
	code = run(args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func TestRun_Usage(t *testing.T) {
	code, _, stderr := execute()
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "usage: sandre")

	code, _, stderr = execute("explode")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, `unknown command "explode"`)

	code, _, _ = execute("convert")
	assert.Equal(t, 2, code, "missing -in")
}

func TestConvert_ToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out.xml")

	code, _, stderr := execute("convert", "-in", sampleV11, "-out", out, "-version", "2")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stderr, "(1.1)")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	doc, err := codec.New().Decode(data)
	require.NoError(t, err)
	assert.Equal(t, sandre.V2, doc.Scenario.Version)
}

func TestConvert_Stdout(t *testing.T) {
	code, stdout, stderr := execute("convert", "-in", sampleV2, "-version", "1.1", "-indent", "0")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "<VersionScenario>1.1</VersionScenario>")
	assert.NotContains(t, stdout, "\n  <")
}

func TestConvert_Errors(t *testing.T) {
	code, _, stderr := execute("convert", "-in", sampleV2, "-version", "3")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "kind: unknown_version")

	bad := filepath.Join(t.TempDir(), "bad.xml")
	require.NoError(t, os.WriteFile(bad, []byte(`<hydrometrie xmlns="urn:x"/>`), 0o600))
	code, _, stderr = execute("convert", "-in", bad)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "kind: namespace")
}

func TestInspect_Summary(t *testing.T) {
	code, stdout, stderr := execute("inspect", "-in", sampleV2)
	require.Equal(t, 0, code, stderr)

	var s domain.Summary
	require.NoError(t, json.Unmarshal([]byte(stdout), &s))
	assert.Equal(t, "2", s.Version)
	assert.Equal(t, "1537", s.Emitter)
	assert.Equal(t, 2, s.Sites)
	assert.Equal(t, 1, s.Simulations)
	assert.Positive(t, s.Forecasts)
}

func TestInspect_YAML(t *testing.T) {
	code, stdout, stderr := execute("inspect", "-in", sampleV11, "-format", "yaml")
	require.Equal(t, 0, code, stderr)

	var s domain.Summary
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &s))
	assert.Equal(t, "1.1", s.Version)
	assert.Equal(t, 2, s.Thresholds)
}

func TestInspect_FullJSONIncludesForecasts(t *testing.T) {
	code, stdout, stderr := execute("inspect", "-in", sampleV11, "-full")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, `"Variant": "moy"`)
	assert.Contains(t, stdout, `"Variant": "p90"`)
	assert.Contains(t, stdout, `"Version": "1.1"`)
}

func TestInspect_Dump(t *testing.T) {
	code, stdout, stderr := execute("inspect", "-in", sampleV2, "-format", "dump")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "domain.Document")
	assert.Contains(t, stdout, "K0100020")
}

func TestInspect_UnknownFormat(t *testing.T) {
	code, _, stderr := execute("inspect", "-in", sampleV2, "-format", "toml")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `unknown format "toml"`)
}

func TestCheck_Samples(t *testing.T) {
	for _, path := range []string{sampleV11, sampleV2} {
		t.Run(filepath.Base(path), func(t *testing.T) {
			code, stdout, stderr := execute("check", "-in", path)
			require.Equal(t, 0, code, stdout+stderr)
			assert.Contains(t, stdout, "round trip via 1.1")
			assert.Contains(t, stdout, "round trip via 2")
			assert.NotContains(t, stdout, "FAIL")
		})
	}
}
