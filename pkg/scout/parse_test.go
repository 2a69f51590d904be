package scout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cvesOutput = `
    ✓ Image stored for indexing
    ✓ Indexed 212 packages

   0C     2H     0M     0L  setuptools 65.5.1
pkg:pypi/setuptools@65.5.1

    ✗ HIGH CVE-2025-47273 [Improper Limitation of a Pathname to a Restricted Directory]
      https://scout.docker.com/v/CVE-2025-47273
      Affected range : <78.1.1
      Fixed version  : 78.1.1

    ✗ HIGH CVE-2024-6345
      Affected range : <70.0.0
      Fixed version  : 70.0.0

   1C     0H     0M     0L  libssl3 3.0.11
    ✗ CRITICAL CVE-2024-0001 [Heap Overflow]
      Affected range : <3.0.12
`

func TestParseCVEs(t *testing.T) {
	vulns := ParseCVEs(cvesOutput)
	require.Len(t, vulns, 3)

	assert.Equal(t, Vulnerability{
		ID:            "CVE-2025-47273",
		Severity:      "high",
		Title:         "Improper Limitation of a Pathname to a Restricted Directory",
		Package:       "setuptools",
		Version:       "65.5.1",
		FixedVersion:  "78.1.1",
		AffectedRange: "<78.1.1",
		URL:           "https://scout.docker.com/v/CVE-2025-47273",
	}, vulns[0])

	// Entry without a bracketed title gets a synthesized one.
	assert.Equal(t, "Vulnerability in setuptools", vulns[1].Title)
	assert.Equal(t, "CVE-2024-6345", vulns[1].ID)

	// The package header resets attribution, and a missing fixed
	// version stays empty.
	assert.Equal(t, "libssl3", vulns[2].Package)
	assert.Equal(t, "3.0.11", vulns[2].Version)
	assert.Equal(t, "critical", vulns[2].Severity)
	assert.Empty(t, vulns[2].FixedVersion)
}

func TestParseCVEs_NoFindings(t *testing.T) {
	assert.Empty(t, ParseCVEs("✓ Indexed 40 packages\n✓ No vulnerable packages detected\n"))
	assert.Empty(t, ParseCVEs(""))
}

func TestParseRecommendations_BareList(t *testing.T) {
	recs, err := ParseRecommendations(`[
		{"type": "base_image", "current": "alpine:3.18", "recommended": "alpine:3.20", "reason": "newer patch release"},
		{"from": "debian:11", "to": "debian:12"}
	]`)
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "base_image", recs[0].Type)
	assert.Equal(t, "alpine:3.18", recs[0].Current)
	assert.Equal(t, "alpine:3.20", recs[0].Recommended)
	assert.Equal(t, "newer patch release", recs[0].Reason)

	// from/to aliases, synthesized type and reason.
	assert.Equal(t, "recommendation", recs[1].Type)
	assert.Equal(t, "debian:11", recs[1].Current)
	assert.Equal(t, "debian:12", recs[1].Recommended)
	assert.Equal(t, "Update available", recs[1].Reason)
}

func TestParseRecommendations_NestedAndSingle(t *testing.T) {
	recs, err := ParseRecommendations(`{"recommendations": [{"current": "ubuntu:22.04", "recommended": "ubuntu:24.04"}]}`)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "ubuntu:24.04", recs[0].Recommended)

	recs, err = ParseRecommendations(`{"current": "node:18", "recommended": "node:20"}`)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "node:18", recs[0].Current)
}

func TestParseRecommendations_EmptyAndInvalid(t *testing.T) {
	recs, err := ParseRecommendations("   ")
	require.NoError(t, err)
	assert.Empty(t, recs)

	_, err = ParseRecommendations("not json at all")
	assert.Error(t, err)
}
