package scout

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/kalyanram262/docker-mcp-server/pkg/errors"
	"github.com/kalyanram262/docker-mcp-server/pkg/runner"
)

func TestCVEs(t *testing.T) {
	fake := &runner.FakeCommandRunner{Output: cvesOutput}
	c := NewCLI(fake, zerolog.Nop())

	report, err := c.CVEs(context.Background(), "myapp:latest")
	require.NoError(t, err)

	assert.Equal(t, "myapp:latest", report.Reference)
	assert.Equal(t, 3, report.VulnerabilityCount)
	assert.Equal(t, 2, report.SeverityCounts["high"])
	assert.Equal(t, 1, report.SeverityCounts["critical"])
	assert.Zero(t, report.SeverityCounts["medium"])

	// Availability probe first, then the scan itself.
	require.Len(t, fake.Calls, 2)
	assert.Equal(t, []string{"docker", "scout", "version"}, fake.Calls[0])
	assert.Equal(t, []string{"docker", "scout", "cves", "myapp:latest"}, fake.Calls[1])
}

func TestCVEs_PluginMissing(t *testing.T) {
	fake := &runner.FakeCommandRunner{ErrStr: `command "docker" failed`}
	c := NewCLI(fake, zerolog.Nop())

	_, err := c.CVEs(context.Background(), "myapp:latest")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeEngineFailure))
	assert.Contains(t, err.Error(), "not installed")
	require.Len(t, fake.Calls, 1, "scan must not run when the plugin probe fails")
}

func TestRecommendations(t *testing.T) {
	fake := &runner.FakeCommandRunner{
		Output: `{"recommendations": [{"current": "alpine:3.18", "recommended": "alpine:3.20"}]}`,
	}
	c := NewCLI(fake, zerolog.Nop())

	recs, err := c.Recommendations(context.Background(), "myapp:latest")
	require.NoError(t, err)

	assert.Equal(t, "myapp:latest", recs.Reference)
	assert.Equal(t, 1, recs.RecommendationCount)
	require.Len(t, fake.Calls, 2)
	assert.Equal(t,
		[]string{"docker", "scout", "recommendations", "myapp:latest", "--format", "json"},
		fake.Calls[1])
}

func TestRecommendations_UnparseableOutput(t *testing.T) {
	fake := &runner.FakeCommandRunner{Output: "plugin crashed"}
	c := NewCLI(fake, zerolog.Nop())

	_, err := c.Recommendations(context.Background(), "myapp:latest")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeEngineFailure))
}
