// Package scout integrates Docker Scout vulnerability analysis. Scout
// has no Engine API surface, so it is reached through the docker CLI
// plugin.
package scout

import (
	"context"

	"github.com/rs/zerolog"

	apperrors "github.com/kalyanram262/docker-mcp-server/pkg/errors"
	"github.com/kalyanram262/docker-mcp-server/pkg/runner"
)

// Scanner analyzes images for vulnerabilities and remediation advice.
type Scanner interface {
	CVEs(ctx context.Context, ref string) (*Report, error)
	Recommendations(ctx context.Context, ref string) (*Recommendations, error)
}

// Vulnerability is one CVE affecting a package of the scanned image.
type Vulnerability struct {
	ID            string `json:"id"`
	Severity      string `json:"severity"`
	Title         string `json:"title"`
	Package       string `json:"package"`
	Version       string `json:"version"`
	FixedVersion  string `json:"fixed_version,omitempty"`
	AffectedRange string `json:"affected_range,omitempty"`
	URL           string `json:"url"`
}

// Report is the payload of scan_image.
type Report struct {
	Reference          string          `json:"reference"`
	Vulnerabilities    []Vulnerability `json:"vulnerabilities"`
	VulnerabilityCount int             `json:"vulnerability_count"`
	SeverityCounts     map[string]int  `json:"severity_counts"`
}

// Recommendation is one base image update suggestion.
type Recommendation struct {
	Type        string `json:"type"`
	Current     string `json:"current,omitempty"`
	Recommended string `json:"recommended,omitempty"`
	Reason      string `json:"reason"`
	Severity    string `json:"severity,omitempty"`
	Package     string `json:"package,omitempty"`
}

// Recommendations is the payload of image_recommendations.
type Recommendations struct {
	Reference           string           `json:"reference"`
	Recommendations     []Recommendation `json:"recommendations"`
	RecommendationCount int              `json:"recommendation_count"`
}

// CLI drives the docker scout plugin through a command runner.
type CLI struct {
	runner runner.CommandRunner
	log    zerolog.Logger
}

var _ Scanner = &CLI{}

// NewCLI returns a Scanner backed by the docker CLI.
func NewCLI(r runner.CommandRunner, log zerolog.Logger) *CLI {
	return &CLI{runner: r, log: log.With().Str("component", "scout").Logger()}
}

// ensureAvailable probes the scout plugin so callers get a clear error
// instead of unparseable CLI output.
func (c *CLI) ensureAvailable(ctx context.Context) error {
	if _, err := c.runner.RunCommand(ctx, "docker", "scout", "version"); err != nil {
		return apperrors.Wrap(apperrors.CodeEngineFailure,
			"docker scout is not installed or not reachable", err)
	}
	return nil
}

// CVEs scans an image and returns its known vulnerabilities.
func (c *CLI) CVEs(ctx context.Context, ref string) (*Report, error) {
	if err := c.ensureAvailable(ctx); err != nil {
		return nil, err
	}
	out, err := c.runner.RunCommand(ctx, "docker", "scout", "cves", ref)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeEngineFailure, "docker scout cves failed", err)
	}
	vulns := ParseCVEs(out)
	counts := map[string]int{"critical": 0, "high": 0, "medium": 0, "low": 0, "unknown": 0}
	for _, v := range vulns {
		if _, ok := counts[v.Severity]; ok {
			counts[v.Severity]++
		} else {
			counts["unknown"]++
		}
	}
	c.log.Debug().Str("image", ref).Int("vulnerabilities", len(vulns)).Msg("scout scan finished")
	return &Report{
		Reference:          ref,
		Vulnerabilities:    vulns,
		VulnerabilityCount: len(vulns),
		SeverityCounts:     counts,
	}, nil
}

// Recommendations returns base image update advice for an image.
func (c *CLI) Recommendations(ctx context.Context, ref string) (*Recommendations, error) {
	if err := c.ensureAvailable(ctx); err != nil {
		return nil, err
	}
	out, err := c.runner.RunCommand(ctx, "docker", "scout", "recommendations", ref, "--format", "json")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeEngineFailure, "docker scout recommendations failed", err)
	}
	recs, err := ParseRecommendations(out)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeEngineFailure, "unparseable scout recommendations output", err)
	}
	return &Recommendations{
		Reference:           ref,
		Recommendations:     recs,
		RecommendationCount: len(recs),
	}, nil
}
