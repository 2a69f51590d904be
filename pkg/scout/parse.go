package scout

import (
	"encoding/json"
	"regexp"
	"strings"
)

// docker scout cves prints a package header line followed by its CVE
// entries, e.g.
//
//	0C     2H     0M     0L  setuptools 65.5.1
//	  ✗ HIGH CVE-2025-47273 [Improper Limitation of a Pathname]
//	    Affected range : <78.1.1
//	    Fixed version  : 78.1.1
var (
	pkgPattern      = regexp.MustCompile(`^(\d+)C\s+(\d+)H\s+(\d+)M\s+(\d+)L\s+(\S+)\s+(\S+)`)
	vulnPattern     = regexp.MustCompile(`✗\s+(\w+)\s+(CVE-\d+-\d+)(?:\s+\[(.+?)\])?`)
	fixedPattern    = regexp.MustCompile(`Fixed version\s*:\s*(.+)`)
	affectedPattern = regexp.MustCompile(`Affected range\s*:\s*(.+)`)
)

// ParseCVEs extracts vulnerabilities from scout's human-readable cves
// output, preserving their order of appearance.
func ParseCVEs(output string) []Vulnerability {
	var (
		vulns      []Vulnerability
		pkgName    string
		pkgVersion string
		current    *Vulnerability
	)
	flush := func() {
		if current != nil {
			vulns = append(vulns, *current)
			current = nil
		}
	}
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if m := pkgPattern.FindStringSubmatch(line); m != nil {
			flush()
			pkgName, pkgVersion = m[5], m[6]
			continue
		}

		if m := vulnPattern.FindStringSubmatch(line); m != nil && pkgName != "" {
			flush()
			title := m[3]
			if title == "" {
				title = "Vulnerability in " + pkgName
			}
			current = &Vulnerability{
				ID:       m[2],
				Severity: strings.ToLower(m[1]),
				Title:    title,
				Package:  pkgName,
				Version:  pkgVersion,
				URL:      "https://scout.docker.com/v/" + m[2],
			}
			continue
		}

		if m := fixedPattern.FindStringSubmatch(line); m != nil && current != nil {
			current.FixedVersion = strings.TrimSpace(m[1])
			continue
		}
		if m := affectedPattern.FindStringSubmatch(line); m != nil && current != nil {
			current.AffectedRange = strings.TrimSpace(m[1])
		}
	}
	flush()
	return vulns
}

// ParseRecommendations decodes scout's JSON recommendations output.
// Scout has shipped several shapes over time: a bare list, a list
// nested under "recommendations", or a single object.
func ParseRecommendations(output string) ([]Recommendation, error) {
	output = strings.TrimSpace(output)
	if output == "" {
		return nil, nil
	}

	var raw any
	if err := json.Unmarshal([]byte(output), &raw); err != nil {
		return nil, err
	}

	var entries []any
	switch v := raw.(type) {
	case []any:
		entries = v
	case map[string]any:
		if nested, ok := v["recommendations"].([]any); ok {
			entries = nested
		} else if _, ok := v["current"]; ok {
			entries = []any{v}
		} else if _, ok := v["recommended"]; ok {
			entries = []any{v}
		}
	}

	var recs []Recommendation
	for _, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			continue
		}
		rec := Recommendation{
			Type:        strings.ToLower(str(m, "type")),
			Current:     firstOf(m, "current", "from"),
			Recommended: firstOf(m, "recommended", "to"),
			Reason:      firstOf(m, "reason", "description"),
			Severity:    strings.ToLower(str(m, "severity")),
			Package:     str(m, "package"),
		}
		if rec.Type == "" {
			rec.Type = "recommendation"
		}
		if rec.Reason == "" {
			rec.Reason = "Update available"
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func firstOf(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := str(m, k); s != "" {
			return s
		}
	}
	return ""
}
