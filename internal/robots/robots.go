// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package robots loads a site's crawl-permission rules and answers whether a
// URL may be fetched. The gate fails open: an unreachable or unparseable
// robots.txt yields an empty ruleset that allows everything.
package robots

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/pdiddy/pubharvest/internal/fetch"
)

// RuleSet holds the disallowed path prefixes scoped to the wildcard
// user-agent. It is loaded once at process start and immutable thereafter.
type RuleSet struct {
	disallow []string
}

// Load fetches and parses baseURL/robots.txt. Any failure (network, status,
// read) produces an empty RuleSet, never an error: compliance checking must
// not block the crawl when the rules themselves are unavailable.
func Load(ctx context.Context, client *fetch.Client, baseURL string) *RuleSet {
	rs := &RuleSet{}

	robotsURL, err := url.JoinPath(baseURL, "/robots.txt")
	if err != nil {
		return rs
	}
	resp, err := client.Get(ctx, robotsURL)
	if err != nil {
		return rs
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return rs
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return rs
	}
	rs.disallow = parseDisallows(string(body))
	return rs
}

// parseDisallows extracts Disallow prefixes from the wildcard user-agent
// group(s). Comments and blank lines are skipped; groups for named agents
// are ignored.
func parseDisallows(body string) []string {
	var disallows []string
	active := false
	for _, raw := range strings.Split(body, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lower := strings.ToLower(line)
		switch {
		case strings.HasPrefix(lower, "user-agent:"):
			agent := strings.TrimSpace(line[len("user-agent:"):])
			active = agent == "*"
		case active && strings.HasPrefix(lower, "disallow:"):
			rule := strings.TrimSpace(line[len("disallow:"):])
			if rule != "" {
				disallows = append(disallows, rule)
			}
		}
	}
	return disallows
}

// Allowed reports whether the URL's path is permitted. When blocked it also
// returns the disallow prefix that matched, for the compliance journal. A URL
// is blocked when its path starts with any rule prefix; any match blocks, so
// the result does not depend on rule order.
func (rs *RuleSet) Allowed(rawURL string) (bool, string) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return true, ""
	}
	path := u.Path
	if path == "" {
		path = "/"
	}
	for _, rule := range rs.disallow {
		if strings.HasPrefix(path, rule) {
			return false, rule
		}
	}
	return true, ""
}

// Rules returns the loaded disallow prefixes.
func (rs *RuleSet) Rules() []string {
	return rs.disallow
}
