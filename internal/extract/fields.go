// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"net/url"
	"regexp"
	"strings"
)

// datePattern matches ISO-like dates with 1900–2099 years and 1- or 2-digit
// month/day components, the one reliably present signal in listing text.
var datePattern = regexp.MustCompile(`\b(20\d{2}|19\d{2})-(0?[1-9]|1[0-2])-(0?[1-9]|[12]\d|3[01])\b`)

// yearPattern matches a bare 4-digit year token.
var yearPattern = regexp.MustCompile(`\b(20\d{2}|19\d{2})\b`)

// venuePattern matches the first clean run of alphanumeric-and-punctuation
// text, used as a best-effort venue after the date.
var venuePattern = regexp.MustCompile(`([A-Za-z0-9][A-Za-z0-9 \-–&,:()]+)`)

var whitespacePattern = regexp.MustCompile(`\s+`)

// cleanText collapses all whitespace runs to single spaces and trims.
func cleanText(s string) string {
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(s, " "))
}

// extractDate returns the first YYYY-MM-DD match and its year. When no full
// date is present the year falls back to any bare 4-digit year in the text.
func extractDate(text string) (date, year string) {
	if m := datePattern.FindStringSubmatch(text); m != nil {
		return m[0], m[1]
	}
	if m := yearPattern.FindStringSubmatch(text); m != nil {
		return "", m[1]
	}
	return "", ""
}

// classifyType returns "preprint", "published", or "". When both signals
// appear in the same text, "published" wins.
func classifyType(text string) string {
	lower := strings.ToLower(text)
	ptype := ""
	if strings.Contains(lower, "preprint") || strings.Contains(lower, "arxiv") {
		ptype = "preprint"
	}
	if strings.Contains(lower, "published") {
		ptype = "published"
	}
	return ptype
}

// extractVenue returns the first clean alphanumeric run in the text that
// follows the date. The source markup has no structured venue field.
func extractVenue(afterDate string) string {
	if m := venuePattern.FindStringSubmatch(afterDate); m != nil {
		return cleanText(m[1])
	}
	return ""
}

// languageFromPath derives a language tag from the listing path prefix.
func languageFromPath(path string) string {
	path = strings.ToLower(path)
	switch {
	case strings.HasPrefix(path, "/fr/"):
		return "fr"
	case strings.HasPrefix(path, "/en/"), strings.HasPrefix(path, "/en-"):
		return "en"
	default:
		return ""
	}
}

// pathOf returns the URL's path component, or empty when unparseable.
func pathOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Path
}

// slugFromURL reduces a listing URL to its path (plus query when present),
// used as the record's slug.
func slugFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	slug := strings.Trim(u.Path, "/")
	if u.RawQuery != "" {
		slug += "?" + u.RawQuery
	}
	return slug
}

// truncateRunes cuts s to at most max runes, appending an ellipsis when the
// text was actually shortened.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}

// firstRunes returns at most the first n runes of s, unmarked.
func firstRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// link is one hyperlink found in a container or page, already trimmed.
type link struct {
	href string
}

// classifyLinks assigns links to the doi/pdf/code categories. First match
// wins per category. Relative .pdf links are resolved against the listing
// URL so the exported value is absolute.
func classifyLinks(links []link, listURL string) (doi, pdfURL, codeURL string) {
	base, _ := url.Parse(listURL)
	for _, l := range links {
		href := strings.TrimSpace(l.href)
		if href == "" {
			continue
		}
		lower := strings.ToLower(href)

		if doi == "" && strings.Contains(href, "doi.org") {
			doi = href
		}
		if pdfURL == "" && strings.Contains(href, "arxiv.org") {
			pdfURL = href
		}
		if pdfURL == "" && strings.HasSuffix(lower, ".pdf") {
			pdfURL = resolveRef(base, href)
		}
		if codeURL == "" && containsAny(lower, "github.com", "gitlab.com", "code", "source") {
			codeURL = href
		}
	}
	return doi, pdfURL, codeURL
}

func resolveRef(base *url.URL, href string) string {
	if base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// looksLikeName reports whether a link text resembles a short personal name:
// two to four space-separated tokens and at most 40 characters.
func looksLikeName(s string) bool {
	if s == "" || len([]rune(s)) > 40 {
		return false
	}
	spaces := strings.Count(s, " ")
	return spaces >= 1 && spaces <= 3
}
