// Package urlutil validates presentation URLs and derives safe filenames.
package urlutil

import (
	"net/url"
	"regexp"
	"strings"
)

var validHosts = map[string]bool{
	"pitch.com":     true,
	"app.pitch.com": true,
	"www.pitch.com": true,
}

var validPaths = []*regexp.Regexp{
	regexp.MustCompile(`^/v/[^/]+`),                                  // classic: /v/presentation-name
	regexp.MustCompile(`^/public/[a-f0-9-]+/[a-f0-9-]+`),             // public: /public/uuid/uuid
	regexp.MustCompile(`^/app/public/player/[a-f0-9-]+/[a-f0-9-]+`),  // app player
}

// ValidatePresentationURL reports whether raw points at a supported
// presentation player page.
func ValidatePresentationURL(raw string) bool {
	if raw == "" {
		return false
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	if !validHosts[parsed.Host] {
		return false
	}

	for _, pattern := range validPaths {
		if pattern.MatchString(parsed.Path) {
			return true
		}
	}
	return false
}

// SanitizeFilename strips characters that are unsafe in file names and
// bounds the length. An empty result falls back to "presentation".
func SanitizeFilename(name string) string {
	const invalid = `<>:"/\|?*`
	for _, c := range invalid {
		name = strings.ReplaceAll(name, string(c), "_")
	}
	name = strings.Trim(name, " .")
	if len(name) > 100 {
		name = name[:100]
	}
	if name == "" {
		name = "presentation"
	}
	return name
}

// TitleFromURL extracts a human-friendly deck title from a classic
// /v/<name> URL, falling back to a generic title.
func TitleFromURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "Presentation"
	}
	if idx := strings.Index(parsed.Path, "/v/"); idx != -1 {
		slug := strings.SplitN(parsed.Path[idx+len("/v/"):], "/", 2)[0]
		if slug != "" {
			return titleCase(strings.ReplaceAll(slug, "-", " "))
		}
	}
	return "Presentation"
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
