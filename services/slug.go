package services

import (
	"regexp"
	"strings"
)

// slugStrip drops everything that is not a word character or hyphen, after
// spaces have been turned into hyphens.
var slugStrip = regexp.MustCompile(`[^\w-]+`)

// Slugify derives a URL-safe identifier from a post title: lowercased, spaces
// replaced with hyphens, remaining non-word characters stripped. The
// derivation is deterministic and idempotent.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = strings.ReplaceAll(slug, " ", "-")
	return slugStrip.ReplaceAllString(slug, "")
}
