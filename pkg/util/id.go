package util

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// NewID generates a random 128-bit identifier. The dashboard pre-generates
// IDs for new destinations, recommendations, and blog posts so dependent
// rows can reference them before the parent row exists; when a client
// supplies no ID the server falls back to this.
func NewID() string {
	return uuid.NewString()
}

// IsValidID reports whether s parses as a UUID.
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify converts a title to a URL-safe slug ("Hidden Bars of Lisbon" ->
// "hidden-bars-of-lisbon").
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
