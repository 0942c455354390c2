package domain

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Destination is a named bucket items can be routed into.
type Destination struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Slug        string
	Name        string
	Icon        string
	Color       *string
	Description *string
	SortOrder   int
	CreatedAt   time.Time
}

var (
	slugPattern  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	slugSplitter = regexp.MustCompile(`[^a-z0-9]+`)
)

// MaxSlugLength bounds destination slugs.
const MaxSlugLength = 64

// IsValidSlug reports whether s is a lowercase dash-separated slug.
func IsValidSlug(s string) bool {
	return len(s) > 0 && len(s) <= MaxSlugLength && slugPattern.MatchString(s)
}

// Slugify derives a slug from a display name. Returns "" when nothing usable remains.
func Slugify(name string) string {
	s := slugSplitter.ReplaceAllString(strings.ToLower(name), "-")
	s = strings.Trim(s, "-")
	if len(s) > MaxSlugLength {
		s = strings.TrimRight(s[:MaxSlugLength], "-")
	}
	return s
}
