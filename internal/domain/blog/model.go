package blog

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Post is a commissioner announcement or weekly recap.
type Post struct {
	ID          string
	Slug        string
	Title       string
	Body        string
	AuthorID    string
	Published   bool
	PublishedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

var (
	nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)
	validSlug    = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Slugify turns a title into a lowercase, hyphen separated slug.
func Slugify(title string) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 80 {
		slug = strings.TrimRight(slug[:80], "-")
	}
	return slug
}

func (p Post) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("post id is required")
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("post title is required")
	}
	if !validSlug.MatchString(p.Slug) {
		return fmt.Errorf("invalid slug %q", p.Slug)
	}
	if strings.TrimSpace(p.Body) == "" {
		return fmt.Errorf("post body is required")
	}
	return nil
}
