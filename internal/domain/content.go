package domain

import "time"

// Content is one unit of lesson content from the catalog listing.
type Content struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Kind        string    `json:"kind"`
	Tier        int       `json:"tier"`
	Tags        []string  `json:"tags,omitempty"`
	StepCount   int       `json:"step_count"`
	UpdatedAt   time.Time `json:"updated_at"`
	Description string    `json:"description,omitempty"`
}

// ContentFilters narrows a content listing. Zero values mean "no filter".
type ContentFilters struct {
	Kind string
	Tier int
	Tag  string
}

// Matches reports whether c passes the filters. Used when serving a
// listing from the cache, where the server can't do the filtering.
func (f ContentFilters) Matches(c Content) bool {
	if f.Kind != "" && c.Kind != f.Kind {
		return false
	}
	if f.Tier != 0 && c.Tier != f.Tier {
		return false
	}
	if f.Tag != "" {
		found := false
		for _, tag := range c.Tags {
			if tag == f.Tag {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
