// internal/models/content.go
package models

import (
	"strings"
	"time"
)

// ContentKind discriminates the three rankable content types.
type ContentKind string

const (
	KindJob     ContentKind = "job"
	KindPost    ContentKind = "post"
	KindStartup ContentKind = "startup"
)

// ParseKind maps a caller-supplied type string to a ContentKind. It
// accepts the plural spellings the original API used.
func ParseKind(s string) (ContentKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "job", "jobs":
		return KindJob, true
	case "post", "posts":
		return KindPost, true
	case "startup", "startups":
		return KindStartup, true
	default:
		return "", false
	}
}

// EngagementCounters holds raw engagement metrics. All counters default
// to zero; negative values are data-quality noise and are clamped.
type EngagementCounters struct {
	Views        int64 `json:"views"`
	Likes        int64 `json:"likes"`
	Applications int64 `json:"applications"`
	Saves        int64 `json:"saves"`
}

// AppliesOrSaves is the combined apply/save signal used by the
// engagement scorer.
func (e EngagementCounters) AppliesOrSaves() int64 {
	return e.Applications + e.Saves
}

// ContentItem is one rankable item (job posting, social post, or startup
// profile). Immutable for the duration of a ranking call.
type ContentItem struct {
	ID       string      `json:"id"`
	Kind     ContentKind `json:"kind"`
	SourceID string      `json:"sourceId"`

	Title        string   `json:"title,omitempty"`        // job role / post title / startup name
	Requirements []string `json:"requirements,omitempty"` // jobs
	Description  string   `json:"description,omitempty"`  // posts, startups

	// Tags optionally carries pre-extracted tags; when empty the ranker
	// extracts them from the kind-specific text fields.
	Tags []string `json:"tags,omitempty"`

	Engagement EngagementCounters `json:"engagement"`
	CreatedAt  time.Time          `json:"createdAt"`

	Location             string `json:"location,omitempty"`
	TargetedAcademicYear int    `json:"targetedAcademicYear,omitempty"`
	Verified             bool   `json:"verified,omitempty"` // startups only
}

// MatchText returns the free-text field that feeds tag extraction for
// this item's kind.
func (c *ContentItem) MatchText() string {
	switch c.Kind {
	case KindJob:
		if len(c.Requirements) > 0 {
			return strings.Join(c.Requirements, " ") + " " + c.Title
		}
		return c.Title
	case KindPost:
		if c.Description != "" {
			return c.Description
		}
		return c.Title
	case KindStartup:
		return c.Description + " " + c.Title
	default:
		return ""
	}
}

// Normalize resolves missing optional fields to safe defaults so the
// scoring functions always receive fully-defaulted numeric inputs.
// Called once at the collaborator boundary.
func (c *ContentItem) Normalize() {
	if c.Engagement.Views < 0 {
		c.Engagement.Views = 0
	}
	if c.Engagement.Likes < 0 {
		c.Engagement.Likes = 0
	}
	if c.Engagement.Applications < 0 {
		c.Engagement.Applications = 0
	}
	if c.Engagement.Saves < 0 {
		c.Engagement.Saves = 0
	}
}
