// internal/models/profile.go
package models

// CandidateProfile is the immutable per-request snapshot of a student
// candidate, supplied by the persistence collaborator.
type CandidateProfile struct {
	ID             string   `json:"id"`
	Skills         []string `json:"skills"`
	Interests      []string `json:"interests"`
	Location       string   `json:"location,omitempty"`
	GraduationYear int      `json:"graduationYear,omitempty"`
	// RecentSources lists the employer/startup IDs behind the candidate's
	// recent applications and saves, most recent first, bounded length.
	RecentSources []string `json:"recentSources,omitempty"`
}

// MaxRecentSources bounds the interaction history considered for the
// diversity penalty.
const MaxRecentSources = 50

// HasSignal reports whether the profile carries enough signal to run the
// personalized scoring pipeline for the given content kind. Profiles
// without it are served from the cold-start path.
func (p *CandidateProfile) HasSignal(kind ContentKind) bool {
	if p == nil {
		return false
	}
	switch kind {
	case KindJob:
		return len(p.Skills) > 0
	case KindPost:
		return len(p.Interests) > 0
	case KindStartup:
		return len(p.Skills) > 0 || len(p.Interests) > 0
	default:
		return false
	}
}

// MatchTerms returns the profile fields that feed skill matching for the
// given content kind: skills for jobs, interests for posts, both for
// startups.
func (p *CandidateProfile) MatchTerms(kind ContentKind) []string {
	if p == nil {
		return nil
	}
	switch kind {
	case KindJob:
		return p.Skills
	case KindPost:
		return p.Interests
	case KindStartup:
		terms := make([]string, 0, len(p.Skills)+len(p.Interests))
		terms = append(terms, p.Skills...)
		terms = append(terms, p.Interests...)
		return terms
	default:
		return nil
	}
}

// Normalize clamps the profile to its documented bounds. It never errors;
// malformed optional fields degrade to safe defaults.
func (p *CandidateProfile) Normalize() {
	if p == nil {
		return
	}
	if len(p.RecentSources) > MaxRecentSources {
		p.RecentSources = p.RecentSources[:MaxRecentSources]
	}
}
