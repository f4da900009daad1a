// internal/engine/scoring/contextual.go
package scoring

import (
	"strings"
	"time"

	"talent-recommender/internal/engine/textnorm"
	"talent-recommender/internal/models"
)

// ContextualBoost adds fixed bonuses for location match and academic
// timing relevance. The two bonuses are independent; both can apply.
//
// Locations match when their normalized forms are equal or one contains
// the other ("san francisco" matches "san francisco bay area").
//
// The academic-year bonus applies when the item targets the candidate's
// graduation year and that year is the current calendar year: content
// aimed at final-year students boosts only for candidates who actually
// graduate this year.
func ContextualBoost(profile *models.CandidateProfile, item *models.ContentItem, p ContextualParams, now time.Time) float64 {
	if profile == nil || item == nil {
		return 0
	}

	boost := 0.0

	if profile.Location != "" && item.Location != "" {
		a := textnorm.Normalize(profile.Location)
		b := textnorm.Normalize(item.Location)
		if a != "" && b != "" && (a == b || strings.Contains(a, b) || strings.Contains(b, a)) {
			boost += p.LocationMatch
		}
	}

	if item.TargetedAcademicYear != 0 &&
		profile.GraduationYear == item.TargetedAcademicYear &&
		profile.GraduationYear == now.Year() {
		boost += p.AcademicYearMatch
	}

	return boost
}
