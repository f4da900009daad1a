// internal/engine/scoring/skillmatch.go
package scoring

import (
	"math"
	"strings"

	"talent-recommender/internal/engine/textnorm"
)

// SkillMatch is the result of matching a candidate's terms against a
// content item's tag set.
type SkillMatch struct {
	Score       float64  `json:"score"`
	MatchedTags []string `json:"matchedTags"`
	TotalTags   int      `json:"totalTags"`
}

// MatchSkills scores the overlap between userTerms (skills or interests)
// and contentTags, scaled to maxPoints.
//
// A tag counts as matched when any normalized user term contains it or
// is contained by it. The containment is bidirectional so partial token
// matches work in both directions ("react" matches "reactjs" and vice
// versa). Score = matched/total * maxPoints, rounded to two decimals.
//
// An empty tag set scores zero with no matched tags; there is no
// division in that path.
func MatchSkills(userTerms, contentTags []string, maxPoints float64) SkillMatch {
	if len(contentTags) == 0 {
		return SkillMatch{Score: 0, MatchedTags: []string{}, TotalTags: 0}
	}

	terms := make([]string, 0, len(userTerms))
	for _, t := range userTerms {
		if n := textnorm.Normalize(t); n != "" {
			terms = append(terms, n)
		}
	}

	tags := make([]string, 0, len(contentTags))
	for _, t := range contentTags {
		tags = append(tags, textnorm.Normalize(t))
	}

	matched := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		for _, term := range terms {
			if strings.Contains(term, tag) || strings.Contains(tag, term) {
				if _, dup := seen[tag]; !dup {
					seen[tag] = struct{}{}
					matched = append(matched, tag)
				}
				break
			}
		}
	}

	score := float64(len(matched)) / float64(len(tags)) * maxPoints
	return SkillMatch{
		Score:       round2(score),
		MatchedTags: matched,
		TotalTags:   len(tags),
	}
}

// round2 rounds to two decimal places, the precision every component
// score is reported at.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
