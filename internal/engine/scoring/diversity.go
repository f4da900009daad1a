// internal/engine/scoring/diversity.go
package scoring

import "math"

// DiversityPenalty discourages showing many items from the same source
// in a row. Each occurrence of sourceID in the candidate's recent
// interactions subtracts PenaltyPerOccurrence points, floored at
// -MaxPenalty. Zero occurrences yield exactly zero - the penalty is
// never a bonus.
func DiversityPenalty(sourceID string, recentSources []string, p DiversityParams) float64 {
	if sourceID == "" || len(recentSources) == 0 {
		return 0
	}

	occurrences := 0
	for _, id := range recentSources {
		if id == sourceID {
			occurrences++
		}
	}
	if occurrences == 0 {
		return 0
	}

	return math.Max(-p.MaxPenalty, float64(occurrences)*-p.PenaltyPerOccurrence)
}
