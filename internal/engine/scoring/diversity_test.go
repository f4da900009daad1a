// internal/engine/scoring/diversity_test.go
package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiversityPenalty(t *testing.T) {
	params := DefaultParams().Diversity

	tests := []struct {
		name     string
		sourceID string
		recent   []string
		expected float64
	}{
		{
			name:     "no recent interactions",
			sourceID: "startup-1",
			recent:   nil,
			expected: 0,
		},
		{
			name:     "source not in history",
			sourceID: "startup-1",
			recent:   []string{"startup-2", "startup-3"},
			expected: 0,
		},
		{
			name:     "single occurrence",
			sourceID: "startup-1",
			recent:   []string{"startup-1", "startup-2"},
			expected: -2,
		},
		{
			name:     "three occurrences",
			sourceID: "startup-1",
			recent:   []string{"startup-1", "startup-2", "startup-1", "startup-1"},
			expected: -6,
		},
		{
			name:     "floor at max penalty",
			sourceID: "startup-1",
			recent:   []string{"startup-1", "startup-1", "startup-1", "startup-1", "startup-1", "startup-1", "startup-1"},
			expected: -10,
		},
		{
			name:     "empty source ID",
			sourceID: "",
			recent:   []string{"startup-1"},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DiversityPenalty(tt.sourceID, tt.recent, params))
		})
	}
}
