package similarity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		candidate string
		expected  float64
	}{
		{
			name:      "identical names",
			query:     "Half-Life 2",
			candidate: "Half-Life 2",
			expected:  1.0,
		},
		{
			name:      "case insensitive",
			query:     "HALF-LIFE 2",
			candidate: "half-life 2",
			expected:  1.0,
		},
		{
			name:      "both empty",
			query:     "",
			candidate: "",
			expected:  0,
		},
		{
			name:      "no overlap",
			query:     "Portal",
			candidate: "Dota 2",
			expected:  0,
		},
		{
			name:      "partial overlap",
			query:     "Half-Life 2",
			candidate: "Half-Life 2 Episode One",
			expected:  0.5, // 2 shared of 4 unioned words
		},
		{
			name:      "duplicate words count once",
			query:     "the the game",
			candidate: "the game",
			expected:  1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Score(tt.query, tt.candidate), 1e-9)
		})
	}
}

func TestScoreSymmetry(t *testing.T) {
	pairs := [][2]string{
		{"Half-Life 2", "Half-Life 2 Episode One"},
		{"Ведьмак 3", "The Witcher 3"},
		{"Portal", ""},
	}

	for _, pair := range pairs {
		assert.Equal(t, Score(pair[0], pair[1]), Score(pair[1], pair[0]),
			"score(%q,%q) should be symmetric", pair[0], pair[1])
	}
}
