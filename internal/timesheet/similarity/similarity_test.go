package similarity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/clockwerk/clockwerk-backend/internal/timesheet/similarity"
)

func TestEditDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"kitten", "sitting", 3},
		{"kitten", "kitten", 0},
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"flaw", "lawn", 2},
		{"Sprint Review", "sprint review", 0}, // case-insensitive
		{"café", "cafe", 1},                   // multibyte runes count as one edit
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, similarity.EditDistance(tt.a, tt.b), "EditDistance(%q, %q)", tt.a, tt.b)
	}
}

func TestEditDistance_Symmetric(t *testing.T) {
	pairs := [][2]string{
		{"standup", "stand-up"},
		{"review", "rework"},
		{"a", "abcdef"},
	}
	for _, p := range pairs {
		assert.Equal(t,
			similarity.EditDistance(p[0], p[1]),
			similarity.EditDistance(p[1], p[0]),
		)
	}
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity.Similarity("kitten", "kitten"))
	assert.InDelta(t, 0.667, similarity.Similarity("abc", "abd"), 0.001)
	assert.InDelta(t, 4.0/7.0, similarity.Similarity("kitten", "sitting"), 0.001)
}

func TestSimilarity_EmptyInputs(t *testing.T) {
	// Empty input always scores 0, including two empty strings. This is
	// deliberately asymmetric with EditDistance("", "") == 0.
	assert.Equal(t, 0.0, similarity.Similarity("", ""))
	assert.Equal(t, 0.0, similarity.Similarity("task", ""))
	assert.Equal(t, 0.0, similarity.Similarity("", "task"))
}

func TestSimilarity_Range(t *testing.T) {
	pairs := [][2]string{
		{"completely", "different"},
		{"x", "yyyyyyyyyy"},
		{"daily standup", "daily stand-up"},
	}
	for _, p := range pairs {
		s := similarity.Similarity(p[0], p[1])
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}
