package skills

import (
	"testing"

	"github.com/jonathan/internship-wizard/internal/selection"
	"github.com/stretchr/testify/assert"
)

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name     string
		owned    []string
		required []string
		matching []string
		missing  []string
		percent  int
	}{
		{
			name:     "half match",
			owned:    []string{"A", "B"},
			required: []string{"A", "C"},
			matching: []string{"A"},
			missing:  []string{"C"},
			percent:  50,
		},
		{
			name:     "nothing required",
			owned:    []string{},
			required: []string{},
			matching: []string{},
			missing:  []string{},
			percent:  0,
		},
		{
			name:     "nothing required but skills owned",
			owned:    []string{"Go"},
			required: nil,
			matching: []string{},
			missing:  []string{},
			percent:  0,
		},
		{
			name:     "keeps required order",
			owned:    []string{"Excel", "Research"},
			required: []string{"Statistics", "Research", "Data Analysis", "Excel"},
			matching: []string{"Research", "Excel"},
			missing:  []string{"Statistics", "Data Analysis"},
			percent:  50,
		},
		{
			name:     "rounds to nearest",
			owned:    []string{"A"},
			required: []string{"A", "B", "C"},
			matching: []string{"A"},
			missing:  []string{"B", "C"},
			percent:  33,
		},
		{
			name:     "rounds half up",
			owned:    []string{"A", "B", "C", "D", "E"},
			required: []string{"A", "B", "C", "D", "E", "F", "G", "H"},
			matching: []string{"A", "B", "C", "D", "E"},
			missing:  []string{"F", "G", "H"},
			percent:  63,
		},
		{
			name:     "duplicate requirement counted once",
			owned:    []string{"A"},
			required: []string{"A", "A", "B"},
			matching: []string{"A"},
			missing:  []string{"B"},
			percent:  50,
		},
		{
			name:     "case sensitive",
			owned:    []string{"python"},
			required: []string{"Python"},
			matching: []string{},
			missing:  []string{"Python"},
			percent:  0,
		},
		{
			name:     "full match",
			owned:    []string{"X", "Y"},
			required: []string{"Y", "X"},
			matching: []string{"Y", "X"},
			missing:  []string{},
			percent:  100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(selection.New(tt.owned...), tt.required)
			assert.Equal(t, tt.matching, got.MatchingSkills)
			assert.Equal(t, tt.missing, got.MissingSkills)
			assert.Equal(t, tt.percent, got.MatchPercentage)
		})
	}
}

func TestAnalyze_NilOwned(t *testing.T) {
	got := Analyze(nil, []string{"A"})
	assert.Equal(t, []string{"A"}, got.MissingSkills)
	assert.Equal(t, 0, got.MatchPercentage)
}

func TestMissing(t *testing.T) {
	assert.Equal(t, []string{"C"}, Missing(selection.New("A", "B"), []string{"A", "C"}))
	assert.Empty(t, Missing(selection.New("A"), []string{"A"}))
}
