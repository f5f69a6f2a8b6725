package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGrade(t *testing.T) {
	twoQuestions := []GradableQuestion{
		{ID: "1", CorrectAnswer: "A"},
		{ID: "2", CorrectAnswer: "C"},
	}

	tests := []struct {
		name         string
		questions    []GradableQuestion
		answers      map[string]string
		passingScore float64
		wantCorrect  int
		wantScore    float64
		wantPassed   bool
	}{
		{
			name:         "half correct passes at boundary",
			questions:    twoQuestions,
			answers:      map[string]string{"1": "A", "2": "B"},
			passingScore: 50,
			wantCorrect:  1,
			wantScore:    50,
			wantPassed:   true,
		},
		{
			name:         "none correct",
			questions:    twoQuestions,
			answers:      map[string]string{"1": "B", "2": "B"},
			passingScore: 50,
			wantCorrect:  0,
			wantScore:    0,
			wantPassed:   false,
		},
		{
			name:         "all correct",
			questions:    twoQuestions,
			answers:      map[string]string{"1": "A", "2": "C"},
			passingScore: 100,
			wantCorrect:  2,
			wantScore:    100,
			wantPassed:   true,
		},
		{
			name:         "unknown question ids are ignored",
			questions:    twoQuestions,
			answers:      map[string]string{"1": "A", "99": "A", "100": "C"},
			passingScore: 60,
			wantCorrect:  1,
			wantScore:    50,
			wantPassed:   false,
		},
		{
			name:         "omitted answers are not credited",
			questions:    twoQuestions,
			answers:      map[string]string{},
			passingScore: 0,
			wantCorrect:  0,
			wantScore:    0,
			wantPassed:   true,
		},
		{
			name:         "comparison is exact",
			questions:    twoQuestions,
			answers:      map[string]string{"1": "a", "2": " C"},
			passingScore: 50,
			wantCorrect:  0,
			wantScore:    0,
			wantPassed:   false,
		},
		{
			name:         "no questions scores zero",
			questions:    nil,
			answers:      map[string]string{"1": "A"},
			passingScore: 50,
			wantCorrect:  0,
			wantScore:    0,
			wantPassed:   false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Grade(tt.questions, tt.answers, tt.passingScore)
			assert.Equal(t, tt.wantCorrect, g.CorrectCount)
			assert.Equal(t, len(tt.questions), g.TotalQuestions)
			assert.LessOrEqual(t, g.CorrectCount, g.TotalQuestions)
			assert.InDelta(t, tt.wantScore, g.Score, 1e-9)
			assert.Equal(t, tt.wantPassed, g.Passed)
		})
	}
}

func TestGradeIsDeterministic(t *testing.T) {
	qs := []GradableQuestion{{ID: "1", CorrectAnswer: "B"}, {ID: "2", CorrectAnswer: "D"}, {ID: "3", CorrectAnswer: "A"}}
	answers := map[string]string{"1": "B", "2": "A", "3": "A"}

	first := Grade(qs, answers, 60)
	second := Grade(qs, answers, 60)
	assert.Equal(t, first, second)
}

func TestRoundScore(t *testing.T) {
	assert.Equal(t, 33.33, RoundScore(100.0/3))
	assert.Equal(t, 66.67, RoundScore(200.0/3))
	assert.Equal(t, 50.0, RoundScore(50))
	assert.Equal(t, 0.0, RoundScore(0))
}
