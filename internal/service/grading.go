package service

import (
	"math"
)

// GradableQuestion is the part of a question grading needs.
type GradableQuestion struct {
	ID            string
	CorrectAnswer string
}

type Grading struct {
	CorrectCount   int
	TotalQuestions int
	Score          float64 // percentage, unrounded
	Passed         bool
	Correct        map[string]bool
}

// Grade checks every question of a test once against the submitted labels.
// Answers for ids outside questions are ignored and omitted questions are
// simply not credited.
func Grade(questions []GradableQuestion, answers map[string]string, passingScore float64) Grading {
	g := Grading{
		TotalQuestions: len(questions),
		Correct:        make(map[string]bool, len(questions)),
	}
	for _, q := range questions {
		selected, ok := answers[q.ID]
		if ok && selected == q.CorrectAnswer {
			g.CorrectCount++
			g.Correct[q.ID] = true
		}
	}
	if g.TotalQuestions > 0 {
		g.Score = 100 * float64(g.CorrectCount) / float64(g.TotalQuestions)
	}
	g.Passed = g.Score >= passingScore
	return g
}

// RoundScore rounds a percentage to two decimal places.
func RoundScore(score float64) float64 {
	return math.Round(score*100) / 100
}
