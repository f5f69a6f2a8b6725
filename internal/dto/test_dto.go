package dto

import "time"

// QuestionForTakingDTO never carries the answer key.
type QuestionForTakingDTO struct {
	ID             string `json:"id"`
	QuestionNumber int    `json:"questionNumber"`
	QuestionText   string `json:"questionText"`
	OptionA        string `json:"optionA"`
	OptionB        string `json:"optionB"`
	OptionC        string `json:"optionC"`
	OptionD        string `json:"optionD"`
}

type TestForTakingDTO struct {
	ID               string                 `json:"id"`
	Title            string                 `json:"title"`
	Description      string                 `json:"description,omitempty"`
	Category         string                 `json:"category"`
	Difficulty       string                 `json:"difficulty"`
	TimeLimit        int                    `json:"timeLimit"`
	TotalQuestions   int                    `json:"totalQuestions"`
	PassingScore     float64                `json:"passingScore"`
	IsPractice       bool                   `json:"isPractice"`
	Questions        []QuestionForTakingDTO `json:"questions"`
	HasActiveAttempt bool                   `json:"hasActiveAttempt"`
	AttemptID        *string                `json:"attemptId,omitempty"`
}

type TestSummaryDTO struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	Category       string   `json:"category"`
	Difficulty     string   `json:"difficulty"`
	TimeLimit      int      `json:"timeLimit"`
	TotalQuestions int      `json:"totalQuestions"`
	PassingScore   float64  `json:"passingScore"`
	IsPractice     bool     `json:"isPractice"`
	Attempted      bool     `json:"attempted"`
	Completed      bool     `json:"completed"`
	LastScore      *float64 `json:"lastScore,omitempty"`
}

type StartAttemptResponseDTO struct {
	AttemptID  string `json:"attemptId"`
	Resumed    bool   `json:"resumed"`
	Completed  bool   `json:"completed"`
	IsPractice bool   `json:"isPractice"`
}

type ScoreResultDTO struct {
	Score          float64 `json:"score"`
	CorrectAnswers int     `json:"correctAnswers"`
	TotalQuestions int     `json:"totalQuestions"`
	TestAttemptID  string  `json:"testAttemptId"`
	Passed         bool    `json:"passed"`
	PassingScore   float64 `json:"passingScore"`
}

type QuestionResultDTO struct {
	ID             string  `json:"id"`
	QuestionNumber int     `json:"questionNumber"`
	QuestionText   string  `json:"questionText"`
	OptionA        string  `json:"optionA"`
	OptionB        string  `json:"optionB"`
	OptionC        string  `json:"optionC"`
	OptionD        string  `json:"optionD"`
	CorrectAnswer  string  `json:"correctAnswer"`
	Explanation    string  `json:"explanation,omitempty"`
	SelectedAnswer *string `json:"selectedAnswer,omitempty"`
	IsCorrect      bool    `json:"isCorrect"`
}

type AttemptResultDTO struct {
	ID             string            `json:"id"`
	Answers        map[string]string `json:"answers"`
	Score          float64           `json:"score"`
	CorrectCount   int               `json:"correctCount"`
	TotalQuestions int               `json:"totalQuestions"`
	TimeSpent      int               `json:"timeSpent"`
	IsCompleted    bool              `json:"isCompleted"`
	Passed         bool              `json:"passed"`
	CompletedAt    *time.Time        `json:"completedAt,omitempty"`
}

type ResultTestDTO struct {
	ID           string  `json:"id"`
	Title        string  `json:"title"`
	Description  string  `json:"description,omitempty"`
	PassingScore float64 `json:"passingScore"`
}

type ResultViewDTO struct {
	Attempt    AttemptResultDTO    `json:"attempt"`
	Test       ResultTestDTO       `json:"test"`
	Questions  []QuestionResultDTO `json:"questions"`
	IsPractice bool                `json:"isPractice"`
}
