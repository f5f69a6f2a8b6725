package model

import (
	"time"
)

// AnswerLabels are the option labels a question offers, in presentation order.
var AnswerLabels = []string{"A", "B", "C", "D"}

type Question struct {
	ID             uint      `gorm:"primarykey" json:"id"`
	TestID         uint      `json:"testId" gorm:"not null;uniqueIndex:idx_question_test_number"`
	QuestionNumber int       `json:"questionNumber" gorm:"not null;uniqueIndex:idx_question_test_number"`
	QuestionText   string    `json:"questionText" gorm:"type:text;not null"`
	OptionA        string    `json:"optionA" gorm:"type:text;not null"`
	OptionB        string    `json:"optionB" gorm:"type:text;not null"`
	OptionC        string    `json:"optionC" gorm:"type:text;not null"`
	OptionD        string    `json:"optionD" gorm:"type:text;not null"`
	CorrectAnswer  string    `json:"correctAnswer" gorm:"type:varchar(1);not null"`
	Explanation    string    `json:"explanation,omitempty" gorm:"type:text"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
