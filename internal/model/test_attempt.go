package model

import (
	"time"

	"gorm.io/datatypes"
)

// AnswerSheet maps a question id (decimal string) to the selected option label.
type AnswerSheet map[string]string

// TestAttempt is the single result row a user holds for a test. The unique
// index on (test_id, user_id) is the conflict target for submission upserts.
type TestAttempt struct {
	ID             uint                            `gorm:"primarykey" json:"id"`
	TestID         uint                            `json:"testId" gorm:"not null;uniqueIndex:idx_attempt_test_user"`
	Test           Test                            `json:"-" gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE;"`
	UserID         uint                            `json:"userId" gorm:"not null;uniqueIndex:idx_attempt_test_user;index"`
	User           User                            `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Answers        datatypes.JSONType[AnswerSheet] `json:"answers"`
	Score          float64                         `json:"score" gorm:"not null;default:0"`
	CorrectCount   int                             `json:"correctCount" gorm:"not null;default:0"`
	TotalQuestions int                             `json:"totalQuestions" gorm:"not null;default:0"`
	TimeSpent      int                             `json:"timeSpent" gorm:"not null;default:0"` // seconds
	IsCompleted    bool                            `json:"isCompleted" gorm:"not null;default:false"`
	CompletedAt    *time.Time                      `json:"completedAt,omitempty"`
	CreatedAt      time.Time                       `json:"createdAt"`
	UpdatedAt      time.Time                       `json:"updatedAt"`
}

func (a *TestAttempt) Sheet() AnswerSheet {
	sheet := a.Answers.Data()
	if sheet == nil {
		return AnswerSheet{}
	}
	return sheet
}
