package model

import (
	"time"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

type Test struct {
	ID             uint       `gorm:"primarykey" json:"id"`
	Title          string     `json:"title" gorm:"not null"`
	Description    string     `json:"description,omitempty" gorm:"type:text"`
	Category       string     `json:"category" gorm:"not null;index"`
	Difficulty     Difficulty `json:"difficulty" gorm:"type:varchar(16);not null;default:'MEDIUM'"`
	TimeLimit      int        `json:"timeLimit" gorm:"not null"` // minutes
	TotalQuestions int        `json:"totalQuestions" gorm:"not null;default:0"`
	PassingScore   float64    `json:"passingScore" gorm:"not null;default:50"`
	IsPublished    bool       `json:"isPublished" gorm:"not null;default:false;index"`
	CreatedByID    *uint      `json:"createdById,omitempty"`
	CreatedBy      *User      `json:"-" gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL;"`
	Questions      []Question `json:"questions,omitempty" gorm:"foreignKey:TestID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}
