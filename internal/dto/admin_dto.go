package dto

import "time"

type QuestionCreateDTO struct {
	QuestionNumber int    `json:"questionNumber" binding:"required,min=1"`
	QuestionText   string `json:"questionText" binding:"required"`
	OptionA        string `json:"optionA" binding:"required"`
	OptionB        string `json:"optionB" binding:"required"`
	OptionC        string `json:"optionC" binding:"required"`
	OptionD        string `json:"optionD" binding:"required"`
	CorrectAnswer  string `json:"correctAnswer" binding:"required,oneof=A B C D"`
	Explanation    string `json:"explanation"`
}

type QuestionUpdateDTO struct {
	QuestionNumber *int    `json:"questionNumber" binding:"omitempty,min=1"`
	QuestionText   *string `json:"questionText" binding:"omitempty,min=1"`
	OptionA        *string `json:"optionA" binding:"omitempty,min=1"`
	OptionB        *string `json:"optionB" binding:"omitempty,min=1"`
	OptionC        *string `json:"optionC" binding:"omitempty,min=1"`
	OptionD        *string `json:"optionD" binding:"omitempty,min=1"`
	CorrectAnswer  *string `json:"correctAnswer" binding:"omitempty,oneof=A B C D"`
	Explanation    *string `json:"explanation"`
}

type TestCreateDTO struct {
	Title        string              `json:"title" binding:"required,max=255"`
	Description  string              `json:"description"`
	Category     string              `json:"category" binding:"required"`
	Difficulty   string              `json:"difficulty" binding:"required,oneof=EASY MEDIUM HARD"`
	TimeLimit    int                 `json:"timeLimit" binding:"required,min=1"`
	PassingScore float64             `json:"passingScore" binding:"min=0,max=100"`
	IsPublished  bool                `json:"isPublished"`
	Questions    []QuestionCreateDTO `json:"questions" binding:"omitempty,dive"`
}

type TestUpdateDTO struct {
	Title        *string  `json:"title" binding:"omitempty,min=1,max=255"`
	Description  *string  `json:"description"`
	Category     *string  `json:"category" binding:"omitempty,min=1"`
	Difficulty   *string  `json:"difficulty" binding:"omitempty,oneof=EASY MEDIUM HARD"`
	TimeLimit    *int     `json:"timeLimit" binding:"omitempty,min=1"`
	PassingScore *float64 `json:"passingScore" binding:"omitempty,min=0,max=100"`
}

type PublishDTO struct {
	IsPublished *bool `json:"isPublished" binding:"required"`
}

type AdminQuestionDTO struct {
	ID             uint   `json:"id"`
	TestID         uint   `json:"testId"`
	QuestionNumber int    `json:"questionNumber"`
	QuestionText   string `json:"questionText"`
	OptionA        string `json:"optionA"`
	OptionB        string `json:"optionB"`
	OptionC        string `json:"optionC"`
	OptionD        string `json:"optionD"`
	CorrectAnswer  string `json:"correctAnswer"`
	Explanation    string `json:"explanation,omitempty"`
}

type AdminTestDTO struct {
	ID             uint               `json:"id"`
	Title          string             `json:"title"`
	Description    string             `json:"description,omitempty"`
	Category       string             `json:"category"`
	Difficulty     string             `json:"difficulty"`
	TimeLimit      int                `json:"timeLimit"`
	TotalQuestions int                `json:"totalQuestions"`
	PassingScore   float64            `json:"passingScore"`
	IsPublished    bool               `json:"isPublished"`
	CreatedByID    *uint              `json:"createdById,omitempty"`
	Questions      []AdminQuestionDTO `json:"questions,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
}

type ExplanationDraftDTO struct {
	QuestionID  uint   `json:"questionId"`
	Explanation string `json:"explanation"`
	Saved       bool   `json:"saved"`
}

type UpdateRoleDTO struct {
	Role string `json:"role" binding:"required,oneof=USER ADMIN OWNER"`
}

type MaintenanceDTO struct {
	Enabled bool   `json:"enabled"`
	Message string `json:"message" binding:"max=500"`
}

type SiteStatusDTO struct {
	Maintenance bool   `json:"maintenance"`
	Message     string `json:"message,omitempty"`
}
