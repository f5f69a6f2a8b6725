package dto

import "time"

const ActionStart = "start"

type TestActionDTO struct {
	Action string `json:"action" binding:"required"`
}

type SubmittedAnswerDTO struct {
	SelectedAnswer string `json:"selectedAnswer" binding:"required,oneof=A B C D"`
}

// SubmitAttemptDTO keys answers by question id.
type SubmitAttemptDTO struct {
	Answers   map[string]SubmittedAnswerDTO `json:"answers" binding:"required,dive"`
	TimeSpent *int                          `json:"timeSpent" binding:"omitempty,min=0"`
}

type RegisterDTO struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Name     string `json:"name" binding:"required,max=120"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserDTO struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}
