package dto

import "time"

// DocumentFormDTO is bound from the multipart fields of an upload.
type DocumentFormDTO struct {
	Title       string `form:"title" binding:"required,max=255"`
	Description string `form:"description"`
	Category    string `form:"category"`
	ActNumber   string `form:"actNumber"`
	Year        int    `form:"year" binding:"omitempty,min=1800,max=2100"`
	IsPublished *bool  `form:"isPublished"`
}

type DocumentUpdateDTO struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	ActNumber   *string `json:"actNumber"`
	Year        *int    `json:"year" binding:"omitempty,min=1800,max=2100"`
	IsPublished *bool   `json:"isPublished"`
}

type DocumentDTO struct {
	ID          uint      `json:"id"`
	Kind        string    `json:"kind"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	ActNumber   string    `json:"actNumber,omitempty"`
	Year        int       `json:"year,omitempty"`
	FileName    string    `json:"fileName"`
	FileSize    int64     `json:"fileSize"`
	IsPublished bool      `json:"isPublished"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
