package model

import (
	"time"
)

type DocumentKind string

const (
	KindNote    DocumentKind = "NOTE"
	KindBareAct DocumentKind = "BARE_ACT"
)

// Document is a stored PDF. Notes and bare acts share the table; ActNumber and
// Year are only set for bare acts.
type Document struct {
	ID           uint         `gorm:"primarykey" json:"id"`
	Kind         DocumentKind `json:"kind" gorm:"type:varchar(16);not null;index"`
	Title        string       `json:"title" gorm:"not null"`
	Description  string       `json:"description,omitempty" gorm:"type:text"`
	Category     string       `json:"category,omitempty" gorm:"index"`
	ActNumber    string       `json:"actNumber,omitempty"`
	Year         int          `json:"year,omitempty"`
	FileName     string       `json:"fileName" gorm:"not null"`
	StorageKey   string       `json:"-" gorm:"not null;uniqueIndex"`
	FileSize     int64        `json:"fileSize"`
	IsPublished  bool         `json:"isPublished" gorm:"not null;default:true"`
	UploadedByID *uint        `json:"uploadedById,omitempty"`
	UploadedBy   *User        `json:"-" gorm:"foreignKey:UploadedByID;constraint:OnDelete:SET NULL;"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}
