package model

import "time"

const (
	SettingMaintenanceEnabled = "maintenance.enabled"
	SettingMaintenanceMessage = "maintenance.message"
)

type SiteSetting struct {
	Key       string    `gorm:"primarykey;size:128" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}
