package models

import "time"

// ProjectSettings holds per-project configuration for the RFQ workflow.
// StructureMode decides whether the byggdel table drives the project
// ("complete_byggdel_table") or the project uses free-form external
// folders ("manual_folders").
type ProjectSettings struct {
	CompanyID string `gorm:"primaryKey;size:64"`
	ProjectID string `gorm:"primaryKey;size:64"`

	StructureMode string `gorm:"size:32;default:complete_byggdel_table"`

	UpdatedAt     time.Time
	UpdatedByUID  string `gorm:"size:64"`
	UpdatedByName string `gorm:"size:128"`
}
