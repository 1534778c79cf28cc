package models

import "time"

// Byggdel is a construction-discipline line item scoped to a project,
// e.g. "84 - VS" for plumbing. Byggdelar are soft-deleted, never removed.
type Byggdel struct {
	ID        string `gorm:"primaryKey;size:32"`
	CompanyID string `gorm:"size:64;not null;index:idx_byggdel_scope"`
	ProjectID string `gorm:"size:64;not null;index:idx_byggdel_scope"`

	Label    string `gorm:"not null"`
	Code     string `gorm:"size:16"` // sort key, e.g. "84"
	Category string `gorm:"size:64"`
	Moment   string `gorm:"size:128"`

	Deleted    bool   `gorm:"default:false;index"`
	FolderPath string `gorm:"size:512"` // set after folder provisioning succeeds

	CreatedAt     time.Time
	UpdatedAt     time.Time
	CreatedByUID  string `gorm:"size:64"`
	CreatedByName string `gorm:"size:128"`
	UpdatedByUID  string `gorm:"size:64"`
	UpdatedByName string `gorm:"size:128"`

	Paket []Paket `gorm:"foreignKey:ByggdelID"`
}
