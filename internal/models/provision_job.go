package models

import "time"

// ProvisionJob queues a best-effort folder-provisioning attempt for a
// byggdel or paket that has no folder path yet. The sweep retries
// pending jobs; the primary CRUD flow never waits on them.
type ProvisionJob struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	CompanyID string `gorm:"size:64;index"`
	ProjectID string `gorm:"size:64;index"`

	EntityKind string `gorm:"size:16;not null"` // byggdel or paket
	EntityID   string `gorm:"size:32;not null;index"`
	Path       string `gorm:"size:512;not null"`

	Status    string `gorm:"size:16;default:pending;index"` // pending, done, failed
	Attempts  int    `gorm:"default:0"`
	LastError string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
