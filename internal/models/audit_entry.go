package models

import "time"

// AuditEntry records who changed what. Every mutating service call
// appends one row.
type AuditEntry struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	CompanyID string `gorm:"size:64;index:idx_audit_scope"`
	ProjectID string `gorm:"size:64;index:idx_audit_scope"`

	EntityKind string `gorm:"size:16;index"` // byggdel, paket, note, settings, supplier
	EntityID   string `gorm:"size:32;index"`
	Action     string `gorm:"size:16"` // create, update, delete
	Detail     string `gorm:"type:text"`

	ActorUID  string `gorm:"size:64"`
	ActorName string `gorm:"size:128"`
	CreatedAt time.Time
}
