package models

import "time"

// Supplier is a company-level supplier record backing the optional
// supplier reference on a paket. Packets may also carry a free-form
// supplier name with no registry entry.
type Supplier struct {
	ID        string `gorm:"primaryKey;size:32"`
	CompanyID string `gorm:"size:64;not null;index"`

	Name         string `gorm:"size:128;not null"`
	OrgNumber    string `gorm:"size:16"`
	ContactName  string `gorm:"size:128"`
	ContactEmail string `gorm:"size:128"`

	Deleted   bool `gorm:"default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
