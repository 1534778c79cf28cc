package models

import "time"

// Paket tracks a single supplier's RFQ status against one byggdel.
// Status wire values are the exact Swedish strings the mobile clients
// already store: "Ej skickad", "Skickad", "Besvarad".
type Paket struct {
	ID        string `gorm:"primaryKey;size:32"`
	CompanyID string `gorm:"size:64;not null;index:idx_paket_scope"`
	ProjectID string `gorm:"size:64;not null;index:idx_paket_scope"`
	Section   string `gorm:"size:16;default:forfragningar;index"` // forfragningar or offerter

	ByggdelID    string  `gorm:"size:32;not null;index"`
	ByggdelLabel string  `gorm:"size:256"` // denormalized for list views
	SupplierID   *string `gorm:"size:32"`
	SupplierName string  `gorm:"size:128"`

	Status     string `gorm:"size:16;default:'Ej skickad';index"`
	FolderPath string `gorm:"size:512"`

	SentAt     *time.Time
	AnsweredAt *time.Time
	Deleted    bool `gorm:"default:false;index"`

	CreatedAt     time.Time
	UpdatedAt     time.Time
	CreatedByUID  string `gorm:"size:64"`
	CreatedByName string `gorm:"size:128"`
	UpdatedByUID  string `gorm:"size:64"`
	UpdatedByName string `gorm:"size:128"`

	Byggdel  *Byggdel    `gorm:"foreignKey:ByggdelID"`
	Supplier *Supplier   `gorm:"foreignKey:SupplierID"`
	Notes    []PaketNote `gorm:"foreignKey:PaketID"`
}

// PaketNote is an append-only comment on a paket. Notes are never edited
// or deleted.
type PaketNote struct {
	ID      uint   `gorm:"primaryKey;autoIncrement"`
	PaketID string `gorm:"size:32;not null;index"`
	Text    string `gorm:"type:text;not null"`

	CreatedAt     time.Time
	CreatedByUID  string `gorm:"size:64"`
	CreatedByName string `gorm:"size:128"`

	Paket Paket `gorm:"foreignKey:PaketID"`
}
