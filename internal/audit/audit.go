// Package audit appends change records for every mutating service call.
package audit

import (
	"fmt"

	"github.com/stenvik/anbud/internal/models"
	"gorm.io/gorm"
)

// Entry describes one audited change.
type Entry struct {
	CompanyID  string
	ProjectID  string
	EntityKind string
	EntityID   string
	Action     string
	Detail     string
}

// Record appends an audit entry. Auditing is best-effort: a failed
// append never fails the mutation that triggered it.
func Record(db *gorm.DB, e Entry, actor models.Actor) {
	row := models.AuditEntry{
		CompanyID:  e.CompanyID,
		ProjectID:  e.ProjectID,
		EntityKind: e.EntityKind,
		EntityID:   e.EntityID,
		Action:     e.Action,
		Detail:     e.Detail,
		ActorUID:   actor.UID,
		ActorName:  actor.Name,
	}
	db.Create(&row)
}

// Recent returns the newest entries for a project, newest first.
func Recent(db *gorm.DB, companyID, projectID string, limit int) ([]models.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []models.AuditEntry
	err := db.Where("company_id = ? AND project_id = ?", companyID, projectID).
		Order("id DESC").Limit(limit).Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("audit: recent: %w", err)
	}
	return entries, nil
}
