// Package settings manages per-project RFQ workflow configuration.
package settings

import (
	"fmt"

	"github.com/stenvik/anbud/internal/audit"
	"github.com/stenvik/anbud/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Structure mode wire values.
const (
	ModeCompleteByggdelTable = "complete_byggdel_table"
	ModeManualFolders        = "manual_folders"
)

// NormalizeMode coerces an unknown structure mode to the byggdel-table
// default. Mode is advisory state tolerant of client skew, so bad
// values never error.
func NormalizeMode(mode string) string {
	switch mode {
	case ModeCompleteByggdelTable, ModeManualFolders:
		return mode
	default:
		return ModeCompleteByggdelTable
	}
}

// SetStructureMode persists the project's structure mode. The upsert
// only touches the mode and stamp columns, so sibling settings survive.
func SetStructureMode(db *gorm.DB, companyID, projectID, mode string, actor models.Actor) error {
	row := models.ProjectSettings{
		CompanyID:     companyID,
		ProjectID:     projectID,
		StructureMode: NormalizeMode(mode),
		UpdatedByUID:  actor.UID,
		UpdatedByName: actor.Name,
	}

	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "company_id"}, {Name: "project_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"structure_mode", "updated_at", "updated_by_uid", "updated_by_name"}),
	}).Create(&row)
	if res.Error != nil {
		return fmt.Errorf("settings: set structure mode: %w", res.Error)
	}

	audit.Record(db, audit.Entry{
		CompanyID:  companyID,
		ProjectID:  projectID,
		EntityKind: "settings",
		EntityID:   projectID,
		Action:     "update",
		Detail:     row.StructureMode,
	}, actor)

	return nil
}

// Get returns the project's settings, falling back to defaults when no
// row exists yet.
func Get(db *gorm.DB, companyID, projectID string) (*models.ProjectSettings, error) {
	var row models.ProjectSettings
	err := db.Where("company_id = ? AND project_id = ?", companyID, projectID).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &models.ProjectSettings{
				CompanyID:     companyID,
				ProjectID:     projectID,
				StructureMode: ModeCompleteByggdelTable,
			}, nil
		}
		return nil, fmt.Errorf("settings: get: %w", err)
	}
	return &row, nil
}
