// Package byggdel provides the construction-discipline registry.
package byggdel

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/stenvik/anbud/internal/audit"
	"github.com/stenvik/anbud/internal/errs"
	"github.com/stenvik/anbud/internal/models"
	"gorm.io/gorm"
)

// CreateOpts holds parameters for creating a new byggdel.
type CreateOpts struct {
	CompanyID string
	ProjectID string
	Label     string
	Code      string
	Category  string
	Moment    string
}

// GenerateID creates a unique byggdel ID in bd-xxxxxx format (6-char hex).
func GenerateID() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("byggdel: generate ID: %w", err)
	}
	return "bd-" + hex.EncodeToString(b), nil
}

// Create inserts a new byggdel. The label must be non-empty after
// trimming; everything else is optional. Duplicate labels are permitted.
func Create(db *gorm.DB, opts CreateOpts, actor models.Actor) (*models.Byggdel, error) {
	label := strings.TrimSpace(opts.Label)
	if label == "" {
		return nil, errs.Validation("label", "label is required")
	}
	if opts.CompanyID == "" || opts.ProjectID == "" {
		return nil, errs.Validation("scope", "companyId and projectId are required")
	}

	id, err := GenerateID()
	if err != nil {
		return nil, err
	}

	bd := models.Byggdel{
		ID:            id,
		CompanyID:     opts.CompanyID,
		ProjectID:     opts.ProjectID,
		Label:         label,
		Code:          strings.TrimSpace(opts.Code),
		Category:      strings.TrimSpace(opts.Category),
		Moment:        strings.TrimSpace(opts.Moment),
		CreatedByUID:  actor.UID,
		CreatedByName: actor.Name,
		UpdatedByUID:  actor.UID,
		UpdatedByName: actor.Name,
	}

	if err := db.Create(&bd).Error; err != nil {
		return nil, fmt.Errorf("byggdel: create: %w", err)
	}

	audit.Record(db, audit.Entry{
		CompanyID:  opts.CompanyID,
		ProjectID:  opts.ProjectID,
		EntityKind: "byggdel",
		EntityID:   bd.ID,
		Action:     "create",
		Detail:     label,
	}, actor)

	return &bd, nil
}

// SoftDelete marks a byggdel as deleted. Related paket rows are left
// untouched. Deleting an id that does not exist is a silent no-op.
func SoftDelete(db *gorm.DB, companyID, projectID, id string, actor models.Actor) error {
	if id == "" {
		return errs.Validation("id", "byggdel id is required")
	}

	res := db.Model(&models.Byggdel{}).
		Where("id = ? AND company_id = ? AND project_id = ?", id, companyID, projectID).
		Updates(map[string]interface{}{
			"deleted":         true,
			"updated_at":      time.Now(),
			"updated_by_uid":  actor.UID,
			"updated_by_name": actor.Name,
		})
	if res.Error != nil {
		return fmt.Errorf("byggdel: soft delete %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil
	}

	audit.Record(db, audit.Entry{
		CompanyID:  companyID,
		ProjectID:  projectID,
		EntityKind: "byggdel",
		EntityID:   id,
		Action:     "delete",
	}, actor)

	return nil
}

// List returns the project's byggdelar ordered by creation time.
// Soft-deleted rows are excluded unless includeDeleted is set.
func List(db *gorm.DB, companyID, projectID string, includeDeleted bool) ([]models.Byggdel, error) {
	q := db.Model(&models.Byggdel{}).
		Where("company_id = ? AND project_id = ?", companyID, projectID)
	if !includeDeleted {
		q = q.Where("deleted = ?", false)
	}

	var items []models.Byggdel
	if err := q.Order("created_at ASC, id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("byggdel: list: %w", err)
	}
	return items, nil
}

// Get retrieves a byggdel by ID.
func Get(db *gorm.DB, companyID, projectID, id string) (*models.Byggdel, error) {
	var bd models.Byggdel
	err := db.Where("id = ? AND company_id = ? AND project_id = ?", id, companyID, projectID).
		First(&bd).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("byggdel: not found: %s", id)
		}
		return nil, fmt.Errorf("byggdel: get %s: %w", id, err)
	}
	return &bd, nil
}

// SetFolderPath records a provisioned folder path on a byggdel. Called
// by the provisioning worker after a successful ensure; never by the
// primary CRUD flow.
func SetFolderPath(db *gorm.DB, id, path string) error {
	if id == "" {
		return errs.Validation("id", "byggdel id is required")
	}
	err := db.Model(&models.Byggdel{}).Where("id = ?", id).
		Update("folder_path", path).Error
	if err != nil {
		return fmt.Errorf("byggdel: set folder path %s: %w", id, err)
	}
	return nil
}
