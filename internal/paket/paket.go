// Package paket provides the RFQ package store and its status workflow.
//
// Status values are advisory state shared with mobile clients that may
// be running older builds, so unknown values are coerced to the default
// instead of rejected, and the store deliberately allows any status
// write, including regressions (Besvarad back to Ej skickad).
package paket

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

// Status wire values. Exact strings, shared with deployed clients.
const (
	StatusEjSkickad = "Ej skickad"
	StatusSkickad   = "Skickad"
	StatusBesvarad  = "Besvarad"
)

// Section wire values. A paket lives under either the förfrågningar or
// the offerter subtree of a project.
const (
	SectionForfragningar = "forfragningar"
	SectionOfferter      = "offerter"
)

// Normalize coerces an unknown status to StatusEjSkickad. Known values
// pass through unchanged.
func Normalize(status string) string {
	switch status {
	case StatusEjSkickad, StatusSkickad, StatusBesvarad:
		return status
	default:
		return StatusEjSkickad
	}
}

// NormalizeSection coerces an unknown section to SectionForfragningar.
func NormalizeSection(section string) string {
	switch section {
	case SectionForfragningar, SectionOfferter:
		return section
	default:
		return SectionForfragningar
	}
}

// CreateOpts holds parameters for creating a new paket.
type CreateOpts struct {
	CompanyID    string
	ProjectID    string
	Section      string
	ByggdelID    string
	ByggdelLabel string
	SupplierID   string
	SupplierName string
	Status       string
}

// ListFilters holds optional filters for listing paket.
type ListFilters struct {
	Section        string
	ByggdelID      string
	Status         string
	IncludeDeleted bool
}

// GenerateID creates a unique paket ID in pkt-xxxxxx format (6-char hex).
func GenerateID() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("paket: generate ID: %w", err)
	}
	return "pkt-" + hex.EncodeToString(b), nil
}

// Create inserts a new paket. ByggdelID and ByggdelLabel are required,
// and at least one of SupplierName or SupplierID must be present. An
// unknown status is silently coerced to Ej skickad so the write is
// always well-formed.
func Create(db *gorm.DB, opts CreateOpts, actor models.Actor) (*models.Paket, error) {
	if opts.CompanyID == "" || opts.ProjectID == "" {
		return nil, errs.Validation("scope", "companyId and projectId are required")
	}
	if opts.ByggdelID == "" {
		return nil, errs.Validation("byggdelId", "byggdelId is required")
	}
	if strings.TrimSpace(opts.ByggdelLabel) == "" {
		return nil, errs.Validation("byggdelLabel", "byggdelLabel is required")
	}
	name := strings.TrimSpace(opts.SupplierName)
	if name == "" && opts.SupplierID == "" {
		return nil, errs.Validation("supplier", "supplierName or supplierId is required")
	}

	id, err := GenerateID()
	if err != nil {
		return nil, err
	}

	p := models.Paket{
		ID:            id,
		CompanyID:     opts.CompanyID,
		ProjectID:     opts.ProjectID,
		Section:       NormalizeSection(opts.Section),
		ByggdelID:     opts.ByggdelID,
		ByggdelLabel:  strings.TrimSpace(opts.ByggdelLabel),
		SupplierName:  name,
		Status:        Normalize(opts.Status),
		CreatedByUID:  actor.UID,
		CreatedByName: actor.Name,
		UpdatedByUID:  actor.UID,
		UpdatedByName: actor.Name,
	}
	if opts.SupplierID != "" {
		p.SupplierID = &opts.SupplierID
	}

	if err := db.Create(&p).Error; err != nil {
		return nil, fmt.Errorf("paket: create: %w", err)
	}

	audit.Record(db, audit.Entry{
		CompanyID:  opts.CompanyID,
		ProjectID:  opts.ProjectID,
		EntityKind: "paket",
		EntityID:   p.ID,
		Action:     "create",
		Detail:     p.ByggdelLabel + " / " + p.SupplierName,
	}, actor)

	return &p, nil
}

// allowedPatchColumns lists the columns callers may patch directly.
var allowedPatchColumns = map[string]bool{
	"status":        true,
	"sent_at":       true,
	"answered_at":   true,
	"supplier_name": true,
	"supplier_id":   true,
	"byggdel_label": true,
	"folder_path":   true,
	"section":       true,
	"deleted":       true,
}

// Update patches a paket and stamps the updater. If the patch carries a
// status, unknown values are coerced to Ej skickad. Entering Skickad
// auto-stamps sent_at (and Besvarad answered_at) only when the patch
// does not supply the timestamp itself and the stored value is still
// nil, so repeated transitions into the same status never move an
// existing stamp. Status regressions are allowed.
func Update(db *gorm.DB, companyID, projectID, id string, patch map[string]interface{}, actor models.Actor) (*models.Paket, error) {
	if id == "" {
		return nil, errs.Validation("id", "paket id is required")
	}

	var p models.Paket
	err := db.Where("id = ? AND company_id = ? AND project_id = ?", id, companyID, projectID).
		First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("paket: not found: %s", id)
		}
		return nil, fmt.Errorf("paket: get %s for update: %w", id, err)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"updated_at":      now,
		"updated_by_uid":  actor.UID,
		"updated_by_name": actor.Name,
	}
	for k, v := range patch {
		if allowedPatchColumns[k] {
			updates[k] = v
		}
	}

	if raw, ok := patch["status"]; ok {
		status, _ := raw.(string)
		status = Normalize(status)
		updates["status"] = status

		if _, has := patch["sent_at"]; status == StatusSkickad && !has && p.SentAt == nil {
			updates["sent_at"] = now
		}
		if _, has := patch["answered_at"]; status == StatusBesvarad && !has && p.AnsweredAt == nil {
			updates["answered_at"] = now
		}
	}
	if raw, ok := patch["section"]; ok {
		section, _ := raw.(string)
		updates["section"] = NormalizeSection(section)
	}

	if err := db.Model(&p).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("paket: update %s: %w", id, err)
	}

	// Re-read so callers see the stored row, not the patch.
	if err := db.Where("id = ?", id).First(&p).Error; err != nil {
		return nil, fmt.Errorf("paket: reload %s: %w", id, err)
	}

	audit.Record(db, audit.Entry{
		CompanyID:  companyID,
		ProjectID:  projectID,
		EntityKind: "paket",
		EntityID:   id,
		Action:     "update",
		Detail:     p.Status,
	}, actor)

	return &p, nil
}

// SoftDelete marks a paket as deleted. Notes are kept. Deleting an id
// that does not exist is a silent no-op.
func SoftDelete(db *gorm.DB, companyID, projectID, id string, actor models.Actor) error {
	if id == "" {
		return errs.Validation("id", "paket id is required")
	}

	res := db.Model(&models.Paket{}).
		Where("id = ? AND company_id = ? AND project_id = ?", id, companyID, projectID).
		Updates(map[string]interface{}{
			"deleted":         true,
			"updated_at":      time.Now(),
			"updated_by_uid":  actor.UID,
			"updated_by_name": actor.Name,
		})
	if res.Error != nil {
		return fmt.Errorf("paket: soft delete %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil
	}

	audit.Record(db, audit.Entry{
		CompanyID:  companyID,
		ProjectID:  projectID,
		EntityKind: "paket",
		EntityID:   id,
		Action:     "delete",
	}, actor)

	return nil
}

// Get retrieves a paket by ID.
func Get(db *gorm.DB, companyID, projectID, id string) (*models.Paket, error) {
	var p models.Paket
	err := db.Where("id = ? AND company_id = ? AND project_id = ?", id, companyID, projectID).
		First(&p).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("paket: not found: %s", id)
		}
		return nil, fmt.Errorf("paket: get %s: %w", id, err)
	}
	return &p, nil
}

// List returns paket matching the filters, ordered by creation time.
func List(db *gorm.DB, companyID, projectID string, filters ListFilters) ([]models.Paket, error) {
	q := db.Model(&models.Paket{}).
		Where("company_id = ? AND project_id = ?", companyID, projectID)
	if filters.Section != "" {
		q = q.Where("section = ?", NormalizeSection(filters.Section))
	}
	if filters.ByggdelID != "" {
		q = q.Where("byggdel_id = ?", filters.ByggdelID)
	}
	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}
	if !filters.IncludeDeleted {
		q = q.Where("deleted = ?", false)
	}

	var items []models.Paket
	if err := q.Order("created_at ASC, id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("paket: list: %w", err)
	}
	return items, nil
}

// SupplierExists reports whether an undeleted paket for the byggdel
// already names this supplier (case-insensitive). This is an advisory
// pre-check only: two callers racing past it will both create their
// paket, the same read-then-write window the mobile clients have.
func SupplierExists(db *gorm.DB, companyID, projectID, byggdelID, supplierName string) (bool, error) {
	var count int64
	err := db.Model(&models.Paket{}).
		Where("company_id = ? AND project_id = ? AND byggdel_id = ? AND deleted = ?",
			companyID, projectID, byggdelID, false).
		Where("LOWER(supplier_name) = LOWER(?)", strings.TrimSpace(supplierName)).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("paket: supplier exists: %w", err)
	}
	return count > 0, nil
}

// SetFolderPath records a provisioned folder path. Called by the
// provisioning worker, never by the primary CRUD flow.
func SetFolderPath(db *gorm.DB, id, path string) error {
	if id == "" {
		return errs.Validation("id", "paket id is required")
	}
	err := db.Model(&models.Paket{}).Where("id = ?", id).
		Update("folder_path", path).Error
	if err != nil {
		return fmt.Errorf("paket: set folder path %s: %w", id, err)
	}
	return nil
}

// StatusCount holds one byggdel/status bucket for project summaries.
type StatusCount struct {
	ByggdelLabel string
	Status       string
	Count        int64
}

// CountByStatus returns per-byggdel paket counts grouped by status.
func CountByStatus(db *gorm.DB, companyID, projectID string) ([]StatusCount, error) {
	var counts []StatusCount
	err := db.Model(&models.Paket{}).
		Select("byggdel_label, status, COUNT(*) as count").
		Where("company_id = ? AND project_id = ? AND deleted = ?", companyID, projectID, false).
		Group("byggdel_label, status").
		Order("byggdel_label ASC, status ASC").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("paket: count by status: %w", err)
	}
	return counts, nil
}
