// Package supplier provides the company-level supplier registry.
package supplier

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/stenvik/anbud/internal/errs"
	"github.com/stenvik/anbud/internal/models"
	"gorm.io/gorm"
)

// CreateOpts holds parameters for registering a supplier.
type CreateOpts struct {
	CompanyID    string
	Name         string
	OrgNumber    string
	ContactName  string
	ContactEmail string
}

// GenerateID creates a unique supplier ID in lev-xxxxxx format.
func GenerateID() (string, error) {
	b := make([]byte, 3)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("supplier: generate ID: %w", err)
	}
	return "lev-" + hex.EncodeToString(b), nil
}

// Create registers a supplier. Name is required.
func Create(db *gorm.DB, opts CreateOpts) (*models.Supplier, error) {
	name := strings.TrimSpace(opts.Name)
	if name == "" {
		return nil, errs.Validation("name", "supplier name is required")
	}
	if opts.CompanyID == "" {
		return nil, errs.Validation("companyId", "companyId is required")
	}

	id, err := GenerateID()
	if err != nil {
		return nil, err
	}

	s := models.Supplier{
		ID:           id,
		CompanyID:    opts.CompanyID,
		Name:         name,
		OrgNumber:    strings.TrimSpace(opts.OrgNumber),
		ContactName:  strings.TrimSpace(opts.ContactName),
		ContactEmail: strings.TrimSpace(opts.ContactEmail),
	}
	if err := db.Create(&s).Error; err != nil {
		return nil, fmt.Errorf("supplier: create: %w", err)
	}
	return &s, nil
}

// List returns the company's undeleted suppliers ordered by name.
func List(db *gorm.DB, companyID string) ([]models.Supplier, error) {
	var items []models.Supplier
	err := db.Where("company_id = ? AND deleted = ?", companyID, false).
		Order("name ASC").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("supplier: list: %w", err)
	}
	return items, nil
}

// Get retrieves a supplier by ID.
func Get(db *gorm.DB, companyID, id string) (*models.Supplier, error) {
	var s models.Supplier
	err := db.Where("id = ? AND company_id = ?", id, companyID).First(&s).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("supplier: not found: %s", id)
		}
		return nil, fmt.Errorf("supplier: get %s: %w", id, err)
	}
	return &s, nil
}
