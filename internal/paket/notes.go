package paket

import (
	"fmt"
	"strings"

	"github.com/stenvik/anbud/internal/audit"
	"github.com/stenvik/anbud/internal/errs"
	"github.com/stenvik/anbud/internal/models"
	"gorm.io/gorm"
)

// AddNote appends a comment to a paket. Notes are append-only; there is
// no edit or delete.
func AddNote(db *gorm.DB, companyID, projectID, paketID, text string, actor models.Actor) (*models.PaketNote, error) {
	if paketID == "" {
		return nil, errs.Validation("paketId", "paket id is required")
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errs.Validation("text", "note text is required")
	}

	note := models.PaketNote{
		PaketID:       paketID,
		Text:          text,
		CreatedByUID:  actor.UID,
		CreatedByName: actor.Name,
	}
	if err := db.Create(&note).Error; err != nil {
		return nil, fmt.Errorf("paket: add note to %s: %w", paketID, err)
	}

	audit.Record(db, audit.Entry{
		CompanyID:  companyID,
		ProjectID:  projectID,
		EntityKind: "note",
		EntityID:   paketID,
		Action:     "create",
	}, actor)

	return &note, nil
}

// Notes returns a paket's comments in creation order, oldest first.
func Notes(db *gorm.DB, paketID string) ([]models.PaketNote, error) {
	var notes []models.PaketNote
	err := db.Where("paket_id = ?", paketID).
		Order("created_at ASC, id ASC").Find(&notes).Error
	if err != nil {
		return nil, fmt.Errorf("paket: notes for %s: %w", paketID, err)
	}
	return notes, nil
}
