// Package provision performs best-effort folder provisioning. The
// primary CRUD flow enqueues a job and returns immediately; a spawned
// task (and a scheduled sweep for leftovers) does the ensure and writes
// the folder path back onto the record if it succeeds. Failures are
// absorbed: no provisioning error ever reaches the user who created
// the record.
package provision

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/stenvik/anbud/internal/byggdel"
	"github.com/stenvik/anbud/internal/models"
	"github.com/stenvik/anbud/internal/paket"
	"github.com/stenvik/anbud/internal/sharepoint"
	"gorm.io/gorm"
)

const (
	// maxAttempts is how often the sweep retries before parking a job.
	maxAttempts = 5
	// ensureTimeout bounds a single ensure call.
	ensureTimeout = 30 * time.Second
)

// EnqueueByggdel records a pending provisioning job for a byggdel.
func EnqueueByggdel(db *gorm.DB, projectRoot string, b models.Byggdel) (*models.ProvisionJob, error) {
	job := models.ProvisionJob{
		CompanyID:  b.CompanyID,
		ProjectID:  b.ProjectID,
		EntityKind: "byggdel",
		EntityID:   b.ID,
		Path:       sharepoint.ByggdelPath(projectRoot, b),
	}
	if err := db.Create(&job).Error; err != nil {
		return nil, fmt.Errorf("provision: enqueue byggdel %s: %w", b.ID, err)
	}
	return &job, nil
}

// EnqueuePaket records a pending provisioning job for a paket.
func EnqueuePaket(db *gorm.DB, projectRoot string, b models.Byggdel, p models.Paket) (*models.ProvisionJob, error) {
	job := models.ProvisionJob{
		CompanyID:  p.CompanyID,
		ProjectID:  p.ProjectID,
		EntityKind: "paket",
		EntityID:   p.ID,
		Path:       sharepoint.PaketPath(projectRoot, b, p.SupplierName),
	}
	if err := db.Create(&job).Error; err != nil {
		return nil, fmt.Errorf("provision: enqueue paket %s: %w", p.ID, err)
	}
	return &job, nil
}

// Kickoff runs one provisioning attempt in the background. It returns
// immediately; the caller never observes the outcome. A nil ensurer
// (provisioning not configured) leaves the job pending for a later
// deployment that has one.
func Kickoff(db *gorm.DB, fe sharepoint.FolderEnsurer, job *models.ProvisionJob) {
	if fe == nil || job == nil {
		return
	}
	j := *job
	go func() {
		attempt(db, fe, &j)
	}()
}

// attempt performs a single ensure and records the outcome on the job.
func attempt(db *gorm.DB, fe sharepoint.FolderEnsurer, job *models.ProvisionJob) {
	ctx, cancel := context.WithTimeout(context.Background(), ensureTimeout)
	defer cancel()

	path, err := fe.EnsureFolder(ctx, job.Path)
	if err != nil {
		status := "pending"
		if job.Attempts+1 >= maxAttempts {
			status = "failed"
		}
		db.Model(&models.ProvisionJob{}).Where("id = ?", job.ID).
			Updates(map[string]interface{}{
				"attempts":   job.Attempts + 1,
				"last_error": err.Error(),
				"status":     status,
			})
		log.Printf("provision: ensure %s for %s %s: %v", job.Path, job.EntityKind, job.EntityID, err)
		return
	}

	var setErr error
	switch job.EntityKind {
	case "byggdel":
		setErr = byggdel.SetFolderPath(db, job.EntityID, path)
	case "paket":
		setErr = paket.SetFolderPath(db, job.EntityID, path)
	}
	if setErr != nil {
		log.Printf("provision: record path for %s %s: %v", job.EntityKind, job.EntityID, setErr)
		return
	}

	db.Model(&models.ProvisionJob{}).Where("id = ?", job.ID).
		Updates(map[string]interface{}{
			"attempts":   job.Attempts + 1,
			"status":     "done",
			"last_error": "",
		})
}

// Sweep retries every pending job once and returns how many completed.
func Sweep(db *gorm.DB, fe sharepoint.FolderEnsurer) (int, error) {
	if fe == nil {
		return 0, nil
	}

	var jobs []models.ProvisionJob
	if err := db.Where("status = ?", "pending").Order("id ASC").Find(&jobs).Error; err != nil {
		return 0, fmt.Errorf("provision: load pending jobs: %w", err)
	}

	done := 0
	for i := range jobs {
		attempt(db, fe, &jobs[i])
		var j models.ProvisionJob
		if err := db.Where("id = ?", jobs[i].ID).First(&j).Error; err == nil && j.Status == "done" {
			done++
		}
	}
	return done, nil
}
