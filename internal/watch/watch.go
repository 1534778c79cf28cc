// Package watch provides live full-snapshot subscriptions over the
// store. Each subscription polls its query and invokes the callback
// with the complete current result set whenever it changes — snapshots,
// not deltas. Callers must invoke the returned unsubscribe function
// when the owning view goes away; a dropped subscription keeps polling.
package watch

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/stenvik/anbud/internal/models"
	"github.com/stenvik/anbud/internal/paket"
	"github.com/stenvik/anbud/internal/settings"
	"gorm.io/gorm"
)

// DefaultInterval is the poll cadence when Options.Interval is zero.
const DefaultInterval = 2 * time.Second

// Options tunes a subscription.
type Options struct {
	Interval time.Duration
}

func (o Options) interval() time.Duration {
	if o.Interval <= 0 {
		return DefaultInterval
	}
	return o.Interval
}

// run drives a poll loop. poll is invoked once immediately and then on
// every tick. The returned function stops the loop; calling it more
// than once is safe.
func run(interval time.Duration, poll func()) func() {
	stop := make(chan struct{})
	var once sync.Once

	go func() {
		poll()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				poll()
			}
		}
	}()

	return func() {
		once.Do(func() { close(stop) })
	}
}

// Byggdelar subscribes to a project's byggdel list. onItems receives
// the full filtered list on first poll and after every change; onError
// receives query failures without ending the subscription.
func Byggdelar(db *gorm.DB, companyID, projectID string, includeDeleted bool, opts Options,
	onItems func([]models.Byggdel), onError func(error)) func() {

	var lastSig string
	return run(opts.interval(), func() {
		q := db.Model(&models.Byggdel{}).
			Where("company_id = ? AND project_id = ?", companyID, projectID)
		if !includeDeleted {
			q = q.Where("deleted = ?", false)
		}

		var items []models.Byggdel
		if err := q.Order("created_at ASC, id ASC").Find(&items).Error; err != nil {
			if onError != nil {
				onError(fmt.Errorf("watch: byggdelar: %w", err))
			}
			return
		}

		var b strings.Builder
		for _, it := range items {
			fmt.Fprintf(&b, "%s|%d|%t;", it.ID, it.UpdatedAt.UnixNano(), it.Deleted)
		}
		if sig := nonEmpty(b.String()); sig != lastSig {
			lastSig = sig
			onItems(items)
		}
	})
}

// Paket subscribes to a project's paket list under the given filters,
// with the same snapshot contract as Byggdelar.
func Paket(db *gorm.DB, companyID, projectID string, filters paket.ListFilters, opts Options,
	onItems func([]models.Paket), onError func(error)) func() {

	var lastSig string
	return run(opts.interval(), func() {
		items, err := paket.List(db, companyID, projectID, filters)
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("watch: paket: %w", err))
			}
			return
		}

		var b strings.Builder
		for _, it := range items {
			fmt.Fprintf(&b, "%s|%d|%s|%t;", it.ID, it.UpdatedAt.UnixNano(), it.Status, it.Deleted)
		}
		if sig := nonEmpty(b.String()); sig != lastSig {
			lastSig = sig
			onItems(items)
		}
	})
}

// Notes subscribes to a paket's comment log, oldest first.
func Notes(db *gorm.DB, paketID string, opts Options,
	onItems func([]models.PaketNote), onError func(error)) func() {

	var lastID uint
	var delivered bool
	return run(opts.interval(), func() {
		notes, err := paket.Notes(db, paketID)
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("watch: notes: %w", err))
			}
			return
		}

		var maxID uint
		if len(notes) > 0 {
			maxID = notes[len(notes)-1].ID
		}
		// Notes are append-only, so the max ID is a complete signature.
		if !delivered || maxID != lastID {
			delivered = true
			lastID = maxID
			onItems(notes)
		}
	})
}

// StructureMode subscribes to a project's settings document.
func StructureMode(db *gorm.DB, companyID, projectID string, opts Options,
	onSettings func(models.ProjectSettings), onError func(error)) func() {

	var lastSig string
	return run(opts.interval(), func() {
		s, err := settings.Get(db, companyID, projectID)
		if err != nil {
			if onError != nil {
				onError(fmt.Errorf("watch: settings: %w", err))
			}
			return
		}

		sig := fmt.Sprintf("%s|%d", s.StructureMode, s.UpdatedAt.UnixNano())
		if sig != lastSig {
			lastSig = sig
			onSettings(*s)
		}
	})
}

// nonEmpty keeps empty result sets from re-triggering the initial
// delivery on every poll.
func nonEmpty(sig string) string {
	if sig == "" {
		return "<empty>"
	}
	return sig
}
