package provision

import (
	"fmt"
	"log"

	"github.com/robfig/cron/v3"
	"github.com/stenvik/anbud/internal/sharepoint"
	"gorm.io/gorm"
)

// sweepParser uses standard 5-field cron expressions (minute, hour,
// dom, month, dow).
var sweepParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// StartSweeper schedules periodic sweeps of pending provisioning jobs.
// The returned function stops the scheduler.
func StartSweeper(db *gorm.DB, fe sharepoint.FolderEnsurer, schedule string) (func(), error) {
	if _, err := sweepParser.Parse(schedule); err != nil {
		return nil, fmt.Errorf("provision: parse sweep schedule %q: %w", schedule, err)
	}

	c := cron.New(cron.WithParser(sweepParser))
	_, err := c.AddFunc(schedule, func() {
		done, err := Sweep(db, fe)
		if err != nil {
			log.Printf("provision: sweep: %v", err)
			return
		}
		if done > 0 {
			log.Printf("provision: sweep completed %d job(s)", done)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("provision: schedule sweep: %w", err)
	}

	c.Start()
	return func() { c.Stop() }, nil
}
