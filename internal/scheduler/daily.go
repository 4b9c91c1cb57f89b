package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ClinicaVitaBR/crm-followup/internal/timezone"
	ucFollowup "github.com/ClinicaVitaBR/crm-followup/internal/usecase/followup"
)

// Daily fires the follow-up cycle on a cron expression in the clinic's
// timezone. A mutex keeps fires single-flight: a slow cycle plus a new
// timer tick must not run two scans at once.
type Daily struct {
	cron *cron.Cron
	run  *ucFollowup.RunCycle
	tz   string

	mu sync.Mutex
}

func NewDaily(spec string, run *ucFollowup.RunCycle, tz string) (*Daily, error) {
	d := &Daily{
		run: run,
		tz:  tz,
	}

	c := cron.New(cron.WithLocation(timezone.Location(tz)))
	if _, err := c.AddFunc(spec, d.fire); err != nil {
		return nil, err
	}
	d.cron = c

	return d, nil
}

func (d *Daily) Start() {
	d.cron.Start()
}

func (d *Daily) Stop() {
	d.cron.Stop()
}

func (d *Daily) fire() {
	if !d.mu.TryLock() {
		log.Println("scheduler: previous cycle still running, skipping")
		return
	}
	defer d.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	summary, err := d.run.Execute(ctx, timezone.NowIn(d.tz))
	if err != nil {
		log.Println("scheduler: cycle failed:", err)
		return
	}

	log.Printf(
		"scheduler: cycle done: scheduled=%d seeded=%d exhausted=%d skipped=%d failed=%d",
		summary.Scheduled,
		summary.Seeded,
		summary.Exhausted,
		summary.Skipped,
		summary.Failed,
	)
	for _, e := range summary.Errors {
		log.Printf("scheduler: client %d failed: %s", e.ClientID, e.Reason)
	}
}
