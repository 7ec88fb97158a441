package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rpawar/slotbook/internal/domain"
)

// resetSchedule fires at local midnight in the booking zone.
const resetSchedule = "0 0 * * *"

const runTimeout = 4 * time.Minute

type Scheduler struct {
	cron *cron.Cron
}

func New() *Scheduler {
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(domain.IST),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
	}
}

// AddDailyReset registers run to fire once per day at midnight IST.
func (s *Scheduler) AddDailyReset(run func(context.Context)) error {
	_, err := s.cron.AddFunc(resetSchedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		run(ctx)
	})
	return err
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and returns a context that is done once any
// in-flight run completes.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
