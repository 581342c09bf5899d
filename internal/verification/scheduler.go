package verification

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/gdg-garage/contrib-role-api/internal/models"
	"github.com/gdg-garage/contrib-role-api/internal/registry"
)

type Rechecker interface {
	Recheck(ctx context.Context, record models.Verification) error
}

// Scheduler periodically re-verifies users whose last check is older than
// staleAfter.
type Scheduler struct {
	rechecker  Rechecker
	registry   registry.Registry
	interval   time.Duration
	staleAfter time.Duration
	delay      time.Duration

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error

	mu        sync.Mutex
	lastSweep time.Time
}

func NewScheduler(rechecker Rechecker, reg registry.Registry, interval, staleAfter, delay time.Duration) *Scheduler {
	return &Scheduler{
		rechecker:  rechecker,
		registry:   reg,
		interval:   interval,
		staleAfter: staleAfter,
		delay:      delay,
		now:        time.Now,
		sleep:      sleep,
	}
}

// Run sweeps every interval until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

// Sweep re-checks every stale record in insertion order, pausing between
// users. It returns the number of records that were re-checked successfully.
func (s *Scheduler) Sweep(ctx context.Context) int {
	records, err := s.registry.List(ctx)
	if err != nil {
		log.Printf("Failed to list verifications: %v", err)
		return 0
	}

	rechecked := 0
	for _, record := range records {
		if s.now().Sub(record.LastChecked) < s.staleAfter {
			continue
		}

		if err := s.rechecker.Recheck(ctx, record); err != nil {
			log.Printf("Error re-checking %s: %v", record.GitHubUsername, err)
		} else {
			rechecked++
		}

		if err := s.sleep(ctx, s.delay); err != nil {
			log.Printf("Periodic re-check interrupted: %v", err)
			return rechecked
		}
	}

	s.mu.Lock()
	s.lastSweep = s.now()
	s.mu.Unlock()

	log.Printf("Periodic re-check completed (%d re-checked)", rechecked)
	return rechecked
}

// LastSweep returns when the last sweep finished, or the zero time.
func (s *Scheduler) LastSweep() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSweep
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
