/*
scheduler.go - Automated daily processing scheduler

PURPOSE:
  Periodically runs the daily status processing so balances stay current
  without manual triggers. The engine itself is idempotent per day: an
  employee already processed through yesterday is skipped, so frequent
  checks are cheap.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Every tick triggers one full processing run
  - Per-employee failures are logged, never fatal to the scheduler

CONFIGURATION:
  - CheckInterval: How often to check (default: 1 hour)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  scheduler := NewProcessingScheduler(service)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: TriggerProcessing endpoint (manual runs)
  - flextime/processing.go: ProcessingService
*/
package api

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/warp/flextime-engine/flextime"
)

// ProcessingScheduler handles automated daily status processing.
type ProcessingScheduler struct {
	Service       *flextime.ProcessingService
	CheckInterval time.Duration
	Enabled       bool

	ticker *time.Ticker
	stop   chan bool
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewProcessingScheduler creates a new scheduler.
func NewProcessingScheduler(service *flextime.ProcessingService) *ProcessingScheduler {
	return &ProcessingScheduler{
		Service:       service,
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
		stop:          make(chan bool),
	}
}

// Start begins the scheduler.
func (ps *ProcessingScheduler) Start() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if !ps.Enabled {
		log.Println("[Scheduler] Disabled, not starting")
		return
	}

	ps.ticker = time.NewTicker(ps.CheckInterval)
	ps.wg.Add(1)

	go ps.run()

	log.Printf("[Scheduler] Started with check interval: %v", ps.CheckInterval)
}

// Stop stops the scheduler.
func (ps *ProcessingScheduler) Stop() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.ticker != nil {
		ps.ticker.Stop()
		close(ps.stop)
		ps.wg.Wait()
		log.Println("[Scheduler] Stopped")
	}
}

func (ps *ProcessingScheduler) run() {
	defer ps.wg.Done()

	// Run immediately on start
	ps.process()

	for {
		select {
		case <-ps.ticker.C:
			ps.process()
		case <-ps.stop:
			return
		}
	}
}

func (ps *ProcessingScheduler) process() {
	ctx := context.Background()

	summary, err := ps.Service.ProcessDailyStatus(ctx)
	if err != nil {
		log.Printf("[Scheduler] Run finished with failures: %v", err)
	}
	if summary.Processed > 0 {
		log.Printf("[Scheduler] Completed: %d processed, %d skipped, %d statuses written",
			summary.Processed, summary.Skipped, summary.Statuses)
	}
}

// RunNow triggers an immediate run (for testing/admin).
func (ps *ProcessingScheduler) RunNow() {
	ps.process()
}

// GetNextRunTime returns when the next scheduled check will occur.
func (ps *ProcessingScheduler) GetNextRunTime() time.Time {
	return time.Now().Add(ps.CheckInterval)
}
