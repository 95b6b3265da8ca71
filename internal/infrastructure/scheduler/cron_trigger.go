package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// CronTrigger fires scheduler jobs on cron expressions. Expressions use
// the standard five-field format (minute hour dom month dow).
type CronTrigger struct {
	scheduler *Scheduler
	logger    *zap.Logger

	mu        sync.Mutex
	entries   []*cronEntry
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	isRunning bool
}

type cronEntry struct {
	spec     string
	schedule cron.Schedule
	jobType  JobType
	nextRun  time.Time
}

// NewCronTrigger creates a new cron trigger
func NewCronTrigger(scheduler *Scheduler, logger *zap.Logger) *CronTrigger {
	return &CronTrigger{
		scheduler: scheduler,
		logger:    logger,
	}
}

// AddSchedule registers a cron expression for a job type.
// Must be called before Start.
func (c *CronTrigger) AddSchedule(spec string, jobType JobType) error {
	if !jobType.IsValid() {
		return ErrInvalidJobType
	}

	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, spec, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = append(c.entries, &cronEntry{
		spec:     spec,
		schedule: schedule,
		jobType:  jobType,
	})

	return nil
}

// Start starts the cron trigger
func (c *CronTrigger) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = true

	now := time.Now()
	for _, e := range c.entries {
		e.nextRun = e.schedule.Next(now)
		c.logger.Info("Cron schedule registered",
			zap.String("spec", e.spec),
			zap.String("job_type", string(e.jobType)),
			zap.Time("next_run", e.nextRun),
		)
	}
	c.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(1)
	go c.runLoop(ctx)

	return nil
}

// Stop stops the cron trigger
func (c *CronTrigger) Stop(ctx context.Context) error {
	c.mu.Lock()
	if !c.isRunning {
		c.mu.Unlock()
		return nil
	}
	c.isRunning = false
	c.mu.Unlock()

	if c.cancel != nil {
		c.cancel()
	}

	done := make(chan struct{})
	go func() {
		c.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		c.logger.Info("Cron trigger stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// TriggerNow submits a job of the given type immediately, outside its
// cron schedule
func (c *CronTrigger) TriggerNow(jobType JobType) error {
	return c.scheduler.Schedule(jobType)
}

// runLoop sleeps until the earliest due entry, fires it, and repeats
func (c *CronTrigger) runLoop(ctx context.Context) {
	defer c.wg.Done()

	for {
		next, ok := c.earliestNextRun()
		if !ok {
			c.logger.Warn("Cron trigger has no schedules, stopping loop")
			return
		}

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			c.fireDue(time.Now())
		}
	}
}

// earliestNextRun returns the soonest nextRun across entries
func (c *CronTrigger) earliestNextRun() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var earliest time.Time
	for _, e := range c.entries {
		if earliest.IsZero() || e.nextRun.Before(earliest) {
			earliest = e.nextRun
		}
	}
	return earliest, !earliest.IsZero()
}

// fireDue submits jobs for every entry whose nextRun has passed and
// advances their schedules
func (c *CronTrigger) fireDue(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entries {
		if e.nextRun.After(now) {
			continue
		}

		if err := c.scheduler.Schedule(e.jobType); err != nil {
			c.logger.Error("Failed to submit scheduled job",
				zap.String("job_type", string(e.jobType)),
				zap.Error(err),
			)
		} else {
			c.logger.Info("Scheduled job triggered",
				zap.String("job_type", string(e.jobType)),
				zap.String("spec", e.spec),
			)
		}

		e.nextRun = e.schedule.Next(now)
	}
}
