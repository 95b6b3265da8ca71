package scheduler

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	appdocument "github.com/kejaplus/backend/internal/application/document"
	"github.com/kejaplus/backend/internal/domain/document"
)

// ReminderDispatcher runs the pre-due reminder sweep
type ReminderDispatcher interface {
	SendAutoReminders(ctx context.Context, channel document.ReminderChannel) (*appdocument.BulkReminderResult, error)
}

// DocumentStore removes rendered documents past their retention age
type DocumentStore interface {
	CleanupOlderThan(ctx context.Context, age time.Duration) (int, error)
}

// ExecutorConfig holds settings for the job executor
type ExecutorConfig struct {
	// ReminderChannel is the channel auto reminders go out on
	ReminderChannel document.ReminderChannel
	// RetentionDays is how long rendered PDFs are kept
	RetentionDays int
}

// DefaultExecutorConfig returns default executor settings
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		ReminderChannel: document.ReminderChannelBoth,
		RetentionDays:   365,
	}
}

// Executor runs scheduler jobs against the application services
type Executor struct {
	config    ExecutorConfig
	reminders ReminderDispatcher
	documents DocumentStore
	logger    *zap.Logger
}

// NewExecutor creates a new job executor
func NewExecutor(
	config ExecutorConfig,
	reminders ReminderDispatcher,
	documents DocumentStore,
	logger *zap.Logger,
) *Executor {
	return &Executor{
		config:    config,
		reminders: reminders,
		documents: documents,
		logger:    logger,
	}
}

// Execute dispatches a job to the matching task
func (e *Executor) Execute(ctx context.Context, job *Job) error {
	switch job.Type {
	case JobTypeReminderSweep:
		return e.runReminderSweep(ctx)
	case JobTypeDocumentCleanup:
		return e.runDocumentCleanup(ctx)
	default:
		return fmt.Errorf("%w: %s", ErrInvalidJobType, job.Type)
	}
}

func (e *Executor) runReminderSweep(ctx context.Context) error {
	result, err := e.reminders.SendAutoReminders(ctx, e.config.ReminderChannel)
	if err != nil {
		return fmt.Errorf("reminder sweep failed: %w", err)
	}

	e.logger.Info("Reminder sweep finished",
		zap.Int("candidates", result.Candidates),
		zap.Int("sent", result.Sent),
		zap.Int("failed", result.Failed),
		zap.Int("skipped", result.Skipped),
	)

	return nil
}

func (e *Executor) runDocumentCleanup(ctx context.Context) error {
	age := time.Duration(e.config.RetentionDays) * 24 * time.Hour

	removed, err := e.documents.CleanupOlderThan(ctx, age)
	if err != nil {
		return fmt.Errorf("document cleanup failed: %w", err)
	}

	e.logger.Info("Document cleanup finished",
		zap.Int("removed", removed),
		zap.Int("retention_days", e.config.RetentionDays),
	)

	return nil
}

// Ensure Executor implements JobExecutor
var _ JobExecutor = (*Executor)(nil)
