package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/example/roadmap/internal/progress"
	"github.com/example/roadmap/internal/roadmap"
	"github.com/example/roadmap/internal/storage"
	"github.com/example/roadmap/pkg/models"
)

// DefaultInterval is the time between two reminders
const DefaultInterval = 24 * time.Hour

// Reminder is the progress report sent to a Notifier
type Reminder struct {
	Title     string
	Summary   progress.Summary
	Remaining *roadmap.Remaining // nil when the roadmap has no target date
}

// Notifier interface for sending reminders
type Notifier interface {
	SendReminder(r Reminder) error
}

// Scheduler periodically reports roadmap progress through a Notifier
type Scheduler struct {
	scheduler *gocron.Scheduler
	backend   storage.Backend
	content   models.Roadmap
	notifier  Notifier
	interval  time.Duration
	options   []progress.Option
	logger    *zap.Logger
	now       func() time.Time
}

// New creates a new scheduler instance. Every run reads the completed set
// afresh from backend, so toggles made by other processes are picked up.
func New(backend storage.Backend, content models.Roadmap, notifier Notifier, interval time.Duration, logger *zap.Logger, opts ...progress.Option) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		backend:   backend,
		content:   content,
		notifier:  notifier,
		interval:  interval,
		options:   opts,
		logger:    logger,
		now:       time.Now,
	}
}

// Start begins running the reminder job; the first reminder is sent right away
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(s.interval).StartImmediately().SingletonMode().Do(s.checkAndSendReminder); err != nil {
		return fmt.Errorf("failed to schedule reminder: %w", err)
	}

	// Start the scheduler in a non-blocking manner
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled tasks and waits for a running one
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminder is the scheduled job
func (s *Scheduler) checkAndSendReminder() {
	if err := s.RunManualCheck(context.Background()); err != nil {
		s.logger.Error("error sending reminder", zap.Error(err))
	}
}

// RunManualCheck builds the current reminder and sends it unless the
// roadmap is empty or already finished
func (s *Scheduler) RunManualCheck(ctx context.Context) error {
	r := s.buildReminder(ctx)

	if r.Summary.TotalCount == 0 {
		s.logger.Info("roadmap has no concepts, skipping reminder")
		return nil
	}
	if r.Summary.CompletedCount == r.Summary.TotalCount {
		s.logger.Info("roadmap completed, skipping reminder")
		return nil
	}

	if err := s.notifier.SendReminder(r); err != nil {
		return fmt.Errorf("failed to send reminder: %w", err)
	}
	s.logger.Info("reminder sent",
		zap.Float64("overall", r.Summary.Overall),
		zap.Int("completed", r.Summary.CompletedCount),
		zap.Int("total", r.Summary.TotalCount),
	)
	return nil
}

func (s *Scheduler) buildReminder(ctx context.Context) Reminder {
	opts := append([]progress.Option{progress.WithLogger(s.logger)}, s.options...)
	tracker := progress.New(s.backend, opts...)
	tracker.Hydrate(ctx)

	r := Reminder{
		Title:   s.content.Title,
		Summary: tracker.Summarize(s.content),
	}
	if s.content.TargetDate != "" {
		target, err := roadmap.ParseTargetDate(s.content.TargetDate)
		if err != nil {
			s.logger.Warn("ignoring target date", zap.Error(err))
		} else {
			remaining := roadmap.Countdown(target, s.now())
			r.Remaining = &remaining
		}
	}
	return r
}
