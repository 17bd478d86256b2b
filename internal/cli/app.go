package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/example/roadmap/internal/config"
	"github.com/example/roadmap/internal/database"
	"github.com/example/roadmap/internal/logging"
	"github.com/example/roadmap/internal/progress"
	"github.com/example/roadmap/internal/roadmap"
	"github.com/example/roadmap/internal/storage"
	"github.com/example/roadmap/pkg/models"
)

// App carries the dependencies shared by all commands. Fields left nil are
// filled from the environment when a command runs.
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Backend storage.Backend
	Roadmap *models.Roadmap
	Now     func() time.Time

	tracker *progress.Tracker
	closer  io.Closer
}

// init resolves missing dependencies and hydrates the tracker
func (a *App) init(ctx context.Context) error {
	if a.Config == nil {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		a.Config = cfg
	}

	if a.Logger == nil {
		logger, err := logging.New(a.Config.LogLevel, a.Config.LogJSON)
		if err != nil {
			return err
		}
		a.Logger = logger
	}

	if a.Now == nil {
		a.Now = time.Now
	}

	if a.Backend == nil {
		db, err := database.Connect(a.Config.Database)
		if err != nil {
			// Progress still works for this run, it just won't be saved
			a.Logger.Warn("database unavailable, progress will not be saved", zap.Error(err))
			a.Backend = storage.UnavailableBackend{Cause: err}
		} else {
			a.Backend = database.NewKVRepository(db)
			a.closer = db
		}
	}

	if a.Roadmap == nil {
		r, err := roadmap.Load(a.Config.RoadmapFile)
		if err != nil {
			return err
		}
		a.Roadmap = &r
	}
	if a.Config.TargetDate != "" {
		a.Roadmap.TargetDate = a.Config.TargetDate
	}

	a.tracker = progress.New(a.Backend,
		progress.WithKey(a.Config.ProgressKey),
		progress.WithLogger(a.Logger),
	)
	a.tracker.Hydrate(ctx)
	return nil
}

// Close releases the database connection
func (a *App) Close() error {
	if a.Logger != nil {
		_ = a.Logger.Sync()
	}
	if a.closer != nil {
		return a.closer.Close()
	}
	return nil
}

// Tracker returns the hydrated tracker; valid once a command has started
func (a *App) Tracker() *progress.Tracker { return a.tracker }

// lastSaved returns when the progress row was last written, or nil when the
// backend keeps no timestamps or nothing has been saved
func (a *App) lastSaved(ctx context.Context) (*time.Time, error) {
	repo, ok := a.Backend.(*database.KVRepository)
	if !ok {
		return nil, nil
	}
	item, err := repo.Get(ctx, a.tracker.Key())
	if err != nil || item == nil {
		return nil, err
	}
	return &item.UpdatedAt, nil
}

// remaining returns the countdown to the roadmap target date, if any
func (a *App) remaining() (*roadmap.Remaining, error) {
	if a.Roadmap.TargetDate == "" {
		return nil, nil
	}
	target, err := roadmap.ParseTargetDate(a.Roadmap.TargetDate)
	if err != nil {
		return nil, fmt.Errorf("invalid target date: %w", err)
	}
	r := roadmap.Countdown(target, a.Now())
	return &r, nil
}
