package progress

import (
	"context"

	"go.uber.org/zap"

	"github.com/example/roadmap/internal/storage"
	"github.com/example/roadmap/pkg/models"
)

// DefaultKey is the backend key holding the completed concept ids.
// Changing the persisted format means changing the key.
const DefaultKey = "completed-concepts-v2"

// Option configures a Tracker
type Option func(*trackerOptions)

type trackerOptions struct {
	key     string
	logger  *zap.Logger
	onError func(error)
}

// WithKey overrides DefaultKey
func WithKey(key string) Option {
	return func(o *trackerOptions) {
		if key != "" {
			o.key = key
		}
	}
}

// WithLogger sets the logger for storage errors
func WithLogger(logger *zap.Logger) Option {
	return func(o *trackerOptions) {
		o.logger = logger
	}
}

// WithErrorHook receives storage errors absorbed by the tracker
func WithErrorHook(hook func(error)) Option {
	return func(o *trackerOptions) {
		o.onError = hook
	}
}

// Tracker records which concepts are completed
type Tracker struct {
	store *storage.Store[storage.Set]
}

// New creates a tracker persisting into backend. Call Hydrate before
// relying on IsCompleted or the aggregates.
func New(backend storage.Backend, opts ...Option) *Tracker {
	o := trackerOptions{key: DefaultKey, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	store := storage.New[storage.Set](backend, o.key, storage.NewSet(), storage.StringSetCodec{},
		storage.WithLogger[storage.Set](o.logger),
		storage.WithClone[storage.Set](storage.Set.Clone),
		storage.WithErrorHook[storage.Set](o.onError),
	)
	return &Tracker{store: store}
}

// Hydrate loads the persisted completed set; only the first call reads
func (t *Tracker) Hydrate(ctx context.Context) { t.store.Hydrate(ctx) }

// Hydrated reports whether the persisted set has been loaded
func (t *Tracker) Hydrated() bool { return t.store.Hydrated() }

// Key returns the backend key of the tracker
func (t *Tracker) Key() string { return t.store.Key() }

// ToggleConcept flips the completion of conceptID. Unknown ids are accepted.
func (t *Tracker) ToggleConcept(ctx context.Context, conceptID string) {
	t.store.Update(ctx, func(prev storage.Set) storage.Set {
		return prev.Toggle(conceptID)
	})
}

// IsCompleted reports whether conceptID is marked completed
func (t *Tracker) IsCompleted(conceptID string) bool {
	var done bool
	t.store.View(func(s storage.Set) {
		done = s.Has(conceptID)
	})
	return done
}

// PhaseProgress counts the completed ids of conceptIDs
func (t *Tracker) PhaseProgress(conceptIDs []string) models.PhaseProgress {
	completed := 0
	t.store.View(func(s storage.Set) {
		for _, id := range conceptIDs {
			if s.Has(id) {
				completed++
			}
		}
	})

	return models.PhaseProgress{
		Progress:       percent(completed, len(conceptIDs)),
		CompletedCount: completed,
		TotalCount:     len(conceptIDs),
	}
}

// GlobalProgress returns the completed percentage of allConceptIDs
func (t *Tracker) GlobalProgress(allConceptIDs []string) float64 {
	return t.PhaseProgress(allConceptIDs).Progress
}

// Completed returns the completed ids in ascending order
func (t *Tracker) Completed() []string {
	return t.store.Value().Sorted()
}

// Reset clears every completion and removes the persisted set
func (t *Tracker) Reset(ctx context.Context) {
	t.store.Remove(ctx)
}

func percent(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}
