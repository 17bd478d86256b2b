// Package storage keeps typed values in a persistent key-value backend.
// Reads from the backend are deferred until Hydrate, so a freshly created
// Store always reports its initial value first.
package storage

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// Lifecycle is the hydration state of a Store
type Lifecycle int

const (
	// NotHydrated means the backend has not been read yet
	NotHydrated Lifecycle = iota
	// Hydrated means the backend was read once; the transition is final
	Hydrated
)

func (l Lifecycle) String() string {
	switch l {
	case NotHydrated:
		return "not_hydrated"
	case Hydrated:
		return "hydrated"
	}
	return "unknown"
}

// Option configures a Store
type Option[T any] func(*Store[T])

// WithLogger sets the logger used to report storage errors
func WithLogger[T any](logger *zap.Logger) Option[T] {
	return func(s *Store[T]) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClone sets how values are copied when handed to callers.
// Reference types such as maps need it to keep the store value private.
func WithClone[T any](clone func(T) T) Option[T] {
	return func(s *Store[T]) {
		s.clone = clone
	}
}

// WithErrorHook receives every absorbed storage error after it is logged.
// The hook runs after the store lock is released and may use the store.
func WithErrorHook[T any](hook func(error)) Option[T] {
	return func(s *Store[T]) {
		s.onError = hook
	}
}

// Store holds one value of type T persisted under a fixed key
type Store[T any] struct {
	mu      sync.Mutex
	once    sync.Once
	backend Backend
	key     string
	codec   Codec[T]
	initial T
	value   T
	state   Lifecycle
	clone   func(T) T
	logger  *zap.Logger
	onError func(error)
}

// New creates a store for key. Until Hydrate runs, Value returns initial.
func New[T any](backend Backend, key string, initial T, codec Codec[T], opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		backend: backend,
		key:     key,
		codec:   codec,
		initial: initial,
		value:   initial,
		state:   NotHydrated,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.clone != nil {
		s.initial = s.clone(initial)
		s.value = s.clone(initial)
	}
	return s
}

// Key returns the backend key of the store
func (s *Store[T]) Key() string { return s.key }

// State returns the hydration state
func (s *Store[T]) State() Lifecycle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Hydrated reports whether the backend has been read
func (s *Store[T]) Hydrated() bool { return s.State() == Hydrated }

// Value returns the initial value before hydration and the current value after
func (s *Store[T]) Value() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.copy(s.visible())
}

// View calls fn with the visible value while holding the store lock.
// fn must not retain or modify the value.
func (s *Store[T]) View(fn func(v T)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.visible())
}

// Hydrate reads the backend once. A missing, unreadable or undecodable item
// leaves the initial value in place. The store is Hydrated afterwards.
func (s *Store[T]) Hydrate(ctx context.Context) {
	var err error
	s.once.Do(func() {
		err = s.load(ctx)
	})
	s.report(err)
}

// Set replaces the value and persists it
func (s *Store[T]) Set(ctx context.Context, v T) {
	s.Update(ctx, func(T) T { return v })
}

// Update replaces the value with fn applied to the latest value and persists it.
// A store that has not been hydrated is hydrated first, so updates always
// build on the persisted value.
func (s *Store[T]) Update(ctx context.Context, fn func(prev T) T) {
	s.Hydrate(ctx)

	err := func() error {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.value = fn(s.copy(s.value))
		return s.persist(ctx, s.value)
	}()

	s.report(err)
}

// Remove resets the value to initial and deletes the backend item
func (s *Store[T]) Remove(ctx context.Context) {
	s.Hydrate(ctx)

	s.mu.Lock()
	s.value = s.copy(s.initial)
	var err error
	if rerr := s.backend.RemoveItem(ctx, s.key); rerr != nil {
		err = &StoreUnavailableError{Key: s.key, Op: "remove", Err: rerr}
	}
	s.mu.Unlock()

	s.report(err)
}

func (s *Store[T]) visible() T {
	if s.state != Hydrated {
		return s.initial
	}
	return s.value
}

func (s *Store[T]) copy(v T) T {
	if s.clone == nil {
		return v
	}
	return s.clone(v)
}

func (s *Store[T]) load(ctx context.Context) error {
	raw, ok, err := s.backend.GetItem(ctx, s.key)

	s.mu.Lock()
	defer s.mu.Unlock()
	err = s.decode(raw, ok, err)
	s.state = Hydrated
	return err
}

// decode must be called with s.mu held
func (s *Store[T]) decode(raw string, ok bool, readErr error) error {
	if readErr != nil {
		return &StoreUnavailableError{Key: s.key, Op: "read", Err: readErr}
	}
	if !ok || raw == "" {
		return nil
	}

	v, err := s.codec.Decode([]byte(raw))
	if err != nil {
		return &DeserializationError{Key: s.key, Payload: raw, Err: err}
	}
	s.value = v
	s.logger.Debug("hydrated store", zap.String("key", s.key))
	return nil
}

// persist must be called with s.mu held
func (s *Store[T]) persist(ctx context.Context, v T) error {
	data, err := s.codec.Encode(v)
	if err != nil {
		return &SerializationError{Key: s.key, Err: err}
	}
	if err := s.backend.SetItem(ctx, s.key, string(data)); err != nil {
		return &StoreUnavailableError{Key: s.key, Op: "write", Err: err}
	}
	return nil
}

// report logs an absorbed error and hands it to the error hook.
// It must be called without s.mu held so the hook may use the store.
func (s *Store[T]) report(err error) {
	if err == nil {
		return
	}
	s.logger.Error("storage error", zap.String("key", s.key), zap.Error(err))
	if s.onError != nil {
		s.onError(err)
	}
}
