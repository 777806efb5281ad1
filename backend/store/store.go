// Package store is the persistence and session-state service of the
// learning app. It owns the users, courses and current-user records in a
// key-value backend and tells subscribers when any of them change.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"studyhub/backend/models"
	"studyhub/backend/storage"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	KeyUsers       = "users"
	KeyCourses     = "courses"
	KeyCurrentUser = "current_user"
	KeyComments    = "comments"
)

// XPPerLesson is awarded once per completed lesson.
const XPPerLesson = 50

type Store struct {
	backend  storage.Backend
	creds    Credentials
	validate *validator.Validate
	log      zerolog.Logger
	notifier *Notifier
	now      func() time.Time
	newID    func() string

	// mu serializes every read-modify-write sequence.
	mu sync.Mutex
}

type Option func(*Store)

func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

func WithCredentials(c Credentials) Option {
	return func(s *Store) { s.creds = c }
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New builds a Store over backend and seeds any record that has never
// been written: courses get the built-in catalog, users an empty list.
func New(ctx context.Context, backend storage.Backend, opts ...Option) (*Store, error) {
	s := &Store{
		backend:  backend,
		creds:    PlainCredentials{},
		validate: validator.New(),
		log:      zerolog.Nop(),
		now:      time.Now,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.notifier = NewNotifier(s.log)

	if err := s.bootstrap(ctx); err != nil {
		s.notifier.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) bootstrap(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok, err := storage.Exists(ctx, s.backend, KeyCourses)
	if err != nil {
		return fmt.Errorf("check courses: %w", err)
	}
	if !ok {
		s.log.Info().Msg("seeding course catalog")
		if err := s.put(ctx, KeyCourses, models.SeedCourses()); err != nil {
			return err
		}
	}

	ok, err = storage.Exists(ctx, s.backend, KeyUsers)
	if err != nil {
		return fmt.Errorf("check users: %w", err)
	}
	if !ok {
		if err := s.put(ctx, KeyUsers, []any{}); err != nil {
			return err
		}
	}
	return nil
}

// Subscribe registers a listener called after every committed mutation.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	return s.notifier.Subscribe(fn)
}

// WaitNotified blocks until all pending change notifications were delivered.
// Calling it from a listener deadlocks; listeners may still mutate the store.
func (s *Store) WaitNotified() {
	s.notifier.Wait()
}

// Close flushes pending notifications. It does not close the backend.
func (s *Store) Close() {
	s.notifier.Close()
}

// get decodes the record under key into v. It returns storage.ErrNotFound
// when the key was never written and ErrCorrupt when it does not decode.
func (s *Store) get(ctx context.Context, key string, v any) error {
	raw, err := s.backend.Get(ctx, key)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return nil
}

func (s *Store) put(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.backend.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func (s *Store) validateStruct(v any) error {
	if err := s.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}
