package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/easel/internal/logging"
	"github.com/aretw0/easel/pkg/domain"
	"github.com/aretw0/easel/pkg/ports"
	"github.com/aretw0/easel/pkg/store"
)

// DefaultLockTTL bounds how long a distributed session lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

type subscriber struct {
	id int
	fn func(domain.Change)
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// It uses reference counting to garbage collect unused locks.
type Manager struct {
	store ports.SnapshotStore

	mu    sync.Mutex
	locks map[string]*lockEntry

	subMu   sync.Mutex
	subs    map[string][]subscriber
	nextSub int

	locker  ports.DistributedLocker
	lockTTL time.Duration
	logger  *slog.Logger
	hooks   domain.Hooks
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the distributed lock TTL (default DefaultLockTTL).
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager and the stores it restores.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithHooks installs hooks on every store the Manager restores.
func WithHooks(hooks domain.Hooks) Option {
	return func(m *Manager) {
		m.hooks = hooks
	}
}

// NewManager creates a new session Manager over the given snapshot store.
func NewManager(snapshots ports.SnapshotStore, opts ...Option) *Manager {
	m := &Manager{
		store:   snapshots,
		locks:   make(map[string]*lockEntry),
		subs:    make(map[string][]subscriber),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller must lock entry.mu, and call release(id) after unlocking.
func (m *Manager) acquire(id string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		entry = &lockEntry{}
		m.locks[id] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry when it reaches zero.
func (m *Manager) release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[id]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, id)
	}
}

// WithLock executes fn while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, id string, fn func(context.Context) error) error {
	entry := m.acquire(id)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(id)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, id, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			// The work may have canceled ctx; the lock must still be released.
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("failed to release distributed lock (will expire via TTL)",
					"session_id", id,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

// Create stores a new session holding collection.
// It returns domain.ErrSnapshotExists when id is taken.
func (m *Manager) Create(ctx context.Context, id string, collection any) (*domain.Snapshot, error) {
	var snap *domain.Snapshot
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		_, err := m.store.Load(ctx, id)
		if err == nil {
			return fmt.Errorf("%w: %s", domain.ErrSnapshotExists, id)
		}
		if !errors.Is(err, domain.ErrSnapshotNotFound) {
			return fmt.Errorf("failed to check session existence: %w", err)
		}

		s := store.New(collection)
		snap = domain.NewSnapshot(id, s.Collection())
		if err := m.store.Save(ctx, snap); err != nil {
			return fmt.Errorf("failed to create session: %w", err)
		}
		m.logger.Info("session created", "session_id", id)
		return nil
	})
	return snap, err
}

// Snapshot returns the persisted snapshot of a session.
func (m *Manager) Snapshot(ctx context.Context, id string) (*domain.Snapshot, error) {
	var snap *domain.Snapshot
	err := m.WithLock(ctx, id, func(ctx context.Context) error {
		var err error
		snap, err = m.store.Load(ctx, id)
		return err
	})
	return snap, err
}

// WithSession restores the session's store, runs fn against it, and persists
// the result when fn accepted at least one mutation. Subscribers see the
// changes only after they are persisted. An error from fn discards the work.
func (m *Manager) WithSession(ctx context.Context, id string, fn func(*store.Store) error) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		snap, err := m.store.Load(ctx, id)
		if err != nil {
			return err
		}

		s := store.New(snap.Collection,
			store.WithVersion(snap.Version),
			store.WithLogger(m.logger.With("session_id", id)),
			store.WithHooks(m.hooks),
		)

		var changes []domain.Change
		cancel := s.Subscribe(func(c domain.Change) {
			changes = append(changes, c)
		})
		defer cancel()

		if err := fn(s); err != nil {
			return err
		}
		if len(changes) == 0 {
			return nil
		}

		next := domain.NewSnapshot(id, s.Collection())
		next.Version = s.Version()
		if err := m.store.Save(ctx, next); err != nil {
			return fmt.Errorf("failed to save session %s: %w", id, err)
		}

		m.publish(id, changes)
		return nil
	})
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.WithLock(ctx, id, func(ctx context.Context) error {
		return m.store.Delete(ctx, id)
	})
}

// List delegates to the store.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.store.List(ctx)
}

// Store returns the underlying snapshot store.
func (m *Manager) Store() ports.SnapshotStore {
	return m.store
}

// Subscribe registers fn for the persisted changes of session id.
// fn runs while the session lock is held and must not block or call back into the Manager
// for the same session.
func (m *Manager) Subscribe(id string, fn func(domain.Change)) (cancel func()) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	subID := m.nextSub
	m.nextSub++
	m.subs[id] = append(m.subs[id], subscriber{id: subID, fn: fn})

	return func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		list := m.subs[id]
		for i, s := range list {
			if s.id == subID {
				list = append(list[:i:i], list[i+1:]...)
				break
			}
		}
		if len(list) == 0 {
			delete(m.subs, id)
			return
		}
		m.subs[id] = list
	}
}

func (m *Manager) publish(id string, changes []domain.Change) {
	m.subMu.Lock()
	current := append([]subscriber(nil), m.subs[id]...)
	m.subMu.Unlock()

	for _, c := range changes {
		for _, s := range current {
			s.fn(c)
		}
	}
}
