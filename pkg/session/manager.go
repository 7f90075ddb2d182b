package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/keystonecrm/planner/pkg/observability"
	"github.com/keystonecrm/planner/pkg/planner"
	"github.com/keystonecrm/planner/pkg/selection"
)

// EngineFunc returns the engine currently in service, or nil before a
// catalog is loaded
type EngineFunc func() *planner.Engine

// Manager drives configuration sessions stored in a Store
type Manager struct {
	store  Store
	engine EngineFunc
	locks  *keyedMutex
	logger *observability.Logger
	now    func() time.Time
}

// NewManager creates a session manager
func NewManager(store Store, engine EngineFunc, logger *observability.Logger) *Manager {
	if logger == nil {
		logger = observability.Discard()
	}
	return &Manager{
		store:  store,
		engine: engine,
		locks:  newKeyedMutex(),
		logger: logger.WithField("component", "sessions"),
		now:    time.Now,
	}
}

// Create starts a session. With no ids and no bundle it starts at the
// baseline-only selection, otherwise it is seeded from a saved plan.
func (m *Manager) Create(ctx context.Context, ids []string, bundleID string) (*Record, selection.Outcome, error) {
	e, err := m.current()
	if err != nil {
		return nil, selection.Outcome{}, err
	}
	machine := e.Machine()

	var (
		sel selection.Selection
		out selection.Outcome
	)
	if len(ids) == 0 && bundleID == "" {
		sel, out = machine.Initial()
	} else {
		sel, out, err = machine.Seed(ids, bundleID)
		if err != nil {
			return nil, selection.Outcome{}, err
		}
	}

	now := m.now().UTC()
	rec := &Record{
		ID:        uuid.New().String(),
		Selection: sel,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.store.Put(ctx, rec); err != nil {
		return nil, selection.Outcome{}, fmt.Errorf("failed to store session: %w", err)
	}

	m.logger.WithFields(map[string]interface{}{
		"session_id": rec.ID,
		"mode":       sel.Mode,
	}).Debug("Session created")
	return rec, out, nil
}

// Get returns a session and its evaluation against the current catalog
func (m *Manager) Get(ctx context.Context, id string) (*Record, selection.Outcome, error) {
	e, err := m.current()
	if err != nil {
		return nil, selection.Outcome{}, err
	}
	rec, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, selection.Outcome{}, err
	}
	return rec, e.Evaluate(rec.Selection), nil
}

// Apply runs one event against a session and stores the result. Events on the
// same session are applied one at a time.
func (m *Manager) Apply(ctx context.Context, id string, e selection.Event) (*Record, selection.Outcome, error) {
	eng, err := m.current()
	if err != nil {
		return nil, selection.Outcome{}, err
	}

	unlock := m.locks.Lock(id)
	defer unlock()

	rec, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, selection.Outcome{}, err
	}

	next, out, err := eng.Machine().Apply(rec.Selection, e)
	if err != nil {
		return nil, selection.Outcome{}, err
	}

	rec.Selection = next
	rec.Transitions++
	rec.UpdatedAt = m.now().UTC()
	if err := m.store.Put(ctx, rec); err != nil {
		return nil, selection.Outcome{}, fmt.Errorf("failed to store session: %w", err)
	}

	m.logger.WithFields(map[string]interface{}{
		"session_id":  id,
		"event":       e.Kind,
		"target":      e.ID,
		"price_cents": out.PriceCents,
		"valid":       out.Validation.Valid,
	}).Debug("Session transition")
	return rec, out, nil
}

// Delete ends a session
func (m *Manager) Delete(ctx context.Context, id string) error {
	unlock := m.locks.Lock(id)
	defer unlock()

	if _, err := m.store.Get(ctx, id); err != nil {
		return err
	}
	return m.store.Delete(ctx, id)
}

func (m *Manager) current() (*planner.Engine, error) {
	if e := m.engine(); e != nil {
		return e, nil
	}
	return nil, planner.ErrNoCatalog
}

// Store returns the underlying store
func (m *Manager) Store() Store {
	return m.store
}

// keyedMutex hands out one mutex per key and forgets it when unused
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyLock)}
}

func (k *keyedMutex) Lock(key string) func() {
	k.mu.Lock()
	l, ok := k.locks[key]
	if !ok {
		l = &keyLock{}
		k.locks[key] = l
	}
	l.refs++
	k.mu.Unlock()

	l.Lock()
	return func() {
		l.Unlock()
		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, key)
		}
		k.mu.Unlock()
	}
}

func (k *keyedMutex) size() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
