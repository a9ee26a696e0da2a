// Package session keeps one application store alive per signed-in user,
// driven by the auth service's session-change events.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/Abm32/Neuroshift/internal"
	"github.com/Abm32/Neuroshift/internal/auth"
	"github.com/Abm32/Neuroshift/internal/storage"
	"github.com/Abm32/Neuroshift/internal/store"
)

// Manager builds a store when a session opens, tears it down when the session
// closes, and hands the right store to request handlers in between.
type Manager struct {
	repos  *storage.Repositories
	logger internal.Logger

	mu     sync.Mutex
	stores map[string]*store.Store // userID -> store

	cancel func()
	done   chan struct{}
}

func NewManager(authSvc *auth.Service, repos *storage.Repositories, logger internal.Logger) *Manager {
	m := &Manager{
		repos:  repos,
		logger: logger,
		stores: make(map[string]*store.Store),
		done:   make(chan struct{}),
	}

	events, cancel := authSvc.Subscribe()
	m.cancel = cancel
	go m.run(events)
	return m
}

// run consumes session-change events until the subscription is cancelled.
func (m *Manager) run(events <-chan auth.Event) {
	defer close(m.done)
	for ev := range events {
		if ev.Session == nil {
			m.teardown(ev.UserID)
			continue
		}
		if _, err := m.bootstrap(context.Background(), ev.UserID); err != nil {
			m.logger.Errorf("session: bootstrap for user %s failed: %v", ev.UserID, err)
		}
	}
}

// StoreFor returns the live store for the session, bootstrapping one on
// demand when the event-driven path has not built it yet (e.g. a request
// arriving right after process restart with a still-valid token).
func (m *Manager) StoreFor(ctx context.Context, sess *auth.Session) (*store.Store, error) {
	if sess == nil {
		return nil, errors.New("session: no session")
	}

	m.mu.Lock()
	st, ok := m.stores[sess.UserID]
	m.mu.Unlock()
	if ok {
		return st, nil
	}
	return m.bootstrap(ctx, sess.UserID)
}

// bootstrap builds the user's store, loads their profile if onboarding has
// completed, and primes the data mirrors.
func (m *Manager) bootstrap(ctx context.Context, userID string) (*store.Store, error) {
	st := store.New(m.repos.Checkins, m.repos.Tasks, m.repos.Content, m.logger)

	profile, err := m.repos.Profiles.GetProfile(ctx, userID)
	switch {
	case err == nil:
		st.SetUser(profile)
		if err := st.FetchUserData(ctx); err != nil {
			m.logger.Warnf("session: initial data fetch for user %s failed: %v", userID, err)
		}
	case errors.Is(err, storage.ErrNotFound):
		// Signed up but not yet onboarded; the store stays userless until
		// onboarding submits a profile.
	default:
		return nil, err
	}

	m.mu.Lock()
	if existing, ok := m.stores[userID]; ok {
		// Lost a bootstrap race; keep the first store.
		m.mu.Unlock()
		return existing, nil
	}
	m.stores[userID] = st
	m.mu.Unlock()
	return st, nil
}

func (m *Manager) teardown(userID string) {
	m.mu.Lock()
	st, ok := m.stores[userID]
	if ok {
		delete(m.stores, userID)
	}
	m.mu.Unlock()
	if ok {
		st.SetUser(nil)
	}
}

// Close deregisters the session listener and waits for the event loop to
// drain.
func (m *Manager) Close() {
	m.cancel()
	<-m.done
}
