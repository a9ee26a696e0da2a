package session

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Abm32/Neuroshift/internal"
	"github.com/Abm32/Neuroshift/internal/auth"
	"github.com/Abm32/Neuroshift/internal/storage"
)

func newTestRepos(t *testing.T) *storage.Repositories {
	dir := t.TempDir()
	s, err := storage.NewFileStorage(
		filepath.Join(dir, "accounts.json"),
		filepath.Join(dir, "profiles.json"),
		filepath.Join(dir, "checkins.json"),
		filepath.Join(dir, "tasks.json"),
		"",
		internal.NopLogger{},
	)
	assert.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return &storage.Repositories{
		Accounts: s,
		Profiles: s,
		Checkins: s,
		Tasks:    s,
		Content:  s,
	}
}

func newTestManager(t *testing.T) (*Manager, *auth.Service, *storage.Repositories) {
	repos := newTestRepos(t)
	authSvc := auth.NewService(repos.Accounts, "test-secret", time.Hour, internal.NopLogger{})
	m := NewManager(authSvc, repos, internal.NopLogger{})
	t.Cleanup(m.Close)
	return m, authSvc, repos
}

func TestStoreFor_NilSession(t *testing.T) {
	m, _, _ := newTestManager(t)
	_, err := m.StoreFor(context.Background(), nil)
	assert.Error(t, err)
}

func TestStoreFor_PreOnboardingUserlessStore(t *testing.T) {
	m, authSvc, _ := newTestManager(t)
	sess, err := authSvc.SignUp(context.Background(), "new@example.com", "longenough")
	assert.NoError(t, err)

	st, err := m.StoreFor(context.Background(), sess)
	assert.NoError(t, err)
	assert.Nil(t, st.User())
}

func TestStoreFor_LoadsProfileAndPrimesMirrors(t *testing.T) {
	m, authSvc, repos := newTestManager(t)
	ctx := context.Background()

	sess, err := authSvc.SignUp(ctx, "ready@example.com", "longenough")
	assert.NoError(t, err)

	assert.NoError(t, repos.Profiles.CreateProfile(ctx, &internal.User{ID: sess.UserID, WakeTime: "07:00"}))
	assert.NoError(t, repos.Checkins.SaveCheckin(ctx, &internal.DailyCheckin{ID: "c1", UserID: sess.UserID, Date: "2026-08-30"}))

	st, err := m.StoreFor(ctx, sess)
	assert.NoError(t, err)
	assert.NotNil(t, st.User())
	assert.Equal(t, sess.UserID, st.User().ID)
	assert.Len(t, st.Checkins(), 1)
}

func TestStoreFor_SameStoreAcrossRequests(t *testing.T) {
	m, authSvc, _ := newTestManager(t)
	sess, err := authSvc.SignUp(context.Background(), "same@example.com", "longenough")
	assert.NoError(t, err)

	first, err := m.StoreFor(context.Background(), sess)
	assert.NoError(t, err)
	second, err := m.StoreFor(context.Background(), sess)
	assert.NoError(t, err)
	assert.Same(t, first, second)
}

func TestSignOut_TearsDownStore(t *testing.T) {
	m, authSvc, _ := newTestManager(t)
	sess, err := authSvc.SignUp(context.Background(), "bye@example.com", "longenough")
	assert.NoError(t, err)

	st, err := m.StoreFor(context.Background(), sess)
	assert.NoError(t, err)

	authSvc.SignOut(sess.Token)

	// The teardown runs on the event loop; give it a moment.
	assert.Eventually(t, func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		_, ok := m.stores[sess.UserID]
		return !ok
	}, time.Second, 10*time.Millisecond)
	assert.Nil(t, st.User())
}
