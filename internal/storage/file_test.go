package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Abm32/Neuroshift/internal"
)

type filePaths struct {
	accounts, profiles, checkins, tasks, content string
}

func tempPaths(t *testing.T) filePaths {
	dir := t.TempDir()
	return filePaths{
		accounts: filepath.Join(dir, "accounts.json"),
		profiles: filepath.Join(dir, "profiles.json"),
		checkins: filepath.Join(dir, "checkins.json"),
		tasks:    filepath.Join(dir, "tasks.json"),
		content:  filepath.Join(dir, "content.json"),
	}
}

func newTestFileStorage(t *testing.T, p filePaths) *FileStorage {
	s, err := NewFileStorage(p.accounts, p.profiles, p.checkins, p.tasks, p.content, internal.NopLogger{})
	assert.NoError(t, err)
	return s
}

func TestFileStorage_AccountLifecycle(t *testing.T) {
	s := newTestFileStorage(t, tempPaths(t))
	defer s.Close()
	ctx := context.Background()

	account := &internal.Account{ID: "a1", Email: "a@example.com", PasswordHash: "x", CreatedAt: time.Now()}
	assert.NoError(t, s.CreateAccount(ctx, account))

	err := s.CreateAccount(ctx, &internal.Account{ID: "a2", Email: "a@example.com"})
	assert.Error(t, err)

	byEmail, err := s.GetAccountByEmail(ctx, "a@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "a1", byEmail.ID)

	byID, err := s.GetAccountByID(ctx, "a1")
	assert.NoError(t, err)
	assert.Equal(t, "a@example.com", byID.Email)

	_, err = s.GetAccountByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStorage_ProfileUniquePerUser(t *testing.T) {
	s := newTestFileStorage(t, tempPaths(t))
	defer s.Close()
	ctx := context.Background()

	assert.NoError(t, s.CreateProfile(ctx, &internal.User{ID: "u1", WakeTime: "07:00"}))
	assert.Error(t, s.CreateProfile(ctx, &internal.User{ID: "u1", WakeTime: "08:00"}))

	p, err := s.GetProfile(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "07:00", p.WakeTime)

	_, err = s.GetProfile(ctx, "u2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStorage_CheckinOrderingAndScoping(t *testing.T) {
	s := newTestFileStorage(t, tempPaths(t))
	defer s.Close()
	ctx := context.Background()

	assert.NoError(t, s.SaveCheckin(ctx, &internal.DailyCheckin{ID: "c1", UserID: "u1", Date: "2026-08-28"}))
	assert.NoError(t, s.SaveCheckin(ctx, &internal.DailyCheckin{ID: "c2", UserID: "u1", Date: "2026-08-30"}))
	assert.NoError(t, s.SaveCheckin(ctx, &internal.DailyCheckin{ID: "c3", UserID: "u2", Date: "2026-08-29"}))

	rows, err := s.ListCheckins(ctx, "u1")
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "2026-08-30", rows[0].Date)
	assert.Equal(t, "2026-08-28", rows[1].Date)

	empty, err := s.ListCheckins(ctx, "nobody")
	assert.NoError(t, err)
	assert.Empty(t, empty)
}

func TestFileStorage_TaskOrderingAndPatch(t *testing.T) {
	s := newTestFileStorage(t, tempPaths(t))
	defer s.Close()
	ctx := context.Background()

	assert.NoError(t, s.SaveTasks(ctx, []*internal.Task{
		{ID: "t1", UserID: "u1", Title: "later", DueDate: "2026-09-05"},
		{ID: "t2", UserID: "u1", Title: "sooner", DueDate: "2026-09-01"},
	}))

	rows, err := s.ListTasks(ctx, "u1")
	assert.NoError(t, err)
	assert.Equal(t, "t2", rows[0].ID)
	assert.Equal(t, "t1", rows[1].ID)

	done := true
	title := "renamed"
	updated, err := s.UpdateTask(ctx, "t1", "u1", internal.TaskPatch{Completed: &done, Title: &title})
	assert.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, "2026-09-05", updated.DueDate)

	_, err = s.UpdateTask(ctx, "missing", "u1", internal.TaskPatch{Completed: &done})
	assert.ErrorIs(t, err, ErrNotFound)

	// Another user's id does not reach the row.
	_, err = s.UpdateTask(ctx, "t2", "u2", internal.TaskPatch{Completed: &done})
	assert.ErrorIs(t, err, ErrNotFound)
	rows, err = s.ListTasks(ctx, "u1")
	assert.NoError(t, err)
	assert.False(t, rows[0].Completed)
}

func TestFileStorage_PersistsAcrossReopen(t *testing.T) {
	p := tempPaths(t)
	s := newTestFileStorage(t, p)
	ctx := context.Background()

	assert.NoError(t, s.CreateAccount(ctx, &internal.Account{ID: "a1", Email: "a@example.com"}))
	assert.NoError(t, s.CreateProfile(ctx, &internal.User{ID: "a1", WakeTime: "07:00"}))
	assert.NoError(t, s.SaveCheckin(ctx, &internal.DailyCheckin{ID: "c1", UserID: "a1", Date: "2026-08-30"}))
	assert.NoError(t, s.SaveTask(ctx, &internal.Task{ID: "t1", UserID: "a1", Title: "walk", DueDate: "2026-09-01"}))
	assert.NoError(t, s.Close())

	reopened := newTestFileStorage(t, p)
	defer reopened.Close()

	account, err := reopened.GetAccountByEmail(ctx, "a@example.com")
	assert.NoError(t, err)
	assert.Equal(t, "a1", account.ID)

	profile, err := reopened.GetProfile(ctx, "a1")
	assert.NoError(t, err)
	assert.Equal(t, "07:00", profile.WakeTime)

	checkins, err := reopened.ListCheckins(ctx, "a1")
	assert.NoError(t, err)
	assert.Len(t, checkins, 1)

	tasks, err := reopened.ListTasks(ctx, "a1")
	assert.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestFileStorage_LoadsContentFile(t *testing.T) {
	p := tempPaths(t)
	err := os.WriteFile(p.content, []byte(`[
		{"id":"c1","title":"Old","created_at":"2026-01-01T00:00:00Z"},
		{"id":"c2","title":"New","created_at":"2026-06-01T00:00:00Z"}
	]`), 0644)
	assert.NoError(t, err)

	s := newTestFileStorage(t, p)
	defer s.Close()

	rows, err := s.ListContent(context.Background())
	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, "c2", rows[0].ID)
}
