package storage

import (
	"context"
	"errors"

	"github.com/Abm32/Neuroshift/internal"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("storage: not found")

type AccountRepository interface {
	CreateAccount(ctx context.Context, account *internal.Account) error
	GetAccountByEmail(ctx context.Context, email string) (*internal.Account, error)
	GetAccountByID(ctx context.Context, id string) (*internal.Account, error)
}

type ProfileRepository interface {
	CreateProfile(ctx context.Context, profile *internal.User) error
	GetProfile(ctx context.Context, userID string) (*internal.User, error)
}

type CheckinRepository interface {
	SaveCheckin(ctx context.Context, checkin *internal.DailyCheckin) error
	// ListCheckins returns the user's checkins ordered by date descending.
	ListCheckins(ctx context.Context, userID string) ([]internal.DailyCheckin, error)
}

type TaskRepository interface {
	SaveTask(ctx context.Context, task *internal.Task) error
	SaveTasks(ctx context.Context, tasks []*internal.Task) error
	// UpdateTask applies the non-nil patch fields to the task matching both id
	// and owner and returns the updated row. ErrNotFound if no task matches;
	// a task owned by another user is indistinguishable from a missing one.
	UpdateTask(ctx context.Context, id, userID string, patch internal.TaskPatch) (*internal.Task, error)
	// ListTasks returns the user's tasks ordered by due date ascending.
	ListTasks(ctx context.Context, userID string) ([]internal.Task, error)
}

// ContentRepository is read-only: educational content is authored out of band.
type ContentRepository interface {
	// ListContent returns all content ordered by creation time descending.
	ListContent(ctx context.Context) ([]internal.EducationalContent, error)
}

// Repositories bundles every repository backed by one storage engine.
type Repositories struct {
	Accounts AccountRepository
	Profiles ProfileRepository
	Checkins CheckinRepository
	Tasks    TaskRepository
	Content  ContentRepository

	closer interface{ Close() error }
}

func (r *Repositories) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}
