// Package store holds the session-scoped application state: the signed-in
// user's profile, the local mirrors of their checkins and tasks, and the
// shared loading/error fields the dashboard reads. Every action talks to the
// repositories and reconciles the mirror on success; failures are flattened
// into the store's error string and never escape as panics.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Abm32/Neuroshift/internal"
	"github.com/Abm32/Neuroshift/internal/storage"
)

// Store is one user session's state container. A Store is built at session
// start and torn down at sign-out; it is safe for concurrent use, with
// actions serialized by a single mutex.
type Store struct {
	mu       sync.Mutex
	user     *internal.User
	checkins []internal.DailyCheckin
	tasks    []internal.Task
	content  []internal.EducationalContent
	loading  bool
	errMsg   string

	checkinRepo storage.CheckinRepository
	taskRepo    storage.TaskRepository
	contentRepo storage.ContentRepository
	logger      internal.Logger
	now         func() time.Time
}

func New(checkins storage.CheckinRepository, tasks storage.TaskRepository, content storage.ContentRepository, logger internal.Logger) *Store {
	return &Store{
		checkinRepo: checkins,
		taskRepo:    tasks,
		contentRepo: content,
		logger:      logger,
		now:         time.Now,
	}
}

// SetUser assigns the current user. Passing nil clears session data.
func (s *Store) SetUser(user *internal.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	if user == nil {
		s.checkins = nil
		s.tasks = nil
	}
}

func (s *Store) User() *internal.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// FetchUserData refreshes the checkin and task mirrors from storage. Both
// collections are replaced together or not at all: if the checkins read
// fails, the tasks read is never issued and both mirrors keep their pre-call
// values. A no-op when no user is set.
func (s *Store) FetchUserData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}

	s.loading = true
	s.errMsg = ""

	checkins, err := s.checkinRepo.ListCheckins(ctx, s.user.ID)
	if err != nil {
		s.fail("fetch checkins", err)
		return err
	}

	tasks, err := s.taskRepo.ListTasks(ctx, s.user.ID)
	if err != nil {
		s.fail("fetch tasks", err)
		return err
	}

	s.checkins = checkins
	s.tasks = tasks
	s.loading = false
	return nil
}

// AddCheckin inserts a checkin for the current user and prepends the stored
// row to the local mirror. The user id is always the session user's; caller
// supplied ownership is ignored. A no-op when no user is set.
func (s *Store) AddCheckin(ctx context.Context, checkin internal.DailyCheckin) (*internal.DailyCheckin, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, nil
	}

	checkin.ID = uuid.NewString()
	checkin.UserID = s.user.ID
	checkin.CreatedAt = s.now()
	if checkin.Date == "" {
		checkin.Date = checkin.CreatedAt.Format(internal.DateLayout)
	}

	if err := s.checkinRepo.SaveCheckin(ctx, &checkin); err != nil {
		s.fail("add checkin", err)
		return nil, err
	}

	s.checkins = append([]internal.DailyCheckin{checkin}, s.checkins...)
	return &checkin, nil
}

// AddTask inserts a task for the current user and appends the stored row to
// the local mirror. A no-op when no user is set.
func (s *Store) AddTask(ctx context.Context, task internal.Task) (*internal.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, nil
	}

	task.ID = uuid.NewString()
	task.UserID = s.user.ID
	task.CreatedAt = s.now()
	task.UpdatedAt = task.CreatedAt

	if err := s.taskRepo.SaveTask(ctx, &task); err != nil {
		s.fail("add task", err)
		return nil, err
	}

	s.tasks = append(s.tasks, task)
	return &task, nil
}

// AddTasks bulk-inserts externally built tasks (the onboarding generator path)
// and appends them to the mirror.
func (s *Store) AddTasks(ctx context.Context, tasks []internal.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil || len(tasks) == 0 {
		return nil
	}

	rows := make([]*internal.Task, len(tasks))
	for i := range tasks {
		tasks[i].ID = uuid.NewString()
		tasks[i].UserID = s.user.ID
		tasks[i].CreatedAt = s.now()
		tasks[i].UpdatedAt = tasks[i].CreatedAt
		rows[i] = &tasks[i]
	}

	if err := s.taskRepo.SaveTasks(ctx, rows); err != nil {
		s.fail("add tasks", err)
		return err
	}

	s.tasks = append(s.tasks, tasks...)
	return nil
}

// UpdateTask patches the task with the given id in storage and merges the
// returned row into the matching mirror entry; all other entries are
// untouched. The update is scoped to the session user, so another user's
// task id resolves to ErrNotFound. A no-op when no user is set.
func (s *Store) UpdateTask(ctx context.Context, id string, patch internal.TaskPatch) (*internal.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil, nil
	}

	updated, err := s.taskRepo.UpdateTask(ctx, id, s.user.ID, patch)
	if err != nil {
		s.fail("update task", err)
		return nil, err
	}

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i] = *updated
			break
		}
	}
	return updated, nil
}

// FetchEducationalContent refreshes the content mirror. Unlike FetchUserData
// it does not require a user: content is not user-scoped.
func (s *Store) FetchEducationalContent(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, err := s.contentRepo.ListContent(ctx)
	if err != nil {
		s.fail("fetch educational content", err)
		return err
	}
	s.content = content
	return nil
}

// Checkins returns a copy of the mirror sorted by date descending. The mirror
// itself is treated as unsorted; ordering is re-asserted on every read.
func (s *Store) Checkins() []internal.DailyCheckin {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]internal.DailyCheckin, len(s.checkins))
	copy(out, s.checkins)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date > out[j].Date
	})
	return out
}

// Tasks returns a copy of the mirror sorted by due date ascending.
func (s *Store) Tasks() []internal.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]internal.Task, len(s.tasks))
	copy(out, s.tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate < out[j].DueDate
	})
	return out
}

// Content returns a copy of the content mirror sorted by creation descending.
func (s *Store) Content() []internal.EducationalContent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]internal.EducationalContent, len(s.content))
	copy(out, s.content)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last action failure, or "" if the last state-clearing
// action succeeded.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// fail records an action failure. Callers hold s.mu.
func (s *Store) fail(action string, err error) {
	s.loading = false
	s.errMsg = err.Error()
	s.logger.Errorf("store: %s: %v", action, err)
}
