package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/Abm32/Neuroshift/internal"
)

// FileStorage keeps every table in memory and persists each one to its own
// JSON file through a debounced background save worker.
type FileStorage struct {
	accounts     map[string]*internal.Account // id -> Account
	accountEmail map[string]*internal.Account // email -> Account
	profiles     map[string]*internal.User    // userID -> profile

	checkins         map[string]*internal.DailyCheckin   // id -> Checkin
	userCheckinIndex map[string][]*internal.DailyCheckin // userID -> checkins (date descending)

	tasks         map[string]*internal.Task   // id -> Task
	userTaskIndex map[string][]*internal.Task // userID -> tasks (due date ascending)

	content []*internal.EducationalContent // read-only, loaded once

	mu sync.RWMutex

	accountsFile string
	profilesFile string
	checkinsFile string
	tasksFile    string
	contentFile  string

	saveAccountsChan chan struct{}
	saveProfilesChan chan struct{}
	saveCheckinsChan chan struct{}
	saveTasksChan    chan struct{}
	shutdownChan     chan struct{}
	saveDelay        time.Duration

	logger internal.Logger
}

func NewFileStorage(accountsFile, profilesFile, checkinsFile, tasksFile, contentFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		accounts:         make(map[string]*internal.Account),
		accountEmail:     make(map[string]*internal.Account),
		profiles:         make(map[string]*internal.User),
		checkins:         make(map[string]*internal.DailyCheckin),
		userCheckinIndex: make(map[string][]*internal.DailyCheckin),
		tasks:            make(map[string]*internal.Task),
		userTaskIndex:    make(map[string][]*internal.Task),
		accountsFile:     accountsFile,
		profilesFile:     profilesFile,
		checkinsFile:     checkinsFile,
		tasksFile:        tasksFile,
		contentFile:      contentFile,
		saveAccountsChan: make(chan struct{}, 1),
		saveProfilesChan: make(chan struct{}, 1),
		saveCheckinsChan: make(chan struct{}, 1),
		saveTasksChan:    make(chan struct{}, 1),
		shutdownChan:     make(chan struct{}),
		saveDelay:        500 * time.Millisecond,
		logger:           logger,
	}

	if err := s.loadAccounts(); err != nil {
		logger.Errorf("storage: failed to load accounts: %v", err)
		return nil, err
	}
	if err := s.loadProfiles(); err != nil {
		logger.Errorf("storage: failed to load profiles: %v", err)
		return nil, err
	}
	if err := s.loadCheckins(); err != nil {
		logger.Errorf("storage: failed to load checkins: %v", err)
		return nil, err
	}
	if err := s.loadTasks(); err != nil {
		logger.Errorf("storage: failed to load tasks: %v", err)
		return nil, err
	}
	if err := s.loadContent(); err != nil {
		logger.Errorf("storage: failed to load educational content: %v", err)
		return nil, err
	}

	go s.saveWorker(s.saveAccountsChan, s.saveAccounts)
	go s.saveWorker(s.saveProfilesChan, s.saveProfiles)
	go s.saveWorker(s.saveCheckinsChan, s.saveCheckins)
	go s.saveWorker(s.saveTasksChan, s.saveTasks)

	return s, nil
}

func loadJSONFile[T any](path string) ([]*T, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var rows []*T
	if err := json.NewDecoder(file).Decode(&rows); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return rows, nil
}

func (s *FileStorage) loadAccounts() error {
	rows, err := loadJSONFile[internal.Account](s.accountsFile)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range rows {
		s.accounts[a.ID] = a
		s.accountEmail[a.Email] = a
	}
	return nil
}

func (s *FileStorage) loadProfiles() error {
	rows, err := loadJSONFile[internal.User](s.profilesFile)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range rows {
		s.profiles[p.ID] = p
	}
	return nil
}

func (s *FileStorage) loadCheckins() error {
	rows, err := loadJSONFile[internal.DailyCheckin](s.checkinsFile)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range rows {
		s.checkins[c.ID] = c
		s.userCheckinIndex[c.UserID] = append(s.userCheckinIndex[c.UserID], c)
	}

	// Sort each user's checkins descending by date
	for userID := range s.userCheckinIndex {
		sortCheckinsDesc(s.userCheckinIndex[userID])
	}
	return nil
}

func (s *FileStorage) loadTasks() error {
	rows, err := loadJSONFile[internal.Task](s.tasksFile)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range rows {
		s.tasks[t.ID] = t
		s.userTaskIndex[t.UserID] = append(s.userTaskIndex[t.UserID], t)
	}

	// Sort each user's tasks ascending by due date
	for userID := range s.userTaskIndex {
		sortTasksAsc(s.userTaskIndex[userID])
	}
	return nil
}

func (s *FileStorage) loadContent() error {
	if s.contentFile == "" {
		return nil
	}
	rows, err := loadJSONFile[internal.EducationalContent](s.contentFile)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content = rows
	sort.Slice(s.content, func(i, j int) bool {
		return s.content[i].CreatedAt.After(s.content[j].CreatedAt)
	})
	return nil
}

func sortCheckinsDesc(checkins []*internal.DailyCheckin) {
	sort.Slice(checkins, func(i, j int) bool {
		if checkins[i].Date != checkins[j].Date {
			return checkins[i].Date > checkins[j].Date
		}
		return checkins[i].CreatedAt.After(checkins[j].CreatedAt)
	})
}

func sortTasksAsc(tasks []*internal.Task) {
	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].DueDate != tasks[j].DueDate {
			return tasks[i].DueDate < tasks[j].DueDate
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveAccounts() error {
	s.mu.RLock()
	rows := make([]*internal.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		rows = append(rows, a)
	}
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.accountsFile, rows)
}

func (s *FileStorage) saveProfiles() error {
	s.mu.RLock()
	rows := make([]*internal.User, 0, len(s.profiles))
	for _, p := range s.profiles {
		rows = append(rows, p)
	}
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.profilesFile, rows)
}

func (s *FileStorage) saveCheckins() error {
	s.mu.RLock()
	rows := make([]*internal.DailyCheckin, 0, len(s.checkins))
	for _, c := range s.checkins {
		rows = append(rows, c)
	}
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.checkinsFile, rows)
}

func (s *FileStorage) saveTasks() error {
	s.mu.RLock()
	rows := make([]*internal.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		rows = append(rows, t)
	}
	s.mu.RUnlock()
	return atomicWriteFileJSON(s.tasksFile, rows)
}

// saveWorker batches save signals to avoid frequent disk writes.
func (s *FileStorage) saveWorker(signal <-chan struct{}, save func() error) {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-signal:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := save(); err != nil {
				s.logger.Errorf("storage: error saving: %v", err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func signalSave(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

func (s *FileStorage) Close() error {
	close(s.shutdownChan)

	// Save pending data synchronously on shutdown
	if err := s.saveAccounts(); err != nil {
		return err
	}
	if err := s.saveProfiles(); err != nil {
		return err
	}
	if err := s.saveCheckins(); err != nil {
		return err
	}
	return s.saveTasks()
}

// --- AccountRepository ---

func (s *FileStorage) CreateAccount(ctx context.Context, account *internal.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accountEmail[account.Email]; exists {
		return errors.New("storage: email is already in use")
	}
	s.accounts[account.ID] = account
	s.accountEmail[account.Email] = account
	signalSave(s.saveAccountsChan)
	return nil
}

func (s *FileStorage) GetAccountByEmail(ctx context.Context, email string) (*internal.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accountEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	return a, nil
}

func (s *FileStorage) GetAccountByID(ctx context.Context, id string) (*internal.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok {
		return nil, ErrNotFound
	}
	return a, nil
}

// --- ProfileRepository ---

func (s *FileStorage) CreateProfile(ctx context.Context, profile *internal.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.profiles[profile.ID]; exists {
		return errors.New("storage: profile already exists")
	}
	s.profiles[profile.ID] = profile
	signalSave(s.saveProfilesChan)
	return nil
}

func (s *FileStorage) GetProfile(ctx context.Context, userID string) (*internal.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

// --- CheckinRepository ---

func (s *FileStorage) SaveCheckin(ctx context.Context, checkin *internal.DailyCheckin) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.checkins[checkin.ID] = checkin
	s.userCheckinIndex[checkin.UserID] = append(s.userCheckinIndex[checkin.UserID], checkin)
	sortCheckinsDesc(s.userCheckinIndex[checkin.UserID])

	signalSave(s.saveCheckinsChan)
	return nil
}

func (s *FileStorage) ListCheckins(ctx context.Context, userID string) ([]internal.DailyCheckin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, ok := s.userCheckinIndex[userID]
	if !ok {
		return []internal.DailyCheckin{}, nil
	}
	out := make([]internal.DailyCheckin, len(rows))
	for i, c := range rows {
		out[i] = *c
	}
	return out, nil
}

// --- TaskRepository ---

func (s *FileStorage) SaveTask(ctx context.Context, task *internal.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveTaskLocked(task)
	signalSave(s.saveTasksChan)
	return nil
}

func (s *FileStorage) SaveTasks(ctx context.Context, tasks []*internal.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range tasks {
		s.saveTaskLocked(t)
	}
	signalSave(s.saveTasksChan)
	return nil
}

func (s *FileStorage) saveTaskLocked(task *internal.Task) {
	s.tasks[task.ID] = task
	s.userTaskIndex[task.UserID] = append(s.userTaskIndex[task.UserID], task)
	sortTasksAsc(s.userTaskIndex[task.UserID])
}

func (s *FileStorage) UpdateTask(ctx context.Context, id, userID string, patch internal.TaskPatch) (*internal.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok || t.UserID != userID {
		return nil, ErrNotFound
	}
	applyTaskPatch(t, patch)
	t.UpdatedAt = time.Now()
	sortTasksAsc(s.userTaskIndex[t.UserID])

	signalSave(s.saveTasksChan)
	updated := *t
	return &updated, nil
}

func applyTaskPatch(t *internal.Task, patch internal.TaskPatch) {
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Category != nil {
		t.Category = *patch.Category
	}
	if patch.DueDate != nil {
		t.DueDate = *patch.DueDate
	}
	if patch.Completed != nil {
		t.Completed = *patch.Completed
	}
}

func (s *FileStorage) ListTasks(ctx context.Context, userID string) ([]internal.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, ok := s.userTaskIndex[userID]
	if !ok {
		return []internal.Task{}, nil
	}
	out := make([]internal.Task, len(rows))
	for i, t := range rows {
		out[i] = *t
	}
	return out, nil
}

// --- ContentRepository ---

func (s *FileStorage) ListContent(ctx context.Context) ([]internal.EducationalContent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]internal.EducationalContent, len(s.content))
	for i, c := range s.content {
		out[i] = *c
	}
	return out, nil
}

// --- Compile-time assertions ---
var _ AccountRepository = (*FileStorage)(nil)
var _ ProfileRepository = (*FileStorage)(nil)
var _ CheckinRepository = (*FileStorage)(nil)
var _ TaskRepository = (*FileStorage)(nil)
var _ ContentRepository = (*FileStorage)(nil)
