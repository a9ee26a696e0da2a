package storage

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Abm32/Neuroshift/internal"
)

type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(dsn string, logger internal.Logger) (*PostgresStorage, error) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) Close() error {
	p.pool.Close()
	return nil
}

// --- AccountRepository ---

func (p *PostgresStorage) CreateAccount(ctx context.Context, account *internal.Account) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO accounts (id, email, password_hash, created_at) VALUES ($1, $2, $3, $4)`,
		account.ID, account.Email, account.PasswordHash, account.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert account: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) GetAccountByEmail(ctx context.Context, email string) (*internal.Account, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, email, password_hash, created_at FROM accounts WHERE email = $1`, email)
	return scanAccount(row)
}

func (p *PostgresStorage) GetAccountByID(ctx context.Context, id string) (*internal.Account, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, email, password_hash, created_at FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

func scanAccount(row pgx.Row) (*internal.Account, error) {
	var a internal.Account
	if err := row.Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// --- ProfileRepository ---

func (p *PostgresStorage) CreateProfile(ctx context.Context, profile *internal.User) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO users (id, wake_time, sleep_time, work_start_time, work_end_time, energy_baseline, focus_challenges, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		profile.ID, profile.WakeTime, profile.SleepTime, profile.WorkStartTime, profile.WorkEndTime, profile.EnergyBaseline, profile.FocusChallenges, profile.CreatedAt, profile.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert profile: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) GetProfile(ctx context.Context, userID string) (*internal.User, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, wake_time, sleep_time, work_start_time, work_end_time, energy_baseline, focus_challenges, created_at, updated_at FROM users WHERE id = $1`, userID)
	var u internal.User
	if err := row.Scan(&u.ID, &u.WakeTime, &u.SleepTime, &u.WorkStartTime, &u.WorkEndTime, &u.EnergyBaseline, &u.FocusChallenges, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to query profile: %v", err)
		return nil, err
	}
	return &u, nil
}

// --- CheckinRepository ---

func (p *PostgresStorage) SaveCheckin(ctx context.Context, c *internal.DailyCheckin) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO daily_checkins (id, user_id, date, energy_level, mood_rating, focus_rating, sleep_quality, notes, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.UserID, c.Date, c.EnergyLevel, c.MoodRating, c.FocusRating, c.SleepQuality, c.Notes, c.CreatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert checkin: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) ListCheckins(ctx context.Context, userID string) ([]internal.DailyCheckin, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, user_id, date, energy_level, mood_rating, focus_rating, sleep_quality, notes, created_at FROM daily_checkins WHERE user_id = $1 ORDER BY date DESC, created_at DESC`, userID)
	if err != nil {
		p.logger.Errorf("failed to query checkins: %v", err)
		return nil, err
	}
	defer rows.Close()

	checkins := []internal.DailyCheckin{}
	for rows.Next() {
		var c internal.DailyCheckin
		if err := rows.Scan(&c.ID, &c.UserID, &c.Date, &c.EnergyLevel, &c.MoodRating, &c.FocusRating, &c.SleepQuality, &c.Notes, &c.CreatedAt); err != nil {
			p.logger.Errorf("failed to scan checkin: %v", err)
			return nil, err
		}
		checkins = append(checkins, c)
	}
	return checkins, rows.Err()
}

// --- TaskRepository ---

func (p *PostgresStorage) SaveTask(ctx context.Context, t *internal.Task) error {
	_, err := p.pool.Exec(ctx, `INSERT INTO tasks (id, user_id, title, description, category, due_date, completed, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.UserID, t.Title, t.Description, t.Category, t.DueDate, t.Completed, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		p.logger.Errorf("failed to insert task: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) SaveTasks(ctx context.Context, tasks []*internal.Task) error {
	batch := &pgx.Batch{}
	for _, t := range tasks {
		batch.Queue(`INSERT INTO tasks (id, user_id, title, description, category, due_date, completed, created_at, updated_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			t.ID, t.UserID, t.Title, t.Description, t.Category, t.DueDate, t.Completed, t.CreatedAt, t.UpdatedAt)
	}
	br := p.pool.SendBatch(ctx, batch)
	defer br.Close()
	for range tasks {
		if _, err := br.Exec(); err != nil {
			p.logger.Errorf("failed to batch-insert tasks: %v", err)
			return err
		}
	}
	return nil
}

func (p *PostgresStorage) UpdateTask(ctx context.Context, id, userID string, patch internal.TaskPatch) (*internal.Task, error) {
	row := p.pool.QueryRow(ctx, `UPDATE tasks SET
		title = COALESCE($3, title),
		description = COALESCE($4, description),
		category = COALESCE($5, category),
		due_date = COALESCE($6, due_date),
		completed = COALESCE($7, completed),
		updated_at = $8
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, title, description, category, due_date, completed, created_at, updated_at`,
		id, userID, patch.Title, patch.Description, patch.Category, patch.DueDate, patch.Completed, time.Now())
	var t internal.Task
	if err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Category, &t.DueDate, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		p.logger.Errorf("failed to update task: %v", err)
		return nil, err
	}
	return &t, nil
}

func (p *PostgresStorage) ListTasks(ctx context.Context, userID string) ([]internal.Task, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, user_id, title, description, category, due_date, completed, created_at, updated_at FROM tasks WHERE user_id = $1 ORDER BY due_date ASC, created_at ASC`, userID)
	if err != nil {
		p.logger.Errorf("failed to query tasks: %v", err)
		return nil, err
	}
	defer rows.Close()

	tasks := []internal.Task{}
	for rows.Next() {
		var t internal.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Category, &t.DueDate, &t.Completed, &t.CreatedAt, &t.UpdatedAt); err != nil {
			p.logger.Errorf("failed to scan task: %v", err)
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// --- ContentRepository ---

func (p *PostgresStorage) ListContent(ctx context.Context) ([]internal.EducationalContent, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, title, content, category, reading_time, created_at, updated_at FROM educational_content ORDER BY created_at DESC`)
	if err != nil {
		p.logger.Errorf("failed to query educational content: %v", err)
		return nil, err
	}
	defer rows.Close()

	content := []internal.EducationalContent{}
	for rows.Next() {
		var c internal.EducationalContent
		if err := rows.Scan(&c.ID, &c.Title, &c.Content, &c.Category, &c.ReadingTime, &c.CreatedAt, &c.UpdatedAt); err != nil {
			p.logger.Errorf("failed to scan educational content: %v", err)
			return nil, err
		}
		content = append(content, c)
	}
	return content, rows.Err()
}

// --- Compile-time assertions ---
var _ AccountRepository = (*PostgresStorage)(nil)
var _ ProfileRepository = (*PostgresStorage)(nil)
var _ CheckinRepository = (*PostgresStorage)(nil)
var _ TaskRepository = (*PostgresStorage)(nil)
var _ ContentRepository = (*PostgresStorage)(nil)
