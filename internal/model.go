package internal

import "time"

// DateLayout is the calendar-date format used for checkin dates and task due dates.
const DateLayout = "2006-01-02"

// Task categories understood by the dashboard and the task generator.
const (
	CategoryFocus   = "focus"
	CategoryEnergy  = "energy"
	CategoryRoutine = "routine"
)

// Account is the authentication identity. It is created at sign-up and is
// distinct from the User profile, which only exists after onboarding.
type Account struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// User is the one-row-per-account profile collected during onboarding.
// Its ID always equals the owning account's ID.
type User struct {
	ID              string    `json:"id"`
	WakeTime        string    `json:"wake_time"`
	SleepTime       string    `json:"sleep_time"`
	WorkStartTime   string    `json:"work_start_time"`
	WorkEndTime     string    `json:"work_end_time"`
	EnergyBaseline  int       `json:"energy_baseline"` // 1–10 scale
	FocusChallenges string    `json:"focus_challenges"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type DailyCheckin struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Date         string    `json:"date"` // YYYY-MM-DD
	EnergyLevel  int       `json:"energy_level"`
	MoodRating   int       `json:"mood_rating"`
	FocusRating  int       `json:"focus_rating"`
	SleepQuality int       `json:"sleep_quality"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type Task struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category"` // focus, energy, routine
	DueDate     string    `json:"due_date"` // YYYY-MM-DD
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TaskPatch is a partial task update; nil fields are left untouched.
type TaskPatch struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	Completed   *bool   `json:"completed,omitempty"`
}

// EducationalContent is read-only reference material, not scoped to any user.
type EducationalContent struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	ReadingTime int       `json:"reading_time"` // minutes
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
