// Package onboarding implements the three-step profile intake and its
// terminal submission: persist the profile keyed by the authenticated
// identity and ask the task generator for starter tasks.
package onboarding

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Abm32/Neuroshift/internal"
	"github.com/Abm32/Neuroshift/internal/ai"
	"github.com/Abm32/Neuroshift/internal/auth"
	"github.com/Abm32/Neuroshift/internal/storage"
)

const (
	StepSleepSchedule = 1
	StepWorkSchedule  = 2
	StepEnergyFocus   = 3
)

var ErrNoSession = errors.New("onboarding: no authenticated user")

// FormData mirrors the onboarding form: one field subset per step. Energy
// level stays a string until submission, where it is parsed as an integer.
type FormData struct {
	WakeTime        string
	SleepTime       string
	WorkStartTime   string
	WorkEndTime     string
	EnergyLevel     string
	FocusChallenges string
}

// Flow is the step controller. Next advances until the terminal step; the
// terminal action is Submit, not a further advance.
type Flow struct {
	step      int
	Form      FormData
	profiles  storage.ProfileRepository
	generator *ai.Generator
	logger    internal.Logger
}

func NewFlow(profiles storage.ProfileRepository, generator *ai.Generator, logger internal.Logger) *Flow {
	return &Flow{
		step:      StepSleepSchedule,
		profiles:  profiles,
		generator: generator,
		logger:    logger,
	}
}

func (f *Flow) Step() int { return f.step }

func (f *Flow) Next() {
	if f.step < StepEnergyFocus {
		f.step++
	}
}

func (f *Flow) Previous() {
	if f.step > StepSleepSchedule {
		f.step--
	}
}

// Submit resolves the authenticated identity, inserts the profile keyed by
// it, and returns the generated starter tasks unpersisted; the caller owns
// inserting them through the session store. Generation is best-effort; a
// profile insert failure aborts.
func (f *Flow) Submit(ctx context.Context, sess *auth.Session) (*internal.User, []internal.Task, error) {
	if sess == nil {
		return nil, nil, ErrNoSession
	}

	energy, err := strconv.Atoi(f.Form.EnergyLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("onboarding: invalid energy level %q: %w", f.Form.EnergyLevel, err)
	}

	now := time.Now()
	profile := &internal.User{
		ID:              sess.UserID,
		WakeTime:        f.Form.WakeTime,
		SleepTime:       f.Form.SleepTime,
		WorkStartTime:   f.Form.WorkStartTime,
		WorkEndTime:     f.Form.WorkEndTime,
		EnergyBaseline:  energy,
		FocusChallenges: f.Form.FocusChallenges,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := f.profiles.CreateProfile(ctx, profile); err != nil {
		return nil, nil, fmt.Errorf("onboarding: create profile: %w", err)
	}

	// GenerateTasks never fails hard; a generator error means zero tasks.
	return profile, f.generator.GenerateTasks(ctx, profile), nil
}
