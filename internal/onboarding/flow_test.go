package onboarding

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Abm32/Neuroshift/internal"
	"github.com/Abm32/Neuroshift/internal/ai"
	"github.com/Abm32/Neuroshift/internal/auth"
	"github.com/Abm32/Neuroshift/internal/storage"
)

type fakeProfileRepo struct {
	created *internal.User
	err     error
}

func (f *fakeProfileRepo) CreateProfile(ctx context.Context, p *internal.User) error {
	if f.err != nil {
		return f.err
	}
	f.created = p
	return nil
}

func (f *fakeProfileRepo) GetProfile(ctx context.Context, userID string) (*internal.User, error) {
	if f.created == nil || f.created.ID != userID {
		return nil, storage.ErrNotFound
	}
	return f.created, nil
}

type stubCompleter struct {
	response string
	err      error
}

func (s *stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return s.response, s.err
}

func filledForm() FormData {
	return FormData{
		WakeTime:        "07:00",
		SleepTime:       "23:00",
		WorkStartTime:   "09:00",
		WorkEndTime:     "17:00",
		EnergyLevel:     "6",
		FocusChallenges: "afternoon slump",
	}
}

func TestFlow_StepNavigation(t *testing.T) {
	f := NewFlow(&fakeProfileRepo{}, ai.NewGenerator(nil, internal.NopLogger{}), internal.NopLogger{})

	assert.Equal(t, StepSleepSchedule, f.Step())
	f.Previous()
	assert.Equal(t, StepSleepSchedule, f.Step())

	f.Next()
	assert.Equal(t, StepWorkSchedule, f.Step())
	f.Next()
	assert.Equal(t, StepEnergyFocus, f.Step())
	f.Next()
	assert.Equal(t, StepEnergyFocus, f.Step())

	f.Previous()
	assert.Equal(t, StepWorkSchedule, f.Step())
}

func TestSubmit_NoSession(t *testing.T) {
	f := NewFlow(&fakeProfileRepo{}, ai.NewGenerator(nil, internal.NopLogger{}), internal.NopLogger{})
	f.Form = filledForm()

	_, _, err := f.Submit(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestSubmit_InvalidEnergyLevel(t *testing.T) {
	f := NewFlow(&fakeProfileRepo{}, ai.NewGenerator(nil, internal.NopLogger{}), internal.NopLogger{})
	f.Form = filledForm()
	f.Form.EnergyLevel = "high"

	_, _, err := f.Submit(context.Background(), &auth.Session{UserID: "u1"})
	assert.Error(t, err)
}

func TestSubmit_CreatesProfileAndReturnsGeneratedTasks(t *testing.T) {
	profiles := &fakeProfileRepo{}
	completer := &stubCompleter{response: `[
		{"title":"Morning deep work","category":"focus","due_date":"today"},
		{"title":"Midday walk","category":"energy","due_date":"today"},
		{"title":"Plan tomorrow","category":"routine","due_date":"tomorrow"}
	]`}
	f := NewFlow(profiles, ai.NewGenerator(completer, internal.NopLogger{}), internal.NopLogger{})
	f.Form = filledForm()

	profile, generated, err := f.Submit(context.Background(), &auth.Session{UserID: "u1"})
	assert.NoError(t, err)
	assert.Equal(t, "u1", profile.ID)
	assert.Equal(t, 6, profile.EnergyBaseline)
	assert.Equal(t, profiles.created, profile)

	// The tasks come back unpersisted; the caller inserts them through the
	// session store, which assigns ids and ownership.
	assert.Len(t, generated, 3)
	for _, task := range generated {
		assert.Empty(t, task.ID)
		assert.Empty(t, task.UserID)
	}
}

func TestSubmit_GeneratorFailureStillCreatesProfile(t *testing.T) {
	profiles := &fakeProfileRepo{}
	completer := &stubCompleter{err: errors.New("upstream down")}
	f := NewFlow(profiles, ai.NewGenerator(completer, internal.NopLogger{}), internal.NopLogger{})
	f.Form = filledForm()

	profile, generated, err := f.Submit(context.Background(), &auth.Session{UserID: "u1"})
	assert.NoError(t, err)
	assert.NotNil(t, profile)
	assert.Empty(t, generated)
	assert.NotNil(t, profiles.created)
}

func TestSubmit_ProfileInsertFailureAborts(t *testing.T) {
	profiles := &fakeProfileRepo{err: errors.New("duplicate key")}
	f := NewFlow(profiles, ai.NewGenerator(nil, internal.NopLogger{}), internal.NopLogger{})
	f.Form = filledForm()

	_, _, err := f.Submit(context.Background(), &auth.Session{UserID: "u1"})
	assert.Error(t, err)
}
