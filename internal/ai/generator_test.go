package ai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Abm32/Neuroshift/internal"
)

type fakeCompleter struct {
	response string
	err      error
	prompt   string
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func testProfile() *internal.User {
	return &internal.User{
		ID:              "u1",
		WakeTime:        "07:00",
		SleepTime:       "23:00",
		WorkStartTime:   "09:00",
		WorkEndTime:     "17:00",
		EnergyBaseline:  6,
		FocusChallenges: "afternoon slump",
	}
}

func newTestGenerator(c Completer) *Generator {
	g := NewGenerator(c, internal.NopLogger{})
	g.now = func() time.Time { return time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC) }
	return g
}

func TestGenerateTasks_ResolvesDueDates(t *testing.T) {
	c := &fakeCompleter{response: `[
		{"title":"Morning deep work","description":"90 minutes","category":"focus","due_date":"today"},
		{"title":"Evening walk","description":"","category":"energy","due_date":"tomorrow"},
		{"title":"Plan the week","description":"","category":"routine","due_date":"2026-09-07"}
	]`}
	g := newTestGenerator(c)

	tasks := g.GenerateTasks(context.Background(), testProfile())
	assert.Len(t, tasks, 3)
	assert.Equal(t, "2026-08-31", tasks[0].DueDate)
	assert.Equal(t, "2026-09-01", tasks[1].DueDate)
	assert.Equal(t, "2026-09-07", tasks[2].DueDate)
	assert.Contains(t, c.prompt, "afternoon slump")
	assert.Contains(t, c.prompt, "Energy level (1-10): 6")
}

func TestGenerateTasks_StripsCodeFences(t *testing.T) {
	c := &fakeCompleter{response: "```json\n[{\"title\":\"Stretch\",\"category\":\"energy\",\"due_date\":\"today\"}]\n```"}
	g := newTestGenerator(c)

	tasks := g.GenerateTasks(context.Background(), testProfile())
	assert.Len(t, tasks, 1)
	assert.Equal(t, "Stretch", tasks[0].Title)
}

func TestGenerateTasks_DropsMalformedEntriesIndividually(t *testing.T) {
	c := &fakeCompleter{response: `[
		{"title":"Good one","category":"focus","due_date":"today"},
		{"title":"","category":"focus"},
		{"title":"Bad category","category":"banana"},
		{"title":"Also good","category":"routine","due_date":"tomorrow"}
	]`}
	g := newTestGenerator(c)

	tasks := g.GenerateTasks(context.Background(), testProfile())
	assert.Len(t, tasks, 2)
	assert.Equal(t, "Good one", tasks[0].Title)
	assert.Equal(t, "Also good", tasks[1].Title)
}

func TestGenerateTasks_UnparseableResponse(t *testing.T) {
	c := &fakeCompleter{response: "Sure! Here are some tasks for you:"}
	g := newTestGenerator(c)
	assert.Empty(t, g.GenerateTasks(context.Background(), testProfile()))
}

func TestGenerateTasks_CompleterError(t *testing.T) {
	c := &fakeCompleter{err: errors.New("rate limited")}
	g := newTestGenerator(c)
	assert.Empty(t, g.GenerateTasks(context.Background(), testProfile()))
}

func TestGenerateTasks_NilCompleter(t *testing.T) {
	g := newTestGenerator(nil)
	assert.Empty(t, g.GenerateTasks(context.Background(), testProfile()))
}
