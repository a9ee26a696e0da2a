package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Abm32/Neuroshift/internal"
)

var validate = validator.New()

// generatedTask is the shape the model is asked to return. Each entry is
// validated on its own; a malformed entry is dropped without discarding the
// rest of the batch.
type generatedTask struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"required,oneof=focus energy routine"`
	DueDate     string `json:"due_date"`
}

// Generator turns a user profile into 3-5 starter task suggestions. It is
// best-effort: every failure degrades to an empty list.
type Generator struct {
	completer Completer
	logger    internal.Logger
	now       func() time.Time
}

func NewGenerator(completer Completer, logger internal.Logger) *Generator {
	return &Generator{completer: completer, logger: logger, now: time.Now}
}

// GenerateTasks asks the model for task suggestions based on the profile.
// Returned tasks carry no id or user id; the caller owns persistence.
func (g *Generator) GenerateTasks(ctx context.Context, profile *internal.User) []internal.Task {
	if g.completer == nil {
		g.logger.Warn("ai: no completer configured, skipping task generation")
		return nil
	}

	raw, err := g.completer.Complete(ctx, buildPrompt(profile))
	if err != nil {
		g.logger.Errorf("ai: task generation failed: %v", err)
		return nil
	}

	var entries []generatedTask
	if err := json.Unmarshal([]byte(stripCodeFences(raw)), &entries); err != nil {
		g.logger.Errorf("ai: failed to parse generated tasks: %v", err)
		return nil
	}

	tasks := make([]internal.Task, 0, len(entries))
	for i, e := range entries {
		if err := validate.Struct(&e); err != nil {
			g.logger.Warnf("ai: dropping malformed generated task %d: %v", i, err)
			continue
		}
		tasks = append(tasks, internal.Task{
			Title:       e.Title,
			Description: e.Description,
			Category:    e.Category,
			DueDate:     g.resolveDueDate(e.DueDate),
		})
	}
	return tasks
}

func buildPrompt(p *internal.User) string {
	return fmt.Sprintf(`Based on the following user profile, generate 3-5 personalized tasks that would help improve their productivity and focus. Consider their schedule and energy levels.

User Profile:
- Wake time: %s
- Sleep time: %s
- Work hours: %s to %s
- Energy level (1-10): %d
- Focus challenges: %s

Format each task as a JSON object with:
- title: string
- description: string
- category: "focus" | "energy" | "routine"
- due_date: "today" | "tomorrow" | specific date

Return only the JSON array.`,
		p.WakeTime, p.SleepTime, p.WorkStartTime, p.WorkEndTime, p.EnergyBaseline, p.FocusChallenges)
}

// resolveDueDate maps the "today"/"tomorrow" tokens to calendar dates and
// passes any other value through unchanged.
func (g *Generator) resolveDueDate(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "today":
		return g.now().Format(internal.DateLayout)
	case "tomorrow":
		return g.now().AddDate(0, 0, 1).Format(internal.DateLayout)
	default:
		return raw
	}
}

// stripCodeFences unwraps ```json ... ``` blocks that models often emit
// despite being asked for a bare array.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	}
	if i := strings.LastIndex(s, "```"); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
