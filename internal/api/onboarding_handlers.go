package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Abm32/Neuroshift/internal/onboarding"
	"github.com/Abm32/Neuroshift/internal/service"
)

// PostOnboarding runs the terminal onboarding submission: persist the
// profile keyed by the session identity, generate starter tasks, persist
// them, and prime the session store.
func PostOnboarding(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessionFrom(c)

		var req service.OnboardingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateOnboardingRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		flow := onboarding.NewFlow(app.Repos().Profiles, app.Generator(), app.Logger())
		flow.Form = req.ToFormData()

		profile, tasks, err := flow.Submit(c.Request.Context(), sess)
		if err != nil {
			if errors.Is(err, onboarding.ErrNoSession) {
				HandleError(c, app.Logger(), err, 401, "No authenticated user")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Onboarding failed")
			return
		}

		// The store owns task persistence: AddTasks assigns ids, forces
		// ownership, and keeps the mirror current without a refetch.
		st := storeFrom(c)
		st.SetUser(profile)
		if err := st.AddTasks(c.Request.Context(), tasks); err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save generated tasks")
			return
		}

		HandleCreated(c, app.Logger(), gin.H{"profile": profile, "tasks": tasks}, map[string]any{
			"generated_tasks": len(tasks),
		})
	}
}
