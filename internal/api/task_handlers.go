package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/Abm32/Neuroshift/internal/service"
	"github.com/Abm32/Neuroshift/internal/storage"
)

func PostTask(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := storeFrom(c)

		var req service.TaskRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateTaskRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		task, err := st.AddTask(c.Request.Context(), req.ToTask())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save task")
			return
		}
		if task == nil {
			HandleError(c, app.Logger(), errNotOnboarded, 400, "No profile")
			return
		}

		HandleCreated(c, app.Logger(), task, nil)
	}
}

func GetTasks(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := storeFrom(c)

		if err := st.FetchUserData(c.Request.Context()); err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch tasks")
			return
		}

		HandleSuccess(c, app.Logger(), st.Tasks(), nil)
	}
}

func PatchTask(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := storeFrom(c)
		id := c.Param("id")

		var req service.TaskUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateTaskUpdateRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		task, err := st.UpdateTask(c.Request.Context(), id, req.ToPatch())
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				HandleError(c, app.Logger(), err, 404, "Task not found")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to update task")
			return
		}
		if task == nil {
			HandleError(c, app.Logger(), errNotOnboarded, 400, "No profile")
			return
		}

		HandleSuccess(c, app.Logger(), task, nil)
	}
}
