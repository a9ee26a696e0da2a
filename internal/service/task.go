package service

import (
	"errors"

	"github.com/Abm32/Neuroshift/internal"
)

type TaskRequest struct {
	Title       string `json:"title" validate:"required,max=500"`
	Description string `json:"description" validate:"omitempty,max=5000"`
	Category    string `json:"category" validate:"required,oneof=focus energy routine"`
	DueDate     string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

func ValidateTaskRequest(req *TaskRequest) error {
	return validate.Struct(req)
}

func (r *TaskRequest) ToTask() internal.Task {
	return internal.Task{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		DueDate:     r.DueDate,
	}
}

type TaskUpdateRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,max=500"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	Category    *string `json:"category,omitempty" validate:"omitempty,oneof=focus energy routine"`
	DueDate     *string `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Completed   *bool   `json:"completed,omitempty"`
}

func ValidateTaskUpdateRequest(req *TaskUpdateRequest) error {
	if req.Title == nil && req.Description == nil && req.Category == nil && req.DueDate == nil && req.Completed == nil {
		return errors.New("at least one field must be set")
	}
	return validate.Struct(req)
}

func (r *TaskUpdateRequest) ToPatch() internal.TaskPatch {
	return internal.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Category:    r.Category,
		DueDate:     r.DueDate,
		Completed:   r.Completed,
	}
}
