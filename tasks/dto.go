package tasks

import (
	"time"

	"github.com/Anse-dev/todo-list-app/models"
)

// CreateTaskRequest is the payload for POST /api/tasks. Reference fields are
// hex identifiers; status and priority fall back to their defaults when empty.
type CreateTaskRequest struct {
	Title       string              `json:"title" example:"Write report"`
	Description string              `json:"description" example:"Quarterly summary"`
	Status      models.TaskStatus   `json:"status" example:"pending"`
	DueDate     *time.Time          `json:"dueDate"`
	Priority    models.TaskPriority `json:"priority" example:"medium"`
	User        string              `json:"user" example:"662a1b2c3d4e5f6a7b8c9d0e"`
	List        *string             `json:"list" example:"662a1b2c3d4e5f6a7b8c9d0f"`
}
