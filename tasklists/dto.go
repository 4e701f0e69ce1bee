package tasklists

// CreateTaskListRequest is the payload for POST /api/tasklists. User and tasks
// are hex identifiers.
type CreateTaskListRequest struct {
	Name        string   `json:"name" example:"Groceries"`
	Description string   `json:"description" example:"Weekly shopping"`
	User        string   `json:"user" example:"662a1b2c3d4e5f6a7b8c9d0e"`
	Tasks       []string `json:"tasks"`
}
