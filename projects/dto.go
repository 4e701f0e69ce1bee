package projects

// CreateProjectRequest is the payload for POST /api/projects.
type CreateProjectRequest struct {
	Name        string   `json:"name" example:"Website relaunch"`
	Description string   `json:"description" example:"All work for the Q3 relaunch"`
	User        string   `json:"user" example:"662a1b2c3d4e5f6a7b8c9d0e"`
	TaskLists   []string `json:"taskLists"`
}
