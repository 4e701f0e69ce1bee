package comments

// CreateCommentRequest is the payload for POST /api/comments.
type CreateCommentRequest struct {
	Content string `json:"content" example:"Looks good to me"`
	User    string `json:"user" example:"662a1b2c3d4e5f6a7b8c9d0e"`
	Task    string `json:"task" example:"662a1b2c3d4e5f6a7b8c9d10"`
}
