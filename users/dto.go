package users

// CreateUserRequest is the payload for POST /api/users.
type CreateUserRequest struct {
	Name     string `json:"name" example:"Ana"`
	Email    string `json:"email" example:"ana@example.com"`
	Password string `json:"password" example:"strongpassword123"`
	Role     string `json:"role" example:"admin"`
}
