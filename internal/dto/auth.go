package dto

// LoginRequest captures credential input for the dashboard login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
