package dto

// LoginRequest identifies a user by email. There are no credentials.
type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// RegisterRequest defines the data needed to register a new user.
type RegisterRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required,max=100"`
}

// AuthResponse represents the response for a successful login or registration.
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
