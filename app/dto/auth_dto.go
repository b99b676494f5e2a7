// Package dto contains Data Transfer Objects for API request and response structures
package dto

// CreateAccountRequest represents the request payload for account registration
type CreateAccountRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64" example:"linkmaster"`
	Email    string `json:"email" validate:"required,email,max=255" example:"user@example.com"`
	Password string `json:"password" validate:"required,min=8,max=100" example:"SecurePass123!"`
}

// LoginRequest represents the request payload for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255" example:"user@example.com"`
	Password string `json:"password" validate:"required,min=8,max=100" example:"SecurePass123!"`
}

// AuthUserDTO represents user information returned in authentication responses
type AuthUserDTO struct {
	ID              uint    `json:"id" example:"123"`
	UUID            string  `json:"uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Username        string  `json:"username" example:"linkmaster"`
	Email           string  `json:"email" example:"user@example.com"`
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
	CreatedAt       string  `json:"created_at" example:"2024-01-15T10:30:00Z"`
	LastLoginAt     *string `json:"last_login_at,omitempty"`
}

// SessionDTO carries the issued bearer token
type SessionDTO struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"Bearer"`
	ExpiresIn   int64  `json:"expires_in" example:"3600"`
}

// CreateAccountResponse represents the successful registration response
type CreateAccountResponse struct {
	User    AuthUserDTO `json:"user"`
	Session SessionDTO  `json:"session"`
}

// LoginResponse represents the successful login response
type LoginResponse struct {
	User    AuthUserDTO `json:"user"`
	Session SessionDTO  `json:"session"`
}

// Common error codes for authentication operations
const (
	ErrorUserNotFound       = "USER_NOT_FOUND"
	ErrorIncorrectPassword  = "INCORRECT_PASSWORD"
	ErrorEmailAlreadyExists = "EMAIL_ALREADY_EXISTS"
	ErrorUnauthorized       = "UNAUTHORIZED"
)
