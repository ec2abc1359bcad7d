package services

import (
	"context"

	"stash/internal/domain/models"
)

// UserService handles sign-up. Session lifecycle lives with the auth
// collaborator, not here.
type UserService interface {
	// Register creates a user with a hashed password
	Register(ctx context.Context, req *RegisterRequest) (*models.User, error)
}

// RegisterRequest represents a sign-up request
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
