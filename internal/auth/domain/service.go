package domain

import (
	"context"
	"time"
)

type CreateUserRequest struct {
	Email       string
	DisplayName string
	Password    string
	Role        Role
}

type LoginRequest struct {
	Email     string
	Password  string
	UserAgent string
	IPAddress string
}

// LoginResult carries the raw session token exactly once; only its hash
// is persisted.
type LoginResult struct {
	User      User
	Token     string
	ExpiresAt time.Time
}

type Service interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	Authenticate(ctx context.Context, token string) (*User, error)
}
