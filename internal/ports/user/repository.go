package user

import (
	"context"

	"inkwell/internal/core/user"
)

// UserRepository stores and loads users.
type UserRepository interface {
	Create(ctx context.Context, user *user.User) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
}

type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expiresAt"`
}

type UserDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name,omitempty"`
	Family   string `json:"family,omitempty"`
}

// Session identifies the viewer behind a verified token.
type Session struct {
	UserID   string
	Username string
}

func ToUserDTO(u *user.User) *UserDTO {
	return &UserDTO{
		ID:       u.ID.String(),
		Username: u.Username,
		Name:     u.Name,
		Family:   u.Family,
	}
}
