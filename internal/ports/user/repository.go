package user

import (
	"context"
	"errors"

	"blog/internal/core/user"
)

var (
	ErrNotFound  = errors.New("user not found")
	ErrDuplicate = errors.New("user already exists")
)

// UserRepository is the outbound port for storing and loading users.
type UserRepository interface {
	Create(ctx context.Context, user *user.User) (*user.User, error)
	FindByID(ctx context.Context, id uint) (*user.User, error)
	FindByUsername(ctx context.Context, username string) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
	FindAll(ctx context.Context) ([]*user.User, error)
	// Delete removes the user together with the user's posts and returns the
	// ids of the removed posts.
	Delete(ctx context.Context, id uint) ([]uint, error)
}

type CreateUserInput struct {
	Username  string
	Email     string
	ImageFile *string
}

type UserDTO struct {
	ID        uint    `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	ImageFile *string `json:"image_file"`
	ImagePath string  `json:"image_path"`
}

func ToDTO(u *user.User) *UserDTO {
	return &UserDTO{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		ImageFile: u.ImageFile,
		ImagePath: u.ImagePath(),
	}
}
