package post

import (
	"context"
	"errors"
	"time"

	"blog/internal/core/post"
	userPort "blog/internal/ports/user"
)

var ErrNotFound = errors.New("post not found")

// PostRepository is the outbound port for posts. Every read returns posts with
// their author loaded.
type PostRepository interface {
	Create(ctx context.Context, post *post.Post) (*post.Post, error)
	FindByID(ctx context.Context, id uint) (*post.Post, error)
	FindAll(ctx context.Context) ([]*post.Post, error)
	FindByUserID(ctx context.Context, userID uint) ([]*post.Post, error)
	Save(ctx context.Context, post *post.Post) (*post.Post, error)
	Delete(ctx context.Context, id uint) error
}

// DTOs for the use cases

type CreatePostInput struct {
	Title   string
	Content string
	UserID  uint
}

type UpdatePostInput = CreatePostInput

// PatchPostInput carries only the fields the client sent.
type PatchPostInput struct {
	Title   *string
	Content *string
	UserID  *uint
}

type PostDTO struct {
	ID         uint              `json:"id"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	UserID     uint              `json:"user_id"`
	DatePosted time.Time         `json:"date_posted"`
	Author     *userPort.UserDTO `json:"author"`
}

func ToDTO(p *post.Post) *PostDTO {
	return &PostDTO{
		ID:         p.ID,
		Title:      p.Title,
		Content:    p.Content,
		UserID:     p.UserID,
		DatePosted: p.DatePosted.UTC(),
		Author:     userPort.ToDTO(&p.User),
	}
}

func ToDTOs(posts []*post.Post) []*PostDTO {
	out := make([]*PostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, ToDTO(p))
	}
	return out
}
