package database

import (
	"context"
	"errors"

	"blog/internal/core/post"
	postPort "blog/internal/ports/post"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepositoryDatabase implements PostRepository on top of gorm.
type PostRepositoryDatabase struct {
	db *gorm.DB
}

// NewPostRepositoryDatabase builds a PostRepositoryDatabase.
func NewPostRepositoryDatabase(db *gorm.DB) *PostRepositoryDatabase {
	return &PostRepositoryDatabase{db: db}
}

// Create inserts the post and reloads it with its author.
func (repo *PostRepositoryDatabase) Create(ctx context.Context, p *post.Post) (*post.Post, error) {
	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(p).Error; err != nil {
		return nil, err
	}
	return repo.FindByID(ctx, p.ID)
}

func (repo *PostRepositoryDatabase) FindByID(ctx context.Context, id uint) (*post.Post, error) {
	var p post.Post
	if err := repo.db.WithContext(ctx).Preload("User").First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, postPort.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (repo *PostRepositoryDatabase) FindAll(ctx context.Context) ([]*post.Post, error) {
	posts := make([]*post.Post, 0)
	if err := repo.db.WithContext(ctx).Preload("User").Order("id").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (repo *PostRepositoryDatabase) FindByUserID(ctx context.Context, userID uint) ([]*post.Post, error) {
	posts := make([]*post.Post, 0)
	if err := repo.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).Order("id").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Save writes every mutable column of an existing post. The author is never
// written through the association.
func (repo *PostRepositoryDatabase) Save(ctx context.Context, p *post.Post) (*post.Post, error) {
	res := repo.db.WithContext(ctx).
		Model(&post.Post{}).
		Where("id = ?", p.ID).
		Select("title", "content", "user_id").
		Updates(map[string]any{
			"title":   p.Title,
			"content": p.Content,
			"user_id": p.UserID,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	return repo.FindByID(ctx, p.ID)
}

func (repo *PostRepositoryDatabase) Delete(ctx context.Context, id uint) error {
	res := repo.db.WithContext(ctx).Delete(&post.Post{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return postPort.ErrNotFound
	}
	return nil
}
