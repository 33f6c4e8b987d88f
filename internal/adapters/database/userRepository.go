package database

import (
	"context"
	"errors"
	"fmt"

	"blog/internal/core/post"
	"blog/internal/core/user"
	userPort "blog/internal/ports/user"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRepositoryDatabase implements UserRepository on top of gorm.
type UserRepositoryDatabase struct {
	db *gorm.DB
}

// NewUserRepositoryDatabase builds a UserRepositoryDatabase.
func NewUserRepositoryDatabase(db *gorm.DB) *UserRepositoryDatabase {
	return &UserRepositoryDatabase{db: db}
}

func (repo *UserRepositoryDatabase) Create(ctx context.Context, u *user.User) (*user.User, error) {
	if err := repo.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, userPort.ErrDuplicate
		}
		return nil, err
	}
	return u, nil
}

func (repo *UserRepositoryDatabase) FindByID(ctx context.Context, id uint) (*user.User, error) {
	return repo.first(ctx, "id = ?", id)
}

func (repo *UserRepositoryDatabase) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	return repo.first(ctx, "username = ?", username)
}

func (repo *UserRepositoryDatabase) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return repo.first(ctx, "email = ?", email)
}

func (repo *UserRepositoryDatabase) FindAll(ctx context.Context) ([]*user.User, error) {
	users := make([]*user.User, 0)
	if err := repo.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Delete removes the user's posts and then the user in one transaction and
// returns the ids of the removed posts. The user row is locked first so no post
// can be added for it while the transaction runs.
func (repo *UserRepositoryDatabase) Delete(ctx context.Context, id uint) ([]uint, error) {
	postIDs := make([]uint, 0)
	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var u user.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&u, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return userPort.ErrNotFound
			}
			return err
		}
		if err := tx.Model(&post.Post{}).Where("user_id = ?", id).Order("id").Pluck("id", &postIDs).Error; err != nil {
			return fmt.Errorf("list posts of user %d: %w", id, err)
		}
		if err := tx.Where("user_id = ?", id).Delete(&post.Post{}).Error; err != nil {
			return fmt.Errorf("delete posts of user %d: %w", id, err)
		}
		return tx.Delete(&user.User{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return postIDs, nil
}

func (repo *UserRepositoryDatabase) first(ctx context.Context, query string, arg any) (*user.User, error) {
	var u user.User
	if err := repo.db.WithContext(ctx).Where(query, arg).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, userPort.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
