package database

import (
	"blog/internal/core/post"
	"blog/internal/core/user"

	"gorm.io/gorm"
)

// AutoMigrate creates the users and posts tables when they are missing.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&user.User{}, &post.Post{})
}
