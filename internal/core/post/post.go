package post

import (
	"time"

	"blog/internal/core/user"
)

type Post struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	Title      string    `gorm:"size:100;not null"`
	Content    string    `gorm:"type:text;not null"`
	UserID     uint      `gorm:"not null;index"`
	User       user.User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	DatePosted time.Time `gorm:"not null"`
}
