package user

// DefaultImagePath is served for users without an uploaded avatar.
const DefaultImagePath = "/static/profile_pics/default.jpg"

type User struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"`
	Username  string  `gorm:"size:50;uniqueIndex;not null"`
	Email     string  `gorm:"size:120;uniqueIndex;not null"`
	ImageFile *string `gorm:"size:200"`
}

// ImagePath is the public path of the user's avatar.
func (u *User) ImagePath() string {
	if u.ImageFile != nil && *u.ImageFile != "" {
		return "/media/profile_pics/" + *u.ImageFile
	}
	return DefaultImagePath
}
