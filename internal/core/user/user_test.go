package user

import "testing"

func TestUser_ImagePath(t *testing.T) {
	t.Parallel()

	empty := ""
	file := "abc123.png"
	cases := []struct {
		name string
		file *string
		want string
	}{
		{"no file", nil, DefaultImagePath},
		{"empty file", &empty, DefaultImagePath},
		{"uploaded", &file, "/media/profile_pics/abc123.png"},
	}
	for _, tc := range cases {
		u := User{ImageFile: tc.file}
		if got := u.ImagePath(); got != tc.want {
			t.Fatalf("%s: ImagePath()=%q, want %q", tc.name, got, tc.want)
		}
	}
}
