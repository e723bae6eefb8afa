package models

import (
	"strings"

	"github.com/jinzhu/gorm"
)

type User struct {
	gorm.Model
	Username  string `gorm:"unique"`
	Email     string `gorm:"unique"`
	Password  string
	Posts     []Post `gorm:"foreignkey:UserID"`
	Favorites []Post `gorm:"many2many:user_favorites"`
}

type Post struct {
	gorm.Model
	Title       string
	ImageURL    string
	Categories  string // список категорий одной строкой (см. JoinCategories)
	Description string
	Likes       int
	UserID      uint
	Messages    []Comment `gorm:"foreignkey:PostID"`
}

type Comment struct {
	gorm.Model
	MessageBody string
	PostID      uint
	UserID      uint
}

// categorySeparator не должен встречаться в самих категориях
const categorySeparator = ";;"

// JoinCategories упаковывает категории в одну колонку
// (у jinzhu/gorm нет переносимого типа массива, а тесты гоняются на sqlite)
func JoinCategories(categories []string) string {
	return strings.Join(categories, categorySeparator)
}

func SplitCategories(joined string) []string {
	if joined == "" {
		return []string{}
	}
	return strings.Split(joined, categorySeparator)
}
