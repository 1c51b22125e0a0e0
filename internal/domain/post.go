package domain

import "time"

// Post is a blog entry. Published keeps the display date as entered by
// the author rather than a parsed timestamp.
type Post struct {
	ID        int64     `json:"id,string" form:"id"`
	Title     string    `gorm:"index" json:"title" form:"title"`
	Subtitle  string    `json:"subtitle" form:"subtitle"`
	Body      string    `gorm:"size:16384" json:"body" form:"body"`
	Author    string    `json:"author" form:"author"`
	Published string    `gorm:"size:64" json:"published" form:"published"`
	Image     string    `gorm:"size:1024" json:"image" form:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Post) TableName() string {
	return "posts"
}
