package domain

import "time"

// Product is a catalog item. Price is in main currency units.
type Product struct {
	ID          int64     `json:"id,string" form:"id"`
	Name        string    `gorm:"index" json:"name" form:"name"`
	Description string    `gorm:"size:2048" json:"description" form:"description"`
	Price       float64   `json:"price" form:"price"`
	Stock       int       `json:"stock" form:"stock"`
	Color       string    `gorm:"size:64" json:"color" form:"color"`
	Image       string    `gorm:"size:1024" json:"image" form:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "produtos"
}
