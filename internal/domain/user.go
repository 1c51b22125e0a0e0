package domain

import "time"

// User is a storefront customer account. Password always holds a bcrypt
// hash, never plaintext.
type User struct {
	ID        int64     `json:"id,string" form:"id"`
	Name      string    `json:"name" form:"name"`
	Email     string    `gorm:"uniqueIndex" json:"email" form:"email"`
	Password  string    `json:"-" form:"password"`
	BirthDate time.Time `json:"birth_date" form:"birth_date"`
	Phone     string    `json:"phone" form:"phone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Orders []Order `gorm:"foreignKey:UserId" json:"orders,omitempty"`
}

// TableName Specify table name
func (User) TableName() string {
	return "usuarios"
}

// AuditLog records admin and account actions published on the event bus.
type AuditLog struct {
	ID      int64     `json:"id,string"`
	Actor   string    `json:"actor"`
	Action  string    `json:"action"`
	Detail  string    `json:"detail"`
	ActTime time.Time `json:"act_time"`
}

// TableName Specify table name
func (AuditLog) TableName() string {
	return "audit_log"
}
