package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered customer or administrator.
type User struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email           string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Password        string    `gorm:"type:varchar(255);not null" json:"-"`
	FirstName       string    `gorm:"type:varchar(128)" json:"first_name"`
	LastName        string    `gorm:"type:varchar(128)" json:"last_name"`
	ShippingAddress string    `gorm:"type:text" json:"shipping_address"`
	Role            string    `gorm:"type:varchar(20);not null" json:"role"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
