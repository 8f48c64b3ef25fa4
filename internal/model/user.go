package model

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"size:64;uniqueIndex;not null" json:"username"`
	// bcrypt hash, never the plain password
	Password  string    `gorm:"size:128;not null" json:"-"`
	Role      string    `gorm:"size:16;not null" json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
