package admin

import "time"

type User struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	Username     string     `gorm:"size:50;uniqueIndex;not null" json:"username"`
	PasswordHash string     `gorm:"size:100;not null" json:"-"`
	LastLoginAt  *time.Time `json:"lastLoginAt"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

func (User) TableName() string {
	return "admin_users"
}

type LoginDTO struct {
	Username string `json:"username" binding:"required,max=50"`
	Password string `json:"password" binding:"required,max=128"`
}

type OwnerLoginDTO struct {
	Email           string `json:"email" binding:"required,email"`
	PropertyAddress string `json:"propertyAddress" binding:"required,notblank,max=200"`
}

// Session is what a successful login or refresh hands back to the caller.
type Session struct {
	Token     string    `json:"token"`
	Username  string    `json:"username,omitempty"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name,omitempty"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}
