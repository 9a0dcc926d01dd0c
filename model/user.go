package model

type User struct {
	DTO
	Email        string  `gorm:"size:255;not null;uniqueIndex" json:"email"`
	UserName     string  `gorm:"size:100;not null" json:"userName"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`
	Phone        *string `gorm:"size:30" json:"phone"`
	Role         string  `gorm:"size:20;not null;index" json:"role"`
	IsActive     bool    `gorm:"not null" json:"isActive"`
}

func (User) TableName() string { return "users" }
