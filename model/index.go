package model

import "time"

type TokenClaim struct {
	UserID uint   `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type TokenData struct {
	AccessToken string `json:"accessToken"`
	ExpiresAt   int64  `json:"expiresAt"`
}

// DTO is embedded by every entity. gorm stamps the timestamps on insert/update.
type DTO struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Tables lists every migrated entity in dependency order.
func Tables() []any {
	return []any{
		&User{},
		&Theater{},
		&Screen{},
		&Seat{},
		&Movie{},
		&Schedule{},
		&Booking{},
		&BookingSeat{},
		&Payment{},
	}
}

type ResponseCustom struct {
	Rows       any   `json:"rows"`
	Limit      *int  `json:"limit"`
	Page       *int  `json:"page"`
	TotalCount int64 `json:"totalCount"`
}

type Pagination struct {
	Limit *int `query:"limit" json:"limit"`
	Page  *int `query:"page" json:"page"`
}

// ListFilter restricts a list query to statuses. An empty Statuses means every non-deleted status.
type ListFilter struct {
	Statuses []string
	Pagination
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
}

type IdInput struct {
	ID uint `json:"id"`
}
