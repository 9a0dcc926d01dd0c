package model

import (
	"cinema_booking/apperror"
	"strings"
)

type SeatStatus string

const (
	SeatActive   SeatStatus = "ACTIVE"
	SeatInactive SeatStatus = "INACTIVE"
	SeatBroken   SeatStatus = "BROKEN"
	SeatBlocked  SeatStatus = "BLOCKED"
)

func (s SeatStatus) Valid() bool {
	switch s {
	case SeatActive, SeatInactive, SeatBroken, SeatBlocked:
		return true
	}
	return false
}

func ParseSeatStatus(raw string) (SeatStatus, error) {
	s := SeatStatus(strings.ToUpper(strings.TrimSpace(raw)))
	if s == "" {
		return "", apperror.BadRequest("seat status is required")
	}
	if !s.Valid() {
		return "", apperror.BadRequestf("unknown seat status %q", raw)
	}
	return s, nil
}

type Seat struct {
	DTO
	ScreenID uint       `gorm:"not null;uniqueIndex:uk_seat_screen_row_col,priority:1" json:"screenId"`
	Screen   *Screen    `gorm:"foreignKey:ScreenID;constraint:OnDelete:CASCADE" json:"-"`
	SeatRow  string     `gorm:"size:5;not null;uniqueIndex:uk_seat_screen_row_col,priority:2" json:"seatRow"`
	SeatCol  int        `gorm:"not null;uniqueIndex:uk_seat_screen_row_col,priority:3" json:"seatCol"`
	Status   SeatStatus `gorm:"type:varchar(20);not null;index" json:"status"`
}

func (Seat) TableName() string { return "seats" }

// SamePosition compares rows case-insensitively.
func (s *Seat) SamePosition(row string, col int) bool {
	return strings.EqualFold(strings.TrimSpace(s.SeatRow), strings.TrimSpace(row)) && s.SeatCol == col
}

// SeatLess orders seats by row label string, then column.
func SeatLess(a, b Seat) bool {
	if a.SeatRow != b.SeatRow {
		return a.SeatRow < b.SeatRow
	}
	return a.SeatCol < b.SeatCol
}

type GenerateSeatsInput struct {
	Status     string `json:"status" validate:"required"`
	Regenerate bool   `json:"regenerate"`
}

type UpdateSeatInput struct {
	Status  string `json:"status" validate:"required"`
	SeatRow string `json:"seatRow" validate:"required,max=5"`
	SeatCol int    `json:"seatCol" validate:"required,min=1"`
}

type SeatLayoutItem struct {
	SeatID  uint       `json:"seatId"`
	SeatRow string     `json:"seatRow"`
	SeatCol int        `json:"seatCol"`
	Status  SeatStatus `json:"status"`
}

type SeatLayout struct {
	ScreenID uint             `json:"screenId"`
	Capacity int              `json:"capacity"`
	Seats    []SeatLayoutItem `json:"seats"`
}
