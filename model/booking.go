package model

import (
	"fmt"
	"strings"
	"time"

	"cinema_booking/apperror"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCanceled  BookingStatus = "CANCELED"
	BookingFailed    BookingStatus = "FAILED"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCanceled, BookingFailed:
		return true
	}
	return false
}

func ParseBookingStatuses(raw []string) ([]BookingStatus, error) {
	out := make([]BookingStatus, 0, len(raw))
	for _, r := range raw {
		s := BookingStatus(strings.ToUpper(strings.TrimSpace(r)))
		if !s.Valid() {
			return nil, apperror.BadRequestf("unknown booking status %q", r)
		}
		out = append(out, s)
	}
	return out, nil
}

type Booking struct {
	DTO
	UserID      uint          `gorm:"not null;index" json:"userId"`
	User        *User         `gorm:"foreignKey:UserID" json:"-"`
	ScheduleID  uint          `gorm:"not null;index" json:"scheduleId"`
	Schedule    *Schedule     `gorm:"foreignKey:ScheduleID" json:"-"`
	BookingNo   string        `gorm:"size:40;not null;uniqueIndex" json:"bookingNo"`
	Status      BookingStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	TotalAmount int64         `gorm:"not null;default:0" json:"totalAmount"`
}

func (Booking) TableName() string { return "bookings" }

// NewBookingNo is "MVI-<unix millis>-<8 hex>". Numbers drawn in the same millisecond still differ.
func NewBookingNo(now time.Time) string {
	return fmt.Sprintf("MVI-%d-%s", now.UnixMilli(), strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
}

// PrepareCreate fills the booking number and initial status.
func (b *Booking) PrepareCreate(now time.Time) {
	if b.BookingNo == "" {
		b.BookingNo = NewBookingNo(now)
	}
	if b.Status == "" {
		b.Status = BookingPending
	}
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	b.PrepareCreate(time.Now())
	return nil
}

// Cancel has no source status precondition.
func (b *Booking) Cancel() bool {
	if b.Status == BookingCanceled {
		return false
	}
	b.Status = BookingCanceled
	return true
}

type BookingSeatStatus string

const (
	BookingSeatHeld      BookingSeatStatus = "HELD"
	BookingSeatConfirmed BookingSeatStatus = "CONFIRMED"
	BookingSeatCanceled  BookingSeatStatus = "CANCELED"
)

type BookingSeat struct {
	DTO
	BookingID  uint              `gorm:"not null;index" json:"bookingId"`
	Booking    *Booking          `gorm:"foreignKey:BookingID" json:"-"`
	ScheduleID uint              `gorm:"not null;index" json:"scheduleId"`
	SeatID     uint              `gorm:"not null;index" json:"seatId"`
	Seat       *Seat             `gorm:"foreignKey:SeatID;constraint:OnDelete:RESTRICT" json:"-"`
	Status     BookingSeatStatus `gorm:"type:varchar(20);not null" json:"status"`
	Price      int64             `gorm:"not null;default:0" json:"price"`
}

func (BookingSeat) TableName() string { return "booking_seats" }

type BookedSeat struct {
	SeatID  uint              `json:"seatId"`
	SeatRow string            `json:"seatRow"`
	SeatCol int               `json:"seatCol"`
	Status  BookingSeatStatus `json:"status"`
	Price   int64             `json:"price"`
}

type BookingDetail struct {
	ID          uint          `json:"id"`
	BookingNo   string        `json:"bookingNo"`
	UserID      uint          `json:"userId"`
	ScheduleID  uint          `json:"scheduleId"`
	Status      BookingStatus `json:"status"`
	TotalAmount int64         `json:"totalAmount"`
	CreatedAt   time.Time     `json:"createdAt"`
	Seats       []BookedSeat  `json:"seats"`
}
