package model

import (
	"cinema_booking/apperror"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentStatus string

const (
	PaymentReady    PaymentStatus = "READY"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentFailed   PaymentStatus = "FAILED"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentReady, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

func ParsePaymentStatuses(raw []string) ([]PaymentStatus, error) {
	out := make([]PaymentStatus, 0, len(raw))
	for _, r := range raw {
		s := PaymentStatus(strings.ToUpper(strings.TrimSpace(r)))
		if !s.Valid() {
			return nil, apperror.BadRequestf("unknown payment status %q", r)
		}
		out = append(out, s)
	}
	return out, nil
}

const (
	PaymentProviderCard = "CARD"
	PaymentMethodCard   = "CARD"
)

type Payment struct {
	DTO
	PublicPaymentID string        `gorm:"size:60;not null;uniqueIndex" json:"publicPaymentId"`
	BookingID       uint          `gorm:"not null;uniqueIndex" json:"bookingId"`
	Booking         *Booking      `gorm:"foreignKey:BookingID" json:"-"`
	UserID          uint          `gorm:"not null;index" json:"userId"`
	Provider        string        `gorm:"size:20;not null" json:"provider"`
	Method          string        `gorm:"size:20;not null" json:"method"`
	Amount          int64         `gorm:"not null" json:"amount"`
	Status          PaymentStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	PgTxID          *string       `gorm:"size:100" json:"pgTxId"`
	ApprovedAt      *time.Time    `json:"approvedAt"`
}

func (Payment) TableName() string { return "payments" }

func (p *Payment) PrepareCreate() {
	if p.PublicPaymentID == "" {
		p.PublicPaymentID = "PAYMENT" + uuid.NewString()
	}
	if p.Provider == "" {
		p.Provider = PaymentProviderCard
	}
	if p.Method == "" {
		p.Method = PaymentMethodCard
	}
	if p.Status == "" {
		p.Status = PaymentReady
	}
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	p.PrepareCreate()
	return nil
}

// Refund only applies to a PAID payment and reports whether it did.
func (p *Payment) Refund() bool {
	if p.Status != PaymentPaid {
		return false
	}
	p.Status = PaymentRefunded
	return true
}

func (p *Payment) Confirm(pgTxID string, at time.Time) error {
	if p.Status != PaymentReady {
		return apperror.Conflictf("payment %d: only a READY payment can be confirmed (status %s)", p.ID, p.Status)
	}
	p.Status = PaymentPaid
	if pgTxID != "" {
		p.PgTxID = &pgTxID
	}
	p.ApprovedAt = &at
	return nil
}

type ConfirmPaymentInput struct {
	PgTxID string `json:"pgTxId" validate:"omitempty,max=100"`
}
