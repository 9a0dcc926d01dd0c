package service

import (
	"context"
	"errors"
	"fmt"

	"cinema_booking/events"
	"cinema_booking/model"
	"cinema_booking/repository"
)

// BookingService is the admin side of bookings and their payments. For cancel and refund
// a missing row or an ineligible status is a no-op.
type BookingService struct {
	base
}

func NewBookingService(d Deps) *BookingService {
	return &BookingService{base: newBase(d)}
}

// CancelBooking reports whether the booking changed. The payment is left alone.
func (s *BookingService) CancelBooking(ctx context.Context, id uint) (bool, error) {
	var from model.BookingStatus
	changed := false
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		b, err := tx.Bookings().FindByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("load booking %d: %w", id, err)
		}
		from = b.Status
		if changed = b.Cancel(); !changed {
			return nil
		}
		return persistErr(tx.Bookings().Save(ctx, b), "booking")
	})
	if err != nil {
		return false, err
	}
	if changed {
		s.publish(ctx, SourceAdmin, transition{events.EntityBooking, id, string(from), string(model.BookingCanceled)})
	}
	return changed, nil
}

// RefundPayment flips a PAID payment to REFUNDED. The booking is left alone.
func (s *BookingService) RefundPayment(ctx context.Context, id uint) (bool, error) {
	changed := false
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		p, err := tx.Payments().FindByID(ctx, id)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("load payment %d: %w", id, err)
		}
		if changed = p.Refund(); !changed {
			return nil
		}
		return persistErr(tx.Payments().Save(ctx, p), "payment")
	})
	if err != nil {
		return false, err
	}
	if changed {
		s.publish(ctx, SourceAdmin, transition{events.EntityPayment, id, string(model.PaymentPaid), string(model.PaymentRefunded)})
	}
	return changed, nil
}

func (s *BookingService) ConfirmPayment(ctx context.Context, id uint, in model.ConfirmPaymentInput) (*model.Payment, error) {
	var saved *model.Payment
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		p, err := load(ctx, tx.Payments().FindByID, events.EntityPayment, id)
		if err != nil {
			return err
		}
		if err := p.Confirm(in.PgTxID, s.clock.Now()); err != nil {
			return err
		}
		if err := tx.Payments().Save(ctx, p); err != nil {
			return persistErr(err, "payment")
		}
		saved = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, SourceAdmin, transition{events.EntityPayment, id, string(model.PaymentReady), string(model.PaymentPaid)})
	return saved, nil
}

func (s *BookingService) GetBookingDetail(ctx context.Context, id uint) (*model.BookingDetail, error) {
	b, err := load(ctx, s.store.Bookings().FindByID, events.EntityBooking, id)
	if err != nil {
		return nil, err
	}
	rows, err := s.store.BookingSeats().FindByBooking(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list booking seats: %w", err)
	}
	seats := make([]model.BookedSeat, 0, len(rows))
	for _, bs := range rows {
		item := model.BookedSeat{SeatID: bs.SeatID, Status: bs.Status, Price: bs.Price}
		if bs.Seat != nil {
			item.SeatRow, item.SeatCol = bs.Seat.SeatRow, bs.Seat.SeatCol
		}
		seats = append(seats, item)
	}
	return &model.BookingDetail{
		ID:          b.ID,
		BookingNo:   b.BookingNo,
		UserID:      b.UserID,
		ScheduleID:  b.ScheduleID,
		Status:      b.Status,
		TotalAmount: b.TotalAmount,
		CreatedAt:   b.CreatedAt,
		Seats:       seats,
	}, nil
}

func (s *BookingService) ListBookings(ctx context.Context, statuses []string, page model.Pagination) (*model.ResponseCustom, error) {
	parsed, err := model.ParseBookingStatuses(statuses)
	if err != nil {
		return nil, err
	}
	rows, total, err := s.store.Bookings().FindByStatuses(ctx, parsed, page)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return &model.ResponseCustom{Rows: rows, Limit: page.Limit, Page: page.Page, TotalCount: total}, nil
}

func (s *BookingService) GetPaymentDetail(ctx context.Context, id uint) (*model.Payment, error) {
	return load(ctx, s.store.Payments().FindByID, events.EntityPayment, id)
}

func (s *BookingService) ListPayments(ctx context.Context, statuses []string, page model.Pagination) (*model.ResponseCustom, error) {
	parsed, err := model.ParsePaymentStatuses(statuses)
	if err != nil {
		return nil, err
	}
	rows, total, err := s.store.Payments().FindByStatuses(ctx, parsed, page)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	return &model.ResponseCustom{Rows: rows, Limit: page.Limit, Page: page.Page, TotalCount: total}, nil
}
