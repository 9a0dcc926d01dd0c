package repository

import (
	"context"
	"errors"

	"cinema_booking/model"
	"cinema_booking/utils"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// Store is the unit-of-work entry point. Repositories obtained from the Store passed to
// Transaction lock every row they load until the transaction ends.
type Store interface {
	Movies() MovieRepository
	Theaters() TheaterRepository
	Screens() ScreenRepository
	Seats() SeatRepository
	Schedules() ScheduleRepository
	Bookings() BookingRepository
	BookingSeats() BookingSeatRepository
	Payments() PaymentRepository
	Users() UserRepository

	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type MovieRepository interface {
	Create(ctx context.Context, m *model.Movie) error
	FindByID(ctx context.Context, id uint) (*model.Movie, error)
	Save(ctx context.Context, m *model.Movie) error
	// FindByStatuses lists every non-deleted movie when statuses is empty.
	FindByStatuses(ctx context.Context, statuses []model.MovieStatus, page model.Pagination) ([]model.Movie, int64, error)
	FindComingSoonReleasedBy(ctx context.Context, day utils.CustomDate) ([]model.Movie, error)
	FindNowShowingEndedBefore(ctx context.Context, day utils.CustomDate) ([]model.Movie, error)
	CountNowShowingEndingBetween(ctx context.Context, from, to utils.CustomDate) (int64, error)
	CountByStatus(ctx context.Context) (map[model.MovieStatus]int64, error)
	ExistsBySlug(ctx context.Context, slug string) (bool, error)
}

type TheaterRepository interface {
	Create(ctx context.Context, t *model.Theater) error
	FindByID(ctx context.Context, id uint) (*model.Theater, error)
	Save(ctx context.Context, t *model.Theater) error
	FindByStatuses(ctx context.Context, statuses []model.TheaterStatus, page model.Pagination) ([]model.Theater, int64, error)
	CountByStatus(ctx context.Context) (map[model.TheaterStatus]int64, error)
}

type ScreenRepository interface {
	Create(ctx context.Context, s *model.Screen) error
	FindByID(ctx context.Context, id uint) (*model.Screen, error)
	Save(ctx context.Context, s *model.Screen) error
	FindByStatuses(ctx context.Context, statuses []model.ScreenStatus, page model.Pagination) ([]model.Screen, int64, error)
	CountByStatus(ctx context.Context) (map[model.ScreenStatus]int64, error)
}

type SeatRepository interface {
	CreateBatch(ctx context.Context, seats []model.Seat) error
	FindByID(ctx context.Context, id uint) (*model.Seat, error)
	Save(ctx context.Context, s *model.Seat) error
	Delete(ctx context.Context, id uint) error
	DeleteByScreen(ctx context.Context, screenID uint) (int64, error)
	CountByScreen(ctx context.Context, screenID uint) (int64, error)
	// FindByScreen orders by row label then column.
	FindByScreen(ctx context.Context, screenID uint) ([]model.Seat, error)
	CountByStatus(ctx context.Context) (map[model.SeatStatus]int64, error)
}

type ScheduleRepository interface {
	Create(ctx context.Context, s *model.Schedule) error
	FindByID(ctx context.Context, id uint) (*model.Schedule, error)
	Save(ctx context.Context, s *model.Schedule) error
	FindByStatuses(ctx context.Context, statuses []model.ScheduleStatus, page model.Pagination) ([]model.Schedule, int64, error)
	FindOpenOnOrBefore(ctx context.Context, day utils.CustomDate) ([]model.Schedule, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *model.Booking) error
	FindByID(ctx context.Context, id uint) (*model.Booking, error)
	Save(ctx context.Context, b *model.Booking) error
	// FindByStatuses excludes FAILED bookings when statuses is empty.
	FindByStatuses(ctx context.Context, statuses []model.BookingStatus, page model.Pagination) ([]model.Booking, int64, error)
}

type BookingSeatRepository interface {
	Create(ctx context.Context, bs *model.BookingSeat) error
	ExistsBySeat(ctx context.Context, seatID uint) (bool, error)
	ExistsByScreen(ctx context.Context, screenID uint) (bool, error)
	FindByBooking(ctx context.Context, bookingID uint) ([]model.BookingSeat, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, p *model.Payment) error
	FindByID(ctx context.Context, id uint) (*model.Payment, error)
	Save(ctx context.Context, p *model.Payment) error
	FindByStatuses(ctx context.Context, statuses []model.PaymentStatus, page model.Pagination) ([]model.Payment, int64, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

func toStrings[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}
