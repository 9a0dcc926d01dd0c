package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cinema_booking/model"
	"cinema_booking/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore is the relational Store. Inside Transaction every FindByID takes a
// row lock (SELECT ... FOR UPDATE) so guard-then-mutate sequences cannot interleave.
type GormStore struct {
	db   *gorm.DB
	lock bool
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) DB() *gorm.DB { return s.db }

func (s *GormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	if s.lock {
		return fn(s)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx, lock: true})
	})
}

func (s *GormStore) Movies() MovieRepository             { return &gormMovies{s} }
func (s *GormStore) Theaters() TheaterRepository         { return &gormTheaters{s} }
func (s *GormStore) Screens() ScreenRepository           { return &gormScreens{s} }
func (s *GormStore) Seats() SeatRepository               { return &gormSeats{s} }
func (s *GormStore) Schedules() ScheduleRepository       { return &gormSchedules{s} }
func (s *GormStore) Bookings() BookingRepository         { return &gormBookings{s} }
func (s *GormStore) BookingSeats() BookingSeatRepository { return &gormBookingSeats{s} }
func (s *GormStore) Payments() PaymentRepository         { return &gormPayments{s} }
func (s *GormStore) Users() UserRepository               { return &gormUsers{s} }

func (s *GormStore) conn(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey), strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	}
	return err
}

func findByID[T any](ctx context.Context, s *GormStore, id uint) (*T, error) {
	var out T
	q := s.conn(ctx)
	if s.lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := q.First(&out, id).Error; err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func create(ctx context.Context, s *GormStore, value any) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Create(value).Error)
}

func save(ctx context.Context, s *GormStore, value any) error {
	return translate(s.conn(ctx).Omit(clause.Associations).Save(value).Error)
}

// listByStatus counts and pages a status filtered query. exclude applies when statuses is empty.
func listByStatus[T any](ctx context.Context, s *GormStore, statuses []string, exclude string, page model.Pagination) ([]T, int64, error) {
	var rows []T
	q := s.conn(ctx).Model(new(T))
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	} else if exclude != "" {
		q = q.Where("status <> ?", exclude)
	}
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := utils.ApplyPagination(q, page.Limit, page.Page).Order("id DESC").Find(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

type statusCount struct {
	Status string
	Count  int64
}

func countByStatus[T any, S ~string](ctx context.Context, s *GormStore) (map[S]int64, error) {
	var rows []statusCount
	if err := s.conn(ctx).Model(new(T)).Select("status, count(*) AS count").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[S]int64, len(rows))
	for _, r := range rows {
		out[S(r.Status)] = r.Count
	}
	return out, nil
}

type gormMovies struct{ s *GormStore }

func (r *gormMovies) Create(ctx context.Context, m *model.Movie) error { return create(ctx, r.s, m) }
func (r *gormMovies) Save(ctx context.Context, m *model.Movie) error   { return save(ctx, r.s, m) }
func (r *gormMovies) FindByID(ctx context.Context, id uint) (*model.Movie, error) {
	return findByID[model.Movie](ctx, r.s, id)
}

func (r *gormMovies) FindByStatuses(ctx context.Context, statuses []model.MovieStatus, page model.Pagination) ([]model.Movie, int64, error) {
	return listByStatus[model.Movie](ctx, r.s, toStrings(statuses), string(model.MovieDeleted), page)
}

func (r *gormMovies) FindComingSoonReleasedBy(ctx context.Context, day utils.CustomDate) ([]model.Movie, error) {
	var movies []model.Movie
	err := r.s.conn(ctx).
		Where("status = ? AND release_date IS NOT NULL AND release_date <= ?", string(model.MovieComingSoon), day).
		Order("id ASC").
		Find(&movies).Error
	return movies, err
}

func (r *gormMovies) FindNowShowingEndedBefore(ctx context.Context, day utils.CustomDate) ([]model.Movie, error) {
	var movies []model.Movie
	err := r.s.conn(ctx).
		Where("status = ? AND end_date IS NOT NULL AND end_date < ?", string(model.MovieNowShowing), day).
		Order("id ASC").
		Find(&movies).Error
	return movies, err
}

func (r *gormMovies) CountNowShowingEndingBetween(ctx context.Context, from, to utils.CustomDate) (int64, error) {
	var n int64
	err := r.s.conn(ctx).Model(&model.Movie{}).
		Where("status = ? AND end_date BETWEEN ? AND ?", string(model.MovieNowShowing), from, to).
		Count(&n).Error
	return n, err
}

func (r *gormMovies) CountByStatus(ctx context.Context) (map[model.MovieStatus]int64, error) {
	return countByStatus[model.Movie, model.MovieStatus](ctx, r.s)
}

func (r *gormMovies) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	var n int64
	err := r.s.conn(ctx).Model(&model.Movie{}).Where("slug = ?", slug).Count(&n).Error
	return n > 0, err
}

type gormTheaters struct{ s *GormStore }

func (r *gormTheaters) Create(ctx context.Context, t *model.Theater) error {
	return create(ctx, r.s, t)
}
func (r *gormTheaters) Save(ctx context.Context, t *model.Theater) error { return save(ctx, r.s, t) }
func (r *gormTheaters) FindByID(ctx context.Context, id uint) (*model.Theater, error) {
	return findByID[model.Theater](ctx, r.s, id)
}

func (r *gormTheaters) FindByStatuses(ctx context.Context, statuses []model.TheaterStatus, page model.Pagination) ([]model.Theater, int64, error) {
	return listByStatus[model.Theater](ctx, r.s, toStrings(statuses), string(model.TheaterDeleted), page)
}

func (r *gormTheaters) CountByStatus(ctx context.Context) (map[model.TheaterStatus]int64, error) {
	return countByStatus[model.Theater, model.TheaterStatus](ctx, r.s)
}

type gormScreens struct{ s *GormStore }

func (r *gormScreens) Create(ctx context.Context, sc *model.Screen) error {
	return create(ctx, r.s, sc)
}
func (r *gormScreens) Save(ctx context.Context, sc *model.Screen) error { return save(ctx, r.s, sc) }
func (r *gormScreens) FindByID(ctx context.Context, id uint) (*model.Screen, error) {
	return findByID[model.Screen](ctx, r.s, id)
}

func (r *gormScreens) FindByStatuses(ctx context.Context, statuses []model.ScreenStatus, page model.Pagination) ([]model.Screen, int64, error) {
	return listByStatus[model.Screen](ctx, r.s, toStrings(statuses), string(model.ScreenDeleted), page)
}

func (r *gormScreens) CountByStatus(ctx context.Context) (map[model.ScreenStatus]int64, error) {
	return countByStatus[model.Screen, model.ScreenStatus](ctx, r.s)
}

type gormSeats struct{ s *GormStore }

func (r *gormSeats) CreateBatch(ctx context.Context, seats []model.Seat) error {
	if len(seats) == 0 {
		return nil
	}
	return translate(r.s.conn(ctx).Omit(clause.Associations).CreateInBatches(seats, 500).Error)
}

func (r *gormSeats) FindByID(ctx context.Context, id uint) (*model.Seat, error) {
	return findByID[model.Seat](ctx, r.s, id)
}

func (r *gormSeats) Save(ctx context.Context, seat *model.Seat) error { return save(ctx, r.s, seat) }

func (r *gormSeats) Delete(ctx context.Context, id uint) error {
	res := r.s.conn(ctx).Delete(&model.Seat{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *gormSeats) DeleteByScreen(ctx context.Context, screenID uint) (int64, error) {
	res := r.s.conn(ctx).Where("screen_id = ?", screenID).Delete(&model.Seat{})
	return res.RowsAffected, translate(res.Error)
}

func (r *gormSeats) CountByScreen(ctx context.Context, screenID uint) (int64, error) {
	var n int64
	err := r.s.conn(ctx).Model(&model.Seat{}).Where("screen_id = ?", screenID).Count(&n).Error
	return n, err
}

func (r *gormSeats) FindByScreen(ctx context.Context, screenID uint) ([]model.Seat, error) {
	var seats []model.Seat
	err := r.s.conn(ctx).
		Where("screen_id = ?", screenID).
		Order("seat_row ASC").
		Order("seat_col ASC").
		Find(&seats).Error
	return seats, err
}

func (r *gormSeats) CountByStatus(ctx context.Context) (map[model.SeatStatus]int64, error) {
	return countByStatus[model.Seat, model.SeatStatus](ctx, r.s)
}

type gormSchedules struct{ s *GormStore }

func (r *gormSchedules) Create(ctx context.Context, sc *model.Schedule) error {
	return create(ctx, r.s, sc)
}
func (r *gormSchedules) Save(ctx context.Context, sc *model.Schedule) error {
	return save(ctx, r.s, sc)
}
func (r *gormSchedules) FindByID(ctx context.Context, id uint) (*model.Schedule, error) {
	return findByID[model.Schedule](ctx, r.s, id)
}

func (r *gormSchedules) FindByStatuses(ctx context.Context, statuses []model.ScheduleStatus, page model.Pagination) ([]model.Schedule, int64, error) {
	return listByStatus[model.Schedule](ctx, r.s, toStrings(statuses), string(model.ScheduleDeleted), page)
}

func (r *gormSchedules) FindOpenOnOrBefore(ctx context.Context, day utils.CustomDate) ([]model.Schedule, error) {
	var schedules []model.Schedule
	err := r.s.conn(ctx).
		Where("status = ? AND scheduled_date <= ?", string(model.ScheduleOpen), day).
		Order("id ASC").
		Find(&schedules).Error
	return schedules, err
}

type gormBookings struct{ s *GormStore }

func (r *gormBookings) Create(ctx context.Context, b *model.Booking) error {
	return create(ctx, r.s, b)
}
func (r *gormBookings) Save(ctx context.Context, b *model.Booking) error { return save(ctx, r.s, b) }
func (r *gormBookings) FindByID(ctx context.Context, id uint) (*model.Booking, error) {
	return findByID[model.Booking](ctx, r.s, id)
}

func (r *gormBookings) FindByStatuses(ctx context.Context, statuses []model.BookingStatus, page model.Pagination) ([]model.Booking, int64, error) {
	return listByStatus[model.Booking](ctx, r.s, toStrings(statuses), string(model.BookingFailed), page)
}

type gormBookingSeats struct{ s *GormStore }

func (r *gormBookingSeats) Create(ctx context.Context, bs *model.BookingSeat) error {
	return create(ctx, r.s, bs)
}

func (r *gormBookingSeats) ExistsBySeat(ctx context.Context, seatID uint) (bool, error) {
	var n int64
	err := r.s.conn(ctx).Model(&model.BookingSeat{}).Where("seat_id = ?", seatID).Limit(1).Count(&n).Error
	return n > 0, err
}

func (r *gormBookingSeats) ExistsByScreen(ctx context.Context, screenID uint) (bool, error) {
	var n int64
	err := r.s.conn(ctx).Model(&model.BookingSeat{}).
		Joins("JOIN seats ON seats.id = booking_seats.seat_id").
		Where("seats.screen_id = ?", screenID).
		Limit(1).
		Count(&n).Error
	return n > 0, err
}

func (r *gormBookingSeats) FindByBooking(ctx context.Context, bookingID uint) ([]model.BookingSeat, error) {
	var rows []model.BookingSeat
	err := r.s.conn(ctx).Preload("Seat").Where("booking_id = ?", bookingID).Order("id ASC").Find(&rows).Error
	return rows, err
}

type gormPayments struct{ s *GormStore }

func (r *gormPayments) Create(ctx context.Context, p *model.Payment) error {
	return create(ctx, r.s, p)
}
func (r *gormPayments) Save(ctx context.Context, p *model.Payment) error { return save(ctx, r.s, p) }
func (r *gormPayments) FindByID(ctx context.Context, id uint) (*model.Payment, error) {
	return findByID[model.Payment](ctx, r.s, id)
}

func (r *gormPayments) FindByStatuses(ctx context.Context, statuses []model.PaymentStatus, page model.Pagination) ([]model.Payment, int64, error) {
	return listByStatus[model.Payment](ctx, r.s, toStrings(statuses), "", page)
}

type gormUsers struct{ s *GormStore }

func (r *gormUsers) Create(ctx context.Context, u *model.User) error { return create(ctx, r.s, u) }
func (r *gormUsers) FindByID(ctx context.Context, id uint) (*model.User, error) {
	return findByID[model.User](ctx, r.s, id)
}

func (r *gormUsers) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	if err := r.s.conn(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}
