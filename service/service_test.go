package service

import (
	"context"
	"testing"
	"time"

	"cinema_booking/events"
	"cinema_booking/model"
	"cinema_booking/repository"
	"cinema_booking/utils"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event events.StatusChanged) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type fixture struct {
	store     *repository.GormStore
	clock     *utils.FixedClock
	events    *mockPublisher
	movies    *MovieService
	schedules *ScheduleService
	screens   *ScreenService
	theaters  *TheaterService
	seats     *SeatService
	bookings  *BookingService
	sweep     *MovieSweep
}

var seoul = utils.LoadLocation("Asia/Seoul")

// newTestStore backs a test with a private in-memory sqlite database.
func newTestStore(t *testing.T) *repository.GormStore {
	t.Helper()
	db, err := repository.OpenSQLite(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return repository.NewGormStore(db)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:  newTestStore(t),
		clock:  &utils.FixedClock{At: time.Date(2025, 3, 10, 9, 0, 0, 0, seoul)},
		events: &mockPublisher{},
	}
	f.events.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	deps := Deps{Store: f.store, Clock: f.clock, Events: f.events}
	f.movies = NewMovieService(deps)
	f.schedules = NewScheduleService(deps)
	f.screens = NewScreenService(deps)
	f.theaters = NewTheaterService(deps)
	f.seats = NewSeatService(deps)
	f.bookings = NewBookingService(deps)
	f.sweep = NewMovieSweep(f.store, f.movies, nil)
	return f
}

func date(s string) *utils.CustomDate {
	d, err := utils.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &d
}

func clockAt(h, m int) *utils.ClockTime {
	c := utils.NewClockTime(h, m, 0)
	return &c
}

func completeMoviePatch(title string) model.MoviePatch {
	return model.MoviePatch{
		Title:       utils.Ptr(title),
		Director:    utils.Ptr("Bong Joon-ho"),
		Genre:       utils.Ptr("Drama"),
		Synopsis:    utils.Ptr("A family schemes its way into a wealthy household."),
		RuntimeMin:  utils.Ptr(132),
		Rating:      utils.Ptr("15"),
		PosterURL:   utils.Ptr("https://img.example.com/parasite.jpg"),
		ReleaseDate: date("2025-03-01"),
		EndDate:     date("2025-04-30"),
	}
}

// seedMovie inserts a movie directly in the given status.
func (f *fixture) seedMovie(t *testing.T, status model.MovieStatus, release, end string) *model.Movie {
	t.Helper()
	m := &model.Movie{Title: utils.Ptr("Seeded"), RuntimeMin: utils.Ptr(120), Status: status}
	if release != "" {
		m.ReleaseDate = date(release)
	}
	if end != "" {
		m.EndDate = date(end)
	}
	require.NoError(t, f.store.Movies().Create(context.Background(), m))
	return m
}

func (f *fixture) seedTheater(t *testing.T, status model.TheaterStatus) *model.Theater {
	t.Helper()
	th := &model.Theater{Name: utils.Ptr("Gangnam"), Status: status}
	require.NoError(t, f.store.Theaters().Create(context.Background(), th))
	return th
}

func (f *fixture) seedScreen(t *testing.T, rows, cols int, status model.ScreenStatus) *model.Screen {
	t.Helper()
	sc := &model.Screen{Name: utils.Ptr("Hall 1"), SeatRowCount: rows, SeatColCount: cols, Status: status}
	require.NoError(t, f.store.Screens().Create(context.Background(), sc))
	return sc
}

// seedBookingOn books the first seat of the screen.
func (f *fixture) seedBookingOn(t *testing.T, screenID uint) (*model.Booking, *model.Seat) {
	t.Helper()
	ctx := context.Background()
	seats, err := f.store.Seats().FindByScreen(ctx, screenID)
	require.NoError(t, err)
	require.NotEmpty(t, seats)
	b := &model.Booking{UserID: 1, ScheduleID: 1, TotalAmount: 12000}
	require.NoError(t, f.store.Bookings().Create(ctx, b))
	require.NoError(t, f.store.BookingSeats().Create(ctx, &model.BookingSeat{
		BookingID: b.ID, ScheduleID: 1, SeatID: seats[0].ID, Status: model.BookingSeatConfirmed, Price: 12000,
	}))
	return b, &seats[0]
}

func (f *fixture) movieStatus(t *testing.T, id uint) model.MovieStatus {
	t.Helper()
	m, err := f.store.Movies().FindByID(context.Background(), id)
	require.NoError(t, err)
	return m.Status
}

func publishedTo(entity string, id uint, to string) any {
	return mock.MatchedBy(func(e events.StatusChanged) bool {
		return e.Entity == entity && e.EntityID == id && e.To == to
	})
}
