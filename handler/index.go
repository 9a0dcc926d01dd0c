package handler

import (
	"time"

	"cinema_booking/model"
	"cinema_booking/repository"
	"cinema_booking/service"
	"cinema_booking/validate"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	Movies    *service.MovieService
	Schedules *service.ScheduleService
	Screens   *service.ScreenService
	Theaters  *service.TheaterService
	Seats     *service.SeatService
	Bookings  *service.BookingService
	Users     repository.UserRepository

	JWTSecret string
	TokenTTL  time.Duration
}

func New(deps service.Deps, jwtSecret string, tokenTTL time.Duration) *Handler {
	return &Handler{
		Movies:    service.NewMovieService(deps),
		Schedules: service.NewScheduleService(deps),
		Screens:   service.NewScreenService(deps),
		Theaters:  service.NewTheaterService(deps),
		Seats:     service.NewSeatService(deps),
		Bookings:  service.NewBookingService(deps),
		Users:     deps.Store.Users(),
		JWTSecret: jwtSecret,
		TokenTTL:  tokenTTL,
	}
}

func inputId(c *fiber.Ctx) uint {
	return c.Locals(validate.IdKey).(uint)
}

func input[T any](c *fiber.Ctx) T {
	return c.Locals(validate.InputKey).(T)
}

func listFilter(c *fiber.Ctx) model.ListFilter {
	return c.Locals(validate.FilterKey).(model.ListFilter)
}

type createdResponse struct {
	ID uint `json:"id"`
}
