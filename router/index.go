package router

import (
	"cinema_booking/handler"
	"cinema_booking/middleware"
	"cinema_booking/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App, h *handler.Handler) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1")

	auth := v1.Group("/auth")
	auth.Post("/login", validate.Login(), h.Login)

	protected, adminOnly := middleware.Protected(h.JWTSecret), middleware.AdminOnly()

	movie := v1.Group("/movies", protected, adminOnly)
	movie.Get("/", validate.ListQuery(), h.GetMovies)
	movie.Get("/stats", h.GetMovieStats)
	movie.Get("/:movieId", validate.GetById("movieId"), h.GetMovieById)
	movie.Post("/", validate.MoviePatch(), h.CreateMovie)
	movie.Put("/:movieId/draft", validate.GetById("movieId"), validate.MoviePatch(), h.SaveMovieDraft)
	movie.Post("/:movieId/complete", validate.GetById("movieId"), validate.MoviePatch(), h.CompleteMovie)
	movie.Patch("/:movieId", validate.GetById("movieId"), validate.MoviePatch(), h.UpdateMovie)
	movie.Post("/:movieId/hide", validate.GetById("movieId"), h.HideMovie)
	movie.Post("/:movieId/unhide", validate.GetById("movieId"), h.UnhideMovie)
	movie.Delete("/:movieId", validate.GetById("movieId"), h.DeleteMovie)

	schedule := v1.Group("/schedules", protected, adminOnly)
	schedule.Get("/", validate.ListQuery(), h.GetSchedules)
	schedule.Get("/:scheduleId", validate.GetById("scheduleId"), h.GetScheduleById)
	schedule.Post("/", validate.ScheduleInput(), h.CreateSchedule)
	schedule.Put("/:scheduleId/draft", validate.GetById("scheduleId"), validate.ScheduleInput(), h.SaveScheduleDraft)
	schedule.Post("/:scheduleId/complete", validate.GetById("scheduleId"), validate.ScheduleInput(), h.CompleteSchedule)
	schedule.Patch("/:scheduleId", validate.GetById("scheduleId"), validate.ScheduleInput(), h.UpdateSchedule)
	schedule.Post("/:scheduleId/cancel", validate.GetById("scheduleId"), h.CancelSchedule)
	schedule.Post("/:scheduleId/close", validate.GetById("scheduleId"), h.CloseSchedule)
	schedule.Delete("/:scheduleId", validate.GetById("scheduleId"), h.DeleteSchedule)

	screen := v1.Group("/screens", protected, adminOnly)
	screen.Get("/", validate.ListQuery(), h.GetScreens)
	screen.Get("/:screenId", validate.GetById("screenId"), h.GetScreenById)
	screen.Post("/", validate.ScreenPatch(), h.CreateScreen)
	screen.Put("/:screenId/draft", validate.GetById("screenId"), validate.ScreenPatch(), h.SaveScreenDraft)
	screen.Post("/:screenId/complete", validate.GetById("screenId"), validate.ScreenComplete(), h.CompleteScreen)
	screen.Patch("/:screenId", validate.GetById("screenId"), validate.ScreenPatch(), h.UpdateScreen)
	screen.Patch("/:screenId/status", validate.GetById("screenId"), validate.ScreenStatus(), h.ChangeScreenStatus)
	screen.Post("/:screenId/activate", validate.GetById("screenId"), h.ActivateScreen)
	screen.Post("/:screenId/hide", validate.GetById("screenId"), h.HideScreen)
	screen.Post("/:screenId/close", validate.GetById("screenId"), h.CloseScreen)
	screen.Delete("/:screenId", validate.GetById("screenId"), h.DeleteScreen)
	screen.Get("/:screenId/seats", validate.GetById("screenId"), h.GetSeatLayout)
	screen.Post("/:screenId/seats", validate.GetById("screenId"), validate.GenerateSeats(), h.GenerateSeats)

	seat := v1.Group("/seats", protected, adminOnly)
	seat.Patch("/:seatId", validate.GetById("seatId"), validate.UpdateSeat(), h.UpdateSeat)
	seat.Delete("/:seatId", validate.GetById("seatId"), h.DeleteSeat)

	theater := v1.Group("/theaters", protected, adminOnly)
	theater.Get("/", validate.ListQuery(), h.GetTheaters)
	theater.Get("/stats", h.GetTheaterStats)
	theater.Get("/:theaterId", validate.GetById("theaterId"), h.GetTheaterById)
	theater.Post("/", validate.TheaterPatch(), h.CreateTheater)
	theater.Put("/:theaterId/draft", validate.GetById("theaterId"), validate.TheaterPatch(), h.SaveTheaterDraft)
	theater.Post("/:theaterId/complete", validate.GetById("theaterId"), validate.TheaterComplete(), h.CompleteTheater)
	theater.Patch("/:theaterId", validate.GetById("theaterId"), validate.TheaterPatch(), h.UpdateTheater)
	theater.Post("/:theaterId/activate", validate.GetById("theaterId"), h.ActivateTheater)
	theater.Post("/:theaterId/hide", validate.GetById("theaterId"), h.HideTheater)
	theater.Post("/:theaterId/close", validate.GetById("theaterId"), h.CloseTheater)
	theater.Delete("/:theaterId", validate.GetById("theaterId"), h.DeleteTheater)

	booking := v1.Group("/bookings", protected, adminOnly)
	booking.Get("/", validate.ListQuery(), h.GetBookings)
	booking.Get("/:bookingId", validate.GetById("bookingId"), h.GetBookingById)
	booking.Post("/:bookingId/cancel", validate.GetById("bookingId"), h.CancelBooking)

	payment := v1.Group("/payments", protected, adminOnly)
	payment.Get("/", validate.ListQuery(), h.GetPayments)
	payment.Get("/:paymentId", validate.GetById("paymentId"), h.GetPaymentById)
	payment.Post("/:paymentId/refund", validate.GetById("paymentId"), h.RefundPayment)
	payment.Post("/:paymentId/confirm", validate.GetById("paymentId"), validate.ConfirmPayment(), h.ConfirmPayment)
}
