package validate

import (
	"cinema_booking/model"

	"github.com/gofiber/fiber/v2"
)

func ScreenPatch() fiber.Handler {
	return body[model.ScreenPatch](true)
}

func ScreenComplete() fiber.Handler {
	return body[model.ScreenCompleteInput](false)
}

func ScreenStatus() fiber.Handler {
	return body[model.ScreenStatusInput](false)
}

func GenerateSeats() fiber.Handler {
	return body[model.GenerateSeatsInput](false)
}

func UpdateSeat() fiber.Handler {
	return body[model.UpdateSeatInput](false)
}

func TheaterPatch() fiber.Handler {
	return body[model.TheaterPatch](true)
}

func TheaterComplete() fiber.Handler {
	return body[model.TheaterCompleteInput](false)
}

func ConfirmPayment() fiber.Handler {
	return body[model.ConfirmPaymentInput](true)
}
