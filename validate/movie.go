package validate

import (
	"cinema_booking/model"

	"github.com/gofiber/fiber/v2"
)

// MoviePatch serves create, save-draft, complete and update. Required fields are checked on complete.
func MoviePatch() fiber.Handler {
	return body[model.MoviePatch](true)
}

func ScheduleInput() fiber.Handler {
	return body[model.ScheduleInput](true)
}
