package validate

import (
	"errors"
	"strconv"

	"cinema_booking/constants"
	"cinema_booking/model"
	"cinema_booking/utils"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

const (
	InputKey  = "input"
	IdKey     = "inputId"
	FilterKey = "listFilter"
)

func GetById(key string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		params := c.Params(key)
		valueKey, err := strconv.ParseUint(params, 10, 64)
		if err != nil || valueKey == 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, errors.New("params invalid"))
		}

		c.Locals(IdKey, uint(valueKey))
		return c.Next()
	}
}

// ListQuery reads ?statuses=A,B&limit=&page=. Status names are checked by the service.
func ListQuery() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var page model.Pagination
		if err := c.QueryParser(&page); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.DATA_INPUT_IS_NOT_NUMBER, err)
		}
		if (page.Limit != nil && *page.Limit < 0) || (page.Page != nil && *page.Page < 0) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, errors.New("limit and page must not be negative"))
		}
		c.Locals(FilterKey, model.ListFilter{Statuses: utils.SplitCSV(c.Query("statuses")), Pagination: page})
		return c.Next()
	}
}

// body parses and validates the request body into T and stores it under InputKey.
// An optional body may be empty.
func body[T any](optional bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var input T
		if !(optional && len(c.Body()) == 0) {
			if err := c.BodyParser(&input); err != nil {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
			}
		}
		if err := validate.Struct(input); err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
		}
		c.Locals(InputKey, input)
		return c.Next()
	}
}

func Login() fiber.Handler {
	return body[model.LoginInput](false)
}
