package utils

import (
	"cinema_booking/apperror"
	"cinema_booking/constants"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func ErrorResponse(c *fiber.Ctx, status int, message string, err error) error {
	var errMsg interface{}
	if err != nil {
		errMsg = err.Error()
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   errMsg,
	})
}

func SuccessResponse(c *fiber.Ctx, status int, data any) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "success",
		"data":   data,
	})
}

// HandleError maps business error kinds onto HTTP statuses.
func HandleError(c *fiber.Ctx, err error) error {
	kind, ok := apperror.KindOf(err)
	if !ok {
		return ErrorResponse(c, fiber.StatusInternalServerError, constants.INTERNAL_ERROR, err)
	}
	switch kind {
	case apperror.KindNotFound:
		return ErrorResponse(c, fiber.StatusNotFound, constants.RESOURCE_NOT_FOUND, err)
	case apperror.KindConflict:
		return ErrorResponse(c, fiber.StatusConflict, constants.STATE_CONFLICT, err)
	case apperror.KindBadRequest:
		return ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_INPUT, err)
	}
	return ErrorResponse(c, fiber.StatusInternalServerError, constants.INTERNAL_ERROR, err)
}

func ApplyPagination(query *gorm.DB, limit, page *int) *gorm.DB {
	if limit != nil && *limit > 0 && page != nil && *page >= 1 {
		query = query.Limit(*limit).Offset(*limit * (*page - 1))
	}
	return query
}

// PageBounds returns the [start, end) slice window for limit/page over total rows.
func PageBounds(total int, limit, page *int) (int, int) {
	if limit == nil || *limit <= 0 || page == nil || *page < 1 {
		return 0, total
	}
	start := *limit * (*page - 1)
	if start > total {
		start = total
	}
	end := start + *limit
	if end > total {
		end = total
	}
	return start, end
}

// SplitCSV splits "A, b,,C" into ["A","B","C"].
func SplitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.ToUpper(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func TrimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func IsBlank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func Ptr[T any](v T) *T {
	return &v
}
