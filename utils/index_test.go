package utils

import (
	"cinema_booking/apperror"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitCSV(t *testing.T) {
	assert.Equal(t, []string{"DRAFT", "NOW_SHOWING"}, SplitCSV(" draft, ,NOW_SHOWING,"))
	assert.Nil(t, SplitCSV(""))
}

func TestPageBounds(t *testing.T) {
	start, end := PageBounds(25, Ptr(10), Ptr(3))
	assert.Equal(t, 20, start)
	assert.Equal(t, 25, end)

	start, end = PageBounds(5, nil, nil)
	assert.Equal(t, 0, start)
	assert.Equal(t, 5, end)

	start, end = PageBounds(5, Ptr(10), Ptr(4))
	assert.Equal(t, 5, start)
	assert.Equal(t, 5, end)
}

func TestHandleError(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{apperror.NotFound("movie", 7), fiber.StatusNotFound},
		{apperror.Conflict("already deleted"), fiber.StatusConflict},
		{apperror.BadRequest("rows must be positive"), fiber.StatusBadRequest},
		{errors.New("boom"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		app := fiber.New()
		app.Get("/", func(c *fiber.Ctx) error { return HandleError(c, tc.err) })

		res, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.Equal(t, tc.status, res.StatusCode, tc.err.Error())
	}
}
