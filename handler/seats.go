package handler

import (
	"cinema_booking/model"
	"cinema_booking/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GenerateSeats(c *fiber.Ctx) error {
	screenID := inputId(c)
	if _, err := h.Seats.GenerateLayout(c.UserContext(), screenID, input[model.GenerateSeatsInput](c)); err != nil {
		return utils.HandleError(c, err)
	}
	layout, err := h.Seats.GetLayout(c.UserContext(), screenID)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, layout)
}

func (h *Handler) GetSeatLayout(c *fiber.Ctx) error {
	layout, err := h.Seats.GetLayout(c.UserContext(), inputId(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, layout)
}

func (h *Handler) UpdateSeat(c *fiber.Ctx) error {
	seat, err := h.Seats.UpdateSeat(c.UserContext(), inputId(c), input[model.UpdateSeatInput](c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, seat)
}

func (h *Handler) DeleteSeat(c *fiber.Ctx) error {
	if err := h.Seats.DeleteSeat(c.UserContext(), inputId(c)); err != nil {
		return utils.HandleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
