package handler

import (
	"cinema_booking/model"
	"cinema_booking/utils"

	"github.com/gofiber/fiber/v2"
)

type changedResponse struct {
	ID      uint `json:"id"`
	Changed bool `json:"changed"`
}

func (h *Handler) GetBookings(c *fiber.Ctx) error {
	f := listFilter(c)
	res, err := h.Bookings.ListBookings(c.UserContext(), f.Statuses, f.Pagination)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, res)
}

func (h *Handler) GetBookingById(c *fiber.Ctx) error {
	detail, err := h.Bookings.GetBookingDetail(c.UserContext(), inputId(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, detail)
}

// CancelBooking answers 200 even for an unknown id. changed tells whether anything happened.
func (h *Handler) CancelBooking(c *fiber.Ctx) error {
	id := inputId(c)
	changed, err := h.Bookings.CancelBooking(c.UserContext(), id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, changedResponse{ID: id, Changed: changed})
}

func (h *Handler) GetPayments(c *fiber.Ctx) error {
	f := listFilter(c)
	res, err := h.Bookings.ListPayments(c.UserContext(), f.Statuses, f.Pagination)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, res)
}

func (h *Handler) GetPaymentById(c *fiber.Ctx) error {
	p, err := h.Bookings.GetPaymentDetail(c.UserContext(), inputId(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, p)
}

func (h *Handler) RefundPayment(c *fiber.Ctx) error {
	id := inputId(c)
	changed, err := h.Bookings.RefundPayment(c.UserContext(), id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, changedResponse{ID: id, Changed: changed})
}

func (h *Handler) ConfirmPayment(c *fiber.Ctx) error {
	p, err := h.Bookings.ConfirmPayment(c.UserContext(), inputId(c), input[model.ConfirmPaymentInput](c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, p)
}
