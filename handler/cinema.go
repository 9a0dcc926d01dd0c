package handler

import (
	"cinema_booking/model"
	"cinema_booking/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetTheaters(c *fiber.Ctx) error {
	f := listFilter(c)
	res, err := h.Theaters.ListByStatuses(c.UserContext(), f.Statuses, f.Pagination)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, res)
}

func (h *Handler) GetTheaterById(c *fiber.Ctx) error {
	t, err := h.Theaters.GetDetail(c.UserContext(), inputId(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, t)
}

func (h *Handler) GetTheaterStats(c *fiber.Ctx) error {
	stats, err := h.Theaters.Stats(c.UserContext())
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, stats)
}

func (h *Handler) CreateTheater(c *fiber.Ctx) error {
	id, err := h.Theaters.CreateDraft(c.UserContext(), input[model.TheaterPatch](c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, createdResponse{ID: id})
}

func (h *Handler) theaterAction(c *fiber.Ctx, run func(id uint) error) error {
	id := inputId(c)
	if err := run(id); err != nil {
		return utils.HandleError(c, err)
	}
	t, err := h.Theaters.GetDetail(c.UserContext(), id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, t)
}

func (h *Handler) SaveTheaterDraft(c *fiber.Ctx) error {
	return h.theaterAction(c, func(id uint) error {
		return h.Theaters.SaveDraft(c.UserContext(), id, input[model.TheaterPatch](c))
	})
}

func (h *Handler) CompleteTheater(c *fiber.Ctx) error {
	return h.theaterAction(c, func(id uint) error {
		return h.Theaters.Complete(c.UserContext(), id, input[model.TheaterCompleteInput](c))
	})
}

func (h *Handler) UpdateTheater(c *fiber.Ctx) error {
	return h.theaterAction(c, func(id uint) error {
		return h.Theaters.Update(c.UserContext(), id, input[model.TheaterPatch](c))
	})
}

func (h *Handler) ActivateTheater(c *fiber.Ctx) error {
	return h.theaterAction(c, func(id uint) error { return h.Theaters.Activate(c.UserContext(), id) })
}

func (h *Handler) HideTheater(c *fiber.Ctx) error {
	return h.theaterAction(c, func(id uint) error { return h.Theaters.Hide(c.UserContext(), id) })
}

func (h *Handler) CloseTheater(c *fiber.Ctx) error {
	return h.theaterAction(c, func(id uint) error { return h.Theaters.Close(c.UserContext(), id) })
}

func (h *Handler) DeleteTheater(c *fiber.Ctx) error {
	if err := h.Theaters.Remove(c.UserContext(), inputId(c)); err != nil {
		return utils.HandleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
