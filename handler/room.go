package handler

import (
	"cinema_booking/model"
	"cinema_booking/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetScreens(c *fiber.Ctx) error {
	f := listFilter(c)
	res, err := h.Screens.ListByStatuses(c.UserContext(), f.Statuses, f.Pagination)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, res)
}

func (h *Handler) GetScreenById(c *fiber.Ctx) error {
	sc, err := h.Screens.GetDetail(c.UserContext(), inputId(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, sc)
}

func (h *Handler) CreateScreen(c *fiber.Ctx) error {
	id, err := h.Screens.CreateDraft(c.UserContext(), input[model.ScreenPatch](c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, createdResponse{ID: id})
}

func (h *Handler) screenAction(c *fiber.Ctx, run func(id uint) error) error {
	id := inputId(c)
	if err := run(id); err != nil {
		return utils.HandleError(c, err)
	}
	sc, err := h.Screens.GetDetail(c.UserContext(), id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, sc)
}

func (h *Handler) SaveScreenDraft(c *fiber.Ctx) error {
	return h.screenAction(c, func(id uint) error {
		return h.Screens.SaveDraft(c.UserContext(), id, input[model.ScreenPatch](c))
	})
}

func (h *Handler) CompleteScreen(c *fiber.Ctx) error {
	return h.screenAction(c, func(id uint) error {
		return h.Screens.Complete(c.UserContext(), id, input[model.ScreenCompleteInput](c))
	})
}

func (h *Handler) UpdateScreen(c *fiber.Ctx) error {
	return h.screenAction(c, func(id uint) error {
		return h.Screens.Update(c.UserContext(), id, input[model.ScreenPatch](c))
	})
}

func (h *Handler) ChangeScreenStatus(c *fiber.Ctx) error {
	return h.screenAction(c, func(id uint) error {
		return h.Screens.ChangeStatus(c.UserContext(), id, input[model.ScreenStatusInput](c).Status)
	})
}

func (h *Handler) ActivateScreen(c *fiber.Ctx) error {
	return h.screenAction(c, func(id uint) error { return h.Screens.Activate(c.UserContext(), id) })
}

func (h *Handler) HideScreen(c *fiber.Ctx) error {
	return h.screenAction(c, func(id uint) error { return h.Screens.Hide(c.UserContext(), id) })
}

func (h *Handler) CloseScreen(c *fiber.Ctx) error {
	return h.screenAction(c, func(id uint) error { return h.Screens.Close(c.UserContext(), id) })
}

func (h *Handler) DeleteScreen(c *fiber.Ctx) error {
	if err := h.Screens.Remove(c.UserContext(), inputId(c)); err != nil {
		return utils.HandleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
