package handler

import (
	"cinema_booking/model"
	"cinema_booking/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetSchedules(c *fiber.Ctx) error {
	f := listFilter(c)
	res, err := h.Schedules.ListByStatuses(c.UserContext(), f.Statuses, f.Pagination)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, res)
}

func (h *Handler) GetScheduleById(c *fiber.Ctx) error {
	detail, err := h.Schedules.GetDetail(c.UserContext(), inputId(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, detail)
}

func (h *Handler) CreateSchedule(c *fiber.Ctx) error {
	id, err := h.Schedules.CreateDraft(c.UserContext(), input[model.ScheduleInput](c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, createdResponse{ID: id})
}

func (h *Handler) scheduleAction(c *fiber.Ctx, run func(id uint) error) error {
	id := inputId(c)
	if err := run(id); err != nil {
		return utils.HandleError(c, err)
	}
	detail, err := h.Schedules.GetDetail(c.UserContext(), id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, detail)
}

func (h *Handler) SaveScheduleDraft(c *fiber.Ctx) error {
	return h.scheduleAction(c, func(id uint) error {
		return h.Schedules.SaveDraft(c.UserContext(), id, input[model.ScheduleInput](c))
	})
}

func (h *Handler) CompleteSchedule(c *fiber.Ctx) error {
	return h.scheduleAction(c, func(id uint) error {
		return h.Schedules.Complete(c.UserContext(), id, input[model.ScheduleInput](c))
	})
}

func (h *Handler) UpdateSchedule(c *fiber.Ctx) error {
	return h.scheduleAction(c, func(id uint) error {
		return h.Schedules.Update(c.UserContext(), id, input[model.ScheduleInput](c))
	})
}

func (h *Handler) CancelSchedule(c *fiber.Ctx) error {
	return h.scheduleAction(c, func(id uint) error { return h.Schedules.Cancel(c.UserContext(), id) })
}

func (h *Handler) CloseSchedule(c *fiber.Ctx) error {
	return h.scheduleAction(c, func(id uint) error { return h.Schedules.Close(c.UserContext(), id) })
}

func (h *Handler) DeleteSchedule(c *fiber.Ctx) error {
	if err := h.Schedules.SoftDelete(c.UserContext(), inputId(c)); err != nil {
		return utils.HandleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
