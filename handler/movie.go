package handler

import (
	"cinema_booking/model"
	"cinema_booking/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) GetMovies(c *fiber.Ctx) error {
	f := listFilter(c)
	res, err := h.Movies.ListByStatuses(c.UserContext(), f.Statuses, f.Pagination)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, res)
}

func (h *Handler) GetMovieById(c *fiber.Ctx) error {
	m, err := h.Movies.GetDetail(c.UserContext(), inputId(c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, m)
}

func (h *Handler) GetMovieStats(c *fiber.Ctx) error {
	stats, err := h.Movies.Stats(c.UserContext())
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, stats)
}

func (h *Handler) CreateMovie(c *fiber.Ctx) error {
	id, err := h.Movies.CreateDraft(c.UserContext(), input[model.MoviePatch](c))
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusCreated, createdResponse{ID: id})
}

// movieAction runs a state change and answers with the reloaded movie.
func (h *Handler) movieAction(c *fiber.Ctx, run func(id uint) error) error {
	id := inputId(c)
	if err := run(id); err != nil {
		return utils.HandleError(c, err)
	}
	m, err := h.Movies.GetDetail(c.UserContext(), id)
	if err != nil {
		return utils.HandleError(c, err)
	}
	return utils.SuccessResponse(c, fiber.StatusOK, m)
}

func (h *Handler) SaveMovieDraft(c *fiber.Ctx) error {
	return h.movieAction(c, func(id uint) error {
		return h.Movies.SaveDraft(c.UserContext(), id, input[model.MoviePatch](c))
	})
}

func (h *Handler) CompleteMovie(c *fiber.Ctx) error {
	return h.movieAction(c, func(id uint) error {
		return h.Movies.Complete(c.UserContext(), id, input[model.MoviePatch](c))
	})
}

func (h *Handler) UpdateMovie(c *fiber.Ctx) error {
	return h.movieAction(c, func(id uint) error {
		return h.Movies.Update(c.UserContext(), id, input[model.MoviePatch](c))
	})
}

func (h *Handler) HideMovie(c *fiber.Ctx) error {
	return h.movieAction(c, func(id uint) error { return h.Movies.Hide(c.UserContext(), id) })
}

func (h *Handler) UnhideMovie(c *fiber.Ctx) error {
	return h.movieAction(c, func(id uint) error { return h.Movies.Unhide(c.UserContext(), id) })
}

func (h *Handler) DeleteMovie(c *fiber.Ctx) error {
	if err := h.Movies.SoftDelete(c.UserContext(), inputId(c)); err != nil {
		return utils.HandleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
