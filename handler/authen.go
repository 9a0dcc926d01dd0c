package handler

import (
	"errors"
	"strings"

	"cinema_booking/constants"
	"cinema_booking/helper"
	"cinema_booking/model"
	"cinema_booking/repository"
	"cinema_booking/utils"

	"github.com/gofiber/fiber/v2"
)

func (h *Handler) Login(c *fiber.Ctx) error {
	in := input[model.LoginInput](c)
	user, err := h.Users.FindByEmail(c.UserContext(), strings.ToLower(strings.TrimSpace(in.Email)))
	if errors.Is(err, repository.ErrNotFound) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.LOGIN_FAILED, nil)
	}
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.INTERNAL_ERROR, err)
	}
	if !helper.CheckPasswordHash(in.Password, user.PasswordHash) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.LOGIN_FAILED, nil)
	}
	if !user.IsActive {
		return utils.ErrorResponse(c, fiber.StatusForbidden, constants.ACCOUNT_DISABLED, nil)
	}

	token, err := helper.GenerateAccessToken(h.JWTSecret, h.TokenTTL, model.TokenClaim{UserID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.INTERNAL_ERROR, err)
	}
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token.AccessToken,
		HTTPOnly: true,
		SameSite: "Lax",
		MaxAge:   int(h.TokenTTL.Seconds()),
	})
	return utils.SuccessResponse(c, fiber.StatusOK, token)
}
