package utils

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/stellabot/stella-gacha/stella/economy/ledger"
	"github.com/stellabot/stella-gacha/stella/gacha"
	"github.com/stellabot/stella-gacha/stella/services"
	webmodels "github.com/stellabot/stella-gacha/web/models"
)

// SendJSON sends a JSON response using Fiber
func SendJSON(c *fiber.Ctx, statusCode int, data interface{}) error {
	return c.Status(statusCode).JSON(data)
}

// SendSuccess sends a successful JSON response
func SendSuccess(c *fiber.Ctx, data interface{}, message string) error {
	return SendJSON(c, http.StatusOK, webmodels.NewSuccessResponse(data, message))
}

// SendCreated sends a created resource JSON response
func SendCreated(c *fiber.Ctx, data interface{}, message string) error {
	return SendJSON(c, http.StatusCreated, webmodels.NewSuccessResponse(data, message))
}

// SendError sends an error JSON response
func SendError(c *fiber.Ctx, statusCode int, code, message string, details map[string]string) error {
	return SendJSON(c, statusCode, webmodels.NewErrorResponse(code, message, details))
}

// SendBadRequest sends a bad request error response
func SendBadRequest(c *fiber.Ctx, message string, details map[string]string) error {
	return SendError(c, http.StatusBadRequest, "BAD_REQUEST", message, details)
}

// SendNotFound sends a not found error response
func SendNotFound(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusNotFound, "NOT_FOUND", message, nil)
}

// SendInternalServerError sends an internal server error response
func SendInternalServerError(c *fiber.Ctx, message string) error {
	return SendError(c, http.StatusInternalServerError, "INTERNAL_STORAGE_FAILURE", message, nil)
}

// SendDomainError maps a game-layer error to its HTTP status and machine
// code. Every code except INTERNAL_STORAGE_FAILURE is terminal for the
// request; only storage failures are worth a caller retry.
func SendDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ledger.ErrInsufficientFunds):
		return SendError(c, http.StatusPaymentRequired, "INSUFFICIENT_FUNDS", "not enough points", nil)
	case errors.Is(err, ledger.ErrAlreadyClaimed):
		return SendError(c, http.StatusConflict, "ALREADY_CLAIMED", "daily reward already claimed today", nil)
	case errors.Is(err, ledger.ErrCardNotOwned):
		return SendError(c, http.StatusNotFound, "CARD_NOT_OWNED", "card instance is not owned by this user", nil)
	case errors.Is(err, ledger.ErrInvalidAmount):
		return SendBadRequest(c, "amount must be positive", nil)
	case errors.Is(err, services.ErrUnknownUser):
		return SendError(c, http.StatusNotFound, "UNKNOWN_USER", "user does not exist", nil)
	case errors.Is(err, services.ErrInvalidDeck):
		return SendError(c, http.StatusBadRequest, "INVALID_DECK", "deck must reference three distinct owned cards", nil)
	case errors.Is(err, services.ErrInvalidOpponent):
		return SendError(c, http.StatusBadRequest, "INVALID_OPPONENT", "cannot battle yourself", nil)
	case errors.Is(err, gacha.ErrInvalidCount):
		return SendError(c, http.StatusBadRequest, "INVALID_COUNT", "count must be 1 or the bulk pull size", nil)
	case errors.Is(err, gacha.ErrEmptyPool):
		return SendInternalServerError(c, "card catalog is empty")
	default:
		return SendInternalServerError(c, "internal error")
	}
}
