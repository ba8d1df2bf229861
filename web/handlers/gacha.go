package handlers

import (
	"github.com/gofiber/fiber/v2"

	webmodels "github.com/stellabot/stella-gacha/web/models"
	"github.com/stellabot/stella-gacha/web/utils"
)

// Pull handles POST /gacha/pull. The whole pull is atomic: either every
// drawn card lands in the inventory and the cost is debited, or nothing
// changes.
func Pull(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.PullRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "invalid request body", nil)
		}
		if req.UserID == "" {
			return utils.SendBadRequest(c, "userId is required", nil)
		}

		result, err := app.Gacha.Pull(c.Context(), req.UserID, req.Count)
		if err != nil {
			return utils.SendDomainError(c, err)
		}

		results := make([]webmodels.CardView, len(result.Cards))
		for i, card := range result.Cards {
			results[i] = webmodels.NewCardView(card)
		}
		return utils.SendSuccess(c, webmodels.PullResponse{
			Results:    results,
			NewBalance: result.NewBalance,
		}, "pull completed")
	}
}

// DailyClaim handles POST /gacha/daily.
func DailyClaim(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req struct {
			UserID string `json:"userId"`
		}
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "invalid request body", nil)
		}
		if req.UserID == "" {
			return utils.SendBadRequest(c, "userId is required", nil)
		}

		granted, balance, err := app.Gacha.Daily(c.Context(), req.UserID)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, webmodels.DailyResponse{
			Granted:    granted,
			NewBalance: balance,
		}, "daily reward claimed")
	}
}

// SellCard handles POST /cards/sell.
func SellCard(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.SellRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "invalid request body", nil)
		}
		if req.UserID == "" || req.OwnedID == 0 {
			return utils.SendBadRequest(c, "userId and ownedId are required", nil)
		}

		result, err := app.Gacha.Sell(c.Context(), req.UserID, req.OwnedID)
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, webmodels.SellResponse{
			Sold:       webmodels.NewCardView(result.Card),
			Value:      result.Value,
			NewBalance: result.NewBalance,
		}, "card sold")
	}
}
