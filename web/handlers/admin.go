package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"github.com/stellabot/stella-gacha/stella/database/models"
	webmodels "github.com/stellabot/stella-gacha/web/models"
	"github.com/stellabot/stella-gacha/web/utils"
)

// CreateCard handles POST /admin/cards. Definitions are append only; cards
// already drawn keep pointing at the same immutable rows.
func CreateCard(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.CreateCardRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "invalid request body", nil)
		}
		if req.Name == "" {
			return utils.SendBadRequest(c, "name is required", nil)
		}
		if req.Attack < 0 || req.Defense < 0 || req.Speed < 0 {
			return utils.SendBadRequest(c, "stats must be non-negative", nil)
		}
		rarity, err := models.ParseRarity(req.Rarity)
		if err != nil {
			return utils.SendBadRequest(c, "unknown rarity", map[string]string{"rarity": req.Rarity})
		}

		card := &models.Card{
			Name:    req.Name,
			Rarity:  rarity,
			Attack:  req.Attack,
			Defense: req.Defense,
			Speed:   req.Speed,
			Tags:    req.Tags,
		}
		if err := app.Cards.Create(c.Context(), card); err != nil {
			return utils.SendInternalServerError(c, "failed to create card")
		}

		slog.Info("Card definition appended",
			slog.Int64("card_id", card.ID),
			slog.String("name", card.Name),
			slog.String("rarity", rarity.Code()))

		return utils.SendCreated(c, webmodels.NewCardView(card), "card created")
	}
}

// GrantPoints handles POST /admin/grant.
func GrantPoints(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.GrantRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "invalid request body", nil)
		}
		if req.UserID == "" {
			return utils.SendBadRequest(c, "userId is required", nil)
		}

		balance, err := app.Ledger.Credit(c.Context(), req.UserID, req.Amount)
		if err != nil {
			return utils.SendDomainError(c, err)
		}

		slog.Info("Admin grant applied",
			slog.String("discord_id", req.UserID),
			slog.Int64("amount", req.Amount),
			slog.Int64("new_balance", balance))

		return utils.SendSuccess(c, fiber.Map{"newBalance": balance}, "points granted")
	}
}
