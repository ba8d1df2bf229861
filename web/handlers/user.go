package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/stellabot/stella-gacha/stella/database/models"
	"github.com/stellabot/stella-gacha/stella/database/repositories"
	webmodels "github.com/stellabot/stella-gacha/web/models"
	"github.com/stellabot/stella-gacha/web/utils"
)

// GetUser handles GET /user/:id with the user's points and full inventory.
func GetUser(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Params("id")

		user, err := app.Users.GetByDiscordID(c.Context(), userID)
		if err != nil {
			if err == repositories.ErrUserNotFound {
				return utils.SendError(c, fiber.StatusNotFound, "UNKNOWN_USER", "user does not exist", nil)
			}
			return utils.SendInternalServerError(c, "failed to load user")
		}

		owned, err := app.UserCards.GetAllByUserID(c.Context(), userID)
		if err != nil {
			return utils.SendInternalServerError(c, "failed to load inventory")
		}

		cardIDs := make([]int64, 0, len(owned))
		seen := make(map[int64]bool, len(owned))
		for _, uc := range owned {
			if !seen[uc.CardID] {
				seen[uc.CardID] = true
				cardIDs = append(cardIDs, uc.CardID)
			}
		}
		cards, err := app.Cards.GetByIDs(c.Context(), cardIDs)
		if err != nil {
			return utils.SendInternalServerError(c, "failed to load card definitions")
		}
		byID := make(map[int64]*models.Card, len(cards))
		for _, card := range cards {
			byID[card.ID] = card
		}

		inventory := make([]webmodels.OwnedCardView, 0, len(owned))
		for _, uc := range owned {
			card, ok := byID[uc.CardID]
			if !ok {
				continue
			}
			inventory = append(inventory, webmodels.OwnedCardView{
				OwnedID:  uc.ID,
				Card:     webmodels.NewCardView(card),
				Source:   uc.Source,
				Obtained: uc.Obtained,
			})
		}

		return utils.SendSuccess(c, webmodels.UserProfile{
			UserID:    user.DiscordID,
			Points:    user.Balance,
			Inventory: inventory,
		}, "")
	}
}

// GetRanking handles GET /ranking.
func GetRanking(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := 0
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				return utils.SendBadRequest(c, "limit must be a non-negative integer", nil)
			}
			limit = parsed
		}

		entries, err := app.Ranking.Ranking(c.Context(), limit)
		if err != nil {
			return utils.SendInternalServerError(c, "failed to compute ranking")
		}
		return utils.SendSuccess(c, entries, "")
	}
}

// SearchCards handles GET /cards with optional fuzzy name matching.
func SearchCards(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit := 50
		if raw := c.Query("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				return utils.SendBadRequest(c, "limit must be a non-negative integer", nil)
			}
			limit = parsed
		}

		cards, err := app.Search.Search(c.Context(), c.Query("q"), limit)
		if err != nil {
			return utils.SendInternalServerError(c, "failed to search catalog")
		}

		views := make([]webmodels.CardView, len(cards))
		for i, card := range cards {
			views[i] = webmodels.NewCardView(card)
		}
		return utils.SendSuccess(c, views, "")
	}
}
