package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/stellabot/stella-gacha/stella/services"
	webmodels "github.com/stellabot/stella-gacha/web/models"
	"github.com/stellabot/stella-gacha/web/utils"
)

// SimulateBattle handles POST /battle/simulate. The simulation is a pure
// read plus compute: no balance or inventory changes.
func SimulateBattle(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req webmodels.BattleRequest
		if err := c.BodyParser(&req); err != nil {
			return utils.SendBadRequest(c, "invalid request body", nil)
		}
		if req.UserID == "" || req.OpponentID == "" {
			return utils.SendBadRequest(c, "userId and opponentId are required", nil)
		}

		result, err := app.Battle.Simulate(c.Context(), req.UserID, req.OpponentID,
			deckRefs(req.UserDeck), deckRefs(req.OpponentDeck))
		if err != nil {
			return utils.SendDomainError(c, err)
		}
		return utils.SendSuccess(c, result, "battle resolved")
	}
}

func deckRefs(p webmodels.DeckPayload) services.DeckRefs {
	return services.DeckRefs{Main: p.Main, Equip: p.Equip, Support: p.Support}
}
