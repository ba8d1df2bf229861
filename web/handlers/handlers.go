package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/stellabot/stella-gacha/stella/database/repositories"
	"github.com/stellabot/stella-gacha/stella/services"
)

// Pinger is the slice of the database the health endpoint needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// App bundles the dependencies every handler closes over.
type App struct {
	Gacha     *services.GachaService
	Battle    *services.BattleService
	Ranking   *services.RankingService
	Search    *services.SearchService
	Ledger    services.LedgerService
	Users     repositories.UserRepository
	Cards     repositories.CardRepository
	UserCards repositories.UserCardRepository
	DB        Pinger
	Version   string
}

// RegisterRoutes wires every endpoint onto the fiber app.
func RegisterRoutes(router *fiber.App, app *App) {
	router.Get("/", Root(app))
	router.Get("/health", HealthCheck(app))

	gachaGroup := router.Group("/gacha")
	gachaGroup.Post("/pull", Pull(app))
	gachaGroup.Post("/daily", DailyClaim(app))

	router.Post("/battle/simulate", SimulateBattle(app))

	router.Get("/user/:id", GetUser(app))
	router.Get("/ranking", GetRanking(app))

	cardsGroup := router.Group("/cards")
	cardsGroup.Get("/search", SearchCards(app))
	cardsGroup.Post("/sell", SellCard(app))

	adminGroup := router.Group("/admin")
	adminGroup.Post("/cards", CreateCard(app))
	adminGroup.Post("/grant", GrantPoints(app))
}
