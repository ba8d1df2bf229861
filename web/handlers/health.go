package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	webmodels "github.com/stellabot/stella-gacha/web/models"
	"github.com/stellabot/stella-gacha/web/utils"
)

// Root handles GET / with a minimal liveness payload.
func Root(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "online",
			"service": "stella-gacha",
			"version": app.Version,
		})
	}
}

// HealthCheck handles GET /health.
func HealthCheck(app *App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		health := webmodels.NewHealthCheck(app.Version)

		if app.DB != nil {
			if err := app.DB.Ping(c.Context()); err != nil {
				health.AddComponent("database", "unhealthy", err.Error())
			} else {
				health.AddComponent("database", "healthy", "")
			}
		}

		if count, err := app.Cards.GetCardCount(c.Context()); err != nil {
			health.AddComponent("catalog", "unhealthy", err.Error())
		} else if count == 0 {
			health.AddComponent("catalog", "unhealthy", "catalog is empty")
		} else {
			health.AddComponent("catalog", "healthy", fmt.Sprintf("%d card definitions", count))
		}

		status := fiber.StatusOK
		if health.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return utils.SendJSON(c, status, health)
	}
}
