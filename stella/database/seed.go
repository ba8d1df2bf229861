package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stellabot/stella-gacha/stella/database/models"
	"github.com/stellabot/stella-gacha/stella/database/repositories"
)

// SeedCatalog inserts the starter card set when the catalog is empty. Every
// rarity tier gets at least a few entries so the draw engine always has a
// non-empty pool per tier.
func SeedCatalog(ctx context.Context, repo repositories.CardRepository) error {
	count, err := repo.GetCardCount(ctx)
	if err != nil {
		return fmt.Errorf("failed to count catalog: %w", err)
	}
	if count > 0 {
		slog.Info("Card catalog already populated",
			slog.String("type", "db"),
			slog.Int("cards", count))
		return nil
	}

	inserted, err := repo.BulkCreate(ctx, starterCatalog())
	if err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	slog.Info("Card catalog seeded",
		slog.String("type", "db"),
		slog.Int("cards", inserted))
	return nil
}

func starterCatalog() []*models.Card {
	return []*models.Card{
		// Common
		{Name: "Village Militia", Rarity: models.RarityCommon, Attack: 40, Defense: 35, Speed: 30, Tags: []string{"character"}},
		{Name: "Longsword", Rarity: models.RarityCommon, Attack: 55, Defense: 10, Speed: 20, Tags: []string{"weapon"}},
		{Name: "Leather Armor", Rarity: models.RarityCommon, Attack: 5, Defense: 60, Speed: 15, Tags: []string{"armor"}},
		{Name: "Apprentice Mage", Rarity: models.RarityCommon, Attack: 50, Defense: 25, Speed: 35, Tags: []string{"character", "fire"}},
		{Name: "Crossbow", Rarity: models.RarityCommon, Attack: 60, Defense: 5, Speed: 25, Tags: []string{"weapon"}},
		{Name: "Lucky Charm", Rarity: models.RarityCommon, Attack: 10, Defense: 20, Speed: 45, Tags: []string{"accessory", "light"}},
		{Name: "Frying Pan", Rarity: models.RarityCommon, Attack: 45, Defense: 30, Speed: 10, Tags: []string{"weapon"}},

		// Rare
		{Name: "Knight Saber", Rarity: models.RarityRare, Attack: 90, Defense: 70, Speed: 50, Tags: []string{"character", "light"}},
		{Name: "Battle Hammer", Rarity: models.RarityRare, Attack: 110, Defense: 30, Speed: 25, Tags: []string{"weapon"}},
		{Name: "Mithril Helm", Rarity: models.RarityRare, Attack: 15, Defense: 120, Speed: 30, Tags: []string{"armor", "water"}},
		{Name: "Forest Elf", Rarity: models.RarityRare, Attack: 85, Defense: 60, Speed: 95, Tags: []string{"character", "wind"}},
		{Name: "Sage's Stone", Rarity: models.RarityRare, Attack: 40, Defense: 80, Speed: 70, Tags: []string{"accessory", "light"}},
		{Name: "Pirate Captain", Rarity: models.RarityRare, Attack: 95, Defense: 65, Speed: 60, Tags: []string{"character", "water"}},

		// Super Rare
		{Name: "Cursed Murasama", Rarity: models.RaritySuperRare, Attack: 220, Defense: 40, Speed: 90, Tags: []string{"weapon", "dark"}},
		{Name: "Dragon Scale Mail", Rarity: models.RaritySuperRare, Attack: 50, Defense: 260, Speed: 40, Tags: []string{"armor", "fire"}},
		{Name: "Vampire Noble", Rarity: models.RaritySuperRare, Attack: 200, Defense: 150, Speed: 120, Tags: []string{"character", "dark"}},
		{Name: "Spirit Tamer", Rarity: models.RaritySuperRare, Attack: 180, Defense: 140, Speed: 150, Tags: []string{"character", "wind"}},
		{Name: "Phoenix Plume", Rarity: models.RaritySuperRare, Attack: 120, Defense: 110, Speed: 180, Tags: []string{"accessory", "fire"}},

		// Ultra Rare
		{Name: "Excalibur", Rarity: models.RarityUltraRare, Attack: 480, Defense: 120, Speed: 160, Tags: []string{"weapon", "light"}},
		{Name: "Aegis of the Gods", Rarity: models.RarityUltraRare, Attack: 80, Defense: 520, Speed: 100, Tags: []string{"armor", "light"}},
		{Name: "Demon Lord's Daughter", Rarity: models.RarityUltraRare, Attack: 420, Defense: 320, Speed: 220, Tags: []string{"character", "dark"}},
		{Name: "Gungnir", Rarity: models.RarityUltraRare, Attack: 500, Defense: 90, Speed: 200, Tags: []string{"weapon", "wind"}},

		// Legendary
		{Name: "Hero of the Otherworld", Rarity: models.RarityLegendary, Attack: 900, Defense: 700, Speed: 400, Tags: []string{"character", "light"}},
		{Name: "Zantetsuken Origin", Rarity: models.RarityLegendary, Attack: 1100, Defense: 200, Speed: 350, Tags: []string{"weapon", "dark"}},
	}
}
