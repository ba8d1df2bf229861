package gacha

import (
	"errors"
	"fmt"

	"github.com/stellabot/stella-gacha/stella/config"
	"github.com/stellabot/stella-gacha/stella/database/models"
)

var (
	ErrInvalidCount = errors.New("invalid draw count")
	ErrEmptyPool    = errors.New("card pool is empty")
)

// Config holds the probability table and the guarantee rule. Weights are
// relative integers per tier; every card within a tier is equally likely.
type Config struct {
	Weights       map[models.Rarity]int
	BulkSize      int
	GuaranteeTier models.Rarity
}

// DefaultConfig mirrors the live rates: Common 49.9%, Rare 35%,
// Super Rare 12%, Ultra Rare 3%, Legendary 0.1%.
func DefaultConfig() Config {
	return Config{
		Weights: map[models.Rarity]int{
			models.RarityCommon:    4990,
			models.RarityRare:      3500,
			models.RaritySuperRare: 1200,
			models.RarityUltraRare: 300,
			models.RarityLegendary: 10,
		},
		BulkSize:      config.DefaultBulkPullSize,
		GuaranteeTier: models.RaritySuperRare,
	}
}

// Pool groups the immutable catalog by tier. Built once per pull from the
// card repository's cached snapshot.
type Pool map[models.Rarity][]*models.Card

// NewPool buckets catalog cards by rarity.
func NewPool(cards []*models.Card) Pool {
	pool := make(Pool)
	for _, card := range cards {
		pool[card.Rarity] = append(pool[card.Rarity], card)
	}
	return pool
}

// Engine samples cards tier-first then uniformly within the tier.
type Engine struct {
	cfg Config
	rng RandomSource
}

func NewEngine(cfg Config, rng RandomSource) *Engine {
	if rng == nil {
		rng = NewSource()
	}
	if cfg.BulkSize <= 0 {
		cfg.BulkSize = DefaultConfig().BulkSize
	}
	if len(cfg.Weights) == 0 {
		cfg.Weights = DefaultConfig().Weights
	}
	if !cfg.GuaranteeTier.Valid() {
		cfg.GuaranteeTier = DefaultConfig().GuaranteeTier
	}
	return &Engine{cfg: cfg, rng: rng}
}

// Draw produces exactly count cards. count must be 1 or the configured bulk
// size. On a bulk pull, if none of the first BulkSize-1 draws reached the
// guarantee tier, the final draw samples from guarantee-tier-or-above only,
// reweighted proportionally between those tiers.
func (e *Engine) Draw(pool Pool, count int) ([]*models.Card, error) {
	if count != 1 && count != e.cfg.BulkSize {
		return nil, fmt.Errorf("%w: %d (allowed: 1 or %d)", ErrInvalidCount, count, e.cfg.BulkSize)
	}

	results := make([]*models.Card, 0, count)
	sawGuarantee := false
	for i := 0; i < count; i++ {
		minTier := models.Rarity(0)
		if count == e.cfg.BulkSize && i == count-1 && !sawGuarantee {
			minTier = e.cfg.GuaranteeTier
		}

		card, err := e.drawOne(pool, minTier)
		if err != nil {
			return nil, err
		}
		if card.Rarity >= e.cfg.GuaranteeTier {
			sawGuarantee = true
		}
		results = append(results, card)
	}
	return results, nil
}

// drawOne samples one card from tiers at or above minTier. Tiers with no
// cards in the pool are excluded and the remaining weights renormalize
// implicitly.
func (e *Engine) drawOne(pool Pool, minTier models.Rarity) (*models.Card, error) {
	total := 0
	for rarity := models.RarityCommon; rarity <= models.RarityLegendary; rarity++ {
		if rarity < minTier || len(pool[rarity]) == 0 {
			continue
		}
		total += e.cfg.Weights[rarity]
	}
	if total <= 0 {
		return nil, ErrEmptyPool
	}

	roll := e.rng.IntN(total)
	for rarity := models.RarityCommon; rarity <= models.RarityLegendary; rarity++ {
		if rarity < minTier || len(pool[rarity]) == 0 {
			continue
		}
		roll -= e.cfg.Weights[rarity]
		if roll < 0 {
			cards := pool[rarity]
			return cards[e.rng.IntN(len(cards))], nil
		}
	}
	return nil, ErrEmptyPool
}
