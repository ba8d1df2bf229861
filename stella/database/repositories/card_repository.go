package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/stellabot/stella-gacha/stella/config"
	"github.com/stellabot/stella-gacha/stella/database/models"
	"github.com/uptrace/bun"
)

var ErrCardNotFound = errors.New("card not found")

const cardCacheSize = config.CacheSize

type CardRepository interface {
	Create(ctx context.Context, card *models.Card) error
	BulkCreate(ctx context.Context, cards []*models.Card) (int, error)
	GetByID(ctx context.Context, id int64) (*models.Card, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*models.Card, error)
	GetAll(ctx context.Context) ([]*models.Card, error)
	GetByRarity(ctx context.Context, rarity models.Rarity) ([]*models.Card, error)
	GetCardCount(ctx context.Context) (int, error)
}

type cardRepository struct {
	db    *bun.DB
	cache *lru.Cache
}

func NewCardRepository(db *bun.DB) CardRepository {
	cache, _ := lru.New(cardCacheSize)
	return &cardRepository{db: db, cache: cache}
}

func (r *cardRepository) Create(ctx context.Context, card *models.Card) error {
	card.CreatedAt = time.Now()
	card.UpdatedAt = time.Now()
	if _, err := r.db.NewInsert().Model(card).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}
	r.cache.Add(card.ID, card)
	return nil
}

func (r *cardRepository) BulkCreate(ctx context.Context, cards []*models.Card) (int, error) {
	if len(cards) == 0 {
		return 0, nil
	}
	now := time.Now()
	for _, card := range cards {
		card.CreatedAt = now
		card.UpdatedAt = now
	}
	result, err := r.db.NewInsert().Model(&cards).Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to bulk create cards: %w", err)
	}
	inserted, _ := result.RowsAffected()
	for _, card := range cards {
		r.cache.Add(card.ID, card)
	}
	return int(inserted), nil
}

func (r *cardRepository) GetByID(ctx context.Context, id int64) (*models.Card, error) {
	// Definitions are immutable, so cached entries never go stale.
	if cached, ok := r.cache.Get(id); ok {
		return cached.(*models.Card), nil
	}

	card := new(models.Card)
	err := r.db.NewSelect().
		Model(card).
		Where("id = ?", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCardNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}

	r.cache.Add(card.ID, card)
	return card, nil
}

func (r *cardRepository) GetByIDs(ctx context.Context, ids []int64) ([]*models.Card, error) {
	cards := make([]*models.Card, 0, len(ids))
	var missing []int64
	for _, id := range ids {
		if cached, ok := r.cache.Get(id); ok {
			cards = append(cards, cached.(*models.Card))
		} else {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return cards, nil
	}

	var fetched []*models.Card
	err := r.db.NewSelect().
		Model(&fetched).
		Where("id IN (?)", bun.In(missing)).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards: %w", err)
	}
	for _, card := range fetched {
		r.cache.Add(card.ID, card)
	}
	return append(cards, fetched...), nil
}

func (r *cardRepository) GetAll(ctx context.Context) ([]*models.Card, error) {
	var cards []*models.Card
	err := r.db.NewSelect().
		Model(&cards).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards: %w", err)
	}
	for _, card := range cards {
		r.cache.Add(card.ID, card)
	}
	return cards, nil
}

func (r *cardRepository) GetByRarity(ctx context.Context, rarity models.Rarity) ([]*models.Card, error) {
	var cards []*models.Card
	err := r.db.NewSelect().
		Model(&cards).
		Where("rarity = ?", rarity).
		Order("id ASC").
		Scan(ctx)
	return cards, err
}

func (r *cardRepository) GetCardCount(ctx context.Context) (int, error) {
	return r.db.NewSelect().Model((*models.Card)(nil)).Count(ctx)
}
