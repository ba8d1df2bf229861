package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/stellabot/stella-gacha/stella/config"
	"github.com/stellabot/stella-gacha/stella/database/models"
	"github.com/stellabot/stella-gacha/stella/database/repositories"
	"github.com/stellabot/stella-gacha/stella/economy/ledger"
	"github.com/stellabot/stella-gacha/stella/gacha"
)

// LedgerService is the slice of the ledger the gacha service needs; the
// concrete *ledger.Ledger satisfies it and tests substitute an in-memory
// fake.
type LedgerService interface {
	DailyClaim(ctx context.Context, userID string) (granted int64, newBalance int64, err error)
	PurchaseCards(ctx context.Context, userID string, cost int64, cardIDs []int64) (int64, []*models.UserCard, error)
	RemoveCardAndCredit(ctx context.Context, userID string, ownedID int64, value int64) (int64, error)
	Credit(ctx context.Context, userID string, amount int64) (int64, error)
}

type GachaService struct {
	cards     repositories.CardRepository
	userCards repositories.UserCardRepository
	ledger    LedgerService
	engine    *gacha.Engine
	cost      int64
}

func NewGachaService(cards repositories.CardRepository, userCards repositories.UserCardRepository, led LedgerService, engine *gacha.Engine, costPerPull int64) *GachaService {
	if costPerPull <= 0 {
		costPerPull = config.DefaultCostPerPull
	}
	return &GachaService{
		cards:     cards,
		userCards: userCards,
		ledger:    led,
		engine:    engine,
		cost:      costPerPull,
	}
}

type PullResult struct {
	Cards      []*models.Card
	Owned      []*models.UserCard
	NewBalance int64
}

// Pull draws count cards and commits cost + inventory in one ledger
// transaction. The draw itself has no side effects, so a failed debit leaves
// nothing behind.
func (s *GachaService) Pull(ctx context.Context, userID string, count int) (*PullResult, error) {
	catalog, err := s.cards.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	drawn, err := s.engine.Draw(gacha.NewPool(catalog), count)
	if err != nil {
		return nil, err
	}

	cardIDs := make([]int64, len(drawn))
	for i, card := range drawn {
		cardIDs[i] = card.ID
	}

	cost := s.cost * int64(count)
	newBalance, owned, err := s.ledger.PurchaseCards(ctx, userID, cost, cardIDs)
	if err != nil {
		return nil, err
	}

	slog.Info("Gacha pull completed",
		slog.String("discord_id", userID),
		slog.Int("count", count),
		slog.Int64("cost", cost),
		slog.Int64("new_balance", newBalance))

	return &PullResult{Cards: drawn, Owned: owned, NewBalance: newBalance}, nil
}

// Daily claims the once-per-day reward.
func (s *GachaService) Daily(ctx context.Context, userID string) (granted int64, newBalance int64, err error) {
	return s.ledger.DailyClaim(ctx, userID)
}

type SellResult struct {
	Card       *models.Card
	Value      int64
	NewBalance int64
}

// Sell liquidates one owned instance for its rarity's fixed value.
func (s *GachaService) Sell(ctx context.Context, userID string, ownedID int64) (*SellResult, error) {
	owned, err := s.userCards.GetByID(ctx, ownedID)
	if err != nil {
		if err == repositories.ErrUserCardNotFound {
			return nil, ledger.ErrCardNotOwned
		}
		return nil, err
	}
	if owned.UserID != userID {
		return nil, ledger.ErrCardNotOwned
	}

	card, err := s.cards.GetByID(ctx, owned.CardID)
	if err != nil {
		return nil, err
	}

	value := config.SellValues[card.Rarity.Code()]
	newBalance, err := s.ledger.RemoveCardAndCredit(ctx, userID, ownedID, value)
	if err != nil {
		return nil, err
	}

	return &SellResult{Card: card, Value: value, NewBalance: newBalance}, nil
}
