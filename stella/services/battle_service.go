package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/semaphore"

	"github.com/stellabot/stella-gacha/stella/battle"
	"github.com/stellabot/stella-gacha/stella/database/models"
	"github.com/stellabot/stella-gacha/stella/database/repositories"
	"github.com/stellabot/stella-gacha/stella/gacha"
)

var (
	ErrUnknownUser     = errors.New("unknown user")
	ErrInvalidDeck     = errors.New("invalid deck")
	ErrInvalidOpponent = errors.New("invalid opponent")
)

// DeckRefs names the three owned-card instances forming a deck. All three
// slots are mandatory and must reference distinct instances.
type DeckRefs struct {
	Main    int64
	Equip   int64
	Support int64
}

type BattleService struct {
	users     repositories.UserRepository
	userCards repositories.UserCardRepository
	cards     repositories.CardRepository
	engine    *battle.Engine
	rng       gacha.RandomSource
	sem       *semaphore.Weighted
}

func NewBattleService(users repositories.UserRepository, userCards repositories.UserCardRepository, cards repositories.CardRepository, engine *battle.Engine, rng gacha.RandomSource, maxConcurrent int64) *BattleService {
	if maxConcurrent <= 0 {
		maxConcurrent = 64
	}
	return &BattleService{
		users:     users,
		userCards: userCards,
		cards:     cards,
		engine:    engine,
		rng:       rng,
		sem:       semaphore.NewWeighted(maxConcurrent),
	}
}

// Simulate resolves a full battle between two users' decks. Both users must
// exist and every referenced instance must belong to its declared owner. The
// simulation itself is pure; only a bounded number run at once.
func (s *BattleService) Simulate(ctx context.Context, userID, opponentID string, refs, oppRefs DeckRefs) (*battle.Result, error) {
	if opponentID == userID {
		return nil, ErrInvalidOpponent
	}

	user, err := s.lookupUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	opponent, err := s.lookupUser(ctx, opponentID)
	if err != nil {
		return nil, err
	}

	deck1, err := s.resolveDeck(ctx, userID, refs)
	if err != nil {
		return nil, err
	}
	deck2, err := s.resolveDeck(ctx, opponentID, oppRefs)
	if err != nil {
		return nil, err
	}

	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("failed to acquire battle slot: %w", err)
	}
	defer s.sem.Release(1)

	field := battle.RollField(s.rng)
	result := s.engine.Simulate(
		battle.Combatant{ID: user.DiscordID, Name: user.DiscordID, Deck: deck1},
		battle.Combatant{ID: opponent.DiscordID, Name: opponent.DiscordID, Deck: deck2},
		field,
	)
	return result, nil
}

func (s *BattleService) lookupUser(ctx context.Context, discordID string) (*models.User, error) {
	user, err := s.users.GetByDiscordID(ctx, discordID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, ErrUnknownUser
		}
		return nil, err
	}
	return user, nil
}

// resolveDeck loads each referenced instance, verifies ownership and maps it
// to its card definition. All three slots are required and must be distinct
// instances.
func (s *BattleService) resolveDeck(ctx context.Context, userID string, refs DeckRefs) (battle.Deck, error) {
	if refs.Main == 0 || refs.Equip == 0 || refs.Support == 0 {
		return battle.Deck{}, ErrInvalidDeck
	}
	if refs.Equip == refs.Main || refs.Support == refs.Main || refs.Support == refs.Equip {
		return battle.Deck{}, ErrInvalidDeck
	}

	var deck battle.Deck
	slots := []struct {
		ownedID int64
		target  **models.Card
	}{
		{refs.Main, &deck.Main},
		{refs.Equip, &deck.Equip},
		{refs.Support, &deck.Support},
	}
	for _, slot := range slots {
		card, err := s.resolveOwned(ctx, userID, slot.ownedID)
		if err != nil {
			return battle.Deck{}, err
		}
		*slot.target = card
	}
	return deck, nil
}

func (s *BattleService) resolveOwned(ctx context.Context, userID string, ownedID int64) (*models.Card, error) {
	owned, err := s.userCards.GetByID(ctx, ownedID)
	if err != nil {
		if err == repositories.ErrUserCardNotFound {
			return nil, ErrInvalidDeck
		}
		return nil, err
	}
	if owned.UserID != userID {
		return nil, ErrInvalidDeck
	}
	return s.cards.GetByID(ctx, owned.CardID)
}
