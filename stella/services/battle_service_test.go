package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stellabot/stella-gacha/stella/battle"
	"github.com/stellabot/stella-gacha/stella/database/models"
	"github.com/stellabot/stella-gacha/stella/gacha"
)

func newBattleFixture() *BattleService {
	users := newFakeUserRepo(
		&models.User{DiscordID: "user-a", Balance: 1000},
		&models.User{DiscordID: "user-b", Balance: 1000},
	)
	cards := newFakeCardRepo(
		&models.Card{ID: 1, Name: "Ash Drake", Rarity: models.RarityRare, Attack: 50, Defense: 10, Speed: 9},
		&models.Card{ID: 2, Name: "Moss Turtle", Rarity: models.RarityCommon, Attack: 20, Defense: 40, Speed: 2},
		&models.Card{ID: 3, Name: "Wisp Lantern", Rarity: models.RarityCommon, Attack: 5, Defense: 15, Speed: 12},
	)
	userCards := newFakeUserCardRepo(
		&models.UserCard{ID: 10, UserID: "user-a", CardID: 1},
		&models.UserCard{ID: 11, UserID: "user-a", CardID: 2},
		&models.UserCard{ID: 12, UserID: "user-a", CardID: 3},
		&models.UserCard{ID: 20, UserID: "user-b", CardID: 2},
		&models.UserCard{ID: 21, UserID: "user-b", CardID: 1},
		&models.UserCard{ID: 22, UserID: "user-b", CardID: 3},
	)
	engine := battle.NewEngine(battle.DefaultConfig())
	return NewBattleService(users, userCards, cards, engine, gacha.NewSeededSource(3), 4)
}

func TestBattleService_Simulate(t *testing.T) {
	svc := newBattleFixture()

	result, err := svc.Simulate(context.Background(), "user-a", "user-b",
		DeckRefs{Main: 10, Equip: 11, Support: 12}, DeckRefs{Main: 20, Equip: 21, Support: 22})
	if err != nil {
		t.Fatalf("Simulate: %v", err)
	}
	if len(result.Turns) == 0 {
		t.Fatal("expected at least one turn")
	}
	if result.WinnerID != "user-a" && result.WinnerID != "user-b" && result.WinnerID != "" {
		t.Errorf("WinnerID = %q, want a participant or empty", result.WinnerID)
	}
	if result.Field.Name == "" {
		t.Error("field was not rolled")
	}
}

func TestBattleService_Simulate_UnknownUser(t *testing.T) {
	svc := newBattleFixture()

	_, err := svc.Simulate(context.Background(), "user-a", "nobody",
		DeckRefs{Main: 10, Equip: 11, Support: 12}, DeckRefs{Main: 20, Equip: 21, Support: 22})
	if !errors.Is(err, ErrUnknownUser) {
		t.Fatalf("err = %v, want ErrUnknownUser", err)
	}
}

func TestBattleService_Simulate_SelfBattle(t *testing.T) {
	svc := newBattleFixture()

	_, err := svc.Simulate(context.Background(), "user-a", "user-a",
		DeckRefs{Main: 10, Equip: 11, Support: 12}, DeckRefs{Main: 10, Equip: 11, Support: 12})
	if !errors.Is(err, ErrInvalidOpponent) {
		t.Fatalf("err = %v, want ErrInvalidOpponent", err)
	}
}

func TestBattleService_Simulate_InvalidDeck(t *testing.T) {
	svc := newBattleFixture()
	ctx := context.Background()

	cases := []struct {
		name string
		refs DeckRefs
	}{
		{"missing main", DeckRefs{Equip: 11, Support: 12}},
		{"missing support", DeckRefs{Main: 10, Equip: 11}},
		{"instance not owned", DeckRefs{Main: 20, Equip: 11, Support: 12}},
		{"instance does not exist", DeckRefs{Main: 999, Equip: 11, Support: 12}},
		{"duplicate slot", DeckRefs{Main: 10, Equip: 10, Support: 12}},
		{"support repeats equip", DeckRefs{Main: 10, Equip: 11, Support: 11}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Simulate(ctx, "user-a", "user-b", tc.refs, DeckRefs{Main: 20, Equip: 21, Support: 22})
			if !errors.Is(err, ErrInvalidDeck) {
				t.Fatalf("err = %v, want ErrInvalidDeck", err)
			}
		})
	}
}
