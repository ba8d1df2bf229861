package models

import (
	"time"

	dbmodels "github.com/stellabot/stella-gacha/stella/database/models"
)

// PullRequest is the body of POST /gacha/pull.
type PullRequest struct {
	UserID string `json:"userId"`
	Count  int    `json:"count"`
}

// DeckPayload names three owned-card instance IDs.
type DeckPayload struct {
	Main    int64 `json:"main"`
	Equip   int64 `json:"equip"`
	Support int64 `json:"support"`
}

// BattleRequest is the body of POST /battle/simulate.
type BattleRequest struct {
	UserID       string      `json:"userId"`
	OpponentID   string      `json:"opponentId"`
	UserDeck     DeckPayload `json:"userDeck"`
	OpponentDeck DeckPayload `json:"opponentDeck"`
}

// SellRequest is the body of POST /gacha/sell.
type SellRequest struct {
	UserID  string `json:"userId"`
	OwnedID int64  `json:"ownedId"`
}

// GrantRequest is the body of POST /admin/grant.
type GrantRequest struct {
	UserID string `json:"userId"`
	Amount int64  `json:"amount"`
}

// CreateCardRequest is the body of POST /admin/cards. Definitions are append
// only; there is no update or delete.
type CreateCardRequest struct {
	Name    string   `json:"name"`
	Rarity  string   `json:"rarity"`
	Attack  int      `json:"attack"`
	Defense int      `json:"defense"`
	Speed   int      `json:"speed"`
	Tags    []string `json:"tags,omitempty"`
}

// CardView is the wire shape of a card definition.
type CardView struct {
	CardID int64           `json:"cardId"`
	Name   string          `json:"name"`
	Rarity dbmodels.Rarity `json:"rarity"`
	Stats  StatsView       `json:"stats"`
	Tags   []string        `json:"tags,omitempty"`
}

type StatsView struct {
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	Speed   int `json:"speed"`
}

func NewCardView(card *dbmodels.Card) CardView {
	return CardView{
		CardID: card.ID,
		Name:   card.Name,
		Rarity: card.Rarity,
		Stats:  StatsView{Attack: card.Attack, Defense: card.Defense, Speed: card.Speed},
		Tags:   card.Tags,
	}
}

// OwnedCardView is one inventory entry.
type OwnedCardView struct {
	OwnedID  int64     `json:"ownedId"`
	Card     CardView  `json:"card"`
	Source   string    `json:"source"`
	Obtained time.Time `json:"obtained"`
}

// PullResponse is the payload of a successful pull.
type PullResponse struct {
	Results    []CardView `json:"results"`
	NewBalance int64      `json:"newBalance"`
}

// DailyResponse is the payload of a successful daily claim.
type DailyResponse struct {
	Granted    int64 `json:"granted"`
	NewBalance int64 `json:"newBalance"`
}

// SellResponse is the payload of a successful sale.
type SellResponse struct {
	Sold       CardView `json:"sold"`
	Value      int64    `json:"value"`
	NewBalance int64    `json:"newBalance"`
}

// UserProfile is the payload of GET /user/:id.
type UserProfile struct {
	UserID    string          `json:"userId"`
	Points    int64           `json:"points"`
	Inventory []OwnedCardView `json:"inventory"`
}
