package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Acquisition sources for owned card instances.
const (
	SourcePull   = "pull"
	SourceReward = "reward"
	SourceAdmin  = "admin"
)

// UserCard is one owned instance of a catalog card. Duplicates are separate
// rows; insertion order (obtained, then id) is the acquisition order. Decks
// reference instances by row id.
type UserCard struct {
	bun.BaseModel `bun:"table:user_cards,alias:uc"`

	ID       int64     `bun:"id,pk,autoincrement" json:"id"`
	UserID   string    `bun:"user_id,notnull" json:"user_id"`
	CardID   int64     `bun:"card_id,notnull" json:"card_id"`
	Source   string    `bun:"source,notnull,default:'pull'" json:"source"`
	Obtained time.Time `bun:"obtained,notnull,default:current_timestamp" json:"obtained"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"-"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"-"`
}
