package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// Rarity is the ordered desirability tier of a card. UltraRare and Legendary
// share the top probability band but remain distinct identities.
type Rarity int

const (
	RarityCommon Rarity = iota + 1
	RarityRare
	RaritySuperRare
	RarityUltraRare
	RarityLegendary
)

var rarityCodes = map[Rarity]string{
	RarityCommon:    "N",
	RarityRare:      "R",
	RaritySuperRare: "SR",
	RarityUltraRare: "UR",
	RarityLegendary: "LE",
}

var rarityNames = map[Rarity]string{
	RarityCommon:    "Common",
	RarityRare:      "Rare",
	RaritySuperRare: "Super Rare",
	RarityUltraRare: "Ultra Rare",
	RarityLegendary: "Legendary",
}

// Code returns the short wire form used in responses and config ("N".."LE").
func (r Rarity) Code() string {
	if c, ok := rarityCodes[r]; ok {
		return c
	}
	return "N"
}

func (r Rarity) String() string {
	if n, ok := rarityNames[r]; ok {
		return n
	}
	return "Unknown"
}

func (r Rarity) Valid() bool {
	return r >= RarityCommon && r <= RarityLegendary
}

// ParseRarity accepts both the short code and the display name.
func ParseRarity(s string) (Rarity, error) {
	for r, c := range rarityCodes {
		if c == s {
			return r, nil
		}
	}
	for r, n := range rarityNames {
		if n == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown rarity %q", s)
}

func (r Rarity) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Code())
}

func (r *Rarity) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRarity(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Card is an immutable catalog definition. Admin operations append new
// definitions; existing rows are never mutated so that already-drawn
// instances keep stable references.
type Card struct {
	bun.BaseModel `bun:"table:cards,alias:c"`

	ID      int64    `bun:"id,pk,autoincrement" json:"id"`
	Name    string   `bun:"name,notnull" json:"name"`
	Rarity  Rarity   `bun:"rarity,notnull" json:"rarity"`
	Attack  int      `bun:"attack,notnull,default:0" json:"attack"`
	Defense int      `bun:"defense,notnull,default:0" json:"defense"`
	Speed   int      `bun:"speed,notnull,default:0" json:"speed"`
	Tags    []string `bun:"tags,type:jsonb" json:"tags,omitempty"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"-"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"-"`
}

// HasTag reports whether the card carries the given flavor tag. Field
// effects use this to decide elemental affinity.
func (c *Card) HasTag(tag string) bool {
	for _, t := range c.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
