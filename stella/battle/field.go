package battle

import (
	"github.com/stellabot/stella-gacha/stella/config"
	"github.com/stellabot/stella-gacha/stella/database/models"
	"github.com/stellabot/stella-gacha/stella/gacha"
)

// Field is the per-battle modifier. A side whose main card carries the
// field's element tag gains AttackBonus on every attack; a field with an
// empty element buffs nobody.
type Field struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Element     string `json:"element,omitempty"`
	AttackBonus int    `json:"attack_bonus,omitempty"`
}

// Fields is the fixed roll table. Order matters: the roll indexes into it.
var Fields = []Field{
	{Key: "plains", Name: "Plains"},
	{Key: "volcano", Name: "Volcano", Element: "fire", AttackBonus: config.FieldAttackBonus},
	{Key: "deep_sea", Name: "Deep Sea", Element: "water", AttackBonus: config.FieldAttackBonus},
	{Key: "jungle", Name: "Jungle", Element: "wind", AttackBonus: config.FieldAttackBonus},
	{Key: "sanctuary", Name: "Sanctuary", Element: "light", AttackBonus: config.FieldAttackBonus},
	{Key: "graveyard", Name: "Graveyard", Element: "dark", AttackBonus: config.FieldAttackBonus},
}

// NeutralField is used when a caller wants a buff-free battle.
func NeutralField() Field { return Fields[0] }

// RollField picks one field for the whole battle using the injected source,
// so a seeded source reproduces the full battle.
func RollField(rng gacha.RandomSource) Field {
	return Fields[rng.IntN(len(Fields))]
}

// AppliesTo reports whether the field buffs a side led by the given main
// card.
func (f Field) AppliesTo(main *models.Card) bool {
	if f.Element == "" || main == nil {
		return false
	}
	return main.HasTag(f.Element)
}
