package battle

import (
	"strings"

	"github.com/stellabot/stella-gacha/stella/config"
	"github.com/stellabot/stella-gacha/stella/database/models"
)

// Stat combination weights. Main contributes base stats, equip adds flat
// attack/defense, support adds flat HP and speed. These are stable so the
// same decks always produce the same battle.
const (
	mainHPPerDefense    = 5
	supportHPPerDefense = 2
	minDamage           = config.MinDamagePerStrike
	defaultMaxTurns     = config.DefaultMaxTurns
)

type Config struct {
	MaxTurns int
}

func DefaultConfig() Config {
	return Config{MaxTurns: defaultMaxTurns}
}

// Deck holds the three resolved card definitions for one side.
type Deck struct {
	Main    *models.Card
	Equip   *models.Card
	Support *models.Card
}

// Combatant is one side of a battle.
type Combatant struct {
	ID   string
	Name string
	Deck Deck
}

// Stats is the effective stat block for a side after deck combination.
type Stats struct {
	Attack  int `json:"attack"`
	Defense int `json:"defense"`
	Speed   int `json:"speed"`
	MaxHP   int `json:"max_hp"`
}

// EffectiveStats combines main + equip + support into one block.
func EffectiveStats(d Deck) Stats {
	var s Stats
	if d.Main != nil {
		s.Attack = d.Main.Attack
		s.Defense = d.Main.Defense
		s.Speed = d.Main.Speed
		s.MaxHP = d.Main.Defense * mainHPPerDefense
	}
	if d.Equip != nil {
		s.Attack += d.Equip.Attack
		s.Defense += d.Equip.Defense
	}
	if d.Support != nil {
		s.Speed += d.Support.Speed
		s.MaxHP += d.Support.Defense * supportHPPerDefense
	}
	if s.MaxHP < 1 {
		s.MaxHP = 1
	}
	return s
}

// TurnRecord is the immutable snapshot of one turn's exchange. HP values are
// from after the turn resolved and never go below zero.
type TurnRecord struct {
	Turn    int    `json:"turn"`
	HP1     int    `json:"p1_hp"`
	MaxHP1  int    `json:"p1_max_hp"`
	HP2     int    `json:"p2_hp"`
	MaxHP2  int    `json:"p2_max_hp"`
	LogText string `json:"log"`
}

// Result is the full outcome of one simulation. WinnerID is the winning
// combatant's ID, or the empty string for a draw.
type Result struct {
	Field    Field        `json:"field"`
	Stats1   Stats        `json:"p1_stats"`
	Stats2   Stats        `json:"p2_stats"`
	Turns    []TurnRecord `json:"logs"`
	WinnerID string       `json:"winner"`
}

type side struct {
	com        Combatant
	stats      Stats
	hp         int
	fieldBonus int
}

func (s *side) attackValue() int {
	return s.stats.Attack + s.fieldBonus
}

// Engine resolves battles deterministically: given identical decks and an
// identical field, Simulate reproduces byte-identical turn records.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = defaultMaxTurns
	}
	return &Engine{cfg: cfg}
}

// Simulate runs the whole battle in one shot. Turn order goes to the higher
// effective speed; on a tie, side 1 acts first. Damage is
// max(1, attack + field bonus - defense); the defender's HP clamps at zero
// and a downed defender ends the battle before the second actor moves.
func (e *Engine) Simulate(c1, c2 Combatant, field Field) *Result {
	s1 := &side{com: c1, stats: EffectiveStats(c1.Deck)}
	s2 := &side{com: c2, stats: EffectiveStats(c2.Deck)}
	s1.hp = s1.stats.MaxHP
	s2.hp = s2.stats.MaxHP

	if field.AppliesTo(c1.Deck.Main) {
		s1.fieldBonus = field.AttackBonus
	}
	if field.AppliesTo(c2.Deck.Main) {
		s2.fieldBonus = field.AttackBonus
	}

	result := &Result{
		Field:  field,
		Stats1: s1.stats,
		Stats2: s2.stats,
	}

	first, second := s1, s2
	if s2.stats.Speed > s1.stats.Speed {
		first, second = s2, s1
	}

	for turn := 1; turn <= e.cfg.MaxTurns; turn++ {
		var lines []string
		if turn == 1 {
			if s1.fieldBonus > 0 {
				lines = append(lines, narrateFieldBonus(c1.Name, field))
			}
			if s2.fieldBonus > 0 {
				lines = append(lines, narrateFieldBonus(c2.Name, field))
			}
		}

		lines = append(lines, e.strike(first, second))
		if second.hp == 0 {
			result.Turns = append(result.Turns, record(turn, s1, s2, lines))
			result.WinnerID = first.com.ID
			return result
		}

		lines = append(lines, e.strike(second, first))
		result.Turns = append(result.Turns, record(turn, s1, s2, lines))
		if first.hp == 0 {
			result.WinnerID = second.com.ID
			return result
		}
	}

	// Turn cap: higher HP fraction wins. Cross-multiplied to stay in exact
	// integer arithmetic; an exact tie is a draw.
	frac1 := s1.hp * s2.stats.MaxHP
	frac2 := s2.hp * s1.stats.MaxHP
	switch {
	case frac1 > frac2:
		result.WinnerID = c1.ID
	case frac2 > frac1:
		result.WinnerID = c2.ID
	}
	return result
}

func (e *Engine) strike(attacker, defender *side) string {
	damage := attacker.attackValue() - defender.stats.Defense
	if damage < minDamage {
		damage = minDamage
	}
	defender.hp -= damage
	if defender.hp < 0 {
		defender.hp = 0
	}
	return narrateAttack(attacker.com.Name, defender.com.Name, damage, defender.hp)
}

func record(turn int, s1, s2 *side, lines []string) TurnRecord {
	return TurnRecord{
		Turn:    turn,
		HP1:     s1.hp,
		MaxHP1:  s1.stats.MaxHP,
		HP2:     s2.hp,
		MaxHP2:  s2.stats.MaxHP,
		LogText: strings.Join(lines, "\n"),
	}
}
