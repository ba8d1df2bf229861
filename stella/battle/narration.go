package battle

import "fmt"

// Narration is a pure function of the turn's computed numbers. The template
// is selected by damage magnitude only, never by random or iteration state,
// so identical battles produce identical logs.

func narrateAttack(attacker, defender string, damage, remaining int) string {
	var verb string
	switch {
	case damage >= 300:
		verb = "unleashes a devastating blow on"
	case damage >= 100:
		verb = "lands a heavy hit on"
	case damage >= 30:
		verb = "strikes"
	case damage > 1:
		verb = "jabs at"
	default:
		verb = "barely grazes"
	}

	line := fmt.Sprintf("%s %s %s for %d damage!", attacker, verb, defender, damage)
	if remaining == 0 {
		line += fmt.Sprintf(" %s is down!", defender)
	}
	return line
}

func narrateFieldBonus(side string, field Field) string {
	return fmt.Sprintf("%s draws power from the %s!", side, field.Name)
}
