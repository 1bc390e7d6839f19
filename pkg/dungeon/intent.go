package dungeon

import "github.com/jwebster45206/spellspire/pkg/actor"

// NextIntent returns the enemy's action for the given 1-based turn. Pure
// per enemy id, so a saved combat recomputes the same telegraph.
func NextIntent(e *actor.Enemy, turn int) actor.Intent {
	switch e.ID {
	case "cultist", "cultist_leader":
		if turn == 1 {
			return actor.Intent{Type: actor.IntentBuff, Value: 3, Description: "Ritual"}
		}
		return actor.Intent{Type: actor.IntentAttack, Value: 6}

	case "slime":
		switch turn % 3 {
		case 1:
			return actor.Intent{Type: actor.IntentAttack, Value: 8}
		case 2:
			return actor.Intent{Type: actor.IntentDebuff, Value: 3, Description: "Poison"}
		default:
			return actor.Intent{Type: actor.IntentDefend, Value: 8}
		}

	case "guardian":
		switch turn % 3 {
		case 1:
			return actor.Intent{Type: actor.IntentBuff, Value: 2, Description: "Charge Up"}
		case 2:
			return actor.Intent{Type: actor.IntentAttack, Value: 15, Description: "Hyper Beam"}
		default:
			return actor.Intent{Type: actor.IntentDefend, Value: 20, Description: "Defensive Mode"}
		}

	default:
		return actor.Intent{Type: actor.IntentAttack, Value: 5}
	}
}
