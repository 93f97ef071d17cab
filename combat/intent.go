package combat

// Intent is an enemy's action for the current round, decided in advance
type Intent int

const (
	IntentAttack Intent = iota // Hit the hero for the enemy's attack value
	IntentDefend               // Gain block equal to the enemy's defense
)

func (i Intent) String() string {
	switch i {
	case IntentAttack:
		return "attack"
	case IntentDefend:
		return "defend"
	default:
		return "unknown"
	}
}

// MarshalText encodes the intent by name
func (i Intent) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// Phase is the engine's combat state
type Phase int

const (
	PhaseIdle     Phase = iota // No encounter in progress
	PhaseInCombat              // An encounter is being fought
)

func (p Phase) String() string {
	if p == PhaseInCombat {
		return "in_combat"
	}
	return "idle"
}
