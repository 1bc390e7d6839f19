package actor

// Status holds the stacking combat modifiers shared by players and
// enemies. All counts are non-negative; a zero value means the effect is
// absent.
type Status struct {
	Strength     int `json:"strength,omitempty"`
	Weak         int `json:"weak,omitempty"`
	Vulnerable   int `json:"vulnerable,omitempty"`
	Poison       int `json:"poison,omitempty"`
	Ritual       int `json:"ritual,omitempty"`
	MemoryShield int `json:"memoryShield,omitempty"`
}

// Cleanse clears weak and vulnerable. Poison on a player never occurs;
// enemy poison is ticked by the combat engine, not cleansed.
func (s *Status) Cleanse() {
	s.Weak = 0
	s.Vulnerable = 0
}

// HasDebuff reports whether any negative status is active.
func (s *Status) HasDebuff() bool {
	return s.Poison > 0 || s.Vulnerable > 0 || s.Weak > 0
}
