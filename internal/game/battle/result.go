package battle

// Outcome is the tag of an AttackResult.
type Outcome int

const (
	Missed Outcome = iota
	Hit
	CriticalHit
)

// String returns a human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case Missed:
		return "missed"
	case Hit:
		return "hit"
	case CriticalHit:
		return "critical hit"
	default:
		return "unknown"
	}
}

// AttackResult holds the outcome of a single attack.
//
// Invariant: Damage == 0 when Outcome == Missed. Damage is raw and may be
// negative for a Hit against heavy defense; InflictDamage ignores that.
type AttackResult struct {
	Outcome Outcome
	Damage  int
}
