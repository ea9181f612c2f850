package battle

// Stats is the numeric attribute block owned by a single Participant.
//
// Invariant: 0 <= HitPoints <= MaxHitPoints and 0 <= MagicPoints <= MaxMagicPoints
// after construction and after every mutator in this package.
type Stats struct {
	HitPoints      int `yaml:"hit_points"`
	MaxHitPoints   int `yaml:"max_hit_points"`
	MagicPoints    int `yaml:"magic_points"`
	MaxMagicPoints int `yaml:"max_magic_points"`
	// Strength is the participant's base strength.
	Strength int `yaml:"strength"`
	// Agility is the participant's base agility.
	Agility int `yaml:"agility"`
	// AttackPower is Strength plus whatever the equipped weapon contributes.
	AttackPower int `yaml:"attack_power"`
	// DefensePower is Agility plus whatever the equipped armor contributes.
	DefensePower int `yaml:"defense_power"`
	// Dodge is the chance to avoid an attack, out of 64.
	Dodge int `yaml:"dodge"`
	Level int `yaml:"level"`
}

// MaxDodge is the scale Dodge is measured against.
const MaxDodge = 64

// NewStats returns a Stats block with every field set to 1.
func NewStats() *Stats {
	return &Stats{
		HitPoints:      1,
		MaxHitPoints:   1,
		MagicPoints:    1,
		MaxMagicPoints: 1,
		Strength:       1,
		Agility:        1,
		AttackPower:    1,
		DefensePower:   1,
		Dodge:          1,
		Level:          1,
	}
}

// NewStatsWith returns a fully specified Stats block at level 1.
//
// Postcondition: the block satisfies Clamp's postcondition.
func NewStatsWith(hitPoints, maxHitPoints, magicPoints, maxMagicPoints, strength, agility, attackPower, defensePower, dodge int) *Stats {
	s := &Stats{
		HitPoints:      hitPoints,
		MaxHitPoints:   maxHitPoints,
		MagicPoints:    magicPoints,
		MaxMagicPoints: maxMagicPoints,
		Strength:       strength,
		Agility:        agility,
		AttackPower:    attackPower,
		DefensePower:   defensePower,
		Dodge:          dodge,
		Level:          1,
	}
	s.Clamp()
	return s
}

// Clone returns a deep copy of s.
func (s *Stats) Clone() *Stats {
	c := *s
	return &c
}

// Clamp restores the stat invariants.
//
// Postcondition: every stat is >= 0; Dodge <= MaxDodge;
// HitPoints <= MaxHitPoints; MagicPoints <= MaxMagicPoints.
func (s *Stats) Clamp() {
	for _, v := range []*int{
		&s.MaxHitPoints, &s.MaxMagicPoints,
		&s.Strength, &s.Agility,
		&s.AttackPower, &s.DefensePower,
		&s.Level,
	} {
		*v = max(*v, 0)
	}
	s.Dodge = clamp(s.Dodge, 0, MaxDodge)
	s.HitPoints = clamp(s.HitPoints, 0, s.MaxHitPoints)
	s.MagicPoints = clamp(s.MagicPoints, 0, s.MaxMagicPoints)
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
