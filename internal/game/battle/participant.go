// Package battle implements the slime battle formula engine: the participant
// data model, the randomized combat calculations and the reward resolver.
//
// Every formula takes an explicit dice.Source. Calculator binds a source for
// hosts that do not want to thread one through every call.
package battle

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/cory-johannsen/slimebattle/internal/game/dice"
)

// Role distinguishes the side a participant fights on.
type Role int

const (
	// RoleEnemy is the zero value; a bare Participant is an enemy.
	RoleEnemy Role = iota
	RolePlayer
	RoleNpc
)

// String returns the lower-case role label used in roster files.
func (r Role) String() string {
	switch r {
	case RolePlayer:
		return "player"
	case RoleNpc:
		return "npc"
	case RoleEnemy:
		return "enemy"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "player":
		*r = RolePlayer
	case "npc":
		*r = RoleNpc
	case "enemy", "":
		*r = RoleEnemy
	default:
		return fmt.Errorf("battle: unknown role %q", string(text))
	}
	return nil
}

// Participant is one actor in a battle: a player character, an allied NPC or
// an enemy.
//
// Invariant: Role does not change after construction. TurnOrder is only
// meaningful immediately after an OrderTurns pass.
type Participant struct {
	ID   string
	Name string
	Role Role
	// Stats is exclusively owned by this participant.
	Stats *Stats
	// TurnOrder is rewritten by every OrderTurns call.
	TurnOrder int
	// ExperiencePoints and GoldPoints are awarded to the victors when this
	// participant is defeated.
	ExperiencePoints int
	GoldPoints       int
	// Drops maps item IDs to their percent chance of dropping on defeat.
	Drops *DropTable[string]
	// Strategy picks this participant's action. Nil means always attack.
	Strategy Strategy
}

// NewParticipant creates a participant with default stats.
//
// Postcondition: ID is a fresh UUID; Stats equals NewStats().
func NewParticipant(name string, role Role) *Participant {
	return NewParticipantWithStats(name, role, NewStats())
}

// NewParticipantWithStats creates a participant owning stats.
//
// Precondition: stats must be non-nil and not shared with another participant.
func NewParticipantWithStats(name string, role Role, stats *Stats) *Participant {
	return &Participant{
		ID:    uuid.New().String(),
		Name:  name,
		Role:  role,
		Stats: stats,
		Drops: NewDropTable[string](),
	}
}

// IsAlive reports whether the participant has hit points left.
func (p *Participant) IsAlive() bool { return p.Stats.HitPoints > 0 }

// IsPlayerSide reports whether the participant fights with the players.
//
// Postcondition: Returns true iff Role is RolePlayer or RoleNpc.
func (p *Participant) IsPlayerSide() bool {
	return p.Role == RolePlayer || p.Role == RoleNpc
}

// InflictDamage reduces hit points by damage, flooring at zero.
// Negative damage never heals.
//
// Postcondition: 0 <= Stats.HitPoints <= previous hit points.
func (p *Participant) InflictDamage(damage int) {
	if damage <= 0 {
		return
	}
	p.Stats.HitPoints -= damage
	if p.Stats.HitPoints < 0 {
		p.Stats.HitPoints = 0
	}
}

// RecomputeAttackPower sets attack power to strength plus the weapon bonus.
// Call it whenever a weapon is equipped or removed.
func (p *Participant) RecomputeAttackPower(weaponBonus int) {
	p.Stats.AttackPower = p.Stats.Strength + weaponBonus
}

// RecomputeDefensePower sets defense power to agility plus the armor bonus.
// Call it whenever armor is equipped or removed.
func (p *Participant) RecomputeDefensePower(armorBonus int) {
	p.Stats.DefensePower = p.Stats.Agility + armorBonus
}

// ChooseAction asks the participant's Strategy for its next action.
func (p *Participant) ChooseAction(src dice.Source) Action {
	if p.Strategy == nil {
		return AttackStrategy{}.ChooseAction(p, src)
	}
	return p.Strategy.ChooseAction(p, src)
}

func (p *Participant) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Role)
}
