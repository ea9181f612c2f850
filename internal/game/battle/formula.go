package battle

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cory-johannsen/slimebattle/internal/game/dice"
)

// ErrNoParticipants is returned by selection operations given an empty list.
// A battle loop must never ask for a target from an empty side.
var ErrNoParticipants = errors.New("battle: no participants")

// ErrDrawOutOfRange is returned when a source yields an index outside the list.
var ErrDrawOutOfRange = errors.New("battle: draw out of range")

const (
	// turnDrawMax bounds the turn-order and flee draws: [0, 255).
	turnDrawMax = 255
	// criticalDrawMax bounds the critical check: [1, 32), critical on 1.
	criticalDrawMax = 32
	// goldDrawMax and goldDrawBase scale gold: 192 + [0, 63), out of 256.
	goldDrawMax  = 63
	goldDrawBase = 192
	// dropDrawMax bounds the item drop roll: [chance, 100).
	dropDrawMax = 100
)

// ComputeTurnValue returns a randomized turn score for agility.
// Formula: agility - (rand(0, 255) * (agility - agility/4)) / 256,
// truncating at each division.
//
// Postcondition: equals agility when the draw is 0; non-decreasing in agility
// for a fixed draw.
func ComputeTurnValue(agility int, src dice.Source) int {
	r := src.Next(0, turnDrawMax)
	return agility - (r*(agility-agility/4))/256
}

// OrderTurns assigns every participant a fresh TurnOrder and returns them
// highest first. Draws happen in input order, one per participant.
//
// Participants with exactly equal turn values keep their input order. The
// input slice itself is not reordered.
//
// Postcondition: len(result) == len(participants).
func OrderTurns(participants []*Participant, src dice.Source) []*Participant {
	for _, p := range participants {
		p.TurnOrder = ComputeTurnValue(p.Stats.Agility, src)
	}
	ordered := make([]*Participant, len(participants))
	copy(ordered, participants)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].TurnOrder > ordered[j].TurnOrder
	})
	return ordered
}

// SelectEnemyTarget picks the player-side participant an enemy attacks,
// uniformly via rand(0, len(players)).
//
// Precondition: players must be non-empty.
func SelectEnemyTarget(players []*Participant, src dice.Source) (*Participant, error) {
	if len(players) == 0 {
		return nil, fmt.Errorf("selecting enemy target: %w", ErrNoParticipants)
	}
	i := src.Next(0, len(players))
	if i < 0 || i >= len(players) {
		return nil, fmt.Errorf("selecting enemy target: index %d of %d: %w", i, len(players), ErrDrawOutOfRange)
	}
	return players[i], nil
}

// ResolveAttack resolves a single physical attack.
//
// Draw order: dodge check rand(dodge, 64), critical check rand(1, 32), then the
// damage divisor: rand(1, 2) for a critical, rand(2, 4) for a regular hit.
//
// Postcondition: a Missed result carries zero damage. Regular damage is
// (attackPower - defensePower/2) / rand(2, 4) and is not clamped.
func ResolveAttack(attacker, defender *Participant, src dice.Source) AttackResult {
	dodge := defender.Stats.Dodge
	if src.Next(dodge, MaxDodge) <= dodge {
		return AttackResult{Outcome: Missed}
	}

	if src.Next(1, criticalDrawMax) == 1 {
		// rand(1, 2) is always 1; kept so the draw sequence stays unchanged.
		return AttackResult{
			Outcome: CriticalHit,
			Damage:  attacker.Stats.AttackPower / divisor(src, 1, 2),
		}
	}

	damage := (attacker.Stats.AttackPower - defender.Stats.DefensePower/2) / divisor(src, 2, 4)
	return AttackResult{Outcome: Hit, Damage: damage}
}

func divisor(src dice.Source, min, max int) int {
	d := src.Next(min, max)
	if d == 0 {
		panic(fmt.Sprintf("battle: damage divisor drawn from [%d, %d) was 0", min, max))
	}
	return d
}

// DetermineFleeing reports whether p escapes from opponent.
// Formula: p.agility * rand(0, 255) >= opponent.agility * rand(0, 255).
func DetermineFleeing(p, opponent *Participant, src dice.Source) bool {
	return p.Stats.Agility*src.Next(0, turnDrawMax) >= opponent.Stats.Agility*src.Next(0, turnDrawMax)
}

// DetermineFleeingFrom reports whether p escapes from roster, which is
// represented by its most agile member.
//
// Precondition: roster must be non-empty.
func DetermineFleeingFrom(p *Participant, roster []*Participant, src dice.Source) (bool, error) {
	opponent, err := HighestAgility(roster)
	if err != nil {
		return false, fmt.Errorf("determining flee opponent: %w", err)
	}
	return DetermineFleeing(p, opponent, src), nil
}

// PlayerParticipants returns the players and allied NPCs, in input order.
func PlayerParticipants(participants []*Participant) []*Participant {
	var out []*Participant
	for _, p := range participants {
		if p.IsPlayerSide() {
			out = append(out, p)
		}
	}
	return out
}

// EnemyParticipants returns the enemies, in input order.
func EnemyParticipants(participants []*Participant) []*Participant {
	var out []*Participant
	for _, p := range participants {
		if p.Role == RoleEnemy {
			out = append(out, p)
		}
	}
	return out
}

// HighestAgility returns the most agile participant; the first one wins ties.
//
// Precondition: participants must be non-empty.
func HighestAgility(participants []*Participant) (*Participant, error) {
	if len(participants) == 0 {
		return nil, fmt.Errorf("finding highest agility: %w", ErrNoParticipants)
	}
	best := participants[0]
	for _, p := range participants[1:] {
		if p.Stats.Agility > best.Stats.Agility {
			best = p
		}
	}
	return best, nil
}

// CountAlive returns how many participants have hit points left.
func CountAlive(participants []*Participant) int {
	n := 0
	for _, p := range participants {
		if p.IsAlive() {
			n++
		}
	}
	return n
}

// IsBattleOver reports whether either side has no one left standing.
func IsBattleOver(participants []*Participant) bool {
	return CountAlive(PlayerParticipants(participants)) == 0 ||
		CountAlive(EnemyParticipants(participants)) == 0
}
