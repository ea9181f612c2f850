package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/cory-johannsen/slimebattle/internal/game/battle"
)

// writeRoundReport resolves a single round over participants and writes a
// plain-text summary to w. Damage is applied to participants, so callers
// pass freshly instantiated copies.
//
// Precondition: calc and every participant must be non-nil.
// Postcondition: Returns the first write error, or an error when the roster
// has no players or no enemies.
func writeRoundReport(w io.Writer, calc *battle.Calculator, participants []*battle.Participant) error {
	players := battle.PlayerParticipants(participants)
	enemies := battle.EnemyParticipants(participants)
	if len(players) == 0 || len(enemies) == 0 {
		return fmt.Errorf("roster needs at least one player-side participant and one enemy, got %d and %d",
			len(players), len(enemies))
	}

	r := &reporter{w: w}
	r.printf("== turn order ==\n")
	ordered := calc.OrderTurns(participants)
	for i, p := range ordered {
		r.printf("%2d. %-16s %-6s turn=%d hp=%d/%d\n",
			i+1, p.Name, p.Role, p.TurnOrder, p.Stats.HitPoints, p.Stats.MaxHitPoints)
	}

	r.printf("== round ==\n")
	fled := make(map[*battle.Participant]bool)
	for _, p := range ordered {
		if !p.IsAlive() || fled[p] {
			continue
		}
		if battle.IsBattleOver(remaining(participants, fled)) {
			break
		}
		action := calc.ChooseAction(p)
		switch action.Type {
		case battle.ActionAttack:
			if err := resolveAttack(r, calc, p, remaining(players, fled), remaining(enemies, fled)); err != nil {
				return err
			}
		case battle.ActionFlee:
			opponents := remaining(enemies, fled)
			if !p.IsPlayerSide() {
				opponents = remaining(players, fled)
			}
			ok, err := calc.DetermineFleeingFrom(p, opponents)
			if err != nil {
				return err
			}
			if ok {
				fled[p] = true
				r.printf("%s flees\n", p.Name)
			} else {
				r.printf("%s tries to flee but is blocked\n", p.Name)
			}
		default:
			r.printf("%s chooses %s (left to the host)\n", p.Name, action.Type)
		}
	}

	var defeated []*battle.Participant
	for _, e := range enemies {
		if !e.IsAlive() {
			defeated = append(defeated, e)
		}
	}
	r.printf("== result ==\n")
	r.printf("players alive: %d, enemies alive: %d, battle over: %t\n",
		battle.CountAlive(remaining(players, fled)),
		battle.CountAlive(remaining(enemies, fled)),
		battle.IsBattleOver(remaining(participants, fled)))
	if len(defeated) > 0 {
		rewards := calc.ResolveRewards(defeated)
		items := "none"
		if len(rewards.Items) > 0 {
			items = strings.Join(rewards.Items, ", ")
		}
		r.printf("rewards: %d exp, %d gold, items: %s\n", rewards.ExperiencePoints, rewards.GoldPoints, items)
	}
	return r.err
}

// resolveAttack targets a random living player for enemies and the first
// living enemy for the player side.
func resolveAttack(r *reporter, calc *battle.Calculator, attacker *battle.Participant, players, enemies []*battle.Participant) error {
	var defender *battle.Participant
	if attacker.IsPlayerSide() {
		for _, e := range enemies {
			if e.IsAlive() {
				defender = e
				break
			}
		}
	} else {
		var alive []*battle.Participant
		for _, p := range players {
			if p.IsAlive() {
				alive = append(alive, p)
			}
		}
		target, err := calc.SelectEnemyTarget(alive)
		if err != nil {
			return err
		}
		defender = target
	}
	if defender == nil {
		return nil
	}

	result := calc.ResolveAttack(attacker, defender)
	defender.InflictDamage(result.Damage)
	switch result.Outcome {
	case battle.Missed:
		r.printf("%s attacks %s and misses\n", attacker.Name, defender.Name)
	default:
		r.printf("%s attacks %s: %s for %d (hp %d/%d)\n", attacker.Name, defender.Name,
			result.Outcome, result.Damage, defender.Stats.HitPoints, defender.Stats.MaxHitPoints)
	}
	return nil
}

// remaining filters out participants that have left the battle.
func remaining(ps []*battle.Participant, fled map[*battle.Participant]bool) []*battle.Participant {
	out := make([]*battle.Participant, 0, len(ps))
	for _, p := range ps {
		if !fled[p] {
			out = append(out, p)
		}
	}
	return out
}

// reporter remembers the first write error so the report body stays linear.
type reporter struct {
	w   io.Writer
	err error
}

func (r *reporter) printf(format string, args ...any) {
	if r.err != nil {
		return
	}
	_, r.err = fmt.Fprintf(r.w, format, args...)
}
