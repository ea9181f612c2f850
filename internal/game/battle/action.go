package battle

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/slimebattle/internal/game/dice"
)

// ActionType is the kind of action a participant takes on its turn.
type ActionType int

const (
	ActionAttack ActionType = iota
	ActionFlee
	ActionItem
	ActionSpell
)

// String returns a human-readable action label.
func (a ActionType) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionFlee:
		return "flee"
	case ActionItem:
		return "item"
	case ActionSpell:
		return "spell"
	default:
		return "unknown"
	}
}

// ParseActionType converts a label produced by String back to an ActionType.
func ParseActionType(s string) (ActionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "attack":
		return ActionAttack, nil
	case "flee":
		return ActionFlee, nil
	case "item":
		return ActionItem, nil
	case "spell":
		return ActionSpell, nil
	default:
		return ActionAttack, fmt.Errorf("battle: unknown action type %q", s)
	}
}

// Action describes what a participant wants to do. Item and Spell are
// resolved by the host; the engine only resolves Attack and Flee.
type Action struct {
	Type ActionType
}

//go:generate go tool mockgen -destination=mocks/mock_strategy.go -package=mocks github.com/cory-johannsen/slimebattle/internal/game/battle Strategy

// Strategy decides a participant's action for the current turn.
type Strategy interface {
	ChooseAction(p *Participant, src dice.Source) Action
}

// StrategyFunc adapts a plain function to Strategy.
type StrategyFunc func(p *Participant, src dice.Source) Action

// ChooseAction calls f.
func (f StrategyFunc) ChooseAction(p *Participant, src dice.Source) Action {
	return f(p, src)
}

// AttackStrategy always attacks.
type AttackStrategy struct{}

// ChooseAction returns an Attack action without drawing from src.
func (AttackStrategy) ChooseAction(*Participant, dice.Source) Action {
	return Action{Type: ActionAttack}
}
