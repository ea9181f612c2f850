package battle

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/slimebattle/internal/game/dice"
)

// Calculator binds a dice.Source and a logger to the formula engine so a
// host does not have to pass a source on every call. Each resolution is
// logged at debug level.
//
// A Calculator is as safe for concurrent use as its Source.
type Calculator struct {
	src    dice.Source
	logger *zap.Logger
}

// NewCalculator creates a Calculator drawing from src and logging to logger.
//
// Precondition: src must be non-nil. A nil logger disables logging.
func NewCalculator(src dice.Source, logger *zap.Logger) *Calculator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Calculator{src: src, logger: logger}
}

// Default returns a Calculator bound to the process-wide dice source.
func Default() *Calculator {
	return NewCalculator(dice.Default(), nil)
}

// Seed reseeds the process-wide dice source from text and returns the
// derived seed. It affects every Calculator built by Default.
func Seed(text string) int64 {
	return dice.SetSeed(text)
}

// Source returns the bound source.
func (c *Calculator) Source() dice.Source { return c.src }

// ComputeTurnValue calls ComputeTurnValue with the bound source.
func (c *Calculator) ComputeTurnValue(agility int) int {
	return ComputeTurnValue(agility, c.src)
}

// OrderTurns calls OrderTurns with the bound source.
func (c *Calculator) OrderTurns(participants []*Participant) []*Participant {
	ordered := OrderTurns(participants, c.src)
	if ce := c.logger.Check(zap.DebugLevel, "turn order"); ce != nil {
		names := make([]string, len(ordered))
		values := make([]int, len(ordered))
		for i, p := range ordered {
			names[i] = p.Name
			values[i] = p.TurnOrder
		}
		ce.Write(zap.Strings("participants", names), zap.Ints("turn_values", values))
	}
	return ordered
}

// SelectEnemyTarget calls SelectEnemyTarget with the bound source.
func (c *Calculator) SelectEnemyTarget(players []*Participant) (*Participant, error) {
	target, err := SelectEnemyTarget(players, c.src)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("enemy target selected", zap.String("target", target.Name))
	return target, nil
}

// ResolveAttack calls ResolveAttack with the bound source.
func (c *Calculator) ResolveAttack(attacker, defender *Participant) AttackResult {
	result := ResolveAttack(attacker, defender, c.src)
	c.logger.Debug("attack resolved",
		zap.String("attacker", attacker.Name),
		zap.String("defender", defender.Name),
		zap.Stringer("outcome", result.Outcome),
		zap.Int("damage", result.Damage),
	)
	return result
}

// DetermineFleeing calls DetermineFleeing with the bound source.
func (c *Calculator) DetermineFleeing(p, opponent *Participant) bool {
	fled := DetermineFleeing(p, opponent, c.src)
	c.logger.Debug("flee attempt",
		zap.String("participant", p.Name),
		zap.String("opponent", opponent.Name),
		zap.Bool("escaped", fled),
	)
	return fled
}

// DetermineFleeingFrom calls DetermineFleeingFrom with the bound source.
func (c *Calculator) DetermineFleeingFrom(p *Participant, roster []*Participant) (bool, error) {
	opponent, err := HighestAgility(roster)
	if err != nil {
		return false, fmt.Errorf("determining flee opponent: %w", err)
	}
	return c.DetermineFleeing(p, opponent), nil
}

// ChooseAction asks p for its action using the bound source.
func (c *Calculator) ChooseAction(p *Participant) Action {
	action := p.ChooseAction(c.src)
	c.logger.Debug("action chosen",
		zap.String("participant", p.Name),
		zap.Stringer("action", action.Type),
	)
	return action
}

// SumGold calls SumGold with the bound source.
func (c *Calculator) SumGold(defeated []*Participant) int {
	return SumGold(defeated, c.src)
}

// RollParticipantDrops calls RollParticipantDrops with the bound source.
func (c *Calculator) RollParticipantDrops(defeated []*Participant) []string {
	return RollParticipantDrops(defeated, c.src)
}

// ResolveRewards calls ResolveRewards with the bound source.
func (c *Calculator) ResolveRewards(defeated []*Participant) Rewards {
	rewards := ResolveRewards(defeated, c.src)
	c.logger.Debug("rewards resolved",
		zap.Int("defeated", len(defeated)),
		zap.Int("experience", rewards.ExperiencePoints),
		zap.Int("gold", rewards.GoldPoints),
		zap.Strings("items", rewards.Items),
	)
	return rewards
}
