package scripting

import (
	"context"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/cory-johannsen/slimebattle/internal/game/battle"
	"github.com/cory-johannsen/slimebattle/internal/game/dice"
)

// ChooseActionHook is the Lua global a strategy script must define. It
// receives a participant table and returns an action name: "attack",
// "flee", "item" or "spell".
const ChooseActionHook = "choose_action"

// scriptedStrategy is a battle.Strategy backed by one sandboxed VM.
//
// The VM is single-threaded; mu serializes ChooseAction calls.
type scriptedStrategy struct {
	name      string
	instLimit int
	logger    *zap.Logger

	mu     sync.Mutex
	L      *lua.LState
	cancel context.CancelFunc
	// src is the battle source for the call in progress; nil between calls.
	src dice.Source
}

// ChooseAction calls the script's choose_action hook. A missing hook, a Lua
// runtime error, an exhausted instruction budget or an unrecognised return
// value are logged at Warn level and fall back to Attack.
func (s *scriptedStrategy) ChooseAction(p *battle.Participant, src dice.Source) battle.Action {
	fallback := battle.Action{Type: battle.ActionAttack}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancel()
	s.cancel = resetBudget(s.L, s.instLimit)
	s.src = src
	defer func() { s.src = nil }()

	fn := s.L.GetGlobal(ChooseActionHook)
	if fn.Type() != lua.LTFunction {
		s.logger.Warn("scripting: strategy has no choose_action hook",
			zap.String("strategy", s.name),
		)
		return fallback
	}

	if err := s.L.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, participantTable(s.L, p)); err != nil {
		s.logger.Warn("scripting: Lua runtime error",
			zap.String("strategy", s.name),
			zap.String("participant", p.Name),
			zap.Error(err),
		)
		return fallback
	}

	ret := s.L.Get(-1)
	s.L.Pop(1)

	str, ok := ret.(lua.LString)
	if !ok {
		s.logger.Warn("scripting: choose_action must return a string",
			zap.String("strategy", s.name),
			zap.String("type", ret.Type().String()),
		)
		return fallback
	}
	actionType, err := battle.ParseActionType(string(str))
	if err != nil {
		s.logger.Warn("scripting: unknown action",
			zap.String("strategy", s.name),
			zap.Error(err),
		)
		return fallback
	}
	return battle.Action{Type: actionType}
}

func (s *scriptedStrategy) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancel()
	s.L.Close()
}

// participantTable snapshots p into a Lua table.
func participantTable(L *lua.LState, p *battle.Participant) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "id", lua.LString(p.ID))
	L.SetField(t, "name", lua.LString(p.Name))
	L.SetField(t, "role", lua.LString(p.Role.String()))
	st := p.Stats
	for _, f := range []struct {
		key   string
		value int
	}{
		{"hit_points", st.HitPoints},
		{"max_hit_points", st.MaxHitPoints},
		{"magic_points", st.MagicPoints},
		{"max_magic_points", st.MaxMagicPoints},
		{"strength", st.Strength},
		{"agility", st.Agility},
		{"attack_power", st.AttackPower},
		{"defense_power", st.DefensePower},
		{"dodge", st.Dodge},
		{"level", st.Level},
	} {
		L.SetField(t, f.key, lua.LNumber(f.value))
	}
	return t
}
