package scripting_test

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/slimebattle/internal/game/battle"
	"github.com/cory-johannsen/slimebattle/internal/game/dice"
	"github.com/cory-johannsen/slimebattle/internal/scripting"
)

func newTestManager(t testing.TB) (*scripting.Manager, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	mgr := scripting.NewManager(zap.New(core))
	t.Cleanup(mgr.Close)
	return mgr, logs
}

func loadStrategy(t testing.TB, mgr *scripting.Manager, name, src string) battle.Strategy {
	t.Helper()
	require.NoError(t, mgr.Load(name, src, 0))
	s, ok := mgr.Strategy(name)
	require.True(t, ok)
	return s
}

func TestManager_ChooseAction_ReturnsScriptedAction(t *testing.T) {
	mgr, _ := newTestManager(t)
	s := loadStrategy(t, mgr, "coward", `
		function choose_action(self)
			if self.hit_points * 2 < self.max_hit_points then
				return "flee"
			end
			return "attack"
		end
	`)

	p := battle.NewParticipantWithStats("Slime", battle.RoleEnemy, battle.NewStatsWith(10, 10, 0, 0, 1, 1, 1, 1, 1))
	assert.Equal(t, battle.ActionAttack, s.ChooseAction(p, dice.NewStackSource()).Type)
	p.InflictDamage(6)
	assert.Equal(t, battle.ActionFlee, s.ChooseAction(p, dice.NewStackSource()).Type)
}

func TestManager_ChooseAction_SeesParticipantFields(t *testing.T) {
	mgr, _ := newTestManager(t)
	s := loadStrategy(t, mgr, "inspect", `
		function choose_action(self)
			assert(self.name == "Drakee")
			assert(self.role == "enemy")
			assert(self.agility == 6)
			assert(self.dodge == 2)
			return "spell"
		end
	`)
	p := battle.NewParticipantWithStats("Drakee", battle.RoleEnemy, battle.NewStatsWith(22, 22, 12, 12, 8, 6, 4, 8, 2))
	assert.Equal(t, battle.ActionSpell, s.ChooseAction(p, dice.NewStackSource()).Type)
}

func TestManager_EngineRandom_DrawsFromBattleSource(t *testing.T) {
	mgr, _ := newTestManager(t)
	s := loadStrategy(t, mgr, "fickle", `
		function choose_action(self)
			if engine.random(0, 4) == 0 then
				return "item"
			end
			return "attack"
		end
	`)
	p := battle.NewParticipant("Slime", battle.RoleEnemy)
	src := dice.NewStackSource(3, 0)
	assert.Equal(t, battle.ActionItem, s.ChooseAction(p, src).Type)
	assert.Equal(t, battle.ActionAttack, s.ChooseAction(p, src).Type)
	assert.Zero(t, src.Remaining())
}

func TestManager_EngineRandom_OutsideHookFailsLoad(t *testing.T) {
	mgr, _ := newTestManager(t)
	err := mgr.Load("eager", `local x = engine.random(0, 2)`, 0)
	assert.Error(t, err)
}

func TestManager_EngineLog(t *testing.T) {
	mgr, logs := newTestManager(t)
	s := loadStrategy(t, mgr, "chatty", `
		function choose_action(self)
			engine.log.info("thinking")
			return "attack"
		end
	`)
	s.ChooseAction(battle.NewParticipant("Slime", battle.RoleEnemy), dice.NewStackSource())
	entries := logs.FilterMessage("thinking").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "chatty", entries[0].ContextMap()["strategy"])
}

func TestManager_MissingHook_FallsBackToAttack(t *testing.T) {
	mgr, logs := newTestManager(t)
	s := loadStrategy(t, mgr, "empty", `-- no functions`)
	assert.Equal(t, battle.ActionAttack, s.ChooseAction(battle.NewParticipant("Slime", battle.RoleEnemy), dice.NewStackSource()).Type)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestManager_RuntimeError_FallsBackToAttack(t *testing.T) {
	mgr, logs := newTestManager(t)
	s := loadStrategy(t, mgr, "broken", `
		function choose_action(self)
			error("intentional error")
		end
	`)
	assert.Equal(t, battle.ActionAttack, s.ChooseAction(battle.NewParticipant("Slime", battle.RoleEnemy), dice.NewStackSource()).Type)
	assert.Equal(t, 1, logs.FilterMessage("scripting: Lua runtime error").Len())
}

func TestManager_UnknownAction_FallsBackToAttack(t *testing.T) {
	mgr, logs := newTestManager(t)
	s := loadStrategy(t, mgr, "dancer", `function choose_action(self) return "dance" end`)
	assert.Equal(t, battle.ActionAttack, s.ChooseAction(battle.NewParticipant("Slime", battle.RoleEnemy), dice.NewStackSource()).Type)
	assert.Equal(t, 1, logs.FilterMessage("scripting: unknown action").Len())
}

func TestManager_NonStringReturn_FallsBackToAttack(t *testing.T) {
	mgr, _ := newTestManager(t)
	s := loadStrategy(t, mgr, "numeric", `function choose_action(self) return 42 end`)
	assert.Equal(t, battle.ActionAttack, s.ChooseAction(battle.NewParticipant("Slime", battle.RoleEnemy), dice.NewStackSource()).Type)
}

func TestManager_InstructionBudgetResetsPerCall(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.Load("stubborn", `
		calls = 0
		function choose_action(self)
			calls = calls + 1
			if calls == 1 then
				while true do end
			end
			return "flee"
		end
	`, 1000))
	s, ok := mgr.Strategy("stubborn")
	require.True(t, ok)

	p := battle.NewParticipant("Slime", battle.RoleEnemy)
	assert.Equal(t, battle.ActionAttack, s.ChooseAction(p, dice.NewStackSource()).Type)
	assert.Equal(t, battle.ActionFlee, s.ChooseAction(p, dice.NewStackSource()).Type)
}

func TestManager_Load_InvalidLua(t *testing.T) {
	mgr, _ := newTestManager(t)
	assert.Error(t, mgr.Load("bad", `this is not valid lua @@@@`, 0))
	_, ok := mgr.Strategy("bad")
	assert.False(t, ok)
}

func TestManager_Load_EmptyName(t *testing.T) {
	mgr, _ := newTestManager(t)
	assert.Error(t, mgr.Load("", `function choose_action() return "attack" end`, 0))
}

func TestManager_Load_ReplacesExisting(t *testing.T) {
	mgr, _ := newTestManager(t)
	loadStrategy(t, mgr, "mood", `function choose_action() return "attack" end`)
	s := loadStrategy(t, mgr, "mood", `function choose_action() return "flee" end`)
	assert.Equal(t, battle.ActionFlee, s.ChooseAction(battle.NewParticipant("Slime", battle.RoleEnemy), dice.NewStackSource()).Type)
	assert.Equal(t, []string{"mood"}, mgr.Names())
}

func TestManager_LoadDir(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "coward.lua"), []byte(`function choose_action() return "flee" end`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "brute.lua"), []byte(`function choose_action() return "attack" end`), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte(`ignored`), 0644))

	require.NoError(t, mgr.LoadDir(dir, 0))
	assert.Equal(t, []string{"brute", "coward"}, mgr.Names())
}

func TestManager_LoadDir_Missing(t *testing.T) {
	mgr, _ := newTestManager(t)
	assert.Error(t, mgr.LoadDir(filepath.Join(t.TempDir(), "nope"), 0))
}

func TestManager_ResolvesRosterStrategies(t *testing.T) {
	mgr, _ := newTestManager(t)
	loadStrategy(t, mgr, "coward", `function choose_action() return "flee" end`)

	tmpl, err := battle.LoadTemplateFromBytes([]byte("id: slime\nname: Slime\nstrategy: coward\n"))
	require.NoError(t, err)
	p, err := tmpl.Instantiate(mgr)
	require.NoError(t, err)
	assert.Equal(t, battle.ActionFlee, p.ChooseAction(dice.NewStackSource()).Type)
}

func TestManager_Close_ForgetsStrategies(t *testing.T) {
	mgr, _ := newTestManager(t)
	loadStrategy(t, mgr, "brute", `function choose_action() return "attack" end`)
	mgr.Close()
	_, ok := mgr.Strategy("brute")
	assert.False(t, ok)
}

func TestNewManager_PanicsOnNilLogger(t *testing.T) {
	assert.Panics(t, func() { scripting.NewManager(nil) })
}

func TestManager_ConcurrentChooseAction(t *testing.T) {
	mgr, _ := newTestManager(t)
	s := loadStrategy(t, mgr, "brute", `function choose_action() return "attack" end`)

	const goroutines = 10
	var wg sync.WaitGroup
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			p := battle.NewParticipant("Slime", battle.RoleEnemy)
			for j := 0; j < 5; j++ {
				assert.Equal(t, battle.ActionAttack, s.ChooseAction(p, dice.NewStackSource()).Type)
			}
		}()
	}
	wg.Wait()
}

func TestProperty_ScriptedActionRoundTrips(t *testing.T) {
	mgr, _ := newTestManager(t)
	s := loadStrategy(t, mgr, "echo", `function choose_action(self) return self.name end`)
	rapid.Check(t, func(rt *rapid.T) {
		want := rapid.SampledFrom([]battle.ActionType{
			battle.ActionAttack, battle.ActionFlee, battle.ActionItem, battle.ActionSpell,
		}).Draw(rt, "action")
		p := battle.NewParticipant(want.String(), battle.RoleEnemy)
		assert.Equal(rt, want, s.ChooseAction(p, dice.NewStackSource()).Type)
	})
}

func TestManager_LoadDir_BundledStrategies(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.LoadDir(filepath.Join("..", "..", "content", "strategies"), 0))
	assert.Equal(t, []string{"cautious", "erratic"}, mgr.Names())

	cautious, ok := mgr.Strategy("cautious")
	require.True(t, ok)
	p := battle.NewParticipantWithStats("Slime", battle.RoleEnemy, battle.NewStatsWith(1, 8, 0, 0, 5, 3, 5, 3, 1))
	assert.Equal(t, battle.ActionFlee, cautious.ChooseAction(p, dice.NewStackSource()).Type)

	erratic, ok := mgr.Strategy("erratic")
	require.True(t, ok)
	drakee := battle.NewParticipantWithStats("Drakee", battle.RoleEnemy, battle.NewStatsWith(12, 12, 1, 1, 9, 6, 9, 6, 2))
	assert.Equal(t, battle.ActionSpell, erratic.ChooseAction(drakee, dice.NewStackSource(0)).Type)
	assert.Equal(t, battle.ActionAttack, erratic.ChooseAction(drakee, dice.NewStackSource(5)).Type)
}
