package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// registerModules installs the engine table into s's VM:
//
//	engine.random(min, max)  draws from the battle source in [min, max)
//	engine.log.debug/info/warn(msg)
//
// Precondition: s.L must come from NewSandboxedState.
func registerModules(s *scriptedStrategy) {
	L := s.L
	engine := L.NewTable()

	L.SetField(engine, "random", L.NewFunction(func(L *lua.LState) int {
		if s.src == nil {
			L.RaiseError("engine.random called outside choose_action")
			return 0
		}
		min := L.CheckInt(1)
		max := L.CheckInt(2)
		L.Push(lua.LNumber(s.src.Next(min, max)))
		return 1
	}))

	log := L.NewTable()
	for name, fn := range map[string]func(string, ...zap.Field){
		"debug": s.logger.Debug,
		"info":  s.logger.Info,
		"warn":  s.logger.Warn,
	} {
		L.SetField(log, name, L.NewFunction(func(L *lua.LState) int {
			fn(L.CheckString(1), zap.String("strategy", s.name))
			return 0
		}))
	}
	L.SetField(engine, "log", log)

	L.SetGlobal("engine", engine)
}
