package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/slimebattle/internal/game/battle"
)

// Manager owns one sandboxed VM per named decision strategy and resolves
// strategies by name for roster templates.
//
// Manager is safe for concurrent use.
type Manager struct {
	mu         sync.RWMutex
	strategies map[string]*scriptedStrategy
	logger     *zap.Logger
}

// NewManager creates a Manager.
//
// Precondition: logger must be non-nil.
// Postcondition: Returns a non-nil Manager with no strategies loaded.
func NewManager(logger *zap.Logger) *Manager {
	if logger == nil {
		panic("scripting: NewManager requires a non-nil logger")
	}
	return &Manager{
		strategies: make(map[string]*scriptedStrategy),
		logger:     logger,
	}
}

// LoadDir loads every *.lua file in dir as a strategy named after the file
// without its extension, in lexicographic order.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns the first load error; strategies loaded before the
// failure stay registered.
func (m *Manager) LoadDir(dir string, instLimit int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scripting: reading strategy dir %q: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	sort.Strings(luaFiles)

	for _, file := range luaFiles {
		path := filepath.Join(dir, file)
		src, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("scripting: reading %q: %w", path, err)
		}
		name := strings.TrimSuffix(file, ".lua")
		if err := m.Load(name, string(src), instLimit); err != nil {
			return err
		}
	}
	return nil
}

// Load compiles source into a fresh VM registered as name, replacing any
// strategy previously registered under that name.
//
// Precondition: name must be non-empty.
// Postcondition: Strategy(name) resolves on success; returns an error on Lua
// load failure and leaves any previous strategy in place.
func (m *Manager) Load(name, source string, instLimit int) error {
	if name == "" {
		return fmt.Errorf("scripting: strategy name must not be empty")
	}
	L, cancel := NewSandboxedState(instLimit)
	s := &scriptedStrategy{
		name:      name,
		instLimit: instLimit,
		logger:    m.logger,
		L:         L,
		cancel:    cancel,
	}
	registerModules(s)

	if err := L.DoString(source); err != nil {
		cancel()
		L.Close()
		return fmt.Errorf("scripting: loading strategy %q: %w", name, err)
	}

	m.mu.Lock()
	old := m.strategies[name]
	m.strategies[name] = s
	m.mu.Unlock()
	if old != nil {
		old.close()
	}
	m.logger.Debug("scripting: strategy loaded", zap.String("strategy", name))
	return nil
}

// Strategy returns the strategy registered as name. It satisfies
// battle.StrategyResolver.
func (m *Manager) Strategy(name string) (battle.Strategy, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.strategies[name]
	if !ok {
		return nil, false
	}
	return s, true
}

// Names returns the registered strategy names, sorted.
func (m *Manager) Names() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.strategies))
	for name := range m.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close releases every VM. Strategies handed out earlier must not be used
// afterwards.
func (m *Manager) Close() {
	m.mu.Lock()
	strategies := m.strategies
	m.strategies = make(map[string]*scriptedStrategy)
	m.mu.Unlock()
	for _, s := range strategies {
		s.close()
	}
}
