package battle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DropEntry is a single item entry in a template's drop table.
type DropEntry struct {
	Item   string `yaml:"item"`
	Chance int    `yaml:"chance"`
}

// Template is a reusable participant archetype loaded from YAML.
type Template struct {
	ID         string      `yaml:"id"`
	Name       string      `yaml:"name"`
	Role       Role        `yaml:"role"`
	Stats      Stats       `yaml:"stats"`
	Experience int         `yaml:"experience"`
	Gold       int         `yaml:"gold"`
	Drops      []DropEntry `yaml:"drops"`
	// Strategy names a scripted decision strategy; empty means always attack.
	Strategy string `yaml:"strategy"`
}

// StrategyResolver looks up a decision strategy by name.
type StrategyResolver interface {
	Strategy(name string) (Strategy, bool)
}

// Validate checks that the template satisfies its invariants.
//
// Postcondition: Returns nil iff ID and Name are non-empty, max hit points is
// >= 1, every stat is non-negative, dodge is within [0, 64], current points do
// not exceed their maximum and every drop has a unique item and a chance in
// [0, 100].
// All violations are reported together.
func (t *Template) Validate() error {
	if t.ID == "" {
		return errors.New("participant template: id must not be empty")
	}
	var errs []string
	if t.Name == "" {
		errs = append(errs, "name must not be empty")
	}
	s := t.Stats
	if s.MaxHitPoints < 1 {
		errs = append(errs, fmt.Sprintf("stats.max_hit_points must be >= 1, got %d", s.MaxHitPoints))
	}
	if s.HitPoints < 0 || s.HitPoints > s.MaxHitPoints {
		errs = append(errs, fmt.Sprintf("stats.hit_points must be in [0, %d], got %d", s.MaxHitPoints, s.HitPoints))
	}
	if s.MagicPoints < 0 || s.MagicPoints > s.MaxMagicPoints {
		errs = append(errs, fmt.Sprintf("stats.magic_points must be in [0, %d], got %d", s.MaxMagicPoints, s.MagicPoints))
	}
	for _, f := range []struct {
		name  string
		value int
	}{
		{"strength", s.Strength},
		{"agility", s.Agility},
		{"attack_power", s.AttackPower},
		{"defense_power", s.DefensePower},
		{"level", s.Level},
	} {
		if f.value < 0 {
			errs = append(errs, fmt.Sprintf("stats.%s must be >= 0, got %d", f.name, f.value))
		}
	}
	if s.Dodge < 0 || s.Dodge > MaxDodge {
		errs = append(errs, fmt.Sprintf("stats.dodge must be in [0, %d], got %d", MaxDodge, s.Dodge))
	}
	if t.Experience < 0 {
		errs = append(errs, fmt.Sprintf("experience must be >= 0, got %d", t.Experience))
	}
	if t.Gold < 0 {
		errs = append(errs, fmt.Sprintf("gold must be >= 0, got %d", t.Gold))
	}
	firstDrop := make(map[string]int, len(t.Drops))
	for i, d := range t.Drops {
		if d.Item == "" {
			errs = append(errs, fmt.Sprintf("drops[%d] must have a non-empty item", i))
		} else if j, ok := firstDrop[d.Item]; ok {
			errs = append(errs, fmt.Sprintf("drops[%d] repeats item %q from drops[%d]", i, d.Item, j))
		} else {
			firstDrop[d.Item] = i
		}
		if d.Chance < 0 || d.Chance > 100 {
			errs = append(errs, fmt.Sprintf("drops[%d] chance must be in [0, 100], got %d", i, d.Chance))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("participant template %q: %s", t.ID, strings.Join(errs, "; "))
	}
	return nil
}

// Instantiate builds a fresh Participant from the template. Each call yields
// a new ID and its own copy of the stats.
//
// Precondition: t must have passed Validate. resolver may be nil when no
// template names a strategy.
func (t *Template) Instantiate(resolver StrategyResolver) (*Participant, error) {
	p := NewParticipantWithStats(t.Name, t.Role, t.Stats.Clone())
	p.ExperiencePoints = t.Experience
	p.GoldPoints = t.Gold
	for _, d := range t.Drops {
		if err := p.Drops.Set(d.Item, d.Chance); err != nil {
			return nil, fmt.Errorf("participant template %q: %w", t.ID, err)
		}
	}
	if t.Strategy != "" {
		if resolver == nil {
			return nil, fmt.Errorf("participant template %q: strategy %q requested but no resolver given", t.ID, t.Strategy)
		}
		s, ok := resolver.Strategy(t.Strategy)
		if !ok {
			return nil, fmt.Errorf("participant template %q: unknown strategy %q", t.ID, t.Strategy)
		}
		p.Strategy = s
	}
	return p, nil
}

// LoadTemplateFromBytes parses a single participant template from YAML.
// Omitted stats default to 1, as with NewStats.
//
// Postcondition: Returns a validated *Template, or an error.
func LoadTemplateFromBytes(data []byte) (*Template, error) {
	tmpl := Template{Stats: *NewStats()}
	if err := yaml.Unmarshal(data, &tmpl); err != nil {
		return nil, fmt.Errorf("parsing template YAML: %w", err)
	}
	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	return &tmpl, nil
}

// LoadRoster reads every *.yaml file in dir, in lexicographic order.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or
// validate failure; on error, the partial result is discarded.
func LoadRoster(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading roster dir %q: %w", dir, err)
	}

	var templates []*Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		tmpl, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		templates = append(templates, tmpl)
	}
	return templates, nil
}
