// Package main provides a CLI that loads a roster and prints a dry-run
// report of one battle round.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/slimebattle/internal/config"
	"github.com/cory-johannsen/slimebattle/internal/game/battle"
	"github.com/cory-johannsen/slimebattle/internal/game/dice"
	"github.com/cory-johannsen/slimebattle/internal/observability"
	"github.com/cory-johannsen/slimebattle/internal/scripting"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "", "path to configuration file (defaults and BATTLE_ env vars when empty)")
	rosterDir := flag.String("roster", "", "override battle.roster_dir")
	seed := flag.String("seed", "", "override battle.seed")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *rosterDir != "" {
		cfg.Battle.RosterDir = *rosterDir
	}
	if *seed != "" {
		cfg.Battle.Seed = *seed
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if cfg.Battle.Seed != "" {
		derived := battle.Seed(cfg.Battle.Seed)
		logger.Info("dice seeded", zap.String("seed", cfg.Battle.Seed), zap.Int64("derived", derived))
	}

	strategies := scripting.NewManager(logger)
	defer strategies.Close()
	if cfg.Scripting.Dir != "" {
		if err := strategies.LoadDir(cfg.Scripting.Dir, cfg.Scripting.InstructionLimit); err != nil {
			logger.Fatal("loading strategies", zap.Error(err))
		}
		logger.Info("loaded strategies", zap.Strings("names", strategies.Names()))
	}

	templates, err := battle.LoadRoster(cfg.Battle.RosterDir)
	if err != nil {
		logger.Fatal("loading roster", zap.Error(err))
	}
	logger.Info("loaded roster", zap.Int("count", len(templates)))

	participants := make([]*battle.Participant, 0, len(templates))
	for _, tmpl := range templates {
		p, err := tmpl.Instantiate(strategies)
		if err != nil {
			logger.Fatal("instantiating template", zap.String("id", tmpl.ID), zap.Error(err))
		}
		participants = append(participants, p)
	}

	var src dice.Source = dice.Default()
	if cfg.Battle.LogDraws {
		src = dice.NewLoggedSource(src, logger)
	}
	calc := battle.NewCalculator(src, logger)

	if err := writeRoundReport(os.Stdout, calc, participants); err != nil {
		logger.Fatal("writing report", zap.Error(err))
	}

	fmt.Fprintf(os.Stdout, "[%s]\n", time.Since(start))
}
