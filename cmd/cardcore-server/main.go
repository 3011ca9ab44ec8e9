package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"

	"cardcore/internal/battlelog"
	"cardcore/internal/card"
	cardnet "cardcore/internal/net"
	"cardcore/internal/rules"
	"cardcore/internal/tracking"
)

type config struct {
	Addr        string `env:"CARDCORE_ADDR" envDefault:":8080"`
	CatalogFile string `env:"CARDCORE_CATALOG" envDefault:"catalog.yaml"`
	StorePath   string `env:"CARDCORE_STORE"` // optional SQLite path for lifetime counters
	Seed        int64  `env:"CARDCORE_SEED"`
	HeroName    string `env:"CARDCORE_HERO" envDefault:"Hero"`
	FoeName     string `env:"CARDCORE_FOE" envDefault:"Foe"`
	Health      int    `env:"CARDCORE_HEALTH" envDefault:"100"`
	Energy      int    `env:"CARDCORE_ENERGY" envDefault:"3"`
	HeroDeck    string `env:"CARDCORE_HERO_DECK"` // space-separated card ids
	FoeDeck     string `env:"CARDCORE_FOE_DECK"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	catalog, err := card.LoadCatalog(cfg.CatalogFile)
	if err != nil {
		return fmt.Errorf("load catalog %s: %w", cfg.CatalogFile, err)
	}
	logger.Info("catalog loaded",
		zap.String("file", cfg.CatalogFile),
		zap.Int("cards", catalog.Len()))

	hero := rules.NewCombatant(cfg.HeroName, cfg.Health, cfg.Energy)
	foe := rules.NewCombatant(cfg.FoeName, cfg.Health, cfg.Energy)
	hero.SetOpponent(foe)
	foe.SetOpponent(hero)

	tracker := tracking.NewStore()
	if cfg.StorePath != "" {
		db, err := tracking.OpenSQLite(cfg.StorePath)
		if err != nil {
			return fmt.Errorf("open lifetime store: %w", err)
		}
		defer db.Close()
		if err := tracker.AttachPersister(db, hero.ID, foe.ID); err != nil {
			return fmt.Errorf("load lifetime counters: %w", err)
		}
		logger.Info("lifetime store attached", zap.String("path", cfg.StorePath))
	}

	enc, err := rules.NewEncounter(rules.EncounterConfig{
		Catalog:    catalog,
		Tracker:    tracker,
		Events:     battlelog.NewMemoryLogger(),
		Logger:     logger,
		Combatants: []*rules.Combatant{hero, foe},
		Seed:       cfg.Seed,
	})
	if err != nil {
		return fmt.Errorf("wire encounter: %w", err)
	}

	heroDeck, err := parseDeck(cfg.HeroDeck, catalog)
	if err != nil {
		return fmt.Errorf("hero deck: %w", err)
	}
	foeDeck, err := parseDeck(cfg.FoeDeck, catalog)
	if err != nil {
		return fmt.Errorf("foe deck: %w", err)
	}
	enc.Decks.Assign(hero.ID, heroDeck...)
	enc.Decks.Assign(foe.ID, foeDeck...)

	srv := cardnet.NewServer(enc, logger)
	go func() {
		if err := srv.Run(context.Background()); err != nil {
			logger.Error("authority loop stopped", zap.Error(err))
		}
	}()

	logger.Info("listening", zap.String("addr", cfg.Addr))
	return srv.ListenAndServe(cfg.Addr)
}

// parseDeck turns a space-separated id list into deck slots, defaulting to
// one copy of every catalog card when unset.
func parseDeck(s string, catalog *card.Catalog) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		var ids []int
		for _, def := range catalog.All() {
			ids = append(ids, def.ID)
		}
		return ids, nil
	}
	var ids []int
	for _, part := range strings.Fields(s) {
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid card id %q", part)
		}
		if !catalog.Has(id) {
			return nil, fmt.Errorf("card id %d is not in the catalog", id)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
