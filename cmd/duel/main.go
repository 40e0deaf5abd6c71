package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/magefree/heat-duel-go/internal/bot"
	"github.com/magefree/heat-duel-go/internal/config"
	"github.com/magefree/heat-duel-go/internal/duel"
	"github.com/magefree/heat-duel-go/internal/duel/rules"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	modeFlag   = flag.String("mode", "", "duel mode override (classic or simultaneous)")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if *modeFlag != "" {
		cfg.Duel.Mode = *modeFlag
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Invalid -mode: %v\n", err)
			os.Exit(1)
		}
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting heat duel",
		zap.String("version", version),
		zap.String("config", *configPath),
		zap.String("mode", cfg.Duel.Mode),
	)

	if err := run(cfg, logger); err != nil {
		logger.Error("duel failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	mode, err := cfg.Duel.ParsedMode()
	if err != nil {
		return err
	}
	deckP1, err := loadDeck(cfg.Duel.Decks.P1, logger)
	if err != nil {
		return err
	}
	deckP2, err := loadDeck(cfg.Duel.Decks.P2, logger)
	if err != nil {
		return err
	}
	strategyP1, err := bot.NewStrategy(bot.Level(cfg.Duel.Bots.P1))
	if err != nil {
		return fmt.Errorf("duel.bots.p1: %w", err)
	}
	strategyP2, err := bot.NewStrategy(bot.Level(cfg.Duel.Bots.P2))
	if err != nil {
		return fmt.Errorf("duel.bots.p2: %w", err)
	}

	// Create context that listens for termination signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	manager := duel.NewManager(logger)
	defer manager.CloseAll()

	d, err := manager.Create(deckP1, deckP2, mode,
		duel.WithScheduler(duel.TimerScheduler{}),
		duel.WithTurnDelay(cfg.Duel.TurnDelay),
	)
	if err != nil {
		return err
	}

	stats := rules.NewStatsWatcher()
	stats.Attach(d.Events())

	driver := bot.NewDriver(d,
		bot.WithStrategy(rules.SideP1, strategyP1),
		bot.WithStrategy(rules.SideP2, strategyP2),
		bot.WithMaxTurns(cfg.Duel.MaxTurns),
		bot.WithDriverLogger(logger),
	)
	result, runErr := driver.Run(ctx)

	for _, line := range d.Log() {
		fmt.Println(line)
	}

	switch {
	case result.Finished:
		fmt.Printf("Winner: %s after %d turns\n", result.Winner, result.Turns)
	case errors.Is(runErr, bot.ErrNoMove):
		fmt.Printf("Stalemate after %d turns: %v\n", result.Turns, runErr)
	case errors.Is(runErr, bot.ErrTurnLimit):
		fmt.Printf("No winner after %d turns\n", result.Turns)
	case errors.Is(runErr, context.Canceled):
		logger.Info("received shutdown signal")
		fmt.Printf("Interrupted after %d turns\n", result.Turns)
	default:
		return runErr
	}

	for _, side := range rules.Sides {
		s := stats.Stats(side)
		fmt.Printf("%s: played %d, dealt %d, healed %d, inserts %d, overheats %d, skipped %d\n",
			side, s.CardsPlayed, s.DamageDealt, s.Healed, s.InsertAttacks, s.Overheats, s.TurnsSkipped)
	}

	snap := d.Snapshot()
	logger.Info("heat duel stopped",
		zap.String("duel_id", d.ID()),
		zap.Int("hp_p1", snap.Player(rules.SideP1).HP),
		zap.Int("hp_p2", snap.Player(rules.SideP2).HP),
		zap.String("checksum", snap.Checksum()),
	)
	return nil
}

func loadDeck(path string, logger *zap.Logger) ([]duel.Card, error) {
	if path == "" {
		logger.Info("no deck configured, using starter deck")
		return duel.StarterDeck(), nil
	}
	cards, err := duel.LoadDeck(path)
	if err != nil {
		return nil, err
	}
	logger.Info("deck loaded", zap.String("path", path), zap.Int("cards", len(cards)))
	return cards, nil
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
