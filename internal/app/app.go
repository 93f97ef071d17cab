// Package app wires configuration, logging, data libraries and the
// leaderboard into a session factory shared by the desktop and server
// binaries.
package app

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"chosenoffset.com/packdelve/entity"
	"chosenoffset.com/packdelve/internal/config"
	"chosenoffset.com/packdelve/internal/game"
	"chosenoffset.com/packdelve/internal/logging"
	"chosenoffset.com/packdelve/item"
	"chosenoffset.com/packdelve/leaderboard"
)

// App holds everything a session needs that outlives a single run
type App struct {
	Config  *config.Config
	Logger  *zap.Logger
	Items   *item.Library
	Enemies *entity.Library
	Ledger  *leaderboard.Ledger
}

// Setup loads configuration from path, or the built-in defaults when path is
// empty, and opens the leaderboard
func Setup(path string) (*App, error) {
	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	return New(cfg)
}

// New builds an App from an already loaded configuration
func New(cfg *config.Config) (*App, error) {
	logger, err := logging.New(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	items, enemies, err := game.LoadLibraries(cfg.Data)
	if err != nil {
		return nil, err
	}

	store, err := openStore(cfg.Leaderboard, logger)
	if err != nil {
		// Scores are not worth refusing to start over
		logger.Warn("leaderboard store unavailable, scores kept in memory", zap.Error(err))
	}

	return &App{
		Config:  cfg,
		Logger:  logger,
		Items:   items,
		Enemies: enemies,
		Ledger:  leaderboard.Open(store, logger),
	}, nil
}

func openStore(cfg config.LeaderboardConfig, logger *zap.Logger) (leaderboard.Store, error) {
	if dsn := os.ExpandEnv(cfg.DSN); dsn != "" {
		store, err := leaderboard.NewPostgresStore(dsn)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	if cfg.Path == "" {
		return nil, nil
	}
	return leaderboard.NewFileStore(cfg.Path, logger), nil
}

// NewSession starts a fresh run
func (a *App) NewSession() (*game.Session, error) {
	return game.NewSession(a.Config, game.Options{
		Items:   a.Items,
		Enemies: a.Enemies,
		Ledger:  a.Ledger,
		Logger:  a.Logger,
	})
}

// Close flushes the logger and releases the leaderboard store
func (a *App) Close() error {
	err := a.Ledger.Close()
	_ = a.Logger.Sync()
	return err
}
