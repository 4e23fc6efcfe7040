package main

import (
	"fmt"
	"io"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/mushfoo/puka-sub002/internal/book"
	"github.com/mushfoo/puka-sub002/internal/config"
	"github.com/mushfoo/puka-sub002/internal/database"
	"github.com/mushfoo/puka-sub002/internal/journal"
	"github.com/mushfoo/puka-sub002/schemas"
)

// environment bundles the repositories a command needs, constructed
// from the configured storage backend.
type environment struct {
	Journal journal.Repository
	Books   book.Repository

	db *sqlx.DB
}

func newEnvironment() (*environment, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.Load() > %w", err)
	}

	env := &environment{}

	switch cfg.Storage.Backend {
	case "mysql":
		db, err := database.Open(cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("database.Open() > %w", err)
		}
		env.db = db
		env.Journal = journal.NewDBRepository(db)
		env.Books = book.NewDBRepository(db)
	default:
		env.Journal = journal.NewYAMLRepository(cfg.Storage.JournalFile, cfg.Storage.LegacyFile)
		env.Books = book.NewYAMLRepository(cfg.Storage.BooksFile)
	}

	// A configured book service takes precedence over local book storage.
	if cfg.BookAPI.BaseURL != "" {
		env.Books = book.NewAPIClient(book.APIClientConfig{
			BaseURL:    cfg.BookAPI.BaseURL,
			Token:      cfg.BookAPI.Token,
			Timeout:    time.Duration(cfg.BookAPI.TimeoutSeconds) * time.Second,
			MaxRetries: cfg.BookAPI.MaxRetries,
		})
	}

	return env, nil
}

func (e *environment) Close() {
	if e.db != nil {
		_ = e.db.Close()
	}
}

func migrateDB(w io.Writer) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("config.Load() > %w", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("database.Open() > %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := database.ApplyMigrations(db, schemas.Migrations); err != nil {
		return fmt.Errorf("database.ApplyMigrations() > %w", err)
	}
	fmt.Fprintln(w, "Applied database migrations")
	return nil
}
