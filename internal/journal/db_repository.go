package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"gopkg.in/yaml.v3"

	"github.com/mushfoo/puka-sub002/internal/streak"
)

// journalName is the row key for the single-user journal.
const journalName = "default"

// DBRepository stores the journal in MySQL as an opaque serialized blob,
// one row per journal name.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

type journalRow struct {
	Name    string `db:"name"`
	Payload string `db:"payload"`
	Version int    `db:"version"`
}

// Load reads and decodes the enhanced journal.
func (r *DBRepository) Load(ctx context.Context) (*streak.EnhancedStreakHistory, error) {
	var row journalRow
	err := r.db.GetContext(ctx, &row,
		"SELECT name, payload, version FROM streak_journals WHERE name = ?", journalName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(streak_journals) > %w", err)
	}

	var history streak.EnhancedStreakHistory
	if err := yaml.Unmarshal([]byte(row.Payload), &history); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal > %w", err)
	}
	return &history, nil
}

// Save encodes and upserts the enhanced journal.
func (r *DBRepository) Save(ctx context.Context, history *streak.EnhancedStreakHistory) error {
	payload, err := yaml.Marshal(history)
	if err != nil {
		return fmt.Errorf("yaml.Marshal > %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO streak_journals (name, payload, version)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE payload = VALUES(payload), version = VALUES(version)`,
		journalName, string(payload), history.Version)
	if err != nil {
		return fmt.Errorf("db.ExecContext(upsert streak_journal) > %w", err)
	}
	return nil
}

// LoadLegacy reads and decodes the legacy streak record.
func (r *DBRepository) LoadLegacy(ctx context.Context) (*streak.LegacyStreakHistory, error) {
	var row journalRow
	err := r.db.GetContext(ctx, &row,
		"SELECT name, payload, version FROM legacy_streaks WHERE name = ?", journalName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(legacy_streaks) > %w", err)
	}

	var legacy streak.LegacyStreakHistory
	if err := yaml.Unmarshal([]byte(row.Payload), &legacy); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal > %w", err)
	}
	return &legacy, nil
}
