package journal

import (
	"context"
	"fmt"
	"os"

	"github.com/mushfoo/puka-sub002/internal/streak"
)

// YAMLRepository stores the journal and the legacy record as YAML files.
type YAMLRepository struct {
	journalPath string
	legacyPath  string
}

// NewYAMLRepository creates a new YAMLRepository.
func NewYAMLRepository(journalPath, legacyPath string) *YAMLRepository {
	return &YAMLRepository{
		journalPath: journalPath,
		legacyPath:  legacyPath,
	}
}

// Load reads the enhanced journal from disk.
func (r *YAMLRepository) Load(_ context.Context) (*streak.EnhancedStreakHistory, error) {
	if _, err := os.Stat(r.journalPath); os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	history, err := readYamlFile[streak.EnhancedStreakHistory](r.journalPath)
	if err != nil {
		return nil, fmt.Errorf("readYamlFile(%s) > %w", r.journalPath, err)
	}
	return &history, nil
}

// Save writes the enhanced journal to disk.
func (r *YAMLRepository) Save(_ context.Context, history *streak.EnhancedStreakHistory) error {
	if err := writeYamlFile(r.journalPath, history); err != nil {
		return fmt.Errorf("writeYamlFile(%s) > %w", r.journalPath, err)
	}
	return nil
}

// LoadLegacy reads the legacy streak record from disk.
func (r *YAMLRepository) LoadLegacy(_ context.Context) (*streak.LegacyStreakHistory, error) {
	if _, err := os.Stat(r.legacyPath); os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	legacy, err := readYamlFile[streak.LegacyStreakHistory](r.legacyPath)
	if err != nil {
		return nil, fmt.Errorf("readYamlFile(%s) > %w", r.legacyPath, err)
	}
	return &legacy, nil
}
