package journal

import (
	"context"
	"errors"

	"github.com/mushfoo/puka-sub002/internal/streak"
)

// ErrNotFound is returned when no journal has been persisted yet.
var ErrNotFound = errors.New("journal: not found")

//go:generate mockgen -source=repository.go -destination=../mocks/journal/mock_repository.go -package=mock_journal Repository

// Repository loads and stores the journal. Callers are responsible for
// serializing concurrent mutations to the same persisted journal.
type Repository interface {
	Load(ctx context.Context) (*streak.EnhancedStreakHistory, error)
	Save(ctx context.Context, history *streak.EnhancedStreakHistory) error
	LoadLegacy(ctx context.Context) (*streak.LegacyStreakHistory, error)
}
