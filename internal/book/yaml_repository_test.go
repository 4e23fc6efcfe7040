package book

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLRepository_List(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		missing  bool
		want     []Book
		wantErr  bool
	}{
		{
			name: "book list is decoded",
			contents: `- id: book-1
  title: The Dispossessed
  status: finished
  date_started: "2024-03-01"
  date_finished: "2024-03-05"
- id: book-2
  title: Piranesi
  status: currently_reading
  progress: 0.4
`,
			want: []Book{
				{
					ID:           "book-1",
					Title:        "The Dispossessed",
					Status:       StatusFinished,
					DateStarted:  "2024-03-01",
					DateFinished: "2024-03-05",
				},
				{
					ID:       "book-2",
					Title:    "Piranesi",
					Status:   StatusCurrentlyReading,
					Progress: 0.4,
				},
			},
		},
		{
			name:    "missing file is an empty library",
			missing: true,
			want:    nil,
		},
		{
			name:     "malformed yaml is an error",
			contents: "{not yaml",
			wantErr:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "books.yml")
			if !tt.missing {
				require.NoError(t, os.WriteFile(path, []byte(tt.contents), 0o644))
			}

			repo := NewYAMLRepository(path)
			got, err := repo.List(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
