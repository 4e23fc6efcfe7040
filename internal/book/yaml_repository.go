package book

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLRepository implements Repository over a single YAML file holding a
// list of books.
type YAMLRepository struct {
	path string
}

// NewYAMLRepository creates a new YAMLRepository.
func NewYAMLRepository(path string) *YAMLRepository {
	return &YAMLRepository{path: path}
}

// List reads the book list from the file. A missing file is an empty
// library, not an error.
func (r *YAMLRepository) List(_ context.Context) ([]Book, error) {
	file, err := os.Open(r.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s) > %w", r.path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	var books []Book
	if err := yaml.NewDecoder(file).Decode(&books); err != nil {
		return nil, fmt.Errorf("yaml.NewDecoder().Decode() > %w", err)
	}
	return books, nil
}
