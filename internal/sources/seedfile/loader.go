// Package seedfile loads an operator-supplied YAML catalog used to seed an
// empty store instead of the built-in demo games.
package seedfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kixhq/kix/internal/domain"
)

// Loader handles loading and parsing of a seed catalog file.
type Loader struct {
	filePath string
}

func NewLoader(filePath string) *Loader {
	return &Loader{filePath: filePath}
}

// Load reads and parses the seed file into create inputs.
func (l *Loader) Load() ([]domain.GameCreateInput, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var catalog Catalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse seed yaml: %w", err)
	}

	inputs := make([]domain.GameCreateInput, 0, len(catalog.Games))
	for i, entry := range catalog.Games {
		if entry.Slug == "" || entry.Title == "" || entry.EntryURL == "" {
			return nil, fmt.Errorf("seed entry %d: title, slug and entry_url are required", i)
		}
		inputs = append(inputs, domain.GameCreateInput{
			Title:        entry.Title,
			Slug:         entry.Slug,
			Description:  entry.Description,
			ThumbnailURL: entry.ThumbnailURL,
			EntryURL:     entry.EntryURL,
			Orientation:  domain.Orientation(entry.Orientation),
			Version:      entry.Version,
			Tags:         entry.Tags,
		})
	}
	return inputs, nil
}
