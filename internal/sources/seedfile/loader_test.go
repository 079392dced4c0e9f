package seedfile

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderLoad(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "catalog.yaml")

	yamlContent := `---
games:
  - title: Rocket Run
    slug: rocket-run
    description: Dodge the asteroids.
    thumbnail_url: /games/rocket-run/thumbnail.svg
    entry_url: /games/rocket-run/index.html
    orientation: landscape
    tags: [arcade, runner]
  - title: Word Grid
    slug: word-grid
    entry_url: /games/word-grid/index.html
`

	if err := os.WriteFile(yamlPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	inputs, err := NewLoader(yamlPath).Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(inputs) != 2 {
		t.Fatalf("Load() = %d games, want 2", len(inputs))
	}

	first := inputs[0]
	if first.Slug != "rocket-run" {
		t.Errorf("Slug = %q, want %q", first.Slug, "rocket-run")
	}
	if first.Orientation != "landscape" {
		t.Errorf("Orientation = %q, want %q", first.Orientation, "landscape")
	}
	if len(first.Tags) != 2 {
		t.Errorf("Tags = %v, want 2 entries", first.Tags)
	}
}

func TestLoaderRejectsIncompleteEntries(t *testing.T) {
	tmpDir := t.TempDir()
	yamlPath := filepath.Join(tmpDir, "catalog.yaml")

	yamlContent := `---
games:
  - title: Missing Entry URL
    slug: broken
`

	if err := os.WriteFile(yamlPath, []byte(yamlContent), 0o644); err != nil {
		t.Fatalf("Failed to create test YAML file: %v", err)
	}

	if _, err := NewLoader(yamlPath).Load(); err == nil {
		t.Fatal("Load() should fail on an entry without entry_url")
	}
}

func TestLoaderMissingFile(t *testing.T) {
	if _, err := NewLoader("/does/not/exist.yaml").Load(); err == nil {
		t.Fatal("Load() should fail on a missing file")
	}
}
