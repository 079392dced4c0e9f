package seedfile

// Catalog is the top-level structure of a seed catalog YAML file.
type Catalog struct {
	Games []GameEntry `yaml:"games"`
}

// GameEntry mirrors the create-input fields of a catalog entry.
type GameEntry struct {
	Title        string   `yaml:"title"`
	Slug         string   `yaml:"slug"`
	Description  string   `yaml:"description,omitempty"`
	ThumbnailURL string   `yaml:"thumbnail_url,omitempty"`
	EntryURL     string   `yaml:"entry_url"`
	Orientation  string   `yaml:"orientation,omitempty"`
	Version      string   `yaml:"version,omitempty"`
	Tags         []string `yaml:"tags,omitempty"`
}
