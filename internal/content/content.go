// Package content loads the ordered project and blog metadata records the
// page renderers consume. Records are authored as YAML files in the content
// directory; long-form bodies are markdown and rendered downstream.
package content

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Project is one portfolio entry.
type Project struct {
	Title   string   `yaml:"title"`
	Summary string   `yaml:"summary"`
	Slug    string   `yaml:"slug,omitempty"`
	Tags    []string `yaml:"tags,omitempty"`
	Date    string   `yaml:"date,omitempty"` // YYYY-MM-DD
	Link    string   `yaml:"link,omitempty"`
	Body    string   `yaml:"body,omitempty"` // markdown
}

// Post is one blog entry.
type Post struct {
	Title   string   `yaml:"title"`
	Summary string   `yaml:"summary"`
	Slug    string   `yaml:"slug,omitempty"`
	Tags    []string `yaml:"tags,omitempty"`
	Date    string   `yaml:"date,omitempty"`
	Body    string   `yaml:"body,omitempty"`
}

// Index is the content index handed to the page renderers. Record order is
// the authored order; the builder never re-sorts.
type Index struct {
	Projects []Project
	Posts    []Post
}

// Load reads projects.yaml and posts.yaml from dir. A missing file yields an
// empty list; a malformed file is fatal. Records without an explicit slug get
// one derived from the title.
func Load(dir string) (*Index, error) {
	idx := &Index{}
	if err := loadYAML(filepath.Join(dir, "projects.yaml"), &idx.Projects); err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	if err := loadYAML(filepath.Join(dir, "posts.yaml"), &idx.Posts); err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	for i := range idx.Projects {
		if idx.Projects[i].Slug == "" {
			idx.Projects[i].Slug = Slugify(idx.Projects[i].Title)
		}
	}
	for i := range idx.Posts {
		if idx.Posts[i].Slug == "" {
			idx.Posts[i].Slug = Slugify(idx.Posts[i].Title)
		}
	}
	return idx, nil
}

func loadYAML(path string, dst any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("unmarshal %s: %w", filepath.Base(path), err)
	}
	return nil
}
