package repositories

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Docteur-Parfait/os228/internal/models"
)

// ProjectRepository stores the full project set as a single pretty-printed
// JSON array on disk. Every operation reads or rewrites the whole file; the
// file is the single source of truth.
type ProjectRepository struct {
	path string
	mu   sync.Mutex
}

func NewProjectRepository(path string) *ProjectRepository {
	return &ProjectRepository{
		path: path,
	}
}

// Load reads and parses the full project set. A missing or corrupt file is
// an error; sync must not run against a non-existent base.
func (r *ProjectRepository) Load() ([]*models.Project, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

// LoadOrEmpty reads the full project set, treating a missing or unparseable
// file as an empty starting set.
func (r *ProjectRepository) LoadOrEmpty() []*models.Project {
	r.mu.Lock()
	defer r.mu.Unlock()

	projects, err := r.load()
	if err != nil {
		return []*models.Project{}
	}
	return projects
}

func (r *ProjectRepository) load() ([]*models.Project, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read projects file: %w", err)
	}

	var projects []*models.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("failed to parse projects file: %w", err)
	}

	if projects == nil {
		projects = []*models.Project{}
	}
	return projects, nil
}

// Save rewrites the whole project set in one write
func (r *ProjectRepository) Save(projects []*models.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.MarshalIndent(projects, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode projects: %w", err)
	}

	if dir := filepath.Dir(r.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	if err := os.WriteFile(r.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write projects file: %w", err)
	}
	return nil
}
