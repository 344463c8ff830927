package repositories

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Docteur-Parfait/os228/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectRepositorySaveAndLoad(t *testing.T) {
	repo := NewProjectRepository(filepath.Join(t.TempDir(), "projects.json"))

	projects := []*models.Project{
		{ID: 2, Name: "beta", Link: "https://github.com/acme/beta", Technologies: []string{"Go"}},
		{ID: 1, Name: "alpha", Link: "https://github.com/acme/alpha", Stars: 3},
	}

	require.NoError(t, repo.Save(projects))

	loaded, err := repo.Load()
	require.NoError(t, err)
	assert.Equal(t, projects, loaded)
}

func TestProjectRepositoryLoadMissingFileFails(t *testing.T) {
	repo := NewProjectRepository(filepath.Join(t.TempDir(), "projects.json"))

	_, err := repo.Load()
	assert.Error(t, err)
}

func TestProjectRepositoryLoadCorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	repo := NewProjectRepository(path)

	_, err := repo.Load()
	assert.Error(t, err)
}

func TestProjectRepositoryLoadOrEmpty(t *testing.T) {
	repo := NewProjectRepository(filepath.Join(t.TempDir(), "projects.json"))

	// Missing file is an empty starting set for creation paths
	assert.Empty(t, repo.LoadOrEmpty())

	require.NoError(t, repo.Save([]*models.Project{{ID: 1, Name: "alpha"}}))
	assert.Len(t, repo.LoadOrEmpty(), 1)
}

func TestProjectRepositorySaveCreatesDataDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "projects.json")
	repo := NewProjectRepository(path)

	require.NoError(t, repo.Save([]*models.Project{}))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestProjectRepositoryWritesPrettyPrintedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.json")
	repo := NewProjectRepository(path)

	require.NoError(t, repo.Save([]*models.Project{{ID: 1, Name: "alpha"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\n  {")
}
