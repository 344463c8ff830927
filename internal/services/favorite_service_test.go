package services

import (
	"testing"

	"github.com/Docteur-Parfait/os228/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryFavoriteStore backs the favorites service with a plain slice,
// standing in for any other storage medium.
type memoryFavoriteStore struct {
	favorites []*models.Favorite
}

func (s *memoryFavoriteStore) List() ([]*models.Favorite, error) {
	return s.favorites, nil
}

func (s *memoryFavoriteStore) Add(favorite *models.Favorite) error {
	s.favorites = append(s.favorites, favorite)
	return nil
}

func (s *memoryFavoriteStore) Remove(projectID int) error {
	kept := s.favorites[:0]
	for _, f := range s.favorites {
		if f.ProjectID != projectID {
			kept = append(kept, f)
		}
	}
	s.favorites = kept
	return nil
}

func (s *memoryFavoriteStore) Exists(projectID int) (bool, error) {
	for _, f := range s.favorites {
		if f.ProjectID == projectID {
			return true, nil
		}
	}
	return false, nil
}

func TestFavoriteServiceAddAndList(t *testing.T) {
	service := NewFavoriteService(&memoryFavoriteStore{})

	project := &models.Project{ID: 1, Name: "widget", Link: "https://github.com/acme/widget"}

	favorite, created, err := service.Add(project)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 1, favorite.ProjectID)
	assert.NotEmpty(t, favorite.ID)

	favorites, err := service.List()
	require.NoError(t, err)
	assert.Len(t, favorites, 1)
}

func TestFavoriteServiceAddIsIdempotent(t *testing.T) {
	service := NewFavoriteService(&memoryFavoriteStore{})

	project := &models.Project{ID: 1, Name: "widget"}

	_, created, err := service.Add(project)
	require.NoError(t, err)
	assert.True(t, created)

	favorite, created, err := service.Add(project)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Nil(t, favorite)

	favorites, err := service.List()
	require.NoError(t, err)
	assert.Len(t, favorites, 1)
}

func TestFavoriteServiceRemove(t *testing.T) {
	service := NewFavoriteService(&memoryFavoriteStore{})

	_, _, err := service.Add(&models.Project{ID: 1, Name: "widget"})
	require.NoError(t, err)

	require.NoError(t, service.Remove(1))

	favorites, err := service.List()
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestFavoriteServiceListNeverReturnsNil(t *testing.T) {
	service := NewFavoriteService(&memoryFavoriteStore{})

	favorites, err := service.List()
	require.NoError(t, err)
	assert.NotNil(t, favorites)
}
