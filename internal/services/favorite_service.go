package services

import (
	"github.com/Docteur-Parfait/os228/internal/models"
)

// FavoriteStore is the persistence capability for the favorites list.
// The storage medium behind it is swappable without touching the
// favorites logic.
type FavoriteStore interface {
	List() ([]*models.Favorite, error)
	Add(favorite *models.Favorite) error
	Remove(projectID int) error
	Exists(projectID int) (bool, error)
}

type FavoriteService struct {
	store FavoriteStore
}

func NewFavoriteService(store FavoriteStore) *FavoriteService {
	return &FavoriteService{
		store: store,
	}
}

// List returns all favorites, most recently added first
func (s *FavoriteService) List() ([]*models.Favorite, error) {
	favorites, err := s.store.List()
	if err != nil {
		return nil, err
	}
	if favorites == nil {
		favorites = []*models.Favorite{}
	}
	return favorites, nil
}

// Add saves a project to the favorites list. Adding a project that is
// already a favorite is a no-op; the second return value reports whether
// a new entry was created.
func (s *FavoriteService) Add(project *models.Project) (*models.Favorite, bool, error) {
	exists, err := s.store.Exists(project.ID)
	if err != nil {
		return nil, false, err
	}
	if exists {
		return nil, false, nil
	}

	favorite := models.NewFavorite(project)
	if err := s.store.Add(favorite); err != nil {
		return nil, false, err
	}
	return favorite, true, nil
}

// Remove drops a project from the favorites list
func (s *FavoriteService) Remove(projectID int) error {
	return s.store.Remove(projectID)
}
