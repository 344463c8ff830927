package repositories

import (
	"database/sql"
	"encoding/json"

	"github.com/Docteur-Parfait/os228/internal/models"
)

type FavoriteRepository struct {
	db *sql.DB
}

func NewFavoriteRepository(db *sql.DB) *FavoriteRepository {
	return &FavoriteRepository{
		db: db,
	}
}

// List retrieves all favorites, most recently added first
func (r *FavoriteRepository) List() ([]*models.Favorite, error) {
	query := `
		SELECT id, project_id, name, description, link, author, language, technologies, category, added_at
		FROM favorites
		ORDER BY added_at DESC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favorites []*models.Favorite
	for rows.Next() {
		favorite := &models.Favorite{}
		var technologies string
		err := rows.Scan(
			&favorite.ID,
			&favorite.ProjectID,
			&favorite.Name,
			&favorite.Description,
			&favorite.Link,
			&favorite.Author,
			&favorite.Language,
			&technologies,
			&favorite.Category,
			&favorite.AddedAt,
		)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(technologies), &favorite.Technologies); err != nil {
			favorite.Technologies = []string{}
		}
		favorites = append(favorites, favorite)
	}

	return favorites, rows.Err()
}

// Add inserts a new favorite
func (r *FavoriteRepository) Add(favorite *models.Favorite) error {
	query := `
		INSERT INTO favorites (id, project_id, name, description, link, author, language, technologies, category, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	technologies, err := json.Marshal(favorite.Technologies)
	if err != nil {
		return err
	}

	_, err = r.db.Exec(query,
		favorite.ID,
		favorite.ProjectID,
		favorite.Name,
		favorite.Description,
		favorite.Link,
		favorite.Author,
		favorite.Language,
		string(technologies),
		favorite.Category,
		favorite.AddedAt,
	)

	return err
}

// Remove deletes the favorite for a project
func (r *FavoriteRepository) Remove(projectID int) error {
	query := `DELETE FROM favorites WHERE project_id = ?`

	_, err := r.db.Exec(query, projectID)
	return err
}

// Exists checks whether a project is already in the favorites list
func (r *FavoriteRepository) Exists(projectID int) (bool, error) {
	query := `SELECT COUNT(1) FROM favorites WHERE project_id = ?`

	var count int
	if err := r.db.QueryRow(query, projectID).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
