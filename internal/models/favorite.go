package models

import (
	"time"

	"github.com/google/uuid"
)

// Favorite represents one project saved to the favorites list
type Favorite struct {
	ID           string    `json:"id"`
	ProjectID    int       `json:"project_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Link         string    `json:"link"`
	Author       string    `json:"author"`
	Language     string    `json:"language"`
	Technologies []string  `json:"technologies"`
	Category     string    `json:"category"`
	AddedAt      time.Time `json:"added_at"`
}

// NewFavorite creates a favorite for a project with a generated UUID
func NewFavorite(project *Project) *Favorite {
	return &Favorite{
		ID:           uuid.New().String(),
		ProjectID:    project.ID,
		Name:         project.Name,
		Description:  project.Description,
		Link:         project.Link,
		Author:       project.Author,
		Language:     project.Language,
		Technologies: project.Technologies,
		Category:     project.Category,
		AddedAt:      time.Now(),
	}
}
