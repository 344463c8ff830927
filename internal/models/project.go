package models

import "strings"

// FallbackStats holds record-embedded star/fork counts used when live
// enrichment is unavailable.
type FallbackStats struct {
	Stars int `json:"stars"`
	Forks int `json:"forks"`
}

// Project represents one showcased open-source repository
type Project struct {
	ID            int            `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Link          string         `json:"link"`
	Technologies  []string       `json:"technologies"`
	Category      string         `json:"category"`
	Author        string         `json:"author"`
	Language      string         `json:"language"`
	Stars         int            `json:"stars"`
	Forks         int            `json:"forks"`
	AvatarURL     string         `json:"avatar_url,omitempty"`
	FallbackStats *FallbackStats `json:"fallbackStats,omitempty"`
}

// Validation errors for project creation
var (
	ErrNameTooShort        = &ValidationError{Field: "name", Message: "Project name must be at least 3 characters"}
	ErrDescriptionTooShort = &ValidationError{Field: "description", Message: "Project description must be at least 10 characters"}
	ErrInvalidLink         = &ValidationError{Field: "link", Message: "Project link must be a GitHub repository URL"}
	ErrTechnologiesEmpty   = &ValidationError{Field: "technologies", Message: "At least one technology is required"}
	ErrCategoryRequired    = &ValidationError{Field: "category", Message: "Project category is required"}
	ErrAuthorTooShort      = &ValidationError{Field: "author", Message: "Project author must be at least 2 characters"}
	ErrLanguageRequired    = &ValidationError{Field: "language", Message: "Project language is required"}
)

// Validate checks the creation-time constraints on a candidate project
func (p *Project) Validate() error {
	if len(strings.TrimSpace(p.Name)) < 3 {
		return ErrNameTooShort
	}
	if len(strings.TrimSpace(p.Description)) < 10 {
		return ErrDescriptionTooShort
	}
	if !strings.Contains(p.Link, "github.com") {
		return ErrInvalidLink
	}
	if len(p.Technologies) == 0 {
		return ErrTechnologiesEmpty
	}
	if strings.TrimSpace(p.Category) == "" {
		return ErrCategoryRequired
	}
	if len(strings.TrimSpace(p.Author)) < 2 {
		return ErrAuthorTooShort
	}
	if strings.TrimSpace(p.Language) == "" {
		return ErrLanguageRequired
	}
	return nil
}

// Trim removes surrounding whitespace from all string fields
func (p *Project) Trim() {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.Link = strings.TrimSpace(p.Link)
	p.Category = strings.TrimSpace(p.Category)
	p.Author = strings.TrimSpace(p.Author)
	p.Language = strings.TrimSpace(p.Language)
	for i, tech := range p.Technologies {
		p.Technologies[i] = strings.TrimSpace(tech)
	}
}

// ValidationError indicates a malformed or missing field on user input
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ConflictError indicates a duplicate project name or link
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
