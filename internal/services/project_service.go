package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Docteur-Parfait/os228/internal/models"
	"github.com/Docteur-Parfait/os228/internal/repositories"
	"github.com/Docteur-Parfait/os228/pkg/cache"
	"github.com/Docteur-Parfait/os228/pkg/logger"
)

// ErrInvalidRepoURL indicates a URL without a recognizable owner/repo pair
var ErrInvalidRepoURL = errors.New("invalid GitHub repository URL")

// maxTechnologies caps the technologies derived from remote data:
// the primary language plus up to four topic tags.
const maxTechnologies = 5

// RepoFetcher retrieves repository metadata from the remote source
type RepoFetcher interface {
	FetchRepository(ctx context.Context, ref RepoRef) (*RepoMetadata, error)
}

// SyncSummary reports the outcome of one batch sync
type SyncSummary struct {
	Total   int
	Updated int
	Errors  []string
}

// GitHubStats is the display-path projection of live star/fork counts
type GitHubStats struct {
	Stars       int    `json:"stars"`
	Forks       int    `json:"forks"`
	LastUpdated string `json:"lastUpdated"`
}

// EnrichedProject is a disposable read-path copy of a project carrying live
// stats. It is never written back to storage.
type EnrichedProject struct {
	*models.Project
	GitHubStats *GitHubStats `json:"githubStats,omitempty"`
}

// RepoPreview is the formatted response for a single-repository lookup
type RepoPreview struct {
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Link         string    `json:"link"`
	Technologies []string  `json:"technologies"`
	Category     string    `json:"category"`
	Author       string    `json:"author"`
	Stars        int       `json:"stars"`
	Forks        int       `json:"forks"`
	Language     string    `json:"language"`
	AvatarURL    string    `json:"avatar_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ProjectService is the single owner of the create and sync pipelines.
// All call sites share its parse/fetch/categorize/merge sequence.
type ProjectService struct {
	projectRepo  *repositories.ProjectRepository
	fetcher      RepoFetcher
	cache        *cache.Cache
	requestDelay time.Duration
	cacheTTL     time.Duration
	failureTTL   time.Duration
}

func NewProjectService(
	projectRepo *repositories.ProjectRepository,
	fetcher RepoFetcher,
	store *cache.Cache,
	requestDelay time.Duration,
	cacheTTL time.Duration,
	failureTTL time.Duration,
) *ProjectService {
	return &ProjectService{
		projectRepo:  projectRepo,
		fetcher:      fetcher,
		cache:        store,
		requestDelay: requestDelay,
		cacheTTL:     cacheTTL,
		failureTTL:   failureTTL,
	}
}

// List retrieves the persisted project set, optionally filtered by a search
// term (matched against name, description and technologies) and ordered by
// "name", "stars" or "id" (newest first, the default).
func (s *ProjectService) List(search, sortBy string) ([]*models.Project, error) {
	projects, err := s.projectRepo.Load()
	if err != nil {
		return nil, err
	}

	if search != "" {
		query := strings.ToLower(search)
		filtered := make([]*models.Project, 0, len(projects))
		for _, p := range projects {
			if matchesQuery(p, query) {
				filtered = append(filtered, p)
			}
		}
		projects = filtered
	}

	switch sortBy {
	case "name":
		sort.Slice(projects, func(i, j int) bool {
			return strings.ToLower(projects[i].Name) < strings.ToLower(projects[j].Name)
		})
	case "stars":
		sort.Slice(projects, func(i, j int) bool {
			return projects[i].Stars > projects[j].Stars
		})
	default:
		sort.Slice(projects, func(i, j int) bool {
			return projects[i].ID > projects[j].ID
		})
	}

	return projects, nil
}

func matchesQuery(p *models.Project, query string) bool {
	if strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Description), query) {
		return true
	}
	for _, tech := range p.Technologies {
		if strings.Contains(strings.ToLower(tech), query) {
			return true
		}
	}
	return false
}

// Create validates a candidate project, rejects duplicates, assigns the next
// id and persists the full set. The id is max existing + 1; gaps left by the
// past are never refilled.
func (s *ProjectService) Create(project *models.Project) (*models.Project, error) {
	if err := project.Validate(); err != nil {
		return nil, err
	}

	existing := s.projectRepo.LoadOrEmpty()

	for _, p := range existing {
		if strings.EqualFold(p.Name, project.Name) || p.Link == project.Link {
			return nil, &models.ConflictError{
				Message: "A project with this name or GitHub link already exists",
			}
		}
	}

	maxID := 0
	for _, p := range existing {
		if p.ID > maxID {
			maxID = p.ID
		}
	}

	project.Trim()
	project.ID = maxID + 1

	existing = append(existing, project)

	// Newest first is the storage order, not just a view concern
	sort.Slice(existing, func(i, j int) bool {
		return existing[i].ID > existing[j].ID
	})

	if err := s.projectRepo.Save(existing); err != nil {
		return nil, err
	}

	return project, nil
}

// SyncAll refreshes every persisted record from GitHub. Records whose link
// cannot be parsed or whose fetch fails are kept unchanged and reported as
// diagnostics; the batch itself only fails on a storage read or write error.
// A fixed delay separates consecutive remote calls.
func (s *ProjectService) SyncAll(ctx context.Context) (*SyncSummary, error) {
	projects, err := s.projectRepo.Load()
	if err != nil {
		return nil, err
	}

	summary := &SyncSummary{
		Total:  len(projects),
		Errors: []string{},
	}

	updated := make([]*models.Project, 0, len(projects))
	fetches := 0

	for _, project := range projects {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		ref, ok := ExtractRepoRef(project.Link)
		if !ok {
			logger.Warnf("Invalid GitHub URL for project %s: %s", project.Name, project.Link)
			summary.Errors = append(summary.Errors,
				fmt.Sprintf("invalid GitHub URL for %s: %s", project.Name, project.Link))
			updated = append(updated, project)
			continue
		}

		if fetches > 0 {
			time.Sleep(s.requestDelay)
		}
		fetches++

		metadata, err := s.fetcher.FetchRepository(ctx, ref)
		if err != nil {
			summary.Errors = append(summary.Errors, syncDiagnostic(project, err))
			updated = append(updated, project)
			continue
		}

		updated = append(updated, mergeMetadata(project, metadata))
		summary.Updated++
	}

	if err := s.projectRepo.Save(updated); err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"total":    summary.Total,
		"updated":  summary.Updated,
		"failures": len(summary.Errors),
	}).Info("GitHub sync finished")

	return summary, nil
}

// syncDiagnostic renders a per-record failure message, keeping not-found
// distinguishable from other remote failures.
func syncDiagnostic(project *models.Project, err error) string {
	var remoteErr *RemoteError
	switch {
	case errors.Is(err, ErrRepoNotFound):
		return fmt.Sprintf("GitHub repository not found for %s: %s", project.Name, project.Link)
	case errors.As(err, &remoteErr):
		return fmt.Sprintf("GitHub API error for %s: status %d", project.Name, remoteErr.StatusCode)
	default:
		return fmt.Sprintf("failed to fetch %s: %v", project.Name, err)
	}
}

// mergeMetadata applies a fetched snapshot to a copy of the record.
// The id and link are never altered by sync.
func mergeMetadata(project *models.Project, metadata *RepoMetadata) *models.Project {
	merged := *project

	merged.Name = metadata.Name
	if metadata.Description != "" {
		merged.Description = metadata.Description
	}
	merged.Stars = metadata.Stars
	merged.Forks = metadata.Forks
	if metadata.Language != "" {
		merged.Language = metadata.Language
	}
	merged.AvatarURL = metadata.AvatarURL
	merged.Author = metadata.Author
	merged.Category = Categorize(metadata.Language, metadata.Topics)

	if technologies := buildTechnologies(metadata.Language, metadata.Topics); len(technologies) > 0 {
		merged.Technologies = technologies
	}

	return &merged
}

// buildTechnologies derives the display technologies from remote data:
// primary language plus the first four topics, empty entries removed.
func buildTechnologies(language string, topics []string) []string {
	technologies := make([]string, 0, maxTechnologies)
	if language != "" {
		technologies = append(technologies, language)
	}
	for _, topic := range topics {
		if len(technologies) >= maxTechnologies {
			break
		}
		if topic != "" {
			technologies = append(technologies, topic)
		}
	}
	return technologies
}

// failureKey derives the failure-marker key for a cache key. The prefix
// keeps markers in a namespace no success key can reach, so repository
// names can never alias a marker.
func failureKey(key string) string {
	return "fail:" + key
}

// Preview fetches and formats a single repository without persisting
// anything. Results and failures are cached under distinct keys so repeated
// lookups within a session do not hammer the API.
func (s *ProjectService) Preview(ctx context.Context, rawURL string) (*RepoPreview, error) {
	ref, ok := ExtractRepoRef(rawURL)
	if !ok {
		return nil, ErrInvalidRepoURL
	}

	cacheKey := fmt.Sprintf("github-preview:%s/%s", ref.Owner, ref.Repo)
	if cached, ok := s.cache.Get(cacheKey); ok {
		if preview, ok := cached.(*RepoPreview); ok {
			return preview, nil
		}
	}
	if cached, ok := s.cache.Get(failureKey(cacheKey)); ok {
		if cachedErr, ok := cached.(error); ok {
			return nil, cachedErr
		}
	}

	metadata, err := s.fetcher.FetchRepository(ctx, ref)
	if err != nil {
		s.cache.Set(failureKey(cacheKey), err, s.failureTTL)
		return nil, err
	}

	preview := &RepoPreview{
		Name:         metadata.Name,
		Description:  metadata.Description,
		Link:         metadata.HTMLURL,
		Technologies: buildTechnologies(metadata.Language, metadata.Topics),
		Category:     Categorize(metadata.Language, metadata.Topics),
		Author:       metadata.Author,
		Stars:        metadata.Stars,
		Forks:        metadata.Forks,
		Language:     metadata.Language,
		AvatarURL:    metadata.AvatarURL,
		CreatedAt:    metadata.CreatedAt,
		UpdatedAt:    metadata.UpdatedAt,
	}
	if preview.Description == "" {
		preview.Description = "No description available"
	}
	if preview.Language == "" {
		preview.Language = "Other"
	}

	s.cache.Set(cacheKey, preview, s.cacheTTL)
	return preview, nil
}

// EnrichStats decorates projects with live star/fork counts for display.
// Fetches are memoized per repository; failures are memoized separately with
// a shorter TTL and fall back to the record-embedded stats when present.
// The persisted set is never modified by this path.
func (s *ProjectService) EnrichStats(ctx context.Context, projects []*models.Project) []*EnrichedProject {
	enriched := make([]*EnrichedProject, 0, len(projects))

	for _, project := range projects {
		enriched = append(enriched, &EnrichedProject{
			Project:     project,
			GitHubStats: s.liveStats(ctx, project),
		})
	}

	return enriched
}

func (s *ProjectService) liveStats(ctx context.Context, project *models.Project) *GitHubStats {
	ref, ok := ExtractRepoRef(project.Link)
	if !ok {
		return fallbackStats(project)
	}

	cacheKey := fmt.Sprintf("github-stats:%s/%s", ref.Owner, ref.Repo)
	if cached, ok := s.cache.Get(cacheKey); ok {
		if stats, ok := cached.(*GitHubStats); ok {
			return stats
		}
	}
	if _, failed := s.cache.Get(failureKey(cacheKey)); failed {
		return fallbackStats(project)
	}

	metadata, err := s.fetcher.FetchRepository(ctx, ref)
	if err != nil {
		logger.WithError(err).Warnf("Could not fetch stats for %s", ref)
		s.cache.Set(failureKey(cacheKey), true, s.failureTTL)
		return fallbackStats(project)
	}

	stats := &GitHubStats{
		Stars:       metadata.Stars,
		Forks:       metadata.Forks,
		LastUpdated: metadata.UpdatedAt.Format(time.RFC3339),
	}
	s.cache.Set(cacheKey, stats, s.cacheTTL)
	return stats
}

func fallbackStats(project *models.Project) *GitHubStats {
	if project.FallbackStats == nil {
		return nil
	}
	return &GitHubStats{
		Stars:       project.FallbackStats.Stars,
		Forks:       project.FallbackStats.Forks,
		LastUpdated: time.Now().Format(time.RFC3339),
	}
}
