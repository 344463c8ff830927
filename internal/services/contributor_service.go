package services

import (
	"context"
	"time"

	"github.com/Docteur-Parfait/os228/internal/models"
	"github.com/Docteur-Parfait/os228/pkg/cache"
	"github.com/Docteur-Parfait/os228/pkg/logger"
)

const contributorsCacheKey = "platform-contributors"

// ContributorService serves the contributor list of the platform repository.
// When the GitHub API is unavailable it answers with an injected fallback
// dataset instead of failing.
type ContributorService struct {
	githubService *GitHubService
	cache         *cache.Cache
	platform      RepoRef
	fallback      []models.Contributor
	cacheTTL      time.Duration
	failureTTL    time.Duration
}

func NewContributorService(
	githubService *GitHubService,
	store *cache.Cache,
	platform RepoRef,
	fallback []models.Contributor,
	cacheTTL time.Duration,
	failureTTL time.Duration,
) *ContributorService {
	return &ContributorService{
		githubService: githubService,
		cache:         store,
		platform:      platform,
		fallback:      fallback,
		cacheTTL:      cacheTTL,
		failureTTL:    failureTTL,
	}
}

// List returns the platform contributors. The second return value reports
// whether the fallback dataset was used.
func (s *ContributorService) List(ctx context.Context) ([]models.Contributor, bool) {
	if cached, ok := s.cache.Get(contributorsCacheKey); ok {
		if contributors, ok := cached.([]models.Contributor); ok {
			return contributors, false
		}
	}
	if _, failed := s.cache.Get(failureKey(contributorsCacheKey)); failed {
		return s.fallback, true
	}

	contributors, err := s.githubService.FetchContributors(ctx, s.platform)
	if err != nil {
		logger.WithError(err).Warnf("Could not fetch contributors for %s, using fallback", s.platform)
		s.cache.Set(failureKey(contributorsCacheKey), true, s.failureTTL)
		return s.fallback, true
	}

	s.cache.Set(contributorsCacheKey, contributors, s.cacheTTL)
	return contributors, false
}
