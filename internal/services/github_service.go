package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/Docteur-Parfait/os228/internal/models"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// userAgent is the client marker sent with every outbound GitHub request
const userAgent = "OS228-Platform"

var githubRepoPattern = regexp.MustCompile(`github\.com/([^/]+)/([^/?#\s]+)`)

// ErrRepoNotFound indicates the repository does not exist at GitHub
var ErrRepoNotFound = errors.New("github repository not found")

// RemoteError indicates GitHub rejected or errored the request. It is
// distinguishable from a not-found by status code.
type RemoteError struct {
	StatusCode int
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("github api error: status %d", e.StatusCode)
}

// RepoRef identifies a repository by owner and name
type RepoRef struct {
	Owner string
	Repo  string
}

func (r RepoRef) String() string {
	return r.Owner + "/" + r.Repo
}

// ExtractRepoRef locates the owner/repo pair in a loosely-formatted GitHub
// URL. Sub-paths, trailing slashes and query strings beyond the first two
// path segments are ignored, and a trailing ".git" is stripped. The second
// return value is false when the string does not contain the pattern.
func ExtractRepoRef(rawURL string) (RepoRef, bool) {
	match := githubRepoPattern.FindStringSubmatch(rawURL)
	if match == nil {
		return RepoRef{}, false
	}
	return RepoRef{
		Owner: match[1],
		Repo:  strings.TrimSuffix(match[2], ".git"),
	}, true
}

// RepoMetadata is the transient snapshot fetched from GitHub for one
// repository. It is merged into a project record or discarded.
type RepoMetadata struct {
	Name        string
	Description string
	HTMLURL     string
	Stars       int
	Forks       int
	Language    string
	Topics      []string
	Author      string
	AvatarURL   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// GitHubService fetches repository metadata from the GitHub API
type GitHubService struct {
	client *github.Client
}

// NewGitHubService creates a GitHub client. When token is non-empty all
// requests are authenticated with it, which raises the rate limit.
func NewGitHubService(token string, timeout time.Duration) *GitHubService {
	httpClient := &http.Client{}
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}
	httpClient.Timeout = timeout

	client := github.NewClient(httpClient)
	client.UserAgent = userAgent

	return &GitHubService{
		client: client,
	}
}

// FetchRepository retrieves the primary repository attributes plus its topic
// tags. The topics call is best-effort: when it fails the snapshot carries an
// empty topic list. A 404 on the primary call yields ErrRepoNotFound, any
// other HTTP rejection yields a *RemoteError, and transport failures are
// returned wrapped.
func (s *GitHubService) FetchRepository(ctx context.Context, ref RepoRef) (*RepoMetadata, error) {
	repo, _, err := s.client.Repositories.Get(ctx, ref.Owner, ref.Repo)
	if err != nil {
		return nil, classifyError(err)
	}

	// Topic support is an additive API feature; failure here falls back
	// to an empty tag list instead of failing the whole fetch.
	topics, _, err := s.client.Repositories.ListAllTopics(ctx, ref.Owner, ref.Repo)
	if err != nil {
		topics = []string{}
	}

	metadata := &RepoMetadata{
		Name:        repo.GetName(),
		Description: repo.GetDescription(),
		HTMLURL:     repo.GetHTMLURL(),
		Stars:       repo.GetStargazersCount(),
		Forks:       repo.GetForksCount(),
		Language:    repo.GetLanguage(),
		Topics:      topics,
		Author:      repo.GetOwner().GetLogin(),
		AvatarURL:   repo.GetOwner().GetAvatarURL(),
		CreatedAt:   repo.GetCreatedAt().Time,
		UpdatedAt:   repo.GetUpdatedAt().Time,
	}

	return metadata, nil
}

// FetchContributors retrieves the contributor list for a repository
func (s *GitHubService) FetchContributors(ctx context.Context, ref RepoRef) ([]models.Contributor, error) {
	opts := &github.ListContributorsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	contributors, _, err := s.client.Repositories.ListContributors(ctx, ref.Owner, ref.Repo, opts)
	if err != nil {
		return nil, classifyError(err)
	}

	result := make([]models.Contributor, 0, len(contributors))
	for _, c := range contributors {
		result = append(result, models.Contributor{
			ID:            c.GetID(),
			Login:         c.GetLogin(),
			AvatarURL:     c.GetAvatarURL(),
			HTMLURL:       c.GetHTMLURL(),
			Contributions: c.GetContributions(),
		})
	}
	return result, nil
}

// classifyError maps go-github errors onto the fetch outcome taxonomy
func classifyError(err error) error {
	var rateLimitErr *github.RateLimitError
	if errors.As(err, &rateLimitErr) {
		return &RemoteError{StatusCode: http.StatusForbidden}
	}

	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) {
		return &RemoteError{StatusCode: http.StatusForbidden}
	}

	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		if errResp.Response.StatusCode == http.StatusNotFound {
			return ErrRepoNotFound
		}
		return &RemoteError{StatusCode: errResp.Response.StatusCode}
	}

	return fmt.Errorf("github request failed: %w", err)
}
