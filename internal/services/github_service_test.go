package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractRepoRef(t *testing.T) {
	testCases := []struct {
		name    string
		url     string
		owner   string
		repo    string
		matched bool
	}{
		{
			name:    "plain https url",
			url:     "https://github.com/acme/widget",
			owner:   "acme",
			repo:    "widget",
			matched: true,
		},
		{
			name:    "trailing .git is stripped",
			url:     "https://github.com/acme/widget.git",
			owner:   "acme",
			repo:    "widget",
			matched: true,
		},
		{
			name:    "trailing slash",
			url:     "https://github.com/acme/widget/",
			owner:   "acme",
			repo:    "widget",
			matched: true,
		},
		{
			name:    "sub-path beyond owner and repo",
			url:     "https://github.com/acme/widget/tree/main/docs",
			owner:   "acme",
			repo:    "widget",
			matched: true,
		},
		{
			name:    "query string",
			url:     "https://github.com/acme/widget?tab=readme-ov-file",
			owner:   "acme",
			repo:    "widget",
			matched: true,
		},
		{
			name:    "no scheme",
			url:     "github.com/acme/widget",
			owner:   "acme",
			repo:    "widget",
			matched: true,
		},
		{
			name:    "not a github url",
			url:     "https://gitlab.com/acme/widget",
			matched: false,
		},
		{
			name:    "missing repo segment",
			url:     "https://github.com/acme",
			matched: false,
		},
		{
			name:    "empty string",
			url:     "",
			matched: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ref, ok := ExtractRepoRef(tc.url)
			assert.Equal(t, tc.matched, ok)
			if tc.matched {
				assert.Equal(t, tc.owner, ref.Owner)
				assert.Equal(t, tc.repo, ref.Repo)
			} else {
				assert.Equal(t, RepoRef{}, ref)
			}
		})
	}
}

func TestExtractRepoRefIdempotent(t *testing.T) {
	first, ok1 := ExtractRepoRef("https://github.com/acme/widget.git")
	second, ok2 := ExtractRepoRef("https://github.com/acme/widget.git")

	assert.True(t, ok1)
	assert.True(t, ok2)
	assert.Equal(t, first, second)
}

// newTestGitHubService points a GitHubService at a local test server
func newTestGitHubService(t *testing.T, handler http.Handler) *GitHubService {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s := NewGitHubService("", time.Second)
	baseURL, err := url.Parse(srv.URL + "/")
	require.NoError(t, err)
	s.client.BaseURL = baseURL
	return s
}

func TestFetchRepositorySuccess(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widget", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"name": "widget",
			"description": "A widget maker",
			"html_url": "https://github.com/acme/widget",
			"stargazers_count": 42,
			"forks_count": 7,
			"language": "Go",
			"owner": {"login": "acme", "avatar_url": "https://example.com/a.png"},
			"created_at": "2020-01-02T15:04:05Z",
			"updated_at": "2024-06-01T10:00:00Z"
		}`)
	})
	mux.HandleFunc("/repos/acme/widget/topics", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"names": ["cli", "productivity"]}`)
	})

	s := newTestGitHubService(t, mux)

	metadata, err := s.FetchRepository(context.Background(), RepoRef{Owner: "acme", Repo: "widget"})
	require.NoError(t, err)

	assert.Equal(t, "widget", metadata.Name)
	assert.Equal(t, "A widget maker", metadata.Description)
	assert.Equal(t, "https://github.com/acme/widget", metadata.HTMLURL)
	assert.Equal(t, 42, metadata.Stars)
	assert.Equal(t, 7, metadata.Forks)
	assert.Equal(t, "Go", metadata.Language)
	assert.Equal(t, []string{"cli", "productivity"}, metadata.Topics)
	assert.Equal(t, "acme", metadata.Author)
	assert.Equal(t, "https://example.com/a.png", metadata.AvatarURL)
	assert.Equal(t, 2020, metadata.CreatedAt.Year())
}

func TestFetchRepositoryTopicsFailureIsBestEffort(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widget", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"name": "widget", "stargazers_count": 1, "owner": {"login": "acme"}}`)
	})
	mux.HandleFunc("/repos/acme/widget/topics", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "boom"}`, http.StatusInternalServerError)
	})

	s := newTestGitHubService(t, mux)

	metadata, err := s.FetchRepository(context.Background(), RepoRef{Owner: "acme", Repo: "widget"})
	require.NoError(t, err)
	assert.Empty(t, metadata.Topics)
	assert.Equal(t, "widget", metadata.Name)
}

func TestFetchRepositoryNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/ghost", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Not Found"}`, http.StatusNotFound)
	})

	s := newTestGitHubService(t, mux)

	_, err := s.FetchRepository(context.Background(), RepoRef{Owner: "acme", Repo: "ghost"})
	assert.ErrorIs(t, err, ErrRepoNotFound)
}

func TestFetchRepositoryRemoteErrorKeepsStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widget", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "server error"}`, http.StatusBadGateway)
	})

	s := newTestGitHubService(t, mux)

	_, err := s.FetchRepository(context.Background(), RepoRef{Owner: "acme", Repo: "widget"})

	var remoteErr *RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, http.StatusBadGateway, remoteErr.StatusCode)
	assert.NotErrorIs(t, err, ErrRepoNotFound)
}

func TestFetchRepositorySendsClientMarker(t *testing.T) {
	var userAgentSeen string
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/acme/widget", func(w http.ResponseWriter, r *http.Request) {
		userAgentSeen = r.Header.Get("User-Agent")
		fmt.Fprint(w, `{"name": "widget", "owner": {"login": "acme"}}`)
	})
	mux.HandleFunc("/repos/acme/widget/topics", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"names": []}`)
	})

	s := newTestGitHubService(t, mux)

	_, err := s.FetchRepository(context.Background(), RepoRef{Owner: "acme", Repo: "widget"})
	require.NoError(t, err)
	assert.Equal(t, userAgent, userAgentSeen)
}
