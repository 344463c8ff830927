package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Docteur-Parfait/os228/internal/services"
	"github.com/gin-gonic/gin"
)

type GitHubHandler struct {
	projectService     *services.ProjectService
	contributorService *services.ContributorService
}

func NewGitHubHandler(projectService *services.ProjectService, contributorService *services.ContributorService) *GitHubHandler {
	return &GitHubHandler{
		projectService:     projectService,
		contributorService: contributorService,
	}
}

// Preview fetches and formats metadata for a single repository URL without
// touching storage.
func (h *GitHubHandler) Preview(c *gin.Context) {
	rawURL := c.Query("url")
	if rawURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "GitHub repository URL is required",
		})
		return
	}

	preview, err := h.projectService.Preview(c.Request.Context(), rawURL)
	if err != nil {
		var remoteErr *services.RemoteError
		switch {
		case errors.Is(err, services.ErrInvalidRepoURL):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid GitHub URL"})
		case errors.Is(err, services.ErrRepoNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "GitHub repository not found"})
		case errors.As(err, &remoteErr):
			c.JSON(remoteErr.StatusCode, gin.H{"error": "Failed to fetch GitHub data"})
		default:
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch GitHub data"})
		}
		return
	}

	c.JSON(http.StatusOK, preview)
}

// Sync runs the batch synchronization over all persisted projects. Individual
// record failures are reported in the errors list; only a storage fault makes
// the whole call fail.
func (h *GitHubHandler) Sync(c *gin.Context) {
	summary, err := h.projectService.SyncAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Internal server error",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"message":      fmt.Sprintf("Sync finished. %d projects processed.", summary.Total),
		"errors":       summary.Errors,
		"updatedCount": summary.Total,
	})
}

// SyncUsage documents the sync endpoint for GET requests
func (h *GitHubHandler) SyncUsage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":  "Use POST to synchronize projects with GitHub",
		"endpoint": "/api/sync-github",
		"method":   "POST",
	})
}

// Contributors returns the platform contributor list, falling back to the
// bundled dataset when the GitHub API is unavailable.
func (h *GitHubHandler) Contributors(c *gin.Context) {
	contributors, fallback := h.contributorService.List(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"contributors": contributors,
		"fallback":     fallback,
	})
}
