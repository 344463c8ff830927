package handlers

import (
	"net/http"
	"strconv"

	"github.com/Docteur-Parfait/os228/internal/models"
	"github.com/Docteur-Parfait/os228/internal/services"
	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	favoriteService *services.FavoriteService
}

func NewFavoriteHandler(favoriteService *services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
	}
}

// ListFavorites returns all saved favorites, newest first
func (h *FavoriteHandler) ListFavorites(c *gin.Context) {
	favorites, err := h.favoriteService.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load favorites",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

// AddFavorite saves a project to the favorites list
func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	var input models.Project
	if err := c.ShouldBindJSON(&input); err != nil || input.ID <= 0 || input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "A project with id and name is required",
		})
		return
	}

	favorite, created, err := h.favoriteService.Add(&input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to save favorite",
		})
		return
	}

	if !created {
		c.JSON(http.StatusOK, gin.H{
			"message": "Project is already in favorites",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Project added to favorites",
		"favorite": favorite,
	})
}

// RemoveFavorite drops a project from the favorites list
func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	projectID, err := strconv.Atoi(c.Param("project_id"))
	if err != nil || projectID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid project id",
		})
		return
	}

	if err := h.favoriteService.Remove(projectID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to remove favorite",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project removed from favorites",
	})
}
