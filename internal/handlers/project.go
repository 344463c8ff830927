package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Docteur-Parfait/os228/internal/models"
	"github.com/Docteur-Parfait/os228/internal/services"
	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectService *services.ProjectService
	exportService  *services.ExportService
}

func NewProjectHandler(projectService *services.ProjectService, exportService *services.ExportService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		exportService:  exportService,
	}
}

// ListProjects returns the persisted project set, optionally filtered and
// sorted. With enrich=true each project carries live GitHub stats.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	search := c.Query("search")
	sortBy := c.DefaultQuery("sort", "id")

	projects, err := h.projectService.List(search, sortBy)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load projects",
		})
		return
	}

	if c.Query("enrich") == "true" {
		c.JSON(http.StatusOK, h.projectService.EnrichStats(c.Request.Context(), projects))
		return
	}

	c.JSON(http.StatusOK, projects)
}

// CreateProject handles submission of a new project
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var input models.Project
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid project data. Please check all fields.",
		})
		return
	}

	project, err := h.projectService.Create(&input)
	if err != nil {
		var validationErr *models.ValidationError
		var conflictErr *models.ConflictError
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
		case errors.As(err, &conflictErr):
			c.JSON(http.StatusConflict, gin.H{"error": conflictErr.Message})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error. Please try again.",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Project added successfully!",
		"project": project,
	})
}

// ExportProjects streams the project list as an Excel workbook
func (h *ProjectHandler) ExportProjects(c *gin.Context) {
	projects, err := h.projectService.List("", "id")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load projects",
		})
		return
	}

	workbook, err := h.exportService.BuildWorkbook(projects)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to build export",
		})
		return
	}

	filename := fmt.Sprintf("projects-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := workbook.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
	}
}
