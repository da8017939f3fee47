package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/appbuilder-io/appbuilder-backend/internal/apierr"
	"github.com/appbuilder-io/appbuilder-backend/internal/auth"
	"github.com/appbuilder-io/appbuilder-backend/internal/projects/domain"
)

type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) saveProject(c *gin.Context) {
	var req saveProjectReq
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.Prompt) == "" ||
		strings.TrimSpace(req.Code) == "" ||
		strings.TrimSpace(req.Framework) == "" {
		apierr.Respond(c, apierr.Validationf("Invalid input"))
		return
	}

	userID := auth.UserID(c)
	p := &domain.Project{
		UserID:    userID,
		Prompt:    req.Prompt,
		Code:      req.Code,
		Framework: req.Framework,
		ExpoURL:   req.ExpoURL,
	}

	projectID, err := h.store.Save(c.Request.Context(), p)
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"project_id": projectID})
}

func (h *Handler) list(c *gin.Context) {
	userID := c.Param("user_id")
	if auth.UserID(c) != userID {
		apierr.Respond(c, apierr.Forbidden())
		return
	}

	projects, err := h.store.ListByUser(c.Request.Context(), userID)
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// detail serves GET/PUT/DELETE for a single project. Existence is checked
// before ownership so a missing project is a 404 and a foreign one a 403.
func (h *Handler) detail(c *gin.Context) {
	projectID := c.Param("project_id")

	project, err := h.store.Get(c.Request.Context(), projectID)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	if project.UserID != auth.UserID(c) {
		apierr.Respond(c, apierr.Forbidden())
		return
	}

	switch c.Request.Method {
	case http.MethodGet:
		c.JSON(http.StatusOK, project)

	case http.MethodPut:
		var updates map[string]interface{}
		if err := c.ShouldBindJSON(&updates); err != nil || len(updates) == 0 {
			apierr.Respond(c, apierr.Validationf("Invalid input"))
			return
		}
		if err := h.store.Update(c.Request.Context(), projectID, updates); err != nil {
			apierr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})

	case http.MethodDelete:
		if err := h.store.Delete(c.Request.Context(), projectID); err != nil {
			apierr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func (h *Handler) preview(c *gin.Context) {
	projectID := c.Param("project_id")

	project, err := h.store.Get(c.Request.Context(), projectID)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	if project.UserID != auth.UserID(c) {
		apierr.Respond(c, apierr.Forbidden())
		return
	}
	if project.ExpoURL == nil || *project.ExpoURL == "" {
		apierr.Respond(c, apierr.NotFoundf("Preview not available"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"expo_url": project.ExpoURL})
}
