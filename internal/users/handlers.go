package users

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/appbuilder-io/appbuilder-backend/internal/apierr"
	"github.com/appbuilder-io/appbuilder-backend/internal/auth"
)

// Profiles is the persistence surface the handlers need. Implemented by Repo.
type Profiles interface {
	GetProfile(ctx context.Context, userID string) (map[string]interface{}, error)
	UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) error
	DeleteUserAndProjects(ctx context.Context, userID string) error
}

type Handler struct {
	profiles Profiles
}

func NewHandler(profiles Profiles) *Handler {
	return &Handler{profiles: profiles}
}

func (h *Handler) get(c *gin.Context) {
	userID := c.Param("user_id")
	if auth.UserID(c) != userID {
		apierr.Respond(c, apierr.Forbidden())
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		apierr.Respond(c, err)
		return
	}
	if profile == nil {
		// No profile yet is not an error for the frontend.
		c.JSON(http.StatusOK, gin.H{})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *Handler) update(c *gin.Context) {
	userID := c.Param("user_id")
	if auth.UserID(c) != userID {
		apierr.Respond(c, apierr.Forbidden())
		return
	}

	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil || len(updates) == 0 {
		apierr.Respond(c, apierr.Validationf("Invalid input"))
		return
	}

	if err := h.profiles.UpdateProfile(c.Request.Context(), userID, updates); err != nil {
		apierr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) delete(c *gin.Context) {
	userID := c.Param("user_id")
	if auth.UserID(c) != userID {
		apierr.Respond(c, apierr.Forbidden())
		return
	}

	if err := h.profiles.DeleteUserAndProjects(c.Request.Context(), userID); err != nil {
		apierr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Register attaches user profile routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("/user/:user_id", h.get)
	rg.PUT("/user/:user_id", h.update)
	rg.DELETE("/user/:user_id", h.delete)
}
