package codegen

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/appbuilder-io/appbuilder-backend/internal/apierr"
	"github.com/appbuilder-io/appbuilder-backend/internal/auth"
	"github.com/appbuilder-io/appbuilder-backend/internal/projects/domain"
)

// Generator produces screen code for a prompt. Implemented by Client.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ProjectSaver persists the generated project. Implemented by the projects
// repository.
type ProjectSaver interface {
	Save(ctx context.Context, p *domain.Project) (string, error)
}

type Handler struct {
	gen      Generator
	projects ProjectSaver
}

func NewHandler(gen Generator, projects ProjectSaver) *Handler {
	return &Handler{gen: gen, projects: projects}
}

type generateReq struct {
	Prompt    string `json:"prompt"`
	Framework string `json:"framework"`
}

func (h *Handler) generate(c *gin.Context) {
	var req generateReq
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.Prompt) == "" ||
		req.Framework != "react-native" {
		apierr.Respond(c, apierr.Validationf("Invalid input"))
		return
	}

	userID := auth.UserID(c)
	slog.Debug("generate requested", "user_id", userID, "framework", req.Framework)

	code, err := h.gen.Generate(c.Request.Context(), req.Prompt)
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	// Expo preview is not produced at generation time.
	var expoURL *string

	projectID, err := h.projects.Save(c.Request.Context(), &domain.Project{
		UserID:    userID,
		Prompt:    req.Prompt,
		Code:      code,
		Framework: req.Framework,
		ExpoURL:   expoURL,
	})
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"code":       code,
		"framework":  req.Framework,
		"project_id": projectID,
		"expo_url":   expoURL,
	})
}

// Register attaches the generation route to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/generate", h.generate)
}
