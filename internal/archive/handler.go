package archive

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/appbuilder-io/appbuilder-backend/internal/apierr"
)

const defaultProjectName = "AppBuilderProject"

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

type downloadReq struct {
	Code        string `json:"code"`
	ProjectName string `json:"project_name"`
}

func (h *Handler) download(c *gin.Context) {
	var req downloadReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Code) == "" {
		apierr.Respond(c, apierr.Validationf("Missing code"))
		return
	}

	name := req.ProjectName
	if name == "" {
		name = defaultProjectName
	}

	zipPath, err := Build(req.Code, name)
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	c.FileAttachment(zipPath, name+".zip")
}

// Register attaches the download route to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/download", h.download)
}
