package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/save_project", h.saveProject)
	rg.GET("/projects/:user_id", h.list)
	rg.GET("/project/:project_id", h.detail)
	rg.PUT("/project/:project_id", h.detail)
	rg.DELETE("/project/:project_id", h.detail)
	rg.GET("/preview/:project_id", h.preview)
}
