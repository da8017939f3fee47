package billing

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/appbuilder-io/appbuilder-backend/internal/apierr"
	"github.com/appbuilder-io/appbuilder-backend/internal/auth"
)

// Processor is the payment-processor surface. Implemented by Client.
type Processor interface {
	Initiate(ctx context.Context, email string, amount int64) (json.RawMessage, error)
	Verify(ctx context.Context, reference string) (map[string]interface{}, error)
}

// Ledger is the billing persistence surface. Implemented by Repo.
type Ledger interface {
	Append(ctx context.Context, userID string, data map[string]interface{}) error
	History(ctx context.Context, userID string) ([]map[string]interface{}, error)
}

type Handler struct {
	processor Processor
	ledger    Ledger
}

func NewHandler(processor Processor, ledger Ledger) *Handler {
	return &Handler{processor: processor, ledger: ledger}
}

type initiateReq struct {
	Email  string `json:"email"`
	Amount int64  `json:"amount"`
}

func (h *Handler) initiate(c *gin.Context) {
	var req initiateReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Email) == "" || req.Amount <= 0 {
		apierr.Respond(c, apierr.Validationf("Missing email or amount"))
		return
	}

	raw, err := h.processor.Initiate(c.Request.Context(), req.Email, req.Amount)
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", raw)
}

type verifyReq struct {
	Reference string `json:"reference"`
	UserID    string `json:"user_id"`
}

// Verify is reachable without authentication: the processor redirects the
// user's browser here before a session exists. Verifying the same reference
// twice appends two records.
func (h *Handler) Verify(c *gin.Context) {
	var req verifyReq
	if err := c.ShouldBindJSON(&req); err != nil ||
		strings.TrimSpace(req.Reference) == "" ||
		strings.TrimSpace(req.UserID) == "" {
		apierr.Respond(c, apierr.Validationf("Missing reference or user_id"))
		return
	}

	data, err := h.processor.Verify(c.Request.Context(), req.Reference)
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	if err := h.ledger.Append(c.Request.Context(), req.UserID, data); err != nil {
		apierr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "billing": data})
}

func (h *Handler) history(c *gin.Context) {
	userID := c.Param("user_id")
	if auth.UserID(c) != userID {
		apierr.Respond(c, apierr.Forbidden())
		return
	}

	history, err := h.ledger.History(c.Request.Context(), userID)
	if err != nil {
		apierr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"history": history})
}

// Register attaches the authenticated billing routes. Verify is registered
// separately by the router outside the auth middleware.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/billing/initiate", h.initiate)
	rg.GET("/billing/history/:user_id", h.history)
}
