package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxUserID = "firebase_uid"
	CtxClaims = "firebase_claims"
)

// UserID returns the authenticated Firebase UID set by RequireUser.
func UserID(c *gin.Context) string {
	return strings.TrimSpace(c.GetString(CtxUserID))
}

// Claims returns the full decoded claim set for the current request, or nil
// when the request was not authenticated.
func Claims(c *gin.Context) map[string]interface{} {
	v, ok := c.Get(CtxClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(map[string]interface{})
	return claims
}
