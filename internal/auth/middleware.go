package auth

import (
	"context"
	"strings"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/appbuilder-io/appbuilder-backend/internal/apierr"
)

// Verifier validates a raw ID token and returns the decoded token.
// *firebase.google.com/go/v4/auth.Client satisfies this.
type Verifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*fbauth.Token, error)
}

// RequireUser validates the Authorization header on every request and stores
// the authenticated UID plus the full claim set in the request context.
func RequireUser(verifier Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			apierr.Respond(c, apierr.Authf("Missing or invalid Authorization header"))
			c.Abort()
			return
		}

		decoded, err := verifier.VerifyIDToken(c.Request.Context(), token)
		if err != nil {
			apierr.Respond(c, apierr.Authf("Invalid or expired token").WithDetails(err.Error()))
			c.Abort()
			return
		}

		c.Set(CtxUserID, decoded.UID)
		c.Set(CtxClaims, decoded.Claims)

		c.Next()
	}
}

// extractToken extracts the Bearer token from the Authorization header.
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.HasPrefix(bearerToken, "Bearer ") {
		return bearerToken[7:]
	}
	return ""
}
