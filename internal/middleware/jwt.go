package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/mtodo/internal/pkg/jwt"
	"github.com/xxxsen/mtodo/internal/pkg/response"
)

const (
	ContextUserIDKey    = "user_id"
	ContextUserEmailKey = "user_email"
)

// TokenVerifier decodes a bearer token into its claims.
type TokenVerifier interface {
	Verify(token string) (*jwt.Claims, error)
}

// JWTAuth rejects the request with 401 unless it carries a valid bearer
// token. All failure causes produce the same response.
func JWTAuth(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := jwt.FromAuthorizationHeader(c.GetHeader("Authorization"))
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		claims, err := verifier.Verify(token)
		if err != nil {
			logutil.GetLogger(c.Request.Context()).Debug("token rejected", zap.Error(err))
			response.Abort(c, http.StatusUnauthorized, "unauthorized")
			return
		}
		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextUserEmailKey, claims.Email)
		c.Next()
	}
}
