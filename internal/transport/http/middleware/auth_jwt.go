package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-user-group-api/internal/core/auth"
	resp "go-user-group-api/internal/transport/http/response"
)

// AuthJWT 入站请求闸门：无有效 Bearer token 的请求在进入核心前被拒掉
func AuthJWT(j *auth.JWTer) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, resp.Error(resp.CodeForbidden, "invalid token"))
			return
		}
		c.Set("claims", claims)
		c.Set("login", claims.Login)
		c.Next()
	}
}
