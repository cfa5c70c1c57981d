package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-user-group-api/internal/core/auth"
	"go-user-group-api/internal/transport/http/handler"
	mdw "go-user-group-api/internal/transport/http/middleware"
)

func NewAPIEngine(
	l *zap.Logger,
	jwter *auth.JWTer,
	users *handler.UserHandler,
	groups *handler.GroupHandler,
	login *handler.LoginHandler,
) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	// 公开路由：登录 + 建号（没有 token 之前总得能注册）
	api.POST("/login", login.CheckLogin)
	api.POST("/users", users.Create)

	// 其余都在 Bearer 闸门之后
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(jwter))

	authed.GET("/users", users.Search)
	authed.GET("/users/:id", users.GetByID)
	authed.PUT("/users/:id", users.Update)
	authed.DELETE("/users/:id", users.Delete)

	authed.POST("/groups", groups.Create)
	authed.GET("/groups/:id", groups.GetByID)
	authed.PUT("/groups/:id", groups.Update)
	authed.PATCH("/groups/:id", groups.AddUsers)
	authed.DELETE("/groups/:id", groups.Delete)

	return r
}
