package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"fittrack-api/internal/core/auth"
	"fittrack-api/internal/service"
	mdw "fittrack-api/internal/transport/http/middleware"
)

// Deps 路由层需要的全部服务
type Deps struct {
	Users         *service.UserService
	Events        *service.EventService
	Registrations *service.RegistrationService
	Workouts      *service.WorkoutService
	JWTer         *auth.JWTer
}

func NewAPIEngine(l *zap.Logger, d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		mdw.SimpleRecovery(),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	// 健康检查 + 指标
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 前缀
	api := r.Group("/api/v1")

	// 鉴权分组（需要 Bearer 令牌才能拿到 userId）
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(d.JWTer, ""))

	mountAuth(api, authed, d)
	mountEvents(api, authed, d)
	mountWorkouts(authed, d)
	mountUsers(authed, d)

	return r
}
