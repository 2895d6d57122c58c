package routers

import (
	"embed"
	"io/fs"
	"net/http"
	"time"

	"github.com/haierkeys/notes-web-client/internal/app"
	"github.com/haierkeys/notes-web-client/internal/middleware"
	"github.com/haierkeys/notes-web-client/internal/routers/web_router"
	"github.com/haierkeys/notes-web-client/pkg/limiter"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

var methodLimiters = limiter.NewMethodLimiter().AddBuckets(
	limiter.BucketRule{
		Key:          "/api/user",
		FillInterval: time.Second,
		Capacity:     10,
		Quantum:      10,
	},
)

func NewRouter(frontendFiles embed.FS, appContainer *app.App, uni *ut.UniversalTranslator) *gin.Engine {

	// 获取配置
	cfg := appContainer.Config()

	frontendAssets, _ := fs.Sub(frontendFiles, "frontend/assets")
	frontendIndexContent, _ := frontendFiles.ReadFile("frontend/index.html")

	serveIndex := func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", frontendIndexContent)
	}

	r := gin.New()

	cacheMiddleware := func(c *gin.Context) {
		// 设置强缓存，缓存一年
		c.Header("Cache-Control", "public, s-maxage=31536000, max-age=31536000, must-revalidate")
		c.Next()
	}

	r.Group("/assets", cacheMiddleware).StaticFS("/", http.FS(frontendAssets))

	// 页面路由：受保护前缀经过路由守卫，仅检查凭证 Cookie 是否存在
	guard := middleware.RouteGuard(middleware.GuardConfig{
		ProtectedPrefixes: cfg.Guard.ProtectedPrefixes,
		RedirectTarget:    cfg.Guard.RedirectTarget,
		CookieName:        cfg.Session.CookieName,
	})
	r.GET("/", guard, serveIndex)
	r.GET("/login", guard, serveIndex)
	r.GET("/home", guard, serveIndex)
	r.GET("/notes", guard, serveIndex)
	r.GET("/notes/:id", guard, serveIndex)
	r.GET("/sharedNotes", guard, serveIndex)
	r.GET("/settings", guard, serveIndex)

	api := r.Group("/api")
	{
		api.Use(middleware.AppInfo(app.Name, appContainer.Version().Version))
		api.Use(gin.Logger())
		api.Use(middleware.TraceMiddleware(cfg.Tracer.Enabled, cfg.Tracer.Header))
		api.Use(middleware.RateLimiter(methodLimiters))
		api.Use(middleware.ContextTimeout(time.Duration(cfg.App.DefaultContextTimeout) * time.Second))
		api.Use(middleware.Cors())
		api.Use(middleware.LangWithTranslator(uni))
		api.Use(middleware.AccessLogWithLogger(appContainer.Logger()))
		api.Use(middleware.RecoveryWithLogger(appContainer.Logger()))

		// 创建 Handlers（注入 App Container）
		handler := web_router.NewHandler(appContainer)

		api.POST("/user/register", handler.Register)
		api.POST("/user/login", handler.Login)

		// 会话状态查询无需认证，未登录时返回 authenticated=false
		api.GET("/user/session", handler.Session)

		// 服务端版本号接口（无需认证）
		api.GET("/version", handler.ServerVersion)

		auth := api.Group("")
		auth.Use(middleware.SessionAuth(appContainer.Session))
		{
			auth.POST("/user/logout", handler.Logout)
			auth.GET("/users", handler.Users)

			auth.GET("/notes", handler.NoteList)
			auth.POST("/notes", handler.NoteCreate)
			auth.GET("/notes/:id", handler.NoteGet)
			auth.PUT("/notes/:id", handler.NoteUpdate)
			auth.DELETE("/notes/:id", handler.NoteDelete)

			auth.GET("/shared-notes", handler.SharedNoteList)
		}
	}

	r.Use(middleware.Cors())
	r.NoRoute(middleware.NoFound())

	return r
}
