package router

import (
	"fmt"
	"strings"

	"github.com/blogicum-next/internal/cache"
	"github.com/blogicum-next/internal/config"
	"github.com/blogicum-next/internal/constants"
	publichandlers "github.com/blogicum-next/internal/http/handlers/public"
	"github.com/blogicum-next/internal/http/response"
	"github.com/blogicum-next/internal/i18n"
	"github.com/blogicum-next/internal/logger"
	"github.com/blogicum-next/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	handler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "blog"
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		MessageKey:    "error.login_too_many",
	}
	optionalAuth := OptionalUserJWTMiddleware(cfg.UserJWT.SecretKey, c.UserAuthService)
	requiredAuth := UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserAuthService)

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 本地存储的配图由 gin 直接提供
	if driver := strings.ToLower(strings.TrimSpace(cfg.Upload.Driver)); driver == "" || driver == constants.UploadDriverLocal {
		prefix := cfg.Upload.PublicPrefix
		if strings.TrimSpace(prefix) == "" {
			prefix = "/uploads"
		}
		dir := cfg.Upload.LocalDir
		if strings.TrimSpace(dir) == "" {
			dir = "./uploads"
		}
		r.Static(prefix, dir)
	}

	apiV1 := r.Group("/api/v1")
	{
		// 读接口：匿名可访问，携带 Token 时识别作者身份
		read := apiV1.Group("", optionalAuth)
		{
			read.GET("/posts", handler.GetPosts)
			read.GET("/posts/:id", handler.GetPost)
			read.GET("/category/:slug", handler.GetCategoryPosts)
			read.GET("/profile/:username", handler.GetProfilePosts)
		}
		apiV1.GET("/categories", handler.GetCategories)
		apiV1.GET("/locations", handler.GetLocations)

		// 用户认证接口
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", handler.UserRegister)
			auth.POST("/login", RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("username")), handler.UserLogin)
		}

		// 写接口（需鉴权）
		user := apiV1.Group("", requiredAuth)
		{
			user.POST("/posts", handler.CreatePost)
			user.PUT("/posts/:id", handler.UpdatePost)
			user.DELETE("/posts/:id", handler.DeletePost)
			user.POST("/posts/:id/comments", handler.CreateComment)
			user.PUT("/posts/:id/comments/:comment_id", handler.UpdateComment)
			user.DELETE("/posts/:id/comments/:comment_id", handler.DeleteComment)
			user.POST("/uploads", handler.UploadImage)
			user.GET("/me", handler.GetCurrentUser)
			user.PUT("/me/profile", handler.UpdateUserProfile)
		}
	}

	r.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, i18n.T(i18n.ResolveLocale(ctx), "error.not_found"))
	})

	return r
}
