package provider

import (
	"context"
	"time"

	"github.com/blogicum-next/internal/cache"
	"github.com/blogicum-next/internal/clock"
	"github.com/blogicum-next/internal/config"
	"github.com/blogicum-next/internal/logger"
	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/policy"
	"github.com/blogicum-next/internal/queue"
	"github.com/blogicum-next/internal/repository"
	"github.com/blogicum-next/internal/service"
	"github.com/blogicum-next/internal/storage"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client
	Storage     storage.Storage
	Policy      *policy.Policy

	// Repositories
	UserRepo     repository.UserRepository
	PostRepo     repository.PostRepository
	CommentRepo  repository.CommentRepository
	CategoryRepo repository.CategoryRepository
	LocationRepo repository.LocationRepository

	// Services
	UserAuthService *service.UserAuthService
	FeedService     *service.FeedService
	PostService     *service.PostService
	CommentService  *service.CommentService
	CategoryService *service.CategoryService
	LocationService *service.LocationService
	UploadService   *service.UploadService
}

// NewContainer 初始化容器，使用全局数据库连接与系统时钟
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	// 初始化对象存储，失败时上传接口返回存储不可用
	store, err := storage.New(context.Background(), cfg.Upload, cfg.Minio)
	if err != nil {
		logger.Errorw("provider_init_storage_failed", "driver", cfg.Upload.Driver, "error", err)
	}

	return Build(cfg, models.DB, clock.System{}, queueClient, store)
}

// Build 按给定依赖组装容器
func Build(cfg *config.Config, db *gorm.DB, clk clock.Clock, queueClient *queue.Client, store storage.Storage) *Container {
	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
		Storage:     store,
		Policy:      policy.New(clk),
	}

	// 1. 初始化 Repositories
	c.initRepositories(db)

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.UserRepo = repository.NewUserRepository(db)
	c.PostRepo = repository.NewPostRepository(db)
	c.CommentRepo = repository.NewCommentRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.LocationRepo = repository.NewLocationRepository(db)
}

func (c *Container) initServices() {
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo)
	c.FeedService = service.NewFeedService(c.PostRepo, c.CommentRepo, c.CategoryRepo, c.UserRepo, c.Policy, service.FeedOptions{
		PageSize:       c.Config.Blog.PageSize,
		CacheTTL:       time.Duration(c.Config.Blog.FeedCacheTTLSeconds) * time.Second,
		RenderMarkdown: c.Config.Blog.Markdown,
	})
	c.PostService = service.NewPostService(c.PostRepo, c.CategoryRepo, c.LocationRepo, c.Policy, c.QueueClient)
	c.CommentService = service.NewCommentService(c.CommentRepo, c.PostRepo, c.Policy)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.LocationService = service.NewLocationService(c.LocationRepo)
	c.UploadService = service.NewUploadService(c.Config.Upload, c.Storage)
}

// Close 释放队列与缓存连接
func (c *Container) Close() {
	if c == nil {
		return
	}
	if err := c.QueueClient.Close(); err != nil {
		logger.Warnw("provider_close_queue_client_failed", "error", err)
	}
	if err := cache.Close(); err != nil {
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
}
