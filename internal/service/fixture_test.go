package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/blogicum-next/internal/cache"
	"github.com/blogicum-next/internal/clock"
	"github.com/blogicum-next/internal/config"
	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/policy"
	"github.com/blogicum-next/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var fixtureNow = time.Date(2026, 4, 15, 10, 0, 0, 0, time.UTC)

type blogFixture struct {
	db         *gorm.DB
	now        time.Time
	policy     *policy.Policy
	postRepo   *repository.GormPostRepository
	comments   *repository.GormCommentRepository
	userRepo   *repository.GormUserRepository
	catRepo    *repository.GormCategoryRepository
	feeds      *FeedService
	posts      *PostService
	comment    *CommentService
	categories *CategoryService
	locations  *LocationService
	auth       *UserAuthService
}

func newBlogFixture(t *testing.T, pageSize int) *blogFixture {
	t.Helper()
	cache.UseClient(nil, "")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	f := &blogFixture{db: db, now: fixtureNow}
	f.policy = policy.New(clock.Func(func() time.Time { return f.now }))
	f.postRepo = repository.NewPostRepository(db)
	f.comments = repository.NewCommentRepository(db)
	f.userRepo = repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	f.catRepo = categoryRepo
	locationRepo := repository.NewLocationRepository(db)

	f.feeds = NewFeedService(f.postRepo, f.comments, categoryRepo, f.userRepo, f.policy, FeedOptions{
		PageSize:       pageSize,
		RenderMarkdown: true,
	})
	f.posts = NewPostService(f.postRepo, categoryRepo, locationRepo, f.policy, nil)
	f.comment = NewCommentService(f.comments, f.postRepo, f.policy)
	f.categories = NewCategoryService(categoryRepo)
	f.locations = NewLocationService(locationRepo)
	f.auth = NewUserAuthService(&config.Config{
		UserJWT: config.JWTConfig{SecretKey: "test-secret", ExpireHours: 1},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 8, RequireNumber: true},
		},
	}, f.userRepo)
	return f
}

// withFeedCache 让列表服务使用内存 Redis 缓存
func (f *blogFixture) withFeedCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	server := miniredis.RunT(t)
	cache.UseClient(redis.NewClient(&redis.Options{Addr: server.Addr()}), "test")
	t.Cleanup(func() { cache.UseClient(nil, "") })
	f.feeds = NewFeedService(f.postRepo, f.comments, f.catRepo, f.userRepo, f.policy, FeedOptions{
		PageSize:       f.feeds.PageSize(),
		CacheTTL:       time.Minute,
		RenderMarkdown: true,
	})
	return server
}

func (f *blogFixture) user(t *testing.T, username string) policy.Viewer {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "x"}
	if err := f.userRepo.Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s failed: %v", username, err)
	}
	return policy.Viewer{UserID: user.ID, Username: username}
}

func (f *blogFixture) category(t *testing.T, slug string, published bool) *models.Category {
	t.Helper()
	category, err := f.categories.Create(context.Background(), CreateCategoryInput{
		Title:       strings.ToUpper(slug),
		Slug:        slug,
		IsPublished: &published,
	})
	if err != nil {
		t.Fatalf("create category %s failed: %v", slug, err)
	}
	return category
}

type postOption func(*PostInput)

func pubAt(at time.Time) postOption {
	return func(in *PostInput) { in.PubDate = &at }
}

func published(v bool) postOption {
	return func(in *PostInput) { in.IsPublished = &v }
}

func inCategory(c *models.Category) postOption {
	return func(in *PostInput) { in.CategoryID = &c.ID }
}

func (f *blogFixture) post(t *testing.T, author policy.Viewer, title string, opts ...postOption) *models.Post {
	t.Helper()
	input := PostInput{Title: title, Text: "text of " + title}
	for _, opt := range opts {
		opt(&input)
	}
	post, err := f.posts.Create(context.Background(), input, author)
	if err != nil {
		t.Fatalf("create post %s failed: %v", title, err)
	}
	return post
}

func (f *blogFixture) commentOn(t *testing.T, postID uint, author policy.Viewer, text string) *models.Comment {
	t.Helper()
	comment, err := f.comment.Create(context.Background(), postID, text, author)
	if err != nil {
		t.Fatalf("create comment failed: %v", err)
	}
	return comment
}

func pageIDs(page PostPage) []uint {
	ids := make([]uint, 0, len(page.Items))
	for _, post := range page.Items {
		ids = append(ids, post.ID)
	}
	return ids
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
