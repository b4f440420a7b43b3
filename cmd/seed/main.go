package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/blogicum-next/internal/config"
	"github.com/blogicum-next/internal/logger"
	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/policy"
	"github.com/blogicum-next/internal/provider"
	"github.com/blogicum-next/internal/service"

	"github.com/brianvoe/gofakeit/v6"
)

const seedPassword = "blogicum2024"

func main() {
	var (
		numUsers    int
		numPosts    int
		numComments int
		seed        int64
	)
	flag.IntVar(&numUsers, "users", 5, "生成的用户数量")
	flag.IntVar(&numPosts, "posts", 30, "生成的文章数量")
	flag.IntVar(&numComments, "comments", 60, "生成的评论数量")
	flag.Int64Var(&seed, "seed", 0, "随机种子，0 表示随机")
	flag.Parse()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if numUsers <= 0 {
		stdLog.Fatalf("users 必须大于 0")
	}

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, cfg.Server.Mode, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	gofakeit.Seed(seed)
	container := provider.NewContainer(cfg)
	defer container.Close()

	ctx := context.Background()
	s := &seeder{c: container}
	s.seedCategories(ctx)
	s.seedLocations(ctx)
	s.seedUsers(ctx, numUsers)
	if len(s.users) == 0 {
		stdLog.Fatalf("没有可用的作者，终止填充")
	}
	s.seedPosts(ctx, numPosts)
	s.seedComments(ctx, numComments)

	logger.Infow("seed_done",
		"categories", len(s.categories),
		"locations", len(s.locations),
		"users", len(s.users),
		"posts", len(s.posts),
		"password", seedPassword,
	)
}

type seeder struct {
	c          *provider.Container
	categories []models.Category
	locations  []models.Location
	users      []policy.Viewer
	posts      []uint
}

func (s *seeder) seedCategories(ctx context.Context) {
	// 最后一个分类未发布，用于演示隐藏分类下的文章
	titles := []string{"Путешествия", "Заметки", "Черновики"}
	slugs := []string{"travel", "notes", "drafts"}
	for i := range titles {
		published := i < len(titles)-1
		category, err := s.c.CategoryService.Create(ctx, service.CreateCategoryInput{
			Title:       titles[i],
			Description: gofakeit.Sentence(8),
			Slug:        slugs[i],
			IsPublished: &published,
		})
		if err != nil {
			logger.Warnw("seed_category_failed", "slug", slugs[i], "error", err)
			continue
		}
		s.categories = append(s.categories, *category)
	}
}

func (s *seeder) seedLocations(ctx context.Context) {
	for i := 0; i < 4; i++ {
		location, err := s.c.LocationService.Create(ctx, gofakeit.City(), nil)
		if err != nil {
			logger.Warnw("seed_location_failed", "error", err)
			continue
		}
		s.locations = append(s.locations, *location)
	}
}

func (s *seeder) seedUsers(ctx context.Context, n int) {
	for i := 0; i < n; i++ {
		person := gofakeit.Person()
		username := fmt.Sprintf("%s%d", gofakeit.Username(), i)
		user, _, _, err := s.c.UserAuthService.Register(ctx, service.RegisterInput{
			Username:  username,
			Email:     fmt.Sprintf("%s@example.com", username),
			Password:  seedPassword,
			FirstName: person.FirstName,
			LastName:  person.LastName,
		})
		if err != nil {
			logger.Warnw("seed_user_failed", "username", username, "error", err)
			continue
		}
		s.users = append(s.users, policy.Viewer{UserID: user.ID, Username: user.Username})
	}
}

func (s *seeder) seedPosts(ctx context.Context, n int) {
	now := time.Now().UTC()
	for i := 0; i < n; i++ {
		author := s.users[gofakeit.Number(0, len(s.users)-1)]
		input := service.PostInput{
			Title: gofakeit.Sentence(gofakeit.Number(3, 8)),
			Text:  gofakeit.Paragraph(2, 4, 12, "\n\n"),
		}

		// 约五分之一定时发布，十分之一未发布
		offset := -time.Duration(gofakeit.Number(1, 24*30)) * time.Hour
		if gofakeit.Number(1, 5) == 1 {
			offset = time.Duration(gofakeit.Number(1, 72)) * time.Hour
		}
		pubDate := now.Add(offset)
		input.PubDate = &pubDate
		published := gofakeit.Number(1, 10) != 1
		input.IsPublished = &published

		if len(s.categories) > 0 && gofakeit.Bool() {
			id := s.categories[gofakeit.Number(0, len(s.categories)-1)].ID
			input.CategoryID = &id
		}
		if len(s.locations) > 0 && gofakeit.Bool() {
			id := s.locations[gofakeit.Number(0, len(s.locations)-1)].ID
			input.LocationID = &id
		}

		post, err := s.c.PostService.Create(ctx, input, author)
		if err != nil {
			logger.Warnw("seed_post_failed", "author", author.Username, "error", err)
			continue
		}
		s.posts = append(s.posts, post.ID)
	}
}

func (s *seeder) seedComments(ctx context.Context, n int) {
	if len(s.posts) == 0 {
		return
	}
	for i := 0; i < n; i++ {
		author := s.users[gofakeit.Number(0, len(s.users)-1)]
		postID := s.posts[gofakeit.Number(0, len(s.posts)-1)]
		if _, err := s.c.CommentService.Create(ctx, postID, gofakeit.Sentence(gofakeit.Number(4, 16)), author); err != nil {
			logger.Warnw("seed_comment_failed", "post_id", postID, "error", err)
		}
	}
}
