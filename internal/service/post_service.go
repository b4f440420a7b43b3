package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/blogicum-next/internal/constants"
	"github.com/blogicum-next/internal/logger"
	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/policy"
	"github.com/blogicum-next/internal/queue"
	"github.com/blogicum-next/internal/repository"
)

var pubDateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// PostService 文章写操作服务
type PostService struct {
	repo         repository.PostRepository
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
	policy       *policy.Policy
	queueClient  *queue.Client
}

// NewPostService 创建文章服务
func NewPostService(
	repo repository.PostRepository,
	categoryRepo repository.CategoryRepository,
	locationRepo repository.LocationRepository,
	pol *policy.Policy,
	queueClient *queue.Client,
) *PostService {
	return &PostService{
		repo:         repo,
		categoryRepo: categoryRepo,
		locationRepo: locationRepo,
		policy:       pol,
		queueClient:  queueClient,
	}
}

// PostInput 创建/更新文章输入
// 更新时 PubDate、IsPublished 为空表示保持原值，其余字段整体替换
// RawPubDate 在 PubDate 为空时于校验阶段解析
type PostInput struct {
	Title       string
	Text        string
	PubDate     *time.Time
	RawPubDate  string
	Image       string
	IsPublished *bool
	CategoryID  *uint
	LocationID  *uint
}

// ParsePubDate 解析发布时间，空字符串返回 nil，无时区按 UTC 处理
func ParsePubDate(raw string) (*time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, nil
	}
	for _, layout := range pubDateLayouts {
		if parsed, err := time.ParseInLocation(layout, trimmed, time.UTC); err == nil {
			utc := parsed.UTC()
			return &utc, nil
		}
	}
	return nil, ErrInvalidPubDate
}

// Create 创建文章，作者为当前访问者，发布时间默认为当前时间
func (s *PostService) Create(ctx context.Context, input PostInput, viewer policy.Viewer) (*models.Post, error) {
	if !viewer.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	if err := s.validate(ctx, &input); err != nil {
		return nil, err
	}

	now := s.policy.Now()
	post := models.Post{
		Title:       input.Title,
		Text:        input.Text,
		PubDate:     now,
		Image:       input.Image,
		IsPublished: true,
		AuthorID:    viewer.UserID,
		CategoryID:  input.CategoryID,
		LocationID:  input.LocationID,
	}
	if input.PubDate != nil {
		post.PubDate = input.PubDate.UTC()
	}
	if input.IsPublished != nil {
		post.IsPublished = *input.IsPublished
	}
	if err := s.repo.Create(ctx, &post); err != nil {
		return nil, err
	}
	logger.Infow("post_created", "post_id", post.ID, "author_id", post.AuthorID, "pub_date", post.PubDate)

	invalidateFeeds(ctx, "post_created")
	scheduleFeedInvalidate(s.queueClient, post.ID, post.PubDate, now)
	return s.reload(ctx, post.ID)
}

// Update 更新文章，非作者返回 RedirectError
func (s *PostService) Update(ctx context.Context, id uint, input PostInput, viewer policy.Viewer) (*models.Post, error) {
	post, err := s.loadEditable(ctx, id, viewer)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, &input); err != nil {
		return nil, err
	}

	post.Title = input.Title
	post.Text = input.Text
	post.Image = input.Image
	post.CategoryID = input.CategoryID
	post.LocationID = input.LocationID
	if input.PubDate != nil {
		post.PubDate = input.PubDate.UTC()
	}
	if input.IsPublished != nil {
		post.IsPublished = *input.IsPublished
	}
	if err := s.repo.Update(ctx, post); err != nil {
		return nil, err
	}
	logger.Infow("post_updated", "post_id", post.ID, "author_id", post.AuthorID)

	invalidateFeeds(ctx, "post_updated")
	scheduleFeedInvalidate(s.queueClient, post.ID, post.PubDate, s.policy.Now())
	return s.reload(ctx, post.ID)
}

// Delete 删除文章及其评论，非作者返回 RedirectError
func (s *PostService) Delete(ctx context.Context, id uint, viewer policy.Viewer) error {
	post, err := s.loadEditable(ctx, id, viewer)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, post.ID); err != nil {
		return err
	}
	logger.Infow("post_deleted", "post_id", post.ID, "author_id", post.AuthorID)
	invalidateFeeds(ctx, "post_deleted")
	return nil
}

// loadEditable 加载文章并校验作者，返回的即是鉴权时使用的那一行
func (s *PostService) loadEditable(ctx context.Context, id uint, viewer policy.Viewer) (*models.Post, error) {
	if !viewer.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	if !s.policy.IsEditable(post.AuthorID, viewer) {
		return nil, &RedirectError{PostID: post.ID}
	}
	return post, nil
}

func (s *PostService) validate(ctx context.Context, input *PostInput) error {
	input.Title = strings.TrimSpace(input.Title)
	input.Image = strings.TrimSpace(input.Image)
	if input.Title == "" {
		return ErrTitleRequired
	}
	if utf8.RuneCountInString(input.Title) > constants.PostTitleMaxLength {
		return ErrTitleTooLong
	}
	if strings.TrimSpace(input.Text) == "" {
		return ErrTextRequired
	}
	if input.PubDate == nil {
		parsed, err := ParsePubDate(input.RawPubDate)
		if err != nil {
			return err
		}
		input.PubDate = parsed
	}
	if input.CategoryID != nil {
		category, err := s.categoryRepo.GetByID(ctx, *input.CategoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return ErrCategoryInvalid
		}
	}
	if input.LocationID != nil {
		location, err := s.locationRepo.GetByID(ctx, *input.LocationID)
		if err != nil {
			return err
		}
		if location == nil {
			return ErrLocationInvalid
		}
	}
	return nil
}

func (s *PostService) reload(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return post, nil
}
