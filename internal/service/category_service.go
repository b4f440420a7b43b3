package service

import (
	"context"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/blogicum-next/internal/constants"
	"github.com/blogicum-next/internal/logger"
	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/repository"
)

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// CategoryService 分类业务服务
type CategoryService struct {
	repo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(repo repository.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

// CreateCategoryInput 创建分类输入
type CreateCategoryInput struct {
	Title       string
	Description string
	Slug        string
	IsPublished *bool
}

// ListPublished 已发布分类，供发文时选择
func (s *CategoryService) ListPublished(ctx context.Context) ([]models.Category, error) {
	return s.repo.List(ctx, repository.CategoryListFilter{OnlyPublished: true})
}

// Create 创建分类，默认发布
func (s *CategoryService) Create(ctx context.Context, input CreateCategoryInput) (*models.Category, error) {
	title := strings.TrimSpace(input.Title)
	slug := strings.TrimSpace(input.Slug)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if utf8.RuneCountInString(title) > constants.CategoryTitleMaxLength {
		return nil, ErrTitleTooLong
	}
	if !ValidSlug(slug) {
		return nil, ErrInvalidSlug
	}
	count, err := s.repo.CountBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrSlugExists
	}

	category := models.Category{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		Slug:        slug,
		IsPublished: true,
	}
	if input.IsPublished != nil {
		category.IsPublished = *input.IsPublished
	}
	if err := s.repo.Create(ctx, &category); err != nil {
		return nil, err
	}
	invalidateFeeds(ctx, "category_created")
	return &category, nil
}

// Delete 删除分类，文章保留且分类置空
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	category, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, category.ID); err != nil {
		return err
	}
	logger.Infow("category_deleted", "category_id", category.ID, "slug", category.Slug)
	invalidateFeeds(ctx, "category_deleted")
	return nil
}

// ValidSlug 仅允许字母、数字、连字符和下划线
func ValidSlug(slug string) bool {
	return len(slug) <= constants.SlugMaxLength && slugPattern.MatchString(slug)
}

// LocationService 地点业务服务
type LocationService struct {
	repo repository.LocationRepository
}

// NewLocationService 创建地点服务
func NewLocationService(repo repository.LocationRepository) *LocationService {
	return &LocationService{repo: repo}
}

// ListPublished 已发布地点
func (s *LocationService) ListPublished(ctx context.Context) ([]models.Location, error) {
	return s.repo.List(ctx, repository.LocationListFilter{OnlyPublished: true})
}

// Create 创建地点，默认发布
func (s *LocationService) Create(ctx context.Context, name string, isPublished *bool) (*models.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if utf8.RuneCountInString(name) > constants.LocationNameMaxLength {
		return nil, ErrTitleTooLong
	}
	location := models.Location{Name: name, IsPublished: true}
	if isPublished != nil {
		location.IsPublished = *isPublished
	}
	if err := s.repo.Create(ctx, &location); err != nil {
		return nil, err
	}
	return &location, nil
}

// Delete 删除地点，文章保留且地点置空
func (s *LocationService) Delete(ctx context.Context, id uint) error {
	location, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if location == nil {
		return ErrNotFound
	}
	if err := s.repo.Delete(ctx, location.ID); err != nil {
		return err
	}
	logger.Infow("location_deleted", "location_id", location.ID)
	invalidateFeeds(ctx, "location_deleted")
	return nil
}
