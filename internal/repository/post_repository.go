package repository

import (
	"context"
	"errors"

	"github.com/blogicum-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// postUpdatableColumns 作者字段不在其中，创建后不可修改
var postUpdatableColumns = []string{
	"title",
	"text",
	"pub_date",
	"image",
	"is_published",
	"location_id",
	"category_id",
	"updated_at",
}

// PostRepository 文章数据访问接口
type PostRepository interface {
	List(ctx context.Context, filter PostListFilter) ([]models.Post, int64, error)
	Count(ctx context.Context, filter PostListFilter) (int64, error)
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	Create(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	CountComments(ctx context.Context, postIDs []uint) (map[uint]int64, error)
}

// GormPostRepository GORM 实现
type GormPostRepository struct {
	db *gorm.DB
}

// NewPostRepository 创建文章仓库
func NewPostRepository(db *gorm.DB) *GormPostRepository {
	return &GormPostRepository{db: db}
}

// applyVisibility 公开可见：已发布、发布时间已到、分类为空或已发布
func applyVisibility(db, query *gorm.DB, filter VisibilityFilter) *gorm.DB {
	if !filter.PublicOnly {
		return query
	}
	publishedCategories := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Category{}).
		Select("id").
		Where("is_published = ?", true)
	return query.
		Where("posts.is_published = ?", true).
		Where("posts.pub_date <= ?", filter.Now).
		Where("(posts.category_id IS NULL OR posts.category_id IN (?))", publishedCategories)
}

func (r *GormPostRepository) filtered(ctx context.Context, filter PostListFilter) *gorm.DB {
	db := r.db.WithContext(ctx)
	query := db.Model(&models.Post{})
	if filter.AuthorID != 0 {
		query = query.Where("posts.author_id = ?", filter.AuthorID)
	}
	if filter.CategoryID != 0 {
		query = query.Where("posts.category_id = ?", filter.CategoryID)
	}
	return applyVisibility(db, query, filter.Visibility)
}

// Count 统计满足过滤条件的文章数，忽略分页参数
func (r *GormPostRepository) Count(ctx context.Context, filter PostListFilter) (int64, error) {
	var total int64
	if err := r.filtered(ctx, filter).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// List 文章列表，按发布时间倒序
func (r *GormPostRepository) List(ctx context.Context, filter PostListFilter) ([]models.Post, int64, error) {
	query := r.filtered(ctx, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	query = applyPagination(query, filter.Page, filter.PageSize)
	if err := preloadPostRelations(query).
		Order("posts.pub_date DESC").
		Order("posts.id DESC").
		Find(&posts).Error; err != nil {
		return nil, 0, err
	}
	if err := r.fillCommentCounts(ctx, posts); err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// GetByID 根据 ID 获取文章，不做可见性过滤
func (r *GormPostRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := preloadPostRelations(r.db.WithContext(ctx)).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	counts, err := r.CountComments(ctx, []uint{post.ID})
	if err != nil {
		return nil, err
	}
	post.CommentCount = counts[post.ID]
	return &post, nil
}

// Create 创建文章
func (r *GormPostRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(post).Error
}

// Update 更新文章可编辑字段
func (r *GormPostRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).
		Model(&models.Post{ID: post.ID}).
		Select(postUpdatableColumns).
		Updates(post).Error
}

// Delete 删除文章及其全部评论
func (r *GormPostRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}

// CountComments 批量统计文章评论数
func (r *GormPostRepository) CountComments(ctx context.Context, postIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		PostID uint
		Total  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.PostID] = row.Total
	}
	return counts, nil
}

func (r *GormPostRepository) fillCommentCounts(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]uint, 0, len(posts))
	for _, post := range posts {
		ids = append(ids, post.ID)
	}
	counts, err := r.CountComments(ctx, ids)
	if err != nil {
		return err
	}
	for i := range posts {
		posts[i].CommentCount = counts[posts[i].ID]
	}
	return nil
}

func preloadPostRelations(query *gorm.DB) *gorm.DB {
	return query.Preload("Author").Preload("Category").Preload("Location")
}
