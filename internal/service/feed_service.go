package service

import (
	"context"
	"time"

	"github.com/blogicum-next/internal/cache"
	"github.com/blogicum-next/internal/logger"
	"github.com/blogicum-next/internal/markdown"
	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/policy"
	"github.com/blogicum-next/internal/repository"
)

const defaultPageSize = 10

// LastPage 页码占位，表示最后一页
const LastPage = -1

// FeedOptions 列表服务配置
type FeedOptions struct {
	PageSize       int
	CacheTTL       time.Duration
	RenderMarkdown bool
}

// PostPage 一页文章
type PostPage struct {
	Items      []models.Post `json:"items"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	Total      int64         `json:"total"`
	TotalPages int           `json:"total_pages"`
}

// PostDetail 文章详情
type PostDetail struct {
	Post     *models.Post     `json:"post"`
	TextHTML string           `json:"text_html,omitempty"`
	Comments []models.Comment `json:"comments"`
	CanEdit  bool             `json:"can_edit"`
}

// FeedService 文章列表与详情服务
type FeedService struct {
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
	categoryRepo repository.CategoryRepository
	userRepo     repository.UserRepository
	policy       *policy.Policy
	opts         FeedOptions
}

// NewFeedService 创建列表服务
func NewFeedService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	categoryRepo repository.CategoryRepository,
	userRepo repository.UserRepository,
	pol *policy.Policy,
	opts FeedOptions,
) *FeedService {
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	return &FeedService{
		postRepo:     postRepo,
		commentRepo:  commentRepo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
		policy:       pol,
		opts:         opts,
	}
}

// PageSize 每页数量
func (s *FeedService) PageSize() int {
	return s.opts.PageSize
}

// ListHome 首页：所有公开文章，作者豁免不生效
func (s *FeedService) ListHome(ctx context.Context, page int) (PostPage, error) {
	return s.cachedPage(ctx, func(generation int64) string {
		return cache.HomeFeedKey(generation, page)
	}, page, repository.PostListFilter{
		Visibility: s.policy.PublicFilter(),
	})
}

// ListCategory 分类页：分类必须已发布，仅返回公开文章
func (s *FeedService) ListCategory(ctx context.Context, slug string, page int) (*models.Category, PostPage, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, PostPage{}, err
	}
	if !s.policy.IsCategoryBrowsable(category) {
		return nil, PostPage{}, ErrNotFound
	}
	result, err := s.cachedPage(ctx, func(generation int64) string {
		return cache.CategoryFeedKey(generation, category.Slug, page)
	}, page, repository.PostListFilter{
		CategoryID: category.ID,
		Visibility: s.policy.PublicFilter(),
	})
	if err != nil {
		return nil, PostPage{}, err
	}
	return category, result, nil
}

// ListProfile 个人主页：本人可见全部文章，其他人仅见公开文章
func (s *FeedService) ListProfile(ctx context.Context, username string, viewer policy.Viewer, page int) (*models.User, PostPage, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, PostPage{}, err
	}
	if user == nil {
		return nil, PostPage{}, ErrNotFound
	}
	result, err := s.listPage(ctx, page, repository.PostListFilter{
		AuthorID:   user.ID,
		Visibility: s.policy.ProfileFilter(user.ID, viewer),
	})
	if err != nil {
		return nil, PostPage{}, err
	}
	return user, result, nil
}

// GetPostDetail 文章详情，不可读时与不存在一致返回 ErrNotFound
func (s *FeedService) GetPostDetail(ctx context.Context, id uint, viewer policy.Viewer) (*PostDetail, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.policy.IsReadable(post, viewer) {
		return nil, ErrNotFound
	}
	comments, err := s.commentRepo.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	if comments == nil {
		comments = []models.Comment{}
	}
	detail := &PostDetail{
		Post:     post,
		Comments: comments,
		CanEdit:  s.policy.IsEditable(post.AuthorID, viewer),
	}
	if s.opts.RenderMarkdown {
		html, err := markdown.ToHTML(post.Text)
		if err != nil {
			logger.Warnw("post_markdown_render_failed", "post_id", post.ID, "error", err)
		} else {
			detail.TextHTML = html
		}
	}
	return detail, nil
}

// cachedPage 公开列表走缓存，缓存异常时回源查询。
// 缓存代数在查库前读取，查询期间的失效会使本次写入的键作废。
func (s *FeedService) cachedPage(ctx context.Context, keyFor func(generation int64) string, page int, filter repository.PostListFilter) (PostPage, error) {
	if s.opts.CacheTTL <= 0 || !cache.Enabled() {
		return s.listPage(ctx, page, filter)
	}
	generation, err := cache.FeedGeneration(ctx)
	if err != nil {
		logger.Warnw("feed_cache_generation_failed", "error", err)
		return s.listPage(ctx, page, filter)
	}
	key := keyFor(generation)

	var cached PostPage
	hit, err := cache.GetFeed(ctx, key, s.opts.CacheTTL, &cached)
	if err != nil {
		logger.Warnw("feed_cache_get_failed", "key", key, "error", err)
	}
	if hit {
		return cached, nil
	}
	result, err := s.listPage(ctx, page, filter)
	if err != nil {
		return PostPage{}, err
	}
	if err := cache.SetFeed(ctx, key, s.opts.CacheTTL, result); err != nil {
		logger.Warnw("feed_cache_set_failed", "key", key, "error", err)
	}
	return result, nil
}

// listPage 查询一页，页码超出范围返回 ErrPageNotFound，第 1 页允许为空
func (s *FeedService) listPage(ctx context.Context, page int, filter repository.PostListFilter) (PostPage, error) {
	if page == LastPage {
		total, err := s.postRepo.Count(ctx, filter)
		if err != nil {
			return PostPage{}, err
		}
		page = repository.PageCount(total, s.opts.PageSize)
	}
	if page < 1 {
		return PostPage{}, ErrPageNotFound
	}
	filter.Page = page
	filter.PageSize = s.opts.PageSize
	posts, total, err := s.postRepo.List(ctx, filter)
	if err != nil {
		return PostPage{}, err
	}
	totalPages := repository.PageCount(total, s.opts.PageSize)
	if page > totalPages {
		return PostPage{}, ErrPageNotFound
	}
	if posts == nil {
		posts = []models.Post{}
	}
	return PostPage{
		Items:      posts,
		Page:       page,
		PageSize:   s.opts.PageSize,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}
