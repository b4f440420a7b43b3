package service

import (
	"context"
	"strings"

	"github.com/blogicum-next/internal/logger"
	"github.com/blogicum-next/internal/models"
	"github.com/blogicum-next/internal/policy"
	"github.com/blogicum-next/internal/repository"
)

// CommentService 评论写操作服务
type CommentService struct {
	repo     repository.CommentRepository
	postRepo repository.PostRepository
	policy   *policy.Policy
}

// NewCommentService 创建评论服务
func NewCommentService(repo repository.CommentRepository, postRepo repository.PostRepository, pol *policy.Policy) *CommentService {
	return &CommentService{repo: repo, postRepo: postRepo, policy: pol}
}

// Create 发表评论，只要求文章存在，不检查文章对评论者是否可读
func (s *CommentService) Create(ctx context.Context, postID uint, text string, viewer policy.Viewer) (*models.Comment, error) {
	if !viewer.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrNotFound
	}
	text, err = normalizeCommentText(text)
	if err != nil {
		return nil, err
	}

	comment := models.Comment{
		Text:     text,
		PostID:   post.ID,
		AuthorID: viewer.UserID,
	}
	if err := s.repo.Create(ctx, &comment); err != nil {
		return nil, err
	}
	logger.Infow("comment_created", "comment_id", comment.ID, "post_id", post.ID, "author_id", viewer.UserID)
	invalidateFeeds(ctx, "comment_created")
	return s.reload(ctx, comment.ID)
}

// Update 修改评论，非作者返回 ErrForbidden
func (s *CommentService) Update(ctx context.Context, postID, commentID uint, text string, viewer policy.Viewer) (*models.Comment, error) {
	comment, err := s.loadEditable(ctx, postID, commentID, viewer)
	if err != nil {
		return nil, err
	}
	text, err = normalizeCommentText(text)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateText(ctx, comment.ID, text); err != nil {
		return nil, err
	}
	logger.Infow("comment_updated", "comment_id", comment.ID, "post_id", comment.PostID, "author_id", comment.AuthorID)
	return s.reload(ctx, comment.ID)
}

// Delete 删除评论，非作者返回 ErrForbidden
func (s *CommentService) Delete(ctx context.Context, postID, commentID uint, viewer policy.Viewer) error {
	comment, err := s.loadEditable(ctx, postID, commentID, viewer)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, comment.ID); err != nil {
		return err
	}
	logger.Infow("comment_deleted", "comment_id", comment.ID, "post_id", comment.PostID, "author_id", comment.AuthorID)
	invalidateFeeds(ctx, "comment_deleted")
	return nil
}

// loadEditable 评论必须属于路径中的文章
func (s *CommentService) loadEditable(ctx context.Context, postID, commentID uint, viewer policy.Viewer) (*models.Comment, error) {
	if !viewer.IsAuthenticated() {
		return nil, ErrUnauthenticated
	}
	comment, err := s.repo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil || comment.PostID != postID {
		return nil, ErrNotFound
	}
	if !s.policy.IsEditable(comment.AuthorID, viewer) {
		return nil, ErrForbidden
	}
	return comment, nil
}

func (s *CommentService) reload(ctx context.Context, id uint) (*models.Comment, error) {
	comment, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrNotFound
	}
	return comment, nil
}

func normalizeCommentText(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrCommentTextRequired
	}
	return text, nil
}
