package gormpersistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/necriesa/puso-t-tulong/internal/domain"
	"github.com/necriesa/puso-t-tulong/internal/repository"
)

// GormPostRepository 是 PostRepository 接口的 GORM 实现。
// 帖子和评论共用帖子库的同一个连接。
type GormPostRepository struct {
	db *gorm.DB
}

// NewGormPostRepository 创建 GormPostRepository 实例
func NewGormPostRepository(db *gorm.DB) *GormPostRepository {
	if db == nil {
		panic("database connection cannot be nil for GormPostRepository")
	}
	return &GormPostRepository{db: db}
}

// Save 实现持久化一条新帖子
func (r *GormPostRepository) Save(ctx context.Context, post *domain.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return fmt.Errorf("gorm: save post (author: %s): %w", post.Author, err)
	}
	return nil
}

// FindByID 实现根据帖子 ID 查找
func (r *GormPostRepository) FindByID(ctx context.Context, id uint) (*domain.Post, error) {
	var post domain.Post
	err := r.db.WithContext(ctx).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPostNotFound
		}
		return nil, fmt.Errorf("gorm: find post by id %d: %w", id, err)
	}
	return &post, nil
}

// ListByDate 实现按创建时间列出所有帖子。
// 各个迭代在这里正序倒序不一，顺序由调用方显式指定。
func (r *GormPostRepository) ListByDate(ctx context.Context, newestFirst bool) ([]domain.Post, error) {
	order := "created_at asc"
	if newestFirst {
		order = "created_at desc"
	}
	var posts []domain.Post
	err := r.db.WithContext(ctx).Order(order).Find(&posts).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list posts (%s): %w", order, err)
	}
	return posts, nil
}

// SaveComment 实现持久化一条新评论
func (r *GormPostRepository) SaveComment(ctx context.Context, comment *domain.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("gorm: save comment (post %d): %w", comment.PostID, err)
	}
	return nil
}

// CommentsByPostID 实现按创建时间正序返回帖子下的评论
func (r *GormPostRepository) CommentsByPostID(ctx context.Context, postID uint) ([]domain.Comment, error) {
	var comments []domain.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at asc").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list comments for post %d: %w", postID, err)
	}
	return comments, nil
}
