package repository

import (
	"context"

	"github.com/necriesa/puso-t-tulong/internal/domain"
)

// PostRepository 定义了帖子和评论的存储与查询。
// 评论和帖子共用同一个数据库文件，post_id 只在这个存储内部有意义。
type PostRepository interface {
	// Save 持久化一条新帖子，并回填 ID 和创建时间。
	Save(ctx context.Context, post *domain.Post) error

	// FindByID 根据帖子 ID 查找。不存在时返回 repository.ErrPostNotFound。
	FindByID(ctx context.Context, id uint) (*domain.Post, error)

	// ListByDate 按创建时间列出所有帖子。
	// newestFirst 为 true 时按时间倒序（论坛首页），否则按时间正序。
	ListByDate(ctx context.Context, newestFirst bool) ([]domain.Post, error)

	// SaveComment 持久化一条新评论。
	// 调用方负责先确认帖子存在；存储层不做跨表检查。
	SaveComment(ctx context.Context, comment *domain.Comment) error

	// CommentsByPostID 按创建时间正序返回指定帖子下的全部评论。
	CommentsByPostID(ctx context.Context, postID uint) ([]domain.Comment, error)
}
