package repository

import (
	"context"

	"github.com/necriesa/puso-t-tulong/internal/domain"
)

// UserRepository 定义了用户数据的存储和检索操作。
// 用户存放在独立的用户库里，与帖子库和活动库互不相干。
type UserRepository interface {
	// FindByUsername 根据用户名查找用户。
	// 用户不存在时返回 repository.ErrUserNotFound。
	FindByUsername(ctx context.Context, username string) (*domain.User, error)

	// FindByID 根据用户 ID 查找用户。
	// 用户不存在时返回 repository.ErrUserNotFound。
	FindByID(ctx context.Context, id uint) (*domain.User, error)

	// Save 持久化一个新用户，并回填数据库生成的 ID 和时间戳。
	// 用户名撞上唯一索引时返回 repository.ErrDuplicateEntry。
	Save(ctx context.Context, user *domain.User) error
}
