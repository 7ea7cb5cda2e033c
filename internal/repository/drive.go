package repository

import (
	"context"

	"github.com/necriesa/puso-t-tulong/internal/domain"
)

// DriveRepository 定义了募捐活动公告的存储与查询。
type DriveRepository interface {
	// Save 持久化一条新活动公告，并回填 ID 和创建时间。
	Save(ctx context.Context, drive *domain.Drive) error

	// List 按创建时间正序返回全部活动公告。
	List(ctx context.Context) ([]domain.Drive, error)
}
