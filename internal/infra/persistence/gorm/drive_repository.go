package gormpersistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/necriesa/puso-t-tulong/internal/domain"
)

// GormDriveRepository 是 DriveRepository 接口的 GORM 实现，持有活动库的连接。
type GormDriveRepository struct {
	db *gorm.DB
}

// NewGormDriveRepository 创建 GormDriveRepository 实例
func NewGormDriveRepository(db *gorm.DB) *GormDriveRepository {
	if db == nil {
		panic("database connection cannot be nil for GormDriveRepository")
	}
	return &GormDriveRepository{db: db}
}

// Save 实现持久化一条新活动公告
func (r *GormDriveRepository) Save(ctx context.Context, drive *domain.Drive) error {
	if err := r.db.WithContext(ctx).Create(drive).Error; err != nil {
		return fmt.Errorf("gorm: save drive (name: %s): %w", drive.Name, err)
	}
	return nil
}

// List 实现按创建时间正序返回全部活动公告
func (r *GormDriveRepository) List(ctx context.Context) ([]domain.Drive, error) {
	var drives []domain.Drive
	err := r.db.WithContext(ctx).Order("created_at asc").Find(&drives).Error
	if err != nil {
		return nil, fmt.Errorf("gorm: list drives: %w", err)
	}
	return drives, nil
}
