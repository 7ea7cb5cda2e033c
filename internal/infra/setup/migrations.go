package setup

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/necriesa/puso-t-tulong/internal/domain"
)

// MigrateAll 对三个存储分别执行自动迁移。
// 评论跟帖子放在同一个库里，用户和活动各占一个库。
func MigrateAll(postsDB, usersDB, drivesDB *gorm.DB) error {
	if postsDB == nil || usersDB == nil || drivesDB == nil {
		return fmt.Errorf("cannot migrate with nil DB connection")
	}

	if err := postsDB.AutoMigrate(&domain.Post{}, &domain.Comment{}); err != nil {
		return fmt.Errorf("failed to migrate posts store: %w", err)
	}
	if err := usersDB.AutoMigrate(&domain.User{}); err != nil {
		return fmt.Errorf("failed to migrate users store: %w", err)
	}
	if err := drivesDB.AutoMigrate(&domain.Drive{}); err != nil {
		return fmt.Errorf("failed to migrate drives store: %w", err)
	}

	logrus.Info("Database migration completed successfully")
	return nil
}
