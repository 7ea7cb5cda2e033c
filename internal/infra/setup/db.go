// Package setup 负责打开三个 SQLite 存储并执行模式迁移。
package setup

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenDB 打开一个 SQLite 数据库文件并返回 GORM 连接。
// 帖子库、用户库和活动库各自调用一次，互相之间没有事务边界。
func OpenDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent), // SQL 日志交给应用层的 logrus
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite db %q: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get underlying sql.DB for %q: %w", path, err)
	}
	// SQLite 同一时刻只允许一个写入者，限制连接数避免 database is locked
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}
