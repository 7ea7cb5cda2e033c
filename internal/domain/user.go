// Package domain 定义了应用程序的核心数据模型 (数据库模型)。
package domain

import "time"

// User 表示一个注册用户。
type User struct {
	ID        uint      `gorm:"primaryKey"` // 用户唯一标识符 (主键)
	Username  string    `gorm:"type:varchar(20);uniqueIndex:idx_username;not null"`
	Password  string    `gorm:"type:text;not null"` // 存储的是 bcrypt 哈希，绝不存明文
	Email     string    `gorm:"type:varchar(30);not null"`
	Age       int       // 可选
	Birthday  time.Time // 可选
	CreatedAt time.Time `gorm:"autoCreateTime"` // 注册时间 (GORM 自动填充)
}
