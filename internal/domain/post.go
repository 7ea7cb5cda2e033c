package domain

import "time"

// Post 表示一条信息帖子。
// Author 是发帖时用户名的冗余副本，不是指向用户库的外键：
// 帖子和用户存放在各自独立提交的数据库文件里。
type Post struct {
	ID             uint      `gorm:"primaryKey"`
	Author         string    `gorm:"type:varchar(20);not null"`
	Title          string    `gorm:"type:varchar(100);not null"`
	Body           string    `gorm:"type:varchar(2000);not null"`
	ContactDetails string    `gorm:"type:varchar(50);not null"`
	CreatedAt      time.Time `gorm:"autoCreateTime"` // 发帖时间 (GORM 自动填充)
}
