package domain

import "time"

// Drive 表示一次募捐/志愿活动的公告。
// 独立的列表实体，与用户和帖子没有任何关联。
type Drive struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"type:varchar(20);not null"`
	Location  string    `gorm:"type:varchar(100);not null"`
	Details   string    `gorm:"type:varchar(1000)"`
	Date      time.Time // 活动日期，可选
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
