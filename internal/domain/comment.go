package domain

import "time"

// Comment 表示帖子下的一条评论。
// PostID 指向同一存储内的帖子；Author 同样是用户名的冗余副本。
type Comment struct {
	ID        uint      `gorm:"primaryKey"`
	PostID    uint      `gorm:"index;not null"`
	Author    string    `gorm:"type:varchar(20);not null"`
	Body      string    `gorm:"type:varchar(1000);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
