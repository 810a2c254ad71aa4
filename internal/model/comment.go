package model

import "time"

// Comment 文章评论，LikeCount 为冗余的有效点赞数
type Comment struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;comment:评论ID" json:"id"`
	AccountID   int64     `gorm:"not null;index:idx_comments_account_id;comment:评论账号ID" json:"account_id"`
	ArticlePath string    `gorm:"size:255;not null;index:idx_comments_article_path;comment:文章路径" json:"article_path"`
	Content     string    `gorm:"type:text;not null;comment:评论内容" json:"content"`
	LikeCount   int64     `gorm:"not null;default:0;comment:评论点赞数" json:"like_count"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index:idx_comments_created_at;comment:评论时间" json:"created_at"`

	Account *Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
}

func (Comment) TableName() string {
	return "comments"
}
