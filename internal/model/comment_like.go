package model

import "time"

// CommentLike 一次点赞事件，取消点赞只置 IsCanceled，不删除记录
type CommentLike struct {
	ID         int64     `gorm:"primaryKey;autoIncrement;comment:点赞记录ID" json:"id"`
	AccountID  int64     `gorm:"not null;index:idx_comment_likes_account;index:idx_comment_likes_pair,priority:2;comment:点赞账号ID" json:"account_id"`
	CommentID  int64     `gorm:"not null;index:idx_comment_likes_comment;index:idx_comment_likes_pair,priority:1;comment:被点赞评论ID" json:"comment_id"`
	IsCanceled bool      `gorm:"not null;default:false;comment:是否已取消" json:"is_canceled"`
	CreatedAt  time.Time `gorm:"autoCreateTime;comment:点赞时间" json:"created_at"`

	Account *Account `gorm:"foreignKey:AccountID" json:"account,omitempty"`
	Comment *Comment `gorm:"foreignKey:CommentID" json:"comment,omitempty"`
}

func (CommentLike) TableName() string {
	return "comment_likes"
}
