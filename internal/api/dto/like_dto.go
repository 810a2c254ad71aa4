package dto

import "time"

// LikeResult 点赞/取消点赞后的评论状态
type LikeResult struct {
	CommentID int64 `json:"comment_id"`
	LikeCount int64 `json:"like_count"`
	Liked     bool  `json:"liked"`
}

// CommentLikeInfo 点赞记录
type CommentLikeInfo struct {
	ID          int64     `json:"id"`
	CommentID   int64     `json:"comment_id"`
	AccountID   int64     `json:"account_id"`
	Username    string    `json:"username"`
	Avatar      *string   `json:"avatar"`
	ProfileURL  *string   `json:"profile_url"`
	ArticlePath string    `json:"article_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// LikeDeleteResult 批量删除点赞结果
type LikeDeleteResult struct {
	Deleted int64 `json:"deleted"`
}
