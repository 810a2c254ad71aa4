package dto

import "time"

// CommentCreateRequest 发表评论请求
type CommentCreateRequest struct {
	ArticlePath string `json:"article_path" binding:"required,max=255,articlepath"`
	Content     string `json:"content" binding:"required,min=1,max=5000"`
}

// CommentInfo 评论信息
type CommentInfo struct {
	ID          int64     `json:"id"`
	AccountID   int64     `json:"account_id"`
	ArticlePath string    `json:"article_path"`
	Content     string    `json:"content"`
	LikeCount   int64     `json:"like_count"`
	CreatedAt   time.Time `json:"created_at"`
	Username    *string   `json:"username,omitempty"`
	Avatar      *string   `json:"avatar,omitempty"`
}

// CommentTimeRangeQuery 按时间区间查询评论
type CommentTimeRangeQuery struct {
	Start time.Time `form:"start" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
	End   time.Time `form:"end" binding:"required" time_format:"2006-01-02T15:04:05Z07:00"`
}

// CommentDeleteResult 删除单条评论（含点赞）结果
type CommentDeleteResult struct {
	CommentID           int64 `json:"comment_id"`
	CommentLikesDeleted int64 `json:"comment_likes_deleted"`
}

// ArticleDeleteResult 按文章批量删除结果
type ArticleDeleteResult struct {
	ArticlePath         string `json:"article_path"`
	CommentsDeleted     int64  `json:"comments_deleted"`
	CommentLikesDeleted int64  `json:"comment_likes_deleted"`
	ArchiveObject       string `json:"archive_object,omitempty"`
}
