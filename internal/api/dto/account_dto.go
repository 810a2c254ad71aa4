package dto

import "time"

// AccountInfo 账号信息（不含第三方凭证）
type AccountInfo struct {
	ID             int64     `json:"id"`
	ExternalID     *int64    `json:"github_id"`
	Username       string    `json:"username"`
	Email          *string   `json:"email"`
	AvatarURL      *string   `json:"avatar_url"`
	ProfileURL     *string   `json:"html_url"`
	CommentEnabled bool      `json:"comment_enabled"`
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AccountCreateRequest 管理员创建账号
type AccountCreateRequest struct {
	ExternalID     *int64  `json:"github_id" binding:"omitempty,gt=0"`
	Username       string  `json:"username" binding:"required,min=1,max=100"`
	Email          *string `json:"email" binding:"omitempty,email,max=150"`
	AvatarURL      *string `json:"avatar_url" binding:"omitempty,url,max=255"`
	ProfileURL     *string `json:"html_url" binding:"omitempty,url,max=255"`
	CommentEnabled *bool   `json:"comment_enabled"`
	Role           string  `json:"role" binding:"omitempty,oneof=user admin"`
}

// AccountPermissionRequest 管理员修改权限，只允许改这两个字段
type AccountPermissionRequest struct {
	CommentEnabled *bool   `json:"comment_enabled"`
	Role           *string `json:"role" binding:"omitempty,oneof=user admin"`
}

// AccountDeleteResult 级联删除账号结果
type AccountDeleteResult struct {
	AccountID           int64 `json:"account_id"`
	LikesDeleted        int64 `json:"likes_deleted"`
	CommentLikesDeleted int64 `json:"comment_likes_deleted"`
	CommentsDeleted     int64 `json:"comments_deleted"`
}
