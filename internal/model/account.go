package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account 本地账号，external_id 对应第三方（GitHub）用户ID
type Account struct {
	ID             int64          `gorm:"primaryKey;autoIncrement;comment:账号ID" json:"id"`
	ExternalID     *int64         `gorm:"uniqueIndex:uq_accounts_external_id;comment:第三方用户ID" json:"external_id"`
	DisplayName    string         `gorm:"size:100;not null;index:idx_accounts_display_name;comment:第三方登录名" json:"display_name"`
	Email          *string        `gorm:"size:150;index:idx_accounts_email;comment:邮箱" json:"email"`
	AvatarURL      *string        `gorm:"size:255;comment:头像" json:"avatar_url"`
	ProfileURL     *string        `gorm:"size:255;comment:个人主页" json:"profile_url"`
	AccessToken    string         `gorm:"size:512;comment:第三方访问令牌" json:"-"`
	CommentEnabled bool           `gorm:"not null;comment:是否允许评论" json:"comment_enabled"`
	Role           string         `gorm:"size:32;not null;comment:账号角色" json:"role"`
	RawProfile     datatypes.JSON `gorm:"comment:最近一次登录的第三方资料" json:"-"`
	CreatedAt      time.Time      `gorm:"autoCreateTime;comment:创建时间" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`
}

func (Account) TableName() string {
	return "accounts"
}

func (a *Account) IsAdmin() bool {
	return a.Role == RoleAdmin
}
