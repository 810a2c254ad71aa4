package repository

import (
	"context"

	"cm-go/internal/model"

	"gorm.io/gorm"
)

type CommentLikeRepository struct {
	db *gorm.DB
}

func NewCommentLikeRepository(db *gorm.DB) *CommentLikeRepository {
	return &CommentLikeRepository{db: db}
}

func (r *CommentLikeRepository) WithTx(tx *gorm.DB) *CommentLikeRepository {
	return &CommentLikeRepository{db: tx}
}

func (r *CommentLikeRepository) Create(ctx context.Context, like *model.CommentLike) error {
	return r.db.WithContext(ctx).Create(like).Error
}

// GetActive 查询最早的一条有效点赞
func (r *CommentLikeRepository) GetActive(ctx context.Context, accountID, commentID int64) (*model.CommentLike, error) {
	var like model.CommentLike
	err := r.db.WithContext(ctx).
		Where("account_id = ? AND comment_id = ? AND is_canceled = ?", accountID, commentID, false).
		Order("id").First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

// Cancel 取消点赞，只有仍处于有效状态的记录会被更新
func (r *CommentLikeRepository) Cancel(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Model(&model.CommentLike{}).
		Where("id = ? AND is_canceled = ?", id, false).
		UpdateColumn("is_canceled", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *CommentLikeRepository) ExistsActive(ctx context.Context, accountID, commentID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CommentLike{}).
		Where("account_id = ? AND comment_id = ? AND is_canceled = ?", accountID, commentID, false).
		Count(&count).Error
	return count > 0, err
}

func (r *CommentLikeRepository) ListActiveByComment(ctx context.Context, commentID int64) ([]model.CommentLike, error) {
	var likes []model.CommentLike
	err := r.db.WithContext(ctx).Preload("Account").
		Where("comment_id = ? AND is_canceled = ?", commentID, false).
		Order("created_at DESC, id DESC").Find(&likes).Error
	return likes, err
}

func (r *CommentLikeRepository) ListActiveByAccount(ctx context.Context, accountID int64) ([]model.CommentLike, error) {
	var likes []model.CommentLike
	err := r.db.WithContext(ctx).Preload("Account").Preload("Comment").
		Where("account_id = ? AND is_canceled = ?", accountID, false).
		Order("created_at DESC, id DESC").Find(&likes).Error
	return likes, err
}

func (r *CommentLikeRepository) CountActiveByComment(ctx context.Context, commentID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CommentLike{}).
		Where("comment_id = ? AND is_canceled = ?", commentID, false).
		Count(&count).Error
	return count, err
}

// ActiveLikeCount 单条评论下某账号的有效点赞数
type ActiveLikeCount struct {
	CommentID int64
	Total     int64
}

// ActiveCountsByAccount 按评论分组统计某账号的有效点赞数
func (r *CommentLikeRepository) ActiveCountsByAccount(ctx context.Context, accountID int64) ([]ActiveLikeCount, error) {
	var counts []ActiveLikeCount
	err := r.db.WithContext(ctx).Model(&model.CommentLike{}).
		Select("comment_id, COUNT(*) AS total").
		Where("account_id = ? AND is_canceled = ?", accountID, false).
		Group("comment_id").
		Order("comment_id").
		Scan(&counts).Error
	return counts, err
}

func (r *CommentLikeRepository) DeleteByAccount(ctx context.Context, accountID int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("account_id = ?", accountID).Delete(&model.CommentLike{})
	return result.RowsAffected, result.Error
}

func (r *CommentLikeRepository) DeleteByComment(ctx context.Context, commentID int64) (int64, error) {
	result := r.db.WithContext(ctx).Where("comment_id = ?", commentID).Delete(&model.CommentLike{})
	return result.RowsAffected, result.Error
}
