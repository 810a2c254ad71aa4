package repository

import (
	"context"
	"time"

	"cm-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) WithTx(tx *gorm.DB) *CommentRepository {
	return &CommentRepository{db: tx}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *CommentRepository) GetByID(ctx context.Context, id int64) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// GetForUpdate 加行锁读取评论，同一评论上的点赞操作因此串行
func (r *CommentRepository) GetForUpdate(ctx context.Context, id int64) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&comment, id).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *CommentRepository) GetByIDWithAccount(ctx context.Context, id int64) (*model.Comment, error) {
	var comment model.Comment
	if err := r.db.WithContext(ctx).Preload("Account").First(&comment, id).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// ListAll 获取全部评论（按时间倒序）
func (r *CommentRepository) ListAll(ctx context.Context) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).Preload("Account").Order("created_at DESC, id DESC").Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) ListByArticle(ctx context.Context, articlePath string) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).Preload("Account").
		Where("article_path = ?", articlePath).
		Order("created_at DESC, id DESC").Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) ListByAccount(ctx context.Context, accountID int64) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).Preload("Account").
		Where("account_id = ?", accountID).
		Order("created_at DESC, id DESC").Find(&comments).Error
	return comments, err
}

// ListByTimeRange 获取 [start, end] 区间内的评论
func (r *CommentRepository) ListByTimeRange(ctx context.Context, start, end time.Time) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).Preload("Account").
		Where("created_at BETWEEN ? AND ?", start, end).
		Order("created_at DESC, id DESC").Find(&comments).Error
	return comments, err
}

// SearchByKeyword 数据库模糊搜索，ES 不可用时的降级方案
func (r *CommentRepository) SearchByKeyword(ctx context.Context, keyword string, limit int) ([]model.Comment, error) {
	pattern := "%" + keyword + "%"
	var comments []model.Comment
	err := r.db.WithContext(ctx).Preload("Account").
		Where("content LIKE ? OR article_path LIKE ?", pattern, pattern).
		Order("created_at DESC, id DESC").Limit(limit).Find(&comments).Error
	return comments, err
}

// GetByIDs 批量查询，结果顺序与 ids 无关
func (r *CommentRepository) GetByIDs(ctx context.Context, ids []int64) ([]model.Comment, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var comments []model.Comment
	err := r.db.WithContext(ctx).Preload("Account").Where("id IN ?", ids).Find(&comments).Error
	return comments, err
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Comment{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *CommentRepository) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&model.Comment{})
	return result.RowsAffected, result.Error
}

// IncrementLikeCount 点赞数 +1，由数据库原子执行
func (r *CommentRepository) IncrementLikeCount(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).
		UpdateColumn("like_count", gorm.Expr("like_count + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DecrementLikeCount 点赞数 -1（不低于 0）
func (r *CommentRepository) DecrementLikeCount(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ? AND like_count > 0", id).
		UpdateColumn("like_count", gorm.Expr("like_count - ?", 1)).Error
}

// SubtractLikeCount 点赞数 -n（不低于 0）
func (r *CommentRepository) SubtractLikeCount(ctx context.Context, id, n int64) error {
	if n <= 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).
		UpdateColumn("like_count", gorm.Expr("CASE WHEN like_count > ? THEN like_count - ? ELSE 0 END", n, n)).Error
}

// ResetLikeCount 点赞数直接置 0
func (r *CommentRepository) ResetLikeCount(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&model.Comment{}).Where("id = ?", id).
		UpdateColumn("like_count", 0).Error
}
