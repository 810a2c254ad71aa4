package repository

import (
	"context"

	"cm-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 第三方登录时以外部资料为准覆盖的字段，comment_enabled / role / created_at 不在其中
var reconcileColumns = []string{
	"display_name",
	"email",
	"avatar_url",
	"profile_url",
	"access_token",
	"raw_profile",
	"updated_at",
}

type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// WithTx 返回绑定到事务的仓储
func (r *AccountRepository) WithTx(tx *gorm.DB) *AccountRepository {
	return &AccountRepository{db: tx}
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).First(&account, id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) GetByExternalID(ctx context.Context, externalID int64) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).Where("email = ?", email).Order("id").First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// GetByDisplayName 根据登录名查询（登录名不保证唯一，取最早的账号）
func (r *AccountRepository) GetByDisplayName(ctx context.Context, name string) (*model.Account, error) {
	var account model.Account
	err := r.db.WithContext(ctx).Where("display_name = ?", name).Order("id").First(&account).Error
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepository) ExistsByExternalID(ctx context.Context, externalID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("external_id = ?", externalID).Count(&count).Error
	return count > 0, err
}

func (r *AccountRepository) List(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	err := r.db.WithContext(ctx).Order("id").Find(&accounts).Error
	return accounts, err
}

func (r *AccountRepository) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

// UpsertByExternalID 按 external_id 插入或覆盖资料字段，返回库中最新的记录
func (r *AccountRepository) UpsertByExternalID(ctx context.Context, account *model.Account) (*model.Account, error) {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "external_id"}},
		DoUpdates: clause.AssignmentColumns(reconcileColumns),
	}).Create(account).Error
	if err != nil {
		return nil, err
	}
	return r.GetByExternalID(ctx, *account.ExternalID)
}

// Update 更新指定字段后重新读取。MySQL 对值未变化的行返回 0 affected，所以不看 RowsAffected
func (r *AccountRepository) Update(ctx context.Context, id int64, updates map[string]interface{}) (*model.Account, error) {
	err := r.db.WithContext(ctx).Model(&model.Account{}).Where("id = ?", id).Updates(updates).Error
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *AccountRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Account{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
