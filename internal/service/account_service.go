package service

import (
	"context"
	"errors"
	"time"

	"cm-go/internal/api/dto"
	"cm-go/internal/events"
	"cm-go/internal/model"
	"cm-go/internal/repository"
	"cm-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AccountService struct {
	db          *gorm.DB
	accountRepo *repository.AccountRepository
	commentRepo *repository.CommentRepository
	likes       *LikeService
	publisher   events.Publisher
}

func NewAccountService(
	db *gorm.DB,
	accountRepo *repository.AccountRepository,
	commentRepo *repository.CommentRepository,
	likes *LikeService,
	publisher events.Publisher,
) *AccountService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &AccountService{
		db:          db,
		accountRepo: accountRepo,
		commentRepo: commentRepo,
		likes:       likes,
		publisher:   publisher,
	}
}

func (s *AccountService) Get(ctx context.Context, id int64) (*dto.AccountInfo, error) {
	account, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(ErrAccountNotFound, "查询账号失败", err)
	}
	return toAccountInfo(account), nil
}

func (s *AccountService) GetByExternalID(ctx context.Context, externalID int64) (*dto.AccountInfo, error) {
	account, err := s.accountRepo.GetByExternalID(ctx, externalID)
	if err != nil {
		return nil, notFoundOr(ErrAccountNotFound, "查询账号失败", err)
	}
	return toAccountInfo(account), nil
}

func (s *AccountService) GetByEmail(ctx context.Context, email string) (*dto.AccountInfo, error) {
	account, err := s.accountRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, notFoundOr(ErrAccountNotFound, "查询账号失败", err)
	}
	return toAccountInfo(account), nil
}

func (s *AccountService) GetByHandle(ctx context.Context, handle string) (*dto.AccountInfo, error) {
	account, err := s.accountRepo.GetByDisplayName(ctx, handle)
	if err != nil {
		return nil, notFoundOr(ErrAccountNotFound, "查询账号失败", err)
	}
	return toAccountInfo(account), nil
}

func (s *AccountService) List(ctx context.Context) ([]dto.AccountInfo, error) {
	accounts, err := s.accountRepo.List(ctx)
	if err != nil {
		return nil, unexpected("查询账号失败", err)
	}
	items := make([]dto.AccountInfo, 0, len(accounts))
	for i := range accounts {
		items = append(items, *toAccountInfo(&accounts[i]))
	}
	return items, nil
}

// Create 管理员手动创建账号
func (s *AccountService) Create(ctx context.Context, req *dto.AccountCreateRequest) (*dto.AccountInfo, error) {
	if req.ExternalID != nil {
		exists, err := s.accountRepo.ExistsByExternalID(ctx, *req.ExternalID)
		if err != nil {
			return nil, unexpected("查询账号失败", err)
		}
		if exists {
			return nil, ErrDuplicateExternalIdentity
		}
	}

	role := req.Role
	if role == "" {
		role = model.RoleUser
	}
	if !validRole(role) {
		return nil, ErrInvalidRole
	}

	commentEnabled := true
	if req.CommentEnabled != nil {
		commentEnabled = *req.CommentEnabled
	}

	account := &model.Account{
		ExternalID:     req.ExternalID,
		DisplayName:    req.Username,
		Email:          req.Email,
		AvatarURL:      req.AvatarURL,
		ProfileURL:     req.ProfileURL,
		CommentEnabled: commentEnabled,
		Role:           role,
	}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateExternalIdentity
		}
		return nil, unexpected("创建账号失败", err)
	}

	logger.Info("Account created", zap.Int64("account_id", account.ID), zap.String("username", account.DisplayName))
	return toAccountInfo(account), nil
}

// UpdatePermission 只修改评论权限和角色，其余字段以第三方资料为准
func (s *AccountService) UpdatePermission(ctx context.Context, id int64, commentEnabled *bool, role *string) (*dto.AccountInfo, error) {
	if _, err := s.accountRepo.GetByID(ctx, id); err != nil {
		return nil, notFoundOr(ErrAccountNotFound, "查询账号失败", err)
	}

	updates := make(map[string]interface{})
	if commentEnabled != nil {
		updates["comment_enabled"] = *commentEnabled
	}
	if role != nil {
		if !validRole(*role) {
			return nil, ErrInvalidRole
		}
		updates["role"] = *role
	}
	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	account, err := s.accountRepo.Update(ctx, id, updates)
	if err != nil {
		return nil, notFoundOr(ErrAccountNotFound, "更新账号失败", err)
	}

	logger.Info("Account permission updated", zap.Int64("account_id", id), zap.Any("updates", updates))
	return toAccountInfo(account), nil
}

// Delete 级联删除账号：点赞记录、名下评论及其点赞、账号本身
func (s *AccountService) Delete(ctx context.Context, id int64) (*dto.AccountDeleteResult, error) {
	result := &dto.AccountDeleteResult{AccountID: id}
	var removed []model.Comment

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		accounts := s.accountRepo.WithTx(tx)
		comments := s.commentRepo.WithTx(tx)

		if _, err := accounts.GetByID(ctx, id); err != nil {
			return notFoundOr(ErrAccountNotFound, "查询账号失败", err)
		}

		n, err := s.likes.cascadeForAccount(ctx, tx, id)
		if err != nil {
			return err
		}
		result.LikesDeleted = n

		removed, err = comments.ListByAccount(ctx, id)
		if err != nil {
			return unexpected("查询账号评论失败", err)
		}
		ids := make([]int64, 0, len(removed))
		for i := range removed {
			n, err := s.likes.cascadeForComment(ctx, tx, removed[i].ID)
			if err != nil {
				return err
			}
			result.CommentLikesDeleted += n
			ids = append(ids, removed[i].ID)
		}

		result.CommentsDeleted, err = comments.DeleteByIDs(ctx, ids)
		if err != nil {
			return unexpected("删除账号评论失败", err)
		}

		if _, err := accounts.Delete(ctx, id); err != nil {
			return unexpected("删除账号失败", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Account deleted",
		zap.Int64("account_id", id),
		zap.Int64("likes", result.LikesDeleted),
		zap.Int64("comment_likes", result.CommentLikesDeleted),
		zap.Int64("comments", result.CommentsDeleted),
	)

	for i := range removed {
		ev := &events.Event{
			Type:        events.TypeCommentDeleted,
			CommentID:   removed[i].ID,
			AccountID:   id,
			ArticlePath: removed[i].ArticlePath,
			OccurredAt:  time.Now(),
		}
		if err := s.publisher.Publish(ctx, ev); err != nil {
			logger.Warn("Publish event failed", zap.String("type", ev.Type), zap.Error(err))
		}
	}

	return result, nil
}

func validRole(role string) bool {
	return role == model.RoleUser || role == model.RoleAdmin
}

func toAccountInfo(a *model.Account) *dto.AccountInfo {
	return &dto.AccountInfo{
		ID:             a.ID,
		ExternalID:     a.ExternalID,
		Username:       a.DisplayName,
		Email:          a.Email,
		AvatarURL:      a.AvatarURL,
		ProfileURL:     a.ProfileURL,
		CommentEnabled: a.CommentEnabled,
		Role:           a.Role,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}
