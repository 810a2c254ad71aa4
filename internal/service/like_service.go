package service

import (
	"context"
	"time"

	"cm-go/internal/api/dto"
	"cm-go/internal/events"
	"cm-go/internal/model"
	"cm-go/internal/repository"
	"cm-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LikeOptions 点赞行为配置
type LikeOptions struct {
	// EnforceUnique 为 true 时同一账号对同一评论只能有一条有效点赞
	EnforceUnique bool
	Publisher     events.Publisher
}

type LikeService struct {
	db          *gorm.DB
	accountRepo *repository.AccountRepository
	commentRepo *repository.CommentRepository
	likeRepo    *repository.CommentLikeRepository
	opts        LikeOptions
}

func NewLikeService(
	db *gorm.DB,
	accountRepo *repository.AccountRepository,
	commentRepo *repository.CommentRepository,
	likeRepo *repository.CommentLikeRepository,
	opts LikeOptions,
) *LikeService {
	if opts.Publisher == nil {
		opts.Publisher = events.NopPublisher{}
	}
	return &LikeService{
		db:          db,
		accountRepo: accountRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
		opts:        opts,
	}
}

// Like 点赞：计数 +1 与插入点赞记录在同一事务内
//
// 默认不检查是否已有有效点赞，重复点赞会产生多条记录，计数也会重复累加。
// EnforceUnique 打开后对评论加行锁再检查，重复时返回 ErrAlreadyLiked。
func (s *LikeService) Like(ctx context.Context, accountID, commentID int64) (*dto.LikeResult, error) {
	var result *dto.LikeResult
	var articlePath string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		accounts := s.accountRepo.WithTx(tx)
		comments := s.commentRepo.WithTx(tx)
		likes := s.likeRepo.WithTx(tx)

		if _, err := accounts.GetByID(ctx, accountID); err != nil {
			return notFoundOr(ErrAccountNotFound, "查询账号失败", err)
		}

		var comment *model.Comment
		var err error
		if s.opts.EnforceUnique {
			comment, err = comments.GetForUpdate(ctx, commentID)
		} else {
			comment, err = comments.GetByID(ctx, commentID)
		}
		if err != nil {
			return notFoundOr(ErrCommentNotFound, "查询评论失败", err)
		}
		articlePath = comment.ArticlePath

		if s.opts.EnforceUnique {
			exists, err := likes.ExistsActive(ctx, accountID, commentID)
			if err != nil {
				return unexpected("查询点赞状态失败", err)
			}
			if exists {
				return ErrAlreadyLiked
			}
		}

		if err := comments.IncrementLikeCount(ctx, commentID); err != nil {
			return notFoundOr(ErrCommentNotFound, "更新点赞数失败", err)
		}

		if err := likes.Create(ctx, &model.CommentLike{
			AccountID:  accountID,
			CommentID:  commentID,
			IsCanceled: false,
		}); err != nil {
			return unexpected("保存点赞记录失败", err)
		}

		result, err = s.currentState(ctx, comments, likes, accountID, commentID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Comment liked",
		zap.Int64("account_id", accountID),
		zap.Int64("comment_id", commentID),
		zap.Int64("like_count", result.LikeCount),
	)

	s.publish(ctx, &events.Event{
		Type:        events.TypeCommentLiked,
		CommentID:   commentID,
		AccountID:   accountID,
		ArticlePath: articlePath,
		LikeCount:   result.LikeCount,
		OccurredAt:  time.Now(),
	})

	return result, nil
}

// Unlike 取消点赞：取消最早的一条有效点赞，计数 -1（不低于 0）
func (s *LikeService) Unlike(ctx context.Context, accountID, commentID int64) (*dto.LikeResult, error) {
	var result *dto.LikeResult
	var articlePath string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		accounts := s.accountRepo.WithTx(tx)
		comments := s.commentRepo.WithTx(tx)
		likes := s.likeRepo.WithTx(tx)

		if _, err := accounts.GetByID(ctx, accountID); err != nil {
			return notFoundOr(ErrAccountNotFound, "查询账号失败", err)
		}

		comment, err := comments.GetForUpdate(ctx, commentID)
		if err != nil {
			return notFoundOr(ErrCommentNotFound, "查询评论失败", err)
		}
		articlePath = comment.ArticlePath

		like, err := likes.GetActive(ctx, accountID, commentID)
		if err != nil {
			return notFoundOr(ErrLikeNotFound, "查询点赞记录失败", err)
		}

		canceled, err := likes.Cancel(ctx, like.ID)
		if err != nil {
			return unexpected("取消点赞失败", err)
		}
		if !canceled {
			return ErrLikeNotFound
		}

		if err := comments.DecrementLikeCount(ctx, commentID); err != nil {
			return unexpected("更新点赞数失败", err)
		}

		result, err = s.currentState(ctx, comments, likes, accountID, commentID)
		return err
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Comment unliked",
		zap.Int64("account_id", accountID),
		zap.Int64("comment_id", commentID),
		zap.Int64("like_count", result.LikeCount),
	)

	s.publish(ctx, &events.Event{
		Type:        events.TypeCommentUnliked,
		CommentID:   commentID,
		AccountID:   accountID,
		ArticlePath: articlePath,
		LikeCount:   result.LikeCount,
		OccurredAt:  time.Now(),
	})

	return result, nil
}

func (s *LikeService) currentState(
	ctx context.Context,
	comments *repository.CommentRepository,
	likes *repository.CommentLikeRepository,
	accountID, commentID int64,
) (*dto.LikeResult, error) {
	fresh, err := comments.GetByID(ctx, commentID)
	if err != nil {
		return nil, notFoundOr(ErrCommentNotFound, "查询评论失败", err)
	}
	liked, err := likes.ExistsActive(ctx, accountID, commentID)
	if err != nil {
		return nil, unexpected("查询点赞状态失败", err)
	}
	return &dto.LikeResult{
		CommentID: commentID,
		LikeCount: fresh.LikeCount,
		Liked:     liked,
	}, nil
}

// ListLikesForComment 评论下的有效点赞
func (s *LikeService) ListLikesForComment(ctx context.Context, commentID int64) ([]dto.CommentLikeInfo, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		return nil, notFoundOr(ErrCommentNotFound, "查询评论失败", err)
	}

	likes, err := s.likeRepo.ListActiveByComment(ctx, commentID)
	if err != nil {
		return nil, unexpected("查询点赞列表失败", err)
	}
	return toCommentLikeInfos(likes), nil
}

// ListLikesForAccount 按登录名查询有效点赞，登录名不存在时返回空列表
func (s *LikeService) ListLikesForAccount(ctx context.Context, handle string) ([]dto.CommentLikeInfo, error) {
	account, err := s.accountRepo.GetByDisplayName(ctx, handle)
	if err != nil {
		if isRecordNotFound(err) {
			return []dto.CommentLikeInfo{}, nil
		}
		return nil, unexpected("查询账号失败", err)
	}

	likes, err := s.likeRepo.ListActiveByAccount(ctx, account.ID)
	if err != nil {
		return nil, unexpected("查询点赞列表失败", err)
	}
	return toCommentLikeInfos(likes), nil
}

// CascadeDeleteForAccount 删除账号的全部点赞记录，被点赞评论按有效点赞数扣减计数
func (s *LikeService) CascadeDeleteForAccount(ctx context.Context, accountID int64) (int64, error) {
	var deleted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		deleted, err = s.cascadeForAccount(ctx, tx, accountID)
		return err
	})
	if err != nil {
		return 0, err
	}

	logger.Info("Account likes deleted", zap.Int64("account_id", accountID), zap.Int64("deleted", deleted))
	return deleted, nil
}

// CascadeDeleteForComment 删除评论的全部点赞记录，计数归零
func (s *LikeService) CascadeDeleteForComment(ctx context.Context, commentID int64) (int64, error) {
	var deleted int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		deleted, err = s.cascadeForComment(ctx, tx, commentID)
		return err
	})
	if err != nil {
		return 0, err
	}

	logger.Info("Comment likes deleted", zap.Int64("comment_id", commentID), zap.Int64("deleted", deleted))
	return deleted, nil
}

// cascadeForAccount 在调用方事务内执行
func (s *LikeService) cascadeForAccount(ctx context.Context, tx *gorm.DB, accountID int64) (int64, error) {
	comments := s.commentRepo.WithTx(tx)
	likes := s.likeRepo.WithTx(tx)

	counts, err := likes.ActiveCountsByAccount(ctx, accountID)
	if err != nil {
		return 0, unexpected("统计点赞记录失败", err)
	}
	for _, c := range counts {
		if err := comments.SubtractLikeCount(ctx, c.CommentID, c.Total); err != nil {
			return 0, unexpected("更新点赞数失败", err)
		}
	}

	deleted, err := likes.DeleteByAccount(ctx, accountID)
	if err != nil {
		return 0, unexpected("删除点赞记录失败", err)
	}
	return deleted, nil
}

// cascadeForComment 在调用方事务内执行
func (s *LikeService) cascadeForComment(ctx context.Context, tx *gorm.DB, commentID int64) (int64, error) {
	comments := s.commentRepo.WithTx(tx)
	likes := s.likeRepo.WithTx(tx)

	active, err := likes.CountActiveByComment(ctx, commentID)
	if err != nil {
		return 0, unexpected("统计点赞记录失败", err)
	}
	if active > 0 {
		if err := comments.ResetLikeCount(ctx, commentID); err != nil {
			return 0, unexpected("重置点赞数失败", err)
		}
	}

	deleted, err := likes.DeleteByComment(ctx, commentID)
	if err != nil {
		return 0, unexpected("删除点赞记录失败", err)
	}
	return deleted, nil
}

func (s *LikeService) publish(ctx context.Context, ev *events.Event) {
	if err := s.opts.Publisher.Publish(ctx, ev); err != nil {
		logger.Warn("Publish event failed", zap.String("type", ev.Type), zap.Error(err))
	}
}

func toCommentLikeInfos(likes []model.CommentLike) []dto.CommentLikeInfo {
	items := make([]dto.CommentLikeInfo, 0, len(likes))
	for i := range likes {
		l := &likes[i]
		info := dto.CommentLikeInfo{
			ID:        l.ID,
			CommentID: l.CommentID,
			AccountID: l.AccountID,
			CreatedAt: l.CreatedAt,
		}
		if l.Account != nil {
			info.Username = l.Account.DisplayName
			info.Avatar = l.Account.AvatarURL
			info.ProfileURL = l.Account.ProfileURL
		}
		if l.Comment != nil {
			info.ArticlePath = l.Comment.ArticlePath
		}
		items = append(items, info)
	}
	return items
}
