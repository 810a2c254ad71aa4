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

// Archiver 批量删除前保存文章评论快照，返回对象名
type Archiver interface {
	ArchiveArticle(ctx context.Context, articlePath string, comments []model.Comment) (string, error)
}

// CommentOptions 评论行为配置
type CommentOptions struct {
	// EnforcePermission 为 true 时 comment_enabled=false 的账号不能发表评论
	EnforcePermission bool
	Archiver          Archiver
	Publisher         events.Publisher
}

type CommentService struct {
	db          *gorm.DB
	commentRepo *repository.CommentRepository
	accountRepo *repository.AccountRepository
	likes       *LikeService
	opts        CommentOptions
}

func NewCommentService(
	db *gorm.DB,
	commentRepo *repository.CommentRepository,
	accountRepo *repository.AccountRepository,
	likes *LikeService,
	opts CommentOptions,
) *CommentService {
	if opts.Publisher == nil {
		opts.Publisher = events.NopPublisher{}
	}
	return &CommentService{
		db:          db,
		commentRepo: commentRepo,
		accountRepo: accountRepo,
		likes:       likes,
		opts:        opts,
	}
}

// Create 发表评论
func (s *CommentService) Create(ctx context.Context, accountID int64, articlePath, content string) (*dto.CommentInfo, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, notFoundOr(ErrAccountNotFound, "查询账号失败", err)
	}
	if s.opts.EnforcePermission && !account.CommentEnabled {
		return nil, ErrCommentForbidden
	}

	comment := &model.Comment{
		AccountID:   accountID,
		ArticlePath: articlePath,
		Content:     content,
		LikeCount:   0,
		CreatedAt:   time.Now(),
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, unexpected("保存评论失败", err)
	}
	comment.Account = account

	logger.Info("Comment created",
		zap.Int64("comment_id", comment.ID),
		zap.Int64("account_id", accountID),
		zap.String("article_path", articlePath),
	)

	s.publish(ctx, &events.Event{
		Type:        events.TypeCommentCreated,
		CommentID:   comment.ID,
		AccountID:   accountID,
		ArticlePath: articlePath,
		OccurredAt:  comment.CreatedAt,
	})

	return toCommentInfo(comment), nil
}

// Get 获取单条评论
func (s *CommentService) Get(ctx context.Context, commentID int64) (*dto.CommentInfo, error) {
	comment, err := s.commentRepo.GetByIDWithAccount(ctx, commentID)
	if err != nil {
		return nil, notFoundOr(ErrCommentNotFound, "查询评论失败", err)
	}
	return toCommentInfo(comment), nil
}

// Delete 删除评论，不处理点赞记录
func (s *CommentService) Delete(ctx context.Context, commentID int64) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return notFoundOr(ErrCommentNotFound, "查询评论失败", err)
	}

	deleted, err := s.commentRepo.Delete(ctx, commentID)
	if err != nil {
		return unexpected("删除评论失败", err)
	}
	if !deleted {
		return ErrCommentNotFound
	}

	s.publishDeleted(ctx, comment)
	return nil
}

// DeleteWithLikes 先删点赞再删评论，同一事务
func (s *CommentService) DeleteWithLikes(ctx context.Context, commentID int64) (*dto.CommentDeleteResult, error) {
	var comment *model.Comment
	var likesDeleted int64

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comments := s.commentRepo.WithTx(tx)

		var err error
		comment, err = comments.GetByID(ctx, commentID)
		if err != nil {
			return notFoundOr(ErrCommentNotFound, "查询评论失败", err)
		}

		likesDeleted, err = s.likes.cascadeForComment(ctx, tx, commentID)
		if err != nil {
			return err
		}

		if _, err := comments.Delete(ctx, commentID); err != nil {
			return unexpected("删除评论失败", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publishDeleted(ctx, comment)

	return &dto.CommentDeleteResult{CommentID: commentID, CommentLikesDeleted: likesDeleted}, nil
}

// DeleteByArticle 按文章批量删除评论及其点赞，删除前归档快照
func (s *CommentService) DeleteByArticle(ctx context.Context, articlePath string) (*dto.ArticleDeleteResult, error) {
	result := &dto.ArticleDeleteResult{ArticlePath: articlePath}

	comments, err := s.commentRepo.ListByArticle(ctx, articlePath)
	if err != nil {
		return nil, unexpected("查询文章评论失败", err)
	}
	if len(comments) == 0 {
		return result, nil
	}

	if s.opts.Archiver != nil {
		object, err := s.opts.Archiver.ArchiveArticle(ctx, articlePath, comments)
		if err != nil {
			return nil, unexpected("归档文章评论失败", err)
		}
		result.ArchiveObject = object
	}

	// 归档期间可能有新评论写入，事务内重新按文章取一次再删
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		commentsTx := s.commentRepo.WithTx(tx)
		current, err := commentsTx.ListByArticle(ctx, articlePath)
		if err != nil {
			return unexpected("查询文章评论失败", err)
		}
		comments = current

		ids := make([]int64, 0, len(comments))
		for i := range comments {
			ids = append(ids, comments[i].ID)
		}

		for _, id := range ids {
			n, err := s.likes.cascadeForComment(ctx, tx, id)
			if err != nil {
				return err
			}
			result.CommentLikesDeleted += n
		}

		n, err := commentsTx.DeleteByIDs(ctx, ids)
		if err != nil {
			return unexpected("删除文章评论失败", err)
		}
		result.CommentsDeleted = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Article comments deleted",
		zap.String("article_path", articlePath),
		zap.Int64("comments", result.CommentsDeleted),
		zap.Int64("comment_likes", result.CommentLikesDeleted),
		zap.String("archive", result.ArchiveObject),
	)

	for i := range comments {
		s.publishDeleted(ctx, &comments[i])
	}

	return result, nil
}

// ListAll 获取全部评论
func (s *CommentService) ListAll(ctx context.Context) ([]dto.CommentInfo, error) {
	comments, err := s.commentRepo.ListAll(ctx)
	if err != nil {
		return nil, unexpected("查询评论失败", err)
	}
	return toCommentInfos(comments), nil
}

// ListByArticle 获取文章下的评论
func (s *CommentService) ListByArticle(ctx context.Context, articlePath string) ([]dto.CommentInfo, error) {
	comments, err := s.commentRepo.ListByArticle(ctx, articlePath)
	if err != nil {
		return nil, unexpected("查询评论失败", err)
	}
	return toCommentInfos(comments), nil
}

// ListByAccount 获取账号的评论
func (s *CommentService) ListByAccount(ctx context.Context, accountID int64) ([]dto.CommentInfo, error) {
	comments, err := s.commentRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, unexpected("查询评论失败", err)
	}
	return toCommentInfos(comments), nil
}

// ListByHandle 按登录名获取评论，登录名不存在时返回空列表
func (s *CommentService) ListByHandle(ctx context.Context, handle string) ([]dto.CommentInfo, error) {
	account, err := s.accountRepo.GetByDisplayName(ctx, handle)
	if err != nil {
		if isRecordNotFound(err) {
			return []dto.CommentInfo{}, nil
		}
		return nil, unexpected("查询账号失败", err)
	}
	return s.ListByAccount(ctx, account.ID)
}

// ListByTimeRange 获取时间区间内的评论
func (s *CommentService) ListByTimeRange(ctx context.Context, start, end time.Time) ([]dto.CommentInfo, error) {
	if start.After(end) {
		return nil, ErrInvalidTimeRange
	}
	comments, err := s.commentRepo.ListByTimeRange(ctx, start, end)
	if err != nil {
		return nil, unexpected("查询评论失败", err)
	}
	return toCommentInfos(comments), nil
}

func (s *CommentService) publishDeleted(ctx context.Context, comment *model.Comment) {
	s.publish(ctx, &events.Event{
		Type:        events.TypeCommentDeleted,
		CommentID:   comment.ID,
		AccountID:   comment.AccountID,
		ArticlePath: comment.ArticlePath,
		OccurredAt:  time.Now(),
	})
}

func (s *CommentService) publish(ctx context.Context, ev *events.Event) {
	if err := s.opts.Publisher.Publish(ctx, ev); err != nil {
		logger.Warn("Publish event failed", zap.String("type", ev.Type), zap.Error(err))
	}
}

func toCommentInfo(c *model.Comment) *dto.CommentInfo {
	info := &dto.CommentInfo{
		ID:          c.ID,
		AccountID:   c.AccountID,
		ArticlePath: c.ArticlePath,
		Content:     c.Content,
		LikeCount:   c.LikeCount,
		CreatedAt:   c.CreatedAt,
	}
	if c.Account != nil {
		info.Username = &c.Account.DisplayName
		info.Avatar = c.Account.AvatarURL
	}
	return info
}

func toCommentInfos(comments []model.Comment) []dto.CommentInfo {
	items := make([]dto.CommentInfo, 0, len(comments))
	for i := range comments {
		items = append(items, *toCommentInfo(&comments[i]))
	}
	return items
}
