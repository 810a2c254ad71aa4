package worker

import (
	"context"
	"errors"

	"cm-go/internal/events"
	infraES "cm-go/internal/infra/elasticsearch"
	"cm-go/internal/model"
	"cm-go/internal/repository"
	"cm-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SearchIndex 评论搜索索引
type SearchIndex interface {
	Put(ctx context.Context, c *model.Comment) error
	Remove(ctx context.Context, commentID int64) error
	PutAll(ctx context.Context, comments []model.Comment) (success, failed int, err error)
}

// ESIndex 基于 Elasticsearch 的索引
type ESIndex struct {
	Name string
}

func (i ESIndex) Put(ctx context.Context, c *model.Comment) error {
	return infraES.SyncComment(ctx, i.Name, c)
}

func (i ESIndex) Remove(ctx context.Context, commentID int64) error {
	return infraES.DeleteComment(ctx, i.Name, commentID)
}

func (i ESIndex) PutAll(ctx context.Context, comments []model.Comment) (int, int, error) {
	return infraES.BulkSyncComments(ctx, i.Name, comments)
}

// Indexer 消费评论事件，保持搜索索引与数据库一致
type Indexer struct {
	comments *repository.CommentRepository
	index    SearchIndex
}

func NewIndexer(comments *repository.CommentRepository, index SearchIndex) *Indexer {
	return &Indexer{comments: comments, index: index}
}

// Handle 处理单条事件，评论以数据库当前状态为准
func (x *Indexer) Handle(ctx context.Context, ev *events.Event) error {
	switch ev.Type {
	case events.TypeCommentCreated, events.TypeCommentLiked, events.TypeCommentUnliked:
		comment, err := x.comments.GetByIDWithAccount(ctx, ev.CommentID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 事件到达前评论已被删除
			return x.index.Remove(ctx, ev.CommentID)
		}
		if err != nil {
			return err
		}
		return x.index.Put(ctx, comment)
	case events.TypeCommentDeleted:
		return x.index.Remove(ctx, ev.CommentID)
	default:
		logger.Debug("Event ignored", zap.String("type", ev.Type))
		return nil
	}
}

// Reindex 全量重建索引
func (x *Indexer) Reindex(ctx context.Context) error {
	comments, err := x.comments.ListAll(ctx)
	if err != nil {
		return err
	}
	success, failed, err := x.index.PutAll(ctx, comments)
	if err != nil {
		return err
	}
	logger.Info("Comments reindexed", zap.Int("success", success), zap.Int("failed", failed))
	return nil
}
