package worker_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"cm-go/internal/events"
	"cm-go/internal/infra/database"
	"cm-go/internal/model"
	"cm-go/internal/repository"
	"cm-go/internal/worker"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type memoryIndex struct {
	docs map[int64]model.Comment
}

func newMemoryIndex() *memoryIndex {
	return &memoryIndex{docs: map[int64]model.Comment{}}
}

func (m *memoryIndex) Put(_ context.Context, c *model.Comment) error {
	m.docs[c.ID] = *c
	return nil
}

func (m *memoryIndex) Remove(_ context.Context, commentID int64) error {
	delete(m.docs, commentID)
	return nil
}

func (m *memoryIndex) PutAll(_ context.Context, comments []model.Comment) (int, int, error) {
	for _, c := range comments {
		m.docs[c.ID] = c
	}
	return len(comments), 0, nil
}

func setup(t *testing.T) (*gorm.DB, *repository.CommentRepository) {
	t.Helper()

	cfg := database.GormConfig()
	cfg.Logger = gormlogger.Default.LogMode(gormlogger.Silent)
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "worker.db")), cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.AutoMigrate(db))

	return db, repository.NewCommentRepository(db)
}

func seedComment(t *testing.T, db *gorm.DB, likes int64) *model.Comment {
	t.Helper()
	a := &model.Account{DisplayName: "writer", Role: model.RoleUser, CommentEnabled: true}
	require.NoError(t, db.Create(a).Error)
	c := &model.Comment{AccountID: a.ID, ArticlePath: "/posts/a", Content: "hello", LikeCount: likes, CreatedAt: time.Now()}
	require.NoError(t, db.Create(c).Error)
	return c
}

func TestIndexer_Handle(t *testing.T) {
	db, comments := setup(t)
	idx := newMemoryIndex()
	indexer := worker.NewIndexer(comments, idx)
	ctx := context.Background()

	c := seedComment(t, db, 0)

	require.NoError(t, indexer.Handle(ctx, &events.Event{Type: events.TypeCommentCreated, CommentID: c.ID}))
	require.Contains(t, idx.docs, c.ID)
	assert.Equal(t, "writer", idx.docs[c.ID].Account.DisplayName)

	// 点赞事件以库里的计数为准，不用事件里的值
	require.NoError(t, db.Model(&model.Comment{}).Where("id = ?", c.ID).UpdateColumn("like_count", 5).Error)
	require.NoError(t, indexer.Handle(ctx, &events.Event{Type: events.TypeCommentLiked, CommentID: c.ID, LikeCount: 1}))
	assert.Equal(t, int64(5), idx.docs[c.ID].LikeCount)

	require.NoError(t, indexer.Handle(ctx, &events.Event{Type: events.TypeCommentDeleted, CommentID: c.ID}))
	assert.NotContains(t, idx.docs, c.ID)

	require.NoError(t, indexer.Handle(ctx, &events.Event{Type: events.TypeAccountReconciled, AccountID: 1}))
	assert.Empty(t, idx.docs)
}

func TestIndexer_HandleStaleEvent(t *testing.T) {
	_, comments := setup(t)
	idx := newMemoryIndex()
	idx.docs[77] = model.Comment{ID: 77}
	indexer := worker.NewIndexer(comments, idx)

	// 评论已不存在，索引里的旧文档被清掉
	require.NoError(t, indexer.Handle(context.Background(), &events.Event{Type: events.TypeCommentUnliked, CommentID: 77}))
	assert.NotContains(t, idx.docs, int64(77))
}

func TestIndexer_Reindex(t *testing.T) {
	db, comments := setup(t)
	idx := newMemoryIndex()
	indexer := worker.NewIndexer(comments, idx)

	first := seedComment(t, db, 1)
	second := seedComment(t, db, 2)

	require.NoError(t, indexer.Reindex(context.Background()))
	assert.Len(t, idx.docs, 2)
	assert.Equal(t, int64(1), idx.docs[first.ID].LikeCount)
	assert.Equal(t, int64(2), idx.docs[second.ID].LikeCount)
}
