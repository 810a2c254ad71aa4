package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"cm-go/internal/events"
	"cm-go/internal/infra/database"
	"cm-go/internal/model"
	"cm-go/internal/repository"
	"cm-go/internal/service"

	"github.com/glebarez/sqlite"
	"github.com/go-faker/faker/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// env 一套基于临时 SQLite 文件的完整服务
type env struct {
	db       *gorm.DB
	accounts *repository.AccountRepository
	comments *repository.CommentRepository
	likes    *repository.CommentLikeRepository
	events   *events.Recorder

	identity   *service.IdentityService
	likeSvc    *service.LikeService
	commentSvc *service.CommentService
	accountSvc *service.AccountService
}

type envOptions struct {
	like    service.LikeOptions
	comment service.CommentOptions
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "comments.db")
	cfg := database.GormConfig()
	cfg.Logger = gormlogger.Default.LogMode(gormlogger.Silent)

	db, err := gorm.Open(sqlite.Open(path), cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func newEnv(t *testing.T, opts envOptions) *env {
	t.Helper()

	db := newTestDB(t)
	rec := &events.Recorder{}
	e := &env{
		db:       db,
		accounts: repository.NewAccountRepository(db),
		comments: repository.NewCommentRepository(db),
		likes:    repository.NewCommentLikeRepository(db),
		events:   rec,
	}

	opts.like.Publisher = rec
	opts.comment.Publisher = rec

	e.identity = service.NewIdentityService(e.accounts, nil, rec)
	e.likeSvc = service.NewLikeService(db, e.accounts, e.comments, e.likes, opts.like)
	e.commentSvc = service.NewCommentService(db, e.comments, e.accounts, e.likeSvc, opts.comment)
	e.accountSvc = service.NewAccountService(db, e.accounts, e.comments, e.likeSvc, rec)
	return e
}

// newAccount 直接写库创建账号，登录名随机
func (e *env) newAccount(t *testing.T, commentEnabled bool) *model.Account {
	t.Helper()
	email := faker.Email()
	avatar := faker.URL()
	a := &model.Account{
		DisplayName:    faker.Username(),
		Email:          &email,
		AvatarURL:      &avatar,
		CommentEnabled: commentEnabled,
		Role:           model.RoleUser,
	}
	require.NoError(t, e.accounts.Create(context.Background(), a))
	return a
}

func (e *env) newComment(t *testing.T, accountID int64, articlePath string) int64 {
	t.Helper()
	info, err := e.commentSvc.Create(context.Background(), accountID, articlePath, faker.Sentence())
	require.NoError(t, err)
	return info.ID
}

func (e *env) likeCount(t *testing.T, commentID int64) int64 {
	t.Helper()
	c, err := e.comments.GetByID(context.Background(), commentID)
	require.NoError(t, err)
	return c.LikeCount
}

func (e *env) likeRows(t *testing.T, accountID, commentID int64) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&model.CommentLike{}).
		Where("account_id = ? AND comment_id = ?", accountID, commentID).Count(&n).Error)
	return n
}
