package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"cm-go/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sqlmock "gopkg.in/DATA-DOG/go-sqlmock.v1"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		DisableAutomaticPing:   true,
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestIncrementLikeCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewCommentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE `comments` SET `like_count`=like_count + ? WHERE id = ?")).
		WithArgs(1, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.IncrementLikeCount(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIncrementLikeCount_MissingComment(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewCommentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE `comments` SET `like_count`=like_count + ? WHERE id = ?")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.IncrementLikeCount(context.Background(), 404)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecrementLikeCount_GuardsZero(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewCommentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE `comments` SET `like_count`=like_count - ? WHERE id = ? AND like_count > 0")).
		WithArgs(1, 7).
		WillReturnResult(sqlmock.NewResult(0, 0))

	// 已经是 0 时不更新也不报错
	require.NoError(t, repo.DecrementLikeCount(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubtractLikeCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewCommentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE `comments` SET `like_count`=CASE WHEN like_count > ? THEN like_count - ? ELSE 0 END WHERE id = ?")).
		WithArgs(3, 3, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	ctx := context.Background()
	require.NoError(t, repo.SubtractLikeCount(ctx, 7, 3))
	// n <= 0 不发 SQL
	require.NoError(t, repo.SubtractLikeCount(ctx, 7, 0))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetForUpdate_LocksRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewCommentRepository(db)

	rows := sqlmock.NewRows([]string{"id", "account_id", "article_path", "content", "like_count"}).
		AddRow(7, 1, "/posts/a", "hi", 2)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `comments` WHERE `comments`.`id` = ?") + ".*FOR UPDATE").
		WillReturnRows(rows)

	c, err := repo.GetForUpdate(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(2), c.LikeCount)
	assert.Equal(t, "/posts/a", c.ArticlePath)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteByIDs_Empty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewCommentRepository(db)

	n, err := repo.DeleteByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelLike_OnlyActive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewCommentLikeRepository(db)

	q := regexp.QuoteMeta("UPDATE `comment_likes` SET `is_canceled`=? WHERE id = ? AND is_canceled = ?")
	mock.ExpectExec(q).WithArgs(true, 11, false).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(q).WithArgs(true, 11, false).WillReturnResult(sqlmock.NewResult(0, 0))

	ctx := context.Background()
	ok, err := repo.Cancel(ctx, 11)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.Cancel(ctx, 11)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestActiveCountsByAccount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewCommentLikeRepository(db)

	rows := sqlmock.NewRows([]string{"comment_id", "total"}).
		AddRow(3, 2).
		AddRow(5, 1)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT comment_id, COUNT(*) AS total FROM `comment_likes` WHERE account_id = ? AND is_canceled = ? GROUP BY `comment_id` ORDER BY comment_id")).
		WithArgs(9, false).
		WillReturnRows(rows)

	counts, err := repo.ActiveCountsByAccount(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, []repository.ActiveLikeCount{
		{CommentID: 3, Total: 2},
		{CommentID: 5, Total: 1},
	}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}
