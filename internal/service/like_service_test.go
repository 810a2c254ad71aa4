package service_test

import (
	"context"
	"testing"

	"cm-go/internal/events"
	"cm-go/internal/model"
	"cm-go/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLike_CounterFollowsLikeAndCascade(t *testing.T) {
	e := newEnv(t, envOptions{})
	ctx := context.Background()

	author := e.newAccount(t, true)
	fan := e.newAccount(t, true)
	commentID := e.newComment(t, author.ID, "/posts/hello")
	assert.Equal(t, int64(0), e.likeCount(t, commentID))

	res, err := e.likeSvc.Like(ctx, fan.ID, commentID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.LikeCount)
	assert.True(t, res.Liked)
	assert.Equal(t, int64(1), e.likeCount(t, commentID))

	deleted, err := e.likeSvc.CascadeDeleteForComment(ctx, commentID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.Equal(t, int64(0), e.likeCount(t, commentID))
	assert.Zero(t, e.likeRows(t, fan.ID, commentID))
}

func TestLike_ThenUnlike(t *testing.T) {
	e := newEnv(t, envOptions{})
	ctx := context.Background()

	author := e.newAccount(t, true)
	fan := e.newAccount(t, true)
	commentID := e.newComment(t, author.ID, "/posts/hello")

	_, err := e.likeSvc.Like(ctx, fan.ID, commentID)
	require.NoError(t, err)

	res, err := e.likeSvc.Unlike(ctx, fan.ID, commentID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.LikeCount)
	assert.False(t, res.Liked)

	// 取消只打标记，记录仍在
	assert.Equal(t, int64(1), e.likeRows(t, fan.ID, commentID))

	_, err = e.likeSvc.Unlike(ctx, fan.ID, commentID)
	assert.ErrorIs(t, err, service.ErrLikeNotFound)
	assert.Equal(t, int64(0), e.likeCount(t, commentID))

	assert.Equal(t, []string{
		events.TypeCommentCreated,
		events.TypeCommentLiked,
		events.TypeCommentUnliked,
	}, e.events.Types())
}

func TestUnlike_WithoutLike(t *testing.T) {
	e := newEnv(t, envOptions{})
	author := e.newAccount(t, true)
	commentID := e.newComment(t, author.ID, "/posts/hello")

	res, err := e.likeSvc.Unlike(context.Background(), author.ID, commentID)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, service.ErrLikeNotFound)
	assert.Equal(t, service.KindNotFound, service.KindOf(err))
	assert.Equal(t, int64(0), e.likeCount(t, commentID))
}

func TestLike_DuplicateCountsTwiceByDefault(t *testing.T) {
	e := newEnv(t, envOptions{})
	ctx := context.Background()

	author := e.newAccount(t, true)
	fan := e.newAccount(t, true)
	commentID := e.newComment(t, author.ID, "/posts/hello")

	_, err := e.likeSvc.Like(ctx, fan.ID, commentID)
	require.NoError(t, err)
	res, err := e.likeSvc.Like(ctx, fan.ID, commentID)
	require.NoError(t, err)

	t.Log("duplicate likes inflate the counter unless like.enforce_unique is enabled")
	assert.Equal(t, int64(2), res.LikeCount)
	assert.Equal(t, int64(2), e.likeRows(t, fan.ID, commentID))

	// 一次取消只撤销一条
	res, err = e.likeSvc.Unlike(ctx, fan.ID, commentID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.LikeCount)
	assert.True(t, res.Liked)
}

func TestLike_EnforceUnique(t *testing.T) {
	e := newEnv(t, envOptions{like: service.LikeOptions{EnforceUnique: true}})
	ctx := context.Background()

	author := e.newAccount(t, true)
	fan := e.newAccount(t, true)
	commentID := e.newComment(t, author.ID, "/posts/hello")

	_, err := e.likeSvc.Like(ctx, fan.ID, commentID)
	require.NoError(t, err)

	res, err := e.likeSvc.Like(ctx, fan.ID, commentID)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, service.ErrAlreadyLiked)
	assert.Equal(t, service.KindConflict, service.KindOf(err))
	assert.Equal(t, int64(1), e.likeCount(t, commentID))
	assert.Equal(t, int64(1), e.likeRows(t, fan.ID, commentID))

	// 取消后可以重新点赞
	_, err = e.likeSvc.Unlike(ctx, fan.ID, commentID)
	require.NoError(t, err)
	res, err = e.likeSvc.Like(ctx, fan.ID, commentID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.LikeCount)
}

func TestLike_MissingTargets(t *testing.T) {
	e := newEnv(t, envOptions{})
	ctx := context.Background()

	author := e.newAccount(t, true)
	commentID := e.newComment(t, author.ID, "/posts/hello")

	_, err := e.likeSvc.Like(ctx, author.ID, 9999)
	assert.ErrorIs(t, err, service.ErrCommentNotFound)

	_, err = e.likeSvc.Like(ctx, 9999, commentID)
	assert.ErrorIs(t, err, service.ErrAccountNotFound)

	_, err = e.likeSvc.Unlike(ctx, author.ID, 9999)
	assert.ErrorIs(t, err, service.ErrCommentNotFound)

	var n int64
	require.NoError(t, e.db.Model(&model.CommentLike{}).Count(&n).Error)
	assert.Zero(t, n)
	assert.Equal(t, int64(0), e.likeCount(t, commentID))
}

func TestListLikes(t *testing.T) {
	e := newEnv(t, envOptions{})
	ctx := context.Background()

	author := e.newAccount(t, true)
	fan := e.newAccount(t, true)
	first := e.newComment(t, author.ID, "/posts/a")
	second := e.newComment(t, author.ID, "/posts/b")

	_, err := e.likeSvc.Like(ctx, fan.ID, first)
	require.NoError(t, err)
	_, err = e.likeSvc.Like(ctx, fan.ID, second)
	require.NoError(t, err)
	_, err = e.likeSvc.Unlike(ctx, fan.ID, second)
	require.NoError(t, err)

	byComment, err := e.likeSvc.ListLikesForComment(ctx, first)
	require.NoError(t, err)
	require.Len(t, byComment, 1)
	assert.Equal(t, fan.ID, byComment[0].AccountID)
	assert.Equal(t, fan.DisplayName, byComment[0].Username)

	byAccount, err := e.likeSvc.ListLikesForAccount(ctx, fan.DisplayName)
	require.NoError(t, err)
	require.Len(t, byAccount, 1)
	assert.Equal(t, first, byAccount[0].CommentID)
	assert.Equal(t, "/posts/a", byAccount[0].ArticlePath)

	unknown, err := e.likeSvc.ListLikesForAccount(ctx, "nobody-with-this-name")
	require.NoError(t, err)
	assert.NotNil(t, unknown)
	assert.Empty(t, unknown)

	_, err = e.likeSvc.ListLikesForComment(ctx, 9999)
	assert.ErrorIs(t, err, service.ErrCommentNotFound)
}

func TestCascadeDeleteForAccount_OnlyActiveLikesReduceCounter(t *testing.T) {
	e := newEnv(t, envOptions{})
	ctx := context.Background()

	author := e.newAccount(t, true)
	fan := e.newAccount(t, true)
	other := e.newAccount(t, true)
	kept := e.newComment(t, author.ID, "/posts/a")
	canceled := e.newComment(t, author.ID, "/posts/b")

	// kept: fan 两次 + other 一次
	for _, id := range []int64{fan.ID, fan.ID, other.ID} {
		_, err := e.likeSvc.Like(ctx, id, kept)
		require.NoError(t, err)
	}
	// canceled: fan 点赞后取消，other 一次
	_, err := e.likeSvc.Like(ctx, fan.ID, canceled)
	require.NoError(t, err)
	_, err = e.likeSvc.Unlike(ctx, fan.ID, canceled)
	require.NoError(t, err)
	_, err = e.likeSvc.Like(ctx, other.ID, canceled)
	require.NoError(t, err)

	deleted, err := e.likeSvc.CascadeDeleteForAccount(ctx, fan.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	assert.Equal(t, int64(1), e.likeCount(t, kept))
	assert.Equal(t, int64(1), e.likeCount(t, canceled))
	assert.Zero(t, e.likeRows(t, fan.ID, kept))
	assert.Zero(t, e.likeRows(t, fan.ID, canceled))
	assert.Equal(t, int64(1), e.likeRows(t, other.ID, kept))
}

func TestCascadeDeleteForAccount_NoLikes(t *testing.T) {
	e := newEnv(t, envOptions{})
	fan := e.newAccount(t, true)

	deleted, err := e.likeSvc.CascadeDeleteForAccount(context.Background(), fan.ID)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestCascadeDeleteForAccount_CounterFloorsAtZero(t *testing.T) {
	e := newEnv(t, envOptions{})
	ctx := context.Background()

	author := e.newAccount(t, true)
	fan := e.newAccount(t, true)
	commentID := e.newComment(t, author.ID, "/posts/a")

	for i := 0; i < 2; i++ {
		_, err := e.likeSvc.Like(ctx, fan.ID, commentID)
		require.NoError(t, err)
	}
	// 计数被外部改小，扣减不能变成负数
	require.NoError(t, e.db.Model(&model.Comment{}).Where("id = ?", commentID).
		UpdateColumn("like_count", 1).Error)

	deleted, err := e.likeSvc.CascadeDeleteForAccount(ctx, fan.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.Equal(t, int64(0), e.likeCount(t, commentID))
}

func TestCascadeDeleteForComment_CanceledOnly(t *testing.T) {
	e := newEnv(t, envOptions{})
	ctx := context.Background()

	author := e.newAccount(t, true)
	fan := e.newAccount(t, true)
	commentID := e.newComment(t, author.ID, "/posts/a")

	_, err := e.likeSvc.Like(ctx, fan.ID, commentID)
	require.NoError(t, err)
	_, err = e.likeSvc.Unlike(ctx, fan.ID, commentID)
	require.NoError(t, err)

	deleted, err := e.likeSvc.CascadeDeleteForComment(ctx, commentID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.Equal(t, int64(0), e.likeCount(t, commentID))
}

func TestCascadeDeleteForComment_MixedLikesResetCounter(t *testing.T) {
	e := newEnv(t, envOptions{})
	ctx := context.Background()

	author := e.newAccount(t, true)
	commentID := e.newComment(t, author.ID, "/posts/a")

	for i := 0; i < 4; i++ {
		fan := e.newAccount(t, true)
		_, err := e.likeSvc.Like(ctx, fan.ID, commentID)
		require.NoError(t, err)
		if i%2 == 1 {
			_, err = e.likeSvc.Unlike(ctx, fan.ID, commentID)
			require.NoError(t, err)
		}
	}
	require.Equal(t, int64(2), e.likeCount(t, commentID))

	deleted, err := e.likeSvc.CascadeDeleteForComment(ctx, commentID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)
	assert.Equal(t, int64(0), e.likeCount(t, commentID))

	var rows int64
	require.NoError(t, e.db.Model(&model.CommentLike{}).Where("comment_id = ?", commentID).Count(&rows).Error)
	assert.Zero(t, rows)
}
