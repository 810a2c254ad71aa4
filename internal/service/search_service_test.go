package service_test

import (
	"context"
	"testing"

	"cm-go/internal/api/dto"
	"cm-go/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchComments_FallsBackToDatabase(t *testing.T) {
	e := newEnv(t, envOptions{})
	ctx := context.Background()
	search := service.NewSearchService(e.comments, "comments")

	author := e.newAccount(t, true)
	_, err := e.commentSvc.Create(ctx, author.ID, "/posts/go", "goroutines are cheap")
	require.NoError(t, err)
	_, err = e.commentSvc.Create(ctx, author.ID, "/posts/rust", "borrow checker")
	require.NoError(t, err)

	// ES 未初始化，走 DB
	data, err := search.SearchComments(ctx, &dto.SearchCommentRequest{Q: "goroutines"})
	require.NoError(t, err)
	assert.Equal(t, "db", data.Source)
	require.Len(t, data.Comments, 1)
	assert.Equal(t, "/posts/go", data.Comments[0].ArticlePath)
	assert.Equal(t, int64(1), data.Total)

	byPath, err := search.SearchComments(ctx, &dto.SearchCommentRequest{Q: "/posts/rust", Limit: 500})
	require.NoError(t, err)
	assert.Len(t, byPath.Comments, 1)
}

func TestSearchComments_EmptyQuery(t *testing.T) {
	e := newEnv(t, envOptions{})
	search := service.NewSearchService(e.comments, "comments")

	_, err := search.SearchComments(context.Background(), &dto.SearchCommentRequest{Q: "   "})
	assert.Equal(t, service.KindValidation, service.KindOf(err))
}
