package events

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventKey(t *testing.T) {
	assert.Equal(t, "comment-12", (&Event{Type: TypeCommentLiked, CommentID: 12, AccountID: 3}).Key())
	assert.Equal(t, "account-3", (&Event{Type: TypeAccountReconciled, AccountID: 3}).Key())
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	ctx := context.Background()

	require.NoError(t, r.Publish(ctx, &Event{Type: TypeCommentCreated, CommentID: 1}))
	require.NoError(t, r.Publish(ctx, &Event{Type: TypeCommentDeleted, CommentID: 1}))

	assert.Equal(t, []string{TypeCommentCreated, TypeCommentDeleted}, r.Types())
	assert.NoError(t, NopPublisher{}.Publish(ctx, &Event{}))
}
