package events

import (
	"context"
	"fmt"
	"time"
)

// 事件类型
const (
	TypeCommentCreated    = "comment.created"
	TypeCommentDeleted    = "comment.deleted"
	TypeCommentLiked      = "comment.liked"
	TypeCommentUnliked    = "comment.unliked"
	TypeAccountReconciled = "account.reconciled"
)

// Event 评论域事件，写入 Kafka 的消息体
type Event struct {
	Type        string    `json:"type"`
	CommentID   int64     `json:"comment_id,omitempty"`
	AccountID   int64     `json:"account_id,omitempty"`
	ArticlePath string    `json:"article_path,omitempty"`
	LikeCount   int64     `json:"like_count"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// Key 消息 key，同一评论的事件落在同一分区
func (e *Event) Key() string {
	if e.CommentID != 0 {
		return fmt.Sprintf("comment-%d", e.CommentID)
	}
	return fmt.Sprintf("account-%d", e.AccountID)
}

// Publisher 事件发布
type Publisher interface {
	Publish(ctx context.Context, ev *Event) error
}

// NopPublisher 未启用 Kafka 时使用
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, *Event) error { return nil }

// Recorder 把事件留在内存里，测试用
type Recorder struct {
	Events []Event
}

func (r *Recorder) Publish(_ context.Context, ev *Event) error {
	r.Events = append(r.Events, *ev)
	return nil
}

// Types 返回已记录事件的类型序列
func (r *Recorder) Types() []string {
	types := make([]string, 0, len(r.Events))
	for _, ev := range r.Events {
		types = append(types, ev.Type)
	}
	return types
}
