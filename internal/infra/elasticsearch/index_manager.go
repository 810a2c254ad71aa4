package elasticsearch

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"cm-go/pkg/logger"

	"go.uber.org/zap"
)

// CommentsIndexMapping 返回 comments 索引的 mapping
func CommentsIndexMapping() string {
	return `{
		"settings": {
			"number_of_shards": 1,
			"number_of_replicas": 0
		},
		"mappings": {
			"properties": {
				"id": {"type": "long"},
				"account_id": {"type": "long"},
				"username": {"type": "keyword"},
				"article_path": {
					"type": "text",
					"fields": {"keyword": {"type": "keyword", "ignore_above": 255}}
				},
				"content": {"type": "text"},
				"like_count": {"type": "long"},
				"created_at": {"type": "date", "format": "strict_date_optional_time||epoch_millis"}
			}
		}
	}`
}

// EnsureCommentsIndex 确保 comments 索引存在，不存在则创建
func EnsureCommentsIndex(ctx context.Context, indexName string) error {
	exists, err := IndicesExists(ctx, indexName)
	if err != nil {
		return fmt.Errorf("check index exists: %w", err)
	}
	if exists {
		logger.Info("Elasticsearch comments index already exists", zap.String("index", indexName))
		return nil
	}

	resp, err := IndicesCreate(ctx, indexName, bytes.NewReader([]byte(CommentsIndexMapping())))
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("create index failed: %s", resp.String())
	}

	logger.Info("Elasticsearch comments index created", zap.String("index", indexName))
	return nil
}

// InitIndexes 初始化所有索引（启动时调用）
func InitIndexes(indexName string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return EnsureCommentsIndex(ctx, indexName)
}
