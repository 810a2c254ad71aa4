package elasticsearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"cm-go/internal/model"
	"cm-go/pkg/logger"

	"go.uber.org/zap"
)

// CommentDoc ES 评论文档结构
type CommentDoc struct {
	ID          int64  `json:"id"`
	AccountID   int64  `json:"account_id"`
	Username    string `json:"username"`
	ArticlePath string `json:"article_path"`
	Content     string `json:"content"`
	LikeCount   int64  `json:"like_count"`
	CreatedAt   string `json:"created_at"`
}

// NewCommentDoc 由评论构造文档，Account 未预加载时用户名为空
func NewCommentDoc(c *model.Comment) *CommentDoc {
	doc := &CommentDoc{
		ID:          c.ID,
		AccountID:   c.AccountID,
		ArticlePath: c.ArticlePath,
		Content:     c.Content,
		LikeCount:   c.LikeCount,
		CreatedAt:   c.CreatedAt.Format(time.RFC3339),
	}
	if c.Account != nil {
		doc.Username = c.Account.DisplayName
	}
	return doc
}

// SyncComment 同步单条评论到 ES
func SyncComment(ctx context.Context, indexName string, c *model.Comment) error {
	body, err := json.Marshal(NewCommentDoc(c))
	if err != nil {
		return err
	}

	resp, err := Index(ctx, indexName, strconv.FormatInt(c.ID, 10), bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return fmt.Errorf("index document failed: %s", resp.String())
	}

	logger.Debug("Comment synced to ES", zap.Int64("comment_id", c.ID))
	return nil
}

// DeleteComment 从 ES 删除评论，文档不存在视为成功
func DeleteComment(ctx context.Context, indexName string, commentID int64) error {
	resp, err := Delete(ctx, indexName, strconv.FormatInt(commentID, 10))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.IsError() && resp.StatusCode != 404 {
		return fmt.Errorf("delete document failed: %s", resp.String())
	}
	return nil
}

// BuildBulkBody 生成 bulk index 请求体（NDJSON）
func BuildBulkBody(indexName string, comments []model.Comment) (string, error) {
	var buf strings.Builder
	for i := range comments {
		docBody, err := json.Marshal(NewCommentDoc(&comments[i]))
		if err != nil {
			return "", err
		}
		buf.WriteString(fmt.Sprintf(`{"index":{"_index":"%s","_id":"%d"}}`, indexName, comments[i].ID))
		buf.WriteString("\n")
		buf.Write(docBody)
		buf.WriteString("\n")
	}
	return buf.String(), nil
}

// BulkSyncComments 批量同步评论到 ES
func BulkSyncComments(ctx context.Context, indexName string, comments []model.Comment) (success, failed int, err error) {
	body, err := BuildBulkBody(indexName, comments)
	if err != nil {
		return 0, len(comments), err
	}
	if body == "" {
		return 0, 0, nil
	}

	resp, err := Bulk(ctx, strings.NewReader(body))
	if err != nil {
		return 0, len(comments), err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return 0, len(comments), fmt.Errorf("bulk failed: %s", resp.String())
	}

	var bulkResp struct {
		Errors bool `json:"errors"`
		Items  []struct {
			Index struct {
				Status int `json:"status"`
			} `json:"index"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&bulkResp); err != nil {
		return len(comments), 0, nil
	}

	for _, item := range bulkResp.Items {
		if item.Index.Status >= 200 && item.Index.Status < 300 {
			success++
		} else {
			failed++
		}
	}

	logger.Info("Bulk sync to ES completed", zap.Int("success", success), zap.Int("failed", failed))
	return success, failed, nil
}
