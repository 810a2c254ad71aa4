package minio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"cm-go/internal/config"
	"cm-go/internal/model"
	"cm-go/pkg/logger"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

var client *minio.Client

// Init 初始化 MinIO 客户端并确保归档 Bucket 存在
func Init(cfg *config.MinIOConfig) error {
	var err error
	client, err = minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	exists, err := client.BucketExists(ctx, cfg.ArchiveBucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", cfg.ArchiveBucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.ArchiveBucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", cfg.ArchiveBucket, err)
		}
		logger.Info("MinIO bucket created", zap.String("bucket", cfg.ArchiveBucket))
	}

	logger.Info("MinIO connected",
		zap.String("endpoint", cfg.Endpoint),
		zap.String("archive_bucket", cfg.ArchiveBucket),
	)

	return nil
}

// ArticleSnapshot 文章评论归档内容
type ArticleSnapshot struct {
	ArticlePath string          `json:"article_path"`
	ArchivedAt  time.Time       `json:"archived_at"`
	Comments    []model.Comment `json:"comments"`
}

// ObjectName 归档对象名：comments/<编码后的文章路径>/<时间>-<uuid>.json
func ObjectName(articlePath string, at time.Time) string {
	key := url.PathEscape(strings.TrimPrefix(articlePath, "/"))
	if key == "" {
		key = "_root"
	}
	return fmt.Sprintf("comments/%s/%s-%s.json", key, at.UTC().Format("20060102T150405Z"), uuid.NewString())
}

// Archiver 把文章评论快照写入归档 Bucket
type Archiver struct {
	bucket string
}

func NewArchiver(bucket string) *Archiver {
	return &Archiver{bucket: bucket}
}

func (a *Archiver) ArchiveArticle(ctx context.Context, articlePath string, comments []model.Comment) (string, error) {
	if client == nil {
		return "", fmt.Errorf("minio client not initialized")
	}

	now := time.Now()
	payload, err := json.Marshal(&ArticleSnapshot{
		ArticlePath: articlePath,
		ArchivedAt:  now,
		Comments:    comments,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	objectName := ObjectName(articlePath, now)
	_, err = client.PutObject(ctx, a.bucket, objectName, bytes.NewReader(payload), int64(len(payload)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to minio: %w", err)
	}

	logger.Info("Article comments archived",
		zap.String("bucket", a.bucket),
		zap.String("object", objectName),
		zap.Int("comments", len(comments)),
	)
	return objectName, nil
}
