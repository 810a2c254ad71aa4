package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"cm-go/internal/api/dto"
	infraES "cm-go/internal/infra/elasticsearch"
	"cm-go/internal/model"
	"cm-go/internal/repository"
	"cm-go/pkg/logger"

	"go.uber.org/zap"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

type SearchService struct {
	commentRepo *repository.CommentRepository
	indexName   string
}

func NewSearchService(commentRepo *repository.CommentRepository, indexName string) *SearchService {
	return &SearchService{commentRepo: commentRepo, indexName: indexName}
}

// SearchComments 搜索评论（ES 优先，失败则降级到 DB）
func (s *SearchService) SearchComments(ctx context.Context, req *dto.SearchCommentRequest) (*dto.SearchCommentData, error) {
	req.Q = strings.TrimSpace(req.Q)
	if req.Q == "" {
		return nil, newError(KindValidation, "搜索关键词不能为空")
	}
	if req.Limit < 1 || req.Limit > maxSearchLimit {
		req.Limit = defaultSearchLimit
	}

	data, err := s.searchFromES(ctx, req)
	if err != nil {
		logger.Warn("ES search failed, fallback to DB", zap.Error(err))
		return s.searchFromDB(ctx, req)
	}
	return data, nil
}

func (s *SearchService) searchFromES(ctx context.Context, req *dto.SearchCommentRequest) (*dto.SearchCommentData, error) {
	query := map[string]interface{}{
		"size": req.Limit,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":    req.Q,
				"fields":   []string{"content^2", "article_path", "username"},
				"type":     "best_fields",
				"operator": "or",
			},
		},
		"sort": []interface{}{"_score", map[string]interface{}{"created_at": "desc"}},
	}
	queryJSON, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	resp, err := infraES.Search(ctx, s.indexName, bytes.NewReader(queryJSON))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.IsError() {
		return nil, fmt.Errorf("ES search error: %s", resp.String())
	}

	var esResp struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source struct {
					ID int64 `json:"id"`
				} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&esResp); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(esResp.Hits.Hits))
	for _, h := range esResp.Hits.Hits {
		ids = append(ids, h.Source.ID)
	}

	comments, err := s.commentRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// 按 ES 命中顺序输出，已删除但索引未同步的评论直接跳过
	byID := make(map[int64]*model.Comment, len(comments))
	for i := range comments {
		byID[comments[i].ID] = &comments[i]
	}
	items := make([]dto.CommentInfo, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			items = append(items, *toCommentInfo(c))
		}
	}

	return &dto.SearchCommentData{
		Comments: items,
		Total:    esResp.Hits.Total.Value,
		Source:   "es",
	}, nil
}

func (s *SearchService) searchFromDB(ctx context.Context, req *dto.SearchCommentRequest) (*dto.SearchCommentData, error) {
	comments, err := s.commentRepo.SearchByKeyword(ctx, req.Q, req.Limit)
	if err != nil {
		return nil, unexpected("搜索评论失败", err)
	}
	items := toCommentInfos(comments)
	return &dto.SearchCommentData{
		Comments: items,
		Total:    int64(len(items)),
		Source:   "db",
	}, nil
}
