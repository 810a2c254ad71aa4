package service

import (
	"context"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"

	"cm-go/internal/events"
	"cm-go/internal/model"
	"cm-go/internal/repository"
	"cm-go/pkg/logger"
	"cm-go/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// GitHub 用户资料中的字段名
const (
	AttrID         = "id"
	AttrLogin      = "login"
	AttrAvatarURL  = "avatar_url"
	AttrProfileURL = "html_url"
	AttrEmail      = "email"
)

type IdentityService struct {
	accountRepo *repository.AccountRepository
	sealer      *utils.Sealer
	publisher   events.Publisher
}

// NewIdentityService sealer 为 nil 时凭证明文落库，publisher 为 nil 时不发事件
func NewIdentityService(accountRepo *repository.AccountRepository, sealer *utils.Sealer, publisher events.Publisher) *IdentityService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &IdentityService{accountRepo: accountRepo, sealer: sealer, publisher: publisher}
}

// Reconcile 用第三方资料创建或更新本地账号，返回本地主体
func (s *IdentityService) Reconcile(ctx context.Context, attrs map[string]any, accessToken string) (*Principal, error) {
	externalID, ok := parseExternalID(attrs[AttrID])
	if !ok {
		return nil, ErrMalformedIdentity
	}

	token, err := s.sealer.Seal(accessToken)
	if err != nil {
		return nil, unexpected("加密第三方凭证失败", err)
	}

	raw, err := json.Marshal(attrs)
	if err != nil {
		return nil, unexpected("序列化第三方资料失败", err)
	}

	account := &model.Account{
		ExternalID:     &externalID,
		DisplayName:    stringAttr(attrs, AttrLogin),
		Email:          optionalStringAttr(attrs, AttrEmail),
		AvatarURL:      optionalStringAttr(attrs, AttrAvatarURL),
		ProfileURL:     optionalStringAttr(attrs, AttrProfileURL),
		AccessToken:    token,
		CommentEnabled: true,
		Role:           model.RoleUser,
		RawProfile:     datatypes.JSON(raw),
	}

	stored, err := s.accountRepo.UpsertByExternalID(ctx, account)
	if err != nil {
		return nil, unexpected("同步第三方账号失败", err)
	}

	logger.Info("Account reconciled",
		zap.Int64("account_id", stored.ID),
		zap.Int64("external_id", externalID),
		zap.String("login", stored.DisplayName),
	)

	s.publish(ctx, &events.Event{
		Type:       events.TypeAccountReconciled,
		AccountID:  stored.ID,
		OccurredAt: time.Now(),
	})

	return &Principal{
		AccountID:  stored.ID,
		Attributes: attrs,
		NameKey:    AttrLogin,
		Grants:     grantsForRole(stored.Role),
	}, nil
}

// AccessToken 读取账号保存的第三方凭证（解密后）
func (s *IdentityService) AccessToken(ctx context.Context, accountID int64) (string, error) {
	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return "", notFoundOr(ErrAccountNotFound, "查询账号失败", err)
	}
	token, err := s.sealer.Open(account.AccessToken)
	if err != nil {
		return "", unexpected("解密第三方凭证失败", err)
	}
	return token, nil
}

func (s *IdentityService) publish(ctx context.Context, ev *events.Event) {
	if err := s.publisher.Publish(ctx, ev); err != nil {
		logger.Warn("Publish event failed", zap.String("type", ev.Type), zap.Error(err))
	}
}

// parseExternalID 接受 JSON 数字、整数类型和纯数字字符串
func parseExternalID(v any) (int64, bool) {
	switch id := v.(type) {
	case float64:
		if id != math.Trunc(id) || math.IsInf(id, 0) || math.Abs(id) > math.MaxInt64/2 {
			return 0, false
		}
		return int64(id), true
	case json.Number:
		n, err := id.Int64()
		return n, err == nil
	case int:
		return int64(id), true
	case int32:
		return int64(id), true
	case int64:
		return id, true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func stringAttr(attrs map[string]any, key string) string {
	if v, ok := attrs[key].(string); ok {
		return v
	}
	return ""
}

func optionalStringAttr(attrs map[string]any, key string) *string {
	v, ok := attrs[key].(string)
	if !ok || v == "" {
		return nil
	}
	return &v
}
