package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// LoginStateStore 保存每次第三方登录的 state -> 登录后跳转地址
//
// state 只能被消费一次，成功或失败都会被删除。
type LoginStateStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewLoginStateStore(client *redis.Client, prefix string, ttl time.Duration) *LoginStateStore {
	return &LoginStateStore{client: client, prefix: prefix, ttl: ttl}
}

// Begin 生成 state 并记录跳转地址
func (s *LoginStateStore) Begin(ctx context.Context, redirect string) (string, error) {
	state := uuid.NewString()
	if err := s.client.Set(ctx, s.prefix+state, redirect, s.ttl).Err(); err != nil {
		return "", unexpected("保存登录状态失败", err)
	}
	return state, nil
}

// Consume 取出并删除 state 对应的跳转地址
func (s *LoginStateStore) Consume(ctx context.Context, state string) (string, error) {
	if state == "" {
		return "", ErrLoginStateNotFound
	}
	redirect, err := s.client.GetDel(ctx, s.prefix+state).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrLoginStateNotFound
		}
		return "", unexpected("读取登录状态失败", err)
	}
	return redirect, nil
}
