package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"cm-go/internal/events"
	"cm-go/internal/model"
	"cm-go/internal/service"
	"cm-go/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func githubAttrs(id any, login, avatar string) map[string]any {
	return map[string]any{
		"id":         id,
		"login":      login,
		"avatar_url": avatar,
		"html_url":   "https://github.com/" + login,
		"email":      login + "@example.com",
	}
}

func TestReconcile_CreatesAccountOnFirstLogin(t *testing.T) {
	e := newEnv(t, envOptions{})
	ctx := context.Background()

	p, err := e.identity.Reconcile(ctx, githubAttrs(float64(42), "alice", "https://avatars/1"), "gho_token")
	require.NoError(t, err)

	account, err := e.accounts.GetByID(ctx, p.AccountID)
	require.NoError(t, err)
	require.NotNil(t, account.ExternalID)
	assert.Equal(t, int64(42), *account.ExternalID)
	assert.Equal(t, "alice", account.DisplayName)
	assert.Equal(t, "https://avatars/1", *account.AvatarURL)
	assert.Equal(t, "https://github.com/alice", *account.ProfileURL)
	assert.Equal(t, "alice@example.com", *account.Email)
	assert.Equal(t, "gho_token", account.AccessToken)
	assert.True(t, account.CommentEnabled)
	assert.Equal(t, model.RoleUser, account.Role)
	assert.JSONEq(t, `{"id":42,"login":"alice","avatar_url":"https://avatars/1","html_url":"https://github.com/alice","email":"alice@example.com"}`, string(account.RawProfile))

	assert.Equal(t, "alice", p.Name())
	assert.Equal(t, "login", p.NameKey)
	assert.Empty(t, p.Authorities())
	v, ok := p.Attribute("avatar_url")
	assert.True(t, ok)
	assert.Equal(t, "https://avatars/1", v)

	assert.Equal(t, []string{events.TypeAccountReconciled}, e.events.Types())
}

func TestReconcile_SameExternalIDTwice(t *testing.T) {
	e := newEnv(t, envOptions{})
	ctx := context.Background()

	first, err := e.identity.Reconcile(ctx, githubAttrs(float64(42), "alice", "https://avatars/old"), "token-1")
	require.NoError(t, err)
	before, err := e.accounts.GetByID(ctx, first.AccountID)
	require.NoError(t, err)

	// 管理员关闭评论权限后再次登录，权限不能被登录覆盖
	disabled := false
	_, err = e.accountSvc.UpdatePermission(ctx, first.AccountID, &disabled, nil)
	require.NoError(t, err)

	second, err := e.identity.Reconcile(ctx, githubAttrs(float64(42), "alice-renamed", "https://avatars/new"), "token-2")
	require.NoError(t, err)
	assert.Equal(t, first.AccountID, second.AccountID)

	var count int64
	require.NoError(t, e.db.Model(&model.Account{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	after, err := e.accounts.GetByID(ctx, first.AccountID)
	require.NoError(t, err)
	assert.Equal(t, "https://avatars/new", *after.AvatarURL)
	assert.Equal(t, "alice-renamed", after.DisplayName)
	assert.Equal(t, "token-2", after.AccessToken)
	assert.False(t, after.CommentEnabled)
	assert.Equal(t, model.RoleUser, after.Role)
	assert.True(t, before.CreatedAt.Equal(after.CreatedAt), "created_at must not change")
}

func TestReconcile_AcceptsIntegerLikeIDs(t *testing.T) {
	cases := map[string]any{
		"json number": json.Number("1001"),
		"int":         1002,
		"int64":       int64(1003),
		"string":      "1004",
		"float":       float64(1005),
	}

	for name, id := range cases {
		t.Run(name, func(t *testing.T) {
			e := newEnv(t, envOptions{})
			p, err := e.identity.Reconcile(context.Background(), githubAttrs(id, "bob", ""), "t")
			require.NoError(t, err)

			account, err := e.accounts.GetByID(context.Background(), p.AccountID)
			require.NoError(t, err)
			assert.NotNil(t, account.ExternalID)
			assert.Nil(t, account.AvatarURL, "empty avatar is stored as NULL")
		})
	}
}

func TestReconcile_MalformedIdentity(t *testing.T) {
	cases := map[string]map[string]any{
		"missing id":    {"login": "carol"},
		"nil id":        {"id": nil, "login": "carol"},
		"fractional id": {"id": 1.5, "login": "carol"},
		"text id":       {"id": "carol", "login": "carol"},
		"bool id":       {"id": true, "login": "carol"},
	}

	for name, attrs := range cases {
		t.Run(name, func(t *testing.T) {
			e := newEnv(t, envOptions{})
			p, err := e.identity.Reconcile(context.Background(), attrs, "t")
			assert.Nil(t, p)
			assert.ErrorIs(t, err, service.ErrMalformedIdentity)
			assert.Equal(t, service.KindMalformedIdentity, service.KindOf(err))

			var count int64
			require.NoError(t, e.db.Model(&model.Account{}).Count(&count).Error)
			assert.Zero(t, count)
			assert.Empty(t, e.events.Events)
		})
	}
}

func TestReconcile_AdminGrant(t *testing.T) {
	e := newEnv(t, envOptions{})
	ctx := context.Background()

	p, err := e.identity.Reconcile(ctx, githubAttrs(float64(7), "root", ""), "t")
	require.NoError(t, err)

	role := model.RoleAdmin
	_, err = e.accountSvc.UpdatePermission(ctx, p.AccountID, nil, &role)
	require.NoError(t, err)

	p, err = e.identity.Reconcile(ctx, githubAttrs(float64(7), "root", ""), "t")
	require.NoError(t, err)
	assert.Equal(t, []string{service.GrantAdmin}, p.Authorities())
	assert.True(t, p.HasGrant(service.GrantAdmin))
}

func TestReconcile_SealsAccessToken(t *testing.T) {
	e := newEnv(t, envOptions{})
	ctx := context.Background()
	identity := service.NewIdentityService(e.accounts, utils.NewSealer("test-key"), nil)

	p, err := identity.Reconcile(ctx, githubAttrs(float64(99), "dave", ""), "gho_secret")
	require.NoError(t, err)

	account, err := e.accounts.GetByID(ctx, p.AccountID)
	require.NoError(t, err)
	assert.NotEqual(t, "gho_secret", account.AccessToken)
	assert.NotContains(t, account.AccessToken, "gho_secret")

	token, err := identity.AccessToken(ctx, p.AccountID)
	require.NoError(t, err)
	assert.Equal(t, "gho_secret", token)

	_, err = identity.AccessToken(ctx, 12345)
	assert.ErrorIs(t, err, service.ErrAccountNotFound)
}
