package service

import (
	"fmt"

	"cm-go/internal/model"
)

// GrantAdmin 管理员权限
const GrantAdmin = "admin"

// Authenticated 已认证主体
type Authenticated interface {
	Attribute(key string) (any, bool)
	Name() string
	Authorities() []string
}

// Principal 第三方登录后的本地主体，Attributes 保留第三方原始资料
type Principal struct {
	AccountID  int64
	Attributes map[string]any
	NameKey    string
	Grants     []string
}

var _ Authenticated = (*Principal)(nil)

func (p *Principal) Attribute(key string) (any, bool) {
	v, ok := p.Attributes[key]
	return v, ok
}

func (p *Principal) Name() string {
	v, ok := p.Attributes[p.NameKey]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func (p *Principal) Authorities() []string {
	return p.Grants
}

func (p *Principal) HasGrant(grant string) bool {
	for _, g := range p.Grants {
		if g == grant {
			return true
		}
	}
	return false
}

func grantsForRole(role string) []string {
	if role == model.RoleAdmin {
		return []string{GrantAdmin}
	}
	return []string{}
}
