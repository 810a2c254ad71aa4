package middleware

import (
	"net/http"
	"strings"

	"cm-go/internal/api/response"
	"cm-go/internal/config"
	"cm-go/internal/service"
	"cm-go/pkg/utils"

	"github.com/gin-gonic/gin"
)

const ContextKeyPrincipal = "currentPrincipal"

// AuthRequired JWT 认证中间件，Token 来自 Authorization 头或登录 Cookie
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Abort(c, http.StatusUnauthorized, "缺少认证令牌")
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "无效或过期的认证令牌")
			return
		}

		c.Set(ContextKeyPrincipal, principalFromClaims(claims))
		c.Next()
	}
}

// AdminRequired 管理员权限中间件（必须在 AuthRequired 之后使用）
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			response.Abort(c, http.StatusUnauthorized, "缺少认证信息")
			return
		}
		if !principal.HasGrant(service.GrantAdmin) {
			response.Abort(c, http.StatusForbidden, "需要管理员权限")
			return
		}
		c.Next()
	}
}

// GetPrincipal 从 Gin Context 中获取当前主体
func GetPrincipal(c *gin.Context) (*service.Principal, bool) {
	val, exists := c.Get(ContextKeyPrincipal)
	if !exists {
		return nil, false
	}
	p, ok := val.(*service.Principal)
	return p, ok
}

// GetCurrentAccountID 从 Gin Context 中获取当前账号 ID
func GetCurrentAccountID(c *gin.Context) (int64, bool) {
	p, ok := GetPrincipal(c)
	if !ok {
		return 0, false
	}
	return p.AccountID, true
}

func principalFromClaims(claims *utils.Claims) *service.Principal {
	grants := claims.Grants
	if grants == nil {
		grants = []string{}
	}
	return &service.Principal{
		AccountID:  claims.AccountID,
		Attributes: map[string]any{service.AttrLogin: claims.Login},
		NameKey:    service.AttrLogin,
		Grants:     grants,
	}
}

// extractToken 优先取 Bearer Token，没有再读 Cookie
func extractToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
	}

	if cookie, err := c.Cookie(config.GetJWT().CookieName); err == nil {
		return cookie
	}
	return ""
}
