package handler

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"cm-go/internal/api/dto"
	"cm-go/internal/api/middleware"
	"cm-go/internal/api/response"
	"cm-go/internal/config"
	"cm-go/internal/infra/oauth"
	"cm-go/internal/service"
	"cm-go/pkg/logger"
	"cm-go/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoginStates 第三方登录 state 存取
type LoginStates interface {
	Begin(ctx context.Context, redirect string) (string, error)
	Consume(ctx context.Context, state string) (string, error)
}

type AuthHandler struct {
	provider        oauth.Provider
	states          LoginStates
	identityService *service.IdentityService
	accountService  *service.AccountService
}

func NewAuthHandler(
	provider oauth.Provider,
	states LoginStates,
	identityService *service.IdentityService,
	accountService *service.AccountService,
) *AuthHandler {
	return &AuthHandler{
		provider:        provider,
		states:          states,
		identityService: identityService,
		accountService:  accountService,
	}
}

// Authorize 跳转到 GitHub 授权页
// @Summary GitHub 登录
// @Tags 认证
// @Param redirect_uri query string false "登录完成后跳转地址"
// @Success 302 "跳转到 GitHub"
// @Router /oauth2/authorization/github [get]
func (h *AuthHandler) Authorize(c *gin.Context) {
	redirect := allowedRedirect(c.Query("redirect_uri"))

	state, err := h.states.Begin(c.Request.Context(), redirect)
	if err != nil {
		handleServiceError(c, "Begin oauth login", err)
		return
	}

	c.Redirect(http.StatusFound, h.provider.AuthCodeURL(state))
}

// Callback GitHub 授权回调
// @Summary GitHub 授权回调
// @Tags 认证
// @Param code query string false "授权码"
// @Param state query string true "登录 state"
// @Success 302 "登录成功，跳回前端"
// @Failure 400 {object} response.Body "回调参数错误"
// @Failure 401 {object} response.Body "登录失败"
// @Router /login/oauth2/code/github [get]
func (h *AuthHandler) Callback(c *gin.Context) {
	var q dto.OAuthCallbackQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "回调参数错误")
		return
	}

	ctx := c.Request.Context()

	// state 无论成功失败都只能用一次
	redirect, err := h.states.Consume(ctx, q.State)
	if err != nil {
		handleServiceError(c, "Consume oauth state", err)
		return
	}

	if q.Error != "" || q.Code == "" {
		logger.Warn("OAuth provider returned error", zap.String("error", q.Error))
		c.Redirect(http.StatusFound, withQuery(redirect, "error", "oauth_failure"))
		return
	}

	token, err := h.provider.Exchange(ctx, q.Code)
	if err != nil {
		logger.Warn("OAuth code exchange failed", zap.Error(err))
		c.Redirect(http.StatusFound, withQuery(redirect, "error", "oauth_failure"))
		return
	}

	attrs, err := h.provider.FetchUser(ctx, token)
	if err != nil {
		logger.Warn("OAuth fetch user failed", zap.Error(err))
		c.Redirect(http.StatusFound, withQuery(redirect, "error", "oauth_failure"))
		return
	}

	principal, err := h.identityService.Reconcile(ctx, attrs, token.AccessToken)
	if err != nil {
		if service.KindOf(err) == service.KindMalformedIdentity {
			response.Unauthorized(c, "登录失败: "+service.ErrMalformedIdentity.Message)
			return
		}
		logger.Error("Reconcile account failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
		response.Unauthorized(c, "登录失败，请稍后重试")
		return
	}

	jwtToken, err := utils.GenerateToken(principal.AccountID, principal.Name(), principal.Authorities())
	if err != nil {
		logger.Error("Generate token failed", zap.Error(err))
		response.InternalError(c, "登录失败，请稍后重试")
		return
	}

	setTokenCookie(c, jwtToken, int(config.GetJWT().ExpireDuration().Seconds()))
	c.Redirect(http.StatusFound, redirect)
}

// Logout 退出登录
// @Summary 退出登录
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Body "退出成功"
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	// JWT 无状态，清掉 Cookie 即可
	setTokenCookie(c, "", -1)
	response.OK(c, "退出成功", nil)
}

// Me 获取当前用户
// @Summary 获取当前用户
// @Tags 认证
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Body{data=dto.CurrentUser} "获取成功"
// @Failure 401 {object} response.Body "未登录"
// @Router /api/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Unauthorized(c, "无法获取用户信息")
		return
	}

	account, err := h.accountService.Get(c.Request.Context(), principal.AccountID)
	if err != nil {
		if service.KindOf(err) == service.KindNotFound {
			response.Unauthorized(c, err.Error())
			return
		}
		handleServiceError(c, "Get current account", err)
		return
	}

	response.OK(c, "获取成功", &dto.CurrentUser{
		Account:     *account,
		Login:       principal.Name(),
		Authorities: principal.Authorities(),
	})
}

func setTokenCookie(c *gin.Context, value string, maxAge int) {
	secure := config.GetApp().Mode == gin.ReleaseMode
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(config.GetJWT().CookieName, value, maxAge, "/", "", secure, true)
}

// allowedRedirect 只接受默认跳转地址或跨域白名单内来源的绝对地址，其余一律回落到默认地址
func allowedRedirect(target string) string {
	fallback := config.GetOAuth().DefaultRedirect
	if target == "" || target == fallback {
		return fallback
	}

	u, err := url.Parse(target)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") || u.User != nil {
		return fallback
	}
	origin := u.Scheme + "://" + u.Host

	if d, err := url.Parse(fallback); err == nil && d.Host != "" && origin == d.Scheme+"://"+d.Host {
		return target
	}
	for _, o := range config.GetCORS().AllowedOrigins {
		if strings.TrimRight(strings.TrimSpace(o), "/") == origin {
			return target
		}
	}

	logger.Warn("Rejected oauth redirect target", zap.String("redirect_uri", target))
	return fallback
}

// withQuery 在跳转地址上追加查询参数，地址无法解析时原样拼接
func withQuery(target, key, value string) string {
	u, err := url.Parse(target)
	if err != nil {
		return target + "?" + url.QueryEscape(key) + "=" + url.QueryEscape(value)
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}
