package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"cm-go/internal/config"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

const githubUserURL = "https://api.github.com/user"

// Provider 第三方授权登录
type Provider interface {
	// AuthCodeURL 返回跳转到第三方授权页的地址
	AuthCodeURL(state string) string
	// Exchange 用授权码换取 access token
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	// FetchUser 获取第三方用户资料，数字保留为 json.Number
	FetchUser(ctx context.Context, token *oauth2.Token) (map[string]any, error)
}

// GitHubProvider GitHub OAuth2
type GitHubProvider struct {
	conf    *oauth2.Config
	userURL string
}

func NewGitHubProvider(cfg *config.OAuthConfig) *GitHubProvider {
	return &GitHubProvider{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.CallbackURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint,
		},
		userURL: githubUserURL,
	}
}

// WithEndpoints 替换授权和用户资料地址（测试时指向 httptest）
func (p *GitHubProvider) WithEndpoints(endpoint oauth2.Endpoint, userURL string) *GitHubProvider {
	conf := *p.conf
	conf.Endpoint = endpoint
	return &GitHubProvider{conf: &conf, userURL: userURL}
}

func (p *GitHubProvider) AuthCodeURL(state string) string {
	return p.conf.AuthCodeURL(state)
}

func (p *GitHubProvider) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := p.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange oauth code: %w", err)
	}
	return token, nil
}

func (p *GitHubProvider) FetchUser(ctx context.Context, token *oauth2.Token) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.userURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := p.conf.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch github user: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch github user: unexpected status %d", resp.StatusCode)
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var attrs map[string]any
	if err := dec.Decode(&attrs); err != nil {
		return nil, fmt.Errorf("decode github user: %w", err)
	}
	return attrs, nil
}
