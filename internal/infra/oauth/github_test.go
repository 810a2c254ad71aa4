package oauth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"cm-go/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func newFakeGitHub(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/login/oauth/access_token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("code") != "good-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"bad_verification_code"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"gho_abc","token_type":"bearer","scope":"read:user"}`))
	})
	mux.HandleFunc("/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer gho_abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":583231,"login":"octocat","avatar_url":"https://avatars.example/u/583231"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestProvider(srv *httptest.Server) *GitHubProvider {
	return NewGitHubProvider(&config.OAuthConfig{
		ClientID:     "client",
		ClientSecret: "secret",
		CallbackURL:  "http://localhost:8000/login/oauth2/code/github",
	}).WithEndpoints(oauth2.Endpoint{
		AuthURL:   srv.URL + "/login/oauth/authorize",
		TokenURL:  srv.URL + "/login/oauth/access_token",
		AuthStyle: oauth2.AuthStyleInParams,
	}, srv.URL+"/user")
}

func TestGitHubProvider_Flow(t *testing.T) {
	srv := newFakeGitHub(t)
	p := newTestProvider(srv)
	ctx := context.Background()

	u, err := url.Parse(p.AuthCodeURL("state-1"))
	require.NoError(t, err)
	assert.Equal(t, "state-1", u.Query().Get("state"))
	assert.Equal(t, "client", u.Query().Get("client_id"))

	token, err := p.Exchange(ctx, "good-code")
	require.NoError(t, err)
	assert.Equal(t, "gho_abc", token.AccessToken)

	attrs, err := p.FetchUser(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, json.Number("583231"), attrs["id"])
	assert.Equal(t, "octocat", attrs["login"])
}

func TestGitHubProvider_Failures(t *testing.T) {
	srv := newFakeGitHub(t)
	p := newTestProvider(srv)
	ctx := context.Background()

	_, err := p.Exchange(ctx, "bad-code")
	assert.Error(t, err)

	_, err = p.FetchUser(ctx, &oauth2.Token{AccessToken: "wrong", TokenType: "bearer"})
	assert.Error(t, err)
}
