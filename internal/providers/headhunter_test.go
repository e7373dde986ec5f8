package providers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pushresume/internal/config"
	"pushresume/internal/providers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hhConfig(serverURL string) config.ProviderConfig {
	return config.ProviderConfig{
		ClientID:       "client-id",
		ClientSecret:   "client-secret",
		BaseURL:        serverURL,
		AuthorizeURL:   serverURL + "/oauth/authorize",
		AccessTokenURL: serverURL + "/oauth/token",
	}
}

func TestHeadHunterRedirect(t *testing.T) {
	t.Parallel()

	p := providers.NewHeadHunter("headhunter", hhConfig("https://hh.example"))
	redirect := p.Redirect()

	assert.Contains(t, redirect, "https://hh.example/oauth/authorize?")
	assert.Contains(t, redirect, "client_id=client-id")
	assert.Contains(t, redirect, "response_type=code")
}

func TestHeadHunterTokenize(t *testing.T) {
	t.Parallel()

	var grantType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		grantType = r.PostFormValue("grant_type")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "at",
			"refresh_token": "rt",
			"expires_in":    1209600,
		})
	}))
	defer server.Close()

	p := providers.NewHeadHunter("headhunter", hhConfig(server.URL))

	token, err := p.Tokenize(context.Background(), "auth-code", false)
	require.NoError(t, err)
	assert.Equal(t, "authorization_code", grantType)
	assert.Equal(t, "at", token.Access)
	assert.Equal(t, "rt", token.Refresh)
	assert.Equal(t, 1209600, token.ExpiresIn)

	_, err = p.Tokenize(context.Background(), "rt", true)
	require.NoError(t, err)
	assert.Equal(t, "refresh_token", grantType)
}

func TestHeadHunterTokenizeRejected(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	p := providers.NewHeadHunter("headhunter", hhConfig(server.URL))

	_, err := p.Tokenize(context.Background(), "bad-code", false)
	require.Error(t, err)

	provErr, ok := providers.AsError(err)
	require.True(t, ok)
	assert.Equal(t, providers.KindToken, provErr.Kind)
	assert.Equal(t, http.StatusBadRequest, provErr.Status)
	assert.True(t, provErr.Permanent())
}

func TestHeadHunterIdentity(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/me", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{"id": "12345"})
	}))
	defer server.Close()

	p := providers.NewHeadHunter("headhunter", hhConfig(server.URL))

	identity, err := p.Identity(context.Background(), "token")
	require.NoError(t, err)
	assert.Equal(t, "12345", identity)
}

func TestHeadHunterFetch(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/resumes/mine", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{{
				"id":         "r-1",
				"title":      "Go Developer",
				"first_name": "Ivan",
				"last_name":  "Ivanov",
				"updated_at": "2026-08-01T12:30:00+0300",
				"url":        "https://hh.ru/resume/r-1",
			}},
		})
	}))
	defer server.Close()

	p := providers.NewHeadHunter("headhunter", hhConfig(server.URL))

	resumes, err := p.Fetch(context.Background(), "token")
	require.NoError(t, err)
	require.Len(t, resumes, 1)

	assert.Equal(t, "r-1", resumes[0].Identity)
	assert.Equal(t, "Go Developer", resumes[0].Title)
	assert.Equal(t, "Ivan Ivanov", resumes[0].Name)
	assert.Equal(t, "https://hh.ru/resume/r-1", resumes[0].Link)

	want := time.Date(2026, 8, 1, 12, 30, 0, 0, time.FixedZone("", 3*3600))
	assert.True(t, resumes[0].Published.Equal(want))
}

func TestHeadHunterPush(t *testing.T) {
	t.Parallel()

	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	p := providers.NewHeadHunter("headhunter", hhConfig(server.URL))

	require.NoError(t, p.Push(context.Background(), "token", "r-1"))
	assert.Equal(t, "/resumes/r-1/publish", path)
}

func TestHeadHunterPushForbiddenIsPermanent(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"captcha_required"}`, http.StatusForbidden)
	}))
	defer server.Close()

	p := providers.NewHeadHunter("headhunter", hhConfig(server.URL))

	err := p.Push(context.Background(), "token", "r-1")
	require.Error(t, err)

	provErr, ok := providers.AsError(err)
	require.True(t, ok)
	assert.Equal(t, providers.KindPush, provErr.Kind)
	assert.True(t, provErr.Permanent())
}
