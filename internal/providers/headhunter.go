package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"pushresume/internal/config"
)

// HeadHunter - адаптер hh.ru. Endpoint-ы приходят из конфигурации,
// протокол - стандартный OAuth2 code/refresh_token обмен.
type HeadHunter struct {
	name   string
	cfg    config.ProviderConfig
	client *httpClient
}

func NewHeadHunter(name string, cfg config.ProviderConfig) *HeadHunter {
	return &HeadHunter{
		name:   name,
		cfg:    cfg,
		client: newHTTPClient(30 * time.Second),
	}
}

func (p *HeadHunter) Name() string {
	return p.name
}

func (p *HeadHunter) Redirect() string {
	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", p.cfg.ClientID)
	q.Set("skip_choose_account", "true")
	return p.cfg.AuthorizeURL + "?" + q.Encode()
}

func (p *HeadHunter) Tokenize(ctx context.Context, code string, refresh bool) (*Token, error) {
	form := url.Values{}
	if refresh {
		form.Set("grant_type", "refresh_token")
		form.Set("refresh_token", code)
	} else {
		form.Set("grant_type", "authorization_code")
		form.Set("code", code)
		form.Set("client_id", p.cfg.ClientID)
		form.Set("client_secret", p.cfg.ClientSecret)
	}

	rv, err := p.client.do(ctx, http.MethodPost, p.cfg.AccessTokenURL, nil, form)
	if err != nil {
		return nil, newError(p.name, KindToken, 0, err)
	}
	if rv.status != http.StatusOK {
		return nil, newError(p.name, KindToken, rv.status, fmt.Errorf("%s", rv.body))
	}

	var payload struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int    `json:"expires_in"`
	}
	if err := json.Unmarshal(rv.body, &payload); err != nil {
		return nil, newError(p.name, KindToken, rv.status, err)
	}

	return &Token{
		Access:    payload.AccessToken,
		Refresh:   payload.RefreshToken,
		ExpiresIn: payload.ExpiresIn,
	}, nil
}

func (p *HeadHunter) Identity(ctx context.Context, access string) (string, error) {
	rv, err := p.client.do(ctx, http.MethodGet, p.cfg.BaseURL+"/me", p.bearer(access), nil)
	if err != nil {
		return "", newError(p.name, KindIdentity, 0, err)
	}
	if rv.status != http.StatusOK {
		return "", newError(p.name, KindIdentity, rv.status, fmt.Errorf("%s", rv.body))
	}

	var payload struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rv.body, &payload); err != nil {
		return "", newError(p.name, KindIdentity, rv.status, err)
	}

	return payload.ID, nil
}

func (p *HeadHunter) Fetch(ctx context.Context, access string) ([]ResumeInfo, error) {
	rv, err := p.client.do(ctx, http.MethodGet, p.cfg.BaseURL+"/resumes/mine", p.bearer(access), nil)
	if err != nil {
		return nil, newError(p.name, KindResume, 0, err)
	}
	if rv.status != http.StatusOK {
		return nil, newError(p.name, KindResume, rv.status, fmt.Errorf("%s", rv.body))
	}

	var payload struct {
		Items []struct {
			ID        string `json:"id"`
			Title     string `json:"title"`
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
			UpdatedAt string `json:"updated_at"`
			URL       string `json:"url"`
		} `json:"items"`
	}
	if err := json.Unmarshal(rv.body, &payload); err != nil {
		return nil, newError(p.name, KindResume, rv.status, err)
	}

	result := make([]ResumeInfo, 0, len(payload.Items))
	for _, item := range payload.Items {
		published, err := time.Parse("2006-01-02T15:04:05-0700", item.UpdatedAt)
		if err != nil {
			return nil, newError(p.name, KindResume, rv.status, fmt.Errorf("parse updated_at: %w", err))
		}
		result = append(result, ResumeInfo{
			Identity:  item.ID,
			Title:     item.Title,
			Name:      item.FirstName + " " + item.LastName,
			Published: published,
			Link:      item.URL,
		})
	}

	return result, nil
}

func (p *HeadHunter) Push(ctx context.Context, access, resume string) error {
	pushURL := fmt.Sprintf("%s/resumes/%s/publish", p.cfg.BaseURL, url.PathEscape(resume))

	rv, err := p.client.do(ctx, http.MethodPost, pushURL, p.bearer(access), nil)
	if err != nil {
		return newError(p.name, KindPush, 0, err)
	}
	if rv.status < http.StatusOK || rv.status >= http.StatusMultipleChoices {
		return newError(p.name, KindPush, rv.status, fmt.Errorf("%s", rv.body))
	}

	return nil
}

func (p *HeadHunter) bearer(access string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + access}
}
