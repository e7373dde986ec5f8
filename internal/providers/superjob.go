package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"pushresume/internal/config"
)

// SuperJob - адаптер superjob.ru. Отличия протокола: заголовок
// X-Api-App-Id с секретом приложения, refresh через GET на отдельный
// endpoint, published приходит unix-таймстемпом.
type SuperJob struct {
	name   string
	cfg    config.ProviderConfig
	client *httpClient
}

func NewSuperJob(name string, cfg config.ProviderConfig) *SuperJob {
	return &SuperJob{
		name:   name,
		cfg:    cfg,
		client: newHTTPClient(30 * time.Second),
	}
}

func (p *SuperJob) Name() string {
	return p.name
}

func (p *SuperJob) Redirect() string {
	q := url.Values{}
	q.Set("client_id", p.cfg.ClientID)
	q.Set("redirect_uri", p.cfg.RedirectURI)
	return p.cfg.AuthorizeURL + "?" + q.Encode()
}

func (p *SuperJob) Tokenize(ctx context.Context, code string, refresh bool) (*Token, error) {
	var rv *httpResponse
	var err error

	if refresh {
		q := url.Values{}
		q.Set("client_id", p.cfg.ClientID)
		q.Set("client_secret", p.cfg.ClientSecret)
		q.Set("refresh_token", code)
		refreshURL := p.cfg.RefreshTokenURL + "?" + q.Encode()
		rv, err = p.client.do(ctx, http.MethodGet, refreshURL, p.headers(""), nil)
	} else {
		form := url.Values{}
		form.Set("client_id", p.cfg.ClientID)
		form.Set("client_secret", p.cfg.ClientSecret)
		form.Set("code", code)
		form.Set("redirect_uri", p.cfg.RedirectURI)
		rv, err = p.client.do(ctx, http.MethodPost, p.cfg.AccessTokenURL, p.headers(""), form)
	}

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

func (p *SuperJob) Identity(ctx context.Context, access string) (string, error) {
	rv, err := p.client.do(ctx, http.MethodGet, p.cfg.BaseURL+"/user/current/", p.headers(access), nil)
	if err != nil {
		return "", newError(p.name, KindIdentity, 0, err)
	}
	if rv.status != http.StatusOK {
		return "", newError(p.name, KindIdentity, rv.status, fmt.Errorf("%s", rv.body))
	}

	var payload struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(rv.body, &payload); err != nil {
		return "", newError(p.name, KindIdentity, rv.status, err)
	}

	return payload.Email, nil
}

func (p *SuperJob) Fetch(ctx context.Context, access string) ([]ResumeInfo, error) {
	rv, err := p.client.do(ctx, http.MethodGet, p.cfg.BaseURL+"/user_cvs/", p.headers(access), nil)
	if err != nil {
		return nil, newError(p.name, KindResume, 0, err)
	}
	if rv.status != http.StatusOK {
		return nil, newError(p.name, KindResume, rv.status, fmt.Errorf("%s", rv.body))
	}

	var payload struct {
		Objects []struct {
			ID            int64  `json:"id"`
			Profession    string `json:"profession"`
			FirstName     string `json:"firstname"`
			LastName      string `json:"lastname"`
			DatePublished int64  `json:"date_published"`
			Link          string `json:"link"`
		} `json:"objects"`
	}
	if err := json.Unmarshal(rv.body, &payload); err != nil {
		return nil, newError(p.name, KindResume, rv.status, err)
	}

	result := make([]ResumeInfo, 0, len(payload.Objects))
	for _, item := range payload.Objects {
		result = append(result, ResumeInfo{
			Identity:  strconv.FormatInt(item.ID, 10),
			Title:     item.Profession,
			Name:      item.FirstName + " " + item.LastName,
			Published: time.Unix(item.DatePublished, 0).UTC(),
			Link:      item.Link,
		})
	}

	return result, nil
}

func (p *SuperJob) Push(ctx context.Context, access, resume string) error {
	pushURL := fmt.Sprintf("%s/user_cvs/update_datepub/%s/", p.cfg.BaseURL, url.PathEscape(resume))

	rv, err := p.client.do(ctx, http.MethodPost, pushURL, p.headers(access), nil)
	if err != nil {
		return newError(p.name, KindPush, 0, err)
	}
	if rv.status < http.StatusOK || rv.status >= http.StatusMultipleChoices {
		return newError(p.name, KindPush, rv.status, fmt.Errorf("%s", rv.body))
	}

	return nil
}

// headers собирает обязательные заголовки superjob; access может быть
// пустым для неавторизованных вызовов.
func (p *SuperJob) headers(access string) map[string]string {
	h := map[string]string{"X-Api-App-Id": p.cfg.ClientSecret}
	if access != "" {
		h["Authorization"] = "Bearer " + access
	}
	return h
}
