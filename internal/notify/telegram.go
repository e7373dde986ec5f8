package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Telegram отправляет сообщения через Bot API; адрес - chat id.
type Telegram struct {
	apiURL string
	token  string
	client *http.Client
}

func NewTelegram(apiURL, token string) *Telegram {
	return &Telegram{
		apiURL: strings.TrimRight(apiURL, "/"),
		token:  token,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (t *Telegram) Send(ctx context.Context, address, message string) error {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.apiURL, t.token)

	form := url.Values{}
	form.Set("chat_id", address)
	form.Set("text", message)

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rv, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer rv.Body.Close()

	if rv.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram sendMessage: status=%d", rv.StatusCode)
	}
	return nil
}
