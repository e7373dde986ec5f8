package providers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/codeGROOVE-dev/retry"
)

const userAgent = "PushResume"

// httpClient - общий HTTP-транспорт адаптеров: фиксированный User-Agent
// и ретраи на транспортных ошибках и 5xx. Ответы 4xx не ретраятся -
// их интерпретирует вызывающий.
type httpClient struct {
	client *http.Client
}

func newHTTPClient(timeout time.Duration) *httpClient {
	return &httpClient{client: &http.Client{Timeout: timeout}}
}

type httpResponse struct {
	status int
	body   []byte
}

type clientError struct {
	status int
	body   string
}

func (e *clientError) Error() string {
	return fmt.Sprintf("status=%d body=%s", e.status, e.body)
}

// do выполняет запрос и возвращает статус с телом. Ошибка возвращается
// только при транспортном сбое или исчерпании ретраев на 5xx.
func (c *httpClient) do(ctx context.Context, method, rawURL string, headers map[string]string, form url.Values) (*httpResponse, error) {
	var resp *httpResponse

	err := retry.Do(
		func() error {
			var body io.Reader
			if form != nil {
				body = strings.NewReader(form.Encode())
			}

			req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
			if err != nil {
				return retry.Unrecoverable(fmt.Errorf("create request: %w", err))
			}

			req.Header.Set("User-Agent", userAgent)
			if form != nil {
				req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			}
			for key, value := range headers {
				req.Header.Set(key, value)
			}

			rv, err := c.client.Do(req)
			if err != nil {
				return err
			}
			defer rv.Body.Close()

			data, err := io.ReadAll(rv.Body)
			if err != nil {
				return err
			}

			if rv.StatusCode >= http.StatusInternalServerError {
				return &clientError{status: rv.StatusCode, body: string(data)}
			}

			resp = &httpResponse{status: rv.StatusCode, body: data}
			return nil
		},
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.MaxDelay(10*time.Second),
		retry.Context(ctx),
	)
	if err != nil {
		var cErr *clientError
		if errors.As(err, &cErr) {
			// исчерпали ретраи на 5xx: вернем последний статус,
			// классификацию ошибки делает адаптер
			return &httpResponse{status: cErr.status, body: []byte(cErr.body)}, nil
		}
		return nil, err
	}

	return resp, nil
}
