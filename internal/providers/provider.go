package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Kind - класс операции провайдера, на которой произошла ошибка.
type Kind string

const (
	KindToken    Kind = "token"
	KindIdentity Kind = "identity"
	KindResume   Kind = "resume"
	KindPush     Kind = "push"
)

// Error - ошибка вызова провайдера. Status несет upstream HTTP-статус
// (0 при транспортной ошибке), чтобы вызывающий мог отличить
// "повторить позже" от "отвергнуто навсегда".
type Error struct {
	Provider string
	Kind     Kind
	Status   int
	Err      error
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: %s error: status=%d: %v", e.Provider, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s error: %v", e.Provider, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Permanent - провайдер не примет повтор без действий пользователя:
// по такому push-отказу резюме автоматически выключается.
func (e *Error) Permanent() bool {
	return e.Status == http.StatusBadRequest || e.Status == http.StatusForbidden
}

// AsError извлекает *Error из цепочки ошибок.
func AsError(err error) (*Error, bool) {
	var provErr *Error
	if errors.As(err, &provErr) {
		return provErr, true
	}
	return nil, false
}

// IsKind проверяет, что ошибка пришла от операции данного класса.
func IsKind(err error, kind Kind) bool {
	provErr, ok := AsError(err)
	return ok && provErr.Kind == kind
}

func newError(provider string, kind Kind, status int, err error) *Error {
	return &Error{Provider: provider, Kind: kind, Status: status, Err: err}
}

// Token - результат обмена кода авторизации или refresh-токена.
type Token struct {
	Access    string
	Refresh   string
	ExpiresIn int // сек
}

// ResumeInfo - одно резюме из выдачи провайдера.
type ResumeInfo struct {
	Identity  string    `json:"identity"`
	Title     string    `json:"title"`
	Name      string    `json:"name"`
	Published time.Time `json:"published"`
	Link      string    `json:"link"`
}

// Provider - единый контракт адаптера внешней площадки. Адаптер не
// хранит состояния между вызовами; все ошибки - *Error соответствующего
// Kind.
type Provider interface {
	Name() string

	// Redirect - URL страницы авторизации провайдера.
	Redirect() string

	// Tokenize обменивает код авторизации (refresh=false) или
	// refresh-токен (refresh=true) на пару токенов.
	Tokenize(ctx context.Context, code string, refresh bool) (*Token, error)

	// Identity возвращает стабильный идентификатор пользователя.
	Identity(ctx context.Context, access string) (string, error)

	// Fetch возвращает список резюме пользователя.
	Fetch(ctx context.Context, access string) ([]ResumeInfo, error)

	// Push просит провайдера переопубликовать резюме.
	Push(ctx context.Context, access, resume string) error
}
