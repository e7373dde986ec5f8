package services_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"pushresume/database"
	"pushresume/internal/config"
	"pushresume/internal/models"
	"pushresume/internal/providers"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

// newTestConfig готовит конфигурацию и выставляет глобальную:
// выпуск JWT при логине читает секрет через config.GetConfig.
func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.TTL = 600
	cfg.Notifications.Channels = []string{models.ChannelTelegram}
	cfg.Notifications.TTL = 900
	cfg.Notifications.CodeLength = 8
	cfg.Notifications.CodeTTL = map[string]int{models.ChannelTelegram: 60}
	config.AppConfig = cfg
	return cfg
}

type fakeProvider struct {
	name     string
	identity string
	token    *providers.Token
	fetch    func(access string) ([]providers.ResumeInfo, error)
	fetchErr error
}

func (p *fakeProvider) Name() string     { return p.name }
func (p *fakeProvider) Redirect() string { return "https://example.com/authorize?client_id=x" }

func (p *fakeProvider) Tokenize(ctx context.Context, code string, refresh bool) (*providers.Token, error) {
	if p.token != nil {
		return p.token, nil
	}
	return &providers.Token{Access: "access", Refresh: "refresh", ExpiresIn: 3600}, nil
}

func (p *fakeProvider) Identity(ctx context.Context, access string) (string, error) {
	return p.identity, nil
}

func (p *fakeProvider) Fetch(ctx context.Context, access string) ([]providers.ResumeInfo, error) {
	if p.fetchErr != nil {
		return nil, p.fetchErr
	}
	if p.fetch == nil {
		return nil, nil
	}
	return p.fetch(access)
}

func (p *fakeProvider) Push(ctx context.Context, access, resume string) error {
	return nil
}

func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedAccount(t *testing.T, db *gorm.DB, userID, provider, identity string) *models.Account {
	t.Helper()
	account := &models.Account{
		Identity: identity,
		Provider: provider,
		Access:   "access",
		Refresh:  "refresh",
		Expires:  time.Now().Add(time.Hour),
		UserID:   userID,
	}
	require.NoError(t, db.Create(account).Error)
	return account
}
