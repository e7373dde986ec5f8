package jobs_test

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

// newTestDB создает изолированную in-memory БД с полной схемой.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Jobs.CleanupPeriod = 86400
	cfg.Jobs.AccountGrace = int((30 * 24 * time.Hour).Seconds())
	cfg.Notifications.Channels = []string{models.ChannelTelegram}
	cfg.Notifications.TTL = 900
	cfg.Notifications.CodeLength = 8
	cfg.Notifications.CodeTTL = map[string]int{models.ChannelTelegram: 60}
	cfg.Notifications.RatePerSec = 1000
	return cfg
}

// fakeProvider - управляемый адаптер для проверки джоб без сети.
type fakeProvider struct {
	name     string
	tokenize func(code string, refresh bool) (*providers.Token, error)
	fetch    func(access string) ([]providers.ResumeInfo, error)
	push     func(access, resume string) error
}

func (p *fakeProvider) Name() string     { return p.name }
func (p *fakeProvider) Redirect() string { return "https://example.com/authorize" }

func (p *fakeProvider) Tokenize(ctx context.Context, code string, refresh bool) (*providers.Token, error) {
	if p.tokenize == nil {
		return &providers.Token{Access: "access", Refresh: "refresh", ExpiresIn: 3600}, nil
	}
	return p.tokenize(code, refresh)
}

func (p *fakeProvider) Identity(ctx context.Context, access string) (string, error) {
	return "identity-" + p.name, nil
}

func (p *fakeProvider) Fetch(ctx context.Context, access string) ([]providers.ResumeInfo, error) {
	if p.fetch == nil {
		return nil, nil
	}
	return p.fetch(access)
}

func (p *fakeProvider) Push(ctx context.Context, access, resume string) error {
	if p.push == nil {
		return nil
	}
	return p.push(access, resume)
}

// fakeTransport пишет доставленные сообщения в память.
type fakeTransport struct {
	sent []sentMessage
	fail error
}

type sentMessage struct {
	address string
	message string
}

func (f *fakeTransport) Send(ctx context.Context, address, message string) error {
	if f.fail != nil {
		return f.fail
	}
	f.sent = append(f.sent, sentMessage{address: address, message: message})
	return nil
}

func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := &models.User{}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedAccount(t *testing.T, db *gorm.DB, userID, provider, identity string, expires time.Time) *models.Account {
	t.Helper()
	account := &models.Account{
		Identity: identity,
		Provider: provider,
		Access:   "access",
		Refresh:  "refresh",
		Expires:  expires,
		UserID:   userID,
	}
	require.NoError(t, db.Create(account).Error)
	return account
}

func seedResume(t *testing.T, db *gorm.DB, userID, accountID, identity string, enabled bool) *models.Resume {
	t.Helper()
	resume := &models.Resume{
		Identity:  identity,
		Name:      "Go Developer",
		Enabled:   enabled,
		UserID:    userID,
		AccountID: accountID,
	}
	require.NoError(t, db.Create(resume).Error)
	return resume
}

func seedSubscription(t *testing.T, db *gorm.DB, userID, channel, address string, enabled, confirmed bool) *models.Subscription {
	t.Helper()
	subscription := &models.Subscription{
		Channel:   channel,
		UserID:    userID,
		Address:   address,
		Enabled:   enabled,
		Confirmed: confirmed,
	}
	require.NoError(t, db.Create(subscription).Error)
	return subscription
}

func seedNotification(t *testing.T, db *gorm.DB, userID, channel, message string, expires time.Time, sended bool) *models.Notification {
	t.Helper()
	notification := &models.Notification{
		Channel: channel,
		Message: message,
		Expires: expires,
		Sended:  sended,
		UserID:  userID,
	}
	require.NoError(t, db.Create(notification).Error)
	return notification
}
