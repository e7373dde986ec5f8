package services_test

import (
	"testing"
	"time"

	"pushresume/internal/models"
	"pushresume/internal/repositories"
	"pushresume/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newNotificationService(db *gorm.DB) services.NotificationService {
	return services.NewNotificationService(
		newTestConfig(),
		repositories.NewConfirmationRepository(db),
		repositories.NewSubscriptionRepository(db),
		repositories.NewNotificationRepository(db),
	)
}

func TestCreateConfirmation_ReusesLiveCode(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	user := seedUser(t, db)
	svc := newNotificationService(db)

	first, err := svc.CreateConfirmation(user.ID, models.ChannelTelegram)
	require.NoError(t, err)
	assert.Len(t, first.Code, 8)
	assert.Positive(t, first.TTL)

	second, err := svc.CreateConfirmation(user.ID, models.ChannelTelegram)
	require.NoError(t, err)
	assert.Equal(t, first.Code, second.Code)

	var count int64
	require.NoError(t, db.Model(&models.Confirmation{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateConfirmation_ReplacesExpiredCode(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	user := seedUser(t, db)
	expired := &models.Confirmation{
		Code: "00000000", Channel: models.ChannelTelegram,
		Expires: time.Now().Add(-time.Minute), UserID: user.ID,
	}
	require.NoError(t, db.Create(expired).Error)

	svc := newNotificationService(db)

	resp, err := svc.CreateConfirmation(user.ID, models.ChannelTelegram)
	require.NoError(t, err)
	assert.NotEqual(t, "00000000", resp.Code)

	var count int64
	require.NoError(t, db.Model(&models.Confirmation{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCreateConfirmation_UnknownChannel(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	user := seedUser(t, db)
	svc := newNotificationService(db)

	_, err := svc.CreateConfirmation(user.ID, "pigeon")
	require.Error(t, err)
}

func TestConfirmSubscription_Lifecycle(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	user := seedUser(t, db)
	svc := newNotificationService(db)

	resp, err := svc.CreateConfirmation(user.ID, models.ChannelTelegram)
	require.NoError(t, err)

	subscription, err := svc.ConfirmSubscription(resp.Code, models.ChannelTelegram, "chat-42")
	require.NoError(t, err)
	assert.True(t, subscription.Confirmed)
	assert.False(t, subscription.Enabled)
	assert.Equal(t, "chat-42", subscription.Address)
	assert.Equal(t, user.ID, subscription.UserID)

	// код одноразовый
	_, err = svc.ConfirmSubscription(resp.Code, models.ChannelTelegram, "chat-42")
	assert.ErrorIs(t, err, services.ErrCodeNotFound)
}

func TestConfirmSubscription_WrongChannelAndExpired(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	user := seedUser(t, db)
	svc := newNotificationService(db)

	resp, err := svc.CreateConfirmation(user.ID, models.ChannelTelegram)
	require.NoError(t, err)

	// код выдан для другого канала
	_, err = svc.ConfirmSubscription(resp.Code, models.ChannelEmail, "a@b.c")
	assert.ErrorIs(t, err, services.ErrCodeNotFound)

	// просроченный код различим от отсутствующего
	require.NoError(t, db.Model(&models.Confirmation{}).
		Where("code = ?", resp.Code).
		Update("expires", time.Now().Add(-time.Minute)).Error)

	_, err = svc.ConfirmSubscription(resp.Code, models.ChannelTelegram, "chat-42")
	assert.ErrorIs(t, err, services.ErrCodeExpired)
}

func TestConfirmSubscription_Duplicate(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	user := seedUser(t, db)
	svc := newNotificationService(db)

	resp, err := svc.CreateConfirmation(user.ID, models.ChannelTelegram)
	require.NoError(t, err)
	_, err = svc.ConfirmSubscription(resp.Code, models.ChannelTelegram, "chat-42")
	require.NoError(t, err)

	resp, err = svc.CreateConfirmation(user.ID, models.ChannelTelegram)
	require.NoError(t, err)
	_, err = svc.ConfirmSubscription(resp.Code, models.ChannelTelegram, "chat-43")
	assert.ErrorIs(t, err, services.ErrSubscriptionDuplicate)
}

func TestToggleSubscription_RejectsUnconfirmed(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	user := seedUser(t, db)
	subscription := &models.Subscription{
		Channel: models.ChannelTelegram, UserID: user.ID,
		Address: "chat-42", Confirmed: false,
	}
	require.NoError(t, db.Create(subscription).Error)

	svc := newNotificationService(db)

	_, err := svc.ToggleSubscription(user.ID, models.ChannelTelegram)
	require.Error(t, err)
}

func TestToggleSubscription_Involution(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	user := seedUser(t, db)
	subscription := &models.Subscription{
		Channel: models.ChannelTelegram, UserID: user.ID,
		Address: "chat-42", Confirmed: true,
	}
	require.NoError(t, db.Create(subscription).Error)

	svc := newNotificationService(db)

	on, err := svc.ToggleSubscription(user.ID, models.ChannelTelegram)
	require.NoError(t, err)
	assert.True(t, on)

	off, err := svc.ToggleSubscription(user.ID, models.ChannelTelegram)
	require.NoError(t, err)
	assert.False(t, off)
}

func TestEnqueue_OnlyActiveSubscriptions(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	active := seedUser(t, db)
	inactive := seedUser(t, db)

	require.NoError(t, db.Create(&models.Subscription{
		Channel: models.ChannelTelegram, UserID: active.ID,
		Address: "1", Enabled: true, Confirmed: true,
	}).Error)
	require.NoError(t, db.Create(&models.Subscription{
		Channel: models.ChannelTelegram, UserID: inactive.ID,
		Address: "2", Enabled: false, Confirmed: true,
	}).Error)

	svc := newNotificationService(db)

	require.NoError(t, svc.Enqueue(active.ID, "hello", map[string]string{"provider": "headhunter"}))
	require.NoError(t, svc.Enqueue(inactive.ID, "hello", nil))

	var notifications []models.Notification
	require.NoError(t, db.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, active.ID, notifications[0].UserID)
	assert.True(t, notifications[0].Expires.After(time.Now()))
}
