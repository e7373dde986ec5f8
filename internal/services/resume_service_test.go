package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"pushresume/internal/models"
	"pushresume/internal/providers"
	"pushresume/internal/repositories"
	"pushresume/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newResumeService(db *gorm.DB, provs ...providers.Provider) services.ResumeService {
	return services.NewResumeService(
		db,
		providers.NewRegistry(provs...),
		repositories.NewResumeRepository(db),
		repositories.NewAccountRepository(db),
	)
}

func twoResumes() []providers.ResumeInfo {
	published := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return []providers.ResumeInfo{
		{Identity: "r-1", Title: "Go Developer", Name: "Ivan Ivanov", Published: published, Link: "https://hh.ru/resume/r-1"},
		{Identity: "r-2", Title: "Team Lead", Name: "Ivan Ivanov", Published: published, Link: "https://hh.ru/resume/r-2"},
	}
}

func TestReconcile_CreatesDisabledByDefault(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	newTestConfig()

	user := seedUser(t, db)
	seedAccount(t, db, user.ID, "headhunter", "hh-1")

	svc := newResumeService(db, &fakeProvider{
		name:  "headhunter",
		fetch: func(access string) ([]providers.ResumeInfo, error) { return twoResumes(), nil },
	})

	result, err := svc.Reconcile(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, result.Providers["headhunter"], 2)
	assert.Empty(t, result.Errors)

	for _, view := range result.Providers["headhunter"] {
		assert.False(t, view.Enabled)
	}

	var stored []models.Resume
	require.NoError(t, db.Find(&stored).Error)
	require.Len(t, stored, 2)
	for _, resume := range stored {
		assert.False(t, resume.Enabled)
		assert.Equal(t, user.ID, resume.UserID)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	newTestConfig()

	user := seedUser(t, db)
	seedAccount(t, db, user.ID, "headhunter", "hh-1")

	svc := newResumeService(db, &fakeProvider{
		name:  "headhunter",
		fetch: func(access string) ([]providers.ResumeInfo, error) { return twoResumes(), nil },
	})

	_, err := svc.Reconcile(context.Background(), user.ID)
	require.NoError(t, err)
	_, err = svc.Reconcile(context.Background(), user.ID)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Resume{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestReconcile_PreservesEnabledFlag(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	newTestConfig()

	user := seedUser(t, db)
	seedAccount(t, db, user.ID, "headhunter", "hh-1")

	svc := newResumeService(db, &fakeProvider{
		name:  "headhunter",
		fetch: func(access string) ([]providers.ResumeInfo, error) { return twoResumes(), nil },
	})

	_, err := svc.Reconcile(context.Background(), user.ID)
	require.NoError(t, err)

	enabled, err := svc.Toggle(user.ID, "r-1")
	require.NoError(t, err)
	assert.True(t, enabled)

	result, err := svc.Reconcile(context.Background(), user.ID)
	require.NoError(t, err)

	byIdentity := map[string]bool{}
	for _, view := range result.Providers["headhunter"] {
		byIdentity[view.Identity] = view.Enabled
	}
	assert.True(t, byIdentity["r-1"])
	assert.False(t, byIdentity["r-2"])
}

func TestReconcile_ProviderFailureIsolated(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	newTestConfig()

	user := seedUser(t, db)
	seedAccount(t, db, user.ID, "headhunter", "hh-1")
	seedAccount(t, db, user.ID, "superjob", "sj-1")

	svc := newResumeService(db,
		&fakeProvider{
			name:  "headhunter",
			fetch: func(access string) ([]providers.ResumeInfo, error) { return twoResumes(), nil },
		},
		&fakeProvider{
			name:     "superjob",
			fetchErr: errors.New("upstream down"),
		},
	)

	result, err := svc.Reconcile(context.Background(), user.ID)
	require.NoError(t, err)

	// отказ одного провайдера не глушит выдачу второго
	assert.Len(t, result.Providers["headhunter"], 2)
	assert.Contains(t, result.Errors, "superjob")
}

func TestToggle_Involution(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	newTestConfig()

	user := seedUser(t, db)
	account := seedAccount(t, db, user.ID, "headhunter", "hh-1")
	resume := &models.Resume{
		Identity: "r-1", Name: "Go Developer",
		UserID: user.ID, AccountID: account.ID,
	}
	require.NoError(t, db.Create(resume).Error)

	svc := newResumeService(db)

	on, err := svc.Toggle(user.ID, "r-1")
	require.NoError(t, err)
	assert.True(t, on)

	off, err := svc.Toggle(user.ID, "r-1")
	require.NoError(t, err)
	assert.False(t, off)
}

func TestToggle_ForeignResumeNotFound(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	newTestConfig()

	owner := seedUser(t, db)
	stranger := seedUser(t, db)
	account := seedAccount(t, db, owner.ID, "headhunter", "hh-1")
	resume := &models.Resume{
		Identity: "r-1", Name: "Go Developer",
		UserID: owner.ID, AccountID: account.ID,
	}
	require.NoError(t, db.Create(resume).Error)

	svc := newResumeService(db)

	_, err := svc.Toggle(stranger.ID, "r-1")
	require.Error(t, err)
}
