package jobs_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"pushresume/internal/jobs"
	"pushresume/internal/models"
	"pushresume/internal/providers"
	"pushresume/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshJob_RotatesTokens(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	user := seedUser(t, db)
	account := seedAccount(t, db, user.ID, "headhunter", "acc", time.Now().Add(-time.Hour))

	provider := &fakeProvider{
		name: "headhunter",
		tokenize: func(code string, refresh bool) (*providers.Token, error) {
			if !refresh {
				return nil, errors.New("unexpected grant")
			}
			return &providers.Token{
				Access:    "new-access",
				Refresh:   "new-refresh",
				ExpiresIn: 3600,
			}, nil
		},
	}

	job := jobs.NewRefreshJob(
		providers.NewRegistry(provider),
		repositories.NewAccountRepository(db),
		newNotifier(db),
	)

	result, err := job.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Success)

	var stored models.Account
	require.NoError(t, db.First(&stored, "id = ?", account.ID).Error)
	assert.Equal(t, "new-access", stored.Access)
	assert.Equal(t, "new-refresh", stored.Refresh)
	assert.True(t, stored.Expires.After(time.Now()))
}

func TestRefreshJob_FailureLeavesAccount(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	user := seedUser(t, db)
	expires := time.Now().Add(-time.Hour)
	account := seedAccount(t, db, user.ID, "headhunter", "acc", expires)

	provider := &fakeProvider{
		name: "headhunter",
		tokenize: func(code string, refresh bool) (*providers.Token, error) {
			return nil, &providers.Error{
				Provider: "headhunter",
				Kind:     providers.KindToken,
				Status:   http.StatusBadRequest,
				Err:      errors.New("invalid refresh token"),
			}
		},
	}

	job := jobs.NewRefreshJob(
		providers.NewRegistry(provider),
		repositories.NewAccountRepository(db),
		newNotifier(db),
	)

	result, err := job.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Failed)

	// аккаунт не трогаем: доживает до cleanup после grace-периода
	var stored models.Account
	require.NoError(t, db.First(&stored, "id = ?", account.ID).Error)
	assert.Equal(t, "access", stored.Access)
}

func TestRefreshJob_UnknownProviderCounts(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)

	user := seedUser(t, db)
	seedAccount(t, db, user.ID, "gone", "acc", time.Now().Add(time.Hour))

	job := jobs.NewRefreshJob(
		providers.NewRegistry(),
		repositories.NewAccountRepository(db),
		newNotifier(db),
	)

	result, err := job.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, result.Total)
	assert.Equal(t, 1, result.Failed)
}
