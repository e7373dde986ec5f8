package services

import (
	"context"
	"time"

	"pushresume/internal/auth"
	"pushresume/internal/logger"
	"pushresume/internal/models"
	"pushresume/internal/providers"
	"pushresume/internal/repositories"
	"pushresume/pkg/apperrors"

	"gorm.io/gorm"
)

type AuthService interface {
	// Providers возвращает имена сконфигурированных провайдеров.
	Providers() []string

	// Redirect возвращает URL страницы авторизации провайдера.
	Redirect(providerName string) (string, error)

	// Login обменивает код авторизации на JWT. sessionUserID не пуст,
	// когда запрос пришел с действующим JWT - тогда новый аккаунт
	// привязывается к этому пользователю (account linking).
	Login(ctx context.Context, providerName, code, sessionUserID string) (string, error)

	// Refresh выпускает новый JWT с обновленным сроком жизни.
	Refresh(userID string) (string, error)
}

type authService struct {
	db          *gorm.DB
	registry    *providers.Registry
	userRepo    repositories.UserRepository
	accountRepo repositories.AccountRepository
}

func NewAuthService(
	db *gorm.DB,
	registry *providers.Registry,
	userRepo repositories.UserRepository,
	accountRepo repositories.AccountRepository,
) AuthService {
	return &authService{
		db:          db,
		registry:    registry,
		userRepo:    userRepo,
		accountRepo: accountRepo,
	}
}

func (s *authService) Providers() []string {
	return s.registry.Names()
}

func (s *authService) Redirect(providerName string) (string, error) {
	provider, ok := s.registry.Get(providerName)
	if !ok {
		return "", apperrors.NewNotFoundError("auth", "Provider not found")
	}
	return provider.Redirect(), nil
}

func (s *authService) Login(ctx context.Context, providerName, code, sessionUserID string) (string, error) {
	provider, ok := s.registry.Get(providerName)
	if !ok {
		logger.Warn("provider not found", "provider", providerName)
		return "", apperrors.NewNotFoundError("auth", "Provider not found")
	}

	token, err := provider.Tokenize(ctx, code, false)
	if err != nil {
		logger.Error("login tokenize failed", "provider", providerName, "error", err.Error())
		return "", apperrors.ProviderUnavailable(err)
	}

	identity, err := provider.Identity(ctx, token.Access)
	if err != nil {
		logger.Error("login identity failed", "provider", providerName, "error", err.Error())
		return "", apperrors.ProviderUnavailable(err)
	}

	userID, err := s.attachAccount(provider.Name(), identity, token, sessionUserID)
	if err != nil {
		return "", apperrors.StoreError(err)
	}

	jwtToken, err := auth.GenerateToken(userID)
	if err != nil {
		return "", apperrors.InternalError(err)
	}

	logger.Info("logged in", "provider", providerName, "identity", identity, "user", userID)
	return jwtToken, nil
}

// attachAccount реализует трехстороннее слияние при логине:
// существующий аккаунт остается у своего пользователя; новый аккаунт
// привязывается к пользователю сессии, если она есть, иначе создается
// новый пользователь. Токены перезаписываются при каждом логине.
func (s *authService) attachAccount(providerName, identity string, token *providers.Token, sessionUserID string) (string, error) {
	var userID string

	err := s.db.Transaction(func(tx *gorm.DB) error {
		accountRepo := repositories.NewAccountRepository(tx)
		userRepo := repositories.NewUserRepository(tx)

		expires := time.Now().Add(time.Duration(token.ExpiresIn) * time.Second)

		account, err := accountRepo.FindByIdentity(identity, providerName)
		switch {
		case err == nil:
			account.Access = token.Access
			account.Refresh = token.Refresh
			account.Expires = expires
			if err := accountRepo.Update(account); err != nil {
				return err
			}
			userID = account.UserID
			return nil

		case apperrors.Is(err, repositories.ErrAccountNotFound):
			userID = sessionUserID
			if userID == "" {
				user := &models.User{}
				if err := userRepo.Create(user); err != nil {
					return err
				}
				userID = user.ID
			} else if _, err := userRepo.FindByID(userID); err != nil {
				return err
			}

			account = &models.Account{
				Identity: identity,
				Provider: providerName,
				Access:   token.Access,
				Refresh:  token.Refresh,
				Expires:  expires,
				UserID:   userID,
			}
			return accountRepo.Create(account)

		default:
			return err
		}
	})
	if err != nil {
		return "", err
	}

	return userID, nil
}

func (s *authService) Refresh(userID string) (string, error) {
	if _, err := s.userRepo.FindByID(userID); err != nil {
		return "", apperrors.NewUnauthorizedError("User not found")
	}

	token, err := auth.GenerateToken(userID)
	if err != nil {
		return "", apperrors.InternalError(err)
	}
	return token, nil
}
