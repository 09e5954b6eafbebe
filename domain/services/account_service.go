package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"akashic/config"
	"akashic/domain/entities"
	"akashic/domain/events"
	"akashic/domain/interfaces"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type accountService struct {
	uowFactory interfaces.UnitOfWorkFactory
}

// NewAccountService creates a new account service
func NewAccountService(uowFactory interfaces.UnitOfWorkFactory) interfaces.AccountService {
	return &accountService{
		uowFactory: uowFactory,
	}
}

func (s *accountService) Register(ctx context.Context, username, email, password string, phone *string) (*entities.User, *entities.Session, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))

	if len(username) < 3 || len(username) > 32 {
		return nil, nil, entities.NewValidationError("username must be between 3 and 32 characters")
	}
	if !strings.Contains(email, "@") {
		return nil, nil, entities.NewValidationError("invalid email address")
	}
	if len(password) < 8 {
		return nil, nil, entities.NewValidationError("password must be at least 8 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to hash password: %w", err)
	}

	cfg := config.Get()

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().Create(ctx, username, email, string(hash), phone)
	if err != nil {
		return nil, nil, err
	}

	// The welcome bonus is a ledger transaction like any other credit, so
	// the balance invariant holds from the very first row
	if cfg.WelcomeBonus > 0 {
		transaction, err := recordLedgerEntry(ctx, uow, user.ID, cfg.WelcomeBonus, entities.TransactionTypeReward, "Welcome to the Archive", nil)
		if err != nil {
			return nil, nil, err
		}
		user.ManaBalance = transaction.BalanceAfter
	}

	session, err := s.openSession(ctx, uow, user.ID, cfg.SessionTTL)
	if err != nil {
		return nil, nil, err
	}

	if err := uow.EventBus().Publish(events.UserRegisteredEvent{
		UserID:       user.ID,
		Username:     user.Username,
		WelcomeBonus: cfg.WelcomeBonus,
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to publish registration event: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return user, session, nil
}

func (s *accountService) Login(ctx context.Context, username, password string) (*entities.User, *entities.Session, error) {
	username = strings.TrimSpace(username)

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByUsername(ctx, username)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, nil, entities.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, entities.ErrInvalidCredentials
	}

	session, err := s.openSession(ctx, uow, user.ID, config.Get().SessionTTL)
	if err != nil {
		return nil, nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return user, session, nil
}

func (s *accountService) Logout(ctx context.Context, token string) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	err := uow.SessionRepository().Delete(ctx, token)
	if err == entities.ErrSessionNotFound {
		// Already revoked; logout is idempotent
		return nil
	}
	if err != nil {
		return err
	}

	return uow.Commit()
}

func (s *accountService) Authenticate(ctx context.Context, token string) (*entities.User, error) {
	if token == "" {
		return nil, entities.ErrSessionNotFound
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	session, err := uow.SessionRepository().GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil || session.IsExpired(time.Now()) {
		return nil, entities.ErrSessionNotFound
	}

	user, err := uow.UserRepository().GetByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, entities.ErrSessionNotFound
	}

	return user, nil
}

func (s *accountService) SweepExpiredSessions(ctx context.Context) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	deleted, err := uow.SessionRepository().DeleteExpired(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return deleted, nil
}

func (s *accountService) openSession(ctx context.Context, uow interfaces.UnitOfWork, userID int64, ttl time.Duration) (*entities.Session, error) {
	session := &entities.Session{
		Token:     uuid.New().String(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := uow.SessionRepository().Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}
