package services

import (
	"context"
	"fmt"

	"akashic/domain/entities"
	"akashic/domain/events"
	"akashic/domain/interfaces"
)

const defaultTransactionLimit = 50

type ledgerService struct {
	uowFactory interfaces.UnitOfWorkFactory
}

// NewLedgerService creates a new ledger service
func NewLedgerService(uowFactory interfaces.UnitOfWorkFactory) interfaces.LedgerService {
	return &ledgerService{
		uowFactory: uowFactory,
	}
}

// recordLedgerEntry appends a transaction inside an already-open unit of
// work. The user row is locked for the rest of the transaction, so two
// racing spends resolve sequentially and the second sees the first's
// balance. Callers must commit or roll back the unit of work.
func recordLedgerEntry(ctx context.Context, uow interfaces.UnitOfWork, userID, amount int64, txType entities.TransactionType, description string, reference *string) (*entities.ManaTransaction, error) {
	if err := txType.ValidateAmount(amount); err != nil {
		return nil, err
	}

	user, err := uow.UserRepository().GetByIDForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, entities.ErrUserNotFound
	}

	if txType.IsDebit() {
		if err := user.ValidateSpend(-amount); err != nil {
			return nil, err
		}
	}

	newBalance := user.CalculateNewBalance(amount)

	transaction := &entities.ManaTransaction{
		UserID:          userID,
		Amount:          amount,
		TransactionType: txType,
		Description:     description,
		Reference:       reference,
		BalanceBefore:   user.ManaBalance,
		BalanceAfter:    newBalance,
	}
	if err := transaction.Validate(); err != nil {
		return nil, err
	}

	if err := uow.ManaTransactionRepository().Record(ctx, transaction); err != nil {
		return nil, err
	}

	if err := uow.UserRepository().UpdateBalance(ctx, userID, newBalance); err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	if err := uow.EventBus().Publish(events.ManaTransactionEvent{
		UserID:          userID,
		TransactionID:   transaction.ID,
		Amount:          amount,
		TransactionType: txType,
		BalanceAfter:    newBalance,
	}); err != nil {
		return nil, fmt.Errorf("failed to publish transaction event: %w", err)
	}

	return transaction, nil
}

func (s *ledgerService) RecordTransaction(ctx context.Context, userID, amount int64, txType entities.TransactionType, description string, reference *string) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	transaction, err := recordLedgerEntry(ctx, uow, userID, amount, txType, description, reference)
	if err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return transaction.BalanceAfter, nil
}

func (s *ledgerService) GetBalance(ctx context.Context, userID int64) (int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return 0, entities.ErrUserNotFound
	}

	return user.ManaBalance, nil
}

func (s *ledgerService) ListTransactions(ctx context.Context, userID int64, limit int) ([]*entities.ManaTransaction, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultTransactionLimit
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.ManaTransactionRepository().GetByUser(ctx, userID, limit)
}

func (s *ledgerService) Reconcile(ctx context.Context, userID int64) (int64, int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return 0, 0, entities.ErrUserNotFound
	}

	sum, err := uow.ManaTransactionRepository().SumByUser(ctx, userID)
	if err != nil {
		return 0, 0, err
	}

	return user.ManaBalance, sum, nil
}

func (s *ledgerService) ListPackages(ctx context.Context) ([]*entities.ManaPackage, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	return uow.ManaPackageRepository().GetActive(ctx)
}

func (s *ledgerService) PurchasePackage(ctx context.Context, userID, packageID int64, paymentRef string) (int64, error) {
	if paymentRef == "" {
		return 0, entities.NewValidationError("payment reference is required")
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	pkg, err := uow.ManaPackageRepository().GetByID(ctx, packageID)
	if err != nil {
		return 0, err
	}
	if pkg == nil || !pkg.Active {
		return 0, entities.ErrPackageNotFound
	}

	// The unique index on purchase references catches the race where two
	// requests carry the same reference; this check catches the common
	// retry case without burning a transaction id.
	existing, err := uow.ManaTransactionRepository().GetByReference(ctx, paymentRef)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return 0, entities.ErrDuplicatePurchase
	}

	description := fmt.Sprintf("Mana package: %s", pkg.Name)
	transaction, err := recordLedgerEntry(ctx, uow, userID, pkg.ManaAmount, entities.TransactionTypePurchase, description, &paymentRef)
	if err != nil {
		return 0, err
	}

	if err := uow.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return transaction.BalanceAfter, nil
}
