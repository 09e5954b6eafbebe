package services

import (
	"context"
	"fmt"
	"strings"

	"akashic/config"
	"akashic/domain/entities"
	"akashic/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

const maxQuestionLength = 2000

type oracleService struct {
	ledger   interfaces.LedgerService
	provider interfaces.OracleProvider
}

// NewOracleService creates a new oracle service
func NewOracleService(ledger interfaces.LedgerService, provider interfaces.OracleProvider) interfaces.OracleService {
	return &oracleService{
		ledger:   ledger,
		provider: provider,
	}
}

// Ask spends the question cost up front, then consults the provider. The
// spend commits before the provider call so a slow answer still holds the
// mana; a failed answer refunds it with an offsetting earn transaction.
func (s *oracleService) Ask(ctx context.Context, userID int64, question string) (string, int64, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", 0, entities.NewValidationError("question is required")
	}
	if len(question) > maxQuestionLength {
		return "", 0, entities.NewValidationError(fmt.Sprintf("question must be at most %d characters", maxQuestionLength))
	}

	cost := config.Get().OracleQuestionCost

	// Questions may be configured free, in which case the ledger stays out
	// of the flow entirely
	var newBalance int64
	if cost > 0 {
		var err error
		newBalance, err = s.ledger.RecordTransaction(ctx, userID, -cost, entities.TransactionTypeSpend, "Oracle question", nil)
		if err != nil {
			return "", 0, err
		}
	} else {
		var err error
		newBalance, err = s.ledger.GetBalance(ctx, userID)
		if err != nil {
			return "", 0, err
		}
	}

	answer, err := s.provider.Complete(ctx, question)
	if err != nil {
		if cost == 0 {
			return "", newBalance, entities.ErrOracleUnavailable
		}
		refundBalance, refundErr := s.ledger.RecordTransaction(ctx, userID, cost, entities.TransactionTypeEarn, "Oracle refund", nil)
		if refundErr != nil {
			log.WithFields(log.Fields{
				"userId": userID,
				"error":  refundErr,
			}).Error("Failed to refund oracle question")
			return "", newBalance, entities.ErrOracleUnavailable
		}
		return "", refundBalance, entities.ErrOracleUnavailable
	}

	return answer, newBalance, nil
}
