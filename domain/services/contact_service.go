package services

import (
	"context"
	"fmt"
	"strings"

	"akashic/domain/entities"
	"akashic/domain/interfaces"
)

const maxContactMessageLength = 5000

type contactService struct {
	uowFactory interfaces.UnitOfWorkFactory
}

// NewContactService creates a new contact service
func NewContactService(uowFactory interfaces.UnitOfWorkFactory) interfaces.ContactService {
	return &contactService{
		uowFactory: uowFactory,
	}
}

func (s *contactService) Submit(ctx context.Context, name, email, message string) error {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	message = strings.TrimSpace(message)

	if name == "" {
		return entities.NewValidationError("name is required")
	}
	if !strings.Contains(email, "@") {
		return entities.NewValidationError("invalid email address")
	}
	if message == "" {
		return entities.NewValidationError("message is required")
	}
	if len(message) > maxContactMessageLength {
		return entities.NewValidationError(fmt.Sprintf("message must be at most %d characters", maxContactMessageLength))
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	msg := &entities.ContactMessage{
		Name:    name,
		Email:   email,
		Message: message,
	}
	if err := uow.ContactMessageRepository().Create(ctx, msg); err != nil {
		return err
	}

	return uow.Commit()
}
