package contact

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	contactRepo "lawease/database/repository/contact"
	"lawease/models"
	"lawease/services/notification"
	"lawease/utils"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContactService accepts messages from the public contact form.
type ContactService interface {
	Submit(ctx context.Context, msg models.ContactMessage) (*models.ContactMessage, error)
}

type DefaultContactService struct {
	store    contactRepo.ContactStore
	notifier notification.NotificationService
	validate *validator.Validate
	logger   *zap.Logger
}

func NewContactService(store contactRepo.ContactStore, notifier notification.NotificationService, logger *zap.Logger) *DefaultContactService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultContactService{
		store:    store,
		notifier: notifier,
		validate: validator.New(),
		logger:   logger,
	}
}

func (s *DefaultContactService) Submit(ctx context.Context, msg models.ContactMessage) (*models.ContactMessage, error) {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.ToLower(strings.TrimSpace(msg.Email))
	msg.Subject = strings.TrimSpace(msg.Subject)
	msg.Message = strings.TrimSpace(msg.Message)

	if err := s.validate.Struct(msg); err != nil {
		return nil, validationError(err)
	}

	msg.ID = uuid.New().String()
	msg.CreatedAt = time.Now().UTC()
	if err := s.store.Create(ctx, &msg); err != nil {
		return nil, utils.NewInternal("failed to save contact message", err)
	}

	s.logger.Info("contact message received", zap.String("id", msg.ID))
	s.notifier.ContactReceived(ctx, &msg)
	return &msg, nil
}

// validationError reports the first failing field in plain words.
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return utils.NewValidation("Invalid contact form")
	}
	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return utils.NewValidation(fmt.Sprintf("%s is required", field))
	case "email":
		return utils.NewValidation("email must be a valid email address")
	case "min":
		return utils.NewValidation(fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
	case "max":
		return utils.NewValidation(fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
	default:
		return utils.NewValidation(fmt.Sprintf("%s is invalid", field))
	}
}
