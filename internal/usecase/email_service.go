package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/pickem-league/internal/domain/email"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
)

// SendEmailResult mirrors the public response of the send endpoint.
type SendEmailResult struct {
	Success   bool
	MessageID string
}

type EmailService struct {
	sender      email.Sender
	defaultFrom string
	logger      *logging.Logger
}

func NewEmailService(sender email.Sender, defaultFrom string, logger *logging.Logger) *EmailService {
	if logger == nil {
		logger = logging.Default()
	}
	return &EmailService{sender: sender, defaultFrom: strings.TrimSpace(defaultFrom), logger: logger}
}

func (s *EmailService) Send(ctx context.Context, msg email.Message) (_ SendEmailResult, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EmailService.Send")
	defer endUsecaseSpan(span, &err)

	msg.To = trimAll(msg.To)
	msg.From = strings.TrimSpace(msg.From)
	if msg.From == "" {
		msg.From = s.defaultFrom
	}
	if err := msg.Validate(); err != nil {
		return SendEmailResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	receipt, err := s.sender.Send(ctx, msg)
	if err != nil {
		s.logger.ErrorContext(ctx, "send email failed", "recipients", len(msg.To), "subject", msg.Subject, "error", err)
		if errors.Is(err, resilience.ErrCircuitOpen) {
			return SendEmailResult{}, fmt.Errorf("%w: email provider circuit open", ErrDependencyUnavailable)
		}
		return SendEmailResult{}, fmt.Errorf("%w: send email: %v", ErrDependencyUnavailable, err)
	}

	s.logger.InfoContext(ctx, "email sent", "message_id", receipt.MessageID, "recipients", len(msg.To))
	return SendEmailResult{Success: true, MessageID: receipt.MessageID}, nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
