package email

import (
	"context"
	"fmt"

	"github.com/riskibarqy/pickem-league/internal/domain/email"
	idgen "github.com/riskibarqy/pickem-league/internal/platform/id"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

// LogSender only logs messages. Used in development.
type LogSender struct {
	idGen  idgen.Generator
	logger *logging.Logger
}

func NewLogSender(idGen idgen.Generator, logger *logging.Logger) *LogSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogSender{idGen: idGen, logger: logger}
}

func (s *LogSender) Send(ctx context.Context, msg email.Message) (email.Receipt, error) {
	messageID, err := s.idGen.NewID()
	if err != nil {
		return email.Receipt{}, fmt.Errorf("generate message id: %w", err)
	}
	s.logger.InfoContext(ctx, "email not delivered, log provider",
		"message_id", messageID,
		"from", msg.From,
		"to", msg.To,
		"subject", msg.Subject,
		"html_bytes", len(msg.HTML),
	)
	return email.Receipt{MessageID: messageID}, nil
}
