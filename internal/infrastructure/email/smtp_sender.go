package email

import (
	"context"
	"fmt"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/pickem-league/internal/domain/email"
	idgen "github.com/riskibarqy/pickem-league/internal/platform/id"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	mail "github.com/xhit/go-simple-mail/v2"
)

const (
	SMTPEncryptionNone     = "none"
	SMTPEncryptionSTARTTLS = "starttls"
	SMTPEncryptionSSL      = "ssl"
)

type SMTPSenderConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	Encryption string
	Timeout    time.Duration
}

// SMTPSender opens one connection per message.
type SMTPSender struct {
	cfg    SMTPSenderConfig
	idGen  idgen.Generator
	logger *logging.Logger
}

func NewSMTPSender(cfg SMTPSenderConfig, idGen idgen.Generator, logger *logging.Logger) (*SMTPSender, error) {
	if cfg.Host == "" || cfg.Port <= 0 {
		return nil, fmt.Errorf("SMTP_HOST and SMTP_PORT are required")
	}
	if _, err := smtpEncryption(cfg.Encryption); err != nil {
		return nil, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SMTPSender{cfg: cfg, idGen: idGen, logger: logger}, nil
}

func (s *SMTPSender) Send(ctx context.Context, msg email.Message) (email.Receipt, error) {
	if err := ctx.Err(); err != nil {
		return email.Receipt{}, err
	}

	messageID, err := s.idGen.NewID()
	if err != nil {
		return email.Receipt{}, fmt.Errorf("generate message id: %w", err)
	}

	out := s.buildMessage(msg, messageID)
	if out.Error != nil {
		return email.Receipt{}, crerr.Wrap(out.Error, "build smtp message")
	}

	client, err := s.server().Connect()
	if err != nil {
		return email.Receipt{}, crerr.Wrap(err, "connect smtp server")
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			s.logger.WarnContext(ctx, "close smtp client failed", "error", closeErr)
		}
	}()

	if err := out.Send(client); err != nil {
		return email.Receipt{}, crerr.Wrap(err, "send smtp message")
	}
	return email.Receipt{MessageID: messageID}, nil
}

func (s *SMTPSender) server() *mail.SMTPServer {
	server := mail.NewSMTPClient()
	server.Host = s.cfg.Host
	server.Port = s.cfg.Port
	server.Username = s.cfg.Username
	server.Password = s.cfg.Password
	server.Encryption, _ = smtpEncryption(s.cfg.Encryption)
	server.KeepAlive = false
	server.ConnectTimeout = s.cfg.Timeout
	server.SendTimeout = s.cfg.Timeout
	return server
}

func (s *SMTPSender) buildMessage(msg email.Message, messageID string) *mail.Email {
	out := mail.NewMSG()
	out.SetFrom(msg.From)
	out.AddTo(msg.To...)
	out.SetSubject(msg.Subject)
	out.AddHeader("X-Pickem-Message-Id", messageID)
	out.SetBody(mail.TextHTML, msg.HTML)
	if msg.Text != "" {
		out.AddAlternative(mail.TextPlain, msg.Text)
	}
	return out
}

func smtpEncryption(v string) (mail.Encryption, error) {
	switch v {
	case "", SMTPEncryptionSTARTTLS:
		return mail.EncryptionSTARTTLS, nil
	case SMTPEncryptionSSL:
		return mail.EncryptionSSLTLS, nil
	case SMTPEncryptionNone:
		return mail.EncryptionNone, nil
	default:
		return mail.EncryptionNone, fmt.Errorf("unsupported SMTP_ENCRYPTION %q", v)
	}
}
