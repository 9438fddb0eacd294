package app

import (
	"context"
	"fmt"

	"github.com/riskibarqy/pickem-league/internal/config"
	"github.com/riskibarqy/pickem-league/internal/domain/email"
	emailinfra "github.com/riskibarqy/pickem-league/internal/infrastructure/email"
	idgen "github.com/riskibarqy/pickem-league/internal/platform/id"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
)

func buildEmailSender(ctx context.Context, cfg config.Config, ids idgen.Generator, logger *logging.Logger) (email.Sender, error) {
	logger = logger.Named("email")
	switch cfg.EmailProvider {
	case config.EmailProviderLog:
		return emailinfra.NewLogSender(ids, logger), nil
	case config.EmailProviderHTTP:
		breaker := resilience.DefaultCircuitBreakerConfig()
		breaker.Enabled = cfg.EmailCircuitEnabled
		sender, err := emailinfra.NewHTTPSender(emailinfra.HTTPSenderConfig{
			BaseURL:        cfg.EmailHTTPBaseURL,
			APIKey:         cfg.EmailHTTPAPIKey,
			Timeout:        cfg.EmailTimeout,
			CircuitBreaker: breaker,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("build http email sender: %w", err)
		}
		return sender, nil
	case config.EmailProviderSES:
		sender, err := emailinfra.NewSESSender(ctx, emailinfra.SESSenderConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("build ses email sender: %w", err)
		}
		return sender, nil
	case config.EmailProviderSMTP:
		sender, err := emailinfra.NewSMTPSender(emailinfra.SMTPSenderConfig{
			Host:       cfg.SMTPHost,
			Port:       cfg.SMTPPort,
			Username:   cfg.SMTPUsername,
			Password:   cfg.SMTPPassword,
			Encryption: cfg.SMTPEncryption,
			Timeout:    cfg.EmailTimeout,
		}, ids, logger)
		if err != nil {
			return nil, fmt.Errorf("build smtp email sender: %w", err)
		}
		return sender, nil
	default:
		return nil, fmt.Errorf("unsupported email provider %q", cfg.EmailProvider)
	}
}
