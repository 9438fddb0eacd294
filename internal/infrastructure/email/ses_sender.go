package email

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/pickem-league/internal/domain/email"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

// sesAPI is the subset of the SESv2 client the sender uses.
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type SESSenderConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

type SESSender struct {
	client sesAPI
	logger *logging.Logger
}

// NewSESSender uses static credentials when both keys are set and the
// default AWS credential chain otherwise.
func NewSESSender(ctx context.Context, cfg SESSenderConfig, logger *logging.Logger) (*SESSender, error) {
	if cfg.Region == "" {
		return nil, fmt.Errorf("SES_REGION is required")
	}
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return newSESSender(sesv2.NewFromConfig(awsCfg), logger), nil
}

func newSESSender(client sesAPI, logger *logging.Logger) *SESSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &SESSender{client: client, logger: logger}
}

func (s *SESSender) Send(ctx context.Context, msg email.Message) (email.Receipt, error) {
	body := &types.Body{
		Html: &types.Content{Data: aws.String(msg.HTML), Charset: aws.String("UTF-8")},
	}
	if msg.Text != "" {
		body.Text = &types.Content{Data: aws.String(msg.Text), Charset: aws.String("UTF-8")}
	}

	out, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		Destination: &types.Destination{ToAddresses: msg.To},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body:    body,
			},
		},
		FromEmailAddress: aws.String(msg.From),
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "ses send failed", "recipients", len(msg.To), "subject", msg.Subject, "error", err)
		return email.Receipt{}, crerr.Wrap(err, "send ses email")
	}
	return email.Receipt{MessageID: aws.ToString(out.MessageId)}, nil
}
