package email

import (
	"context"
	"testing"

	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mail "github.com/xhit/go-simple-mail/v2"
)

type staticID string

func (s staticID) NewID() (string, error) { return string(s), nil }

func TestSMTPEncryption(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    mail.Encryption
		wantErr bool
	}{
		{in: "", want: mail.EncryptionSTARTTLS},
		{in: "starttls", want: mail.EncryptionSTARTTLS},
		{in: "ssl", want: mail.EncryptionSSLTLS},
		{in: "none", want: mail.EncryptionNone},
		{in: "tls13", wantErr: true},
	}
	for _, tc := range tests {
		got, err := smtpEncryption(tc.in)
		if tc.wantErr {
			assert.Error(t, err, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestSMTPSender_BuildMessage(t *testing.T) {
	t.Parallel()

	sender, err := NewSMTPSender(SMTPSenderConfig{Host: "smtp.example.com", Port: 587}, staticID("id-1"), logging.NewNop())
	require.NoError(t, err)

	msg := sender.buildMessage(testMessage(), "id-1")
	require.NoError(t, msg.Error)
	raw := msg.GetMessage()
	assert.Contains(t, raw, "Subject: Week 1 results")
	assert.Contains(t, raw, "fan@example.com")
	assert.Contains(t, raw, "X-Pickem-Message-Id: id-1")
}

func TestNewSMTPSender_RequiresHost(t *testing.T) {
	t.Parallel()

	_, err := NewSMTPSender(SMTPSenderConfig{Port: 25}, staticID("x"), logging.NewNop())
	require.Error(t, err)
}

func TestLogSender_ReturnsGeneratedID(t *testing.T) {
	t.Parallel()

	receipt, err := NewLogSender(staticID("log-1"), logging.NewNop()).Send(context.Background(), testMessage())
	require.NoError(t, err)
	assert.Equal(t, "log-1", receipt.MessageID)
}
