package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var rules = validator.New()

// Message is an outbound transactional email. HTML is required; Text is an
// optional plain-text alternative. An empty From uses the configured sender.
type Message struct {
	To      []string
	Subject string
	HTML    string
	Text    string
	From    string
}

// Receipt is the provider's acknowledgement.
type Receipt struct {
	MessageID string
}

// Sender delivers a message through one provider.
type Sender interface {
	Send(ctx context.Context, msg Message) (Receipt, error)
}

func (m Message) Validate() error {
	if len(m.To) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}
	for _, to := range m.To {
		if err := rules.Var(strings.TrimSpace(to), "email"); err != nil {
			return fmt.Errorf("invalid recipient %q", to)
		}
	}
	if strings.TrimSpace(m.Subject) == "" {
		return fmt.Errorf("subject is required")
	}
	if strings.TrimSpace(m.HTML) == "" {
		return fmt.Errorf("html body is required")
	}
	if m.From != "" {
		if err := rules.Var(senderAddress(m.From), "email"); err != nil {
			return fmt.Errorf("invalid sender %q", m.From)
		}
	}
	return nil
}

// senderAddress strips an optional display name, so From may be either
// "league@example.com" or "Pick'em League <league@example.com>". Recipients
// must be bare addresses.
func senderAddress(from string) string {
	from = strings.TrimSpace(from)
	open := strings.LastIndex(from, "<")
	if open < 0 || !strings.HasSuffix(from, ">") {
		return from
	}
	return from[open+1 : len(from)-1]
}
