package mail

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sipstop/backend/internal/entity"
	gerr "github.com/sipstop/backend/internal/errors"
)

// SendGrid delivers a single rendered email through the SendGrid v3 API.
type SendGrid struct {
	cli  *sendgrid.Client
	from *sgmail.Email
}

func NewSendGrid(c *Config) *SendGrid {
	return &SendGrid{
		cli:  sendgrid.NewSendClient(c.APIKey),
		from: sgmail.NewEmail(c.FromName, c.FromEmail),
	}
}

func (s *SendGrid) Send(ctx context.Context, req *entity.MailRequest) error {
	msg := sgmail.NewSingleEmail(s.from, req.Subject, sgmail.NewEmail(req.ToName, req.To), "", req.Html)

	resp, err := s.cli.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("error sending email: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		return gerr.MailApiLimitReached
	}
	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("error sending email bad status code: %s, status code: %d", resp.Body, resp.StatusCode)
	}

	return nil
}
