package mail

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/sipstop/backend/internal/dependency"
	"github.com/sipstop/backend/internal/entity"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

type Config struct {
	APIKey         string        `mapstructure:"sendgrid_api_key"`
	FromEmail      string        `mapstructure:"from_email"`
	FromName       string        `mapstructure:"from_email_name"`
	WorkerInterval time.Duration `mapstructure:"worker_interval"`
}

// Mailer queues transactional emails in the outbox collection and delivers
// them through the configured sender. Delivery failures are retried by the
// worker, so callers never block on the mail provider.
type Mailer struct {
	cli            dependency.Sender
	mailRepository dependency.Mail
	c              *Config
	ctx            context.Context
	cancel         context.CancelFunc
	templates      map[string]*template.Template
}

func New(c *Config, mailRepository dependency.Mail) (dependency.Mailer, error) {
	if c.APIKey == "" || c.FromEmail == "" || c.FromName == "" {
		return nil, fmt.Errorf("incomplete config: %+v", c)
	}
	return newMailer(c, NewSendGrid(c), mailRepository)
}

func newMailer(c *Config, cli dependency.Sender, mailRepository dependency.Mail) (*Mailer, error) {
	m := &Mailer{
		cli:            cli,
		mailRepository: mailRepository,
		c:              c,
		templates:      make(map[string]*template.Template),
	}

	if err := m.parseTemplates(); err != nil {
		return nil, fmt.Errorf("error parsing templates: %w", err)
	}

	return m, nil
}

func (m *Mailer) parseTemplates() error {
	const templateDir = "templates"

	dirEntries, err := templatesFS.ReadDir(templateDir)
	if err != nil {
		return fmt.Errorf("error reading template directory: %w", err)
	}

	for _, entry := range dirEntries {
		if entry.IsDir() {
			continue
		}
		tmpl, err := template.ParseFS(templatesFS, filepath.Join(templateDir, entry.Name()))
		if err != nil {
			return fmt.Errorf("error parsing template '%s': %w", entry.Name(), err)
		}
		m.templates[entry.Name()] = tmpl
	}

	return nil
}

func (m *Mailer) buildMailRequest(to, toName, tn string, data interface{}) (*entity.MailRequest, error) {
	tmpl, ok := m.templates[tn]
	if !ok {
		return nil, fmt.Errorf("template not found: %v", tn)
	}

	subject, ok := templateSubjects[tn]
	if !ok {
		return nil, fmt.Errorf("subject not found for template: %v", tn)
	}

	body := &strings.Builder{}
	if err := tmpl.Execute(body, data); err != nil {
		return nil, fmt.Errorf("error executing template: %w", err)
	}

	return &entity.MailRequest{
		To:      to,
		ToName:  toName,
		Subject: subject,
		Html:    body.String(),
	}, nil
}

// queueAndSend inserts the request into the outbox first, then attempts
// immediate delivery. A delivery failure is not an error: the worker picks
// the request up again on its next tick.
func (m *Mailer) queueAndSend(ctx context.Context, req *entity.MailRequest) error {
	id, err := m.mailRepository.AddMail(ctx, req)
	if err != nil {
		return fmt.Errorf("error inserting email: %w", err)
	}
	req.Id = id

	if err := m.cli.Send(ctx, req); err != nil {
		slog.Default().ErrorContext(ctx, "can't send mail",
			slog.String("err", err.Error()),
			slog.Int("mailId", id),
		)
		return nil
	}

	if err := m.mailRepository.UpdateSent(ctx, id); err != nil {
		return fmt.Errorf("error updating email: %w", err)
	}

	return nil
}
