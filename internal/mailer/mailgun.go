package mailer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tmtsbahamas/rentals-backend/pkg/config"
)

// MailgunTransport posts messages to the Mailgun HTTP API
// (POST <base>/<domain>/messages with basic auth "api:<key>").
type MailgunTransport struct {
	apiKey  string
	domain  string
	baseURL string
	from    string
	client  *http.Client
}

// NewMailgunTransport builds the transport from mail configuration. An
// absent API key or domain leaves the transport unconfigured.
func NewMailgunTransport(cfg config.MailConfig) *MailgunTransport {
	return &MailgunTransport{
		apiKey:  cfg.MailgunAPIKey,
		domain:  cfg.MailgunDomain,
		baseURL: strings.TrimRight(cfg.MailgunBaseURL, "/"),
		from:    cfg.From(),
		client:  &http.Client{Timeout: cfg.Timeout},
	}
}

func (t *MailgunTransport) Configured() bool {
	return t != nil && t.apiKey != "" && t.domain != ""
}

func (t *MailgunTransport) Send(ctx context.Context, msg Message) error {
	endpoint := fmt.Sprintf("%s/%s/messages", t.baseURL, t.domain)

	form := url.Values{}
	form.Set("from", t.from)
	form.Set("to", msg.To)
	form.Set("subject", msg.Subject)
	form.Set("html", msg.HTML)
	if msg.Text != "" {
		form.Set("text", msg.Text)
	}
	if len(msg.CC) > 0 {
		form.Set("cc", strings.Join(msg.CC, ","))
	}
	if len(msg.BCC) > 0 {
		form.Set("bcc", strings.Join(msg.BCC, ","))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("building mailgun request: %w", err)
	}
	req.SetBasicAuth("api", t.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting to mailgun: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("mailgun responded %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}
