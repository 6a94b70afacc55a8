// Package notification turns stored submissions into owner emails.
package notification

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/portfolio/backend/internal/model"
	"github.com/portfolio/backend/pkg/mailer"
)

const subjectPrefix = "[Portfolio] "

// Config addresses the notification email.
type Config struct {
	Recipient    string // site owner
	SiteURL      string
	From         string
	FromName     string
	DKIMDomain   string
	DKIMSelector string
}

// Notifier emails the site owner about new submissions.
type Notifier struct {
	cfg    Config
	client mailer.Client
}

// New creates a Notifier sending through client.
func New(cfg Config, client mailer.Client) *Notifier {
	return &Notifier{cfg: cfg, client: client}
}

// NotifySubmission sends one email for sub. Reply-To is the submitter so the
// owner can answer directly.
func (n *Notifier) NotifySubmission(ctx context.Context, sub *model.Submission) error {
	msg, err := n.Compose(sub)
	if err != nil {
		return err
	}
	return n.client.Send(ctx, msg)
}

// Compose builds the relay message for sub without sending it.
func (n *Notifier) Compose(sub *model.Submission) (mailer.Message, error) {
	body, err := renderBody(sub, n.cfg.SiteURL)
	if err != nil {
		return mailer.Message{}, fmt.Errorf("render notification: %w", err)
	}
	return mailer.Message{
		Personalizations: []mailer.Personalization{{
			To:           []mailer.Address{{Email: n.cfg.Recipient}},
			DKIMDomain:   n.cfg.DKIMDomain,
			DKIMSelector: n.cfg.DKIMSelector,
		}},
		From:    mailer.Address{Email: n.cfg.From, Name: n.cfg.FromName},
		ReplyTo: &mailer.Address{Email: sub.Email, Name: sub.Name},
		Subject: Subject(sub),
		Content: []mailer.Content{{Type: "text/html", Value: body}},
	}, nil
}

// Subject is "[Portfolio] <subject>" or, without one, names the sender.
func Subject(sub *model.Submission) string {
	if sub.Subject != nil && *sub.Subject != "" {
		return subjectPrefix + *sub.Subject
	}
	return subjectPrefix + "New message from " + sub.Name
}

type bodyData struct {
	Name    string
	Email   string
	Subject string
	Lines   []string
	SiteURL string
}

func renderBody(sub *model.Submission, siteURL string) (string, error) {
	data := bodyData{
		Name:    sub.Name,
		Email:   sub.Email,
		Lines:   strings.Split(sub.Message, "\n"),
		SiteURL: siteURL,
	}
	if sub.Subject != nil {
		data.Subject = *sub.Subject
	}

	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var bodyTemplate = template.Must(template.New("submission").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <style>
    body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: #4f46e5; color: white; padding: 30px; border-radius: 8px 8px 0 0; }
    .content { background: #f9fafb; padding: 30px; border: 1px solid #e5e7eb; border-top: none; }
    .field { margin-bottom: 20px; }
    .label { font-weight: 600; color: #6b7280; font-size: 12px; text-transform: uppercase; letter-spacing: 0.5px; }
    .value { margin-top: 5px; padding: 12px; background: white; border-radius: 6px; border: 1px solid #e5e7eb; }
    .message { word-wrap: break-word; }
    .footer { background: #1f2937; color: #9ca3af; padding: 20px; text-align: center; font-size: 12px; border-radius: 0 0 8px 8px; }
    .footer a { color: #60a5fa; text-decoration: none; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1 style="margin: 0; font-size: 24px;">New Contact Form Submission</h1>
      <p style="margin: 10px 0 0 0; opacity: 0.9;">Someone just reached out through your portfolio</p>
    </div>
    <div class="content">
      <div class="field">
        <div class="label">From</div>
        <div class="value"><strong>{{.Name}}</strong></div>
      </div>
      <div class="field">
        <div class="label">Email</div>
        <div class="value"><a href="mailto:{{.Email}}" style="color: #2563eb;">{{.Email}}</a></div>
      </div>
      {{- if .Subject}}
      <div class="field">
        <div class="label">Subject</div>
        <div class="value">{{.Subject}}</div>
      </div>
      {{- end}}
      <div class="field">
        <div class="label">Message</div>
        <div class="value message">{{range $i, $line := .Lines}}{{if $i}}<br>{{end}}{{$line}}{{end}}</div>
      </div>
    </div>
    <div class="footer">
      <p style="margin: 0;">Sent from <a href="{{.SiteURL}}">{{.SiteURL}}</a></p>
      <p style="margin: 10px 0 0 0;">Reply directly to this email to respond to {{.Name}}</p>
    </div>
  </div>
</body>
</html>
`))
