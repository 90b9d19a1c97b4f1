// Package mail sends transactional emails (invitations, reminders, password
// resets and host alerts) over SMTP.
package mail

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"net"
	"net/smtp"
	"net/url"
	"strconv"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/domodwyer/mailyak/v3"

	"openmic/internal/domain/entities"
	"openmic/internal/monitoring"
	"openmic/internal/ports/output"
	"openmic/pkg/tz"
)

//go:embed templates/*
var templateFS embed.FS

var _ output.Notifier = (*Mailer)(nil)

const dateLayout = "Mon 02 Jan 2006, 15:04"

var handledKinds = map[string]bool{
	output.NotifyInvitation:      true,
	output.NotifyReminder:        true,
	output.NotifyPasswordReset:   true,
	output.NotifySignupCreated:   true,
	output.NotifySignupCancelled: true,
}

type Config struct {
	Host      string
	Port      int
	Username  string
	Password  string
	From      string
	FromName  string
	PublicURL string
	Location  *time.Location
}

// Message is one rendered email for one recipient.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

type Mailer struct {
	cfg        Config
	translator output.T
	html       *htmltemplate.Template
	text       *texttemplate.Template
	send       func(Message) error
}

func NewMailer(cfg Config, translator output.T) (*Mailer, error) {
	html, err := htmltemplate.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse html templates: %w", err)
	}
	text, err := texttemplate.ParseFS(templateFS, "templates/*.txt")
	if err != nil {
		return nil, fmt.Errorf("parse text templates: %w", err)
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	m := &Mailer{cfg: cfg, translator: translator, html: html, text: text}
	m.send = m.sendSMTP
	return m, nil
}

type templateData struct {
	Event          *entities.Event
	Venue          *entities.Venue
	Signup         *entities.Signup
	Message        string
	StartsAt       string
	SignupDeadline string
	EventURL       string
	ResetURL       string
}

// Notify renders n and sends one email per recipient. Kinds without a
// template are ignored.
func (m *Mailer) Notify(ctx context.Context, n output.Notification) error {
	if !handledKinds[n.Kind] || len(n.Recipients) == 0 {
		return nil
	}
	var errs []error
	for _, to := range n.Recipients {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		msg, err := m.Render(n, to)
		if err == nil {
			err = m.deliver(ctx, msg)
		}
		monitoring.TrackNotification("email", n.Kind, err)
		if err != nil {
			errs = append(errs, fmt.Errorf("mail %s to %s: %w", n.Kind, to, err))
		}
	}
	return errors.Join(errs...)
}

// Render builds the email of kind n.Kind for one recipient.
func (m *Mailer) Render(n output.Notification, to string) (Message, error) {
	data := templateData{
		Event:   n.Event,
		Venue:   n.Venue,
		Signup:  n.Signup,
		Message: n.Message,
	}
	eventTitle := ""
	if n.Event != nil {
		eventTitle = n.Event.Title
		data.StartsAt = tz.Format(n.Event.StartsAt, m.cfg.Location, dateLayout)
		data.SignupDeadline = tz.Format(n.Event.SignupDeadline, m.cfg.Location, dateLayout)
		data.EventURL = m.link(fmt.Sprintf("/events/%d", n.Event.ID), nil)
	}
	if n.Token != "" {
		data.ResetURL = m.link("/reset-password", url.Values{"token": {n.Token}})
	}

	var html, text bytes.Buffer
	if err := m.html.ExecuteTemplate(&html, n.Kind+".html", data); err != nil {
		return Message{}, fmt.Errorf("render %s html: %w", n.Kind, err)
	}
	if err := m.text.ExecuteTemplate(&text, n.Kind+".txt", data); err != nil {
		return Message{}, fmt.Errorf("render %s text: %w", n.Kind, err)
	}
	subject := m.translator.T(n.Locale, "mail."+n.Kind+".subject", map[string]any{"Event": eventTitle})
	return Message{
		To:      to,
		Subject: subject,
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}

func (m *Mailer) link(path string, query url.Values) string {
	u := strings.TrimRight(m.cfg.PublicURL, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// deliver bounds a send by ctx. net/smtp has no context support, so a send
// that outlives ctx keeps running in the background and its result is dropped.
func (m *Mailer) deliver(ctx context.Context, msg Message) error {
	done := make(chan error, 1)
	go func() { done <- m.send(msg) }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (m *Mailer) sendSMTP(msg Message) error {
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	mail := mailyak.New(net.JoinHostPort(m.cfg.Host, strconv.Itoa(m.cfg.Port)), auth)
	mail.To(msg.To)
	mail.From(m.cfg.From)
	if m.cfg.FromName != "" {
		mail.FromName(m.cfg.FromName)
	}
	mail.Subject(msg.Subject)
	mail.HTML().Set(msg.HTML)
	mail.Plain().Set(msg.Text)
	return mail.Send()
}
