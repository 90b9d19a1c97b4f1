package discord

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"openmic/internal/monitoring"
	"openmic/internal/ports/output"
	pkgdiscord "openmic/pkg/discord"
)

var _ output.Notifier = (*Notifier)(nil)

type webhookClient interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Notifier posts signup changes to the hosts' Discord channel through a webhook.
type Notifier struct {
	client     webhookClient
	webhookID  string
	token      string
	username   string
	locale     string
	translator output.T
	location   *time.Location
}

// NewNotifier creates a webhook notifier. Webhooks need no bot token, so the
// session is created unauthenticated.
func NewNotifier(webhookID, token, username, locale string, translator output.T, loc *time.Location) (*Notifier, error) {
	s, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	return &Notifier{
		client:     s,
		webhookID:  webhookID,
		token:      token,
		username:   username,
		locale:     locale,
		translator: translator,
		location:   loc,
	}, nil
}

// Notify only handles signup creation and cancellation.
func (n *Notifier) Notify(ctx context.Context, note output.Notification) error {
	if note.Kind != output.NotifySignupCreated && note.Kind != output.NotifySignupCancelled {
		return nil
	}
	if note.Event == nil || note.Signup == nil {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	labels := pkgdiscord.SignupLabels{
		Title:       n.translator.T(n.locale, "discord."+note.Kind+".title", nil),
		Performer:   n.translator.T(n.locale, "discord.field.performer", nil),
		Performance: n.translator.T(n.locale, "discord.field.performance", nil),
		Order:       n.translator.T(n.locale, "discord.field.order", nil),
		Unordered:   n.translator.T(n.locale, "discord.field.unordered", nil),
	}
	embed := pkgdiscord.BuildSignupEmbed(labels, note.Event, note.Signup, note.Kind == output.NotifySignupCancelled, n.location)
	_, err := n.client.WebhookExecute(n.webhookID, n.token, false, &discordgo.WebhookParams{
		Username: n.username,
		Embeds:   []*discordgo.MessageEmbed{embed},
	}, discordgo.WithContext(ctx))
	monitoring.TrackNotification("discord", note.Kind, err)
	if err != nil {
		return fmt.Errorf("discord webhook: %w", err)
	}
	return nil
}
