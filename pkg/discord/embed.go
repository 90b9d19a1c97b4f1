package discord

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"openmic/internal/domain/entities"
	"openmic/pkg/tz"

	"github.com/bwmarrin/discordgo"
)

const (
	embedColor     = 0x5865F2
	cancelledColor = 0xED4245
	dateLayout     = "02/01/2006 15:04"
)

// SignupLabels holds the already-translated strings of a signup embed.
type SignupLabels struct {
	Title       string
	Performer   string
	Performance string
	Order       string
	Unordered   string
}

func formatOrder(order int, unordered string) string {
	if order <= 0 {
		return unordered
	}
	return "#" + strconv.Itoa(order)
}

func formatPerformance(s *entities.Signup) string {
	parts := make([]string, 0, 2)
	if s.PerformanceName != "" {
		parts = append(parts, s.PerformanceName)
	}
	if s.PerformanceType != "" {
		parts = append(parts, "("+s.PerformanceType+")")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

func buildDescription(event *entities.Event, loc *time.Location) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("**%s**", event.Title))
	if when := tz.Format(event.StartsAt, loc, dateLayout); when != "" {
		b.WriteString(fmt.Sprintf("\n%s", when))
	}
	return b.String()
}

// BuildSignupEmbed builds the host-channel embed announcing a signup change.
func BuildSignupEmbed(labels SignupLabels, event *entities.Event, signup *entities.Signup, cancelled bool, loc *time.Location) *discordgo.MessageEmbed {
	color := embedColor
	if cancelled {
		color = cancelledColor
	}
	fields := []*discordgo.MessageEmbedField{
		{Name: labels.Performer, Value: signup.PerformerName, Inline: true},
		{Name: labels.Performance, Value: formatPerformance(signup), Inline: true},
	}
	if !cancelled {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   labels.Order,
			Value:  formatOrder(signup.PerformanceOrder, labels.Unordered),
			Inline: true,
		})
	}
	return &discordgo.MessageEmbed{
		Title:       labels.Title,
		Description: buildDescription(event, loc),
		Color:       color,
		Fields:      fields,
		Footer:      &discordgo.MessageEmbedFooter{Text: fmt.Sprintf("Event #%d • Signup #%d", event.ID, signup.ID)},
	}
}
