package contact

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bwmarrin/discordgo"
)

// DiscordConfig names the webhook that receives inquiry notifications.
// An empty id disables the notifier.
type DiscordConfig struct {
	WebhookID    string `env:"DISCORD_WEBHOOK_ID"`
	WebhookToken string `env:"DISCORD_WEBHOOK_TOKEN"`
}

func (c DiscordConfig) Enabled() bool { return c.WebhookID != "" && c.WebhookToken != "" }

const (
	embedColor    = 0x464196
	maxEmbedField = 1024
)

// DiscordNotifier posts an embed for each delivered inquiry.
type DiscordNotifier struct {
	session *discordgo.Session
	cfg     DiscordConfig
	now     func() time.Time
}

type DiscordOption func(*DiscordNotifier)

// WithDiscordHTTPClient replaces the session's HTTP client.
func WithDiscordHTTPClient(hc *http.Client) DiscordOption {
	return func(n *DiscordNotifier) {
		if hc != nil {
			n.session.Client = hc
		}
	}
}

func NewDiscordNotifier(cfg DiscordConfig, opts ...DiscordOption) (*DiscordNotifier, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("%w: discord webhook id and token are required", ErrInvalidConfig)
	}
	// Webhook execution authenticates with the token in the URL.
	s, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("contact: discord session: %w", err)
	}
	s.ShouldRetryOnRateLimit = false
	s.MaxRestRetries = 0

	n := &DiscordNotifier{session: s, cfg: cfg, now: time.Now}
	for _, opt := range opts {
		opt(n)
	}
	return n, nil
}

func (n *DiscordNotifier) Notify(ctx context.Context, inq Inquiry) error {
	_, err := n.session.WebhookExecute(n.cfg.WebhookID, n.cfg.WebhookToken, false, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{inquiryEmbed(inq, n.now())},
	}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("contact: discord webhook: %w", err)
	}
	return nil
}

func inquiryEmbed(inq Inquiry, at time.Time) *discordgo.MessageEmbed {
	fields := []*discordgo.MessageEmbedField{
		{Name: "Name", Value: truncate(inq.Name), Inline: true},
		{Name: "Email", Value: truncate(inq.Email), Inline: true},
	}
	if inq.Phone != "" {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Phone", Value: truncate(inq.Phone), Inline: true})
	}
	fields = append(fields, &discordgo.MessageEmbedField{Name: "Message", Value: truncate(inq.Message)})

	return &discordgo.MessageEmbed{
		Title:     "📬 New website inquiry",
		Color:     embedColor,
		Fields:    fields,
		Timestamp: at.UTC().Format(time.RFC3339),
		Footer:    &discordgo.MessageEmbedFooter{Text: inq.ToName},
	}
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxEmbedField {
		return s
	}
	return string(r[:maxEmbedField-1]) + "…"
}
