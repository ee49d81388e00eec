package email

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DevSender logs messages instead of sending them. With a directory set it
// also writes each message as an .html body plus a .json envelope.
type DevSender struct {
	log *slog.Logger
	dir string
	now func() time.Time
}

func NewDevSender(log *slog.Logger, dir string) *DevSender {
	return &DevSender{log: log, dir: dir, now: time.Now}
}

type envelope struct {
	Timestamp string `json:"timestamp"`
	To        string `json:"to"`
	ReplyTo   string `json:"reply_to,omitempty"`
	Subject   string `json:"subject"`
	Tag       string `json:"tag,omitempty"`
	Text      string `json:"text,omitempty"`
}

func (d *DevSender) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	d.log.InfoContext(ctx, "email not sent (dev sender)",
		slog.String("to", msg.To),
		slog.String("reply_to", msg.ReplyTo),
		slog.String("subject", msg.Subject),
	)
	if d.dir == "" {
		return nil
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("%w: create dir: %v", ErrFailedToSend, err)
	}

	now := d.now()
	name := filepath.Join(d.dir, now.Format("2006_01_02_150405")+"_"+safeName(cmp(msg.Tag, msg.Subject)))

	if err := os.WriteFile(name+".html", []byte(msg.HTMLBody), 0o644); err != nil {
		return fmt.Errorf("%w: write html: %v", ErrFailedToSend, err)
	}
	meta, err := json.MarshalIndent(envelope{
		Timestamp: now.Format(time.RFC3339),
		To:        msg.To,
		ReplyTo:   msg.ReplyTo,
		Subject:   msg.Subject,
		Tag:       msg.Tag,
		Text:      msg.TextBody,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: marshal envelope: %v", ErrFailedToSend, err)
	}
	if err := os.WriteFile(name+".json", meta, 0o644); err != nil {
		return fmt.Errorf("%w: write json: %v", ErrFailedToSend, err)
	}
	return nil
}

var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

func safeName(s string) string {
	s = unsafeChars.ReplaceAllString(strings.ReplaceAll(s, " ", "_"), "")
	if len(s) > 100 {
		s = s[:100]
	}
	if s == "" {
		s = "email"
	}
	return strings.ToLower(s)
}

func cmp(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
