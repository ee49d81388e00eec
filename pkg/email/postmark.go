package email

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mrz1836/postmark"
)

// Config holds the Postmark credentials and the sender identity.
// An empty server token means Postmark is not configured.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"SENDER_EMAIL" envDefault:"web@velveproduce.com"`
	MessageStream        string `env:"POSTMARK_MESSAGE_STREAM" envDefault:"outbound"`
}

// Enabled reports whether a server token is set.
func (c Config) Enabled() bool { return c.PostmarkServerToken != "" }

// PostmarkOption adjusts the underlying client.
type PostmarkOption func(*postmark.Client)

// WithBaseURL points the client at another API host.
func WithBaseURL(url string) PostmarkOption {
	return func(c *postmark.Client) { c.BaseURL = url }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) PostmarkOption {
	return func(c *postmark.Client) {
		if hc != nil {
			c.HTTPClient = hc
		}
	}
}

// PostmarkClient sends through Postmark's transactional API.
type PostmarkClient struct {
	client *postmark.Client
	cfg    Config
}

func NewPostmarkClient(cfg Config, opts ...PostmarkOption) (*PostmarkClient, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: PostmarkServerToken is required", ErrInvalidConfig)
	}
	if !validAddress(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}
	c := postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken)
	for _, opt := range opts {
		opt(c)
	}
	return &PostmarkClient{client: c, cfg: cfg}, nil
}

func (p *PostmarkClient) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return err
	}

	resp, err := p.client.SendEmail(ctx, postmark.Email{
		From:          p.cfg.SenderEmail,
		To:            msg.To,
		ReplyTo:       msg.ReplyTo,
		Subject:       msg.Subject,
		Tag:           msg.Tag,
		HTMLBody:      msg.HTMLBody,
		TextBody:      msg.TextBody,
		MessageStream: p.cfg.MessageStream,
	})
	var apiErr postmark.APIError
	switch {
	case resp.ErrorCode > 0:
		return errors.Join(ErrFailedToSend, &RejectedError{Code: resp.ErrorCode, Message: resp.Message})
	case errors.As(err, &apiErr):
		return errors.Join(ErrFailedToSend, &RejectedError{Code: apiErr.ErrorCode, Message: apiErr.Message})
	case err != nil:
		return errors.Join(ErrFailedToSend, err)
	}
	return nil
}
