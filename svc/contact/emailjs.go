package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// EmailJSConfig addresses the EmailJS REST API. The defaults are the
// site's public identifiers.
type EmailJSConfig struct {
	Endpoint   string        `env:"EMAILJS_ENDPOINT" envDefault:"https://api.emailjs.com/api/v1.0/email/send"`
	ServiceID  string        `env:"EMAILJS_SERVICE_ID" envDefault:"service_0awikrb"`
	TemplateID string        `env:"EMAILJS_TEMPLATE_ID" envDefault:"template_4vtkno5"`
	PublicKey  string        `env:"EMAILJS_PUBLIC_KEY" envDefault:"Q58TNQCchFLq3tOBW"`
	Timeout    time.Duration `env:"EMAILJS_TIMEOUT" envDefault:"15s"`
}

// EmailJSClient delivers inquiries through EmailJS with a single POST.
type EmailJSClient struct {
	cfg        EmailJSConfig
	httpClient *http.Client
}

type EmailJSOption func(*EmailJSClient)

func WithHTTPClient(hc *http.Client) EmailJSOption {
	return func(c *EmailJSClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

func NewEmailJSClient(cfg EmailJSConfig, opts ...EmailJSOption) (*EmailJSClient, error) {
	if cfg.Endpoint == "" || cfg.ServiceID == "" || cfg.TemplateID == "" || cfg.PublicKey == "" {
		return nil, fmt.Errorf("%w: emailjs endpoint, service, template and public key are required", ErrInvalidConfig)
	}
	c := &EmailJSClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// TemplateID is shown in the template-not-found message.
func (c *EmailJSClient) TemplateID() string { return c.cfg.TemplateID }

type emailJSRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	TemplateParams templateParams `json:"template_params"`
}

type templateParams struct {
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	Phone     string `json:"phone"`
	Message   string `json:"message"`
	ToName    string `json:"to_name"`
}

// Send posts inq. The response body is always read as text; 2xx is success,
// anything else is a *DeliveryError carrying the body.
func (c *EmailJSClient) Send(ctx context.Context, inq Inquiry) error {
	body, err := json.Marshal(emailJSRequest{
		ServiceID:  c.cfg.ServiceID,
		TemplateID: c.cfg.TemplateID,
		UserID:     c.cfg.PublicKey,
		TemplateParams: templateParams{
			FromName:  inq.Name,
			FromEmail: inq.Email,
			Phone:     inq.Phone,
			Message:   inq.Message,
			ToName:    inq.ToName,
		},
	})
	if err != nil {
		return fmt.Errorf("contact: encode emailjs request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("contact: build emailjs request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Join(ErrNetwork, err)
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return errors.Join(ErrNetwork, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &DeliveryError{StatusCode: resp.StatusCode, Detail: string(text)}
	}
	return nil
}
