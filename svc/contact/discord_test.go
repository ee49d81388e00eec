package contact_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velveproduce/site/svc/contact"
)

// rewriteTransport sends every request to target, keeping the path.
type rewriteTransport struct {
	target *url.URL
}

func (rt rewriteTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.URL.Scheme = rt.target.Scheme
	r.URL.Host = rt.target.Host
	return http.DefaultTransport.RoundTrip(r)
}

func TestDiscordNotifier(t *testing.T) {
	t.Parallel()

	var path string
	var payload struct {
		Embeds []struct {
			Title  string `json:"title"`
			Fields []struct {
				Name  string `json:"name"`
				Value string `json:"value"`
			} `json:"fields"`
		} `json:"embeds"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &payload)
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)
	target, err := url.Parse(srv.URL)
	require.NoError(t, err)

	n, err := contact.NewDiscordNotifier(
		contact.DiscordConfig{WebhookID: "123", WebhookToken: "secret"},
		contact.WithDiscordHTTPClient(&http.Client{Transport: rewriteTransport{target: target}}),
	)
	require.NoError(t, err)
	require.NoError(t, n.Notify(context.Background(), inquiry))

	assert.Contains(t, path, "/webhooks/123/secret")
	require.Len(t, payload.Embeds, 1)
	names := make([]string, 0, len(payload.Embeds[0].Fields))
	for _, f := range payload.Embeds[0].Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"Name", "Email", "Message"}, names, "empty phone is omitted")
}

func TestDiscordNotifier_Error(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message": "Unknown Webhook", "code": 10015}`)
	}))
	t.Cleanup(srv.Close)
	target, err := url.Parse(srv.URL)
	require.NoError(t, err)

	n, err := contact.NewDiscordNotifier(
		contact.DiscordConfig{WebhookID: "123", WebhookToken: "secret"},
		contact.WithDiscordHTTPClient(&http.Client{Transport: rewriteTransport{target: target}}),
	)
	require.NoError(t, err)
	require.Error(t, n.Notify(context.Background(), inquiry))
}

func TestNewDiscordNotifier_Disabled(t *testing.T) {
	t.Parallel()

	_, err := contact.NewDiscordNotifier(contact.DiscordConfig{})
	require.ErrorIs(t, err, contact.ErrInvalidConfig)
	assert.False(t, contact.DiscordConfig{WebhookID: "1"}.Enabled())
}
