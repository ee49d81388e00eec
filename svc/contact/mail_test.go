package contact_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/velveproduce/site/pkg/email"
	"github.com/velveproduce/site/pkg/logger"
	"github.com/velveproduce/site/svc/contact"
)

type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(ctx context.Context, msg email.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

func TestMailSender(t *testing.T) {
	t.Parallel()

	mailer := &mockMailer{}
	mailer.On("Send", mock.Anything, mock.MatchedBy(func(msg email.Message) bool {
		return msg.To == "exports@velveproduce.com" &&
			msg.ReplyTo == "ana@example.com" &&
			msg.Subject == "Website inquiry from Ana García" &&
			msg.Tag == "contact-inquiry"
	})).Return(nil).Once()

	s := contact.NewMailSender(mailer, "exports@velveproduce.com")
	require.NoError(t, s.Send(context.Background(), inquiry))
	mailer.AssertExpectations(t)

	msg := mailer.Calls[0].Arguments.Get(1).(email.Message)
	assert.Contains(t, msg.HTMLBody, "Velve Produce Team")
	assert.Contains(t, msg.HTMLBody, "mailto:ana@example.com")
	assert.NotContains(t, msg.HTMLBody, "Phone:")
	assert.Contains(t, msg.TextBody, "Hola")
}

func TestMailSender_EscapesInput(t *testing.T) {
	t.Parallel()

	mailer := &mockMailer{}
	mailer.On("Send", mock.Anything, mock.Anything).Return(nil)

	inq := inquiry
	inq.Message = "<script>alert(1)</script>"
	require.NoError(t, contact.NewMailSender(mailer, "exports@velveproduce.com").Send(context.Background(), inq))

	msg := mailer.Calls[0].Arguments.Get(1).(email.Message)
	assert.NotContains(t, msg.HTMLBody, "<script>")
}

func TestMailSender_Failure(t *testing.T) {
	t.Parallel()

	mailer := &mockMailer{}
	mailer.On("Send", mock.Anything, mock.Anything).
		Return(errors.Join(email.ErrFailedToSend, &email.RejectedError{Code: 300, Message: "Invalid email request"}))

	err := contact.NewMailSender(mailer, "exports@velveproduce.com").Send(context.Background(), inquiry)
	var de *contact.DeliveryError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "Invalid email request", de.Detail)
	assert.NotErrorIs(t, err, contact.ErrNetwork)
}

func TestMailSender_NetworkError(t *testing.T) {
	t.Parallel()

	mailer := &mockMailer{}
	mailer.On("Send", mock.Anything, mock.Anything).
		Return(errors.Join(email.ErrFailedToSend, errors.New("dial tcp 127.0.0.1:1: connect: connection refused")))

	s := contact.NewMailSender(mailer, "exports@velveproduce.com")
	err := s.Send(context.Background(), inquiry)
	require.ErrorIs(t, err, contact.ErrNetwork)
	var de *contact.DeliveryError
	assert.False(t, errors.As(err, &de))

	f := contact.NewFlow(s)
	require.ErrorIs(t, f.Submit(context.Background(), validFields), contact.ErrNetwork)
	snap := f.Snapshot()
	assert.Equal(t, contact.StatusError, snap.Status)
	assert.Equal(t, contact.NetworkErrorDetail, snap.Detail)
}

func TestMailSender_DevSender(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s := contact.NewMailSender(email.NewDevSender(logger.Discard(), dir), "exports@velveproduce.com")
	f := contact.NewFlow(s)
	require.NoError(t, f.Submit(context.Background(), validFields))
	assert.Equal(t, contact.StatusSuccess, f.Snapshot().Status)
}
