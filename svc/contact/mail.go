package contact

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/velveproduce/site/pkg/email"
)

// MailSender delivers inquiries as email to the team inbox through any
// email.Sender, such as the Postmark client or the dev sender.
type MailSender struct {
	sender email.Sender
	to     string
}

func NewMailSender(sender email.Sender, to string) *MailSender {
	return &MailSender{sender: sender, to: to}
}

var inquiryHTML = template.Must(template.New("inquiry").Parse(`<h2>New inquiry for {{.ToName}}</h2>
<p><strong>Name:</strong> {{.Name}}<br>
<strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a><br>
{{if .Phone}}<strong>Phone:</strong> {{.Phone}}<br>{{end}}</p>
<p style="white-space:pre-line">{{.Message}}</p>
`))

func inquiryComponent(inq Inquiry) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return inquiryHTML.Execute(w, inq)
	})
}

// Send mails inq. Provider rejections and invalid messages come back as
// *DeliveryError, anything else wraps ErrNetwork.
func (m *MailSender) Send(ctx context.Context, inq Inquiry) error {
	html, err := email.Render(ctx, inquiryComponent(inq))
	if err != nil {
		return fmt.Errorf("contact: render inquiry: %w", err)
	}

	var text strings.Builder
	fmt.Fprintf(&text, "Name: %s\nEmail: %s\n", inq.Name, inq.Email)
	if inq.Phone != "" {
		fmt.Fprintf(&text, "Phone: %s\n", inq.Phone)
	}
	fmt.Fprintf(&text, "\n%s\n", inq.Message)

	err = m.sender.Send(ctx, email.Message{
		To:       m.to,
		ReplyTo:  inq.Email,
		Subject:  "Website inquiry from " + inq.Name,
		HTMLBody: html,
		TextBody: text.String(),
		Tag:      "contact-inquiry",
	})
	var rej *email.RejectedError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &rej):
		return &DeliveryError{Detail: rej.Message}
	case errors.Is(err, email.ErrInvalidMessage):
		return &DeliveryError{Detail: err.Error()}
	}
	return errors.Join(ErrNetwork, err)
}
