// Package contact implements the contact form submission lifecycle.
//
// A Flow moves through idle, sending, success and error on a
// statemachine.Machine. Submit sanitizes and validates the fields, moves to
// sending, hands an Inquiry to the Sender once and records the outcome:
//
//	flow := contact.NewFlow(emailjs, contact.WithNotifier(discord))
//	err := flow.Submit(ctx, contact.Fields{Name: "Ana", Email: "ana@example.com", Message: "Hola"})
//	flow.Snapshot().Status // contact.StatusSuccess
//
// Only one submission is in flight per Flow; a second Submit while sending
// returns ErrInFlight. Failed deliveries leave the flow in StatusError with
// the endpoint's response body (or NetworkErrorDetail) as Snapshot.Detail.
// Nothing is retried automatically.
//
// Senders: EmailJSClient posts to the EmailJS REST API, MailSender wraps an
// email.Sender. DiscordNotifier announces delivered inquiries on a webhook.
package contact
