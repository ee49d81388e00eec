// Package email sends transactional email. PostmarkClient talks to
// Postmark through github.com/mrz1836/postmark. DevSender logs messages and
// can drop them into a directory for local inspection.
//
// Bodies are usually templ components rendered with Render.
package email
