package contact

import (
	"github.com/velveproduce/site/pkg/sanitizer"
	"github.com/velveproduce/site/pkg/validator"
)

// TeamName is the fixed recipient label of every inquiry.
const TeamName = "Velve Produce Team"

// Field names as posted by the contact form.
const (
	FieldName    = "user_name"
	FieldEmail   = "user_email"
	FieldPhone   = "user_phone"
	FieldMessage = "message"
)

const (
	maxNameLen    = 200
	maxEmailLen   = 254
	maxPhoneLen   = 40
	maxMessageLen = 5000
)

// Fields are the values typed into the contact form.
type Fields struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// Sanitize trims every field and strips control characters. Phone is free
// text and keeps whatever the visitor typed on one line.
func (f Fields) Sanitize() Fields {
	return Fields{
		Name:    sanitizer.Apply(f.Name, sanitizer.RemoveControlChars, sanitizer.SingleLine, sanitizer.MaxLength(maxNameLen)),
		Email:   sanitizer.Apply(f.Email, sanitizer.Trim, sanitizer.MaxLength(maxEmailLen)),
		Phone:   sanitizer.Apply(f.Phone, sanitizer.RemoveControlChars, sanitizer.SingleLine, sanitizer.MaxLength(maxPhoneLen)),
		Message: sanitizer.Apply(f.Message, sanitizer.RemoveControlChars, sanitizer.NormalizeNewlines, sanitizer.Trim, sanitizer.MaxLength(maxMessageLen)),
	}
}

// Validate returns validator.ValidationErrors keyed by form field name.
func (f Fields) Validate() error {
	return validator.Apply(
		validator.RequiredString(FieldName, f.Name),
		validator.RequiredString(FieldEmail, f.Email),
		validator.Optional(f.Email, validator.ValidEmail(FieldEmail, f.Email)),
		validator.RequiredString(FieldMessage, f.Message),
	)
}

// Inquiry is what a Sender delivers.
type Inquiry struct {
	Fields
	ToName string
}

func newInquiry(f Fields) Inquiry {
	return Inquiry{Fields: f, ToName: TeamName}
}
