package http

import (
	"github.com/contact-form-api/internal/infrastructure/dynamo"
	"github.com/contact-form-api/internal/infrastructure/smtp"
)

// Deps holds all infrastructure dependencies for the router. Handlers receive
// them through the contact service so tests can swap in fakes.
type Deps struct {
	SubmitterRepo *dynamo.SubmitterRepo
	MessageRepo   *dynamo.MessageRepo
	Mailer        smtp.Mailer
}
