package contact

import (
	"bytes"
	"text/template"
)

type verificationVars struct {
	FirstName string
	Link      string
	TTLHours  int
}

type notificationVars struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Message   string
}

var verificationTmpl = template.Must(template.New("verification").Parse(
	`Hi {{.FirstName}},

Thanks for getting in touch. Please confirm your email address by opening the link below:

{{.Link}}

The link expires in {{.TTLHours}} hours. If you did not submit the contact form, you can ignore this email.
`))

var notificationTmpl = template.Must(template.New("notification").Parse(
	`New contact form message.

Name: {{.FirstName}} {{.LastName}}
Email: {{.Email}}
Phone: {{.Phone}}

Message:
{{.Message}}
`))

func renderVerificationEmail(v verificationVars) (string, error) {
	var buf bytes.Buffer
	if err := verificationTmpl.Execute(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderAdminNotification(v notificationVars) (string, error) {
	var buf bytes.Buffer
	if err := notificationTmpl.Execute(&buf, v); err != nil {
		return "", err
	}
	return buf.String(), nil
}
