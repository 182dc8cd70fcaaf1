package mailer

import (
	"bytes"
	"fmt"
	"text/template"
)

// VerificationSubject is the subject line of every code email.
const VerificationSubject = "Your Verification Code"

var verificationBody = template.Must(template.New("verification").Parse(`Hello,

Your 6-digit verification code is: {{.Code}}

This code will expire in 5 minutes. Please do not share this code with anyone.

If you did not request this code, please ignore this email.

Best regards,
{{.AppName}}

---
This is an automated message. Please do not reply to this email.`))

// VerificationMessage builds the email that carries code to the recipient.
func VerificationMessage(fromName, fromAddress, to, code string) (Message, error) {
	var body bytes.Buffer
	data := struct {
		Code    string
		AppName string
	}{Code: code, AppName: fromName}

	if err := verificationBody.Execute(&body, data); err != nil {
		return Message{}, fmt.Errorf("rendering verification email: %w", err)
	}

	return Message{
		FromName:    fromName,
		FromAddress: fromAddress,
		To:          to,
		Subject:     VerificationSubject,
		Body:        body.String(),
	}, nil
}
