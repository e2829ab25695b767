package email

import "fmt"

// VerificationCodeEmail builds the email-ownership verification message.
// The code expires after the email-verification request TTL (10 minutes).
func VerificationCodeEmail(sendTo, code string) Message {
	return Message{
		SendTo:  sendTo,
		Subject: "Email verification code",
		BodyHTML: fmt.Sprintf(
			`<div><h2>Email verification</h2><p>Your verification code is: <strong>%s</strong></p><p>This code will expire in 10 minutes.</p></div>`,
			code,
		),
		Tag: "email-verification",
	}
}

// PasswordResetCodeEmail builds the password-reset re-proof message.
func PasswordResetCodeEmail(sendTo, code string) Message {
	return Message{
		SendTo:  sendTo,
		Subject: "Password reset code",
		BodyHTML: fmt.Sprintf(
			`<div><h2>Password reset</h2><p>Your password reset code is: <strong>%s</strong></p><p>This code will expire in 10 minutes.</p><p>If you did not request this, please ignore this email.</p></div>`,
			code,
		),
		Tag: "password-reset",
	}
}
