package email

import "net/smtp"

// Indirection points for tests; production keeps the stdlib client the
// same way the deploy has always sent mail.
var (
	smtpAuth = func(cfg Config) smtp.Auth {
		return smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	sendMail = smtp.SendMail
)
