package service

import (
	"context"
	"log"
)

// Mailer dispatches one-time passwords. Actual transport (SMTP, a mail API)
// lives behind this interface; the service only cares that the send either
// happened or errored.
type Mailer interface {
	SendOTP(ctx context.Context, email, otp string) error
}

// LogMailer writes OTPs to the process log instead of sending mail. Used in
// development and tests.
type LogMailer struct{}

func (LogMailer) SendOTP(_ context.Context, email, otp string) error {
	log.Printf("OTP for %s: %s", email, otp)
	return nil
}
