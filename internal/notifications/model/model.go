package model

import "time"

// VerificationRequestedEvent is published when a new account needs its
// email address confirmed. A downstream mailer consumes it and sends the
// verification link.
type VerificationRequestedEvent struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	VerifyURL string    `json:"verify_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// BookingConfirmedEvent is published after a reservation is confirmed so
// the guest receives a confirmation email.
type BookingConfirmedEvent struct {
	BookingID string `json:"booking_id"`
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}
