// Package queue defines the notification payloads exchanged over the
// message broker, the publisher that implements the Notifier
// capability, and the background worker that drains the queue.
package queue

// OtpNotification is published when a one-time code has been issued
// and must be delivered to the candidate over SMS or email.  It
// contains everything the delivery worker needs without querying the
// primary database.
type OtpNotification struct {
	Identifier string `json:"identifier"`
	Code       string `json:"code"`
	IssuedAt   string `json:"issued_at"`
	ExpiresAt  string `json:"expires_at,omitempty"`
}
