// Package auth implements phone OTP login and JWT sessions for riders.
package auth

import (
	"errors"
	"time"

	"pinkauto/internal/types"
)

var (
	ErrInvalidPhone    = errors.New("phone must be a 10-digit mobile number")
	ErrOTPMismatch     = errors.New("incorrect verification code")
	ErrOTPExpired      = errors.New("verification code expired or never sent")
	ErrTooManyRequests = errors.New("too many verification codes requested")
	ErrInvalidToken    = errors.New("invalid or expired session token")
)

// Rider is an authenticated subscriber account.
type Rider struct {
	ID        types.ID  `json:"id"`
	Phone     string    `json:"phone"`
	Name      string    `json:"name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SMSEvent is published for the downstream SMS dispatcher.
type SMSEvent struct {
	Phone string `json:"phone"`
	Code  string `json:"code"`
	TTL   string `json:"ttl"`
}
