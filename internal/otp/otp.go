// Package otp implements one-time-password issuance and verification keyed
// by an email or phone identifier, backed by an expiring key-value store.
package otp

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/example/productr/internal/mailer"
)

// Verification failures surfaced to callers.
var (
	ErrNotFound    = errors.New("otp not found or expired")
	ErrExpired     = errors.New("otp expired")
	ErrInvalidCode = errors.New("invalid otp")
)

// Service owns the send/verify state machine for one-time codes.
type Service struct {
	store  Store
	mail   mailer.Mailer
	ttl    time.Duration
	now    func() time.Time
	random func() (string, error)
}

// NewService constructs an OTP service over the given store and mail
// transport. ttl bounds how long a sent code stays valid.
func NewService(store Store, mail mailer.Mailer, ttl time.Duration) *Service {
	return &Service{
		store:  store,
		mail:   mail,
		ttl:    ttl,
		now:    time.Now,
		random: generateCode,
	}
}

// Send generates a fresh 6-digit code for the identifier, replacing any
// pending code, and dispatches it over the requested channel. Mail delivery
// failures are logged and swallowed so verification can still proceed in
// environments without a working relay.
func (s *Service) Send(ctx context.Context, identifier, channel string) error {
	code, err := s.random()
	if err != nil {
		return fmt.Errorf("generate otp: %w", err)
	}

	rec := Record{
		Code:      code,
		ExpiresAt: s.now().Add(s.ttl),
		Channel:   channel,
	}
	if err := s.store.Put(ctx, identifier, rec, s.ttl); err != nil {
		return fmt.Errorf("store otp: %w", err)
	}

	switch channel {
	case ChannelEmail:
		text := fmt.Sprintf("Your OTP is %s. Valid for %d minutes.", code, int(s.ttl.Minutes()))
		html := fmt.Sprintf("<p>Your OTP is <strong>%s</strong>. Valid for %d minutes.</p>", code, int(s.ttl.Minutes()))
		if err := s.mail.Send(identifier, "Your Productr OTP", text, html); err != nil {
			log.Printf("otp: email send to %s failed: %v", identifier, err)
		}
	case ChannelPhone:
		// No SMS integration; the code is only logged.
		log.Printf("otp: code for %s: %s", identifier, code)
	}

	return nil
}

// Verify checks the submitted code against the pending record for the
// identifier. A matching code consumes the record; an expired record is
// dropped; a mismatched code leaves the record in place.
func (s *Service) Verify(ctx context.Context, identifier, submitted string) error {
	rec, err := s.store.Get(ctx, identifier)
	if err != nil {
		if errors.Is(err, ErrNoRecord) {
			return ErrNotFound
		}
		return fmt.Errorf("load otp: %w", err)
	}

	if s.now().After(rec.ExpiresAt) {
		if err := s.store.Delete(ctx, identifier); err != nil {
			log.Printf("otp: delete expired record for %s failed: %v", identifier, err)
		}
		return ErrExpired
	}

	if rec.Code != submitted {
		return ErrInvalidCode
	}

	// Single use: a verified code is gone before the caller sees success.
	if err := s.store.Delete(ctx, identifier); err != nil {
		return fmt.Errorf("consume otp: %w", err)
	}
	return nil
}

// generateCode returns a uniformly random 6-digit decimal code. Leading
// zeros are preserved by the fixed-width formatting.
func generateCode() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
