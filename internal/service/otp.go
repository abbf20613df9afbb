package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/chefoverseas/docketify-server/internal/model"
	"github.com/chefoverseas/docketify-server/internal/utils"
)

// OTPService issues and verifies one-time codes.  Candidates cannot
// self-register: issuance requires an existing user row for the
// identifier, so the service depends on the user store as well as the
// OTP store and the notifier.
type OTPService struct {
	Users    UserStore
	Otps     OtpStore
	Notifier Notifier

	CodeLength int
	TTL        time.Duration

	now func() time.Time
}

// NewOTPService wires an OTPService with the given code length and
// expiry window.
func NewOTPService(users UserStore, otps OtpStore, n Notifier, codeLength int, ttl time.Duration) *OTPService {
	return &OTPService{
		Users:      users,
		Otps:       otps,
		Notifier:   n,
		CodeLength: codeLength,
		TTL:        ttl,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// NormalizeIdentifier trims an identifier and lower-cases it when it
// looks like an email.  Phone numbers keep their exact form apart
// from surrounding whitespace.
func NormalizeIdentifier(identifier string) string {
	s := strings.TrimSpace(identifier)
	if strings.Contains(s, "@") {
		s = strings.ToLower(s)
	}
	return s
}

// resolveUser maps an identifier to the owning candidate, trying the
// phone column first and the email column second.  Both the phone-OTP
// and the email-OTP flow land on the same user row and the same
// session shape.
func (s *OTPService) resolveUser(ctx context.Context, identifier string) (model.User, error) {
	if identifier == "" {
		return model.User{}, ErrNotFound
	}
	u, err := s.Users.GetByPhone(ctx, identifier)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return model.User{}, err
	}
	return s.Users.GetByEmail(ctx, identifier)
}

// Issue generates a fresh one-time code for a pre-registered
// identifier, persists it and hands it to the notifier.  Unknown and
// malformed identifiers both fail with ErrNotRegistered.  Repeated
// calls each create a new code; earlier codes stay valid until their
// own expiry.  A notifier failure is reported as ErrDeliveryFailed
// but leaves the row persisted so the caller can resend.
func (s *OTPService) Issue(ctx context.Context, identifier string) error {
	identifier = NormalizeIdentifier(identifier)
	if _, err := s.resolveUser(ctx, identifier); err != nil {
		if errors.Is(err, ErrNotFound) {
			return ErrNotRegistered
		}
		return err
	}

	code, err := utils.RandomNumericCode(s.CodeLength)
	if err != nil {
		return err
	}
	now := s.now()
	row := model.OtpSession{
		Identifier: identifier,
		Code:       code,
		ExpiresAt:  now.Add(s.TTL),
		CreatedAt:  now,
	}
	if err := s.Otps.Create(ctx, &row); err != nil {
		return err
	}
	if err := s.Notifier.Send(ctx, identifier, code); err != nil {
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	return nil
}

// Verify accepts a code at most once.  It looks up the newest
// unverified, unexpired row matching identifier and code, then flips
// its verified flag under an atomic conditional update so two
// concurrent submissions of the same code can never both succeed.
// Wrong, expired and already-used codes all collapse to
// ErrInvalidOrExpired.  The owning user must already exist; Verify
// never creates one.
func (s *OTPService) Verify(ctx context.Context, identifier, code string) (model.User, error) {
	identifier = NormalizeIdentifier(identifier)
	code = strings.TrimSpace(code)
	if identifier == "" || code == "" {
		return model.User{}, ErrInvalidOrExpired
	}

	now := s.now()
	row, err := s.Otps.LatestMatch(ctx, identifier, code, now)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.User{}, ErrInvalidOrExpired
		}
		return model.User{}, err
	}
	flipped, err := s.Otps.MarkVerified(ctx, row.ID, now)
	if err != nil {
		return model.User{}, err
	}
	if !flipped {
		// A concurrent duplicate won the race; this attempt fails the
		// same way a reused code does.
		return model.User{}, ErrInvalidOrExpired
	}

	u, err := s.resolveUser(ctx, identifier)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return model.User{}, ErrInvalidOrExpired
		}
		return model.User{}, err
	}
	return u, nil
}
