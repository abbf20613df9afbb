package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/chefoverseas/docketify-server/internal/model"
	"github.com/chefoverseas/docketify-server/internal/utils"
)

// SessionService turns a verified OTP or an admin credential check
// into a session token, and resolves presented tokens back into
// principals.  Candidate and admin sessions live in separate stores
// under separate token formats and are never interchangeable.
type SessionService struct {
	Users         UserStore
	UserSessions  UserSessionStore
	AdminAccounts AdminAccountStore
	AdminSessions AdminSessionStore

	JWTSecret string
	UserTTL   time.Duration
	AdminTTL  time.Duration

	now func() time.Time
}

func NewSessionService(users UserStore, us UserSessionStore, aa AdminAccountStore, as AdminSessionStore,
	jwtSecret string, userTTL, adminTTL time.Duration) *SessionService {
	return &SessionService{
		Users:         users,
		UserSessions:  us,
		AdminAccounts: aa,
		AdminSessions: as,
		JWTSecret:     jwtSecret,
		UserTTL:       userTTL,
		AdminTTL:      adminTTL,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

// Grant mints a candidate session for a user that has just passed OTP
// verification.  The token is a signed JWT; its SHA-256 hash is also
// stored server-side so logout can revoke it before the signed expiry.
func (s *SessionService) Grant(ctx context.Context, u model.User) (utils.SessionToken, error) {
	tok, err := utils.NewSessionToken(s.JWTSecret, u.ID, u.UID, s.UserTTL)
	if err != nil {
		return utils.SessionToken{}, err
	}
	row := model.UserSession{
		UserID:    u.ID,
		TokenHash: utils.HashTokenRaw(tok.Token),
		ExpiresAt: tok.Exp,
		CreatedAt: s.now(),
	}
	if err := s.UserSessions.Create(ctx, &row); err != nil {
		return utils.SessionToken{}, err
	}
	return tok, nil
}

// AdminLogin verifies admin credentials with a bcrypt comparison and
// mints an opaque admin session token.  Unknown emails and wrong
// passwords fail identically with ErrInvalidCredentials.
func (s *SessionService) AdminLogin(ctx context.Context, email, password string) (utils.OpaqueToken, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return utils.OpaqueToken{}, ErrInvalidCredentials
	}
	acct, err := s.AdminAccounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return utils.OpaqueToken{}, ErrInvalidCredentials
		}
		return utils.OpaqueToken{}, err
	}
	if !utils.VerifyPassword(acct.PasswordHash, password) {
		return utils.OpaqueToken{}, ErrInvalidCredentials
	}
	tok, err := utils.NewOpaqueToken(s.AdminTTL)
	if err != nil {
		return utils.OpaqueToken{}, err
	}
	row := model.AdminSession{
		AdminEmail: acct.Email,
		TokenHash:  utils.HashTokenRaw(tok.Raw),
		ExpiresAt:  tok.Exp,
		CreatedAt:  s.now(),
	}
	if err := s.AdminSessions.Create(ctx, &row); err != nil {
		return utils.OpaqueToken{}, err
	}
	return tok, nil
}

// Validate resolves a presented token into a Principal of the expected
// kind.  An absent, unknown, malformed or expired token fails with
// ErrUnauthenticated.  A token that is valid — but for the other
// principal kind — fails with ErrWrongPrincipalKind; type confusion
// between the two session namespaces must never grant access.
func (s *SessionService) Validate(ctx context.Context, token string, kind PrincipalKind) (Principal, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Principal{}, ErrUnauthenticated
	}
	switch kind {
	case KindCandidate:
		p, err := s.validateCandidate(ctx, token)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, ErrUnauthenticated) {
			return Principal{}, err
		}
		if _, aerr := s.validateAdmin(ctx, token); aerr == nil {
			return Principal{}, ErrWrongPrincipalKind
		}
		return Principal{}, ErrUnauthenticated
	case KindAdmin:
		p, err := s.validateAdmin(ctx, token)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, ErrUnauthenticated) {
			return Principal{}, err
		}
		if _, cerr := s.validateCandidate(ctx, token); cerr == nil {
			return Principal{}, ErrWrongPrincipalKind
		}
		return Principal{}, ErrUnauthenticated
	}
	return Principal{}, ErrUnauthenticated
}

func (s *SessionService) validateCandidate(ctx context.Context, token string) (Principal, error) {
	userID, uid, err := utils.ParseSessionToken(s.JWTSecret, token)
	if err != nil {
		return Principal{}, ErrUnauthenticated
	}
	row, err := s.UserSessions.GetByTokenHash(ctx, utils.HashTokenRaw(token))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// Signature checks out but the session was revoked.
			return Principal{}, ErrUnauthenticated
		}
		return Principal{}, err
	}
	if !s.now().Before(row.ExpiresAt) || row.UserID != userID {
		return Principal{}, ErrUnauthenticated
	}
	return Principal{Kind: KindCandidate, UserID: userID, UserUID: uid}, nil
}

func (s *SessionService) validateAdmin(ctx context.Context, token string) (Principal, error) {
	row, err := s.AdminSessions.GetByTokenHash(ctx, utils.HashTokenRaw(token))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Principal{}, ErrUnauthenticated
		}
		return Principal{}, err
	}
	if !s.now().Before(row.ExpiresAt) {
		return Principal{}, ErrUnauthenticated
	}
	return Principal{Kind: KindAdmin, AdminEmail: row.AdminEmail}, nil
}

// Revoke deletes the server-side session record for a token.  Unknown
// tokens are ignored so logout is idempotent.
func (s *SessionService) Revoke(ctx context.Context, token string, kind PrincipalKind) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	hash := utils.HashTokenRaw(token)
	var err error
	switch kind {
	case KindCandidate:
		err = s.UserSessions.DeleteByTokenHash(ctx, hash)
	case KindAdmin:
		err = s.AdminSessions.DeleteByTokenHash(ctx, hash)
	}
	if err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}
