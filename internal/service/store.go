package service

import (
	"context"
	"time"

	"github.com/chefoverseas/docketify-server/internal/model"
)

// Store interfaces consumed by the services.  The MySQL
// implementations live in internal/repository; in-memory
// implementations for tests live in store_memory.go.  All durable
// state sits behind these interfaces — the process itself is
// stateless.

// UserStore owns candidate records.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id uint64) (model.User, error)
	GetByUID(ctx context.Context, uid string) (model.User, error)
	GetByPhone(ctx context.Context, phone string) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateProfile(ctx context.Context, id uint64, name, email, photoURL string) error
	// MarkDocketCompleted flips users.docket_completed to true.  The
	// flip is one-way; calling it on an already-completed user is a
	// no-op.  Only the completion engine may call this.
	MarkDocketCompleted(ctx context.Context, id uint64) error
}

// OtpStore owns one-time-code rows.
type OtpStore interface {
	Create(ctx context.Context, s *model.OtpSession) error
	// LatestMatch returns the newest unverified, unexpired row for the
	// identifier+code pair, or ErrNotFound.
	LatestMatch(ctx context.Context, identifier, code string, now time.Time) (model.OtpSession, error)
	// MarkVerified atomically flips the verified flag provided the row
	// is still unverified and unexpired.  It reports whether this call
	// performed the flip; a concurrent duplicate sees false.
	MarkVerified(ctx context.Context, id uint64, now time.Time) (bool, error)
}

// UserSessionStore owns candidate session revocation records.
type UserSessionStore interface {
	Create(ctx context.Context, s *model.UserSession) error
	GetByTokenHash(ctx context.Context, hash string) (model.UserSession, error)
	DeleteByTokenHash(ctx context.Context, hash string) error
}

// AdminAccountStore owns administrator credentials.
type AdminAccountStore interface {
	GetByEmail(ctx context.Context, email string) (model.AdminAccount, error)
	// Upsert creates the account or replaces its password hash; used by
	// the startup bootstrap.
	Upsert(ctx context.Context, email, passwordHash string) error
}

// AdminSessionStore owns admin session records.
type AdminSessionStore interface {
	Create(ctx context.Context, s *model.AdminSession) error
	GetByTokenHash(ctx context.Context, hash string) (model.AdminSession, error)
	DeleteByTokenHash(ctx context.Context, hash string) error
}

// DocketStore owns per-candidate document sets.
type DocketStore interface {
	GetByUserID(ctx context.Context, userID uint64) (model.Docket, error)
	Upsert(ctx context.Context, d *model.Docket) error
}

// ContractStore owns per-candidate contract status rows.
type ContractStore interface {
	GetByUserID(ctx context.Context, userID uint64) (model.Contract, error)
	Upsert(ctx context.Context, c *model.Contract) error
}

// Notifier abstracts the SMS/email transport that delivers one-time
// codes.  The AMQP publisher in internal/queue is the production
// implementation.
type Notifier interface {
	Send(ctx context.Context, identifier, code string) error
}
