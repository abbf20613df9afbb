package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/chefoverseas/docketify-server/internal/model"
	"github.com/chefoverseas/docketify-server/internal/service"
)

// OtpRepo persists one-time-code rows in the 'otp_sessions' table.
type OtpRepo struct{ DB *sql.DB }

func NewOtpRepo(db *sql.DB) *OtpRepo { return &OtpRepo{DB: db} }

// Create inserts a freshly issued code.  Earlier codes for the same
// identifier are left untouched; they compete with the new one until
// their own expiry.
func (r *OtpRepo) Create(ctx context.Context, s *model.OtpSession) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO otp_sessions (identifier, code, expires_at) VALUES (?,?,?)",
		s.Identifier, s.Code, s.ExpiresAt)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// LatestMatch returns the newest unverified, unexpired row for the
// identifier+code pair.
func (r *OtpRepo) LatestMatch(ctx context.Context, identifier, code string, now time.Time) (model.OtpSession, error) {
	var s model.OtpSession
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, identifier, code, expires_at, verified, created_at
		   FROM otp_sessions
		  WHERE identifier=? AND code=? AND verified=0 AND expires_at>?
		  ORDER BY id DESC LIMIT 1`,
		identifier, code, now).Scan(&s.ID, &s.Identifier, &s.Code, &s.ExpiresAt, &s.Verified, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return model.OtpSession{}, service.ErrNotFound
	}
	return s, err
}

// MarkVerified flips the verified flag iff the row is still
// unverified and unexpired.  The conditional UPDATE is the atomic
// check-and-set that keeps a code single-use: of two concurrent
// verifies only one sees RowsAffected == 1.
func (r *OtpRepo) MarkVerified(ctx context.Context, id uint64, now time.Time) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE otp_sessions SET verified=1 WHERE id=? AND verified=0 AND expires_at>?",
		id, now)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// DeleteExpired removes rows whose deadline passed before the cutoff.
// Expired rows are already invalid at read time; this exists only for
// storage hygiene.
func (r *OtpRepo) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM otp_sessions WHERE expires_at<=?", cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
