package repository

import (
	"context"
	"database/sql"

	"github.com/chefoverseas/docketify-server/internal/model"
	"github.com/chefoverseas/docketify-server/internal/service"
)

// UserSessionRepo persists candidate session records (token hashes
// only) in the 'user_sessions' table.
type UserSessionRepo struct{ DB *sql.DB }

func NewUserSessionRepo(db *sql.DB) *UserSessionRepo { return &UserSessionRepo{DB: db} }

func (r *UserSessionRepo) Create(ctx context.Context, s *model.UserSession) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO user_sessions (user_id, token_hash, expires_at) VALUES (?,?,?)",
		s.UserID, s.TokenHash, s.ExpiresAt)
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

func (r *UserSessionRepo) GetByTokenHash(ctx context.Context, hash string) (model.UserSession, error) {
	var s model.UserSession
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, user_id, token_hash, expires_at, created_at FROM user_sessions WHERE token_hash=? LIMIT 1",
		hash).Scan(&s.ID, &s.UserID, &s.TokenHash, &s.ExpiresAt, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return model.UserSession{}, service.ErrNotFound
	}
	return s, err
}

func (r *UserSessionRepo) DeleteByTokenHash(ctx context.Context, hash string) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM user_sessions WHERE token_hash=?", hash)
	return err
}

// AdminSessionRepo persists admin session records in the
// 'admin_sessions' table.  Admin sessions are destroyed on logout and
// never renewed; expiry is enforced at validation time.
type AdminSessionRepo struct{ DB *sql.DB }

func NewAdminSessionRepo(db *sql.DB) *AdminSessionRepo { return &AdminSessionRepo{DB: db} }

func (r *AdminSessionRepo) Create(ctx context.Context, s *model.AdminSession) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO admin_sessions (admin_email, token_hash, expires_at) VALUES (?,?,?)",
		s.AdminEmail, s.TokenHash, s.ExpiresAt)
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

func (r *AdminSessionRepo) GetByTokenHash(ctx context.Context, hash string) (model.AdminSession, error) {
	var s model.AdminSession
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, admin_email, token_hash, expires_at, created_at FROM admin_sessions WHERE token_hash=? LIMIT 1",
		hash).Scan(&s.ID, &s.AdminEmail, &s.TokenHash, &s.ExpiresAt, &s.CreatedAt)
	if err == sql.ErrNoRows {
		return model.AdminSession{}, service.ErrNotFound
	}
	return s, err
}

func (r *AdminSessionRepo) DeleteByTokenHash(ctx context.Context, hash string) error {
	_, err := r.DB.ExecContext(ctx,
		"DELETE FROM admin_sessions WHERE token_hash=?", hash)
	return err
}
