package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/chefoverseas/docketify-server/internal/model"
	"github.com/chefoverseas/docketify-server/internal/service"
)

// AdminAccountRepo persists administrator credentials in the
// 'admin_accounts' table.
type AdminAccountRepo struct{ DB *sql.DB }

func NewAdminAccountRepo(db *sql.DB) *AdminAccountRepo { return &AdminAccountRepo{DB: db} }

func (r *AdminAccountRepo) GetByEmail(ctx context.Context, email string) (model.AdminAccount, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var a model.AdminAccount
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, email, password_hash, created_at FROM admin_accounts WHERE email=? LIMIT 1",
		email).Scan(&a.ID, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return model.AdminAccount{}, service.ErrNotFound
	}
	return a, err
}

// Upsert creates the account or replaces its password hash.  Used by
// the startup bootstrap so a fresh deployment has an administrator.
func (r *AdminAccountRepo) Upsert(ctx context.Context, email, passwordHash string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO admin_accounts (email, password_hash) VALUES (?,?)
		 ON DUPLICATE KEY UPDATE password_hash=VALUES(password_hash)`,
		email, passwordHash)
	return err
}
