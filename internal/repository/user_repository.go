package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/chefoverseas/docketify-server/internal/model"
	"github.com/chefoverseas/docketify-server/internal/service"
)

// UserRepo persists candidate records in the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,uid,phone,email,name,photo_url,docket_completed,is_admin,created_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.UID, &u.Phone, &u.Email, &u.Name, &u.PhotoURL,
		&u.DocketCompleted, &u.IsAdmin, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return model.User{}, service.ErrNotFound
	}
	return u, err
}

// Create inserts a pre-registered candidate and fills in its ID.
// Phone numbers are globally unique; a duplicate maps to
// service.ErrPhoneExists.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (uid, phone, email, name, photo_url, is_admin) VALUES (?,?,?,?,?,?)",
		u.UID, u.Phone, u.Email, u.Name, u.PhotoURL, u.IsAdmin)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return service.ErrPhoneExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
}

func (r *UserRepo) GetByUID(ctx context.Context, uid string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE uid=? LIMIT 1", uid))
}

func (r *UserRepo) GetByPhone(ctx context.Context, phone string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE phone=? LIMIT 1", phone))
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? AND email<>'' LIMIT 1", email))
}

// List returns all candidates ordered by creation.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+userColumns+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.UID, &u.Phone, &u.Email, &u.Name, &u.PhotoURL,
			&u.DocketCompleted, &u.IsAdmin, &u.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// UpdateProfile mutates the self-service fields.  Phone is immutable
// after pre-registration.
func (r *UserRepo) UpdateProfile(ctx context.Context, id uint64, name, email, photoURL string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET name=?, email=?, photo_url=? WHERE id=?",
		name, strings.ToLower(strings.TrimSpace(email)), photoURL, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// MySQL reports zero affected rows for a no-change update too,
		// so confirm the row exists before calling it missing.
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// MarkDocketCompleted flips docket_completed to true.  The update is
// a one-way transition and repeating it is harmless.
func (r *UserRepo) MarkDocketCompleted(ctx context.Context, id uint64) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET docket_completed=1 WHERE id=?", id)
	return err
}
