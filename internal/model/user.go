package model

import "time"

// User represents a candidate record as stored in the `users` table.
// Candidates are pre-registered by an administrator; a user row must
// already exist before an OTP can be issued for its phone or email.
// The json tags are omitted because these structs are used internally
// by the repository layer; handlers define separate response types.
//
// Fields:
//  ID              – primary key identifier of the user.
//  UID             – short public-facing identifier used in URLs.
//  Phone           – unique phone number in E.164 form (required).
//  Email           – optional email address.
//  Name            – display name.
//  PhotoURL        – opaque reference to a profile photo in the blob store.
//  DocketCompleted – whether the completion gate has been passed; only
//                    ever transitions false→true and only via the
//                    completion engine.
//  IsAdmin         – whether the row also belongs to an administrator.
//  CreatedAt       – timestamp of creation.
type User struct {
	ID              uint64    // users.id
	UID             string    // users.uid
	Phone           string    // users.phone
	Email           string    // users.email
	Name            string    // users.name
	PhotoURL        string    // users.photo_url
	DocketCompleted bool      // users.docket_completed
	IsAdmin         bool      // users.is_admin
	CreatedAt       time.Time // users.created_at
}

// AdminAccount models a row in the `admin_accounts` table.  Admin
// credentials are kept separate from candidate users: an admin logs
// in with email and password and is never authenticated through the
// OTP flow.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique admin email address.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
type AdminAccount struct {
	ID           uint64    // admin_accounts.id
	Email        string    // admin_accounts.email
	PasswordHash string    // admin_accounts.password_hash
	CreatedAt    time.Time // admin_accounts.created_at
}
