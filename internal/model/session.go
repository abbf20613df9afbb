package model

import "time"

// UserSession is the server-side revocation record backing a candidate
// session token.  The token handed to the client is a signed JWT; only
// its SHA-256 hash is stored here so a stolen database row cannot be
// replayed as a session.  Logout deletes the row, which invalidates
// the token even before its signed expiry.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the session.
//  TokenHash – SHA-256 hex digest of the session token.
//  ExpiresAt – absolute expiry; no sliding renewal.
//  CreatedAt – timestamp of creation.
type UserSession struct {
	ID        uint64    // user_sessions.id
	UserID    uint64    // user_sessions.user_id
	TokenHash string    // user_sessions.token_hash
	ExpiresAt time.Time // user_sessions.expires_at
	CreatedAt time.Time // user_sessions.created_at
}

// AdminSession models a row in the `admin_sessions` table.  Admin
// tokens are opaque random strings, never JWTs, and are not
// interchangeable with candidate sessions.  Only the SHA-256 hash of
// the token is stored.
//
// Fields:
//  ID         – primary key identifier.
//  AdminEmail – email of the authenticated administrator.
//  TokenHash  – SHA-256 hex digest of the session token.
//  ExpiresAt  – absolute expiry; re-authentication required after.
//  CreatedAt  – timestamp of creation.
type AdminSession struct {
	ID         uint64    // admin_sessions.id
	AdminEmail string    // admin_sessions.admin_email
	TokenHash  string    // admin_sessions.token_hash
	ExpiresAt  time.Time // admin_sessions.expires_at
	CreatedAt  time.Time // admin_sessions.created_at
}
