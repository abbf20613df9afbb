package utils // package utils provides helper functions for token creation and hashing

import (
	"crypto/rand"   // secure random number generation
	"crypto/sha256" // SHA-256 hashing for stored session tokens
	"encoding/hex"  // hex encoding of random bytes and digests
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// SessionToken is a signed candidate session token along with its
// expiry.  The Token field carries the serialized JWT handed to the
// client; the server stores only the SHA-256 hash of that string so
// the session can be revoked on logout.
type SessionToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// OpaqueToken is a random, unguessable token used for admin sessions.
// Admin tokens are deliberately not JWTs: they carry no claims and
// are only meaningful as a lookup key in the admin session store.
type OpaqueToken struct {
	Raw string    // raw token string returned to the client
	Exp time.Time // UTC expiration time
}

// claimKindCandidate tags candidate session JWTs.  A token without
// this claim value never validates as a candidate session.
const claimKindCandidate = "candidate"

// NewSessionToken builds and signs an HS256 JWT for a candidate.  The
// claims are: sub (internal user ID), uid (public short UID), kind
// (fixed "candidate"), exp and iat.  Expiry is absolute; there is no
// sliding renewal.
func NewSessionToken(secret string, userID uint64, uid string, ttl time.Duration) (SessionToken, error) {
	exp := time.Now().UTC().Add(ttl)
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(userID, 10),
		"uid":  uid,
		"kind": claimKindCandidate,
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return SessionToken{}, err
	}
	return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken verifies a candidate session JWT and returns the
// embedded user ID and public UID.  It rejects non-HMAC signing
// methods, expired tokens and tokens whose kind claim is not
// "candidate".
func ParseSessionToken(secret, raw string) (uint64, string, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return 0, "", errors.New("invalid session token")
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return 0, "", errors.New("invalid claims")
	}
	if kind, _ := claims["kind"].(string); kind != claimKindCandidate {
		return 0, "", errors.New("not a candidate token")
	}
	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || userID == 0 {
		return 0, "", errors.New("invalid subject")
	}
	uid, _ := claims["uid"].(string)
	return userID, uid, nil
}

// NewOpaqueToken returns a cryptographically secure random token for
// admin sessions.  48 random bytes hex-encode to 96 characters.
func NewOpaqueToken(ttl time.Duration) (OpaqueToken, error) {
	raw, err := randomHex(48)
	if err != nil {
		return OpaqueToken{}, err
	}
	return OpaqueToken{
		Raw: raw,
		Exp: time.Now().UTC().Add(ttl),
	}, nil
}

// HashTokenRaw returns the SHA-256 hash of a raw token as a hex
// string.  Stores persist only this hash so stolen database rows
// cannot be replayed as sessions.
func HashTokenRaw(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// randomHex returns a hex-encoded string generated from n bytes of
// cryptographically secure random data.
func randomHex(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
