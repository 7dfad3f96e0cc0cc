package utils // package utils provides helpers for token issuing and password hashing

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPayload is the transient identity embedded in an access token.
// It is created at login and re-validated against the live user row on
// every authenticated request; there is no server-side revocation.
type TokenPayload struct {
	UserID uint64
	Email  string
	Role   string
	Name   string
}

// AccessToken pairs a signed JWT with its expiry time.
type AccessToken struct {
	Token string
	Exp   time.Time
}

// ErrInvalidToken is returned when a token fails signature, expiry or
// payload-shape checks.
var ErrInvalidToken = errors.New("invalid token")

// NewAccessToken builds and signs an HS256 JWT for a user. Claims follow
// the usual shape: sub (user id), email, role, name, iat and exp.
func NewAccessToken(secret string, p TokenPayload, ttlMin int) (AccessToken, error) {
	now := time.Now().UTC()
	exp := now.Add(time.Duration(ttlMin) * time.Minute)
	claims := jwt.MapClaims{
		"sub":   p.UserID,
		"email": p.Email,
		"role":  p.Role,
		"name":  p.Name,
		"iat":   now.Unix(),
		"exp":   exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AccessToken{}, err
	}
	return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseAccessToken verifies the signature and expiry of a raw token and
// extracts its payload. Tokens signed with a different method, expired
// tokens, and tokens missing any of sub/email/role are rejected with
// ErrInvalidToken.
func ParseAccessToken(secret, raw string) (TokenPayload, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return TokenPayload{}, ErrInvalidToken
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return TokenPayload{}, ErrInvalidToken
	}

	var p TokenPayload
	switch sub := claims["sub"].(type) {
	case float64:
		p.UserID = uint64(sub)
	default:
		return TokenPayload{}, ErrInvalidToken
	}
	if p.Email, ok = claims["email"].(string); !ok || p.Email == "" {
		return TokenPayload{}, ErrInvalidToken
	}
	if p.Role, ok = claims["role"].(string); !ok || p.Role == "" {
		return TokenPayload{}, ErrInvalidToken
	}
	p.Name, _ = claims["name"].(string) // optional
	return p, nil
}
