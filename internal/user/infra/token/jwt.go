package token

import (
	"errors"
	"time"

	"github.com/dwikikusuma/shop-backoffice/internal/auth"
	"github.com/golang-jwt/jwt/v5"
)

const issuer = "shop-backoffice"

type claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// JWT issues and verifies HS256 access tokens.
type JWT struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewJWT(secret string, ttl time.Duration) *JWT {
	return &JWT{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (j *JWT) Issue(p auth.Principal) (string, time.Time, error) {
	now := j.now()
	exp := now.Add(j.ttl)

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: p.Email,
		Role:  string(p.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   p.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})

	signed, err := t.SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func (j *JWT) Verify(raw string) (auth.Principal, error) {
	var c claims
	_, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return auth.Principal{}, err
	}
	if c.Subject == "" {
		return auth.Principal{}, errors.New("token has no subject")
	}

	role, err := auth.ParseRole(c.Role)
	if err != nil {
		return auth.Principal{}, err
	}

	return auth.Principal{UserID: c.Subject, Email: c.Email, Role: role}, nil
}
