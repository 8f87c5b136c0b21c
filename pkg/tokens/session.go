package tokens

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

type SessionClaims struct {
	Role string `json:"role"`
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

func (c *SessionClaims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// Issuer signs session tokens for one portal. Each portal owns its own secret
// and audience so a cookie minted by one is rejected by the other.
type Issuer struct {
	Secret   []byte
	Audience string
	TTL      time.Duration
}

func (i Issuer) Issue(role string, userID uint, name string, now time.Time) (string, time.Time, error) {
	exp := now.Add(i.TTL)
	claims := SessionClaims{
		Role: role,
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Audience:  jwt.ClaimStrings{i.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.Secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, exp, nil
}

func (i Issuer) Parse(tokenStr string) (*SessionClaims, error) {
	var claims SessionClaims
	tkn, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return i.Secret, nil
	}, jwt.WithAudience(i.Audience))
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return &claims, nil
}
