package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ecowatt/ecowatt-go/internal/model"
)

var ErrInvalidSession = errors.New("invalid or expired session")

// SessionClaims are the JWT claims carried by the EcoWatt session cookie.
type SessionClaims struct {
	jwt.RegisteredClaims
	AccountID int64  `json:"account_id"`
	Email     string `json:"email"`
	Name      string `json:"name"`
}

// NewSessionToken creates a signed session token for the given account.
func NewSessionToken(account *model.Account, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "ecowatt",
			Audience:  jwt.ClaimStrings{"ecowatt-web"},
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		AccountID: account.ID,
		Email:     account.Email,
		Name:      model.DisplayName(account.Email),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSessionToken validates a session token and returns the session it
// identifies.
func ParseSessionToken(tokenString, secret string) (model.Session, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSession
		}
		return []byte(secret), nil
	}, jwt.WithIssuer("ecowatt"), jwt.WithAudience("ecowatt-web"))
	if err != nil {
		return model.Session{}, ErrInvalidSession
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return model.Session{}, ErrInvalidSession
	}

	return model.Session{
		AccountID: claims.AccountID,
		Email:     claims.Email,
		Name:      claims.Name,
	}, nil
}
