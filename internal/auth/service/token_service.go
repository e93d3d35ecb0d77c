package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/taskhive/task-service/internal/auth/service TokenGenerator

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperror "github.com/taskhive/task-service/internal/errors"
)

type TokenGenerator interface {
	Generate(userID, email string) (string, time.Time, error)
	Verify(tokenString string) (*Claims, error)
	Expiry() time.Duration
}

// TokenService mints and verifies HS256-signed access tokens. Tokens are
// stateless: validity is established by the signature and the embedded
// expiry, not by a server-side lookup.
type TokenService struct {
	secret []byte
	expiry time.Duration
}

type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

func NewTokenService(secret string, expiryMinutes int) *TokenService {
	return &TokenService{
		secret: []byte(secret),
		expiry: time.Duration(expiryMinutes) * time.Minute,
	}
}

func (ts *TokenService) Generate(userID, email string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(ts.expiry)

	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(ts.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

// Verify checks the signature and structure of the token before trusting any
// claim. Expiry is checked separately so an expired-but-authentic token is
// reported as ErrTokenExpired rather than ErrInvalidToken.
func (ts *TokenService) Verify(tokenString string) (*Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)

	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return ts.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperror.ErrInvalidToken
	}

	if claims.Subject == "" || claims.ExpiresAt == nil {
		return nil, apperror.ErrInvalidToken
	}
	if !time.Now().Before(claims.ExpiresAt.Time) {
		return nil, apperror.ErrTokenExpired
	}

	return claims, nil
}

func (ts *TokenService) Expiry() time.Duration {
	return ts.expiry
}
