package security

import (
	"errors"
	"statuspage/config"
	"statuspage/pkg/apperror"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(authCfg *config.AuthConfig) (*TokenService, error) {
	if authCfg == nil || authCfg.Secret == "" {
		return nil, errors.New("auth secret is required")
	}
	ttl := authCfg.TokenTTL
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &TokenService{
		secret: []byte(authCfg.Secret),
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

func (ts *TokenService) TTL() time.Duration { return ts.ttl }

func (ts *TokenService) GenerateAccessToken(payload RequestClaims) (string, error) {
	const op string = "service.token.generate_access_token"

	now := ts.now()
	payload.ExpiresAt = jwt.NewNumericDate(now.Add(ts.ttl))
	payload.IssuedAt = jwt.NewNumericDate(now)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	signed, err := token.SignedString(ts.secret)
	if err != nil {
		return "", apperror.New(apperror.Internal, op, err)
	}

	return signed, nil
}

func (ts *TokenService) ValidateAccessToken(accessToken string) (*RequestClaims, error) {
	const op string = "service.token.validate_access_token"

	claims := &RequestClaims{}

	token, err := jwt.ParseWithClaims(
		accessToken,
		claims,
		func(t *jwt.Token) (any, error) {
			return ts.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithTimeFunc(ts.now),
	)

	if err != nil || !token.Valid {
		msg := "invalid token"
		if errors.Is(err, jwt.ErrTokenExpired) {
			msg = "token expired"
		}
		return nil, &apperror.Error{
			Kind:    apperror.Unauthorised,
			Op:      op,
			Message: msg,
			Err:     err,
		}
	}

	return claims, nil
}
