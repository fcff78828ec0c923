package security

import "github.com/golang-jwt/jwt/v5"

type RequestClaims struct {
	UserID string `json:"sub"`
	Email  string `json:"email"`
	OrgID  string `json:"org"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
