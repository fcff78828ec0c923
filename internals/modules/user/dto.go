package user

import (
	"statuspage/internals/security"
	"time"
)

type RegisterRequest struct {
	FirstName      string `json:"first_name" validate:"required,max=100"`
	LastName       string `json:"last_name" validate:"required,max=100"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8,max=128"`
	OrganizationID string `json:"organization_id" validate:"required,uuid"`
}

type LogInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type ProfileResponse struct {
	ID             string                 `json:"id"`
	Email          string                 `json:"email"`
	FirstName      string                 `json:"first_name"`
	LastName       string                 `json:"last_name"`
	OrganizationID string                 `json:"organization_id"`
	Role           security.Role          `json:"role"`
	Status         security.AccountStatus `json:"status"`
	ApprovedAt     *time.Time             `json:"approved_at,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
}

func toProfile(u User) ProfileResponse {
	return ProfileResponse{
		ID:             u.ID.String(),
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		OrganizationID: u.OrganizationID.String(),
		Role:           u.Role,
		Status:         u.Status,
		ApprovedAt:     u.ApprovedAt,
		CreatedAt:      u.CreatedAt,
	}
}

func toTokenResponse(t Token) TokenResponse {
	return TokenResponse{
		AccessToken: t.AccessToken,
		TokenType:   t.TokenType,
		ExpiresIn:   t.ExpiresIn,
	}
}
