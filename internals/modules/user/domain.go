package user

import (
	"statuspage/internals/security"
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID             uuid.UUID
	Email          string
	FirstName      string
	LastName       string
	PasswordHash   string
	OrganizationID uuid.UUID
	Role           security.Role
	Status         security.AccountStatus
	ApprovedBy     *uuid.UUID
	ApprovedAt     *time.Time
	CreatedAt      time.Time
}

type RegisterCmd struct {
	FirstName      string
	LastName       string
	Email          string
	Password       string
	OrganizationID uuid.UUID
}

// CreateUserCmd is what reaches the repository; the password is already hashed.
type CreateUserCmd struct {
	FirstName      string
	LastName       string
	Email          string
	PasswordHash   string
	OrganizationID uuid.UUID
	Role           security.Role
	Status         security.AccountStatus
}

type LogInCmd struct {
	Email    string
	Password string
}

type Token struct {
	AccessToken string
	TokenType   string
	ExpiresIn   int64
}
