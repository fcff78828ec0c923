package team

import (
	"statuspage/internals/modules/user"
	"statuspage/internals/security"
	"time"

	"github.com/google/uuid"
)

type Action string

const (
	ActionApprove Action = "approve"
	ActionReject  Action = "reject"
)

type Summary struct {
	Total    int
	Pending  int
	Approved int
	Rejected int
	Members  []user.User
}

// AccessChange is a single write to a member's status and role.
type AccessChange struct {
	UserID         uuid.UUID
	OrganizationID uuid.UUID
	Status         security.AccountStatus
	Role           security.Role
	ApprovedBy     uuid.UUID
	ApprovedAt     time.Time
}

type OrganizationInfo struct {
	ID     uuid.UUID
	Name   string
	Domain string
	Status string
}
