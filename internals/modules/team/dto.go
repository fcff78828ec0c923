package team

import (
	"statuspage/internals/modules/user"
	"statuspage/internals/security"
	"time"
)

type ApprovalRequest struct {
	UserID string `json:"user_id" validate:"required,uuid"`
	Action string `json:"action" validate:"omitempty,oneof=approve reject"`
	Role   string `json:"role" validate:"omitempty,oneof=admin editor viewer"`
}

type RoleUpdateRequest struct {
	UserID  string `json:"user_id" validate:"required,uuid"`
	NewRole string `json:"new_role" validate:"required,oneof=admin editor viewer"`
}

type MemberResponse struct {
	ID         string                 `json:"id"`
	FirstName  string                 `json:"first_name"`
	LastName   string                 `json:"last_name"`
	Email      string                 `json:"email"`
	Role       security.Role          `json:"role"`
	Status     security.AccountStatus `json:"status"`
	CreatedAt  time.Time              `json:"created_at"`
	ApprovedAt *time.Time             `json:"approved_at,omitempty"`
	ApprovedBy string                 `json:"approved_by,omitempty"`
}

type MembersResponse struct {
	Total    int              `json:"total"`
	Pending  int              `json:"pending"`
	Approved int              `json:"approved"`
	Rejected int              `json:"rejected"`
	Members  []MemberResponse `json:"members"`
}

type OrganizationResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Domain string `json:"domain,omitempty"`
}

func toMember(u user.User) MemberResponse {
	m := MemberResponse{
		ID:         u.ID.String(),
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Email:      u.Email,
		Role:       u.Role,
		Status:     u.Status,
		CreatedAt:  u.CreatedAt,
		ApprovedAt: u.ApprovedAt,
	}
	if u.ApprovedBy != nil {
		m.ApprovedBy = u.ApprovedBy.String()
	}
	return m
}

func toMembersResponse(s Summary) MembersResponse {
	out := MembersResponse{
		Total:    s.Total,
		Pending:  s.Pending,
		Approved: s.Approved,
		Rejected: s.Rejected,
		Members:  make([]MemberResponse, 0, len(s.Members)),
	}
	for _, m := range s.Members {
		out.Members = append(out.Members, toMember(m))
	}
	return out
}
