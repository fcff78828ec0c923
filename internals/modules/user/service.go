package user

import (
	"context"
	"statuspage/internals/security"
	"statuspage/pkg/apperror"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Repository interface {
	Create(ctx context.Context, cmd CreateUserCmd) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	OrganizationExists(ctx context.Context, orgID uuid.UUID) (bool, error)
}

type TokenIssuer interface {
	GenerateAccessToken(payload security.RequestClaims) (string, error)
	TTL() time.Duration
}

type Service struct {
	repo   Repository
	tokens TokenIssuer
	logger *zerolog.Logger
}

func NewService(repo Repository, tokens TokenIssuer, logger *zerolog.Logger) *Service {
	return &Service{
		repo:   repo,
		tokens: tokens,
		logger: logger,
	}
}

// Register creates a viewer account that waits for an org admin's approval.
func (s *Service) Register(ctx context.Context, cmd RegisterCmd) (User, error) {
	const op string = "service.user.register"

	exists, err := s.repo.OrganizationExists(ctx, cmd.OrganizationID)
	if err != nil {
		return User{}, err
	}
	if !exists {
		return User{}, apperror.Newf(apperror.InvalidInput, op, "organization not found")
	}

	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, apperror.Newf(apperror.AlreadyExists, op, "email already registered")
	} else if !apperror.IsKind(err, apperror.NotFound) {
		return User{}, err
	}

	hash, err := security.HashPassword(cmd.Password)
	if err != nil {
		return User{}, apperror.New(apperror.Internal, op, err)
	}

	// a concurrent registration still trips the unique index and maps to already_exist
	return s.repo.Create(ctx, CreateUserCmd{
		FirstName:      cmd.FirstName,
		LastName:       cmd.LastName,
		Email:          email,
		PasswordHash:   hash,
		OrganizationID: cmd.OrganizationID,
		Role:           security.RoleViewer,
		Status:         security.StatusPending,
	})
}

func (s *Service) LogIn(ctx context.Context, cmd LogInCmd) (Token, error) {
	const op string = "service.user.login"

	invalid := apperror.Newf(apperror.Unauthorised, op, "incorrect email or password")

	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(cmd.Email)))
	if err != nil {
		if apperror.IsKind(err, apperror.NotFound) {
			return Token{}, invalid
		}
		return Token{}, err
	}

	ok, err := security.ComparePassword(cmd.Password, u.PasswordHash)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", u.ID.String()).Msg("stored password hash is malformed")
		return Token{}, invalid
	}
	if !ok {
		return Token{}, invalid
	}

	switch u.Status {
	case security.StatusApproved:
	case security.StatusPending:
		return Token{}, apperror.Newf(apperror.Forbidden, op, "account pending admin approval")
	default:
		return Token{}, apperror.Newf(apperror.Forbidden, op, "access revoked")
	}

	access, err := s.tokens.GenerateAccessToken(security.RequestClaims{
		UserID: u.ID.String(),
		Email:  u.Email,
		OrgID:  u.OrganizationID.String(),
		Role:   string(u.Role),
	})
	if err != nil {
		return Token{}, err
	}

	return Token{
		AccessToken: access,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
	}, nil
}

func (s *Service) GetProfile(ctx context.Context, userID uuid.UUID) (User, error) {
	return s.repo.GetByID(ctx, userID)
}
