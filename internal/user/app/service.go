package app

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/dwikikusuma/shop-backoffice/internal/auth"
	"github.com/dwikikusuma/shop-backoffice/internal/user/domain"
	"github.com/dwikikusuma/shop-backoffice/pkg/apperr"
)

var (
	ErrUserNotFound       = apperr.New(apperr.KindNotFound, "USER_NOT_FOUND", "user not found")
	ErrEmailInUse         = apperr.New(apperr.KindBusinessRule, "EMAIL_IN_USE", "email already in use")
	ErrUserInUse          = apperr.New(apperr.KindConflict, "USER_IN_USE", "user still owns products or orders")
	ErrInvalidCredentials = apperr.New(apperr.KindUnauthenticated, "INVALID_CREDENTIALS", "invalid email or password")
	ErrInvalidToken       = apperr.New(apperr.KindUnauthenticated, "INVALID_TOKEN", "invalid or expired token")
	ErrInactiveUser       = apperr.New(apperr.KindUnauthenticated, "INACTIVE_USER", "user is inactive")
)

const minPasswordLen = 6

type Service struct {
	repo   UserRepo
	hasher PasswordHasher
	tokens TokenIssuer
}

func NewService(repo UserRepo, hasher PasswordHasher, tokens TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
	}
}

// Input carries the editable fields of an account. An empty Password on
// update keeps the current hash.
type Input struct {
	Name     string
	Email    string
	Password string
}

func (in Input) normalize() Input {
	return Input{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Password: in.Password,
	}
}

func validateProfile(in Input) error {
	if in.Name == "" {
		return apperr.Invalidf("name is required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil || in.Email == "" {
		return apperr.Invalidf("invalid email %q", in.Email)
	}
	return nil
}

func validatePassword(pw string) error {
	if len(pw) < minPasswordLen {
		return apperr.Invalidf("password must have at least %d characters", minPasswordLen)
	}
	return nil
}

func (s *Service) RegisterCustomer(ctx context.Context, in Input) (domain.User, error) {
	return s.create(ctx, in, auth.RoleCustomer)
}

func (s *Service) CreateCollaborator(ctx context.Context, in Input) (domain.User, error) {
	return s.create(ctx, in, auth.RoleCollaborator)
}

func (s *Service) create(ctx context.Context, in Input, role auth.Role) (domain.User, error) {
	in = in.normalize()
	if err := validateProfile(in); err != nil {
		return domain.User{}, err
	}
	if err := validatePassword(in.Password); err != nil {
		return domain.User{}, err
	}

	if err := s.ensureEmailFree(ctx, in.Email); err != nil {
		return domain.User{}, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return domain.User{}, err
	}

	return s.repo.Create(ctx, domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	})
}

func (s *Service) ensureEmailFree(ctx context.Context, email string) error {
	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return ErrEmailInUse
	}
	if errors.Is(err, ErrUserNotFound) {
		return nil
	}
	return err
}

func (s *Service) UpdateUser(ctx context.Context, id string, in Input) (domain.User, error) {
	in = in.normalize()
	if err := validateProfile(in); err != nil {
		return domain.User{}, err
	}

	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.User{}, err
	}

	if u.Email != in.Email {
		if err := s.ensureEmailFree(ctx, in.Email); err != nil {
			return domain.User{}, err
		}
	}

	u.Name = in.Name
	u.Email = in.Email
	if in.Password != "" {
		if err := validatePassword(in.Password); err != nil {
			return domain.User{}, err
		}
		hash, err := s.hasher.Hash(in.Password)
		if err != nil {
			return domain.User{}, err
		}
		u.PasswordHash = hash
	}

	return s.repo.Update(ctx, u)
}

func (s *Service) SetActive(ctx context.Context, id string, active bool) (domain.User, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return domain.User{}, err
	}
	if u.Active == active {
		return u, nil
	}
	u.Active = active
	return s.repo.Update(ctx, u)
}

func (s *Service) DeleteUser(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperr.Invalidf("id is required")
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) GetUser(ctx context.Context, id string) (domain.User, error) {
	if strings.TrimSpace(id) == "" {
		return domain.User{}, apperr.Invalidf("id is required")
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context, f domain.ListFilter) ([]domain.User, error) {
	return s.repo.List(ctx, f)
}

// Login checks credentials and issues an access token. Unknown emails and
// wrong passwords fail the same way.
func (s *Service) Login(ctx context.Context, email, password string) (domain.Token, error) {
	u, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, ErrUserNotFound) {
		return domain.Token{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.Token{}, err
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return domain.Token{}, ErrInvalidCredentials
	}
	if !u.Active {
		return domain.Token{}, ErrInactiveUser
	}

	token, exp, err := s.tokens.Issue(u.Principal())
	if err != nil {
		return domain.Token{}, err
	}

	return domain.Token{AccessToken: token, ExpiresAt: exp, User: u}, nil
}

// Authenticate verifies a token and checks that its user still exists and
// is active.
func (s *Service) Authenticate(ctx context.Context, token string) (auth.Principal, error) {
	p, err := s.tokens.Verify(token)
	if err != nil {
		return auth.Principal{}, ErrInvalidToken.Wrap(err)
	}

	u, err := s.repo.Get(ctx, p.UserID)
	if errors.Is(err, ErrUserNotFound) {
		return auth.Principal{}, ErrInvalidToken
	}
	if err != nil {
		return auth.Principal{}, err
	}
	if !u.Active {
		return auth.Principal{}, ErrInactiveUser
	}

	return u.Principal(), nil
}
