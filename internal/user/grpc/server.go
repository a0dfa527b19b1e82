package grpc

import (
	"context"

	userv1 "github.com/dwikikusuma/shop-backoffice/api/user/v1"
	"github.com/dwikikusuma/shop-backoffice/internal/auth"
	"github.com/dwikikusuma/shop-backoffice/internal/user/app"
	"github.com/dwikikusuma/shop-backoffice/internal/user/domain"
	"github.com/dwikikusuma/shop-backoffice/pkg/rpc"
)

type Server struct {
	svc *app.Service
}

func NewServer(svc *app.Service) *Server {
	return &Server{svc: svc}
}

func (s *Server) Register(ctx context.Context, req *userv1.RegisterRequest) (*userv1.User, error) {
	u, err := s.svc.RegisterCustomer(ctx, app.Input{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, err
	}
	return toMessage(u), nil
}

func (s *Server) Login(ctx context.Context, req *userv1.LoginRequest) (*userv1.LoginResponse, error) {
	tok, err := s.svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return &userv1.LoginResponse{
		AccessToken: tok.AccessToken,
		ExpiresAt:   tok.ExpiresAt,
		User:        *toMessage(tok.User),
	}, nil
}

func (s *Server) Me(ctx context.Context, _ *rpc.Empty) (*userv1.User, error) {
	p, err := auth.MustPrincipal(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.svc.GetUser(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	return toMessage(u), nil
}

func (s *Server) CreateCollaborator(ctx context.Context, req *userv1.RegisterRequest) (*userv1.User, error) {
	u, err := s.svc.CreateCollaborator(ctx, app.Input{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, err
	}
	return toMessage(u), nil
}

func (s *Server) UpdateUser(ctx context.Context, req *userv1.UpdateUserRequest) (*userv1.User, error) {
	u, err := s.svc.UpdateUser(ctx, req.ID, app.Input{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		return nil, err
	}
	return toMessage(u), nil
}

func (s *Server) SetActive(ctx context.Context, req *userv1.SetActiveRequest) (*userv1.User, error) {
	u, err := s.svc.SetActive(ctx, req.ID, req.Active)
	if err != nil {
		return nil, err
	}
	return toMessage(u), nil
}

func (s *Server) DeleteUser(ctx context.Context, req *userv1.UserID) (*rpc.Empty, error) {
	if err := s.svc.DeleteUser(ctx, req.ID); err != nil {
		return nil, err
	}
	return &rpc.Empty{}, nil
}

func (s *Server) GetUser(ctx context.Context, req *userv1.UserID) (*userv1.User, error) {
	u, err := s.svc.GetUser(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return toMessage(u), nil
}

func (s *Server) ListUsers(ctx context.Context, req *userv1.ListUsersRequest) (*userv1.ListUsersResponse, error) {
	f := domain.ListFilter{Active: req.Active}
	if req.Role != "" {
		role, err := auth.ParseRole(req.Role)
		if err != nil {
			return nil, err
		}
		f.Role = role
	}

	users, err := s.svc.ListUsers(ctx, f)
	if err != nil {
		return nil, err
	}

	out := make([]userv1.User, 0, len(users))
	for _, u := range users {
		out = append(out, *toMessage(u))
	}
	return &userv1.ListUsersResponse{Users: out}, nil
}

func toMessage(u domain.User) *userv1.User {
	return &userv1.User{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
