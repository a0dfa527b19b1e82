// Package userv1 defines the shop.user.v1.UserService messages and
// descriptors. Messages travel JSON-encoded.
package userv1

import (
	"context"
	"time"

	"github.com/dwikikusuma/shop-backoffice/pkg/rpc"
	"google.golang.org/grpc"
)

const ServiceName = "shop.user.v1.UserService"

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        User      `json:"user"`
}

type UpdateUserRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
}

type SetActiveRequest struct {
	ID     string `json:"id"`
	Active bool   `json:"active"`
}

type UserID struct {
	ID string `json:"id"`
}

type ListUsersRequest struct {
	Role   string `json:"role,omitempty"`
	Active *bool  `json:"active,omitempty"`
}

type ListUsersResponse struct {
	Users []User `json:"users"`
}

type UserServiceServer interface {
	Register(context.Context, *RegisterRequest) (*User, error)
	Login(context.Context, *LoginRequest) (*LoginResponse, error)
	Me(context.Context, *rpc.Empty) (*User, error)
	CreateCollaborator(context.Context, *RegisterRequest) (*User, error)
	UpdateUser(context.Context, *UpdateUserRequest) (*User, error)
	SetActive(context.Context, *SetActiveRequest) (*User, error)
	DeleteUser(context.Context, *UserID) (*rpc.Empty, error)
	GetUser(context.Context, *UserID) (*User, error)
	ListUsers(context.Context, *ListUsersRequest) (*ListUsersResponse, error)
}

var UserServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*UserServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		rpc.Unary(ServiceName, "Register", UserServiceServer.Register),
		rpc.Unary(ServiceName, "Login", UserServiceServer.Login),
		rpc.Unary(ServiceName, "Me", UserServiceServer.Me),
		rpc.Unary(ServiceName, "CreateCollaborator", UserServiceServer.CreateCollaborator),
		rpc.Unary(ServiceName, "UpdateUser", UserServiceServer.UpdateUser),
		rpc.Unary(ServiceName, "SetActive", UserServiceServer.SetActive),
		rpc.Unary(ServiceName, "DeleteUser", UserServiceServer.DeleteUser),
		rpc.Unary(ServiceName, "GetUser", UserServiceServer.GetUser),
		rpc.Unary(ServiceName, "ListUsers", UserServiceServer.ListUsers),
	},
	Metadata: "api/user/v1/user.go",
}

func RegisterUserServiceServer(s grpc.ServiceRegistrar, srv UserServiceServer) {
	s.RegisterService(&UserServiceDesc, srv)
}

type UserServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewUserServiceClient(cc grpc.ClientConnInterface) *UserServiceClient {
	return &UserServiceClient{cc: cc}
}

func (c *UserServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*User, error) {
	return rpc.Invoke[User](ctx, c.cc, ServiceName, "Register", in, opts...)
}

func (c *UserServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*LoginResponse, error) {
	return rpc.Invoke[LoginResponse](ctx, c.cc, ServiceName, "Login", in, opts...)
}

func (c *UserServiceClient) Me(ctx context.Context, in *rpc.Empty, opts ...grpc.CallOption) (*User, error) {
	return rpc.Invoke[User](ctx, c.cc, ServiceName, "Me", in, opts...)
}

func (c *UserServiceClient) CreateCollaborator(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*User, error) {
	return rpc.Invoke[User](ctx, c.cc, ServiceName, "CreateCollaborator", in, opts...)
}

func (c *UserServiceClient) UpdateUser(ctx context.Context, in *UpdateUserRequest, opts ...grpc.CallOption) (*User, error) {
	return rpc.Invoke[User](ctx, c.cc, ServiceName, "UpdateUser", in, opts...)
}

func (c *UserServiceClient) SetActive(ctx context.Context, in *SetActiveRequest, opts ...grpc.CallOption) (*User, error) {
	return rpc.Invoke[User](ctx, c.cc, ServiceName, "SetActive", in, opts...)
}

func (c *UserServiceClient) DeleteUser(ctx context.Context, in *UserID, opts ...grpc.CallOption) (*rpc.Empty, error) {
	return rpc.Invoke[rpc.Empty](ctx, c.cc, ServiceName, "DeleteUser", in, opts...)
}

func (c *UserServiceClient) GetUser(ctx context.Context, in *UserID, opts ...grpc.CallOption) (*User, error) {
	return rpc.Invoke[User](ctx, c.cc, ServiceName, "GetUser", in, opts...)
}

func (c *UserServiceClient) ListUsers(ctx context.Context, in *ListUsersRequest, opts ...grpc.CallOption) (*ListUsersResponse, error) {
	return rpc.Invoke[ListUsersResponse](ctx, c.cc, ServiceName, "ListUsers", in, opts...)
}
