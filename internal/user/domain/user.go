package domain

import (
	"time"

	"github.com/dwikikusuma/shop-backoffice/internal/auth"
)

// User is the single account record for every role. Customers own a cart
// and orders; collaborators own products.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         auth.Role
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u User) Principal() auth.Principal {
	return auth.Principal{UserID: u.ID, Email: u.Email, Role: u.Role}
}

func (u User) Account() auth.Account {
	return auth.Account{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// ListFilter narrows ListUsers. Zero values match everything.
type ListFilter struct {
	Role   auth.Role
	Active *bool
}

// Token is an issued access token.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
	User        User
}
