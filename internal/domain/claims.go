package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in API tokens.
const (
	RoleAdmin  = 1
	RoleViewer = 2
)

type Claims struct {
	Name   string `json:"name"`
	RoleID int    `json:"role_id"`
	jwt.RegisteredClaims
}

func (c *Claims) IsAdmin() bool {
	return c != nil && c.RoleID == RoleAdmin
}
