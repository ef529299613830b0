package domain

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claims são emitidas pelo serviço de autenticação e apenas validadas aqui
type Claims struct {
	UserID     int
	UserName   string
	UserEmail  string
	UserRoleID int
	jwt.RegisteredClaims
}

// Papéis de usuário emitidos no token
const (
	RoleAdmin      = 1
	RoleSupervisor = 2
	RoleClient     = 3
)
