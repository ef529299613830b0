package authenticating

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vfg2006/media-planner-api/internal/config"
	"github.com/vfg2006/media-planner-api/internal/domain"
	"github.com/vfg2006/media-planner-api/pkg/apiErrors"
)

const tokenTTL = 24 * time.Hour

// Authenticator valida os tokens emitidos pelo serviço de usuários.
// IssueToken existe para ferramentas internas e testes.
type Authenticator interface {
	ValidateToken(tokenString string) (*domain.Claims, error)
	IssueToken(userID, roleID int, name, email string) (string, error)
}

type Service struct {
	secret []byte
	now    func() time.Time
}

func NewService(cfg config.Auth) Authenticator {
	return &Service{
		secret: []byte(cfg.Secret),
		now:    time.Now,
	}
}

func (s *Service) ValidateToken(tokenString string) (*domain.Claims, error) {
	if len(s.secret) == 0 {
		return nil, NewAuthError(ErrMissingSecret, apiErrors.ErrInternalServer, "")
	}

	token, err := jwt.ParseWithClaims(tokenString, &domain.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, NewAuthError(ErrExpiredToken, apiErrors.ErrExpiredToken, err.Error())
		}
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, err.Error())
	}

	claims, ok := token.Claims.(*domain.Claims)
	if !ok || !token.Valid {
		return nil, NewAuthError(ErrInvalidToken, apiErrors.ErrInvalidToken, "")
	}

	return claims, nil
}

func (s *Service) IssueToken(userID, roleID int, name, email string) (string, error) {
	if len(s.secret) == 0 {
		return "", NewAuthError(ErrMissingSecret, apiErrors.ErrInternalServer, "")
	}

	now := s.now()
	claims := domain.Claims{
		UserID:     userID,
		UserName:   name,
		UserEmail:  email,
		UserRoleID: roleID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", NewAuthError(ErrSignToken, apiErrors.ErrInternalServer, err.Error())
	}

	return signed, nil
}
