package service

import (
	"fmt"

	"cozycorner-pos/pkg/jwt"

	"golang.org/x/crypto/bcrypt"
)

const AdminRole = "admin"

type AuthService interface {
	Login(password string) (string, error)
	ValidateToken(token string) (*jwt.Claims, error)
}

// authService guards the cashier screens with one shared admin password.
// Only its bcrypt hash is kept in memory.
type authService struct {
	passwordHash []byte
	tokens       *jwt.Manager
}

func NewAuthService(adminPassword string, tokens *jwt.Manager) (AuthService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &authService{passwordHash: hash, tokens: tokens}, nil
}

func (s *authService) Login(password string) (string, error) {
	if password == "" {
		return "", ErrInvalidPassword
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidPassword
	}
	return s.tokens.GenerateToken(AdminRole)
}

func (s *authService) ValidateToken(token string) (*jwt.Claims, error) {
	claims, err := s.tokens.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	if claims.Role != AdminRole {
		return nil, jwt.ErrInvalidToken
	}
	return claims, nil
}
