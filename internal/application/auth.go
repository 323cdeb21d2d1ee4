package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/luxserv365/concierge/internal/api/middleware"
	"github.com/luxserv365/concierge/internal/domain/admin"
	"github.com/luxserv365/concierge/internal/domain/property"
	"github.com/luxserv365/concierge/internal/repository"
	"github.com/luxserv365/concierge/pkg/types"
)

// AuthService issues, refreshes and revokes admin and owner sessions.
type AuthService struct {
	Repos    *repository.Repos
	AdminTTL time.Duration
	OwnerTTL time.Duration

	now func() time.Time
}

func NewAuthService(repos *repository.Repos, opts Options) *AuthService {
	return &AuthService{
		Repos:    repos,
		AdminTTL: opts.AdminTokenTTL,
		OwnerTTL: opts.OwnerTokenTTL,
		now:      opts.clock(),
	}
}

// EnsureAdmin creates the bootstrap admin account when it does not exist yet.
// An existing account keeps its password.
func (s *AuthService) EnsureAdmin(username, password string) (bool, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return false, nil
	}
	_, err := s.Repos.Admin.GetByUsername(username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash admin password: %w", err)
	}
	now := s.now().UTC()
	u := admin.User{Username: username, PasswordHash: string(hashed), CreatedAt: now, UpdatedAt: now}
	if err := s.Repos.Admin.Save(&u); err != nil {
		return false, err
	}
	return true, nil
}

func (s *AuthService) AdminLogin(input admin.LoginDTO) (admin.Session, error) {
	u, err := s.Repos.Admin.GetByUsername(strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return admin.Session{}, ErrInvalidCredentials
		}
		return admin.Session{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(input.Password)); err != nil {
		return admin.Session{}, ErrInvalidCredentials
	}

	session, err := s.issue(types.Claims{Username: u.Username, Role: types.RoleAdmin})
	if err != nil {
		return admin.Session{}, err
	}

	now := s.now().UTC()
	u.LastLoginAt = &now
	u.UpdatedAt = now
	if err := s.Repos.Admin.Save(&u); err != nil {
		return admin.Session{}, err
	}
	return session, nil
}

// OwnerLogin signs in an owner whose e-mail and property address match a
// registered property.
func (s *AuthService) OwnerLogin(input admin.OwnerLoginDTO) (admin.Session, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	props, err := s.Repos.Property.ListByOwner(email)
	if err != nil {
		return admin.Session{}, err
	}
	var match *property.Property
	for i := range props {
		if property.SameAddress(props[i].PropertyAddress, input.PropertyAddress) {
			match = &props[i]
			break
		}
	}
	if match == nil {
		return admin.Session{}, ErrOwnerNotFound
	}
	return s.issue(types.Claims{Email: match.OwnerEmail, Name: match.OwnerName, Role: types.RoleOwner})
}

func (s *AuthService) ttl(role string) time.Duration {
	if role == types.RoleOwner {
		return s.OwnerTTL
	}
	return s.AdminTTL
}

func (s *AuthService) issue(claims types.Claims) (admin.Session, error) {
	token, expiresAt, err := middleware.GenerateToken(claims, s.ttl(claims.Role))
	if err != nil {
		return admin.Session{}, fmt.Errorf("sign token: %w", err)
	}
	return admin.Session{
		Token:     token,
		Username:  claims.Username,
		Email:     claims.Email,
		Name:      claims.Name,
		Role:      claims.Role,
		ExpiresAt: expiresAt,
	}, nil
}

// Refresh issues a new token for the same identity and revokes the old one.
func (s *AuthService) Refresh(ctx context.Context, current *types.Claims) (admin.Session, error) {
	session, err := s.issue(types.Claims{
		Username: current.Username,
		Email:    current.Email,
		Name:     current.Name,
		Role:     current.Role,
	})
	if err != nil {
		return admin.Session{}, err
	}
	if err := s.Logout(ctx, current); err != nil {
		return admin.Session{}, err
	}
	return session, nil
}

// Logout revokes the token until it would have expired anyway.
func (s *AuthService) Logout(ctx context.Context, current *types.Claims) error {
	until := s.now().Add(s.ttl(current.Role))
	if current.ExpiresAt != nil {
		until = current.ExpiresAt.Time
	}
	if err := middleware.CurrentRevoker().Revoke(ctx, current.ID, until); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}
