package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"campus_connect/internal/common"
	"campus_connect/internal/common/security"
	"campus_connect/internal/domain/model"
	"campus_connect/internal/domain/repository"
	"campus_connect/internal/domain/roles"

	"github.com/google/uuid"
)

type AuthService struct {
	userRepo   repository.UserRepository
	emailRule  roles.EmailRule
	adminEmail string
}

func NewAuthService(userRepo repository.UserRepository, emailRule roles.EmailRule, adminEmail string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		emailRule:  emailRule,
		adminEmail: strings.ToLower(adminEmail),
	}
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

type AuthResponse struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// Register creates an account with the role inferred from the
// institutional email. Role detection runs exactly once here; afterwards
// the stored role is authoritative and only re-resolved per request.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return nil, common.ErrBadRequest
	}

	if err := security.ValidatePasswordComplexity(req.Password); err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), common.ErrValidation)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	isAdminAccount := email == s.adminEmail

	if !strings.HasSuffix(email, s.emailRule.Domain) {
		return nil, fmt.Errorf("registration is exclusive to %s: %w",
			s.emailRule.Domain, common.ErrValidation)
	}

	// The literal admin address has no year/dept suffix and is exempt from
	// the enrollment-year restriction.
	if !isAdminAccount {
		if err := s.emailRule.ValidateRegistrationYear(email); err != nil {
			return nil, fmt.Errorf("%s: %w", err.Error(), common.ErrValidation)
		}
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Email:          email,
		HashedPassword: hashedPassword,
	}

	if isAdminAccount {
		user.Role = string(roles.RoleAdmin)
		user.IsAdmin = true
	} else {
		user.Role = string(s.emailRule.DetectRole(email))
		if parsed, ok := s.emailRule.Parse(email); ok {
			user.Department = parsed.Department
			year := parsed.JoiningYear
			user.BatchYear = &year
		}
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := security.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = ""
	return &AuthResponse{User: user, Token: token}, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, common.ErrBadRequest
	}

	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized // Generic message for security
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if !security.CheckPasswordHash(req.Password, user.HashedPassword) {
		return nil, common.ErrUnauthorized
	}

	token, err := security.GenerateToken(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	user.HashedPassword = ""
	return &AuthResponse{User: user, Token: token}, nil
}

// EnsureAdmin seeds the admin account at startup if it does not exist.
// Skipped when no seed password is configured.
func (s *AuthService) EnsureAdmin(ctx context.Context, name, password string) error {
	if password == "" {
		log.Println("No admin seed password configured, skipping admin seed")
		return nil
	}

	_, err := s.userRepo.FindByEmail(ctx, s.adminEmail)
	if err == nil {
		return nil // already seeded
	}
	if !errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("admin seed lookup: %w", err)
	}

	hashedPassword, err := security.HashPassword(password)
	if err != nil {
		return fmt.Errorf("admin seed hash: %w", err)
	}

	admin := &model.User{
		ID:             uuid.NewString(),
		Name:           name,
		Email:          s.adminEmail,
		HashedPassword: hashedPassword,
		Role:           string(roles.RoleAdmin),
		IsAdmin:        true,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("admin seed create: %w", err)
	}
	log.Printf("Seeded admin account %s", s.adminEmail)
	return nil
}
