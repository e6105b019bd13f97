package service

import (
	"context"
	"fmt"
	"log"

	"campus_connect/internal/common"
	"campus_connect/internal/domain/model"
	"campus_connect/internal/domain/repository"
	"campus_connect/internal/domain/roles"
	"campus_connect/internal/platform/cache"
)

const alumniCacheKey = "directory:alumni"

type UserService struct {
	userRepo    repository.UserRepository
	alumniCache *cache.JSONCache
}

func NewUserService(userRepo repository.UserRepository, alumniCache *cache.JSONCache) *UserService {
	return &UserService{userRepo: userRepo, alumniCache: alumniCache}
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		users[i].HashedPassword = ""
	}
	return users, nil
}

type PromoteRequest struct {
	UserID   string `json:"user_id"`
	ClubName string `json:"club_name"`
	Position string `json:"position"`
}

// PromoteToClubMember flips the club flag on. The caller must re-resolve
// role and permissions from a fresh snapshot afterwards; nothing derived
// is stored.
func (s *UserService) PromoteToClubMember(ctx context.Context, req PromoteRequest) (*model.User, error) {
	if req.UserID == "" || req.ClubName == "" {
		return nil, common.ErrBadRequest
	}
	position := req.Position
	if position == "" {
		position = "Member"
	}

	if err := s.userRepo.UpdateClubMembership(ctx, req.UserID, true, &req.ClubName, &position); err != nil {
		return nil, fmt.Errorf("failed to promote user: %w", err)
	}

	user, err := s.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}
	user.HashedPassword = ""
	return user, nil
}

// DemoteFromClubMember restores a regular membership: flag off, club and
// position cleared.
func (s *UserService) DemoteFromClubMember(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, common.ErrBadRequest
	}

	if err := s.userRepo.UpdateClubMembership(ctx, userID, false, nil, nil); err != nil {
		return nil, fmt.Errorf("failed to demote user: %w", err)
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}
	user.HashedPassword = ""
	return user, nil
}

type UpdateProfileRequest struct {
	Name         *string `json:"name,omitempty"`
	Company      *string `json:"company,omitempty"`
	Location     *string `json:"location,omitempty"`
	Bio          *string `json:"bio,omitempty"`
	LinkedIn     *string `json:"linked_in,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if req.Name != nil && *req.Name != "" {
		user.Name = *req.Name
	}
	if req.Company != nil {
		user.Company = *req.Company
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.LinkedIn != nil {
		user.LinkedIn = *req.LinkedIn
	}
	if req.ProfileImage != nil {
		user.ProfileImage = *req.ProfileImage
	}

	if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	// Alumni profiles feed the public directory.
	if err := s.alumniCache.Invalidate(ctx, alumniCacheKey); err != nil {
		log.Printf("alumni cache invalidation failed: %v", err)
	}

	user.HashedPassword = ""
	return user, nil
}

// ListAlumni serves the public alumni directory through the cache.
func (s *UserService) ListAlumni(ctx context.Context) ([]model.User, error) {
	var cached []model.User
	hit, err := s.alumniCache.Get(ctx, alumniCacheKey, &cached)
	if err != nil {
		log.Printf("alumni cache read failed: %v", err)
	}
	if hit {
		return cached, nil
	}

	alumni, err := s.userRepo.ListByRole(ctx, string(roles.RoleAlumni))
	if err != nil {
		return nil, fmt.Errorf("failed to list alumni: %w", err)
	}
	for i := range alumni {
		alumni[i].HashedPassword = ""
	}

	if err := s.alumniCache.Set(ctx, alumniCacheKey, alumni); err != nil {
		log.Printf("alumni cache write failed: %v", err)
	}
	return alumni, nil
}
