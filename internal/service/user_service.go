package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/infradesk/infra-desk/internal/domain"
	"github.com/infradesk/infra-desk/internal/mapper"
	"github.com/infradesk/infra-desk/internal/repository"
	"go.uber.org/zap"
)

type UserService struct {
	userRepo    *repository.UserRepository
	profileRepo *repository.UserProfileRepository
	partnerRepo *repository.PartnerRepository
	clientRepo  *repository.ClientRepository
	logger      *zap.Logger
}

func NewUserService(
	userRepo *repository.UserRepository,
	profileRepo *repository.UserProfileRepository,
	partnerRepo *repository.PartnerRepository,
	clientRepo *repository.ClientRepository,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		partnerRepo: partnerRepo,
		clientRepo:  clientRepo,
		logger:      logger,
	}
}

func (s *UserService) Create(ctx context.Context, req *domain.UserRequest) (*domain.UserDTO, error) {
	user := &domain.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsActive:  boolOr(req.IsActive, true),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user created", zap.String("user_id", user.ID.String()), zap.String("username", user.Username))

	dto := mapper.ToUserDTO(user)
	return &dto, nil
}

// Upsert creates the user, or fills in the contact fields of the existing
// account with the same username. Blank fields keep the stored values.
func (s *UserService) Upsert(ctx context.Context, req *domain.UserRequest) (*domain.UserDTO, error) {
	user := &domain.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IsActive:  boolOr(req.IsActive, true),
	}

	if err := s.userRepo.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}

	s.logger.Info("user upserted", zap.String("user_id", user.ID.String()), zap.String("username", user.Username))

	dto := mapper.ToUserDTO(user)
	return &dto, nil
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.UserDTO, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	dto := mapper.ToUserDTO(user)
	return &dto, nil
}

func (s *UserService) Update(ctx context.Context, id uuid.UUID, req *domain.UserRequest) (*domain.UserDTO, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	user.Username = req.Username
	user.Email = req.Email
	user.FirstName = req.FirstName
	user.LastName = req.LastName
	user.IsActive = boolOr(req.IsActive, user.IsActive)

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	dto := mapper.ToUserDTO(user)
	return &dto, nil
}

// Delete removes the user and its profile; issue role links are cleared
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.logger.Info("user deleted", zap.String("user_id", id.String()))
	return nil
}

func (s *UserService) List(ctx context.Context, page, pageSize int) (*domain.PaginatedResponse, error) {
	users, total, err := s.userRepo.List(ctx, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	dtos := make([]domain.UserDTO, len(users))
	for i := range users {
		dtos[i] = mapper.ToUserDTO(&users[i])
	}
	return newPage(dtos, total, page, pageSize), nil
}

// CreateProfile attaches the single profile a user may have
func (s *UserService) CreateProfile(ctx context.Context, req *domain.UserProfileRequest) (*domain.UserProfileDTO, error) {
	user, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if err := s.checkProfileScope(ctx, req); err != nil {
		return nil, err
	}

	profile := &domain.UserProfile{
		UserID:    user.ID,
		PartnerID: req.PartnerID,
		ClientID:  req.ClientID,
		Role:      req.Role,
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create user profile: %w", err)
	}
	profile.User = user

	dto := mapper.ToUserProfileDTO(profile)
	return &dto, nil
}

func (s *UserService) GetProfile(ctx context.Context, id uuid.UUID) (*domain.UserProfileDTO, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}

	dto := mapper.ToUserProfileDTO(profile)
	return &dto, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req *domain.UserProfileRequest) (*domain.UserProfileDTO, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	if req.UserID != profile.UserID {
		user, err := s.userRepo.GetByID(ctx, req.UserID)
		if err != nil {
			return nil, fmt.Errorf("failed to get user: %w", err)
		}
		profile.UserID = user.ID
		profile.User = user
	}
	if err := s.checkProfileScope(ctx, req); err != nil {
		return nil, err
	}

	profile.PartnerID = req.PartnerID
	profile.ClientID = req.ClientID
	profile.Role = req.Role

	if err := s.profileRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update user profile: %w", err)
	}

	dto := mapper.ToUserProfileDTO(profile)
	return &dto, nil
}

func (s *UserService) DeleteProfile(ctx context.Context, id uuid.UUID) error {
	if err := s.profileRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete user profile: %w", err)
	}
	return nil
}

func (s *UserService) ListProfiles(ctx context.Context, page, pageSize int, partnerID *uuid.UUID) (*domain.PaginatedResponse, error) {
	profiles, total, err := s.profileRepo.List(ctx, page, pageSize, partnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user profiles: %w", err)
	}

	dtos := make([]domain.UserProfileDTO, len(profiles))
	for i := range profiles {
		dtos[i] = mapper.ToUserProfileDTO(&profiles[i])
	}
	return newPage(dtos, total, page, pageSize), nil
}

func (s *UserService) checkProfileScope(ctx context.Context, req *domain.UserProfileRequest) error {
	if req.PartnerID != nil {
		if _, err := s.partnerRepo.GetByID(ctx, *req.PartnerID); err != nil {
			return fmt.Errorf("failed to get partner: %w", err)
		}
	}
	if req.ClientID != nil {
		if _, err := s.clientRepo.GetByID(ctx, *req.ClientID); err != nil {
			return fmt.Errorf("failed to get client: %w", err)
		}
	}
	return nil
}
