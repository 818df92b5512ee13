package usecase

import (
	"context"
	"time"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/domain/repository"
	"nexusmarket/pkg/errors"
)

// UserUseCase serves profiles and the admin user-management surface.
type UserUseCase struct {
	userRepo repository.UserRepository
}

func NewUserUseCase(userRepo repository.UserRepository) *UserUseCase {
	return &UserUseCase{userRepo: userRepo}
}

func (uc *UserUseCase) GetProfile(ctx context.Context, userID string) (*entity.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

type UpdateProfileInput struct {
	Username string `json:"username" validate:"omitempty,min=3"`
	Avatar   string `json:"avatar"`
	Bio      string `json:"bio" validate:"omitempty,max=500"`
}

func (uc *UserUseCase) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.Username != "" {
		user.Username = input.Username
	}
	user.Avatar = input.Avatar
	user.Bio = input.Bio
	user.UpdatedAt = time.Now()

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetOnline flips the presence flag. Called by the websocket hub on connect
// and disconnect.
func (uc *UserUseCase) SetOnline(ctx context.Context, userID string, online bool) error {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	user.IsOnline = online
	user.UpdatedAt = time.Now()
	return uc.userRepo.Update(ctx, user)
}

// BecomeSeller upgrades a buyer account. Idempotent for existing sellers.
func (uc *UserUseCase) BecomeSeller(ctx context.Context, userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Status != entity.UserStatusActive {
		return nil, errors.Forbidden("Account is not in good standing", nil)
	}
	if user.Role == entity.RoleAdmin {
		return user, nil
	}

	user.Role = entity.RoleSeller
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// --- Admin surface ---

func (uc *UserUseCase) ListUsers(ctx context.Context, role, status string, page, limit int) ([]*entity.User, int64, error) {
	filter := make(map[string]interface{})
	if role != "" {
		filter["role"] = role
	}
	if status != "" {
		filter["status"] = status
	}

	offset := (page - 1) * limit
	if offset < 0 {
		offset = 0
	}
	return uc.userRepo.List(ctx, filter, limit, offset)
}

func (uc *UserUseCase) SetStatus(ctx context.Context, userID, status string) (*entity.User, error) {
	switch status {
	case entity.UserStatusActive, entity.UserStatusBanned, entity.UserStatusSuspended:
	default:
		return nil, errors.BadRequest("Unknown user status: "+status, nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Role == entity.RoleAdmin && status != entity.UserStatusActive {
		return nil, errors.Forbidden("Admin accounts cannot be restricted", nil)
	}

	user.Status = status
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *UserUseCase) SetKYCLevel(ctx context.Context, userID, level string) (*entity.User, error) {
	switch level {
	case "none", "basic", "full":
	default:
		return nil, errors.BadRequest("Unknown KYC level: "+level, nil)
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.KYCLevel = level
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
