package usecase

import (
	"context"
	"time"

	"nexusmarket/internal/domain/entity"
	"nexusmarket/internal/domain/repository"
	"nexusmarket/pkg/errors"
)

// FirebaseAuthClient is the slice of Firebase auth the usecases need.
type FirebaseAuthClient interface {
	CreateUser(ctx context.Context, email, password string) (string, error)
	SignInWithEmailPassword(email, password string) (string, error)
	VerifyToken(ctx context.Context, token string) (string, error)
	DeleteUser(ctx context.Context, uid string) error
}

// AuthUseCase registers accounts and exchanges credentials for tokens.
// Identity lives in Firebase; the profile document lives in our store under
// the Firebase uid.
type AuthUseCase struct {
	authClient FirebaseAuthClient
	userRepo   repository.UserRepository
}

func NewAuthUseCase(authClient FirebaseAuthClient, userRepo repository.UserRepository) *AuthUseCase {
	return &AuthUseCase{
		authClient: authClient,
		userRepo:   userRepo,
	}
}

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Username string `json:"username" validate:"required,min=3"`
}

type AuthResult struct {
	User  *entity.User `json:"user"`
	Token string       `json:"token"`
}

func (uc *AuthUseCase) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if existing, err := uc.userRepo.GetByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, errors.Conflict("Email is already registered")
	}

	uid, err := uc.authClient.CreateUser(ctx, input.Email, input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to create auth account", err)
	}

	user := &entity.User{
		ID:        uid,
		Email:     input.Email,
		Username:  input.Username,
		Role:      entity.RoleUser,
		Status:    entity.UserStatusActive,
		KYCLevel:  "none",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		// Roll the auth account back so the email can be retried.
		_ = uc.authClient.DeleteUser(ctx, uid)
		return nil, err
	}

	token, err := uc.authClient.SignInWithEmailPassword(input.Email, input.Password)
	if err != nil {
		return nil, errors.Internal("Failed to sign in after registration", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (uc *AuthUseCase) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	token, err := uc.authClient.SignInWithEmailPassword(input.Email, input.Password)
	if err != nil {
		return nil, errors.Unauthorized("Invalid email or password", nil)
	}

	user, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user.Status == entity.UserStatusBanned {
		return nil, errors.Forbidden("Account is banned", nil)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// VerifyToken resolves a bearer token to a user id. Used by the auth
// middleware on every protected request.
func (uc *AuthUseCase) VerifyToken(ctx context.Context, token string) (string, error) {
	uid, err := uc.authClient.VerifyToken(ctx, token)
	if err != nil {
		return "", errors.Unauthorized("Invalid or expired token", nil)
	}
	return uid, nil
}
