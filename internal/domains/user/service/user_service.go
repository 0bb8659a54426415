package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"recipebook-backend/internal/domains/user/model"
	repo "recipebook-backend/internal/domains/user/repository"
	"recipebook-backend/internal/shared"
	"recipebook-backend/internal/shared/apperror"
	"recipebook-backend/pkg/jwt"
)

type UserService struct {
	repository    repo.RepositoryInterface
	subscriptions SubscriptionChecker
	jwtManager    *jwt.Manager
}

func NewUserService(r repo.RepositoryInterface, subscriptions SubscriptionChecker, jwtManager *jwt.Manager) ServiceInterface {
	return &UserService{
		repository:    r,
		subscriptions: subscriptions,
		jwtManager:    jwtManager,
	}
}

func (s *UserService) Register(ctx context.Context, req *model.RegisterRequest) (*model.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Internal("failed to hash password", err)
	}

	user := &model.User{
		ID:           uuid.New(),
		Email:        req.Email,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
		CreatedAt:    time.Now(),
	}

	if err := s.repository.Create(ctx, user); err != nil {
		return nil, err
	}

	resp := model.NewUserResponse(user, false)
	return &resp, nil
}

func (s *UserService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, apperror.FromValidation(err)
	}

	user, err := s.repository.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.NotFound("invalid email or password")
	}

	token, err := s.jwtManager.GenerateToken(user.ID.String(), user.Email, user.Role)
	if err != nil {
		return nil, apperror.Internal("failed to issue token", err)
	}

	return &model.LoginResponse{
		Token: token,
		User:  model.NewUserResponse(user, false),
	}, nil
}

func (s *UserService) GetUser(ctx context.Context, caller shared.Identity, id uuid.UUID) (*model.UserResponse, error) {
	user, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}

	isSubscribed, err := s.isSubscribed(ctx, caller, user.ID)
	if err != nil {
		return nil, err
	}

	resp := model.NewUserResponse(user, isSubscribed)
	return &resp, nil
}

func (s *UserService) ListUsers(ctx context.Context, caller shared.Identity) ([]model.UserResponse, error) {
	users, err := s.repository.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]model.UserResponse, 0, len(users))
	for i := range users {
		isSubscribed, err := s.isSubscribed(ctx, caller, users[i].ID)
		if err != nil {
			return nil, err
		}
		result = append(result, model.NewUserResponse(&users[i], isSubscribed))
	}

	return result, nil
}

// isSubscribed never touches the store for anonymous callers.
func (s *UserService) isSubscribed(ctx context.Context, caller shared.Identity, author uuid.UUID) (bool, error) {
	if !caller.Authenticated || caller.UserID == author {
		return false, nil
	}
	return s.subscriptions.SubscriptionExists(ctx, caller.UserID, author)
}
