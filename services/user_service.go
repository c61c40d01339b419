package services

import (
	"context"
	"strings"
	"time"

	"bookstore-service/models"
	"bookstore-service/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer issues access tokens. *TokenService implements it.
type TokenIssuer interface {
	GenerateAccessToken(userID, email, role string) (string, time.Time, error)
}

// CartProvisioner creates a user's cart. CartService implements it.
type CartProvisioner interface {
	ProvisionCart(ctx context.Context, userID uuid.UUID) *ServiceError
}

// UserService defines the interface for registration and login.
type UserService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.UserResponse, *ServiceError)
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, *ServiceError)
	CreateAdmin(ctx context.Context, email, password string) (*models.UserResponse, *ServiceError)
}

type userServiceImpl struct {
	users  repository.UserRepository
	carts  CartProvisioner
	tx     repository.Transactor
	tokens TokenIssuer
	logger *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(
	users repository.UserRepository,
	carts CartProvisioner,
	tx repository.Transactor,
	tokens TokenIssuer,
	logger *zap.Logger,
) UserService {
	return &userServiceImpl{users: users, carts: carts, tx: tx, tokens: tokens, logger: logger}
}

// Register creates a customer account together with its cart.
func (s *userServiceImpl) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserResponse, *ServiceError) {
	if req.Password != req.RepeatPassword {
		return nil, validationFailed("Passwords do not match")
	}
	user := &models.User{
		Email:           strings.TrimSpace(req.Email),
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ShippingAddress: req.ShippingAddress,
		Role:            models.RoleUser,
	}
	if svcErr := s.createUser(ctx, user, req.Password); svcErr != nil {
		return nil, svcErr
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.String()))
	resp := models.ToUserResponse(user)
	return &resp, nil
}

func (s *userServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, *ServiceError) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if isNotFound(err) {
			return nil, unauthorized("Invalid email or password")
		}
		s.logger.Error("Failed to look up user", zap.Error(err))
		return nil, internal("Failed to log in")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, unauthorized("Invalid email or password")
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(user.ID.String(), user.Email, user.Role)
	if err != nil {
		s.logger.Error("Failed to issue token", zap.String("user_id", user.ID.String()), zap.Error(err))
		return nil, internal("Failed to log in")
	}
	return &models.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// CreateAdmin creates an administrator account. Administrators get a cart
// like everyone else.
func (s *userServiceImpl) CreateAdmin(ctx context.Context, email, password string) (*models.UserResponse, *ServiceError) {
	if len(password) < 8 {
		return nil, validationFailed("Password must be at least 8 characters")
	}
	user := &models.User{
		Email: strings.TrimSpace(email),
		Role:  models.RoleAdmin,
	}
	if svcErr := s.createUser(ctx, user, password); svcErr != nil {
		return nil, svcErr
	}

	s.logger.Info("Administrator created", zap.String("user_id", user.ID.String()))
	resp := models.ToUserResponse(user)
	return &resp, nil
}

func (s *userServiceImpl) createUser(ctx context.Context, user *models.User, password string) *ServiceError {
	if user.Email == "" {
		return validationFailed("Email is required")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return validationFailed("Password cannot be used")
	}
	user.Password = string(hashed)

	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if _, err := s.users.FindByEmail(ctx, user.Email); err == nil {
			return conflict("Email already registered")
		} else if !isNotFound(err) {
			return err
		}
		if err := s.users.Create(ctx, user); err != nil {
			if isDuplicate(err) {
				return conflict("Email already registered")
			}
			return err
		}
		if svcErr := s.carts.ProvisionCart(ctx, user.ID); svcErr != nil {
			return svcErr
		}
		return nil
	})
	if err != nil {
		svcErr := asServiceError(err, "Failed to create user")
		if svcErr.StatusCode >= 500 {
			s.logger.Error("Failed to create user", zap.Error(err))
		}
		return svcErr
	}
	return nil
}
