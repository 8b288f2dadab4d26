package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/countryexplorer/countryexplorer-go/internal/crypto"
	"github.com/countryexplorer/countryexplorer-go/internal/model"
	"github.com/countryexplorer/countryexplorer-go/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidEmail       = errors.New("a valid email is required")
	ErrInvalidName        = errors.New("first and last name must be 2-50 characters")
	ErrEmailTaken         = errors.New("user already exists with this email")
	ErrUserNotFound       = errors.New("user not found")
	ErrNoFieldsToUpdate   = errors.New("no valid fields to update")
)

// UserStore is the persistence contract AuthService depends on, satisfied by
// repository.UserRepository. Tests substitute an in-memory fake.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	UpdateNames(ctx context.Context, id int64, firstName, lastName string) error
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
	TouchUpdatedAt(ctx context.Context, id int64) error
	AddFavorite(ctx context.Context, userID int64, countryID string) error
	RemoveFavorite(ctx context.Context, userID int64, countryID string) error
	ListFavorites(ctx context.Context, userID int64) ([]string, error)
}

// AuthService handles registration, login, token refresh, and profile logic.
type AuthService struct {
	store         UserStore
	accessSecret  string
	refreshSecret string
	accessExpiry  time.Duration
	refreshExpiry time.Duration
}

// NewAuthService creates a new AuthService. Access and refresh tokens are
// signed with separate secrets.
func NewAuthService(store UserStore, accessSecret, refreshSecret string, accessExpiry, refreshExpiry time.Duration) *AuthService {
	return &AuthService{
		store:         store,
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessExpiry:  accessExpiry,
		refreshExpiry: refreshExpiry,
	}
}

// Register creates a new user account and returns the user with a fresh
// token pair. The password is validated against the policy before hashing.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return model.AuthResponse{}, ErrInvalidEmail
	}
	if !validName(req.FirstName) || !validName(req.LastName) {
		return model.AuthResponse{}, ErrInvalidName
	}
	if err := crypto.ValidatePassword(req.Password); err != nil {
		return model.AuthResponse{}, err
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}

	user := &model.User{
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Favorites:    []string{},
	}

	if err := s.store.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.AuthResponse{}, ErrEmailTaken
		}
		return model.AuthResponse{}, err
	}

	tokens, err := s.issueTokens(user.ID)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{User: model.NewUserResponse(user), Tokens: tokens}, nil
}

// Login authenticates a user and returns a fresh token pair. An unknown email
// and a wrong password produce the same error so the response does not leak
// which one failed.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	user, err := s.store.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	if !crypto.VerifyPassword(req.Password, user.PasswordHash) {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	if err := s.store.TouchUpdatedAt(ctx, user.ID); err != nil {
		return model.AuthResponse{}, err
	}
	user.UpdatedAt = time.Now().UTC()

	tokens, err := s.issueTokens(user.ID)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{User: model.NewUserResponse(user), Tokens: tokens}, nil
}

// Refresh exchanges a valid refresh token for a new access/refresh pair.
// Tokens of the wrong kind fail with crypto.ErrWrongTokenKind. The previous
// refresh token is not revoked; it stays usable until its own expiry.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	claims, err := crypto.ValidateTokenKind(refreshToken, s.refreshSecret, crypto.KindRefresh)
	if err != nil {
		return model.TokenPair{}, err
	}

	if _, err := s.store.GetByID(ctx, claims.UserID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.TokenPair{}, ErrInvalidCredentials
		}
		return model.TokenPair{}, err
	}

	return s.issueTokens(claims.UserID)
}

// GetProfile retrieves the current user's profile.
func (s *AuthService) GetProfile(ctx context.Context, userID int64) (model.UserResponse, error) {
	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}
	return model.NewUserResponse(user), nil
}

// UpdateProfile updates the user's first and/or last name. Absent fields keep
// their stored value; supplying neither is an error.
func (s *AuthService) UpdateProfile(ctx context.Context, userID int64, req model.UpdateProfileRequest) (model.UserResponse, error) {
	if req.FirstName == "" && req.LastName == "" {
		return model.UserResponse{}, ErrNoFieldsToUpdate
	}

	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	firstName := user.FirstName
	lastName := user.LastName
	if req.FirstName != "" {
		if !validName(req.FirstName) {
			return model.UserResponse{}, ErrInvalidName
		}
		firstName = strings.TrimSpace(req.FirstName)
	}
	if req.LastName != "" {
		if !validName(req.LastName) {
			return model.UserResponse{}, ErrInvalidName
		}
		lastName = strings.TrimSpace(req.LastName)
	}

	if err := s.store.UpdateNames(ctx, userID, firstName, lastName); err != nil {
		return model.UserResponse{}, err
	}

	user.FirstName = firstName
	user.LastName = lastName
	user.UpdatedAt = time.Now().UTC()
	return model.NewUserResponse(user), nil
}

// ChangePassword re-checks the current password, validates the new one
// against the policy, and persists its hash.
func (s *AuthService) ChangePassword(ctx context.Context, userID int64, req model.ChangePasswordRequest) error {
	user, err := s.store.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if !crypto.VerifyPassword(req.CurrentPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	if err := crypto.ValidatePassword(req.NewPassword); err != nil {
		return err
	}

	hash, err := crypto.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	return s.store.UpdatePasswordHash(ctx, userID, hash)
}

// AddFavorite records a country in the user's favorites and returns the
// resulting set. Adding an already-present country is a no-op.
func (s *AuthService) AddFavorite(ctx context.Context, userID int64, countryID string) ([]string, error) {
	if err := s.resolveUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.store.AddFavorite(ctx, userID, countryID); err != nil {
		return nil, err
	}
	return s.store.ListFavorites(ctx, userID)
}

// RemoveFavorite deletes a country from the user's favorites and returns the
// resulting set. Removing an absent country is a no-op.
func (s *AuthService) RemoveFavorite(ctx context.Context, userID int64, countryID string) ([]string, error) {
	if err := s.resolveUser(ctx, userID); err != nil {
		return nil, err
	}
	if err := s.store.RemoveFavorite(ctx, userID, countryID); err != nil {
		return nil, err
	}
	return s.store.ListFavorites(ctx, userID)
}

func (s *AuthService) resolveUser(ctx context.Context, userID int64) error {
	if _, err := s.store.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *AuthService) issueTokens(userID int64) (model.TokenPair, error) {
	access, err := crypto.GenerateToken(userID, crypto.KindAccess, s.accessSecret, s.accessExpiry)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("signing access token: %w", err)
	}
	refresh, err := crypto.GenerateToken(userID, crypto.KindRefresh, s.refreshSecret, s.refreshExpiry)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("signing refresh token: %w", err)
	}
	return model.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    s.accessExpiry.String(),
	}, nil
}

func validName(name string) bool {
	trimmed := strings.TrimSpace(name)
	return len(trimmed) >= 2 && len(trimmed) <= 50
}
