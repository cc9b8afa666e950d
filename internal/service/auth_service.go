package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"go-todo-api/internal/model"
	"go-todo-api/internal/token"
	"go-todo-api/pkg/apierror"
)

const bcryptCost = 12

// UserStore is the credential store consulted by the auth service.
// Implementations must enforce username/email uniqueness atomically.
type UserStore interface {
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	Create(ctx context.Context, u model.User) error
}

// TokenStore is the refresh token registry. Replace must be atomic per
// user id: concurrent issuances leave exactly one valid token stored.
type TokenStore interface {
	Replace(ctx context.Context, userID string, token string, expiresAt time.Time) error
	Resolve(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}

type AuthService struct {
	signer     *token.Signer
	users      UserStore
	tokens     TokenStore
	refreshTTL time.Duration
}

func NewAuthService(signer *token.Signer, users UserStore, tokens TokenStore, refreshTTL time.Duration) *AuthService {
	return &AuthService{
		signer:     signer,
		users:      users,
		tokens:     tokens,
		refreshTTL: refreshTTL,
	}
}

func (s *AuthService) Register(ctx context.Context, username string, email string, password string) (model.AuthUser, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	if err := validateUsername(username); err != nil {
		return model.AuthUser{}, err
	}
	if err := validateEmail(email); err != nil {
		return model.AuthUser{}, err
	}
	if err := validatePassword(password); err != nil {
		return model.AuthUser{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return model.AuthUser{}, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := model.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return model.AuthUser{}, err
	}

	return model.AuthUser{ID: user.ID, Username: user.Username, Email: user.Email}, nil
}

// Login accepts either a username or an email address; input containing
// '@' is treated as an email. Unknown user and wrong password collapse
// into the same error so the response never reveals which factor failed.
func (s *AuthService) Login(ctx context.Context, usernameOrEmail string, password string) (model.TokenPair, error) {
	usernameOrEmail = strings.TrimSpace(usernameOrEmail)

	var user model.User
	var err error
	if strings.Contains(usernameOrEmail, "@") {
		user, err = s.users.FindByEmail(ctx, usernameOrEmail)
	} else {
		user, err = s.users.FindByUsername(ctx, usernameOrEmail)
	}
	if errors.Is(err, model.ErrUserNotFound) {
		return model.TokenPair{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.TokenPair{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return model.TokenPair{}, model.ErrInvalidCredentials
	}

	return s.issueTokenPair(ctx, user)
}

// Refresh exchanges a refresh token for a new token pair. The presented
// token is rotated: the registry slot is overwritten with a fresh value,
// so the old token stops resolving.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	userID, err := s.tokens.Resolve(ctx, refreshToken)
	if err != nil {
		return model.TokenPair{}, err
	}

	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, model.ErrUserNotFound) {
		return model.TokenPair{}, model.ErrUnauthorized
	}
	if err != nil {
		return model.TokenPair{}, err
	}

	return s.issueTokenPair(ctx, user)
}

func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.Revoke(ctx, refreshToken)
}

func (s *AuthService) ValidateToken(tokenString string) (*model.AuthClaims, error) {
	return s.signer.Validate(tokenString)
}

func (s *AuthService) GetUserByID(ctx context.Context, userID string) (model.AuthUser, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return model.AuthUser{}, err
	}
	return model.AuthUser{ID: user.ID, Username: user.Username, Email: user.Email}, nil
}

func (s *AuthService) issueTokenPair(ctx context.Context, user model.User) (model.TokenPair, error) {
	accessToken, err := s.signer.Issue(user.ID, user.Username)
	if err != nil {
		return model.TokenPair{}, err
	}

	refreshToken, err := newRefreshToken()
	if err != nil {
		return model.TokenPair{}, err
	}

	expiresAt := time.Now().UTC().Add(s.refreshTTL)
	if err := s.tokens.Replace(ctx, user.ID, refreshToken, expiresAt); err != nil {
		return model.TokenPair{}, err
	}

	return model.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.signer.AccessTTL().Seconds()),
		User:         model.AuthUser{ID: user.ID, Username: user.Username, Email: user.Email},
	}, nil
}

// newRefreshToken returns an opaque 256-bit random value. Unlike access
// tokens it carries no claims; it is only meaningful to the registry.
func newRefreshToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate refresh token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func validateUsername(username string) error {
	if username == "" {
		return apierror.Validation("username is required", "username")
	}
	if len(username) > 64 {
		return apierror.Validation("username must be at most 64 characters", "username")
	}
	// '@' is how login distinguishes emails from usernames.
	if strings.Contains(username, "@") {
		return apierror.Validation("username must not contain '@'", "username")
	}
	return nil
}

func validateEmail(email string) error {
	at := strings.Index(email, "@")
	if email == "" || at <= 0 || at == len(email)-1 {
		return apierror.Validation("a valid email address is required", "email")
	}
	if len(email) > 254 {
		return apierror.Validation("email must be at most 254 characters", "email")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return apierror.Validation("password must be at least 6 characters", "password")
	}

	var hasDigit, hasUpper, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsUpper(r):
			hasUpper = true
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			hasSpecial = true
		}
	}

	if !hasDigit {
		return apierror.Validation("password must contain at least one digit", "password")
	}
	if !hasUpper {
		return apierror.Validation("password must contain at least one uppercase letter", "password")
	}
	if !hasSpecial {
		return apierror.Validation("password must contain at least one non-alphanumeric character", "password")
	}
	return nil
}
