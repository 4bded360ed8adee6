package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mkaran/planetary-api/internal/dependencies/clock"
	"github.com/mkaran/planetary-api/internal/model"
	"github.com/mkaran/planetary-api/internal/notify"
	"github.com/mkaran/planetary-api/internal/storage"
)

// Errors
var (
	// ErrInvalidCredentials covers both unknown email and wrong password;
	// callers must not be able to tell which field was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrInvalidResetToken  = errors.New("invalid or expired reset token")
)

// Service handles credential verification and the token lifecycle.
// Issued tokens are stateless: the signed JWT is the complete credential
// for subsequent calls, there is no server-side session table.
type Service struct {
	store    storage.Store
	clock    clock.Clock
	notifier notify.Notifier

	secret        []byte
	tokenValidity time.Duration
	resetValidity time.Duration
}

// Config holds configuration for the auth service
type Config struct {
	Secret        string
	TokenValidity time.Duration
	ResetValidity time.Duration
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		TokenValidity: 24 * time.Hour,
		ResetValidity: 30 * time.Minute,
	}
}

// New creates a new auth service
func New(store storage.Store, clk clock.Clock, notifier notify.Notifier, cfg Config) *Service {
	def := DefaultConfig()
	if cfg.TokenValidity == 0 {
		cfg.TokenValidity = def.TokenValidity
	}
	if cfg.ResetValidity == 0 {
		cfg.ResetValidity = def.ResetValidity
	}
	return &Service{
		store:         store,
		clock:         clk,
		notifier:      notifier,
		secret:        []byte(cfg.Secret),
		tokenValidity: cfg.TokenValidity,
		resetValidity: cfg.ResetValidity,
	}
}

// Register creates a new user account with a hashed credential.
// Uniqueness of email and first name is enforced by the store; when a home
// planet is given it must exist.
func (s *Service) Register(ctx context.Context, firstName, lastName, email, password string, homePlanetID *model.PlanetID) (*model.User, error) {
	if homePlanetID != nil {
		if _, err := s.store.GetPlanet(ctx, *homePlanetID); err != nil {
			return nil, err
		}
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &model.User{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		HomePlanetID: homePlanetID,
		CreatedAt:    s.clock.Now(),
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and issues a signed, time-bounded token
// with the user id as subject.
func (s *Service) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	ok, err := VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user.ID)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// ResolveToken verifies a token's signature and expiry and returns the
// subject user id. Malformed or expired tokens yield ErrInvalidToken.
func (s *Service) ResolveToken(tokenString string) (model.UserID, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}

	subject, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrInvalidToken
	}
	return model.UserID(subject), nil
}

// RequestPasswordReset issues a single-use reset token for the user and
// hands it to the notifier for out-of-band delivery. Only the token's
// SHA-256 hash is persisted. Returns the email the token was sent to.
func (s *Service) RequestPasswordReset(ctx context.Context, id model.UserID) (string, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		return "", err
	}

	token := uuid.NewString()
	reset := &model.PasswordReset{
		TokenHash: hashResetToken(token),
		UserID:    user.ID,
		ExpiresAt: s.clock.Now().Add(s.resetValidity),
		CreatedAt: s.clock.Now(),
	}
	if err := s.store.CreatePasswordReset(ctx, reset); err != nil {
		return "", err
	}

	if err := s.notifier.SendPasswordReset(ctx, user.Email, token); err != nil {
		return "", fmt.Errorf("delivering reset token: %w", err)
	}
	return user.Email, nil
}

// ResetPassword completes a reset: validates the token, re-hashes the new
// credential, and burns the user's outstanding reset tokens atomically.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	reset, err := s.store.GetPasswordReset(ctx, hashResetToken(token))
	if err != nil {
		if errors.Is(err, model.ErrResetNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}
	if s.clock.Now().After(reset.ExpiresAt) {
		return ErrInvalidResetToken
	}

	hash, err := HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	return s.store.CompletePasswordReset(ctx, reset.UserID, hash)
}

func (s *Service) issueToken(id model.UserID) (string, error) {
	now := s.clock.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(int64(id), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenValidity)),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
