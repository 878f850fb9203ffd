package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"auth_backend/internal/lib/jwt"
	sl "auth_backend/internal/lib/logger"
	"auth_backend/internal/models"
	"auth_backend/internal/sessions"
	"auth_backend/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMissingCredentials  = errors.New("email and password are required")
	ErrUserExists          = errors.New("user already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidPassword     = errors.New("invalid password")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionExpired      = errors.New("session expired")
)

type Auth struct {
	log           *slog.Logger
	usrSaver      UserSaver
	usrProvider   UserProvider
	sessions      *sessions.Manager
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

type UserSaver interface {
	SaveUser(ctx context.Context, email string, passHash []byte) (uid string, err error)
}

type UserProvider interface {
	User(ctx context.Context, email string) (models.User, error)
	UserByID(ctx context.Context, id string) (models.User, error)
}

func New(
	log *slog.Logger,
	userSaver UserSaver,
	userProvider UserProvider,
	sessionManager *sessions.Manager,
	accessSecret, refreshSecret string,
	accessTTL, refreshTTL time.Duration,
) *Auth {
	return &Auth{
		log:           log,
		usrSaver:      userSaver,
		usrProvider:   userProvider,
		sessions:      sessionManager,
		accessSecret:  []byte(accessSecret),
		refreshSecret: []byte(refreshSecret),
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// SignUp hashes the password and persists a new user. No tokens are issued
// here; signup and login are separate steps.
func (a *Auth) SignUp(ctx context.Context, email, password string) (models.User, error) {
	const op = "auth.SignUp"

	log := a.log.With(slog.String("op", op))

	if email == "" || password == "" {
		return models.User{}, ErrMissingCredentials
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("failed to generate password hash", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	id, err := a.usrSaver.SaveUser(ctx, email, passHash)
	if err != nil {
		if errors.Is(err, storage.ErrUserExists) {
			log.Warn("user already exists")
			return models.User{}, ErrUserExists
		}

		log.Error("failed to save user", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user signed up", slog.String("uid", id))

	return models.User{ID: id, Email: email}, nil
}

// Login checks credentials, issues an access/refresh token pair and persists
// a new session keyed by the refresh token.
func (a *Auth) Login(
	ctx context.Context,
	email, password string,
) (accessToken string, refreshToken string, user models.User, err error) {
	const op = "auth.Login"

	log := a.log.With(slog.String("op", op))

	user, err = a.usrProvider.User(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found")
			return "", "", models.User{}, ErrUserNotFound
		}

		log.Error("failed to get user", sl.Err(err))
		return "", "", models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword(user.PassHash, []byte(password)); err != nil {
		log.Info("invalid password", sl.Err(err))
		return "", "", models.User{}, ErrInvalidPassword
	}

	accessToken, err = jwt.NewToken(user.ID, a.accessSecret, a.accessTTL)
	if err != nil {
		log.Error("failed to generate access token", sl.Err(err))
		return "", "", models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	refreshToken, err = jwt.NewToken(user.ID, a.refreshSecret, a.refreshTTL)
	if err != nil {
		log.Error("failed to generate refresh token", sl.Err(err))
		return "", "", models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := a.sessions.Create(ctx, user.ID, refreshToken); err != nil {
		log.Error("failed to save session", sl.Err(err))
		return "", "", models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("user logged in successfully", slog.String("uid", user.ID))

	return accessToken, refreshToken, user, nil
}

// Logout destroys the session for the refresh token. Unknown or already
// invalidated tokens are not an error; client logout must always succeed.
func (a *Auth) Logout(ctx context.Context, refreshToken string) error {
	const op = "auth.Logout"

	log := a.log.With(slog.String("op", op))

	if err := a.sessions.Destroy(ctx, refreshToken); err != nil {
		log.Error("failed to destroy session", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}

	log.Info("logout successful")

	return nil
}

// Refresh verifies the refresh token against both its signature and its
// session row, then issues a new access token. The refresh token and its
// session are deliberately not rotated.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (string, error) {
	const op = "auth.Refresh"

	log := a.log.With(slog.String("op", op))

	if _, err := jwt.ParseToken(refreshToken, a.refreshSecret); err != nil {
		log.Warn("invalid refresh token", sl.Err(err))
		return "", ErrInvalidRefreshToken
	}

	session, err := a.sessions.Validate(ctx, refreshToken)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrSessionNotFound):
			log.Warn("session not found")
			return "", ErrSessionNotFound
		case errors.Is(err, sessions.ErrSessionExpired):
			log.Warn("session expired")
			return "", ErrSessionExpired
		}

		log.Error("failed to validate session", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	accessToken, err := jwt.NewToken(session.UserID, a.accessSecret, a.accessTTL)
	if err != nil {
		log.Error("failed to generate access token", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("access token refreshed", slog.String("uid", session.UserID))

	return accessToken, nil
}

// User looks up a user by id. The password hash never leaves the service
// boundary in responses; handlers expose id and email only.
func (a *Auth) User(ctx context.Context, userID string) (models.User, error) {
	const op = "auth.User"

	log := a.log.With(slog.String("op", op))

	user, err := a.usrProvider.UserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			log.Warn("user not found")
			return models.User{}, ErrUserNotFound
		}

		log.Error("failed to get user", sl.Err(err))
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	return user, nil
}
