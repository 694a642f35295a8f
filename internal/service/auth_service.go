package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"yatube/internal/config"
	"yatube/internal/logging"
	"yatube/internal/metrics"
	"yatube/internal/models"
	"yatube/internal/repository"
)

// Session is a signed login issued to a user.
type Session struct {
	User      *models.User
	Token     string
	ExpiresAt time.Time
}

type AuthService interface {
	Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error)
	Login(ctx context.Context, username, password string) (*Session, error)
	IssueSession(user *models.User) (*Session, error)
	ParseSession(ctx context.Context, token string) (*models.User, error)
}

type sessionClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	now      func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{
		userRepo: userRepo,
		cfg:      cfg,
		now:      time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req repository.CreateUserRequest) (*models.User, error) {
	user := &models.User{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}

	if err := s.userRepo.CreateUser(ctx, user, req.Password); err != nil {
		return nil, err
	}

	metrics.UsersRegistered.Inc()
	logging.Ctx(ctx).Info().Str("username", user.Username).Msg("пользователь зарегистрирован")

	return user, nil
}

func (s *authService) Login(ctx context.Context, username, password string) (*Session, error) {
	user, err := s.userRepo.VerifyPassword(ctx, username, password)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidPassword) {
			metrics.RecordLogin("failure")
			return nil, ErrInvalidCredentials
		}
		metrics.RecordLogin("error")
		return nil, fmt.Errorf("ошибка аутентификации: %w", err)
	}

	session, err := s.IssueSession(user)
	if err != nil {
		metrics.RecordLogin("error")
		return nil, err
	}

	metrics.RecordLogin("success")
	return session, nil
}

// IssueSession signs an HS256 token for user.
func (s *authService) IssueSession(user *models.User) (*Session, error) {
	now := s.now()
	expiresAt := now.Add(s.cfg.SessionDuration)

	claims := sessionClaims{
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(s.cfg.SecretKey))
	if err != nil {
		return nil, fmt.Errorf("ошибка подписи токена: %w", err)
	}

	return &Session{User: user, Token: tokenString, ExpiresAt: expiresAt}, nil
}

// ParseSession verifies a session token and loads its user. Tokens of
// deleted or renamed users are rejected.
func (s *authService) ParseSession(ctx context.Context, tokenString string) (*models.User, error) {
	var claims sessionClaims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.SecretKey), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: некорректный subject", ErrInvalidSession)
	}

	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: пользователь не найден", ErrInvalidSession)
		}
		return nil, err
	}

	if user.Username != claims.Username {
		return nil, fmt.Errorf("%w: имя пользователя не совпадает", ErrInvalidSession)
	}

	return user, nil
}
