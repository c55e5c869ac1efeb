package service

import (
	"errors"
	"fmt"
	"time"

	"hr-schedule-api/internal/apperr"
	"hr-schedule-api/internal/config"
	"hr-schedule-api/internal/models"
	"hr-schedule-api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials - неверная пара email/пароль или негодный токен;
// HTTP-слой отвечает на нее 401
var ErrInvalidCredentials = errors.New("invalid credentials")

type AuthService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
	logger   *logrus.Logger
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config, logger *logrus.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		cfg:      cfg,
		logger:   logger,
	}
}

// Register создает пользователя с хешированным паролем
func (s *AuthService) Register(email, password, role string) (*models.User, error) {
	if role == "" {
		role = models.RoleEmployee
	}
	if role != models.RoleEmployee && role != models.RoleManager {
		return nil, apperr.Validation("role must be %q or %q", models.RoleEmployee, models.RoleManager)
	}
	if password == "" {
		return nil, apperr.Validation("password must not be empty")
	}
	// Ограничение bcrypt
	if len(password) > 72 {
		return nil, apperr.Validation("password too long (max 72 bytes)")
	}

	existing, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if existing != nil {
		return nil, apperr.Conflict("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Storage(err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}

	if err := s.userRepo.Create(user); err != nil {
		s.logger.WithError(err).Error("Failed to create user")
		return nil, apperr.Storage(err)
	}

	s.logger.WithFields(logrus.Fields{
		"id":    user.ID,
		"email": user.Email,
		"role":  user.Role,
	}).Info("User registered")

	return user, nil
}

// Login проверяет пароль и выпускает access-токен
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		return "", apperr.Storage(err)
	}
	if user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.logger.WithField("email", email).Warn("Failed login attempt")
		return "", ErrInvalidCredentials
	}

	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.Email,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(s.cfg.AccessTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Authenticate разбирает токен и возвращает пользователя из него
func (s *AuthService) Authenticate(tokenStr string) (*models.User, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithLeeway(5*time.Second))
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredentials
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidCredentials
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByEmail(sub)
	if err != nil {
		return nil, apperr.Storage(err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
