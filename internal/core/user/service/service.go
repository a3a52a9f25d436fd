package userapp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/core/apperror"
	userEntity "inkwell/internal/core/user"
	userPort "inkwell/internal/ports/user"

	"github.com/dgrijalva/jwt-go"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidToken       = errors.New("invalid token")
)

// UserService registers users and issues session tokens.
type UserService struct {
	UserRepository userPort.UserRepository
	jwtKey         []byte
	now            func() time.Time
}

func NewUserService(repo userPort.UserRepository, jwtKey []byte) *UserService {
	return &UserService{
		UserRepository: repo,
		jwtKey:         jwtKey,
		now:            time.Now,
	}
}

type sessionClaims struct {
	Username string `json:"username"`
	jwt.StandardClaims
}

// RegisterUser creates an account; usernames are unique and never change afterwards.
func (s *UserService) RegisterUser(ctx context.Context, name, family, username, password string) (*userPort.UserDTO, error) {
	username = strings.TrimSpace(username)
	verr := &apperror.ValidationError{}
	if username == "" {
		verr.Add("username", "This field is required.")
	}
	if password == "" {
		verr.Add("password", "This field is required.")
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	existing, err := s.UserRepository.FindByUsername(ctx, username)
	if err == nil && existing != nil {
		return nil, ErrUsernameTaken
	}
	if err != nil && !errors.Is(err, apperror.ErrNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u, err := s.UserRepository.Create(ctx, &userEntity.User{
		ID:       uuid.Must(uuid.NewV4()),
		Name:     name,
		Family:   family,
		Username: username,
		Password: string(hashedPassword),
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	config.Logger.Info("User registered", zap.String("username", u.Username))
	return userPort.ToUserDTO(u), nil
}

// LoginUser checks the password and signs a token for the user.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error) {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		config.Logger.Info("Login for unknown user", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)); err != nil {
		config.Logger.Info("Invalid password", zap.String("username", username))
		return nil, ErrInvalidCredentials
	}

	expiresAt := s.now().Add(tokenTTL)
	token, err := s.generateJWT(u, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("could not generate token: %w", err)
	}

	return &userPort.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
	}, nil
}

func (s *UserService) generateJWT(u *userEntity.User, expiresAt time.Time) (string, error) {
	claims := &sessionClaims{
		Username: u.Username,
		StandardClaims: jwt.StandardClaims{
			Subject:   u.ID.String(),
			Issuer:    "inkwell",
			IssuedAt:  s.now().Unix(),
			ExpiresAt: expiresAt.Unix(),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtKey)
}

// ParseToken verifies a token and returns the session it carries.
func (s *UserService) ParseToken(tokenString string) (*userPort.Session, error) {
	claims := &sessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtKey, nil
	})
	if err != nil || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	return &userPort.Session{UserID: claims.Subject, Username: claims.Username}, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*userPort.UserDTO, error) {
	u, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return userPort.ToUserDTO(u), nil
}
