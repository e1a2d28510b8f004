package services

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"mineral-catalog-service/internal/domain/models"
	"mineral-catalog-service/internal/infrastructure/config"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 50
	minPasswordLength = 6
)

// InterfaceUserService manages accounts and logins
type InterfaceUserService interface {
	Register(username, password string) (*AuthResult, error)
	Login(username, password string) (*LoginResult, error)
	CreateAdmin(username, password string) (*models.User, error)
	EnsureAdmin(username, password string) (bool, error)
	GetUserByID(id uint) (*models.User, error)
}

// LoginResult is returned by a successful login
type LoginResult struct {
	Token     string      `json:"token"`
	UserID    uint        `json:"user_id"`
	Username  string      `json:"username"`
	Role      models.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

// AuthResult is returned by registration
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// UserService stores accounts with bcrypt hashed passwords
type UserService struct {
	DB         *gorm.DB
	Config     *config.Config
	JWTService InterfaceJWTService
}

// NewUserService creates a new user service
func NewUserService(db *gorm.DB, cfg *config.Config, jwtService InterfaceJWTService) InterfaceUserService {
	return &UserService{
		DB:         db,
		Config:     cfg,
		JWTService: jwtService,
	}
}

func validateCredentials(username, password string) error {
	if n := utf8.RuneCountInString(username); n < minUsernameLength || n > maxUsernameLength {
		return ErrInvalidUsername
	}
	if utf8.RuneCountInString(password) < minPasswordLength {
		return ErrInvalidPassword
	}
	return nil
}

func (s *UserService) create(username, password string, role models.Role) (*models.User, error) {
	username = strings.TrimSpace(username)
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	var count int64
	if err := s.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if count > 0 {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username: username,
		Password: string(hashedPassword),
		Role:     role,
	}
	if err := s.DB.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// 1 Register creates a regular account and signs a token for it.
// Self registration never grants the admin role.
func (s *UserService) Register(username, password string) (*AuthResult, error) {
	user, err := s.create(username, password, models.RoleUser)
	if err != nil {
		return nil, err
	}

	token, err := s.JWTService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &AuthResult{User: user, Token: token}, nil
}

// 2 Login checks the password and signs a token
func (s *UserService) Login(username, password string) (*LoginResult, error) {
	var user models.User
	err := s.DB.Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.JWTService.GenerateToken(&user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	return &LoginResult{
		Token:     token,
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}, nil
}

// 3 CreateAdmin creates an administrator account
func (s *UserService) CreateAdmin(username, password string) (*models.User, error) {
	return s.create(username, password, models.RoleAdmin)
}

// 4 EnsureAdmin creates the bootstrap admin when no admin exists yet.
// It reports whether an account was created.
func (s *UserService) EnsureAdmin(username, password string) (bool, error) {
	var count int64
	if err := s.DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count admins: %w", err)
	}
	if count > 0 || password == "" {
		return false, nil
	}
	if _, err := s.CreateAdmin(username, password); err != nil {
		return false, err
	}
	return true, nil
}

// 5 GetUserByID loads an account
func (s *UserService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
