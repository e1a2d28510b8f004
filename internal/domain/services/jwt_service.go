package services

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"mineral-catalog-service/internal/domain/models"
	"mineral-catalog-service/internal/infrastructure/config"
)

const tokenIssuer = "mineral-catalog-service"

// InterfaceJWTService issues and verifies bearer tokens
type InterfaceJWTService interface {
	GenerateToken(user *models.User) (string, error)
	ValidateToken(tokenString string) (*jwt.Token, error)
	ExtractClaims(tokenString string) (*JWTClaims, error)
}

// JWTClaims carries the identity of the caller
type JWTClaims struct {
	UserID   uint        `json:"user_id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTService signs HS256 tokens
type JWTService struct {
	secretKey []byte
	issuer    string
	ttl       time.Duration
	now       func() time.Time
}

// NewJWTService creates a JWT service from config
func NewJWTService(cfg *config.Config) InterfaceJWTService {
	ttl := cfg.JWTTTL()
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &JWTService{
		secretKey: []byte(cfg.JWTSecretKey),
		issuer:    tokenIssuer,
		ttl:       ttl,
		now:       time.Now,
	}
}

// 1 GenerateToken signs a token for user
func (s *JWTService) GenerateToken(user *models.User) (string, error) {
	now := s.now()
	claims := &JWTClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			Subject:   fmt.Sprint(user.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secretKey)
}

// 2 ValidateToken parses and verifies a token
func (s *JWTService) ValidateToken(tokenString string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secretKey, nil
	})
}

// 3 ExtractClaims returns the verified claims of a token
func (s *JWTService) ExtractClaims(tokenString string) (*JWTClaims, error) {
	token, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*JWTClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Issuer != s.issuer || !claims.Role.Valid() || claims.UserID == 0 {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
