package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tdlogistics/tdl/internal/domain"
	"github.com/tdlogistics/tdl/internal/logger"
)

// Claims is the verified content of a session token.
type Claims struct {
	UserId   domain.UserId
	Email    domain.Email
	Role     string
	Name     string
	IssuedAt time.Time
}

type TokenService interface {
	Issue(user domain.AdminUser) (string, error)
	// Verify returns nil on any failure: malformed token, wrong signing
	// method, bad signature or expiry. Callers treat nil uniformly as
	// "unauthenticated".
	Verify(tokenStr string) *Claims
}

type Service struct {
	secretKey string
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) *Service {
	return &Service{secretKey: secretKey, ttl: ttl}
}

func (s *Service) Issue(user domain.AdminUser) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"uid":   user.Id,
		"email": user.Email,
		"role":  user.Role,
		"name":  user.Name,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
		"jti":   uuid.NewString(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.secretKey))
	if err != nil {
		logger.Log.Error("failed to sign session token", "error", err)
		return "", errors.New("can't create token")
	}

	return tokenString, nil
}

func (s *Service) Verify(tokenStr string) *Claims {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.secretKey), nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}

	uid, ok := mapClaims["uid"].(float64)
	if !ok {
		return nil
	}
	email, ok := mapClaims["email"].(string)
	if !ok {
		return nil
	}
	role, ok := mapClaims["role"].(string)
	if !ok {
		return nil
	}
	name, ok := mapClaims["name"].(string)
	if !ok {
		return nil
	}
	iat, ok := mapClaims["iat"].(float64)
	if !ok {
		return nil
	}

	return &Claims{
		UserId:   int64(uid),
		Email:    email,
		Role:     role,
		Name:     name,
		IssuedAt: time.Unix(int64(iat), 0),
	}
}
