package jwt

import (
	"errors"
	"time"

	"content-admin/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

var (
	ErrInvalidToken     = errors.New("invalid token")
	ErrUnexpectedType   = errors.New("unexpected token type")
	ErrInvalidSignature = errors.New("invalid signing method")
)

type Claims struct {
	IdentityID uint      `json:"identity_id"`
	Kind       string    `json:"kind"`
	Group      string    `json:"group"`
	TokenType  TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// TokenID is the jti used as the blacklist key.
func (c *Claims) TokenID() string {
	return c.ID
}

// Remaining is how long the token stays valid from now.
func (c *Claims) Remaining() time.Duration {
	if c.ExpiresAt == nil {
		return 0
	}
	d := time.Until(c.ExpiresAt.Time)
	if d < 0 {
		return 0
	}
	return d
}

// Subject is what a token pair is issued for.
type Subject struct {
	IdentityID uint
	Kind       string
	Group      string
}

type TokenPair struct {
	Access        string
	Refresh       string
	AccessClaims  *Claims
	RefreshClaims *Claims
}

type JWTService struct {
	config config.JWTConfig
	now    func() time.Time
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{config: cfg, now: time.Now}
}

func (s *JWTService) GenerateAccessToken(sub Subject) (string, *Claims, error) {
	return s.generate(sub, AccessToken, s.config.AccessExpiry)
}

func (s *JWTService) GenerateRefreshToken(sub Subject) (string, *Claims, error) {
	return s.generate(sub, RefreshToken, s.config.RefreshExpiry)
}

func (s *JWTService) GeneratePair(sub Subject) (*TokenPair, error) {
	access, accessClaims, err := s.GenerateAccessToken(sub)
	if err != nil {
		return nil, err
	}
	refresh, refreshClaims, err := s.GenerateRefreshToken(sub)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		Access:        access,
		Refresh:       refresh,
		AccessClaims:  accessClaims,
		RefreshClaims: refreshClaims,
	}, nil
}

func (s *JWTService) generate(sub Subject, tokenType TokenType, expiry time.Duration) (string, *Claims, error) {
	now := s.now()
	claims := &Claims{
		IdentityID: sub.IdentityID,
		Kind:       sub.Kind,
		Group:      sub.Group,
		TokenType:  tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", nil, err
	}

	return signedToken, claims, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return []byte(s.config.Secret), nil
	}, jwt.WithTimeFunc(s.now))

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ValidateTyped validates the token and checks its type.
func (s *JWTService) ValidateTyped(tokenString string, tokenType TokenType) (*Claims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != tokenType {
		return nil, ErrUnexpectedType
	}
	return claims, nil
}
