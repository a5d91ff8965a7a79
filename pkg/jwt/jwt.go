package jwt

import (
	"errors"
	"time"

	"go-clinic-scheduling/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenType string

const (
	AccessToken TokenType = "access"
)

// Claims is the identity envelope issued by the account service. A restricted
// scope limits the caller to the listed doctors.
type Claims struct {
	UserID          uuid.UUID   `json:"user_id"`
	HospitalID      uuid.UUID   `json:"hospital_id"`
	ScopeRestricted bool        `json:"scope_restricted,omitempty"`
	DoctorScope     []uuid.UUID `json:"doctor_scope,omitempty"`
	TokenType       TokenType   `json:"token_type"`
	TokenID         string      `json:"token_id"`
	jwt.RegisteredClaims
}

// Subject describes whom a token is minted for
type Subject struct {
	UserID          uuid.UUID
	HospitalID      uuid.UUID
	ScopeRestricted bool
	DoctorScope     []uuid.UUID
}

type JWTService struct {
	config config.JWTConfig
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{config: cfg}
}

func (s *JWTService) GenerateAccessToken(subject Subject) (string, string, error) {
	tokenID := uuid.New().String()
	now := time.Now()
	claims := Claims{
		UserID:          subject.UserID,
		HospitalID:      subject.HospitalID,
		ScopeRestricted: subject.ScopeRestricted,
		DoctorScope:     subject.DoctorScope,
		TokenType:       AccessToken,
		TokenID:         tokenID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", "", err
	}

	return signedToken, tokenID, nil
}

func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.config.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.HospitalID == uuid.Nil {
		return nil, errors.New("token has no hospital")
	}

	return claims, nil
}

func (s *JWTService) GetAccessExpiry() time.Duration {
	return s.config.AccessExpiry
}
