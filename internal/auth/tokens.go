package auth

import (
	"errors"
	"time"

	"GymMembershipServer/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const DefaultSessionTTL = 7 * 24 * time.Hour

type Claims struct {
	jwt.RegisteredClaims
	UserID int64       `json:"uid"`
	Role   domain.Role `json:"role"`
}

// TokenService issues and verifies stateless HS256 session tokens. The secret
// must be identical on every instance that verifies tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration

	Now func() time.Time
}

func NewTokenService(secret []byte, ttl time.Duration) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, errors.New("session secret is required")
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	secretCopy := make([]byte, len(secret))
	copy(secretCopy, secret)
	return &TokenService{secret: secretCopy, ttl: ttl}, nil
}

func (s *TokenService) TTL() time.Duration { return s.ttl }

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Issue returns a signed token for (userID, role) and its expiry.
func (s *TokenService) Issue(userID int64, role domain.Role) (string, time.Time, error) {
	if userID <= 0 || !role.Valid() {
		return "", time.Time{}, errors.New("issue token: invalid subject")
	}

	issuedAt := s.now().Truncate(time.Second)
	expiresAt := issuedAt.Add(s.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: userID,
		Role:   role,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Verify checks signature, algorithm and expiry. Every failure, whatever its
// cause, is reported as domain.ErrTokenInvalid.
func (s *TokenService) Verify(tokenString string) (Claims, error) {
	if tokenString == "" {
		return Claims{}, domain.ErrTokenInvalid
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return Claims{}, domain.ErrTokenInvalid
	}
	if claims.UserID <= 0 || !claims.Role.Valid() {
		return Claims{}, domain.ErrTokenInvalid
	}

	return *claims, nil
}
