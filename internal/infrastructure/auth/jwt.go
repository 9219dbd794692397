package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/adli-inc/adli/internal/shared/biztime"
)

// Claims identifies an internal user. The role is resolved server-side
// from employee records on every request, so it is not carried here.
type Claims struct {
	jwt.RegisteredClaims
}

// UserID parses the numeric subject.
func (c *Claims) UserID() (uint, error) {
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid subject %q", c.Subject)
	}
	return uint(id), nil
}

type JWTService struct {
	secret     []byte
	issuer     string
	expMinutes int
	clock      biztime.Clock
}

func NewJWTService(secret, issuer string, expMinutes int) *JWTService {
	return NewJWTServiceWithClock(secret, issuer, expMinutes, biztime.SystemClock())
}

func NewJWTServiceWithClock(secret, issuer string, expMinutes int, clock biztime.Clock) *JWTService {
	return &JWTService{
		secret:     []byte(secret),
		issuer:     issuer,
		expMinutes: expMinutes,
		clock:      clock,
	}
}

// Generate issues an access token for userID. Only the CLI uses this;
// login flows live outside this service.
func (s *JWTService) Generate(userID uint) (string, time.Time, error) {
	if userID == 0 {
		return "", time.Time{}, errors.New("user id is required")
	}
	now := s.clock.Now()
	exp := now.Add(time.Duration(s.expMinutes) * time.Minute)

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, exp, nil
}

func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}
