package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrWrongPurpose = errors.New("token issued for a different purpose")
)

const (
	PurposeAccess   = "access"
	PurposeCalendar = "ical"
	PurposeStorage  = "storage"
)

type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type Claims struct {
	EmployeeID  int64    `json:"employee_id"`
	Role        string   `json:"role"`
	Permissions []string `json:"permissions,omitempty"`
	Purpose     string   `json:"purpose"`
	jwtlib.RegisteredClaims
}

func New(secret string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// GenerateToken issues an access token for an authenticated employee.
func (s *Service) GenerateToken(employeeID int64, role string, permissions []string) (string, error) {
	return s.sign(Claims{
		EmployeeID:  employeeID,
		Role:        role,
		Permissions: permissions,
		Purpose:     PurposeAccess,
	}, s.ttl)
}

// GenerateScoped issues a token usable only for the given purpose, e.g. a
// calendar feed or a single storage object (subject).
func (s *Service) GenerateScoped(employeeID int64, purpose, subject string, ttl time.Duration) (string, error) {
	c := Claims{EmployeeID: employeeID, Purpose: purpose}
	c.Subject = subject
	return s.sign(c, ttl)
}

func (s *Service) sign(claims Claims, ttl time.Duration) (string, error) {
	now := s.now()
	claims.IssuedAt = jwtlib.NewNumericDate(now)
	claims.ExpiresAt = jwtlib.NewNumericDate(now.Add(ttl))

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken accepts access tokens only.
func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	return s.ValidateScoped(tokenStr, PurposeAccess)
}

func (s *Service) ValidateScoped(tokenStr, purpose string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwtlib.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, ErrInvalidToken
	}
	if claims.Purpose != purpose {
		return nil, ErrWrongPurpose
	}

	return claims, nil
}
