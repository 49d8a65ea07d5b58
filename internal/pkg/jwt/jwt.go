package jwt

import (
	"errors"
	"time"

	"github.com/cmlabs-hris/employee-hub-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

const tokenTypeAccess = "access"

var ErrInvalidToken = errors.New("invalid or expired token")

// AccessClaims are the claims embedded in an access token
type AccessClaims struct {
	Email     string
	Role      user.Role
	ExpiresAt time.Time
}

type Service interface {
	GenerateAccessToken(email string, role user.Role) (token string, expiresAt int64, err error)
	ValidateAccessToken(tokenString string) (AccessClaims, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	accessTokenExpiration time.Duration
	tokenAuth             *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpiration time.Duration) Service {
	return &JWTService{
		accessTokenExpiration: accessTokenExpiration,
		tokenAuth:             jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(email string, role user.Role) (token string, expiresAt int64, err error) {
	now := time.Now()
	expiresAt = now.Add(j.accessTokenExpiration).Unix()

	claims := map[string]interface{}{
		"sub":  email,
		"role": string(role),
		"type": tokenTypeAccess,
		"iat":  now.Unix(),
		"exp":  expiresAt,
	}

	_, tokenString, err := j.tokenAuth.Encode(claims)
	return tokenString, expiresAt, err
}

// ValidateAccessToken verifies signature and expiry and returns the claims.
// Every failure is reported as ErrInvalidToken.
func (j *JWTService) ValidateAccessToken(tokenString string) (AccessClaims, error) {
	if tokenString == "" {
		return AccessClaims{}, ErrInvalidToken
	}

	token, err := jwtauth.VerifyToken(j.tokenAuth, tokenString)
	if err != nil || token == nil {
		return AccessClaims{}, ErrInvalidToken
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != tokenTypeAccess {
		return AccessClaims{}, ErrInvalidToken
	}

	email := token.Subject()
	if email == "" {
		return AccessClaims{}, ErrInvalidToken
	}

	roleVal, ok := token.Get("role")
	if !ok {
		return AccessClaims{}, ErrInvalidToken
	}
	roleStr, ok := roleVal.(string)
	if !ok || !user.Role(roleStr).IsValid() {
		return AccessClaims{}, ErrInvalidToken
	}

	return AccessClaims{
		Email:     email,
		Role:      user.Role(roleStr),
		ExpiresAt: token.Expiration(),
	}, nil
}
