package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// Roles carried in the "role" claim of session tokens.
const (
	RoleCitizen  = "citizen"
	RoleOfficial = "official"
)

// SessionClaims is the subset of a session token the appointment service relies on.
// Tokens are issued by the external auth service; this package only verifies them.
type SessionClaims struct {
	Subject     string
	Role        string
	AuthorityID string
}

// GenerateToken creates a signed JWT for the given subject and role. AuthorityID is
// only set for officials. Used by tooling and tests; production tokens come from the
// auth service.
func GenerateToken(secret []byte, subject, role, authorityID string, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	if authorityID != "" {
		claims["authority_id"] = authorityID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses and validates a token string and returns the token if valid.
func ValidateToken(secret []byte, tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
}

// ExtractSessionClaims validates tokenString and returns its session claims.
func ExtractSessionClaims(secret []byte, tokenString string) (*SessionClaims, error) {
	token, err := ValidateToken(secret, tokenString)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)
	authorityID, _ := claims["authority_id"].(string)

	switch role {
	case RoleCitizen:
		if sub == "" {
			return nil, errors.New("token does not contain a valid 'sub' claim")
		}
	case RoleOfficial:
		if authorityID == "" {
			return nil, errors.New("official token does not contain an 'authority_id' claim")
		}
	default:
		return nil, errors.New("token does not contain a valid 'role' claim")
	}

	return &SessionClaims{Subject: sub, Role: role, AuthorityID: authorityID}, nil
}
