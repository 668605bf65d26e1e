package security

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when an API token fails signature or claims validation
var ErrInvalidToken = errors.New("invalid API token")

// apiClaims are the claims carried by API bearer tokens
type apiClaims struct {
	jwt.RegisteredClaims
}

// IssueAPIToken creates a signed HS256 bearer token for the given user
func IssueAPIToken(secret string, userID int64, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := apiClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign API token: %w", err)
	}
	return signed, nil
}

// ValidateAPIToken verifies a bearer token and returns the user ID it was issued for
func ValidateAPIToken(secret, tokenString string) (int64, error) {
	claims := &apiClaims{}
	parser := jwt.NewParser(jwt.WithValidMethods([]string{"HS256"}))

	parsedToken, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil || !parsedToken.Valid {
		return 0, ErrInvalidToken
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || userID <= 0 {
		return 0, ErrInvalidToken
	}
	return userID, nil
}
