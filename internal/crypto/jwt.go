package crypto

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token kinds encoded in the claims. Access tokens authorize API calls;
// refresh tokens may only be exchanged for a new pair.
const (
	KindAccess  = "access"
	KindRefresh = "refresh"
)

var (
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrWrongTokenKind = errors.New("wrong token kind")
)

// Claims represents the JWT claims for Country Explorer authentication.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64  `json:"userId"`
	Kind   string `json:"kind"`
}

// GenerateToken creates a signed JWT of the given kind for the given user.
func GenerateToken(userID int64, kind, secret string, expiry time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "countryexplorer",
			Audience:  jwt.ClaimStrings{"countryexplorer-api"},
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
		Kind:   kind,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and validates a JWT, returning the claims if valid.
// Expired tokens fail with ErrTokenExpired; any other failure (bad signature,
// malformed, wrong issuer or audience) fails with ErrInvalidToken.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	}, jwt.WithIssuer("countryexplorer"), jwt.WithAudience("countryexplorer-api"))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// ValidateTokenKind validates a token and additionally requires its encoded
// kind to match, failing with ErrWrongTokenKind otherwise.
func ValidateTokenKind(tokenString, secret, kind string) (*Claims, error) {
	claims, err := ValidateToken(tokenString, secret)
	if err != nil {
		return nil, err
	}
	if claims.Kind != kind {
		return nil, ErrWrongTokenKind
	}
	return claims, nil
}
