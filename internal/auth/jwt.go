package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleTeacher is the only role this service issues.
const RoleTeacher = "TEACHER"

var (
	// ErrTokenExpired reports a structurally valid token past its expiry.
	// Clients may respond by re-authenticating silently.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalid reports a token whose signature or structure does not
	// verify. Always rejected.
	ErrTokenInvalid = errors.New("token invalid")
)

type Claims struct {
	TeacherID int64  `json:"teacher_id"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

func NewAccessToken(secret, issuer string, ttl time.Duration, teacherID int64, email string) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		TeacherID: teacherID,
		Email:     email,
		Role:      RoleTeacher,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(teacherID, 10),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken checks the signature before trusting any claim. Expiry is only
// reported once the signature has verified, so a tampered token is always
// ErrTokenInvalid, never ErrTokenExpired.
func ParseToken(secret, issuer, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, ErrTokenInvalid
		}
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
