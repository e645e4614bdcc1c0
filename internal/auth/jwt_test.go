package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := NewAccessToken("secret", "issuer", time.Minute, 42, "a@x.com")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}

	claims, err := ParseToken("secret", "issuer", token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.TeacherID != 42 || claims.Email != "a@x.com" || claims.Role != RoleTeacher {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestExpiredToken(t *testing.T) {
	token, err := NewAccessToken("secret", "issuer", -time.Second, 42, "a@x.com")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseToken("secret", "issuer", token); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestTamperedSignature(t *testing.T) {
	token, err := NewAccessToken("secret", "issuer", time.Minute, 42, "a@x.com")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	tampered := tamperLastByte(token)
	if _, err := ParseToken("secret", "issuer", tampered); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}

	// Tampering an expired token still reports invalid, not expired.
	expired, err := NewAccessToken("secret", "issuer", -time.Second, 42, "a@x.com")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	_, err = ParseToken("secret", "issuer", tamperLastByte(expired))
	if !errors.Is(err, ErrTokenInvalid) || errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenInvalid only, got %v", err)
	}
}

func TestWrongSecretAndIssuer(t *testing.T) {
	token, err := NewAccessToken("secret", "issuer", time.Minute, 42, "a@x.com")
	if err != nil {
		t.Fatalf("token error: %v", err)
	}
	if _, err := ParseToken("other-secret", "issuer", token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong secret, got %v", err)
	}
	if _, err := ParseToken("secret", "other-issuer", token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid for wrong issuer, got %v", err)
	}
}

func tamperLastByte(token string) string {
	last := token[len(token)-1]
	replacement := byte('A')
	if last == 'A' {
		replacement = 'B'
	}
	return strings.TrimSuffix(token, string(last)) + string(replacement)
}
