package jwtutil

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token purposes. Access tokens authenticate requests; verification and
// reset tokens are single-purpose artifacts mailed to the user.
const (
	PurposeAccess = "access"
	PurposeVerify = "email_verification"
	PurposeReset  = "password_reset"
)

var (
	ErrInvalidToken   = errors.New("invalid or expired token")
	ErrWrongPurpose   = errors.New("token purpose mismatch")
	ErrUnknownPurpose = errors.New("unknown token purpose")
)

type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Purpose  string `json:"purpose"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HMAC token scoped to one purpose. Each purpose uses
// a derived secret so an access token can never pass as a reset token even
// if purpose checking is skipped.
func GenerateToken(secret, purpose string, expiration time.Duration, userID uint, username, role string) (string, error) {
	if purpose != PurposeAccess && purpose != PurposeVerify && purpose != PurposeReset {
		return "", ErrUnknownPurpose
	}

	now := time.Now()
	claims := Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		Purpose:  purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(purposeSecret(secret, purpose))
	if err != nil {
		return "", fmt.Errorf("sign token failed: %w", err)
	}
	return signed, nil
}

// ParseToken verifies signature, expiry and purpose.
func ParseToken(secret, purpose, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return purposeSecret(secret, purpose), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Purpose != purpose {
		return nil, ErrWrongPurpose
	}
	return claims, nil
}

func purposeSecret(secret, purpose string) []byte {
	return []byte(secret + ":" + purpose)
}
