package tokens

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ukfreewill/will-service/internal/config"
)

// GenerateAdminToken creates a signed JWT for an authenticated admin. The
// admin gate is a single shared credential, so the only claim of interest is
// the role.
func GenerateAdminToken(cfg *config.Config, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"role": "admin",
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(ttl).Unix(),
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString([]byte(cfg.JWT.Secret))
}

// VerifyAdminToken parses and validates an admin token.
func VerifyAdminToken(cfg *config.Config, raw string) error {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(cfg.JWT.Secret), nil
	})
	if err != nil {
		return err
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok || !tok.Valid {
		return fmt.Errorf("invalid token")
	}
	if role, _ := claims["role"].(string); role != "admin" {
		return fmt.Errorf("missing admin role")
	}
	return nil
}
