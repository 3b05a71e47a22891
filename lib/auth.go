package lib

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"

	C "github.com/spiker/fick-server/constant"
)

type JWTConfiguration struct {
	Secret   string
	Issuer   string
	Audience string
	// 発行するトークンの有効期間(時間)。0なら無期限。
	Lifetime int
}

func (cfg *JWTConfiguration) String() string {
	return fmt.Sprintf(`[JWT]
Issuer:   %v
Audience: %v
Enabled:  %v`, cfg.Issuer, cfg.Audience, len(cfg.Secret) > 0)
}

var (
	defaultConfiguration *JWTConfiguration = nil
)

func SetupAuthentication(config *JWTConfiguration) error {
	defaultConfiguration = config

	return nil
}

func GetJWTConfiguration() *JWTConfiguration {
	return defaultConfiguration
}

func GetSecret() string {
	if defaultConfiguration == nil {
		return ""
	}
	return defaultConfiguration.Secret
}

// シークレットが設定されている場合のみ認証を行う。
func AuthenticationEnabled() bool {
	return len(GetSecret()) > 0
}

func VerifyToken(token *jwt.Token) (string, error) {
	if !token.Valid {
		return "", C.NewUnauthorizedError(
			"invalid_token",
			"Parsed token is invalid",
			map[string]interface{}{},
		)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", C.NewUnauthorizedError(
			"invalid_token",
			"Claims in your token are not readable",
			map[string]interface{}{},
		)
	}

	if !claims.VerifyIssuer(defaultConfiguration.Issuer, true) {
		return "", C.NewUnauthorizedError(
			"invalid_issuer",
			fmt.Sprintf("The issuer in your token is invalid: %v", claims["iss"]),
			map[string]interface{}{},
		)
	}

	if !claims.VerifyAudience(defaultConfiguration.Audience, true) {
		return "", C.NewUnauthorizedError(
			"invalid_audience",
			fmt.Sprintf("The audience in your token is invalid: %v", claims["aud"]),
			map[string]interface{}{},
		)
	}

	if sub, be := claims["sub"]; !be {
		return "", C.NewUnauthorizedError(
			"subject_not_found",
			"The subject is not found in your token",
			map[string]interface{}{},
		)
	} else if subject, ok := sub.(string); !ok {
		return "", C.NewUnauthorizedError(
			"invalid_subject",
			fmt.Sprintf("The subject in your token is invalid: %v", sub),
			map[string]interface{}{},
		)
	} else {
		return subject, nil
	}
}

// 設定された発行者、対象者でトークンを発行する。
func CreateToken(subject string, now time.Time) (string, error) {
	cfg := GetJWTConfiguration()
	if cfg == nil || len(cfg.Secret) == 0 {
		return "", fmt.Errorf("JWT secret is not configured")
	}

	claims := &jwt.StandardClaims{
		Issuer:   cfg.Issuer,
		Audience: cfg.Audience,
		Subject:  subject,
		IssuedAt: now.Unix(),
	}

	if cfg.Lifetime > 0 {
		claims.ExpiresAt = now.Add(time.Duration(cfg.Lifetime) * time.Hour).Unix()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(cfg.Secret))
}
