package middleware

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/encorelab/moment-nft-service/internal/logger"
)

const (
	// AuthSubjectKey is the gin context key holding the authenticated wallet
	// address (JWT subject)
	AuthSubjectKey = "auth_subject"
	// AuthTypeKey is the gin context key holding the authentication type
	AuthTypeKey = "auth_type"
)

// AuthConfig holds authentication configuration
type AuthConfig struct {
	// JWTPublicKey is an RSA public key in PEM format
	JWTPublicKey string
	// APIKeys authorize service-to-service callers (the CRUD layer, ops tooling)
	APIKeys []string
}

// Auth returns a gin middleware supporting JWT (Bearer) and API key
// authentication. The JWT subject is the caller's wallet address, which the
// handlers use for moment-ownership checks.
func Auth(cfg AuthConfig) gin.HandlerFunc {
	apiKeys := make(map[string]bool, len(cfg.APIKeys))
	for _, key := range cfg.APIKeys {
		if key != "" {
			apiKeys[key] = true
		}
	}

	return func(c *gin.Context) {
		authType, subject, err := authenticate(c.GetHeader("Authorization"), cfg.JWTPublicKey, apiKeys)
		if err != nil {
			logger.Warn("Authentication failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path),
				zap.String("client_ip", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"code": "unauthorized", "message": "Authentication failed"},
			})
			return
		}

		c.Set(AuthTypeKey, authType)
		if subject != "" {
			c.Set(AuthSubjectKey, subject)
		}
		c.Next()
	}
}

// authenticate validates the Authorization header
func authenticate(header, publicKeyPEM string, apiKeys map[string]bool) (string, string, error) {
	if header == "" {
		return "", "", errors.New("missing Authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 {
		return "", "", errors.New("invalid Authorization header format")
	}

	switch strings.ToLower(parts[0]) {
	case "bearer":
		claims, err := validateJWT(parts[1], publicKeyPEM)
		if err != nil {
			return "", "", err
		}
		return "jwt", claims.Subject, nil
	case "apikey":
		if !apiKeys[parts[1]] {
			return "", "", errors.New("invalid API key")
		}
		return "apikey", "", nil
	default:
		return "", "", fmt.Errorf("unsupported authorization type: %s", parts[0])
	}
}

// validateJWT validates a JWT token with RSA signature and returns claims
func validateJWT(tokenString, publicKeyPEM string) (*jwt.RegisteredClaims, error) {
	if publicKeyPEM == "" {
		return nil, errors.New("JWT public key not configured")
	}

	publicKey, err := parseRSAPublicKey(publicKeyPEM)
	if err != nil {
		return nil, fmt.Errorf("failed to parse RSA public key: %w", err)
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return publicKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	now := time.Now()
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(now) {
		return nil, errors.New("token has expired")
	}
	if claims.NotBefore != nil && claims.NotBefore.After(now) {
		return nil, errors.New("token not yet valid")
	}

	return claims, nil
}

// parseRSAPublicKey parses an RSA public key from PEM format
func parseRSAPublicKey(publicKeyPEM string) (*rsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(publicKeyPEM))
	if block == nil {
		return nil, errors.New("failed to parse PEM block containing public key")
	}

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse public key: %w", err)
	}

	publicKey, ok := parsed.(*rsa.PublicKey)
	if !ok {
		return nil, errors.New("key is not an RSA public key")
	}
	return publicKey, nil
}
