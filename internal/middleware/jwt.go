package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"accounts-service/internal/config"
	"accounts-service/internal/utils"
)

// Claims represents the claims in the JWT token
type Claims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

type contextKey struct{}

var claimsKey contextKey

// GenerateToken generates a signed JWT token for the given user
func GenerateToken(userID int64, email, role string, cfg *config.JWTConfig) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ValidateToken validates a JWT token and returns the claims
func ValidateToken(tokenString string, cfg *config.JWTConfig) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(cfg.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrTokenMalformed
}

// ClaimsFromContext returns the authenticated identity attached by Authenticate.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}

// ContextWithClaims attaches an authenticated identity to the context.
func ContextWithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// Authenticate verifies the JWT carried in the token cookie and attaches the
// decoded claims to the request context. Requests without a valid token are
// rejected with 401 before the handler runs.
func Authenticate(next http.HandlerFunc, cfg *config.JWTConfig, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenString := utils.GetAuthCookie(r)
		if tokenString == "" {
			log.Warn("authentication failed: no token provided",
				zap.String("path", r.URL.Path))
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Authentication required")
			return
		}

		claims, err := ValidateToken(tokenString, cfg)
		if err != nil {
			log.Warn("authentication failed: invalid token",
				zap.String("path", r.URL.Path),
				zap.Error(err))
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized", "Invalid or expired token")
			return
		}

		log.Info("user authenticated", zap.String("email", claims.Email))

		next.ServeHTTP(w, r.WithContext(ContextWithClaims(r.Context(), claims)))
	}
}
