package middleware

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/iudanet/cloudsync/internal/server/handlers"
	"github.com/iudanet/cloudsync/pkg/api"
)

// AuthMiddleware создает middleware для проверки JWT токена устройства
func AuthMiddleware(logger *zap.Logger, jwtConfig handlers.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("missing Authorization header", zap.String("path", r.URL.Path))
				unauthorized(w, "missing token")
				return
			}

			// Ожидаем формат: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Warn("invalid Authorization header format")
				unauthorized(w, "invalid token format")
				return
			}

			claims, err := handlers.ValidateAccessToken(jwtConfig, parts[1])
			if err != nil {
				logger.Warn("invalid access token", zap.Error(err))
				unauthorized(w, "invalid token")
				return
			}

			logger.Debug("device authenticated",
				zap.String("user_id", claims.UserID),
				zap.String("device_id", claims.DeviceID),
			)

			ctx := handlers.WithIdentity(r.Context(), claims.UserID, claims.DeviceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnauthorized, api.ErrorResponse{
		Error:   api.CodeUnauthorized,
		Message: "unauthorized: " + message,
	})
}
