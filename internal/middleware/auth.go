package middleware

import (
	"net/http"

	"fstore-be/internal/auth"
	"fstore-be/internal/logger"
	"fstore-be/internal/user"
	"fstore-be/internal/utils"

	"go.uber.org/zap"
)

// Auth verifies the access token, when one is sent, and puts the caller's
// identity on the request context. Requests without a token pass through
// anonymously; a bad or expired token is rejected with 401.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := user.ParseJWT(tokenStr, secret)
			if err != nil {
				logger.FromCtx(r.Context()).Debug("rejected access token", zap.Error(err))
				utils.WriteJSONError(w, "invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Email, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
