package middleware

import (
	"net/http"

	"github.com/ecopulse-app/ecopulse/internal/services"
	"github.com/sirupsen/logrus"
)

// UpdateStreakMiddleware recomputes the user's streak on every
// authenticated request. Tying the streak to the auth path costs one
// extra write per call but removes the need for any background
// scheduling. Failures never block the request.
func UpdateStreakMiddleware(userService *services.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := GetUserFromContext(r.Context())
			if claims != nil {
				if err := userService.TouchStreak(r.Context(), claims.UserID); err != nil {
					logrus.WithError(err).WithField("userID", claims.UserID).Warn("Streak update failed")
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
