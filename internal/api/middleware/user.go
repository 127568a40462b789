package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jkowalik/sleepstats/internal/api/response"
)

type contextKey string

const UserIDKey contextKey = "userID"

// UserContext extracts the user ID from the URL and adds it to the request
// context. The ID is only parsed here; whether the user exists is decided
// by the storage layer.
func UserContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userIDStr := chi.URLParam(r, "userID")
		if userIDStr == "" {
			response.BadRequest(w, "missing user ID")
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			response.BadRequest(w, "invalid user ID")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID gets the user ID from context
func GetUserID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}
