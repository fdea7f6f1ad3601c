package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"gorm.io/gorm"

	"zoomride/internal/auth"
	"zoomride/internal/db"
	"zoomride/internal/models"
)

type contextKey string

const (
	UserKey  contextKey = "user"
	TokenKey contextKey = "token"
)

// CurrentUser pulls the authenticated user out of the request context.
func CurrentUser(r *http.Request) (*models.User, bool) {
	u, ok := r.Context().Value(UserKey).(*models.User)
	return u, ok
}

// BearerToken returns the raw token the request authenticated with.
func BearerToken(r *http.Request) string {
	t, _ := r.Context().Value(TokenKey).(string)
	return t
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": message})
}

// Protect authenticates the request: bearer token present, not revoked,
// signature valid, user exists and is active.
func Protect(blacklist *auth.Blacklist) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeAuthError(w, http.StatusUnauthorized, "Not authorized to access this route")
				return
			}
			token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
			if token == "" {
				writeAuthError(w, http.StatusUnauthorized, "Not authorized to access this route")
				return
			}

			if blacklist.IsRevoked(r.Context(), token) {
				writeAuthError(w, http.StatusUnauthorized, "Token has been invalidated. Please login again.")
				return
			}

			userID, err := auth.ParseToken(token)
			if err != nil {
				writeAuthError(w, http.StatusUnauthorized, "Not authorized to access this route")
				return
			}

			var user models.User
			if err := db.DB.First(&user, userID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					writeAuthError(w, http.StatusUnauthorized, "Not authorized to access this route")
					return
				}
				writeAuthError(w, http.StatusInternalServerError, "database error")
				return
			}
			if !user.IsActive {
				writeAuthError(w, http.StatusUnauthorized, "Account has been deactivated")
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, &user)
			ctx = context.WithValue(ctx, TokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Authorize restricts a route to the given roles. Must run after Protect.
func Authorize(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := CurrentUser(r)
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "Not authorized to access this route")
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeAuthError(w, http.StatusForbidden, "User role "+user.Role+" is not authorized to access this route")
		})
	}
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Expose-Headers", "Content-Disposition")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}
