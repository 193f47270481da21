package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/ulticlub/roster-service/models"
)

type contextKey string

const callerContextKey contextKey = "caller"

const (
	jwtClaimUserID = "user_id"
	jwtClaimRole   = "role"
)

// Authenticate resolves the bearer token, if any, into a models.Caller stored on the
// request context. Requests without an Authorization header continue as anonymous;
// a present but invalid token is rejected with 401.
func Authenticate(secret string) func(http.Handler) http.Handler {
	key := []byte(secret)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				writeError(w, http.StatusUnauthorized, "authorization header must use the Bearer scheme")
				return
			}

			caller, err := parseCaller(strings.TrimSpace(raw), key)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCaller(r.Context(), caller)))
		})
	}
}

// RequireRole lets the request through only for authenticated callers holding one of roles.
func RequireRole(roles ...models.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := CallerFromContext(r.Context())
			if !caller.Authenticated() {
				writeError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			for _, role := range roles {
				if caller.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeError(w, http.StatusForbidden, "operation not allowed for the current user")
		})
	}
}

func WithCaller(ctx context.Context, caller models.Caller) context.Context {
	return context.WithValue(ctx, callerContextKey, caller)
}

// CallerFromContext returns the caller set by Authenticate, or an anonymous caller.
func CallerFromContext(ctx context.Context) models.Caller {
	caller, _ := ctx.Value(callerContextKey).(models.Caller)
	return caller
}

// IssueToken signs an HS256 token carrying the claims Authenticate understands.
func IssueToken(secret, userID string, role models.UserRole, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		jwtClaimUserID: userID,
		jwtClaimRole:   string(role),
		"iat":          now.Unix(),
		"exp":          now.Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func parseCaller(raw string, key []byte) (models.Caller, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return models.Caller{}, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return models.Caller{}, errors.New("invalid token claims")
	}

	userID, err := userIDFromClaims(claims)
	if err != nil {
		return models.Caller{}, err
	}
	role, _ := claims[jwtClaimRole].(string)
	switch models.UserRole(role) {
	case models.RoleAdmin, models.RoleMember:
	default:
		return models.Caller{}, fmt.Errorf("invalid role value in claim: %q", role)
	}
	return models.Caller{UserID: userID, Role: models.UserRole(role)}, nil
}

func userIDFromClaims(claims jwt.MapClaims) (string, error) {
	switch v := claims[jwtClaimUserID].(type) {
	case string:
		if v == "" {
			return "", fmt.Errorf("empty '%s' claim", jwtClaimUserID)
		}
		return v, nil
	case float64:
		if v != float64(int64(v)) || v <= 0 {
			return "", fmt.Errorf("invalid '%s' claim: %v", jwtClaimUserID, v)
		}
		return strconv.FormatInt(int64(v), 10), nil
	case nil:
		return "", fmt.Errorf("missing '%s' claim in token", jwtClaimUserID)
	default:
		return "", fmt.Errorf("invalid type for '%s' claim: %T", jwtClaimUserID, v)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"error": message})
}
