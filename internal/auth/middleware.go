package auth

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"movieCatalog/models"
)

// Rejection messages written by the HTTP guards.
const (
	MsgAuthRequired  = "authentication required"
	MsgInvalidToken  = "invalid token"
	MsgNoUserContext = "no user context"
)

// BearerToken extracts the token from an "Authorization: Bearer <token>" header.
// It returns "" when the header is absent or uses another scheme.
func BearerToken(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth verifies the bearer token and attaches its claims to the request context.
// A missing token is rejected with 401, an unverifiable or revoked one with 403.
// revoked may be nil when revocation is disabled.
func RequireAuth(signer *Signer, revoked Revocations) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := BearerToken(r.Header.Get("Authorization"))
			if tok == "" {
				writeError(w, http.StatusUnauthorized, MsgAuthRequired)
				return
			}
			c, err := signer.Verify(tok)
			if err != nil {
				writeError(w, http.StatusForbidden, MsgInvalidToken)
				return
			}
			if revoked != nil {
				gone, err := revoked.IsRevoked(r.Context(), c.ID)
				if err != nil {
					zerolog.Ctx(r.Context()).Error().Err(err).Msg("revocation lookup failed")
					writeError(w, http.StatusInternalServerError, "internal server error")
					return
				}
				if gone {
					writeError(w, http.StatusForbidden, MsgInvalidToken)
					return
				}
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), c)))
		})
	}
}

// RequireRole rejects requests whose claims do not carry exactly role.
// It must run after RequireAuth.
func RequireRole(role models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c, ok := FromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, MsgNoUserContext)
				return
			}
			if c.Role != role {
				writeError(w, http.StatusForbidden, "forbidden: "+string(role)+" role required")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
