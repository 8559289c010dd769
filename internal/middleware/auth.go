package middleware

import (
	"log/slog"
	"net/http"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"filesfeed/internal/auth"
	"filesfeed/internal/httputil"
)

// LocalOwnerID owns state when no identity is supplied in local mode
const LocalOwnerID = "local"

// OwnerHeader carries a caller-chosen owner id in local mode
const OwnerHeader = "X-Owner-ID"

// ownerScopedPrefix marks routes that read or write per-owner state
const ownerScopedPrefix = "/api/me/"

var ownerIDPattern = regexp.MustCompile(`^[A-Za-z0-9._@:-]+$`)

// AuthMiddleware resolves the owner of a request.
//
// With a verifier, a bearer token is required on owner-scoped routes and its
// subject becomes the owner. Public routes accept anonymous requests, but a
// bad token is still rejected. Without a verifier, the owner comes from the
// X-Owner-ID header and defaults to "local".
func AuthMiddleware(verifier auth.JWTVerifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scoped := strings.HasPrefix(r.URL.Path, ownerScopedPrefix)

			if verifier == nil {
				ownerID := strings.TrimSpace(r.Header.Get(OwnerHeader))
				if ownerID == "" {
					ownerID = LocalOwnerID
				}
				if err := validateOwnerID(ownerID); err != nil {
					httputil.RespondError(w, http.StatusBadRequest, "invalid "+OwnerHeader+": "+err.Error())
					return
				}
				next.ServeHTTP(w, httputil.WithOwnerID(r, ownerID))
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				if scoped {
					httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Debug("token rejected", "path", r.URL.Path, "error", err)
				httputil.RespondError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			next.ServeHTTP(w, httputil.WithOwnerID(r, claims.OwnerID()))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	return strings.TrimSpace(header[len(prefix):]), true
}

func validateOwnerID(id string) error {
	return validation.Validate(id,
		validation.Length(1, 128),
		validation.Match(ownerIDPattern).Error("may only contain letters, digits and . _ @ : -"),
	)
}
