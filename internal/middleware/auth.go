package middleware

import (
	"net/http"
	"strings"

	"stash/internal/auth"
	"stash/internal/domain/services"
	"stash/internal/httputil"
)

// ShareCookieName is the cookie a redeemed share link plants so the
// browser keeps impersonating the issuer on subsequent API calls.
const ShareCookieName = "stash_share"

// ShareHeaderName lets non-browser clients present a share token directly.
const ShareHeaderName = "X-Share-Token"

// Auth resolves the requesting user and stores the user ID in the request
// context. Two credentials are accepted, checked in order:
//
//  1. a Bearer JWT, whose subject is the user ID
//  2. a share token (cookie or header), resolved to its issuing user
//
// Requests that present neither, or whose credential fails, get a 401.
// Public paths pass through untouched.
func Auth(verifier auth.JWTVerifier, shares services.ShareService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isPublicPath(r) {
				next.ServeHTTP(w, r)
				return
			}

			if token, ok := bearerToken(r); ok {
				claims, err := verifier.VerifyToken(token)
				if err != nil {
					httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired access token")
					return
				}
				next.ServeHTTP(w, httputil.WithUserID(r, claims.Subject))
				return
			}

			if token := shareToken(r); token != "" {
				user, err := shares.Resolve(r.Context(), token)
				if err != nil {
					httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired share link")
					return
				}
				next.ServeHTTP(w, httputil.WithUserID(r, user.ID))
				return
			}

			httputil.RespondError(w, http.StatusUnauthorized, "authentication required")
		})
	}
}

func isPublicPath(r *http.Request) bool {
	switch {
	case r.URL.Path == "/health":
		return true
	case r.Method == http.MethodPost && r.URL.Path == "/api/users":
		// Registration must work before any credential exists
		return true
	case strings.HasPrefix(r.URL.Path, "/share/"):
		// Redemption authenticates by the token in the path itself
		return true
	}
	return false
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return "", false
	}
	return token, true
}

func shareToken(r *http.Request) string {
	if token := r.Header.Get(ShareHeaderName); token != "" {
		return token
	}
	if cookie, err := r.Cookie(ShareCookieName); err == nil {
		return cookie.Value
	}
	return ""
}
