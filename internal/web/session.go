package web

import (
	"net/http"

	"github.com/Mainadeveloper/food-waste-app/internal/auth"
)

const sessionCookie = "fp_session"

// session returns the validated session claims for the request, or nil when
// the visitor is logged out (no cookie, or an invalid/expired one).
func (h *Handler) session(r *http.Request) *auth.SessionClaims {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil
	}
	claims, err := h.sessions.Validate(cookie.Value)
	if err != nil {
		return nil
	}
	return claims
}

// setSession issues a fresh session cookie in the given state.
func (h *Handler) setSession(w http.ResponseWriter, username string, state auth.SessionState) error {
	token, err := h.sessions.Issue(username, state)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// clearSession removes the session cookie, returning the visitor to the
// logged-out state.
func (h *Handler) clearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
