package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/Mainadeveloper/food-waste-app/internal/auth"
	"github.com/Mainadeveloper/food-waste-app/internal/metrics"
	"github.com/Mainadeveloper/food-waste-app/internal/models"
	"github.com/Mainadeveloper/food-waste-app/internal/recommender"
)

type loginData struct {
	Error  string
	Notice string
}

type foodOption struct {
	Name     string
	Selected bool
}

type dashboardData struct {
	Username string
	People   int
	Foods    []foodOption
	Warning  string
	Result   *models.Recommendation
}

// Home dispatches on the session state: logged out visitors get the
// login/signup page, active sessions the dashboard, and freshly logged-out
// ones the farewell screen.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	claims := h.session(r)
	switch {
	case claims == nil:
		h.render(w, "login.html", loginData{})
	case claims.State == auth.StateActive:
		h.renderDashboard(w, claims.Username, dashboardData{People: 1})
	case claims.State == auth.StatePostLogout:
		h.render(w, "farewell.html", nil)
	default:
		h.clearSession(w)
		h.render(w, "login.html", loginData{})
	}
}

// Login verifies the submitted credentials. Success records the login in the
// credential store and the audit log and moves the session to active; failure
// re-renders the login page with an inline error and changes nothing.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	user, err := h.authenticator.Authenticate(r.Context(), username, password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			h.logger.Error("Login failed", "username", username, "error", err)
		}
		metrics.Logins.WithLabelValues("invalid").Inc()
		h.render(w, "login.html", loginData{Error: "Invalid credentials"})
		return
	}

	if err := h.store.RecordLogin(r.Context(), user.Username); err != nil {
		h.logger.Warn("Failed to record login count", "username", user.Username, "error", err)
	}
	if err := h.store.AppendLogin(r.Context(), user.Username, time.Now()); err != nil {
		h.logger.Warn("Failed to append audit entry", "username", user.Username, "error", err)
	}

	if err := h.setSession(w, user.Username, auth.StateActive); err != nil {
		h.logger.Error("Failed to issue session", "username", user.Username, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	metrics.Logins.WithLabelValues("ok").Inc()
	h.logger.Info("User logged in", "username", user.Username)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Signup creates a new account. The user is not logged in automatically;
// both outcomes re-render the login page with an inline message.
func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	_, err := h.authenticator.Register(r.Context(), username, password)
	switch {
	case err == nil:
		metrics.Signups.WithLabelValues("ok").Inc()
		h.logger.Info("User registered", "username", username)
		h.render(w, "login.html", loginData{Notice: "Account created. Please login."})
	case errors.Is(err, auth.ErrUsernameExists):
		metrics.Signups.WithLabelValues("duplicate").Inc()
		h.render(w, "login.html", loginData{Error: "Username already exists."})
	case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrMissingFields):
		metrics.Signups.WithLabelValues("invalid").Inc()
		h.render(w, "login.html", loginData{Error: err.Error()})
	default:
		h.logger.Error("Signup failed", "username", username, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// Plan computes a quantity recommendation for the submitted headcount and
// food selection. Requires an active session.
func (h *Handler) Plan(w http.ResponseWriter, r *http.Request) {
	claims := h.session(r)
	if claims == nil || claims.State != auth.StateActive {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	people, err := strconv.Atoi(r.FormValue("people"))
	if err != nil || people < 1 {
		h.renderDashboard(w, claims.Username, dashboardData{
			People:  1,
			Warning: "Number of people must be at least 1.",
		})
		return
	}

	foods := h.selectedFoods(r.Form["foods"])
	data := dashboardData{People: people}

	result, err := h.recommender.Recommend(models.PlanRequest{
		People: people,
		Foods:  foods,
		Month:  time.Now().Month(),
	})
	switch {
	case errors.Is(err, recommender.ErrNoFoodsSelected):
		data.Warning = "Please select at least one food type."
	case err != nil:
		h.logger.Error("Recommendation failed", "username", claims.Username, "error", err)
		data.Warning = "Could not compute a recommendation. Please try again."
	default:
		data.Result = result
		mode := "ratio"
		if result.FromModel {
			mode = "model"
		}
		metrics.Plans.WithLabelValues(mode).Inc()
	}

	h.renderDashboard(w, claims.Username, data, foods...)
}

// Logout moves the session to the post-logout state; the username is dropped
// from the session entirely.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.setSession(w, "", auth.StatePostLogout); err != nil {
		h.logger.Error("Failed to issue post-logout session", "error", err)
		h.clearSession(w)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Return leaves the farewell screen and goes back to the login page.
func (h *Handler) Return(w http.ResponseWriter, r *http.Request) {
	h.clearSession(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// selectedFoods filters the submitted values to the fixed vocabulary,
// preserving the vocabulary's order and dropping duplicates.
func (h *Handler) selectedFoods(submitted []string) []string {
	chosen := make(map[string]bool, len(submitted))
	for _, f := range submitted {
		chosen[f] = true
	}
	var foods []string
	for _, f := range h.foods {
		if chosen[f] {
			foods = append(foods, f)
		}
	}
	return foods
}

func (h *Handler) renderDashboard(w http.ResponseWriter, username string, data dashboardData, selected ...string) {
	chosen := make(map[string]bool, len(selected))
	for _, f := range selected {
		chosen[f] = true
	}
	data.Username = username
	data.Foods = make([]foodOption, len(h.foods))
	for i, f := range h.foods {
		data.Foods[i] = foodOption{Name: f, Selected: chosen[f]}
	}
	h.render(w, "dashboard.html", data)
}
