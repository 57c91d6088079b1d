package web

import (
	"net/http"

	"github.com/gorilla/csrf"

	"coachpanel/internal/adapters/http/middleware"
	"coachpanel/internal/application/orchestrators"
)

// handleLogin handles GET (form) and POST (authenticate) for /login
func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		renderTemplate(w, r, "login.html", map[string]any{
			"CSRFToken": csrf.Token(r),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.LoginInput{
			Username: r.FormValue("Username"),
			Password: r.FormValue("Password"),
		}
		deps := orchestrators.LoginDeps{
			Auth:     services.Auth,
			Sessions: services.Sessions,
		}

		result, err := orchestrators.ExecuteLogin(r.Context(), input, deps)
		if err != nil {
			renderTemplate(w, r, "login.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Username":  input.Username,
				"Error":     userMessage(err),
			})
			return
		}

		middleware.SetSessionCookie(w, result.SessionToken)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleLogout handles POST /logout
func handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		deps := orchestrators.LogoutDeps{Sessions: services.Sessions}
		if err := orchestrators.ExecuteLogout(r.Context(), sess.Token, deps); err != nil {
			internalError(w, err)
			return
		}
	}

	middleware.ClearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// handleForgotPassword handles GET (form) and POST (request OTP) for /forgot-password
func handleForgotPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		renderTemplate(w, r, "forgot_password.html", map[string]any{
			"CSRFToken": csrf.Token(r),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		email := r.FormValue("Email")
		deps := orchestrators.ForgotPasswordDeps{Auth: services.Auth}
		if err := orchestrators.ExecuteForgotPassword(r.Context(), email, deps); err != nil {
			renderTemplate(w, r, "forgot_password.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Email":     email,
				"Error":     userMessage(err),
			})
			return
		}

		// OTP sent; move to the confirmation step with the email prefilled.
		http.Redirect(w, r, "/reset-password?email="+urlQueryEscape(email), http.StatusSeeOther)
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleResetPassword handles GET (form) and POST (confirm OTP) for /reset-password
func handleResetPassword(w http.ResponseWriter, r *http.Request) {
	if r.Method == "GET" {
		renderTemplate(w, r, "reset_password.html", map[string]any{
			"CSRFToken": csrf.Token(r),
			"Email":     r.URL.Query().Get("email"),
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.ResetPasswordInput{
			Email:           r.FormValue("Email"),
			OTP:             r.FormValue("OTP"),
			NewPassword:     r.FormValue("NewPassword"),
			ConfirmPassword: r.FormValue("ConfirmPassword"),
		}
		deps := orchestrators.ResetPasswordDeps{Auth: services.Auth}
		if err := orchestrators.ExecuteResetPassword(r.Context(), input, deps); err != nil {
			renderTemplate(w, r, "reset_password.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Email":     input.Email,
				"Error":     userMessage(err),
			})
			return
		}

		renderTemplate(w, r, "login.html", map[string]any{
			"CSRFToken": csrf.Token(r),
			"Notice":    "Password updated. Sign in with your new password.",
		})
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}

// handleSettings handles GET (form) and POST (save) for /settings
func handleSettings(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.GetSessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if r.Method == "GET" {
		renderTemplate(w, r, "settings.html", map[string]any{
			"CSRFToken": csrf.Token(r),
			"Admin":     sess.Admin,
		})
		return
	}

	if r.Method == "POST" {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form submission", http.StatusBadRequest)
			return
		}

		input := orchestrators.UpdateSettingsInput{
			SessionToken:    sess.Token,
			Name:            r.FormValue("Name"),
			Email:           r.FormValue("Email"),
			CurrentPassword: r.FormValue("CurrentPassword"),
			NewPassword:     r.FormValue("NewPassword"),
			ConfirmPassword: r.FormValue("ConfirmPassword"),
		}
		deps := orchestrators.UpdateSettingsDeps{
			Auth:     services.Auth,
			Sessions: services.Sessions,
		}

		updated, err := orchestrators.ExecuteUpdateSettings(r.Context(), input, deps)
		if err != nil {
			edited := sess.Admin
			edited.Name = input.Name
			edited.Email = input.Email
			renderTemplate(w, r, "settings.html", map[string]any{
				"CSRFToken": csrf.Token(r),
				"Admin":     edited,
				"Error":     userMessage(err),
			})
			return
		}

		renderTemplate(w, r, "settings.html", map[string]any{
			"CSRFToken": csrf.Token(r),
			"Admin":     updated,
			"Notice":    "Settings saved.",
		})
		return
	}

	w.WriteHeader(http.StatusMethodNotAllowed)
}
