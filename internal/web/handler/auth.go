package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jurdabos/countries-visited/internal/services/auth"
	"github.com/jurdabos/countries-visited/internal/web/middleware"
	"github.com/jurdabos/countries-visited/internal/web/templates/pages"
)

// AuthHandler handles authentication pages and actions
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// LoginPage renders the login page
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetSession(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := pages.LoginData{
		PageData: pageData(r, "Log in"),
		Next:     r.URL.Query().Get("next"),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Login(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// RegisterPage renders the registration page
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	if middleware.GetSession(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	data := pages.RegisterData{
		PageData:    pageData(r, "Register"),
		FieldErrors: make(map[string]string),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Register(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLoginError(w, r, "Invalid form data", "", "")
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	next := r.FormValue("next")

	if username == "" || password == "" {
		h.renderLoginError(w, r, "Username and password are required", username, next)
		return
	}

	session, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		h.renderLoginError(w, r, "Invalid username or password", username, next)
		return
	}

	h.setSessionCookie(w, session.Token)
	middleware.SetFlash(w, "success", "Welcome back, "+username+"!")
	redirectNext(w, r, next)
}

// Register handles registration form submission
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderRegisterError(w, r, "Invalid form data", "", nil)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	passwordConfirm := r.FormValue("password_confirm")

	fieldErrors := make(map[string]string)

	if username == "" {
		fieldErrors["username"] = "Username is required"
	} else if len(username) < 3 {
		fieldErrors["username"] = "Username must be at least 3 characters"
	} else if len(username) > 20 {
		fieldErrors["username"] = "Username must be at most 20 characters"
	}

	if password == "" {
		fieldErrors["password"] = "Password is required"
	} else if len(password) < 8 {
		fieldErrors["password"] = "Password must be at least 8 characters"
	}

	if password != passwordConfirm {
		fieldErrors["password_confirm"] = "Passwords do not match"
	}

	if len(fieldErrors) > 0 {
		h.renderRegisterError(w, r, "", username, fieldErrors)
		return
	}

	session, err := h.authService.Register(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, auth.ErrUsernameExists) {
			fieldErrors["username"] = "Username already taken"
			h.renderRegisterError(w, r, "", username, fieldErrors)
		} else {
			h.renderRegisterError(w, r, "Registration failed", username, nil)
		}
		return
	}

	h.setSessionCookie(w, session.Token)
	middleware.SetFlash(w, "success", "Account created! Welcome, "+username+"!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// CreateGuest starts an anonymous session
func (h *AuthHandler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	session := h.authService.CreateGuestSession()

	h.setSessionCookie(w, session.Token)
	middleware.SetFlash(w, "info", "Browsing as guest")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout handles logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		h.authService.InvalidateSession(cookie.Value)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	middleware.SetFlash(w, "info", "You have been logged out")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   86400, // matches the session TTL
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func redirectNext(w http.ResponseWriter, r *http.Request, next string) {
	if next != "" && strings.HasPrefix(next, "/") {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, r *http.Request, errorMsg, username, next string) {
	data := pages.LoginData{
		PageData: pageData(r, "Log in"),
		Username: username,
		Error:    errorMsg,
		Next:     next,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Login(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

func (h *AuthHandler) renderRegisterError(w http.ResponseWriter, r *http.Request, errorMsg, username string, fieldErrors map[string]string) {
	if fieldErrors == nil {
		fieldErrors = make(map[string]string)
	}

	data := pages.RegisterData{
		PageData:    pageData(r, "Register"),
		Username:    username,
		Error:       errorMsg,
		FieldErrors: fieldErrors,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Register(data).Render(r.Context(), w); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
