package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/jurdabos/countries-visited/internal/web/templates/layout"
)

// LoginData holds the login page state
type LoginData struct {
	layout.PageData
	Username string
	Error    string
	Next     string
}

// RegisterData holds the registration page state
type RegisterData struct {
	layout.PageData
	Username    string
	Error       string
	FieldErrors map[string]string
}

// Login renders the login page
func Login(data LoginData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="auth-form"><h2>Log in</h2>`); err != nil {
			return err
		}
		if data.Error != "" {
			if _, err := fmt.Fprintf(w, `<p class="form-error">%s</p>`, templ.EscapeString(data.Error)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w,
			`<form method="post" action="/login">`+
				`<input type="hidden" name="next" value="%s">`+
				`<label>Username <input type="text" name="username" value="%s" required></label>`+
				`<label>Password <input type="password" name="password" required></label>`+
				`<button type="submit">Log in</button></form>`,
			templ.EscapeString(data.Next),
			templ.EscapeString(data.Username)); err != nil {
			return err
		}
		_, err := io.WriteString(w,
			`<form method="post" action="/auth/guest"><button type="submit">Continue as guest</button></form>`+
				`<p>No account? <a href="/register">Register</a></p></section>`)
		return err
	}))
}

// Register renders the registration page
func Register(data RegisterData) templ.Component {
	return layout.Base(data.PageData, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<section class="auth-form"><h2>Register</h2>`); err != nil {
			return err
		}
		if data.Error != "" {
			if _, err := fmt.Fprintf(w, `<p class="form-error">%s</p>`, templ.EscapeString(data.Error)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w,
			`<form method="post" action="/register">`+
				`<label>Username <input type="text" name="username" value="%s" required>%s</label>`+
				`<label>Password <input type="password" name="password" required>%s</label>`+
				`<label>Confirm password <input type="password" name="password_confirm" required>%s</label>`+
				`<button type="submit">Create account</button></form>`,
			templ.EscapeString(data.Username),
			fieldError(data.FieldErrors, "username"),
			fieldError(data.FieldErrors, "password"),
			fieldError(data.FieldErrors, "password_confirm")); err != nil {
			return err
		}
		_, err := io.WriteString(w, `<p>Already registered? <a href="/login">Log in</a></p></section>`)
		return err
	}))
}

func fieldError(errors map[string]string, field string) string {
	msg, ok := errors[field]
	if !ok {
		return ""
	}
	return `<span class="field-error">` + templ.EscapeString(msg) + `</span>`
}
