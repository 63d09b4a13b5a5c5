// Package layout holds the shared page chrome. Components are written
// against the templ runtime directly rather than generated from .templ
// sources.
package layout

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// FlashMessage is a one-shot notification shown at the top of the page
type FlashMessage struct {
	Type    string // "success", "error", "info"
	Message string
}

// PageData holds the data every page needs
type PageData struct {
	Title    string
	Username string
	LoggedIn bool
	Flash    *FlashMessage
}

// Base wraps page content in the common chrome: header, nav, flash
func Base(data PageData, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
				`<meta name="viewport" content="width=device-width, initial-scale=1">`+
				`<title>%s | Countries Visited</title>`+
				`<link rel="stylesheet" href="/static/style.css"></head><body>`,
			templ.EscapeString(data.Title)); err != nil {
			return err
		}

		if err := nav(data).Render(ctx, w); err != nil {
			return err
		}

		if data.Flash != nil {
			if _, err := fmt.Fprintf(w, `<div class="flash flash-%s">%s</div>`,
				templ.EscapeString(data.Flash.Type),
				templ.EscapeString(data.Flash.Message)); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `<main class="container">`); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

func nav(data PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w,
			`<nav class="nav"><a class="brand" href="/">Countries Visited</a><div class="nav-links">`); err != nil {
			return err
		}

		if data.LoggedIn {
			if _, err := fmt.Fprintf(w,
				`<span class="nav-user">%s</span>`+
					`<form method="post" action="/auth/logout" class="inline">`+
					`<button type="submit">Log out</button></form>`,
				templ.EscapeString(data.Username)); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w,
				`<a href="/login">Log in</a><a href="/register">Register</a>`); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</div></nav>`)
		return err
	})
}
