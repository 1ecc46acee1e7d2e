package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// esc shortens templ.EscapeString for the components below.
func esc(s string) string {
	return templ.EscapeString(s)
}

// component adapts a render func to templ.Component.
func component(fn func(ctx context.Context, w io.Writer) error) templ.Component {
	return templ.ComponentFunc(fn)
}

// Layout wraps page content in the base HTML shell: head, htmx, top
// navigation with the project switcher, toast container.
func Layout(title string, header HeaderData, content templ.Component) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="es">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>%s · ObraTrack</title>
<link rel="stylesheet" href="/static/app.css">
<script src="https://unpkg.com/htmx.org@1.9.12" integrity="sha384-ujb1lZYygJmzgSwoxRggbCHcjc0rB2XoQrxeTUQyRjrOnlCoYta87iKBWq3EsdM2" crossorigin="anonymous"></script>
<script src="/static/toast.js" defer></script>
</head>
<body>
`, esc(title)); err != nil {
			return err
		}
		if err := navBar(header).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<main id="main" class="container">`); err != nil {
			return err
		}
		if err := content.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main>
<div id="toast-container"></div>
</body>
</html>
`)
		return err
	})
}

func navBar(header HeaderData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<nav class="topnav">
<a class="brand" href="/projects">ObraTrack</a>
<a href="/projects">Obras</a>
<a href="/clients">Clientes</a>
`); err != nil {
			return err
		}

		if ap := header.ActiveProject; ap != nil {
			if _, err := fmt.Fprintf(w, `<a href="/projects/%s/quotes">Cotizaciones</a>
<a href="/projects/%s/actas">Actas</a>
<a href="/projects/%s/cortes">Cortes</a>
<a href="/projects/%s/execution">Ejecución</a>
`, esc(ap.ID), esc(ap.ID), esc(ap.ID), esc(ap.ID)); err != nil {
				return err
			}
		}

		if _, err := io.WriteString(w, `<div class="project-switcher"><details><summary>`); err != nil {
			return err
		}
		if header.ActiveProject != nil {
			if _, err := io.WriteString(w, esc(header.ActiveProject.Name)); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w, "Sin obra activa"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</summary><ul>`); err != nil {
			return err
		}
		for _, p := range header.Projects {
			class := ""
			if p.IsActive {
				class = ` class="active"`
			}
			if _, err := fmt.Fprintf(w,
				`<li%s><form method="post" action="/projects/%s/activate"><button type="submit">%s</button></form></li>`,
				class, esc(p.ID), esc(p.Name)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</ul></details></div>
</nav>
`)
		return err
	})
}

// pageTitle renders the standard page heading with an optional action link.
func pageTitle(title, actionHref, actionLabel string) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<header class="page-header"><h1>%s</h1>`, esc(title)); err != nil {
			return err
		}
		if actionHref != "" {
			if _, err := fmt.Fprintf(w, `<a class="btn primary" href="%s">%s</a>`, esc(actionHref), esc(actionLabel)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</header>`)
		return err
	})
}

// emptyState renders the placeholder block used by list pages with no rows.
func emptyState(message string) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<p class="empty-state">%s</p>`, esc(message))
		return err
	})
}

// fieldError renders a validation message under a form field, if any.
func fieldError(w io.Writer, errors map[string]string, field string) error {
	if msg, ok := errors[field]; ok && msg != "" {
		_, err := fmt.Fprintf(w, `<p class="field-error">%s</p>`, esc(msg))
		return err
	}
	return nil
}

// statusBadge renders a colored status pill.
func statusBadge(w io.Writer, status string) error {
	_, err := fmt.Fprintf(w, `<span class="badge badge-%s">%s</span>`, esc(status), esc(status))
	return err
}
