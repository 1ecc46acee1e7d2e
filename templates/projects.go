package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

func ProjectListPage(data ProjectListData) templ.Component {
	return Layout("Obras", data.Header, ProjectListContent(data))
}

func ProjectListContent(data ProjectListData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if err := pageTitle("Obras", "/projects/create", "Nueva obra").Render(ctx, w); err != nil {
			return err
		}
		if len(data.Items) == 0 {
			return emptyState("Aún no hay obras registradas.").Render(ctx, w)
		}
		if _, err := fmt.Fprintf(w, `<p class="muted">%d obra(s)</p>
<table class="list">
<thead><tr><th>Obra</th><th>Referencia</th><th>Cliente</th><th>Estado</th><th>Cotización</th><th>Avance</th><th>Actualizada</th><th></th></tr></thead>
<tbody>`, data.Total); err != nil {
			return err
		}
		for _, item := range data.Items {
			if _, err := fmt.Fprintf(w, `<tr><td><a href="/projects/%s">%s</a></td><td>%s</td><td>%s</td><td>`,
				esc(item.ID), esc(item.Name), esc(item.RefNumber), esc(item.ClientName)); err != nil {
				return err
			}
			if err := statusBadge(w, item.Status); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, `</td><td>%s</td><td><progress max="100" value="%d"></progress> %d%%</td><td>%s</td>`,
				esc(item.QuoteNumber), item.Progress, item.Progress, esc(item.UpdatedAgo)); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w,
				`<td><a class="btn" href="/projects/%s/edit">Editar</a> <button class="btn danger" hx-delete="/projects/%s" hx-confirm="¿Eliminar esta obra y todos sus documentos?" hx-target="closest tr" hx-swap="outerHTML">Eliminar</button></td></tr>`,
				esc(item.ID), esc(item.ID)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})
}

func ProjectFormPage(data ProjectFormData) templ.Component {
	title := "Nueva obra"
	action := "/projects"
	if data.ID != "" {
		title = "Editar obra"
		action = fmt.Sprintf("/projects/%s/save", data.ID)
	}
	return Layout(title, data.Header, component(func(ctx context.Context, w io.Writer) error {
		if err := pageTitle(title, "", "").Render(ctx, w); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<form method="post" action="%s" class="form">
<label>Nombre<input type="text" name="name" value="%s" required></label>`, esc(action), esc(data.Name)); err != nil {
			return err
		}
		if err := fieldError(w, data.Errors, "name"); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<label>Referencia<input type="text" name="reference_number" value="%s"></label>`, esc(data.RefNumber)); err != nil {
			return err
		}
		if err := fieldError(w, data.Errors, "reference_number"); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<label>Cliente<select name="client"><option value="">—</option>`); err != nil {
			return err
		}
		for _, c := range data.Clients {
			selected := ""
			if c.ID == data.ClientID {
				selected = " selected"
			}
			if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, esc(c.ID), selected, esc(c.Name)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</select></label><label>Estado<select name="status">`); err != nil {
			return err
		}
		for _, s := range []string{"active", "closed"} {
			selected := ""
			if s == data.Status {
				selected = " selected"
			}
			if _, err := fmt.Fprintf(w, `<option value="%s"%s>%s</option>`, s, selected, s); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `</select></label>
<label>Ciudad<input type="text" name="city" value="%s"></label>
<button type="submit" class="btn primary">Guardar</button>
</form>`, esc(data.City)); err != nil {
			return err
		}
		return nil
	}))
}

func ProjectViewPage(data ProjectViewData) templ.Component {
	return Layout(data.Name, data.Header, component(func(ctx context.Context, w io.Writer) error {
		if err := pageTitle(data.Name, fmt.Sprintf("/projects/%s/edit", data.ID), "Editar").Render(ctx, w); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<dl class="details">
<dt>Referencia</dt><dd>%s</dd>
<dt>Cliente</dt><dd>%s</dd>
<dt>Ciudad</dt><dd>%s</dd>
<dt>Estado</dt><dd>`, esc(data.RefNumber), esc(data.ClientName), esc(data.City)); err != nil {
			return err
		}
		if err := statusBadge(w, data.Status); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</dd></dl>`); err != nil {
			return err
		}

		if data.QuoteNumber != "" {
			if _, err := fmt.Fprintf(w, `<section class="summary">
<h2>Contrato</h2>
<p>Cotización autorizada %s · %s</p>
<p>Avance de obra: <progress max="100" value="%d"></progress> %d%%</p>
</section>`, esc(data.QuoteNumber), esc(data.QuoteTotal), data.Progress, data.Progress); err != nil {
				return err
			}
		} else {
			if err := emptyState("La obra aún no tiene cotización autorizada.").Render(ctx, w); err != nil {
				return err
			}
		}

		_, err := fmt.Fprintf(w, `<nav class="quicklinks">
<a href="/projects/%s/quotes">Cotizaciones</a>
<a href="/projects/%s/actas">Actas (%d)</a>
<a href="/projects/%s/cortes">Cortes (%d)</a>
<a href="/projects/%s/execution">Tabla de ejecución</a>
</nav>`, esc(data.ID), esc(data.ID), data.ActaCount, esc(data.ID), data.CorteCount, esc(data.ID))
		return err
	}))
}
