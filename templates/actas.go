package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

func ActaListPage(data ActaListData) templ.Component {
	return Layout("Actas de entrega", data.Header, ActaListContent(data))
}

func ActaListContent(data ActaListData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if err := pageTitle("Actas de entrega", fmt.Sprintf("/projects/%s/actas/create", data.ProjectID), "Nueva acta").Render(ctx, w); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<div class="actions"><a class="btn" href="/projects/%s/actas/export/excel">Matriz de ejecución (Excel)</a></div>`,
			esc(data.ProjectID)); err != nil {
			return err
		}
		if len(data.Items) == 0 {
			return emptyState("La obra no tiene actas registradas.").Render(ctx, w)
		}
		if _, err := fmt.Fprintf(w, `<p class="muted">%d acta(s)</p>
<table class="list">
<thead><tr><th>Acta</th><th>Entrega</th><th>Estado</th><th>Líneas</th><th>Notas</th><th></th></tr></thead>
<tbody>`, data.Total); err != nil {
			return err
		}
		for _, item := range data.Items {
			if _, err := fmt.Fprintf(w, `<tr><td><a href="/projects/%s/actas/%s">Acta %d</a></td><td>%s</td><td>`,
				esc(data.ProjectID), esc(item.ID), item.Sequence, esc(item.DeliveryDate)); err != nil {
				return err
			}
			if err := statusBadge(w, item.Status); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, `</td><td>%d</td><td>%s</td><td>`, item.LineCount, esc(item.Notes)); err != nil {
				return err
			}
			if item.Status != "cut" {
				if _, err := fmt.Fprintf(w,
					`<button class="btn danger" hx-delete="/projects/%s/actas/%s" hx-confirm="¿Eliminar esta acta?" hx-target="closest tr" hx-swap="outerHTML">Eliminar</button>`,
					esc(data.ProjectID), esc(item.ID)); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</td></tr>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})
}

func ActaFormPage(data ActaFormData) templ.Component {
	return Layout("Nueva acta", data.Header, component(func(ctx context.Context, w io.Writer) error {
		if err := pageTitle(fmt.Sprintf("Acta de entrega %d", data.Sequence), "", "").Render(ctx, w); err != nil {
			return err
		}
		if len(data.ScopeRows) == 0 {
			return emptyState("La obra no tiene cotización autorizada; no hay alcance contra el cual registrar entregas.").Render(ctx, w)
		}
		if _, err := fmt.Fprintf(w, `<form method="post" action="/projects/%s/actas" class="form">
<label>Fecha de entrega<input type="date" name="delivery_date" value="%s"></label>`,
			esc(data.ProjectID), esc(data.DeliveryDate)); err != nil {
			return err
		}
		if err := fieldError(w, data.Errors, "delivery_date"); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<label>Notas<textarea name="notes"></textarea></label>
<table class="list">
<thead><tr><th>Ítem contratado</th><th>Und</th><th>Contratado</th><th>Ejecutado</th><th>Saldo</th><th>Cantidad entregada</th></tr></thead>
<tbody>`); err != nil {
			return err
		}
		for _, row := range data.ScopeRows {
			if _, err := fmt.Fprintf(w,
				`<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td><input type="number" step="any" min="0" name="qty_%s" placeholder="0"></td></tr>`,
				esc(row.Description), esc(row.Unit), esc(row.Contracted), esc(row.Executed), esc(row.Remaining), esc(row.QuoteItemID)); err != nil {
				return err
			}
		}
		if err := fieldError(w, data.Errors, "lines"); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</tbody></table>
<fieldset class="freetext">
<legend>Línea adicional (sin ítem contratado)</legend>
<input type="text" name="extra_description" placeholder="Descripción">
<input type="text" name="extra_unit" placeholder="Und" size="5">
<input type="number" step="any" min="0" name="extra_qty" placeholder="0">
</fieldset>
<button type="submit" class="btn primary">Guardar acta</button>
</form>`)
		return err
	}))
}

func ActaViewPage(data ActaViewData) templ.Component {
	title := fmt.Sprintf("Acta %d", data.Sequence)
	return Layout(title, data.Header, component(func(ctx context.Context, w io.Writer) error {
		if err := pageTitle(title, "", "").Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<p>`); err != nil {
			return err
		}
		if err := statusBadge(w, data.Status); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, ` <span class="muted">Entrega: %s</span></p>`, esc(data.DeliveryDate)); err != nil {
			return err
		}
		if data.Notes != "" {
			if _, err := fmt.Fprintf(w, `<p class="notes">%s</p>`, esc(data.Notes)); err != nil {
				return err
			}
		}
		if len(data.Lines) == 0 {
			return emptyState("El acta no tiene líneas.").Render(ctx, w)
		}
		if _, err := io.WriteString(w, `<table class="list">
<thead><tr><th>Descripción</th><th>Und</th><th>Cantidad</th><th></th></tr></thead>
<tbody>`); err != nil {
			return err
		}
		for _, line := range data.Lines {
			note := ""
			if !line.FromScope {
				note = `<span class="badge badge-warning">sin ítem contratado</span>`
			}
			if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
				esc(line.Description), esc(line.Unit), esc(line.Qty), note); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	}))
}
