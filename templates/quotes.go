package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

func QuoteListPage(data QuoteListData) templ.Component {
	return Layout("Cotizaciones", data.Header, QuoteListContent(data))
}

func QuoteListContent(data QuoteListData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if err := pageTitle("Cotizaciones", fmt.Sprintf("/projects/%s/quotes/create", data.ProjectID), "Nueva cotización").Render(ctx, w); err != nil {
			return err
		}
		if len(data.Items) == 0 {
			return emptyState("La obra no tiene cotizaciones todavía.").Render(ctx, w)
		}
		if _, err := fmt.Fprintf(w, `<p class="muted">%d cotización(es)</p>
<table class="list">
<thead><tr><th>Número</th><th>Estado</th><th>Fecha</th><th>Ítems</th><th>Total</th><th></th></tr></thead>
<tbody>`, data.Total); err != nil {
			return err
		}
		for _, item := range data.Items {
			if _, err := fmt.Fprintf(w, `<tr><td><a href="/projects/%s/quotes/%s">%s</a></td><td>`,
				esc(data.ProjectID), esc(item.ID), esc(item.Number)); err != nil {
				return err
			}
			if err := statusBadge(w, item.Status); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, `</td><td>%s</td><td>%d</td><td>%s</td><td><a class="btn" href="/projects/%s/quotes/%s/export/excel">Excel</a> <a class="btn" href="/projects/%s/quotes/%s/export/pdf">PDF</a></td></tr>`,
				esc(item.CreatedDate), item.ItemCount, esc(item.Total),
				esc(data.ProjectID), esc(item.ID), esc(data.ProjectID), esc(item.ID)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})
}

func QuoteFormPage(data QuoteFormData) templ.Component {
	title := "Nueva cotización"
	action := fmt.Sprintf("/projects/%s/quotes", data.ProjectID)
	submit := "Crear cotización"
	if data.ID != "" {
		title = "Editar cotización " + data.Number
		action = fmt.Sprintf("/projects/%s/quotes/%s/save", data.ProjectID, data.ID)
		submit = "Guardar cambios"
	}
	return Layout(title, data.Header, component(func(ctx context.Context, w io.Writer) error {
		if err := pageTitle(title, "", "").Render(ctx, w); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, `<form method="post" action="%s" class="form stacked">`, esc(action)); err != nil {
			return err
		}
		if data.ID == "" {
			if _, err := io.WriteString(w, `<p class="muted">El número consecutivo se asigna al guardar.</p>`); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `<label>Notas<textarea name="notes">%s</textarea></label>
<label>Válida hasta<input type="date" name="valid_until" value="%s"></label>
<button type="submit" class="btn primary">%s</button>
</form>`, esc(data.Notes), esc(data.ValidUntil), esc(submit)); err != nil {
			return err
		}
		return nil
	}))
}

func QuoteViewPage(data QuoteViewData) templ.Component {
	return Layout(data.Number, data.Header, QuoteViewContent(data))
}

func QuoteViewContent(data QuoteViewData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if err := pageTitle("Cotización "+data.Number, "", "").Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<p>`); err != nil {
			return err
		}
		if err := statusBadge(w, data.Status); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, ` <span class="muted">%s</span></p>`, esc(data.CreatedDate)); err != nil {
			return err
		}
		if data.Notes != "" {
			if _, err := fmt.Fprintf(w, `<p class="notes">%s</p>`, esc(data.Notes)); err != nil {
				return err
			}
		}

		if _, err := fmt.Fprintf(w, `<div class="actions">
<a class="btn" href="/projects/%s/quotes/%s/export/excel">Excel</a>
<a class="btn" href="/projects/%s/quotes/%s/export/pdf">PDF</a>`,
			esc(data.ProjectID), esc(data.ID), esc(data.ProjectID), esc(data.ID)); err != nil {
			return err
		}
		if data.Editable {
			if _, err := fmt.Fprintf(w, `<a class="btn" href="/projects/%s/quotes/%s/edit">Editar</a>`,
				esc(data.ProjectID), esc(data.ID)); err != nil {
				return err
			}
		}
		if data.CanAuthorize {
			if _, err := fmt.Fprintf(w,
				`<button class="btn primary" hx-post="/projects/%s/quotes/%s/authorize" hx-target="#main" hx-confirm="¿Autorizar esta cotización como alcance contratado?">Autorizar</button>`,
				esc(data.ProjectID), esc(data.ID)); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</div>`); err != nil {
			return err
		}

		if err := QuoteItemsTable(data).Render(ctx, w); err != nil {
			return err
		}

		if data.Editable {
			if _, err := fmt.Fprintf(w, `<form class="form inline" hx-post="/projects/%s/quotes/%s/items" hx-target="#quote-items" hx-swap="outerHTML">
<input type="text" name="description" placeholder="Descripción" required>
<input type="text" name="unit" placeholder="Und" size="5">
<input type="number" name="qty" placeholder="Cant." step="any" min="0" required>
<input type="number" name="unit_price" placeholder="Vr. unitario" step="any" min="0" required>
<button type="submit" class="btn">Agregar ítem</button>
</form>`, esc(data.ProjectID), esc(data.ID)); err != nil {
				return err
			}
		}
		return nil
	})
}

// QuoteItemsTable renders the item table plus totals; also served as an HTMX
// partial after item add/delete.
func QuoteItemsTable(data QuoteViewData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<div id="quote-items">`); err != nil {
			return err
		}
		if len(data.Items) == 0 {
			if err := emptyState("La cotización no tiene ítems.").Render(ctx, w); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w, `<table class="list">
<thead><tr><th>#</th><th>Descripción</th><th>Und</th><th>Cant.</th><th>Vr. Unitario</th><th>Vr. Total</th><th></th></tr></thead>
<tbody>`); err != nil {
				return err
			}
			for _, item := range data.Items {
				if _, err := fmt.Fprintf(w, `<tr><td>%d</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>`,
					item.SortOrder, esc(item.Description), esc(item.Unit), esc(item.Qty), esc(item.UnitPrice), esc(item.LineTotal)); err != nil {
					return err
				}
				if data.Editable {
					if _, err := fmt.Fprintf(w,
						`<button class="btn danger" hx-delete="/projects/%s/quotes/%s/items/%s" hx-target="#quote-items" hx-swap="outerHTML">×</button>`,
						esc(data.ProjectID), esc(data.ID), esc(item.ID)); err != nil {
						return err
					}
				}
				if _, err := io.WriteString(w, `</td></tr>`); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, `</tbody>
<tfoot>
<tr><td colspan="5" class="label">Subtotal</td><td>%s</td><td></td></tr>
<tr><td colspan="5" class="label">AIU (20%%)</td><td>%s</td><td></td></tr>
<tr><td colspan="5" class="label">IVA sobre AIU</td><td>%s</td><td></td></tr>
<tr class="grand"><td colspan="5" class="label">Total</td><td>%s</td><td></td></tr>
</tfoot>
</table>`, esc(data.Subtotal), esc(data.AdminSurcharge), esc(data.Tax), esc(data.GrandTotal)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}
