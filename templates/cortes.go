package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

func CorteListPage(data CorteListData) templ.Component {
	return Layout("Cortes de obra", data.Header, CorteListContent(data))
}

func CorteListContent(data CorteListData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if err := pageTitle("Cortes de obra", fmt.Sprintf("/projects/%s/cortes/create", data.ProjectID), "Nuevo corte").Render(ctx, w); err != nil {
			return err
		}
		if len(data.Items) == 0 {
			return emptyState("La obra no tiene cortes todavía.").Render(ctx, w)
		}
		if _, err := fmt.Fprintf(w, `<p class="muted">%d corte(s)</p>
<table class="list">
<thead><tr><th>Número</th><th>Estado</th><th>Fecha</th><th>Total</th><th></th></tr></thead>
<tbody>`, data.Total); err != nil {
			return err
		}
		for _, item := range data.Items {
			if _, err := fmt.Fprintf(w, `<tr><td><a href="/projects/%s/cortes/%s">%s</a></td><td>`,
				esc(data.ProjectID), esc(item.ID), esc(item.Number)); err != nil {
				return err
			}
			if err := statusBadge(w, item.Status); err != nil {
				return err
			}
			if _, err := fmt.Fprintf(w, `</td><td>%s</td><td>%s</td><td><a class="btn" href="/projects/%s/cortes/%s/export/pdf">PDF</a></td></tr>`,
				esc(item.CreatedDate), esc(item.Total), esc(data.ProjectID), esc(item.ID)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})
}

func CorteFormPage(data CorteFormData) templ.Component {
	return Layout("Nuevo corte", data.Header, component(func(ctx context.Context, w io.Writer) error {
		if err := pageTitle("Nuevo corte de obra", "", "").Render(ctx, w); err != nil {
			return err
		}
		if len(data.Actas) == 0 {
			return emptyState("No hay actas finalizadas pendientes de corte.").Render(ctx, w)
		}
		if _, err := fmt.Fprintf(w, `<form method="post" action="/projects/%s/cortes" class="form">
<p class="muted">Seleccione las actas a incluir. Las cantidades se agregan y se valoran con la cotización autorizada.</p>
<table class="list">
<thead><tr><th></th><th>Acta</th><th>Entrega</th><th>Líneas</th></tr></thead>
<tbody>`, esc(data.ProjectID)); err != nil {
			return err
		}
		for _, acta := range data.Actas {
			if _, err := fmt.Fprintf(w,
				`<tr><td><input type="checkbox" name="actas" value="%s"></td><td>Acta %d</td><td>%s</td><td>%d</td></tr>`,
				esc(acta.ID), acta.Sequence, esc(acta.DeliveryDate), acta.LineCount); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</tbody></table>`); err != nil {
			return err
		}
		if err := fieldError(w, data.Errors, "actas"); err != nil {
			return err
		}
		_, err := io.WriteString(w, `<button type="submit" class="btn primary">Crear corte</button>
</form>`)
		return err
	}))
}

func CorteViewPage(data CorteViewData) templ.Component {
	return Layout(data.Number, data.Header, component(func(ctx context.Context, w io.Writer) error {
		if err := pageTitle("Corte "+data.Number, "", "").Render(ctx, w); err != nil {
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
		if len(data.ActaSequences) > 0 {
			if _, err := io.WriteString(w, `<p class="muted">Actas incluidas:`); err != nil {
				return err
			}
			for _, seq := range data.ActaSequences {
				if _, err := fmt.Fprintf(w, ` <span class="badge">Acta %d</span>`, seq); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(w, `</p>`); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `<div class="actions"><a class="btn" href="/projects/%s/cortes/%s/export/pdf">PDF</a></div>`,
			esc(data.ProjectID), esc(data.ID)); err != nil {
			return err
		}

		if len(data.Items) == 0 {
			return emptyState("El corte no tiene líneas.").Render(ctx, w)
		}
		if _, err := io.WriteString(w, `<table class="list">
<thead><tr><th>Descripción</th><th>Und</th><th>Cant.</th><th>Vr. Unitario</th><th>Vr. Total</th></tr></thead>
<tbody>`); err != nil {
			return err
		}
		for _, item := range data.Items {
			if _, err := fmt.Fprintf(w, `<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
				esc(item.Description), esc(item.Unit), esc(item.Qty), esc(item.UnitPrice), esc(item.LineTotal)); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, `</tbody>
<tfoot>
<tr><td colspan="4" class="label">Subtotal</td><td>%s</td></tr>
<tr><td colspan="4" class="label">AIU (20%%)</td><td>%s</td></tr>
<tr><td colspan="4" class="label">IVA sobre AIU</td><td>%s</td></tr>
<tr class="grand"><td colspan="4" class="label">Total</td><td>%s</td></tr>
</tfoot>
</table>`, esc(data.Subtotal), esc(data.AdminSurcharge), esc(data.Tax), esc(data.GrandTotal)); err != nil {
			return err
		}
		if data.BilledBefore != "" {
			if _, err := fmt.Fprintf(w, `<p class="muted">Facturado en cortes anteriores: %s</p>`, esc(data.BilledBefore)); err != nil {
				return err
			}
		}
		return nil
	}))
}
