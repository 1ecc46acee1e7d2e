package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

func ExecutionPage(data ExecutionPageData) templ.Component {
	return Layout("Ejecución", data.Header, ExecutionContent(data))
}

// ExecutionContent renders the execution matrix: contracted quantities, one
// column per acta, and the derived executed/remaining/over-delivered values,
// topped with the overall progress bar.
func ExecutionContent(data ExecutionPageData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if err := pageTitle("Ejecución: "+data.ProjectName, fmt.Sprintf("/projects/%s/actas/export/excel", data.ProjectID), "Exportar Excel").Render(ctx, w); err != nil {
			return err
		}
		if data.QuoteNumber == "" {
			return emptyState("La obra no tiene cotización autorizada.").Render(ctx, w)
		}
		if _, err := fmt.Fprintf(w, `<p class="muted">Cotización %s</p>
<p>Avance de obra: <progress max="100" value="%d"></progress> <strong>%d%%</strong></p>
<table class="list execution">
<thead><tr><th>Descripción</th><th>Und</th><th>Contratado</th>`,
			esc(data.QuoteNumber), data.Progress, data.Progress); err != nil {
			return err
		}
		for _, acta := range data.Actas {
			if _, err := fmt.Fprintf(w, `<th>Acta %d</th>`, acta.Sequence); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `<th>Ejecutado</th><th>Saldo</th><th>Exceso</th></tr></thead>
<tbody>`); err != nil {
			return err
		}

		writeRow := func(row ExecutionTableRow) error {
			class := ""
			if row.IsOver {
				class = ` class="over-delivered"`
			}
			if row.IsOrphan {
				class = ` class="orphan"`
			}
			if _, err := fmt.Fprintf(w, `<tr%s><td>%s</td><td>%s</td><td>%s</td>`,
				class, esc(row.Description), esc(row.Unit), esc(row.Contracted)); err != nil {
				return err
			}
			for _, qty := range row.PerActa {
				if _, err := fmt.Fprintf(w, `<td>%s</td>`, esc(qty)); err != nil {
					return err
				}
			}
			_, err := fmt.Fprintf(w, `<td>%s</td><td>%s</td><td>%s</td></tr>`,
				esc(row.ExecutedTotal), esc(row.Remaining), esc(row.OverDelivered))
			return err
		}

		for _, row := range data.Rows {
			if err := writeRow(row); err != nil {
				return err
			}
		}
		if len(data.Orphans) > 0 {
			if _, err := fmt.Fprintf(w,
				`<tr class="section"><td colspan="%d">Ejecutado sin ítem contratado</td></tr>`,
				6+len(data.Actas)); err != nil {
				return err
			}
			for _, row := range data.Orphans {
				if err := writeRow(row); err != nil {
					return err
				}
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})
}
