package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

func ClientListPage(data ClientListData) templ.Component {
	return Layout("Clientes", data.Header, ClientListContent(data))
}

func ClientListContent(data ClientListData) templ.Component {
	return component(func(ctx context.Context, w io.Writer) error {
		if err := pageTitle("Clientes", "/clients/create", "Nuevo cliente").Render(ctx, w); err != nil {
			return err
		}
		if len(data.Items) == 0 {
			return emptyState("Aún no hay clientes registrados.").Render(ctx, w)
		}
		if _, err := fmt.Fprintf(w, `<p class="muted">%d cliente(s)</p>
<table class="list">
<thead><tr><th>Nombre</th><th>NIT</th><th>Contacto</th><th>Teléfono</th><th>Ciudad</th><th></th></tr></thead>
<tbody>`, data.Total); err != nil {
			return err
		}
		for _, item := range data.Items {
			if _, err := fmt.Fprintf(w,
				`<tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td><a class="btn" href="/clients/%s/edit">Editar</a> <button class="btn danger" hx-delete="/clients/%s" hx-confirm="¿Eliminar este cliente?" hx-target="closest tr" hx-swap="outerHTML">Eliminar</button></td></tr>`,
				esc(item.Name), esc(item.NIT), esc(item.ContactName), esc(item.Phone), esc(item.City), esc(item.ID), esc(item.ID)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</tbody></table>`)
		return err
	})
}

func ClientFormPage(data ClientFormData) templ.Component {
	title := "Nuevo cliente"
	action := "/clients"
	if data.ID != "" {
		title = "Editar cliente"
		action = fmt.Sprintf("/clients/%s/save", data.ID)
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
		if _, err := fmt.Fprintf(w, `<label>NIT<input type="text" name="nit" value="%s"></label>
<label>Contacto<input type="text" name="contact_name" value="%s"></label>
<label>Email<input type="email" name="email" value="%s"></label>`,
			esc(data.NIT), esc(data.ContactName), esc(data.Email)); err != nil {
			return err
		}
		if err := fieldError(w, data.Errors, "email"); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, `<label>Teléfono<input type="text" name="phone" value="%s"></label>
<label>Ciudad<input type="text" name="city" value="%s"></label>
<button type="submit" class="btn primary">Guardar</button>
</form>`, esc(data.Phone), esc(data.City))
		return err
	}))
}
