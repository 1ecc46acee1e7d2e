// Package services provides pricing, execution aggregation, formatting and
// document generation for quotes, actas de entrega and cortes.
package services

// AIURate is the administrative/contingency/profit surcharge applied to the
// subtotal of every quote and corte.
const AIURate = 0.20

// AIUTaxRate is the IVA factor applied to the AIU surcharge. The tax base is
// 25% of the surcharge at the 19% IVA rate, collapsed: 0.19 * 0.25 = 0.0475.
const AIUTaxRate = 0.0475

// LineItem is one priced row of a quote or corte.
type LineItem struct {
	Description string
	Unit        string
	UnitPrice   float64
	Qty         float64
}

// Totals holds the monetary breakdown of a priced line set.
type Totals struct {
	Subtotal       float64
	AdminSurcharge float64
	Tax            float64
	Total          float64
}

// ComputeTotals calculates subtotal, AIU surcharge, IVA and grand total for a
// list of priced line items. No rounding is applied here; formatting rounds at
// the presentation edge. Callers guarantee non-negative finite prices and
// quantities.
func ComputeTotals(items []LineItem) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.UnitPrice * item.Qty
	}

	surcharge := subtotal * AIURate
	tax := surcharge * AIUTaxRate

	return Totals{
		Subtotal:       subtotal,
		AdminSurcharge: surcharge,
		Tax:            tax,
		Total:          subtotal + surcharge + tax,
	}
}
