package domain

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Detail is the invoice plus the surcharge projection of its type.
type Detail struct {
	Invoice
	Surcharge             decimal.Decimal `json:"surcharge"`
	TotalWithoutSurcharge decimal.Decimal `json:"total_without_surcharge"`
	TotalWithSurcharge    decimal.Decimal `json:"total_with_surcharge"`
}

// Project applies the type's surcharge percentage to the invoice total.
// A null surcharge projects as zero, leaving both totals equal.
func Project(invoice Invoice, invoiceType InvoiceType) Detail {
	surcharge := decimal.Zero
	if invoiceType.Surcharge.Valid {
		surcharge = invoiceType.Surcharge.Decimal
	}
	factor := decimal.NewFromInt(1).Add(surcharge.Div(hundred))
	return Detail{
		Invoice:               invoice,
		Surcharge:             surcharge,
		TotalWithoutSurcharge: invoice.Total,
		TotalWithSurcharge:    invoice.Total.Mul(factor),
	}
}
