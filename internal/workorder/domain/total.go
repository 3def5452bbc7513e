package domain

import "github.com/shopspring/decimal"

// PartLine is the slice of a work-order part the total cares about.
type PartLine struct {
	UnitPrice        decimal.Decimal
	Quantity         int
	IncrementPerUnit decimal.NullDecimal
}

// TaskLine is the slice of a work-order task the total cares about.
type TaskLine struct {
	Price decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// Total prices a work order from its line items:
//
//	parts_total = Σ unit_price * quantity * (1 + increment_per_unit/100)
//	tasks_total = Σ price
//
// A null increment counts as zero. All arithmetic stays in decimal so the
// result round-trips through the money columns without drift.
func Total(parts []PartLine, tasks []TaskLine) decimal.Decimal {
	total := decimal.Zero
	for _, p := range parts {
		inc := decimal.Zero
		if p.IncrementPerUnit.Valid {
			inc = p.IncrementPerUnit.Decimal
		}
		factor := decimal.NewFromInt(1).Add(inc.Div(hundred))
		line := p.UnitPrice.Mul(decimal.NewFromInt(int64(p.Quantity))).Mul(factor)
		total = total.Add(line)
	}
	for _, t := range tasks {
		total = total.Add(t.Price)
	}
	return total
}
