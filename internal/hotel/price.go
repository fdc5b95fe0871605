package hotel

import "github.com/shopspring/decimal"

// TaxRate is a tax expressed as a fraction of the subtotal.
type TaxRate struct {
	Name     string
	Rate     decimal.Decimal
	Included bool
}

// Money rounds d to cents.
func Money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// NewPrice builds a flat-rate price for a stay. Tax amounts are taken on the
// subtotal and the total is subtotal plus every tax not already included plus fees.
func NewPrice(currency string, nightly decimal.Decimal, nights int, taxes []TaxRate, fees []Fee, source PriceSource) Price {
	perNight := make([]float64, nights)
	for i := range perNight {
		perNight[i] = Money(nightly)
	}

	subtotal := nightly.Mul(decimal.NewFromInt(int64(nights))).Round(2)
	total := subtotal

	taxLines := make([]Tax, 0, len(taxes))
	for _, t := range taxes {
		amount := subtotal.Mul(t.Rate).Round(2)
		taxLines = append(taxLines, Tax{Name: t.Name, Amount: Money(amount), Included: t.Included})
		if !t.Included {
			total = total.Add(amount)
		}
	}

	feeLines := make([]Fee, 0, len(fees))
	for _, f := range fees {
		feeLines = append(feeLines, f)
		total = total.Add(decimal.NewFromFloat(f.Amount))
	}

	return Price{
		Currency: currency,
		PerNight: perNight,
		Subtotal: Money(subtotal),
		Taxes:    taxLines,
		Fees:     feeLines,
		Total:    Money(total),
		Source:   source,
	}
}

// NewPriceSummary builds the search-result price for a flat nightly rate.
// When taxes are not included, taxRate is applied on top of the total.
func NewPriceSummary(currency string, nightly decimal.Decimal, nights int, taxRate decimal.Decimal, taxesIncluded bool, source PriceSource) PriceSummary {
	total := nightly.Mul(decimal.NewFromInt(int64(nights))).Round(2)
	summary := PriceSummary{
		Currency:      currency,
		PerNightAvg:   Money(nightly),
		Total:         Money(total),
		TaxesIncluded: taxesIncluded,
		GrandTotal:    Money(total),
		Source:        source,
	}
	if !taxesIncluded {
		taxes := total.Mul(taxRate).Round(2)
		summary.TaxesFees = Money(taxes)
		summary.GrandTotal = Money(total.Add(taxes))
	}
	return summary
}
