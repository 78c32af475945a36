package offer

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// Round2 is the only rounding step; it is applied once, at output.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// rawSubtotal is quantity × unit price × (1 − discount/100), unrounded.
func rawSubtotal(quantity, unitPrice, discountPercent decimal.Decimal) decimal.Decimal {
	factor := one.Sub(discountPercent.Div(hundred))
	return quantity.Mul(unitPrice).Mul(factor)
}

// Subtotal is the rounded line value. Inputs are assumed valid; see
// ValidateLine.
func Subtotal(quantity, unitPrice, discountPercent decimal.Decimal) decimal.Decimal {
	return Round2(rawSubtotal(quantity, unitPrice, discountPercent))
}

func vatFactor(vatRate decimal.Decimal) decimal.Decimal {
	return one.Add(vatRate.Div(hundred))
}

// GrossFromNet is unrounded.
func GrossFromNet(net, vatRate decimal.Decimal) decimal.Decimal {
	return net.Mul(vatFactor(vatRate))
}

// NetFromGross is unrounded.
func NetFromGross(gross, vatRate decimal.Decimal) decimal.Decimal {
	return gross.Div(vatFactor(vatRate))
}

// ValidateLine rejects inputs the calculator does not accept.
func ValidateLine(quantity, unitPrice, discountPercent decimal.Decimal) error {
	switch {
	case quantity.IsNegative():
		return ErrInvalidQuantity
	case unitPrice.IsNegative():
		return ErrInvalidPrice
	case discountPercent.IsNegative() || discountPercent.GreaterThan(hundred):
		return ErrInvalidDiscount
	}
	return nil
}

func ValidateVAT(vatRate decimal.Decimal) error {
	if vatRate.IsNegative() {
		return ErrInvalidVAT
	}
	return nil
}

// PriceFields is a net/gross pair bound by a VAT rate. Whichever side was
// edited last is kept exactly and the other one is derived from it.
type PriceFields struct {
	Net     decimal.Decimal `json:"net"`
	Gross   decimal.Decimal `json:"gross"`
	VATRate decimal.Decimal `json:"vat_rate"`
}

func NewPriceFromNet(net, vatRate decimal.Decimal) PriceFields {
	p := PriceFields{VATRate: vatRate}
	p.SetNet(net)
	return p
}

func (p *PriceFields) SetNet(net decimal.Decimal) {
	p.Net = net
	p.Gross = Round2(GrossFromNet(net, p.VATRate))
}

func (p *PriceFields) SetGross(gross decimal.Decimal) {
	p.Gross = gross
	p.Net = Round2(NetFromGross(gross, p.VATRate))
}

// SetVATRate keeps net and re-derives gross.
func (p *PriceFields) SetVATRate(vatRate decimal.Decimal) {
	p.VATRate = vatRate
	p.SetNet(p.Net)
}

type Totals struct {
	Net   decimal.Decimal `json:"net"`
	VAT   decimal.Decimal `json:"vat"`
	Gross decimal.Decimal `json:"gross"`
}

// OfferTotals sums unrounded line values and rounds once. VAT is reported as
// Gross − Net so the three figures always add up.
func OfferTotals(items []OfferItem, vatRate decimal.Decimal) Totals {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(rawSubtotal(it.Quantity, it.UnitPrice, it.DiscountPercent))
	}
	net := Round2(sum)
	gross := Round2(GrossFromNet(sum, vatRate))
	return Totals{Net: net, VAT: gross.Sub(net), Gross: gross}
}

type ProductTotals struct {
	TotalCost     decimal.Decimal `json:"total_cost"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	Margin        decimal.Decimal `json:"margin"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
	GrossPrice    decimal.Decimal `json:"gross_price"`
}

// ComputeProductTotals sums base, transport and logistics components before
// rounding.
func ComputeProductTotals(p OfferProduct) ProductTotals {
	cost := p.BaseCost.Add(p.TransportCost).Add(p.LogisticsCost)
	price := p.BasePrice.Add(p.TransportPrice).Add(p.LogisticsPrice)
	margin := price.Sub(cost)

	marginPercent := decimal.Zero
	if !price.IsZero() {
		marginPercent = margin.Div(price).Mul(hundred)
	}

	return ProductTotals{
		TotalCost:     Round2(cost),
		TotalPrice:    Round2(price),
		Margin:        Round2(margin),
		MarginPercent: Round2(marginPercent),
		GrossPrice:    Round2(GrossFromNet(price, p.VATRate)),
	}
}
