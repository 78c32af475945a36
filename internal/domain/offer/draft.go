package offer

import (
	"github.com/shopspring/decimal"
)

// LineInput is what a user types for a line.
type LineInput struct {
	ProductID       *int64          `json:"product_id,omitempty"`
	Name            string          `json:"name" validate:"required,max=255"`
	Description     string          `json:"description"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
}

func (in LineInput) Validate() error {
	return ValidateLine(in.Quantity, in.UnitPrice, in.DiscountPercent)
}

func (in LineInput) item() OfferItem {
	it := OfferItem{
		ProductID:       in.ProductID,
		Name:            in.Name,
		Description:     in.Description,
		Quantity:        in.Quantity,
		UnitPrice:       in.UnitPrice,
		DiscountPercent: in.DiscountPercent,
	}
	it.recompute()
	return it
}

// Draft is an unsaved offer held in memory while the user edits it. Lines get
// local ids starting at 1.
type Draft struct {
	VATRate decimal.Decimal
	lines   []OfferItem
	nextID  int64
}

func NewDraft(vatRate decimal.Decimal) *Draft {
	return &Draft{VATRate: vatRate, nextID: 1}
}

func (d *Draft) Add(in LineInput) (OfferItem, error) {
	if err := in.Validate(); err != nil {
		return OfferItem{}, err
	}
	it := in.item()
	it.ID = d.nextID
	it.Position = len(d.lines)
	d.nextID++
	d.lines = append(d.lines, it)
	return it, nil
}

func (d *Draft) Update(id int64, in LineInput) (OfferItem, error) {
	if err := in.Validate(); err != nil {
		return OfferItem{}, err
	}
	for i := range d.lines {
		if d.lines[i].ID == id {
			it := in.item()
			it.ID = id
			it.Position = d.lines[i].Position
			d.lines[i] = it
			return it, nil
		}
	}
	return OfferItem{}, ErrItemNotFound
}

func (d *Draft) Remove(id int64) bool {
	for i := range d.lines {
		if d.lines[i].ID == id {
			d.lines = append(d.lines[:i], d.lines[i+1:]...)
			for j := i; j < len(d.lines); j++ {
				d.lines[j].Position = j
			}
			return true
		}
	}
	return false
}

func (d *Draft) Lines() []OfferItem {
	return append([]OfferItem(nil), d.lines...)
}

func (d *Draft) Totals() Totals {
	return OfferTotals(d.lines, d.VATRate)
}
