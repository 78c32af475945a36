package offer

import (
	"time"

	"github.com/shopspring/decimal"
)

type CalculateRequest struct {
	VATRate *decimal.Decimal `json:"vat_rate"`
	Items   []LineInput      `json:"items" validate:"dive"`
}

type CalculateResponse struct {
	Items  []OfferItem `json:"items"`
	Totals Totals      `json:"totals"`
}

type ConvertRequest struct {
	Edited  string          `json:"edited" validate:"required,oneof=net gross"`
	Value   decimal.Decimal `json:"value"`
	VATRate decimal.Decimal `json:"vat_rate"`
}

type SubmitRequest struct {
	EventID    *int64           `json:"event_id"`
	Title      string           `json:"title" validate:"required,max=255"`
	VATRate    *decimal.Decimal `json:"vat_rate"`
	ValidUntil *time.Time       `json:"valid_until"`
	Notes      string           `json:"notes"`
	Items      []LineInput      `json:"items" validate:"required,min=1,dive"`
}

// UpdateItemRequest is a partial update of one line.
type UpdateItemRequest struct {
	Name            *string          `json:"name" validate:"omitempty,min=1,max=255"`
	Description     *string          `json:"description"`
	Quantity        *decimal.Decimal `json:"quantity"`
	UnitPrice       *decimal.Decimal `json:"unit_price"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
}

type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required,oneof=draft sent accepted rejected"`
}

type OfferDetails struct {
	*Offer
	Totals Totals `json:"totals"`
}

type CreateProductRequest struct {
	Name           string             `json:"name" validate:"required,max=255"`
	Description    string             `json:"description"`
	Unit           string             `json:"unit" validate:"max=20"`
	BasePrice      decimal.Decimal    `json:"base_price"`
	TransportPrice decimal.Decimal    `json:"transport_price"`
	LogisticsPrice decimal.Decimal    `json:"logistics_price"`
	BaseCost       decimal.Decimal    `json:"base_cost"`
	TransportCost  decimal.Decimal    `json:"transport_cost"`
	LogisticsCost  decimal.Decimal    `json:"logistics_cost"`
	VATRate        *decimal.Decimal   `json:"vat_rate"`
	Equipment      []ProductEquipment `json:"equipment" validate:"dive"`
}

type ProductEquipment struct {
	EquipmentItemID int64 `json:"equipment_item_id" validate:"required,gt=0"`
	Quantity        int   `json:"quantity" validate:"required,gt=0"`
}

type ProductDetails struct {
	*OfferProduct
	Totals  ProductTotals `json:"totals"`
	PageURL string        `json:"page_url,omitempty"`
}
