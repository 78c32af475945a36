package offer

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusDraft    Status = "draft"
	StatusSent     Status = "sent"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

var DefaultVATRate = decimal.NewFromInt(23)

type Offer struct {
	ID          int64           `gorm:"column:id;primaryKey" json:"id"`
	OfferNumber string          `gorm:"column:offer_number;uniqueIndex" json:"offer_number"`
	EventID     *int64          `gorm:"column:event_id;index" json:"event_id,omitempty"`
	Title       string          `gorm:"column:title" json:"title"`
	Status      Status          `gorm:"column:status;not null;default:draft" json:"status"`
	VATRate     decimal.Decimal `gorm:"column:vat_rate;type:numeric(5,2)" json:"vat_rate"`
	TotalNet    decimal.Decimal `gorm:"column:total_net;type:numeric(14,2)" json:"total_net"`
	TotalGross  decimal.Decimal `gorm:"column:total_gross;type:numeric(14,2)" json:"total_gross"`
	ValidUntil  *time.Time      `gorm:"column:valid_until" json:"valid_until,omitempty"`
	Notes       string          `gorm:"column:notes" json:"notes,omitempty"`
	CreatedBy   int64           `gorm:"column:created_by" json:"created_by"`
	CreatedAt   time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at" json:"updated_at"`

	Items []OfferItem `gorm:"foreignKey:OfferID" json:"items,omitempty"`
}

func (Offer) TableName() string { return "offers" }

// OfferItem is one priced line. Subtotal is derived and recomputed whenever
// quantity, unit price or discount change.
type OfferItem struct {
	ID              int64           `gorm:"column:id;primaryKey" json:"id"`
	OfferID         int64           `gorm:"column:offer_id;index;not null" json:"offer_id"`
	ProductID       *int64          `gorm:"column:product_id" json:"product_id,omitempty"`
	Name            string          `gorm:"column:name;not null" json:"name"`
	Description     string          `gorm:"column:description" json:"description,omitempty"`
	Quantity        decimal.Decimal `gorm:"column:quantity;type:numeric(12,3)" json:"quantity"`
	UnitPrice       decimal.Decimal `gorm:"column:unit_price;type:numeric(14,2)" json:"unit_price"`
	DiscountPercent decimal.Decimal `gorm:"column:discount_percent;type:numeric(5,2)" json:"discount_percent"`
	Subtotal        decimal.Decimal `gorm:"column:subtotal;type:numeric(14,2)" json:"subtotal"`
	Position        int             `gorm:"column:position" json:"position"`
	CreatedAt       time.Time       `gorm:"column:created_at" json:"created_at"`
}

func (OfferItem) TableName() string { return "offer_items" }

func (it *OfferItem) recompute() {
	it.Subtotal = Subtotal(it.Quantity, it.UnitPrice, it.DiscountPercent)
}

// OfferProduct is a catalog product with net cost and price components.
type OfferProduct struct {
	ID             int64           `gorm:"column:id;primaryKey" json:"id"`
	Name           string          `gorm:"column:name;not null" json:"name"`
	Description    string          `gorm:"column:description" json:"description,omitempty"`
	Unit           string          `gorm:"column:unit" json:"unit"`
	BasePrice      decimal.Decimal `gorm:"column:base_price;type:numeric(14,2)" json:"base_price"`
	TransportPrice decimal.Decimal `gorm:"column:transport_price;type:numeric(14,2)" json:"transport_price"`
	LogisticsPrice decimal.Decimal `gorm:"column:logistics_price;type:numeric(14,2)" json:"logistics_price"`
	BaseCost       decimal.Decimal `gorm:"column:base_cost;type:numeric(14,2)" json:"base_cost"`
	TransportCost  decimal.Decimal `gorm:"column:transport_cost;type:numeric(14,2)" json:"transport_cost"`
	LogisticsCost  decimal.Decimal `gorm:"column:logistics_cost;type:numeric(14,2)" json:"logistics_cost"`
	VATRate        decimal.Decimal `gorm:"column:vat_rate;type:numeric(5,2)" json:"vat_rate"`
	PagePath       string          `gorm:"column:page_path" json:"page_path,omitempty"`
	IsActive       bool            `gorm:"column:is_active;not null" json:"is_active"`
	CreatedAt      time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"column:updated_at" json:"updated_at"`

	Equipment []OfferProductEquipment `gorm:"foreignKey:ProductID" json:"equipment,omitempty"`
}

func (OfferProduct) TableName() string { return "offer_products" }

// OfferProductEquipment is equipment a product books when sold.
type OfferProductEquipment struct {
	ID              int64 `gorm:"column:id;primaryKey" json:"id"`
	ProductID       int64 `gorm:"column:product_id;index;not null" json:"product_id"`
	EquipmentItemID int64 `gorm:"column:equipment_item_id;not null" json:"equipment_item_id"`
	Quantity        int   `gorm:"column:quantity;not null;default:1" json:"quantity"`
}

func (OfferProductEquipment) TableName() string { return "offer_product_equipment" }

func Models() []any {
	return []any{&Offer{}, &OfferItem{}, &OfferProduct{}, &OfferProductEquipment{}}
}
