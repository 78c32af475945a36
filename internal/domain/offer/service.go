package offer

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/shopspring/decimal"

	"mavinci/internal/realtime"
	"mavinci/internal/storage"
)

// Publisher receives row changes for the realtime feed.
type Publisher interface {
	Publish(ch realtime.Change)
}

// FileStore is the part of object storage offers need.
type FileStore interface {
	Upload(ctx context.Context, bucket, objectPath string, r io.Reader, opts storage.UploadOptions) (*storage.Object, error)
	PublicURL(bucket, objectPath string) string
}

type Service struct {
	repo      Repository
	files     FileStore
	publisher Publisher
}

func NewService(repo Repository, files FileStore, publisher Publisher) *Service {
	return &Service{repo: repo, files: files, publisher: publisher}
}

// Calculate prices an unsaved draft.
func (s *Service) Calculate(req CalculateRequest) (*CalculateResponse, error) {
	vat := DefaultVATRate
	if req.VATRate != nil {
		vat = *req.VATRate
	}
	if err := ValidateVAT(vat); err != nil {
		return nil, err
	}

	d := NewDraft(vat)
	for _, in := range req.Items {
		if _, err := d.Add(in); err != nil {
			return nil, err
		}
	}
	return &CalculateResponse{Items: d.Lines(), Totals: d.Totals()}, nil
}

// ConvertPrice derives the other side of a net/gross pair from the edited one.
func (s *Service) ConvertPrice(req ConvertRequest) (PriceFields, error) {
	if err := ValidateVAT(req.VATRate); err != nil {
		return PriceFields{}, err
	}
	if req.Value.IsNegative() {
		return PriceFields{}, ErrInvalidPrice
	}

	p := PriceFields{VATRate: req.VATRate}
	if req.Edited == "gross" {
		p.SetGross(req.Value)
	} else {
		p.SetNet(req.Value)
	}
	return p, nil
}

// Submit persists a draft as a new offer.
func (s *Service) Submit(ctx context.Context, employeeID int64, req SubmitRequest) (*OfferDetails, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOffer
	}
	calc, err := s.Calculate(CalculateRequest{VATRate: req.VATRate, Items: req.Items})
	if err != nil {
		return nil, err
	}

	vat := DefaultVATRate
	if req.VATRate != nil {
		vat = *req.VATRate
	}
	items := make([]OfferItem, len(calc.Items))
	for i, it := range calc.Items {
		it.ID = 0
		items[i] = it
	}

	o := &Offer{
		EventID:    req.EventID,
		Title:      req.Title,
		Status:     StatusDraft,
		VATRate:    vat,
		TotalNet:   calc.Totals.Net,
		TotalGross: calc.Totals.Gross,
		ValidUntil: req.ValidUntil,
		Notes:      req.Notes,
		CreatedBy:  employeeID,
		Items:      items,
	}
	if err := s.repo.CreateWithItems(ctx, o); err != nil {
		return nil, fmt.Errorf("create offer: %w", err)
	}
	s.publish(realtime.EventInsert, o)
	return &OfferDetails{Offer: o, Totals: calc.Totals}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*OfferDetails, error) {
	o, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &OfferDetails{Offer: o, Totals: OfferTotals(o.Items, o.VATRate)}, nil
}

func (s *Service) ListByEvent(ctx context.Context, eventID int64) ([]*Offer, error) {
	return s.repo.ListByEvent(ctx, eventID)
}

func (s *Service) AddItem(ctx context.Context, offerID int64, in LineInput) (*OfferDetails, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, offerID); err != nil {
		return nil, err
	}

	it := in.item()
	it.OfferID = offerID
	if err := s.repo.AddItem(ctx, &it); err != nil {
		return nil, err
	}
	return s.refreshTotals(ctx, offerID)
}

// UpdateItem applies a partial edit and recomputes the line subtotal.
func (s *Service) UpdateItem(ctx context.Context, offerID, itemID int64, req UpdateItemRequest) (*OfferDetails, error) {
	it, err := s.repo.GetItem(ctx, offerID, itemID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		it.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		it.Description = *req.Description
	}
	if req.Quantity != nil {
		it.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		it.UnitPrice = *req.UnitPrice
	}
	if req.DiscountPercent != nil {
		it.DiscountPercent = *req.DiscountPercent
	}
	if err := ValidateLine(it.Quantity, it.UnitPrice, it.DiscountPercent); err != nil {
		return nil, err
	}
	it.recompute()

	if err := s.repo.SaveItem(ctx, it); err != nil {
		return nil, err
	}
	return s.refreshTotals(ctx, offerID)
}

func (s *Service) RemoveItem(ctx context.Context, offerID, itemID int64) (*OfferDetails, error) {
	if err := s.repo.DeleteItem(ctx, offerID, itemID); err != nil {
		return nil, err
	}
	return s.refreshTotals(ctx, offerID)
}

func (s *Service) SetStatus(ctx context.Context, id int64, status Status) (*OfferDetails, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	details, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.publish(realtime.EventUpdate, details.Offer)
	return details, nil
}

// refreshTotals stores the recomputed totals after an item change.
func (s *Service) refreshTotals(ctx context.Context, offerID int64) (*OfferDetails, error) {
	details, err := s.Get(ctx, offerID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateTotals(ctx, offerID, details.Totals); err != nil {
		return nil, err
	}
	details.TotalNet = details.Totals.Net
	details.TotalGross = details.Totals.Gross
	s.publish(realtime.EventUpdate, details.Offer)
	return details, nil
}

func (s *Service) publish(event realtime.EventType, o *Offer) {
	if s.publisher == nil {
		return
	}
	s.publisher.Publish(realtime.Change{Table: "offers", Event: event, ID: o.ID, Record: o})
}

func (s *Service) CreateProduct(ctx context.Context, req CreateProductRequest) (*ProductDetails, error) {
	for _, v := range []decimal.Decimal{req.BasePrice, req.TransportPrice, req.LogisticsPrice, req.BaseCost, req.TransportCost, req.LogisticsCost} {
		if v.IsNegative() {
			return nil, ErrInvalidPrice
		}
	}
	vat := DefaultVATRate
	if req.VATRate != nil {
		vat = *req.VATRate
	}
	if err := ValidateVAT(vat); err != nil {
		return nil, err
	}

	p := &OfferProduct{
		Name:           strings.TrimSpace(req.Name),
		Description:    req.Description,
		Unit:           req.Unit,
		BasePrice:      req.BasePrice,
		TransportPrice: req.TransportPrice,
		LogisticsPrice: req.LogisticsPrice,
		BaseCost:       req.BaseCost,
		TransportCost:  req.TransportCost,
		LogisticsCost:  req.LogisticsCost,
		VATRate:        vat,
		IsActive:       true,
	}
	for _, eq := range req.Equipment {
		p.Equipment = append(p.Equipment, OfferProductEquipment{EquipmentItemID: eq.EquipmentItemID, Quantity: eq.Quantity})
	}
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return nil, err
	}
	return s.productDetails(p), nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*ProductDetails, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.productDetails(p), nil
}

func (s *Service) ListProducts(ctx context.Context, activeOnly bool) ([]*ProductDetails, error) {
	list, err := s.repo.ListProducts(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]*ProductDetails, len(list))
	for i, p := range list {
		out[i] = s.productDetails(p)
	}
	return out, nil
}

// UploadProductPage stores the product presentation page in the public
// bucket, replacing any previous one.
func (s *Service) UploadProductPage(ctx context.Context, id int64, filename string, r io.Reader) (*ProductDetails, error) {
	if _, err := s.repo.GetProduct(ctx, id); err != nil {
		return nil, err
	}
	objectPath := fmt.Sprintf("%d/page%s", id, strings.ToLower(path.Ext(filename)))
	if _, err := s.files.Upload(ctx, storage.BucketOfferProductPages, objectPath, r, storage.UploadOptions{Overwrite: true}); err != nil {
		return nil, err
	}
	if err := s.repo.SetProductPage(ctx, id, objectPath); err != nil {
		return nil, err
	}
	return s.GetProduct(ctx, id)
}

func (s *Service) productDetails(p *OfferProduct) *ProductDetails {
	d := &ProductDetails{OfferProduct: p, Totals: ComputeProductTotals(*p)}
	if p.PagePath != "" && s.files != nil {
		d.PageURL = s.files.PublicURL(storage.BucketOfferProductPages, p.PagePath)
	}
	return d
}
