package offer

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mavinci/internal/database"
	"mavinci/internal/pkg/jwt"
	"mavinci/internal/realtime"
	"mavinci/internal/storage"
)

type recorder struct {
	mu      sync.Mutex
	changes []realtime.Change
}

func (r *recorder) Publish(ch realtime.Change) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.changes = append(r.changes, ch)
}

func (r *recorder) events() []realtime.EventType {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]realtime.EventType, len(r.changes))
	for i, ch := range r.changes {
		out[i] = ch.Event
	}
	return out
}

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:offer_test_%s?mode=memory&cache=shared", t.Name())
	db, err := database.ConnectWithConfig(dsn, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, Models()...))
	return db
}

func setupService(t *testing.T) (*Service, *recorder) {
	t.Helper()
	files := storage.NewService(t.TempDir(), "/api/v1/storage/object", 1<<20, time.Hour, jwt.New("test-secret", time.Hour))
	rec := &recorder{}
	return NewService(NewRepository(setupDB(t)), files, rec), rec
}

func submitSample(t *testing.T, svc *Service) *OfferDetails {
	t.Helper()
	res, err := svc.Submit(context.Background(), 7, SubmitRequest{
		Title: "Gala firmowa",
		Items: []LineInput{
			{Name: "Nagłośnienie", Quantity: dec("3"), UnitPrice: dec("100"), DiscountPercent: dec("10")},
			{Name: "Oświetlenie", Quantity: dec("1"), UnitPrice: dec("500")},
		},
	})
	require.NoError(t, err)
	return res
}

func TestCalculate(t *testing.T) {
	svc, _ := setupService(t)

	res, err := svc.Calculate(CalculateRequest{Items: []LineInput{
		{Name: "A", Quantity: dec("3"), UnitPrice: dec("100"), DiscountPercent: dec("10")},
	}})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "270.00", res.Totals.Net.StringFixed(2))
	assert.Equal(t, "62.10", res.Totals.VAT.StringFixed(2))
	assert.Equal(t, "332.10", res.Totals.Gross.StringFixed(2))

	vat := dec("-1")
	_, err = svc.Calculate(CalculateRequest{VATRate: &vat})
	assert.ErrorIs(t, err, ErrInvalidVAT)

	_, err = svc.Calculate(CalculateRequest{Items: []LineInput{{Name: "B", Quantity: dec("1"), UnitPrice: dec("1"), DiscountPercent: dec("120")}}})
	assert.ErrorIs(t, err, ErrInvalidDiscount)
}

func TestConvertPrice(t *testing.T) {
	svc, _ := setupService(t)

	p, err := svc.ConvertPrice(ConvertRequest{Edited: "net", Value: dec("100"), VATRate: dec("23")})
	require.NoError(t, err)
	assert.Equal(t, "123.00", p.Gross.StringFixed(2))

	p, err = svc.ConvertPrice(ConvertRequest{Edited: "gross", Value: dec("150"), VATRate: dec("23")})
	require.NoError(t, err)
	assert.Equal(t, "121.95", p.Net.StringFixed(2))

	_, err = svc.ConvertPrice(ConvertRequest{Edited: "net", Value: dec("-1"), VATRate: dec("23")})
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestSubmitAndGet(t *testing.T) {
	svc, rec := setupService(t)
	ctx := context.Background()

	created := submitSample(t, svc)
	assert.Equal(t, fmt.Sprintf("OF/%d/0001", time.Now().Year()), created.OfferNumber)
	assert.Equal(t, StatusDraft, created.Status)
	assert.Equal(t, int64(7), created.CreatedBy)
	assert.Equal(t, "770.00", created.TotalNet.StringFixed(2))

	second := submitSample(t, svc)
	assert.True(t, strings.HasSuffix(second.OfferNumber, "/0002"))

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, "Nagłośnienie", got.Items[0].Name)
	assert.Equal(t, "270.00", got.Items[0].Subtotal.StringFixed(2))
	assert.Equal(t, "947.10", got.Totals.Gross.StringFixed(2))

	assert.Equal(t, []realtime.EventType{realtime.EventInsert, realtime.EventInsert}, rec.events())

	_, err = svc.Submit(ctx, 7, SubmitRequest{Title: "Pusta"})
	assert.ErrorIs(t, err, ErrEmptyOffer)

	_, err = svc.Get(ctx, 9999)
	assert.ErrorIs(t, err, ErrOfferNotFound)
}

func TestItemEditsRefreshTotals(t *testing.T) {
	svc, rec := setupService(t)
	ctx := context.Background()
	o := submitSample(t, svc)

	res, err := svc.AddItem(ctx, o.ID, LineInput{Name: "Transport", Quantity: dec("1"), UnitPrice: dec("30")})
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.Equal(t, 2, res.Items[2].Position)
	assert.Equal(t, "800.00", res.TotalNet.StringFixed(2))

	qty := dec("2")
	res, err = svc.UpdateItem(ctx, o.ID, res.Items[2].ID, UpdateItemRequest{Quantity: &qty})
	require.NoError(t, err)
	assert.Equal(t, "60.00", res.Items[2].Subtotal.StringFixed(2))
	assert.Equal(t, "830.00", res.Totals.Net.StringFixed(2))

	bad := dec("101")
	_, err = svc.UpdateItem(ctx, o.ID, res.Items[2].ID, UpdateItemRequest{DiscountPercent: &bad})
	assert.ErrorIs(t, err, ErrInvalidDiscount)

	res, err = svc.RemoveItem(ctx, o.ID, res.Items[0].ID)
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.Equal(t, "560.00", res.Totals.Net.StringFixed(2))

	stored, err := svc.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, stored.TotalNet.Equal(dec("560")))
	assert.True(t, stored.TotalGross.Equal(dec("688.8")))

	_, err = svc.RemoveItem(ctx, o.ID, 9999)
	assert.ErrorIs(t, err, ErrItemNotFound)
	_, err = svc.AddItem(ctx, 9999, LineInput{Name: "X", Quantity: dec("1"), UnitPrice: dec("1")})
	assert.ErrorIs(t, err, ErrOfferNotFound)

	assert.Len(t, rec.events(), 4)
}

func TestSetStatus(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	o := submitSample(t, svc)

	res, err := svc.SetStatus(ctx, o.ID, StatusSent)
	require.NoError(t, err)
	assert.Equal(t, StatusSent, res.Status)

	_, err = svc.SetStatus(ctx, o.ID, Status("archived"))
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.SetStatus(ctx, 9999, StatusAccepted)
	assert.ErrorIs(t, err, ErrOfferNotFound)
}

func TestListByEvent(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	eventID := int64(42)

	_, err := svc.Submit(ctx, 1, SubmitRequest{
		EventID: &eventID,
		Title:   "Wesele",
		Items:   []LineInput{{Name: "DJ", Quantity: dec("1"), UnitPrice: dec("2000")}},
	})
	require.NoError(t, err)
	submitSample(t, svc)

	list, err := svc.ListByEvent(ctx, eventID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Wesele", list[0].Title)
}

func TestProducts(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	p, err := svc.CreateProduct(ctx, CreateProductRequest{
		Name:          " Pakiet konferencyjny ",
		Unit:          "szt.",
		BasePrice:     dec("1000"),
		BaseCost:      dec("400"),
		TransportCost: dec("100"),
		Equipment:     []ProductEquipment{{EquipmentItemID: 3, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Pakiet konferencyjny", p.Name)
	assert.Equal(t, "50.00", p.Totals.MarginPercent.StringFixed(2))
	assert.Empty(t, p.PageURL)

	got, err := svc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, got.Equipment, 1)
	assert.Equal(t, 2, got.Equipment[0].Quantity)

	_, err = svc.CreateProduct(ctx, CreateProductRequest{Name: "Zły", BaseCost: dec("-1")})
	assert.ErrorIs(t, err, ErrInvalidPrice)

	list, err := svc.ListProducts(ctx, true)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.GetProduct(ctx, 9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestUploadProductPage(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	p, err := svc.CreateProduct(ctx, CreateProductRequest{Name: "Scena mobilna", BasePrice: dec("5000")})
	require.NoError(t, err)

	res, err := svc.UploadProductPage(ctx, p.ID, "Strona.PDF", strings.NewReader("%PDF-1.4 first"))
	require.NoError(t, err)
	wantPath := fmt.Sprintf("%d/page.pdf", p.ID)
	assert.Equal(t, wantPath, res.PagePath)
	assert.Equal(t, "/api/v1/storage/object/public/offer-product-pages/"+wantPath, res.PageURL)

	_, err = svc.UploadProductPage(ctx, p.ID, "strona.pdf", strings.NewReader("%PDF-1.4 second"))
	require.NoError(t, err, "a new page replaces the old one")

	_, err = svc.UploadProductPage(ctx, 9999, "x.pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrProductNotFound)
}
