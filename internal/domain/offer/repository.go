package offer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"mavinci/internal/database"
)

type Repository interface {
	CreateWithItems(ctx context.Context, o *Offer) error
	GetByID(ctx context.Context, id int64) (*Offer, error)
	ListByEvent(ctx context.Context, eventID int64) ([]*Offer, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error

	GetItem(ctx context.Context, offerID, itemID int64) (*OfferItem, error)
	AddItem(ctx context.Context, it *OfferItem) error
	SaveItem(ctx context.Context, it *OfferItem) error
	DeleteItem(ctx context.Context, offerID, itemID int64) error
	UpdateTotals(ctx context.Context, offerID int64, t Totals) error

	CreateProduct(ctx context.Context, p *OfferProduct) error
	GetProduct(ctx context.Context, id int64) (*OfferProduct, error)
	ListProducts(ctx context.Context, activeOnly bool) ([]*OfferProduct, error)
	SetProductPage(ctx context.Context, id int64, path string) error
}

type repository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db, now: time.Now}
}

const numberAttempts = 3

// CreateWithItems inserts the offer and its items in one transaction and
// assigns the next number for the current year. A concurrent submit that
// takes the same number first makes this one retry with the next free one.
func (r *repository) CreateWithItems(ctx context.Context, o *Offer) error {
	var err error
	for attempt := 0; attempt < numberAttempts; attempt++ {
		err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			number, err := r.nextNumber(tx)
			if err != nil {
				return err
			}
			o.ID = 0
			o.OfferNumber = number
			return tx.Create(o).Error
		})
		if !database.IsUniqueViolation(err) {
			return err
		}
	}
	return fmt.Errorf("allocate offer number: %w", err)
}

// nextNumber follows the highest number of the year, so gaps left by
// deleted offers are never reused.
func (r *repository) nextNumber(tx *gorm.DB) (string, error) {
	year := r.now().Year()
	prefix := fmt.Sprintf("OF/%d/", year)
	var last []string
	err := tx.Model(&Offer{}).
		Where("offer_number LIKE ?", prefix+"%").
		Order("offer_number DESC").
		Limit(1).
		Pluck("offer_number", &last).Error
	if err != nil {
		return "", err
	}
	seq := 0
	if len(last) > 0 {
		if n, err := strconv.Atoi(strings.TrimPrefix(last[0], prefix)); err == nil {
			seq = n
		}
	}
	return fmt.Sprintf("%s%04d", prefix, seq+1), nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Offer, error) {
	var o Offer
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position, id") }).
		First(&o, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOfferNotFound
	}
	return &o, err
}

func (r *repository) ListByEvent(ctx context.Context, eventID int64) ([]*Offer, error) {
	var list []*Offer
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Order("created_at DESC").Find(&list).Error
	return list, err
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	res := r.db.WithContext(ctx).Model(&Offer{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrOfferNotFound
	}
	return nil
}

func (r *repository) GetItem(ctx context.Context, offerID, itemID int64) (*OfferItem, error) {
	var it OfferItem
	err := r.db.WithContext(ctx).Where("offer_id = ? AND id = ?", offerID, itemID).First(&it).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	return &it, err
}

func (r *repository) AddItem(ctx context.Context, it *OfferItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var maxPos sql.NullInt64
		row := tx.Model(&OfferItem{}).Where("offer_id = ?", it.OfferID).Select("MAX(position)").Row()
		if err := row.Scan(&maxPos); err != nil {
			return err
		}
		it.Position = 0
		if maxPos.Valid {
			it.Position = int(maxPos.Int64) + 1
		}
		return tx.Create(it).Error
	})
}

func (r *repository) SaveItem(ctx context.Context, it *OfferItem) error {
	return r.db.WithContext(ctx).Save(it).Error
}

func (r *repository) DeleteItem(ctx context.Context, offerID, itemID int64) error {
	res := r.db.WithContext(ctx).Where("offer_id = ? AND id = ?", offerID, itemID).Delete(&OfferItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *repository) UpdateTotals(ctx context.Context, offerID int64, t Totals) error {
	return r.db.WithContext(ctx).Model(&Offer{}).Where("id = ?", offerID).
		Updates(map[string]any{"total_net": t.Net, "total_gross": t.Gross}).Error
}

func (r *repository) CreateProduct(ctx context.Context, p *OfferProduct) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) GetProduct(ctx context.Context, id int64) (*OfferProduct, error) {
	var p OfferProduct
	err := r.db.WithContext(ctx).Preload("Equipment").First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	return &p, err
}

func (r *repository) ListProducts(ctx context.Context, activeOnly bool) ([]*OfferProduct, error) {
	var list []*OfferProduct
	q := r.db.WithContext(ctx).Order("name")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Find(&list).Error
	return list, err
}

func (r *repository) SetProductPage(ctx context.Context, id int64, path string) error {
	res := r.db.WithContext(ctx).Model(&OfferProduct{}).Where("id = ?", id).Update("page_path", path)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
