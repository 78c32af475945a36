package event

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"mavinci/internal/database"
	"mavinci/internal/domain/contact"
	"mavinci/internal/domain/offer"
	"mavinci/internal/domain/task"
)

type Filter struct {
	Status Status
	From   *time.Time
	To     *time.Time
}

// OfferStats aggregates the offers of one event.
type OfferStats struct {
	EventID       int64
	OffersCount   int
	AcceptedValue decimal.Decimal
}

type ColumnCount struct {
	BoardColumn task.Column
	N           int
}

type Repository interface {
	ListEvents(ctx context.Context, f Filter) ([]Event, error)
	GetEvent(ctx context.Context, id int64) (*Event, error)
	CreateEvent(ctx context.Context, e *Event) error
	UpdateStatus(ctx context.Context, id int64, status Status) error

	OfferStats(ctx context.Context, eventIDs []int64) (map[int64]OfferStats, error)
	TaskCounts(ctx context.Context, eventIDs []int64) (map[int64]int, error)
	TaskColumns(ctx context.Context, eventID int64) ([]ColumnCount, error)
	ListOffers(ctx context.Context, eventID int64) ([]offer.Offer, error)

	Organizations(ctx context.Context, ids []int64) (map[int64]contact.Organization, error)
	Contacts(ctx context.Context, ids []int64) (map[int64]contact.Contact, error)

	ListFolders(ctx context.Context, eventID int64) ([]Folder, error)
	GetFolder(ctx context.Context, eventID, id int64) (*Folder, error)
	FindFolder(ctx context.Context, eventID int64, path string) (*Folder, error)
	CreateFolder(ctx context.Context, f *Folder) error

	ListFiles(ctx context.Context, eventID int64) ([]File, error)
	CreateFile(ctx context.Context, f *File) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListEvents(ctx context.Context, f Filter) ([]Event, error) {
	q := r.db.WithContext(ctx).Model(&Event{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.From != nil {
		q = q.Where("event_date >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("event_date < ?", *f.To)
	}
	var list []Event
	err := q.Order("event_date, id").Find(&list).Error
	return list, err
}

func (r *repository) GetEvent(ctx context.Context, id int64) (*Event, error) {
	var e Event
	err := r.db.WithContext(ctx).First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *repository) CreateEvent(ctx context.Context, e *Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *repository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	res := r.db.WithContext(ctx).Model(&Event{}).Where("id = ?", id).
		Updates(map[string]any{"status": status, "updated_at": time.Now()})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEventNotFound
	}
	return nil
}

// OfferStats counts offers per event and sums the net value of accepted ones.
func (r *repository) OfferStats(ctx context.Context, eventIDs []int64) (map[int64]OfferStats, error) {
	out := make(map[int64]OfferStats, len(eventIDs))
	if len(eventIDs) == 0 {
		return out, nil
	}
	var rows []OfferStats
	err := r.db.WithContext(ctx).Model(&offer.Offer{}).
		Select("event_id, COUNT(*) AS offers_count, COALESCE(SUM(CASE WHEN status = ? THEN total_net ELSE 0 END), 0) AS accepted_value", offer.StatusAccepted).
		Where("event_id IN ?", eventIDs).
		Group("event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.EventID] = row
	}
	return out, nil
}

func (r *repository) TaskCounts(ctx context.Context, eventIDs []int64) (map[int64]int, error) {
	out := make(map[int64]int, len(eventIDs))
	if len(eventIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		EventID int64
		N       int
	}
	err := r.db.WithContext(ctx).Model(&task.Task{}).
		Select("event_id, COUNT(*) AS n").
		Where("event_id IN ?", eventIDs).
		Group("event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.EventID] = row.N
	}
	return out, nil
}

func (r *repository) TaskColumns(ctx context.Context, eventID int64) ([]ColumnCount, error) {
	var rows []ColumnCount
	err := r.db.WithContext(ctx).Model(&task.Task{}).
		Select("board_column, COUNT(*) AS n").
		Where("event_id = ?", eventID).
		Group("board_column").
		Scan(&rows).Error
	return rows, err
}

func (r *repository) ListOffers(ctx context.Context, eventID int64) ([]offer.Offer, error) {
	var list []offer.Offer
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Order("created_at, id").Find(&list).Error
	return list, err
}

func (r *repository) Organizations(ctx context.Context, ids []int64) (map[int64]contact.Organization, error) {
	out := make(map[int64]contact.Organization, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var list []contact.Organization
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, err
	}
	for _, o := range list {
		out[o.ID] = o
	}
	return out, nil
}

func (r *repository) Contacts(ctx context.Context, ids []int64) (map[int64]contact.Contact, error) {
	out := make(map[int64]contact.Contact, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var list []contact.Contact
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&list).Error; err != nil {
		return nil, err
	}
	for _, c := range list {
		out[c.ID] = c
	}
	return out, nil
}

func (r *repository) ListFolders(ctx context.Context, eventID int64) ([]Folder, error) {
	var list []Folder
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Order("path").Find(&list).Error
	return list, err
}

func (r *repository) GetFolder(ctx context.Context, eventID, id int64) (*Folder, error) {
	var f Folder
	err := r.db.WithContext(ctx).Where("event_id = ? AND id = ?", eventID, id).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFolderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *repository) FindFolder(ctx context.Context, eventID int64, path string) (*Folder, error) {
	var f Folder
	err := r.db.WithContext(ctx).Where("event_id = ? AND path = ?", eventID, path).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFolderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// CreateFolder inserts f, or loads the folder another writer created at the
// same path first.
func (r *repository) CreateFolder(ctx context.Context, f *Folder) error {
	err := r.db.WithContext(ctx).Create(f).Error
	if database.IsUniqueViolation(err) {
		existing, ferr := r.FindFolder(ctx, f.EventID, f.Path)
		if ferr != nil {
			return ferr
		}
		*f = *existing
		return nil
	}
	return err
}

func (r *repository) ListFiles(ctx context.Context, eventID int64) ([]File, error) {
	var list []File
	err := r.db.WithContext(ctx).Where("event_id = ?", eventID).Order("created_at, id").Find(&list).Error
	return list, err
}

func (r *repository) CreateFile(ctx context.Context, f *File) error {
	return r.db.WithContext(ctx).Create(f).Error
}
