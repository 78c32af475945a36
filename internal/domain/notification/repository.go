package notification

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, n *Notification, recipients []int64) ([]Recipient, error)
	ListForEmployee(ctx context.Context, employeeID int64, unreadOnly bool, limit, offset int) ([]Recipient, int64, error)
	CountUnread(ctx context.Context, employeeID int64) (int64, error)
	MarkRead(ctx context.Context, employeeID, notificationID int64, at time.Time) error
	MarkAllRead(ctx context.Context, employeeID int64, at time.Time) (int64, error)
	DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create stores the notification and one recipient row per employee in a
// single transaction.
func (r *repository) Create(ctx context.Context, n *Notification, recipients []int64) ([]Recipient, error) {
	rows := make([]Recipient, len(recipients))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(n).Error; err != nil {
			return err
		}
		for i, id := range recipients {
			rows[i] = Recipient{NotificationID: n.ID, EmployeeID: id, CreatedAt: n.CreatedAt}
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListForEmployee(ctx context.Context, employeeID int64, unreadOnly bool, limit, offset int) ([]Recipient, int64, error) {
	scope := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&Recipient{}).Where("employee_id = ?", employeeID)
		if unreadOnly {
			q = q.Where("is_read = ?", false)
		}
		return q
	}

	var total int64
	if err := scope().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []Recipient
	err := scope().Preload("Notification").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Offset(offset).
		Find(&list).Error
	return list, total, err
}

func (r *repository) CountUnread(ctx context.Context, employeeID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Recipient{}).
		Where("employee_id = ? AND is_read = ?", employeeID, false).
		Count(&count).Error
	return count, err
}

func (r *repository) MarkRead(ctx context.Context, employeeID, notificationID int64, at time.Time) error {
	res := r.db.WithContext(ctx).Model(&Recipient{}).
		Where("employee_id = ? AND notification_id = ?", employeeID, notificationID).
		Updates(map[string]any{"is_read": true, "read_at": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) MarkAllRead(ctx context.Context, employeeID int64, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&Recipient{}).
		Where("employee_id = ? AND is_read = ?", employeeID, false).
		Updates(map[string]any{"is_read": true, "read_at": at})
	return res.RowsAffected, res.Error
}

// DeleteReadOlderThan removes read recipient rows created before cutoff and
// then any notification left without recipients.
func (r *repository) DeleteReadOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("is_read = ? AND created_at < ?", true, cutoff).Delete(&Recipient{})
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected
		return tx.Where("id NOT IN (?)", tx.Model(&Recipient{}).Select("notification_id")).
			Delete(&Notification{}).Error
	})
	return deleted, err
}
