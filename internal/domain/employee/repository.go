package employee

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"mavinci/internal/database"
)

type Repository interface {
	Create(ctx context.Context, e *Employee) error
	GetByID(ctx context.Context, id int64) (*Employee, error)
	GetByEmail(ctx context.Context, email string) (*Employee, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*Employee, error)
	List(ctx context.Context) ([]*Employee, error)
	UpdatePreferences(ctx context.Context, id int64, prefs Preferences) error
	UpdateNavigationOrder(ctx context.Context, id int64, order []string) error
	UpdatePermissions(ctx context.Context, id int64, permissions []string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, e *Employee) error {
	err := r.db.WithContext(ctx).Create(e).Error
	if database.IsUniqueViolation(err) {
		return ErrEmailExists
	}
	return err
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEmployeeNotFound
	}
	return &e, err
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Employee, error) {
	var e Employee
	err := r.db.WithContext(ctx).Where("LOWER(email) = LOWER(?)", email).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEmployeeNotFound
	}
	return &e, err
}

func (r *repository) GetByIDs(ctx context.Context, ids []int64) ([]*Employee, error) {
	var list []*Employee
	if len(ids) == 0 {
		return list, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&list).Error
	return list, err
}

func (r *repository) List(ctx context.Context) ([]*Employee, error) {
	var list []*Employee
	err := r.db.WithContext(ctx).Order("surname, name").Find(&list).Error
	return list, err
}

func (r *repository) UpdatePreferences(ctx context.Context, id int64, prefs Preferences) error {
	return r.updateColumn(ctx, id, "preferences", datatypes.NewJSONType(prefs))
}

func (r *repository) UpdateNavigationOrder(ctx context.Context, id int64, order []string) error {
	return r.updateColumn(ctx, id, "navigation_order", datatypes.JSONSlice[string](order))
}

func (r *repository) UpdatePermissions(ctx context.Context, id int64, permissions []string) error {
	return r.updateColumn(ctx, id, "permissions", datatypes.JSONSlice[string](permissions))
}

func (r *repository) updateColumn(ctx context.Context, id int64, column string, value any) error {
	res := r.db.WithContext(ctx).Model(&Employee{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}
