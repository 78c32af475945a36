package contact

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"mavinci/internal/database"
)

type Repository interface {
	ListOrganizations(ctx context.Context) ([]Organization, error)
	GetOrganization(ctx context.Context, id int64) (*Organization, error)
	CreateOrganization(ctx context.Context, o *Organization) error

	ListContacts(ctx context.Context) ([]Contact, error)
	GetContact(ctx context.Context, id int64) (*Contact, error)
	CreateContact(ctx context.Context, c *Contact) error

	ListRelations(ctx context.Context) ([]ContactOrganization, error)
	CreateRelation(ctx context.Context, r *ContactOrganization) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListOrganizations(ctx context.Context) ([]Organization, error) {
	var list []Organization
	err := r.db.WithContext(ctx).Order("id").Find(&list).Error
	return list, err
}

func (r *repository) GetOrganization(ctx context.Context, id int64) (*Organization, error) {
	var o Organization
	err := r.db.WithContext(ctx).First(&o, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrganizationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *repository) CreateOrganization(ctx context.Context, o *Organization) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *repository) ListContacts(ctx context.Context) ([]Contact, error) {
	var list []Contact
	err := r.db.WithContext(ctx).Order("id").Find(&list).Error
	return list, err
}

func (r *repository) GetContact(ctx context.Context, id int64) (*Contact, error) {
	var c Contact
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrContactNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) CreateContact(ctx context.Context, c *Contact) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *repository) ListRelations(ctx context.Context) ([]ContactOrganization, error) {
	var list []ContactOrganization
	err := r.db.WithContext(ctx).Order("id").Find(&list).Error
	return list, err
}

func (r *repository) CreateRelation(ctx context.Context, rel *ContactOrganization) error {
	err := r.db.WithContext(ctx).Create(rel).Error
	if database.IsUniqueViolation(err) {
		return ErrRelationExists
	}
	return err
}
