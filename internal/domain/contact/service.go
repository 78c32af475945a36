package contact

import (
	"context"
	"fmt"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"

	"mavinci/internal/cache"
	"mavinci/internal/pkg/validator"
	"mavinci/internal/realtime"
)

const unifiedKey = "contacts:unified"

// CacheTags are the tables the unified list is built from.
var CacheTags = []string{"contacts", "organizations", "contact_organizations"}

type Publisher interface {
	Publish(ch realtime.Change)
}

type Service struct {
	repo      Repository
	cache     *cache.Store
	publisher Publisher
}

func NewService(repo Repository, store *cache.Store, publisher Publisher) *Service {
	return &Service{repo: repo, cache: store, publisher: publisher}
}

// List returns the unified client list narrowed by type and search text.
func (s *Service) List(ctx context.Context, q ListQuery) ([]Unified, error) {
	entity := EntityType(q.Type)
	switch entity {
	case "", "all", EntityOrganization, EntityContact, EntityIndividual:
	default:
		return nil, ErrInvalidType
	}
	all, err := cache.Remember(s.cache, unifiedKey, CacheTags, func() ([]Unified, error) {
		return s.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return Filter(all, entity, q.Q), nil
}

func (s *Service) load(ctx context.Context) ([]Unified, error) {
	var (
		orgs      []Organization
		contacts  []Contact
		relations []ContactOrganization
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		orgs, err = s.repo.ListOrganizations(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		contacts, err = s.repo.ListContacts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		relations, err = s.repo.ListRelations(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load clients: %w", err)
	}
	return Unify(validOrganizations(orgs), validContacts(contacts), relations), nil
}

func validOrganizations(list []Organization) []Organization {
	out := make([]Organization, 0, len(list))
	for _, o := range list {
		if err := validator.Row("organizations", o); err != nil {
			log.Printf("organization_rejected id=%d err=%v", o.ID, err)
			continue
		}
		out = append(out, o)
	}
	return out
}

func validContacts(list []Contact) []Contact {
	out := make([]Contact, 0, len(list))
	for _, c := range list {
		if err := validator.Row("contacts", c); err != nil {
			log.Printf("contact_rejected id=%d err=%v", c.ID, err)
			continue
		}
		out = append(out, c)
	}
	return out
}

func (s *Service) CreateOrganization(ctx context.Context, req CreateOrganizationRequest) (*Organization, error) {
	o := &Organization{
		Name:    strings.TrimSpace(req.Name),
		TaxID:   req.TaxID,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		City:    req.City,
		Notes:   req.Notes,
	}
	if err := s.repo.CreateOrganization(ctx, o); err != nil {
		return nil, err
	}
	s.changed("organizations", o.ID, o)
	return o, nil
}

func (s *Service) CreateContact(ctx context.Context, req CreateContactRequest) (*Contact, error) {
	kind := req.ContactType
	if kind == "" {
		kind = TypeContact
	}
	if !kind.Valid() {
		return nil, ErrInvalidType
	}
	if req.OrganizationID != nil {
		if _, err := s.repo.GetOrganization(ctx, *req.OrganizationID); err != nil {
			return nil, err
		}
	}

	c := &Contact{
		ContactType: kind,
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		Email:       req.Email,
		Phone:       req.Phone,
		Position:    req.Position,
		Notes:       req.Notes,
	}
	if err := s.repo.CreateContact(ctx, c); err != nil {
		return nil, err
	}
	s.changed("contacts", c.ID, c)

	if req.OrganizationID != nil {
		if _, err := s.link(ctx, c.ID, *req.OrganizationID, true, req.Position); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// LinkOrganization records that a contact works (or worked) for an
// organization. New links are current unless IsCurrent says otherwise.
func (s *Service) LinkOrganization(ctx context.Context, contactID int64, req LinkOrganizationRequest) (*ContactOrganization, error) {
	if _, err := s.repo.GetContact(ctx, contactID); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetOrganization(ctx, req.OrganizationID); err != nil {
		return nil, err
	}
	current := true
	if req.IsCurrent != nil {
		current = *req.IsCurrent
	}
	return s.link(ctx, contactID, req.OrganizationID, current, req.Position)
}

func (s *Service) link(ctx context.Context, contactID, orgID int64, current bool, position string) (*ContactOrganization, error) {
	rel := &ContactOrganization{
		ContactID:      contactID,
		OrganizationID: orgID,
		IsCurrent:      current,
		Position:       position,
	}
	if err := s.repo.CreateRelation(ctx, rel); err != nil {
		return nil, err
	}
	s.changed("contact_organizations", rel.ID, rel)
	return rel, nil
}

func (s *Service) changed(table string, id int64, record any) {
	if s.cache != nil {
		s.cache.InvalidateTags(table)
	}
	if s.publisher != nil {
		s.publisher.Publish(realtime.Change{Table: table, Event: realtime.EventInsert, ID: id, Record: record})
	}
}
