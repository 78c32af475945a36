package equipment

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

const (
	catalogKey = "equipment:catalog"
	CacheTag   = "equipment"
)

var catalogTags = []string{CacheTag, "equipment_items", "equipment_units", "equipment_categories"}

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

// Catalog returns every item grouped by category with its stock level.
func (s *Service) Catalog(ctx context.Context) (Catalog, error) {
	return cache.Remember(s.cache, catalogKey, catalogTags, func() (Catalog, error) {
		var (
			categories []Category
			items      []Item
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			categories, err = s.repo.ListCategories(gctx)
			return err
		})
		g.Go(func() error {
			var err error
			items, err = s.repo.ListItems(gctx)
			return err
		})
		if err := g.Wait(); err != nil {
			return Catalog{}, fmt.Errorf("load equipment catalog: %w", err)
		}

		for i := range items {
			items[i].Units = validUnits(items[i].Units)
		}
		return GroupByCategory(items, categories), nil
	})
}

// validUnits drops units whose stored status is not one we know.
func validUnits(units []Unit) []Unit {
	out := units[:0]
	for _, u := range units {
		if err := validator.Row("equipment_units", u); err != nil {
			log.Printf("equipment_unit_rejected id=%d item_id=%d err=%v", u.ID, u.ItemID, err)
			continue
		}
		out = append(out, u)
	}
	return out
}

func (s *Service) CategoryPath(ctx context.Context, id int64) (*PathResponse, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	chain, err := IndexCategories(categories).Chain(id)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(chain))
	for i, c := range chain {
		names[i] = c.Name
	}
	return &PathResponse{CategoryID: id, Path: strings.Join(names, pathSeparator), Chain: chain}, nil
}

func (s *Service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	if req.ParentID != nil {
		if _, err := s.repo.GetCategory(ctx, *req.ParentID); err != nil {
			return nil, err
		}
	}
	c := &Category{Name: strings.TrimSpace(req.Name), ParentID: req.ParentID}
	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}
	s.changed("equipment_categories", realtime.EventInsert, c.ID, c, nil)
	return c, nil
}

func (s *Service) GetItem(ctx context.Context, id int64) (*CatalogItem, error) {
	it, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	it.Units = validUnits(it.Units)
	ci := NewCatalogItem(*it)
	return &ci, nil
}

func (s *Service) CreateItem(ctx context.Context, req CreateItemRequest) (*CatalogItem, error) {
	if req.CategoryID != nil {
		if _, err := s.repo.GetCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}
	if req.IsKit && req.InitialUnits > 0 {
		return nil, ErrKitUnits
	}

	it := &Item{
		Name:        strings.TrimSpace(req.Name),
		Brand:       req.Brand,
		Model:       req.Model,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		IsKit:       req.IsKit,
	}
	for i := 0; i < req.InitialUnits; i++ {
		it.Units = append(it.Units, Unit{Status: UnitAvailable})
	}
	if err := s.repo.CreateItem(ctx, it); err != nil {
		return nil, err
	}
	s.changed("equipment_items", realtime.EventInsert, it.ID, it, nil)
	ci := NewCatalogItem(*it)
	return &ci, nil
}

func (s *Service) AddUnit(ctx context.Context, itemID int64, req CreateUnitRequest) (*Unit, error) {
	status := req.Status
	if status == "" {
		status = UnitAvailable
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	it, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if it.IsKit {
		return nil, ErrKitUnits
	}

	u := &Unit{ItemID: itemID, SerialNumber: req.SerialNumber, Status: status, Notes: req.Notes}
	if err := s.repo.CreateUnit(ctx, u); err != nil {
		return nil, err
	}
	s.changed("equipment_units", realtime.EventInsert, u.ID, u, nil)
	return u, nil
}

// UpdateUnitStatus changes the status of one unit. Last write wins.
func (s *Service) UpdateUnitStatus(ctx context.Context, unitID int64, req UpdateUnitStatusRequest) (*Unit, error) {
	if !req.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	old, err := s.repo.GetUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{"status": req.Status}
	if req.Notes != nil {
		fields["notes"] = *req.Notes
	}
	if err := s.repo.UpdateUnit(ctx, unitID, fields); err != nil {
		return nil, err
	}
	u, err := s.repo.GetUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}
	s.changed("equipment_units", realtime.EventUpdate, u.ID, u, old)
	return u, nil
}

// changed drops the cached catalog and tells realtime subscribers.
func (s *Service) changed(table string, event realtime.EventType, id int64, record, old any) {
	if s.cache != nil {
		s.cache.InvalidateTags(CacheTag)
	}
	if s.publisher != nil {
		s.publisher.Publish(realtime.Change{Table: table, Event: event, ID: id, Record: record, Old: old})
	}
}
