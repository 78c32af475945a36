package event

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/cases"

	"mavinci/internal/cache"
	"mavinci/internal/domain/contact"
	"mavinci/internal/domain/offer"
	"mavinci/internal/realtime"
	"mavinci/internal/storage"
)

// listTags are the tables an events list is built from.
var listTags = []string{"events", "offers", "tasks", "organizations", "contacts"}

type Publisher interface {
	Publish(ch realtime.Change)
}

type FileStore interface {
	Upload(ctx context.Context, bucket, objectPath string, r io.Reader, opts storage.UploadOptions) (*storage.Object, error)
	Delete(ctx context.Context, bucket, objectPath string) error
	SignedURL(bucket, objectPath string, ttl time.Duration) (string, error)
}

type Service struct {
	repo      Repository
	cache     *cache.Store
	files     FileStore
	publisher Publisher
}

func NewService(repo Repository, store *cache.Store, files FileStore, publisher Publisher) *Service {
	return &Service{repo: repo, cache: store, files: files, publisher: publisher}
}

// ListEvents returns events with their client name, offer and task counts
// and the value of accepted offers.
func (s *Service) ListEvents(ctx context.Context, q ListQuery) ([]ListItem, error) {
	f := Filter{Status: Status(q.Status), From: q.From, To: q.To}
	if f.Status != "" && !f.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	key := fmt.Sprintf("events:list:%s:%s:%s", f.Status, dayKey(f.From), dayKey(f.To))
	items, err := cache.Remember(s.cache, key, listTags, func() ([]ListItem, error) {
		return s.loadList(ctx, f)
	})
	if err != nil {
		return nil, err
	}

	needle := cases.Fold().String(strings.TrimSpace(q.Q))
	out := make([]ListItem, 0, len(items))
	for _, it := range items {
		if matches(it, needle) {
			out = append(out, it)
		}
	}
	return out, nil
}

func dayKey(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

func (s *Service) loadList(ctx context.Context, f Filter) ([]ListItem, error) {
	events, err := s.repo.ListEvents(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	ids := make([]int64, 0, len(events))
	var orgIDs, contactIDs []int64
	for _, e := range events {
		ids = append(ids, e.ID)
		if e.OrganizationID != nil {
			orgIDs = append(orgIDs, *e.OrganizationID)
		}
		if e.ContactID != nil {
			contactIDs = append(contactIDs, *e.ContactID)
		}
	}

	var (
		offers   map[int64]OfferStats
		tasks    map[int64]int
		orgs     map[int64]contact.Organization
		contacts map[int64]contact.Contact
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		offers, err = s.repo.OfferStats(gctx, ids)
		return err
	})
	g.Go(func() (err error) {
		tasks, err = s.repo.TaskCounts(gctx, ids)
		return err
	})
	g.Go(func() (err error) {
		orgs, err = s.repo.Organizations(gctx, orgIDs)
		return err
	})
	g.Go(func() (err error) {
		contacts, err = s.repo.Contacts(gctx, contactIDs)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("aggregate events: %w", err)
	}

	out := make([]ListItem, 0, len(events))
	for _, e := range events {
		item := ListItem{
			Event:              e,
			OffersCount:        offers[e.ID].OffersCount,
			TasksCount:         tasks[e.ID],
			AcceptedOfferValue: offers[e.ID].AcceptedValue,
		}
		if c := clientOf(e, orgs, contacts); c != nil {
			item.ClientName = c.Name
		}
		out = append(out, item)
	}
	return out, nil
}

// GetEventDetails loads an event with its client, offers, task summary and
// document tree.
func (s *Service) GetEventDetails(ctx context.Context, id int64) (*Details, error) {
	e, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}

	var (
		offers   []offer.Offer
		columns  []ColumnCount
		folders  []Folder
		files    []File
		orgs     map[int64]contact.Organization
		contacts map[int64]contact.Contact
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		offers, err = s.repo.ListOffers(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		columns, err = s.repo.TaskColumns(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		folders, err = s.repo.ListFolders(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		files, err = s.repo.ListFiles(gctx, id)
		return err
	})
	g.Go(func() (err error) {
		orgs, err = s.repo.Organizations(gctx, optional(e.OrganizationID))
		return err
	})
	g.Go(func() (err error) {
		contacts, err = s.repo.Contacts(gctx, optional(e.ContactID))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load event %d: %w", id, err)
	}

	for i := range files {
		s.sign(&files[i])
	}
	tree, loose := buildTree(folders, files)
	if offers == nil {
		offers = []offer.Offer{}
	}
	return &Details{
		Event:   *e,
		Client:  clientOf(*e, orgs, contacts),
		Offers:  offers,
		Tasks:   summarize(columns),
		Folders: tree,
		Files:   loose,
	}, nil
}

func optional(id *int64) []int64 {
	if id == nil {
		return nil
	}
	return []int64{*id}
}

func (s *Service) CreateEvent(ctx context.Context, employeeID int64, req CreateEventRequest) (*Event, error) {
	status := req.Status
	if status == "" {
		status = StatusOfferSent
	}
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	if req.OrganizationID != nil {
		orgs, err := s.repo.Organizations(ctx, []int64{*req.OrganizationID})
		if err != nil {
			return nil, err
		}
		if _, ok := orgs[*req.OrganizationID]; !ok {
			return nil, ErrClientNotFound
		}
	}
	if req.ContactID != nil {
		contacts, err := s.repo.Contacts(ctx, []int64{*req.ContactID})
		if err != nil {
			return nil, err
		}
		if _, ok := contacts[*req.ContactID]; !ok {
			return nil, ErrClientNotFound
		}
	}

	e := &Event{
		Name:           strings.TrimSpace(req.Name),
		OrganizationID: req.OrganizationID,
		ContactID:      req.ContactID,
		EventDate:      req.EventDate,
		EndDate:        req.EndDate,
		Location:       req.Location,
		Status:         status,
		Description:    req.Description,
		CreatedBy:      employeeID,
	}
	if err := s.repo.CreateEvent(ctx, e); err != nil {
		return nil, err
	}
	s.changed("events", realtime.EventInsert, e.ID, e, nil)
	return e, nil
}

// UpdateStatus sets the event status. Last write wins.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status Status) (*Event, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	old, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	e, err := s.repo.GetEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	s.changed("events", realtime.EventUpdate, e.ID, e, old)
	return e, nil
}

// GetOrCreateDocumentsSubfolder returns the named folder under the event's
// documents folder, creating both as needed. Calling it again with the same
// name returns the same folder.
func (s *Service) GetOrCreateDocumentsSubfolder(ctx context.Context, eventID int64, name string) (*Folder, error) {
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return nil, ErrInvalidFolderName
	}
	if _, err := s.repo.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	root, err := s.ensureFolder(ctx, eventID, nil, DocumentsFolder)
	if err != nil {
		return nil, err
	}
	return s.ensureFolder(ctx, eventID, root, name)
}

func (s *Service) ensureFolder(ctx context.Context, eventID int64, parent *Folder, name string) (*Folder, error) {
	path := name
	var parentID *int64
	if parent != nil {
		path = parent.Path + "/" + name
		parentID = &parent.ID
	}
	f, err := s.repo.FindFolder(ctx, eventID, path)
	if err == nil {
		return f, nil
	}
	if !errors.Is(err, ErrFolderNotFound) {
		return nil, err
	}

	f = &Folder{EventID: eventID, ParentID: parentID, Name: name, Path: path}
	if err := s.repo.CreateFolder(ctx, f); err != nil {
		return nil, err
	}
	s.changed("event_folders", realtime.EventInsert, f.ID, f, nil)
	return f, nil
}

// UploadFile stores a document of the event in the event-files bucket,
// optionally inside one of its folders.
func (s *Service) UploadFile(ctx context.Context, employeeID, eventID int64, folderID *int64, filename string, r io.Reader) (*File, error) {
	if _, err := s.repo.GetEvent(ctx, eventID); err != nil {
		return nil, err
	}
	if folderID != nil {
		if _, err := s.repo.GetFolder(ctx, eventID, *folderID); err != nil {
			return nil, err
		}
	}

	obj, err := s.files.Upload(ctx, storage.BucketEventFiles, storage.ObjectName(fmt.Sprintf("%d", eventID), filename), r, storage.UploadOptions{})
	if err != nil {
		return nil, err
	}
	f := &File{
		EventID:    eventID,
		FolderID:   folderID,
		FileName:   filename,
		Bucket:     obj.Bucket,
		Path:       obj.Path,
		MimeType:   obj.ContentType,
		Size:       obj.Size,
		UploadedBy: employeeID,
	}
	if err := s.repo.CreateFile(ctx, f); err != nil {
		if derr := s.files.Delete(ctx, obj.Bucket, obj.Path); derr != nil {
			log.Printf("event_file_orphan bucket=%s path=%s err=%v", obj.Bucket, obj.Path, derr)
		}
		return nil, err
	}
	s.changed("event_files", realtime.EventInsert, f.ID, f, nil)
	s.sign(f)
	return f, nil
}

func (s *Service) sign(f *File) {
	if s.files == nil {
		return
	}
	url, err := s.files.SignedURL(f.Bucket, f.Path, 0)
	if err != nil {
		log.Printf("event_file_sign_failed id=%d err=%v", f.ID, err)
		return
	}
	f.URL = url
}

func (s *Service) changed(table string, event realtime.EventType, id int64, record, old any) {
	if s.cache != nil {
		s.cache.InvalidateTags(table)
	}
	if s.publisher != nil {
		s.publisher.Publish(realtime.Change{Table: table, Event: event, ID: id, Record: record, Old: old})
	}
}
