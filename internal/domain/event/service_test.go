package event

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mavinci/internal/cache"
	"mavinci/internal/database"
	"mavinci/internal/domain/contact"
	"mavinci/internal/domain/offer"
	"mavinci/internal/domain/task"
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

func (r *recorder) count(table string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, ch := range r.changes {
		if ch.Table == table {
			n++
		}
	}
	return n
}

type fixture struct {
	svc   *Service
	db    *gorm.DB
	cache *cache.Store
	files *storage.Service
	rec   *recorder
}

func setup(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:event_test_%s?mode=memory&cache=shared", t.Name())
	db, err := database.ConnectWithConfig(dsn, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	models := append(Models(), contact.Models()...)
	models = append(models, offer.Models()...)
	models = append(models, task.Models()...)
	require.NoError(t, database.Migrate(db, models...))

	store, err := cache.New(32)
	require.NoError(t, err)
	files := storage.NewService(t.TempDir(), "/api/v1/storage/object", 1<<20, time.Hour, jwt.New("test-secret", time.Hour))
	rec := &recorder{}
	return &fixture{
		svc:   NewService(NewRepository(db), store, files, rec),
		db:    db,
		cache: store,
		files: files,
		rec:   rec,
	}
}

var june = time.Date(2026, 6, 20, 18, 0, 0, 0, time.UTC)

func (f *fixture) event(t *testing.T, name string, at time.Time, req CreateEventRequest) *Event {
	t.Helper()
	req.Name = name
	req.EventDate = at
	e, err := f.svc.CreateEvent(context.Background(), 1, req)
	require.NoError(t, err)
	return e
}

func (f *fixture) offer(t *testing.T, eventID int64, number string, status offer.Status, net string) {
	t.Helper()
	require.NoError(t, f.db.Create(&offer.Offer{
		OfferNumber: number,
		EventID:     &eventID,
		Status:      status,
		VATRate:     offer.DefaultVATRate,
		TotalNet:    decimal.RequireFromString(net),
		TotalGross:  decimal.RequireFromString(net),
	}).Error)
}

func (f *fixture) task(t *testing.T, eventID int64, column task.Column) {
	t.Helper()
	require.NoError(t, f.db.Create(&task.Task{EventID: &eventID, Title: "zadanie", BoardColumn: column, Priority: task.PriorityMedium}).Error)
}

func TestListEventsAggregates(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	org := contact.Organization{Name: "Hotel Górski"}
	require.NoError(t, f.db.Create(&org).Error)
	person := contact.Contact{ContactType: contact.TypeIndividual, FirstName: "Marta", LastName: "Lis"}
	require.NoError(t, f.db.Create(&person).Error)

	gala := f.event(t, "Gala noworoczna", june, CreateEventRequest{OrganizationID: &org.ID})
	wedding := f.event(t, "Wesele", june.AddDate(0, 1, 0), CreateEventRequest{ContactID: &person.ID, Location: "Kraków"})

	f.offer(t, gala.ID, "OF/2026/0001", offer.StatusAccepted, "1000")
	f.offer(t, gala.ID, "OF/2026/0002", offer.StatusAccepted, "250.50")
	f.offer(t, gala.ID, "OF/2026/0003", offer.StatusSent, "9999")
	f.task(t, gala.ID, task.ColumnTodo)
	f.task(t, gala.ID, task.ColumnCompleted)
	f.task(t, wedding.ID, task.ColumnReview)

	list, err := f.svc.ListEvents(ctx, ListQuery{})
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "Gala noworoczna", list[0].Name)
	assert.Equal(t, "Hotel Górski", list[0].ClientName)
	assert.Equal(t, 3, list[0].OffersCount)
	assert.Equal(t, 2, list[0].TasksCount)
	assert.Equal(t, "1250.50", list[0].AcceptedOfferValue.StringFixed(2))

	assert.Equal(t, "Marta Lis", list[1].ClientName)
	assert.Equal(t, 0, list[1].OffersCount)
	assert.Equal(t, 1, list[1].TasksCount)
	assert.True(t, list[1].AcceptedOfferValue.IsZero())
}

func TestListEventsFilters(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	f.event(t, "Konferencja IT", june, CreateEventRequest{Location: "Łódź"})
	f.event(t, "Piknik firmowy", june.AddDate(0, 2, 0), CreateEventRequest{Status: StatusInPreparation})

	list, err := f.svc.ListEvents(ctx, ListQuery{Status: string(StatusInPreparation)})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Piknik firmowy", list[0].Name)

	from := june.AddDate(0, 1, 0)
	list, err = f.svc.ListEvents(ctx, ListQuery{From: &from})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Piknik firmowy", list[0].Name)

	list, err = f.svc.ListEvents(ctx, ListQuery{Q: "ŁÓDŹ"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Konferencja IT", list[0].Name)

	_, err = f.svc.ListEvents(ctx, ListQuery{Status: "archived"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestListEventsCacheFollowsOfferChanges(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	e := f.event(t, "Koncert", june, CreateEventRequest{})

	list, err := f.svc.ListEvents(ctx, ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, list[0].OffersCount)

	f.offer(t, e.ID, "OF/2026/0010", offer.StatusDraft, "10")
	list, err = f.svc.ListEvents(ctx, ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, list[0].OffersCount, "served from cache")

	f.cache.InvalidateTags("offers")
	list, err = f.svc.ListEvents(ctx, ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, list[0].OffersCount)
}

func TestCreateEventValidation(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	e := f.event(t, "Domyślny", june, CreateEventRequest{})
	assert.Equal(t, StatusOfferSent, e.Status)
	assert.Equal(t, int64(1), e.CreatedBy)

	_, err := f.svc.CreateEvent(ctx, 1, CreateEventRequest{Name: "X", EventDate: june, Status: "draft"})
	assert.ErrorIs(t, err, ErrInvalidStatus)

	missing := int64(77)
	_, err = f.svc.CreateEvent(ctx, 1, CreateEventRequest{Name: "X", EventDate: june, OrganizationID: &missing})
	assert.ErrorIs(t, err, ErrClientNotFound)
	_, err = f.svc.CreateEvent(ctx, 1, CreateEventRequest{Name: "X", EventDate: june, ContactID: &missing})
	assert.ErrorIs(t, err, ErrClientNotFound)
}

func TestUpdateStatus(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	e := f.event(t, "Targi", june, CreateEventRequest{})

	got, err := f.svc.UpdateStatus(ctx, e.ID, StatusOfferAccepted)
	require.NoError(t, err)
	assert.Equal(t, StatusOfferAccepted, got.Status)

	_, err = f.svc.UpdateStatus(ctx, e.ID, "done")
	assert.ErrorIs(t, err, ErrInvalidStatus)
	_, err = f.svc.UpdateStatus(ctx, 404, StatusCompleted)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestDocumentsSubfolderIsIdempotent(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	e := f.event(t, "Gala", june, CreateEventRequest{})

	first, err := f.svc.GetOrCreateDocumentsSubfolder(ctx, e.ID, " Umowy ")
	require.NoError(t, err)
	assert.Equal(t, "Umowy", first.Name)
	assert.Equal(t, "Dokumenty/Umowy", first.Path)
	require.NotNil(t, first.ParentID)

	again, err := f.svc.GetOrCreateDocumentsSubfolder(ctx, e.ID, "Umowy")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	other, err := f.svc.GetOrCreateDocumentsSubfolder(ctx, e.ID, "Faktury")
	require.NoError(t, err)
	assert.Equal(t, *first.ParentID, *other.ParentID)

	var count int64
	require.NoError(t, f.db.Model(&Folder{}).Where("event_id = ?", e.ID).Count(&count).Error)
	assert.Equal(t, int64(3), count)
	assert.Equal(t, 3, f.rec.count("event_folders"))

	for _, bad := range []string{"", "  ", "a/b", `a\b`, ".."} {
		_, err := f.svc.GetOrCreateDocumentsSubfolder(ctx, e.ID, bad)
		assert.ErrorIs(t, err, ErrInvalidFolderName, bad)
	}
	_, err = f.svc.GetOrCreateDocumentsSubfolder(ctx, 404, "Umowy")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestCreateFolderRaceLoadsExisting(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	e := f.event(t, "Gala", june, CreateEventRequest{})
	repo := NewRepository(f.db)

	a := &Folder{EventID: e.ID, Name: DocumentsFolder, Path: DocumentsFolder}
	require.NoError(t, repo.CreateFolder(ctx, a))
	b := &Folder{EventID: e.ID, Name: DocumentsFolder, Path: DocumentsFolder}
	require.NoError(t, repo.CreateFolder(ctx, b))
	assert.Equal(t, a.ID, b.ID)
}

func TestEventDetails(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	org := contact.Organization{Name: "Opera Bałtycka", Email: "opera@example.pl"}
	require.NoError(t, f.db.Create(&org).Error)
	e := f.event(t, "Premiera", june, CreateEventRequest{OrganizationID: &org.ID})
	f.offer(t, e.ID, "OF/2026/0100", offer.StatusAccepted, "500")
	f.task(t, e.ID, task.ColumnInProgress)
	f.task(t, e.ID, task.ColumnInProgress)

	contracts, err := f.svc.GetOrCreateDocumentsSubfolder(ctx, e.ID, "Umowy")
	require.NoError(t, err)
	_, err = f.svc.UploadFile(ctx, 1, e.ID, &contracts.ID, "umowa.pdf", strings.NewReader("%PDF-1.4 umowa"))
	require.NoError(t, err)
	loose, err := f.svc.UploadFile(ctx, 1, e.ID, nil, "plan sali.txt", strings.NewReader("plan"))
	require.NoError(t, err)
	assert.Contains(t, loose.URL, "/sign/event-files/")

	d, err := f.svc.GetEventDetails(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Premiera", d.Event.Name)
	require.NotNil(t, d.Client)
	assert.Equal(t, "Opera Bałtycka", d.Client.Name)
	require.Len(t, d.Offers, 1)
	assert.Equal(t, "OF/2026/0100", d.Offers[0].OfferNumber)
	assert.Equal(t, 2, d.Tasks.Total)
	assert.Equal(t, 2, d.Tasks.ByColumn[task.ColumnInProgress])

	require.Len(t, d.Folders, 1)
	require.Len(t, d.Folders[0].Children, 1)
	docs := d.Folders[0].Children[0].Files
	require.Len(t, docs, 1)
	assert.Equal(t, "umowa.pdf", docs[0].FileName)
	assert.Contains(t, docs[0].URL, "token=")
	require.Len(t, d.Files, 1)
	assert.Equal(t, "plan sali.txt", d.Files[0].FileName)

	_, err = f.svc.GetEventDetails(ctx, 404)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestUploadFileChecksFolder(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	a := f.event(t, "A", june, CreateEventRequest{})
	b := f.event(t, "B", june, CreateEventRequest{})
	folder, err := f.svc.GetOrCreateDocumentsSubfolder(ctx, a.ID, "Umowy")
	require.NoError(t, err)

	_, err = f.svc.UploadFile(ctx, 1, b.ID, &folder.ID, "x.txt", strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrFolderNotFound)
}
