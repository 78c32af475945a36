package contact

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mavinci/internal/cache"
	"mavinci/internal/database"
	"mavinci/internal/realtime"
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

func (r *recorder) tables() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.changes))
	for i, ch := range r.changes {
		out[i] = ch.Table
	}
	return out
}

type fixture struct {
	svc   *Service
	db    *gorm.DB
	cache *cache.Store
	rec   *recorder
}

func setup(t *testing.T) *fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:contact_test_%s?mode=memory&cache=shared", t.Name())
	db, err := database.ConnectWithConfig(dsn, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, Models()...))

	store, err := cache.New(32)
	require.NoError(t, err)
	rec := &recorder{}
	return &fixture{svc: NewService(NewRepository(db), store, rec), db: db, cache: store, rec: rec}
}

func TestCreateAndList(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	org, err := f.svc.CreateOrganization(ctx, CreateOrganizationRequest{Name: " Gala Sp. z o.o. ", Email: "biuro@gala.pl"})
	require.NoError(t, err)
	assert.Equal(t, "Gala Sp. z o.o.", org.Name)

	anna, err := f.svc.CreateContact(ctx, CreateContactRequest{FirstName: "Anna", LastName: "Wiśniewska", OrganizationID: &org.ID})
	require.NoError(t, err)
	assert.Equal(t, TypeContact, anna.ContactType)

	_, err = f.svc.CreateContact(ctx, CreateContactRequest{ContactType: TypeIndividual, FirstName: "Jan", LastName: "Prywatny"})
	require.NoError(t, err)

	assert.Equal(t, []string{"organizations", "contacts", "contact_organizations", "contacts"}, f.rec.tables())

	list, err := f.svc.List(ctx, ListQuery{})
	require.NoError(t, err)
	require.Len(t, list, 3)
	keyed := byKey(list)
	assert.Equal(t, 1, *keyed[fmt.Sprintf("organization:%d", org.ID)].ContactsCount)
	assert.Equal(t, 1, *keyed[fmt.Sprintf("contact:%d", anna.ID)].OrganizationsCount)

	list, err = f.svc.List(ctx, ListQuery{Type: "individual"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Jan Prywatny"}, names(list))

	list, err = f.svc.List(ctx, ListQuery{Q: "WIŚNIEW"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Anna Wiśniewska"}, names(list))
}

func TestListIsCachedUntilTablesChange(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	org, err := f.svc.CreateOrganization(ctx, CreateOrganizationRequest{Name: "Scena"})
	require.NoError(t, err)

	_, err = f.svc.List(ctx, ListQuery{})
	require.NoError(t, err)

	// written by another instance, no local invalidation
	require.NoError(t, f.db.Create(&Contact{ContactType: TypeContact, FirstName: "Obcy"}).Error)
	list, err := f.svc.List(ctx, ListQuery{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	// what the realtime listener does for a change on contacts
	f.cache.InvalidateTags("contacts")
	list, err = f.svc.List(ctx, ListQuery{})
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = f.svc.CreateContact(ctx, CreateContactRequest{FirstName: "Nowy", OrganizationID: &org.ID})
	require.NoError(t, err)
	list, err = f.svc.List(ctx, ListQuery{Type: "organization"})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, *list[0].ContactsCount)
}

func TestLinkOrganization(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	org, err := f.svc.CreateOrganization(ctx, CreateOrganizationRequest{Name: "Hotel Bristol"})
	require.NoError(t, err)
	c, err := f.svc.CreateContact(ctx, CreateContactRequest{FirstName: "Piotr"})
	require.NoError(t, err)

	past := false
	rel, err := f.svc.LinkOrganization(ctx, c.ID, LinkOrganizationRequest{OrganizationID: org.ID, IsCurrent: &past})
	require.NoError(t, err)
	assert.False(t, rel.IsCurrent)

	stored, err := NewRepository(f.db).ListRelations(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.False(t, stored[0].IsCurrent, "is_current=false survives the insert")

	_, err = f.svc.LinkOrganization(ctx, c.ID, LinkOrganizationRequest{OrganizationID: org.ID})
	assert.ErrorIs(t, err, ErrRelationExists)

	_, err = f.svc.LinkOrganization(ctx, 999, LinkOrganizationRequest{OrganizationID: org.ID})
	assert.ErrorIs(t, err, ErrContactNotFound)
	_, err = f.svc.LinkOrganization(ctx, c.ID, LinkOrganizationRequest{OrganizationID: 999})
	assert.ErrorIs(t, err, ErrOrganizationNotFound)

	list, err := f.svc.List(ctx, ListQuery{Type: "organization"})
	require.NoError(t, err)
	assert.Equal(t, 0, *list[0].ContactsCount, "past relations are not counted")
}

func TestCreateContactRejects(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.svc.CreateContact(ctx, CreateContactRequest{ContactType: "vendor", FirstName: "X"})
	assert.ErrorIs(t, err, ErrInvalidType)

	missing := int64(404)
	_, err = f.svc.CreateContact(ctx, CreateContactRequest{FirstName: "X", OrganizationID: &missing})
	assert.ErrorIs(t, err, ErrOrganizationNotFound)

	_, err = f.svc.List(ctx, ListQuery{Type: "vendor"})
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestMalformedRowsAreSkipped(t *testing.T) {
	f := setup(t)
	require.NoError(t, f.db.Create(&Contact{ContactType: TypeContact, FirstName: "Dobry"}).Error)
	require.NoError(t, f.db.Exec(
		"INSERT INTO contacts (contact_type, first_name, last_name, email, phone, position, notes, created_at, updated_at) VALUES ('vendor', 'Zły', '', '', '', '', '', CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)",
	).Error)

	list, err := f.svc.List(context.Background(), ListQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Dobry"}, names(list))
}
