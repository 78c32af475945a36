package employee

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"mavinci/internal/database"
	"mavinci/internal/pkg/jwt"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:employee_test_%s?mode=memory&cache=shared", t.Name())
	db, err := database.ConnectWithConfig(dsn, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, &Employee{}))
	return db
}

func setupService(t *testing.T) (*Service, *jwt.Service) {
	t.Helper()
	jwtService := jwt.New("test-secret", time.Hour)
	return NewService(NewRepository(setupDB(t)), jwtService, 24*time.Hour), jwtService
}

func createEmployee(t *testing.T, svc *Service, email string, role Role, permissions ...string) *Employee {
	t.Helper()
	e, err := svc.Create(context.Background(), CreateEmployeeRequest{
		Email:       email,
		Password:    "haslo12345",
		Name:        "Anna",
		Surname:     "Nowak",
		Role:        role,
		Permissions: permissions,
	})
	require.NoError(t, err)
	return e
}

func TestLogin(t *testing.T) {
	svc, jwtService := setupService(t)
	ctx := context.Background()
	created := createEmployee(t, svc, "Anna@Mavinci.pl", RoleEmployee, "tasks", "offers")

	res, err := svc.Login(ctx, " anna@mavinci.pl ", "haslo12345")
	require.NoError(t, err)
	assert.Equal(t, created.ID, res.Employee.ID)

	claims, err := jwtService.ValidateToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.EmployeeID)
	assert.Equal(t, "employee", claims.Role)
	assert.Equal(t, []string{"tasks", "offers"}, claims.Permissions)

	_, err = svc.Login(ctx, "anna@mavinci.pl", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@mavinci.pl", "haslo12345")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc, _ := setupService(t)
	createEmployee(t, svc, "jan@mavinci.pl", RoleEmployee)

	_, err := svc.Create(context.Background(), CreateEmployeeRequest{Email: "jan@mavinci.pl", Password: "haslo12345", Name: "Jan"})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestICalTokenIsScoped(t *testing.T) {
	svc, jwtService := setupService(t)
	e := createEmployee(t, svc, "ical@mavinci.pl", RoleEmployee)

	token, err := svc.IssueICalToken(context.Background(), e.ID)
	require.NoError(t, err)

	_, err = jwtService.ValidateToken(token)
	assert.Error(t, err)
	claims, err := jwtService.ValidateScoped(token, jwt.PurposeCalendar)
	require.NoError(t, err)
	assert.Equal(t, e.ID, claims.EmployeeID)
}

func TestUpdatePreferencesMergesViewModes(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	e := createEmployee(t, svc, "prefs@mavinci.pl", RoleEmployee)

	_, err := svc.UpdatePreferences(ctx, e.ID, UpdatePreferencesRequest{ViewModes: map[string]ViewMode{"events": ViewCalendar}})
	require.NoError(t, err)
	prefs, err := svc.UpdatePreferences(ctx, e.ID, UpdatePreferencesRequest{ViewModes: map[string]ViewMode{"tasks": ViewKanban}})
	require.NoError(t, err)

	assert.Equal(t, map[string]ViewMode{"events": ViewCalendar, "tasks": ViewKanban}, prefs.ViewModes)
	assert.True(t, prefs.Notifications.InApp)

	stored, err := svc.Preferences(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, prefs, stored)
}

func TestUpdatePreferencesRejectsUnknownViewMode(t *testing.T) {
	svc, _ := setupService(t)
	e := createEmployee(t, svc, "bad@mavinci.pl", RoleEmployee)

	_, err := svc.UpdatePreferences(context.Background(), e.ID, UpdatePreferencesRequest{ViewModes: map[string]ViewMode{"events": "timeline"}})
	assert.ErrorIs(t, err, ErrInvalidViewMode)
}

func TestNotificationSettings(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	a := createEmployee(t, svc, "a@mavinci.pl", RoleEmployee)
	b := createEmployee(t, svc, "b@mavinci.pl", RoleEmployee)

	_, err := svc.UpdatePreferences(ctx, b.ID, UpdatePreferencesRequest{
		Notifications: &NotificationSettings{InApp: true, MutedCategories: []string{"task"}},
	})
	require.NoError(t, err)

	settings, err := svc.NotificationSettings(ctx, []int64{a.ID, b.ID, 999})
	require.NoError(t, err)
	require.Len(t, settings, 2)
	assert.True(t, settings[a.ID].Wants("task"))
	assert.False(t, settings[b.ID].Wants("task"))
	assert.True(t, settings[b.ID].Wants("event"))
}

func TestSaveNavigationOrderNormalizes(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	e := createEmployee(t, svc, "nav@mavinci.pl", RoleAdmin)

	saved, err := svc.SaveNavigationOrder(ctx, e.ID, []string{"tasks", "unknown", "tasks", "offers"})
	require.NoError(t, err)
	assert.Equal(t, []string{"tasks", "offers"}, saved)

	order, err := svc.NavigationOrder(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"tasks", "offers"}, order)

	_, err = svc.SaveNavigationOrder(ctx, 404, nil)
	assert.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestNotificationSettingsWants(t *testing.T) {
	assert.False(t, NotificationSettings{InApp: false}.Wants("task"))
	assert.True(t, NotificationSettings{InApp: true}.Wants("task"))
}

func TestRepositoryKeepsInactiveFlag(t *testing.T) {
	repo := NewRepository(setupDB(t))
	ctx := context.Background()

	e := &Employee{Email: "byly@mavinci.pl", PasswordHash: "x", Name: "Były", Role: RoleEmployee, IsActive: false}
	require.NoError(t, repo.Create(ctx, e))

	stored, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}
