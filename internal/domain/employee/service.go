package employee

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"mavinci/internal/domain/navigation"
	"mavinci/internal/pkg/jwt"
)

type Service struct {
	repo       Repository
	jwtService *jwt.Service
	icalTTL    time.Duration
}

func NewService(repo Repository, jwtService *jwt.Service, icalTTL time.Duration) *Service {
	return &Service{repo: repo, jwtService: jwtService, icalTTL: icalTTL}
}

// Login checks the password and issues an access token.
func (s *Service) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	e, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, ErrEmployeeNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	if !e.IsActive {
		return nil, ErrInactive
	}

	token, err := s.jwtService.GenerateToken(e.ID, string(e.Role), e.Permissions)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &LoginResponse{Token: token, Employee: e}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Employee, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]*Employee, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, req CreateEmployeeRequest) (*Employee, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	role := req.Role
	if role == "" {
		role = RoleEmployee
	}
	permissions := req.Permissions
	if permissions == nil {
		permissions = []string{}
	}

	e := &Employee{
		Email:           strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash:    string(hash),
		Name:            req.Name,
		Surname:         req.Surname,
		Phone:           req.Phone,
		Role:            role,
		Permissions:     permissions,
		NavigationOrder: []string{},
		Preferences:     datatypes.NewJSONType(DefaultPreferences()),
		IsActive:        true,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) UpdatePermissions(ctx context.Context, id int64, permissions []string) (*Employee, error) {
	if permissions == nil {
		permissions = []string{}
	}
	if err := s.repo.UpdatePermissions(ctx, id, permissions); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, id)
}

// IssueICalToken returns a long-lived token that only opens the calendar feed.
func (s *Service) IssueICalToken(ctx context.Context, id int64) (string, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return "", err
	}
	return s.jwtService.GenerateScoped(id, jwt.PurposeCalendar, "calendar", s.icalTTL)
}

func (s *Service) Preferences(ctx context.Context, id int64) (Preferences, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Preferences{}, err
	}
	return normalize(e.Preferences.Data()), nil
}

// UpdatePreferences merges req into the stored preferences. View modes are
// merged per module; notifications are replaced as a whole.
func (s *Service) UpdatePreferences(ctx context.Context, id int64, req UpdatePreferencesRequest) (Preferences, error) {
	for _, mode := range req.ViewModes {
		if !mode.Valid() {
			return Preferences{}, ErrInvalidViewMode
		}
	}

	prefs, err := s.Preferences(ctx, id)
	if err != nil {
		return Preferences{}, err
	}
	for module, mode := range req.ViewModes {
		prefs.ViewModes[module] = mode
	}
	if req.Notifications != nil {
		prefs.Notifications = *req.Notifications
		if prefs.Notifications.MutedCategories == nil {
			prefs.Notifications.MutedCategories = []string{}
		}
	}

	if err := s.repo.UpdatePreferences(ctx, id, prefs); err != nil {
		return Preferences{}, err
	}
	return prefs, nil
}

// NotificationSettings returns the delivery settings of each employee found.
func (s *Service) NotificationSettings(ctx context.Context, ids []int64) (map[int64]NotificationSettings, error) {
	list, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[int64]NotificationSettings, len(list))
	for _, e := range list {
		if !e.IsActive {
			continue
		}
		out[e.ID] = normalize(e.Preferences.Data()).Notifications
	}
	return out, nil
}

func (s *Service) NavigationOrder(ctx context.Context, id int64) ([]string, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return e.NavigationOrder, nil
}

func (s *Service) SaveNavigationOrder(ctx context.Context, id int64, order []string) ([]string, error) {
	order = navigation.NormalizeOrder(navigation.Master, order)
	if err := s.repo.UpdateNavigationOrder(ctx, id, order); err != nil {
		return nil, err
	}
	return order, nil
}

// normalize fills what older rows may lack.
func normalize(p Preferences) Preferences {
	if p.ViewModes == nil {
		p.ViewModes = map[string]ViewMode{}
	}
	n := p.Notifications
	if !n.Email && !n.Push && !n.InApp && n.MutedCategories == nil {
		p.Notifications = DefaultPreferences().Notifications
	}
	if p.Notifications.MutedCategories == nil {
		p.Notifications.MutedCategories = []string{}
	}
	return p
}
