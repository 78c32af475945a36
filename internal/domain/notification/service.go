package notification

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"mavinci/internal/domain/employee"
	"mavinci/internal/realtime"
)

// SettingsSource returns notification settings for active employees. Ids
// missing from the result are not notified.
type SettingsSource interface {
	NotificationSettings(ctx context.Context, ids []int64) (map[int64]employee.NotificationSettings, error)
}

type Publisher interface {
	Publish(ch realtime.Change)
}

type Input struct {
	Category          Category
	Title             string
	Message           string
	Priority          Priority
	RelatedEntityType string
	RelatedEntityID   *int64
}

type Service struct {
	repo      Repository
	settings  SettingsSource
	publisher Publisher
	now       func() time.Time
}

func NewService(repo Repository, settings SettingsSource, publisher Publisher) *Service {
	return &Service{repo: repo, settings: settings, publisher: publisher, now: time.Now}
}

// Notify stores one notification for every recipient whose preferences allow
// it and returns the ids that were notified. Nothing is stored when all
// recipients opted out.
func (s *Service) Notify(ctx context.Context, in Input, recipients []int64) ([]int64, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, ErrEmptyTitle
	}
	if in.Priority == "" {
		in.Priority = PriorityNormal
	}
	if in.Category == "" {
		in.Category = CategorySystem
	}

	ids := uniqueIDs(recipients)
	if len(ids) == 0 {
		return nil, ErrNoRecipients
	}
	settings, err := s.settings.NotificationSettings(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load notification settings: %w", err)
	}

	wanted := make([]int64, 0, len(ids))
	for _, id := range ids {
		if set, ok := settings[id]; ok && set.Wants(string(in.Category)) {
			wanted = append(wanted, id)
		}
	}
	if len(wanted) == 0 {
		return nil, nil
	}

	n := &Notification{
		Category:          in.Category,
		Title:             in.Title,
		Message:           in.Message,
		Priority:          in.Priority,
		RelatedEntityType: in.RelatedEntityType,
		RelatedEntityID:   in.RelatedEntityID,
		CreatedAt:         s.now(),
	}
	rows, err := s.repo.Create(ctx, n, wanted)
	if err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	if s.publisher != nil {
		for i := range rows {
			rows[i].Notification = n
			s.publisher.Publish(realtime.Change{
				Table:  "notification_recipients",
				Event:  realtime.EventInsert,
				ID:     rows[i].ID,
				Record: rows[i],
			})
		}
	}
	return wanted, nil
}

// NotifyAsync runs Notify without blocking the caller. Failures are logged.
func (s *Service) NotifyAsync(in Input, recipients []int64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := s.Notify(ctx, in, recipients); err != nil {
			log.Printf("notify_failed category=%s title=%q err=%v", in.Category, in.Title, err)
		}
	}()
}

func (s *Service) List(ctx context.Context, employeeID int64, q ListQuery) (*ListResponse, error) {
	limit := q.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := q.Offset
	if offset < 0 {
		offset = 0
	}

	items, total, err := s.repo.ListForEmployee(ctx, employeeID, q.UnreadOnly, limit, offset)
	if err != nil {
		return nil, err
	}
	unread, err := s.repo.CountUnread(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return &ListResponse{Items: items, Total: total, UnreadCount: unread}, nil
}

func (s *Service) UnreadCount(ctx context.Context, employeeID int64) (int64, error) {
	return s.repo.CountUnread(ctx, employeeID)
}

func (s *Service) MarkRead(ctx context.Context, employeeID, notificationID int64) error {
	return s.repo.MarkRead(ctx, employeeID, notificationID, s.now())
}

func (s *Service) MarkAllRead(ctx context.Context, employeeID int64) (int64, error) {
	return s.repo.MarkAllRead(ctx, employeeID, s.now())
}

func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id <= 0 || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
