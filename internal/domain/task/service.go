package task

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"mavinci/internal/domain/notification"
	"mavinci/internal/pkg/i18n"
	"mavinci/internal/realtime"
	"mavinci/internal/storage"
)

type Publisher interface {
	Publish(ch realtime.Change)
}

// FileStore is the part of object storage tasks need.
type FileStore interface {
	Upload(ctx context.Context, bucket, objectPath string, r io.Reader, opts storage.UploadOptions) (*storage.Object, error)
	Delete(ctx context.Context, bucket, objectPath string) error
	SignedURL(bucket, objectPath string, ttl time.Duration) (string, error)
}

type Notifier interface {
	NotifyAsync(in notification.Input, recipients []int64)
}

type Service struct {
	repo      Repository
	files     FileStore
	publisher Publisher
	notifier  Notifier

	loadMu sync.Mutex
	state  *BoardState
}

func NewService(repo Repository, files FileStore, publisher Publisher, notifier Notifier) *Service {
	return &Service{repo: repo, files: files, publisher: publisher, notifier: notifier}
}

// boardState loads the board on first use.
func (s *Service) boardState(ctx context.Context) (*BoardState, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	if s.state != nil {
		return s.state, nil
	}
	tasks, err := s.repo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("load board: %w", err)
	}
	s.state = NewBoardState(tasks)
	return s.state, nil
}

// ApplyRemote keeps the board in sync with changes from other writers. It is
// safe to receive changes this service published itself.
func (s *Service) ApplyRemote(ch realtime.Change) {
	s.loadMu.Lock()
	st := s.state
	s.loadMu.Unlock()
	if st != nil {
		st.ApplyRemote(ch)
	}
}

func (s *Service) emit(st *BoardState, ch realtime.Change) {
	st.ApplyRemote(ch)
	if s.publisher != nil {
		s.publisher.Publish(ch)
	}
}

func (s *Service) Board(ctx context.Context, eventID *int64) (Board, error) {
	st, err := s.boardState(ctx)
	if err != nil {
		return Board{}, err
	}
	return st.Board(eventID), nil
}

func (s *Service) CreateTask(ctx context.Context, employeeID int64, req CreateTaskRequest) (*Task, error) {
	column := req.BoardColumn
	if column == "" {
		column = ColumnTodo
	}
	if !column.Valid() {
		return nil, ErrInvalidColumn
	}
	priority := req.Priority
	if priority == "" {
		priority = PriorityMedium
	}
	if !priority.Valid() {
		return nil, ErrInvalidPriority
	}
	st, err := s.boardState(ctx)
	if err != nil {
		return nil, err
	}

	t := &Task{
		EventID:     req.EventID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		BoardColumn: column,
		Priority:    priority,
		DueDate:     req.DueDate,
		CreatedBy:   employeeID,
	}
	seen := make(map[int64]bool)
	for _, id := range req.Assignees {
		if !seen[id] {
			seen[id] = true
			t.AssigneeRows = append(t.AssigneeRows, Assignee{EmployeeID: id})
		}
	}
	if err := s.repo.CreateTask(ctx, t); err != nil {
		return nil, err
	}
	s.emit(st, realtime.Change{Table: "tasks", Event: realtime.EventInsert, ID: t.ID, Record: *t})

	s.notify(notification.Input{
		Category: notification.CategoryTaskAssigned,
		Title:    i18n.T(i18n.Default, "notify.task_assigned"),
		Message:  t.Title,
	}, t, employeeID)
	return t, nil
}

// MoveTask puts the task in column. The board shows the move at once; if
// the store rejects it the move is rolled back and ErrMoveFailed returned.
func (s *Service) MoveTask(ctx context.Context, employeeID, taskID int64, column Column) (*Task, error) {
	if !column.Valid() {
		return nil, ErrInvalidColumn
	}
	st, err := s.boardState(ctx)
	if err != nil {
		return nil, err
	}
	if _, ok := st.Task(taskID); !ok {
		// may have been created by another writer since the board loaded
		t, err := s.repo.GetTask(ctx, taskID)
		if err != nil {
			return nil, err
		}
		st.ApplyRemote(realtime.Change{Table: "tasks", Event: realtime.EventInsert, ID: t.ID, Record: *t})
	}

	m, err := st.BeginMove(taskID, column)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateColumn(ctx, taskID, column); err != nil {
		_ = st.Fail(m.ID)
		log.Printf("task_move_failed task_id=%d column=%s err=%v", taskID, column, err)
		if errors.Is(err, ErrTaskNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrMoveFailed, err)
	}
	_ = st.Confirm(m.ID)

	t, _ := st.Task(taskID)
	if m.Previous != column {
		s.emit(st, realtime.Change{
			Table:  "tasks",
			Event:  realtime.EventUpdate,
			ID:     taskID,
			Record: t,
			Old:    map[string]any{"id": taskID, "board_column": m.Previous},
		})
		s.notify(notification.Input{
			Category: notification.CategoryTaskMoved,
			Title:    i18n.T(i18n.Default, "notify.task_moved_title"),
			Message:  i18n.T(i18n.Default, "notify.task_moved", t.Title, column),
		}, &t, employeeID)
	}
	return &t, nil
}

// SetAssignees replaces the task's assignees. Only employees who were not
// assigned before are notified.
func (s *Service) SetAssignees(ctx context.Context, employeeID, taskID int64, employeeIDs []int64) (*Task, error) {
	st, err := s.boardState(ctx)
	if err != nil {
		return nil, err
	}
	t, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(employeeIDs))
	keep := make(map[int64]bool, len(employeeIDs))
	for _, id := range employeeIDs {
		if !keep[id] {
			keep[id] = true
			ids = append(ids, id)
		}
	}
	before := make(map[int64]bool, len(t.Assignees))
	for _, id := range t.Assignees {
		before[id] = true
	}

	if err := s.repo.SetAssignees(ctx, taskID, ids); err != nil {
		return nil, err
	}

	for _, id := range t.Assignees {
		if !keep[id] {
			s.emit(st, realtime.Change{Table: "task_assignees", Event: realtime.EventDelete, ID: taskID, Old: Assignee{TaskID: taskID, EmployeeID: id}})
		}
	}
	var added []int64
	for _, id := range ids {
		if !before[id] {
			added = append(added, id)
			s.emit(st, realtime.Change{Table: "task_assignees", Event: realtime.EventInsert, ID: taskID, Record: Assignee{TaskID: taskID, EmployeeID: id}})
		}
	}

	t.Assignees = ids
	if len(added) > 0 {
		s.notify(notification.Input{
			Category: notification.CategoryTaskAssigned,
			Title:    i18n.T(i18n.Default, "notify.task_assigned"),
			Message:  t.Title,
		}, &Task{ID: t.ID, Assignees: added}, employeeID)
	}
	return t, nil
}

func (s *Service) Feed(ctx context.Context, taskID int64) (Feed, error) {
	st, err := s.boardState(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetTask(ctx, taskID); err != nil {
		return nil, err
	}

	f, ok := st.Feed(taskID)
	if !ok {
		comments, err := s.repo.ListComments(ctx, taskID)
		if err != nil {
			return nil, err
		}
		attachments, err := s.repo.ListAttachments(ctx, taskID)
		if err != nil {
			return nil, err
		}
		st.SetFeed(taskID, MergeFeed(comments, attachments))
		f, _ = st.Feed(taskID)
	}
	return s.signFeed(f), nil
}

// signFeed attaches time-limited download links to attachment items.
func (s *Service) signFeed(f Feed) Feed {
	for i := range f {
		if f[i].Attachment == nil || s.files == nil {
			continue
		}
		a := *f[i].Attachment
		url, err := s.files.SignedURL(a.Bucket, a.Path, 0)
		if err != nil {
			log.Printf("task_attachment_sign_failed id=%d err=%v", a.ID, err)
			continue
		}
		a.URL = url
		f[i].Attachment = &a
	}
	return f
}

// AddComment shows the comment as pending while it is saved and removes it
// again if saving fails.
func (s *Service) AddComment(ctx context.Context, employeeID, taskID int64, content string) (*Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyComment
	}
	st, err := s.boardState(ctx)
	if err != nil {
		return nil, err
	}
	t, err := s.repo.GetTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	m := st.BeginComment(Comment{TaskID: taskID, AuthorID: employeeID, Content: content})
	c := &Comment{TaskID: taskID, AuthorID: employeeID, Content: content}
	if err := s.repo.CreateComment(ctx, c); err != nil {
		_ = st.Fail(m.ID)
		log.Printf("task_comment_failed task_id=%d err=%v", taskID, err)
		return nil, fmt.Errorf("%w: %v", ErrCommentFailed, err)
	}
	_ = st.Confirm(m.ID)
	s.emit(st, realtime.Change{Table: "task_comments", Event: realtime.EventInsert, ID: c.ID, Record: *c})

	s.notify(notification.Input{
		Category: notification.CategoryTaskComment,
		Title:    i18n.T(i18n.Default, "notify.task_comment", t.Title),
		Message:  preview(content, 120),
	}, t, employeeID)
	return c, nil
}

func (s *Service) DeleteComment(ctx context.Context, taskID, commentID int64) error {
	st, err := s.boardState(ctx)
	if err != nil {
		return err
	}
	c, err := s.repo.GetComment(ctx, taskID, commentID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteComment(ctx, taskID, commentID); err != nil {
		return err
	}
	s.emit(st, realtime.Change{Table: "task_comments", Event: realtime.EventDelete, ID: commentID, Old: *c})
	return nil
}

// AddAttachment uploads the file to the task-attachments bucket and records
// it. The object is removed again if the row cannot be stored.
func (s *Service) AddAttachment(ctx context.Context, employeeID, taskID int64, filename string, r io.Reader) (*Attachment, error) {
	st, err := s.boardState(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.GetTask(ctx, taskID); err != nil {
		return nil, err
	}

	objectPath := storage.ObjectName(fmt.Sprintf("%d", taskID), filename)
	obj, err := s.files.Upload(ctx, storage.BucketTaskAttachments, objectPath, r, storage.UploadOptions{})
	if err != nil {
		return nil, err
	}

	a := &Attachment{
		TaskID:     taskID,
		FileName:   filename,
		Bucket:     obj.Bucket,
		Path:       obj.Path,
		MimeType:   obj.ContentType,
		Size:       obj.Size,
		UploadedBy: employeeID,
	}
	if err := s.repo.CreateAttachment(ctx, a); err != nil {
		if derr := s.files.Delete(ctx, obj.Bucket, obj.Path); derr != nil {
			log.Printf("task_attachment_orphan bucket=%s path=%s err=%v", obj.Bucket, obj.Path, derr)
		}
		return nil, err
	}
	s.emit(st, realtime.Change{Table: "task_attachments", Event: realtime.EventInsert, ID: a.ID, Record: *a})

	if url, err := s.files.SignedURL(a.Bucket, a.Path, 0); err == nil {
		a.URL = url
	}
	return a, nil
}

func (s *Service) DeleteAttachment(ctx context.Context, taskID, attachmentID int64) error {
	st, err := s.boardState(ctx)
	if err != nil {
		return err
	}
	a, err := s.repo.GetAttachment(ctx, taskID, attachmentID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteAttachment(ctx, taskID, attachmentID); err != nil {
		return err
	}
	if err := s.files.Delete(ctx, a.Bucket, a.Path); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
		log.Printf("task_attachment_delete_object_failed id=%d path=%s err=%v", a.ID, a.Path, err)
	}
	s.emit(st, realtime.Change{Table: "task_attachments", Event: realtime.EventDelete, ID: a.ID, Old: *a})
	return nil
}

// notify tells the task's assignees, except the actor.
func (s *Service) notify(in notification.Input, t *Task, actorID int64) {
	if s.notifier == nil {
		return
	}
	recipients := make([]int64, 0, len(t.Assignees))
	for _, id := range t.Assignees {
		if id != actorID {
			recipients = append(recipients, id)
		}
	}
	if len(recipients) == 0 {
		return
	}
	id := t.ID
	in.RelatedEntityType = "task"
	in.RelatedEntityID = &id
	s.notifier.NotifyAsync(in, recipients)
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
