package task

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"mavinci/internal/realtime"
)

type MutationKind string

const (
	MutationMove    MutationKind = "move"
	MutationComment MutationKind = "comment"
)

type MutationStatus string

const (
	MutationPending   MutationStatus = "pending"
	MutationConfirmed MutationStatus = "confirmed"
	MutationFailed    MutationStatus = "failed"
)

// Mutation is a change applied locally before the store confirmed it.
type Mutation struct {
	ID       string         `json:"id"`
	TaskID   int64          `json:"task_id"`
	Kind     MutationKind   `json:"kind"`
	Status   MutationStatus `json:"status"`
	Previous Column         `json:"previous,omitempty"`
	Next     Column         `json:"next,omitempty"`
	Comment  *Comment       `json:"comment,omitempty"`
}

// BoardState is an in-memory copy of the board kept in sync with realtime
// changes. Moves and comments are applied optimistically and undone when
// the store rejects them.
type BoardState struct {
	mu       sync.RWMutex
	tasks    map[int64]Task
	order    []int64
	feeds    map[int64]Feed
	pending  map[string]*Mutation
	nextTemp int64
	now      func() time.Time
}

func NewBoardState(tasks []Task) *BoardState {
	b := &BoardState{
		tasks:   make(map[int64]Task, len(tasks)),
		feeds:   make(map[int64]Feed),
		pending: make(map[string]*Mutation),
		now:     time.Now,
	}
	for _, t := range tasks {
		b.put(t)
	}
	return b
}

func (b *BoardState) put(t Task) {
	if _, ok := b.tasks[t.ID]; !ok {
		b.order = append(b.order, t.ID)
	}
	b.tasks[t.ID] = t
}

func (b *BoardState) remove(id int64) {
	if _, ok := b.tasks[id]; !ok {
		return
	}
	delete(b.tasks, id)
	delete(b.feeds, id)
	for i, v := range b.order {
		if v == id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

func (b *BoardState) Task(id int64) (Task, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	t, ok := b.tasks[id]
	return t, ok
}

// Tasks returns the tasks in insertion order, optionally only those of one
// event.
func (b *BoardState) Tasks(eventID *int64) []Task {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Task, 0, len(b.order))
	for _, id := range b.order {
		t := b.tasks[id]
		if eventID != nil && (t.EventID == nil || *t.EventID != *eventID) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func (b *BoardState) Board(eventID *int64) Board {
	return Partition(b.Tasks(eventID))
}

// BeginMove moves the task to column right away and records how to undo it.
func (b *BoardState) BeginMove(taskID int64, to Column) (*Mutation, error) {
	if !to.Valid() {
		return nil, ErrInvalidColumn
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	t, ok := b.tasks[taskID]
	if !ok {
		return nil, ErrTaskNotFound
	}
	m := &Mutation{
		ID:       uuid.NewString(),
		TaskID:   taskID,
		Kind:     MutationMove,
		Status:   MutationPending,
		Previous: t.BoardColumn,
		Next:     to,
	}
	t.BoardColumn = to
	b.tasks[taskID] = t
	b.pending[m.ID] = m
	return m, nil
}

// BeginComment shows c in the task feed with a temporary negative id until
// it is confirmed.
func (b *BoardState) BeginComment(c Comment) *Mutation {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextTemp--
	c.ID = b.nextTemp
	if c.CreatedAt.IsZero() {
		c.CreatedAt = b.now()
	}
	m := &Mutation{
		ID:      uuid.NewString(),
		TaskID:  c.TaskID,
		Kind:    MutationComment,
		Status:  MutationPending,
		Comment: &c,
	}
	if f, ok := b.feeds[c.TaskID]; ok {
		item := CommentItem(c)
		item.Pending = true
		b.feeds[c.TaskID] = f.Upsert(item)
	}
	b.pending[m.ID] = m
	return m
}

// Confirm settles a pending mutation. A confirmed comment's temporary entry
// is dropped; the stored row arrives through ApplyRemote.
func (b *BoardState) Confirm(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	m, ok := b.pending[id]
	if !ok {
		return ErrMutationNotFound
	}
	delete(b.pending, id)
	m.Status = MutationConfirmed
	if m.Kind == MutationComment {
		b.dropTemp(m)
	}
	return nil
}

// Fail undoes a pending mutation. A move is only reverted while the task
// still sits in the column the move put it in.
func (b *BoardState) Fail(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	m, ok := b.pending[id]
	if !ok {
		return ErrMutationNotFound
	}
	delete(b.pending, id)
	m.Status = MutationFailed

	switch m.Kind {
	case MutationMove:
		if t, ok := b.tasks[m.TaskID]; ok && t.BoardColumn == m.Next {
			t.BoardColumn = m.Previous
			b.tasks[m.TaskID] = t
		}
	case MutationComment:
		b.dropTemp(m)
	}
	return nil
}

func (b *BoardState) dropTemp(m *Mutation) {
	if f, ok := b.feeds[m.TaskID]; ok {
		b.feeds[m.TaskID] = f.Remove(FeedComment, m.Comment.ID)
	}
}

func (b *BoardState) Pending() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.pending)
}

// Feed returns a copy of the cached feed of a task.
func (b *BoardState) Feed(taskID int64) (Feed, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	f, ok := b.feeds[taskID]
	if !ok {
		return nil, false
	}
	return append(Feed(nil), f...), true
}

// SetFeed caches a freshly loaded feed. Pending comments are kept.
func (b *BoardState) SetFeed(taskID int64, f Feed) {
	b.mu.Lock()
	defer b.mu.Unlock()
	f = append(Feed(nil), f...)
	for _, m := range b.pending {
		if m.Kind == MutationComment && m.TaskID == taskID {
			item := CommentItem(*m.Comment)
			item.Pending = true
			f = f.Upsert(item)
		}
	}
	b.feeds[taskID] = f
}

// ApplyRemote folds a row change into the state. It is idempotent: the same
// change delivered twice has the effect of one.
func (b *BoardState) ApplyRemote(ch realtime.Change) {
	switch ch.Table {
	case "tasks":
		var t Task
		if !decodeRow(ch, &t) {
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		if ch.Event == realtime.EventDelete {
			b.remove(t.ID)
			return
		}
		if old, ok := b.tasks[t.ID]; ok && t.Assignees == nil {
			t.Assignees = old.Assignees
		}
		b.put(t)

	case "task_assignees":
		var a Assignee
		if !decodeRow(ch, &a) {
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		t, ok := b.tasks[a.TaskID]
		if !ok {
			return
		}
		ids := make([]int64, 0, len(t.Assignees)+1)
		for _, id := range t.Assignees {
			if id != a.EmployeeID {
				ids = append(ids, id)
			}
		}
		if ch.Event != realtime.EventDelete {
			ids = append(ids, a.EmployeeID)
		}
		t.Assignees = ids
		b.tasks[t.ID] = t

	case "task_comments":
		var c Comment
		if !decodeRow(ch, &c) {
			return
		}
		b.applyFeed(c.TaskID, ch.Event, CommentItem(c))

	case "task_attachments":
		var a Attachment
		if !decodeRow(ch, &a) {
			return
		}
		b.applyFeed(a.TaskID, ch.Event, AttachmentItem(a))
	}
}

func (b *BoardState) applyFeed(taskID int64, event realtime.EventType, item FeedItem) {
	b.mu.Lock()
	defer b.mu.Unlock()
	f, ok := b.feeds[taskID]
	if !ok {
		return
	}
	if event == realtime.EventDelete {
		b.feeds[taskID] = f.Remove(item.Kind, item.ID)
		return
	}
	b.feeds[taskID] = f.Upsert(item)
}

// decodeRow reads the changed row into dst. Typed records are used as is;
// anything else goes through JSON.
func decodeRow[T any](ch realtime.Change, dst *T) bool {
	row := ch.Record
	if ch.Event == realtime.EventDelete && ch.Old != nil {
		row = ch.Old
	}
	switch v := row.(type) {
	case T:
		*dst = v
		return true
	case *T:
		if v == nil {
			return false
		}
		*dst = *v
		return true
	case nil:
		return false
	}
	raw, err := json.Marshal(row)
	if err != nil {
		return false
	}
	return json.Unmarshal(raw, dst) == nil
}
