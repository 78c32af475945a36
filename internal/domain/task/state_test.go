package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mavinci/internal/realtime"
)

func event(id int64) *int64 { return &id }

func newState() *BoardState {
	return NewBoardState([]Task{
		{ID: 1, Title: "Scena", BoardColumn: ColumnTodo, EventID: event(10), Assignees: []int64{7}},
		{ID: 2, Title: "Catering", BoardColumn: ColumnInProgress, EventID: event(11)},
	})
}

func TestBeginMoveConfirm(t *testing.T) {
	st := newState()
	m, err := st.BeginMove(1, ColumnReview)
	require.NoError(t, err)
	assert.Equal(t, MutationPending, m.Status)
	assert.Equal(t, ColumnTodo, m.Previous)

	got, _ := st.Task(1)
	assert.Equal(t, ColumnReview, got.BoardColumn, "applied before confirmation")
	assert.Equal(t, 1, st.Pending())

	require.NoError(t, st.Confirm(m.ID))
	assert.Equal(t, MutationConfirmed, m.Status)
	assert.Equal(t, 0, st.Pending())
	assert.ErrorIs(t, st.Confirm(m.ID), ErrMutationNotFound)
}

func TestFailedMoveRollsBack(t *testing.T) {
	st := newState()
	m, err := st.BeginMove(1, ColumnCompleted)
	require.NoError(t, err)

	require.NoError(t, st.Fail(m.ID))
	assert.Equal(t, MutationFailed, m.Status)
	got, _ := st.Task(1)
	assert.Equal(t, ColumnTodo, got.BoardColumn)
	assert.Equal(t, []int64{1}, idsOf(st.Board(nil).Column(ColumnTodo)))
}

func TestFailedMoveKeepsNewerRemoteState(t *testing.T) {
	st := newState()
	m, err := st.BeginMove(1, ColumnReview)
	require.NoError(t, err)

	st.ApplyRemote(realtime.Change{Table: "tasks", Event: realtime.EventUpdate, ID: 1,
		Record: Task{ID: 1, Title: "Scena", BoardColumn: ColumnCompleted}})
	require.NoError(t, st.Fail(m.ID))

	got, _ := st.Task(1)
	assert.Equal(t, ColumnCompleted, got.BoardColumn)
}

func TestBeginMoveRejects(t *testing.T) {
	st := newState()
	_, err := st.BeginMove(1, "done")
	assert.ErrorIs(t, err, ErrInvalidColumn)
	_, err = st.BeginMove(99, ColumnTodo)
	assert.ErrorIs(t, err, ErrTaskNotFound)
	assert.Equal(t, 0, st.Pending())
}

func TestBoardFiltersByEvent(t *testing.T) {
	st := newState()
	b := st.Board(event(11))
	assert.Empty(t, b.Column(ColumnTodo))
	assert.Equal(t, []int64{2}, idsOf(b.Column(ColumnInProgress)))
	assert.Len(t, st.Tasks(nil), 2)
}

func TestApplyRemoteIsIdempotent(t *testing.T) {
	st := newState()
	insert := realtime.Change{Table: "tasks", Event: realtime.EventInsert, ID: 3,
		Record: &Task{ID: 3, Title: "Transport", BoardColumn: ColumnTodo}}
	st.ApplyRemote(insert)
	st.ApplyRemote(insert)
	assert.Equal(t, []int64{1, 3}, idsOf(st.Board(nil).Column(ColumnTodo)))

	del := realtime.Change{Table: "tasks", Event: realtime.EventDelete, ID: 1, Old: map[string]any{"id": 1}}
	st.ApplyRemote(del)
	st.ApplyRemote(del)
	_, ok := st.Task(1)
	assert.False(t, ok)
	assert.Len(t, st.Tasks(nil), 2)
}

func TestApplyRemoteDecodesMaps(t *testing.T) {
	st := newState()
	st.ApplyRemote(realtime.Change{Table: "tasks", Event: realtime.EventUpdate, ID: 2,
		Record: map[string]any{"id": 2, "title": "Catering", "board_column": "review", "assignees": []int64{4}}})

	got, _ := st.Task(2)
	assert.Equal(t, ColumnReview, got.BoardColumn)
	assert.Equal(t, []int64{4}, got.Assignees)
}

func TestApplyRemoteAssignees(t *testing.T) {
	st := newState()
	add := realtime.Change{Table: "task_assignees", Event: realtime.EventInsert, Record: Assignee{TaskID: 1, EmployeeID: 8}}
	st.ApplyRemote(add)
	st.ApplyRemote(add)
	got, _ := st.Task(1)
	assert.Equal(t, []int64{7, 8}, got.Assignees)

	st.ApplyRemote(realtime.Change{Table: "task_assignees", Event: realtime.EventDelete, Old: Assignee{TaskID: 1, EmployeeID: 7}})
	got, _ = st.Task(1)
	assert.Equal(t, []int64{8}, got.Assignees)
}

func TestPendingComment(t *testing.T) {
	st := newState()
	st.SetFeed(1, MergeFeed([]Comment{{ID: 5, TaskID: 1, CreatedAt: at(0)}}, nil))

	m := st.BeginComment(Comment{TaskID: 1, AuthorID: 7, Content: "Gotowe?", CreatedAt: at(1)})
	f, ok := st.Feed(1)
	require.True(t, ok)
	require.Len(t, f, 2)
	assert.True(t, f[1].Pending)
	assert.Negative(t, f[1].ID)

	require.NoError(t, st.Fail(m.ID))
	f, _ = st.Feed(1)
	assert.Len(t, f, 1, "failed comment is removed")

	m = st.BeginComment(Comment{TaskID: 1, AuthorID: 7, Content: "Gotowe!", CreatedAt: at(2)})
	require.NoError(t, st.Confirm(m.ID))
	saved := Comment{ID: 6, TaskID: 1, AuthorID: 7, Content: "Gotowe!", CreatedAt: at(2)}
	ch := realtime.Change{Table: "task_comments", Event: realtime.EventInsert, ID: 6, Record: saved}
	st.ApplyRemote(ch)
	st.ApplyRemote(ch)

	f, _ = st.Feed(1)
	require.Len(t, f, 2)
	assert.Equal(t, int64(6), f[1].ID)
	assert.False(t, f[1].Pending)
}

func TestSetFeedKeepsPendingComments(t *testing.T) {
	st := newState()
	st.BeginComment(Comment{TaskID: 2, Content: "w drodze", CreatedAt: at(3)})
	st.SetFeed(2, MergeFeed([]Comment{{ID: 1, TaskID: 2, CreatedAt: at(0)}}, nil))

	f, _ := st.Feed(2)
	require.Len(t, f, 2)
	assert.True(t, f[1].Pending)
}

func idsOf(tasks []Task) []int64 {
	out := make([]int64, 0, len(tasks))
	for _, tk := range tasks {
		out = append(out, tk.ID)
	}
	return out
}
