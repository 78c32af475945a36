package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var t0 = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func at(min int) time.Time { return t0.Add(time.Duration(min) * time.Minute) }

func keys(f Feed) []string {
	out := make([]string, len(f))
	for i, it := range f {
		out[i] = string(it.Kind[0]) + string(rune('0'+it.ID))
	}
	return out
}

func TestMergeFeedOrder(t *testing.T) {
	comments := []Comment{
		{ID: 1, CreatedAt: at(0)},
		{ID: 2, CreatedAt: at(5)},
		{ID: 3, CreatedAt: at(10)},
	}
	attachments := []Attachment{
		{ID: 1, CreatedAt: at(3)},
		{ID: 2, CreatedAt: at(5)},
		{ID: 3, CreatedAt: at(-1)},
	}
	f := MergeFeed(comments, attachments)

	assert.Equal(t, []string{"a3", "c1", "a1", "c2", "a2", "c3"}, keys(f))
	for i := 1; i < len(f); i++ {
		assert.False(t, f[i].CreatedAt.Before(f[i-1].CreatedAt))
	}
}

func TestMergeFeedEmpty(t *testing.T) {
	assert.Empty(t, MergeFeed(nil, nil))
}

func TestFeedUpsertIsIdempotent(t *testing.T) {
	f := MergeFeed([]Comment{{ID: 1, CreatedAt: at(0)}, {ID: 3, CreatedAt: at(10)}}, nil)

	c2 := Comment{ID: 2, Content: "first", CreatedAt: at(5)}
	f = f.Upsert(CommentItem(c2))
	f = f.Upsert(CommentItem(c2))
	assert.Equal(t, []string{"c1", "c2", "c3"}, keys(f))

	c2.Content = "edited"
	f = f.Upsert(CommentItem(c2))
	assert.Len(t, f, 3)
	assert.Equal(t, "edited", f[1].Comment.Content)

	f = f.Upsert(AttachmentItem(Attachment{ID: 2, CreatedAt: at(5)}))
	assert.Equal(t, []string{"c1", "c2", "a2", "c3"}, keys(f), "same id, other kind")
}

func TestFeedRemove(t *testing.T) {
	f := MergeFeed(
		[]Comment{{ID: 1, CreatedAt: at(0)}, {ID: 2, CreatedAt: at(1)}},
		[]Attachment{{ID: 1, CreatedAt: at(2)}},
	)
	f = f.Remove(FeedComment, 1)
	f = f.Remove(FeedComment, 1)
	assert.Equal(t, []string{"c2", "a1"}, keys(f))

	f = f.Remove(FeedAttachment, 9)
	assert.Len(t, f, 2)
}
