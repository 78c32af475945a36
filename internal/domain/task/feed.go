package task

import (
	"sort"
	"time"
)

type FeedKind string

const (
	FeedComment    FeedKind = "comment"
	FeedAttachment FeedKind = "attachment"
)

type FeedItem struct {
	Kind       FeedKind    `json:"kind"`
	ID         int64       `json:"id"`
	CreatedAt  time.Time   `json:"created_at"`
	Pending    bool        `json:"pending,omitempty"`
	Comment    *Comment    `json:"comment,omitempty"`
	Attachment *Attachment `json:"attachment,omitempty"`
}

func CommentItem(c Comment) FeedItem {
	return FeedItem{Kind: FeedComment, ID: c.ID, CreatedAt: c.CreatedAt, Comment: &c}
}

func AttachmentItem(a Attachment) FeedItem {
	return FeedItem{Kind: FeedAttachment, ID: a.ID, CreatedAt: a.CreatedAt, Attachment: &a}
}

// Feed is the chronological chat of one task.
type Feed []FeedItem

// MergeFeed interleaves comments and attachments by creation time. Items with
// equal timestamps keep concatenation order, comments first.
func MergeFeed(comments []Comment, attachments []Attachment) Feed {
	f := make(Feed, 0, len(comments)+len(attachments))
	for _, c := range comments {
		f = append(f, CommentItem(c))
	}
	for _, a := range attachments {
		f = append(f, AttachmentItem(a))
	}
	f.sort()
	return f
}

func (f Feed) sort() {
	sort.SliceStable(f, func(i, j int) bool { return f[i].CreatedAt.Before(f[j].CreatedAt) })
}

// Upsert replaces the item with the same kind and id or inserts it in time
// order. Delivering the same item twice leaves one copy.
func (f Feed) Upsert(item FeedItem) Feed {
	for i := range f {
		if f[i].Kind == item.Kind && f[i].ID == item.ID {
			f[i] = item
			return f
		}
	}
	i := sort.Search(len(f), func(i int) bool { return f[i].CreatedAt.After(item.CreatedAt) })
	f = append(f, FeedItem{})
	copy(f[i+1:], f[i:])
	f[i] = item
	return f
}

// Remove drops the item with kind and id. Removing a missing item is a no-op.
func (f Feed) Remove(kind FeedKind, id int64) Feed {
	out := f[:0]
	for _, it := range f {
		if it.Kind == kind && it.ID == id {
			continue
		}
		out = append(out, it)
	}
	return out
}
