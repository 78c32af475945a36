package realtime

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

var ErrInvalidFilter = errors.New("filter must look like column=eq.value")

// Change is one row-level change on a table.
type Change struct {
	Table     string    `json:"table"`
	Event     EventType `json:"event"`
	ID        int64     `json:"id"`
	Record    any       `json:"record,omitempty"`
	Old       any       `json:"old,omitempty"`
	Timestamp time.Time `json:"commit_timestamp"`
}

// Filter restricts a subscription to rows whose column equals a value.
type Filter struct {
	Column string
	Value  string
}

// ParseFilter accepts "" (no filter) or "column=eq.value".
func ParseFilter(s string) (*Filter, error) {
	if s == "" {
		return nil, nil
	}
	column, rest, ok := strings.Cut(s, "=")
	if !ok || column == "" {
		return nil, ErrInvalidFilter
	}
	value, ok := strings.CutPrefix(rest, "eq.")
	if !ok {
		return nil, ErrInvalidFilter
	}
	return &Filter{Column: column, Value: value}, nil
}

func (f *Filter) String() string {
	if f == nil {
		return ""
	}
	return f.Column + "=eq." + f.Value
}

// Subscription is a table plus optional row filter.
type Subscription struct {
	Table  string
	Filter *Filter
}

func (s Subscription) key() string {
	return s.Table + "|" + s.Filter.String()
}

// Matches reports whether ch should be delivered to s. Deletes are matched
// against the old row.
func (s Subscription) Matches(ch Change) bool {
	if s.Table != ch.Table {
		return false
	}
	if s.Filter == nil {
		return true
	}
	row := ch.Record
	if ch.Event == EventDelete && ch.Old != nil {
		row = ch.Old
	}
	fields, err := toFields(row)
	if err != nil {
		return false
	}
	v, ok := fields[s.Filter.Column]
	if !ok || v == nil {
		return false
	}
	return fmt.Sprint(v) == s.Filter.Value
}

func toFields(row any) (map[string]any, error) {
	if m, ok := row.(map[string]any); ok {
		return m, nil
	}
	raw, err := json.Marshal(row)
	if err != nil {
		return nil, err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, err
	}
	return fields, nil
}
