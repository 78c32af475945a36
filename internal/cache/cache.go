// Package cache is the in-process key/value store used to hold derived lists
// (unified contacts, equipment catalog) between requests. Entries carry tags;
// invalidating a tag drops every entry carrying it and notifies subscribers.
package cache

import (
	"sort"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

type entry struct {
	value any
	tags  []string
}

type Store struct {
	mu     sync.Mutex
	items  *lru.Cache[string, entry]
	byTag  map[string]map[string]struct{}
	subs   map[int]func(keys []string)
	nextID int
	// gens counts invalidations per tag and per key; Remember compares
	// them around a load to drop results that raced a write.
	gens map[string]uint64
}

func New(size int) (*Store, error) {
	s := &Store{
		byTag: make(map[string]map[string]struct{}),
		subs:  make(map[int]func([]string)),
		gens:  make(map[string]uint64),
	}
	items, err := lru.NewWithEvict[string, entry](size, s.onEvict)
	if err != nil {
		return nil, err
	}
	s.items = items
	return s, nil
}

// onEvict runs synchronously inside items.Add/Remove, which are only called
// with s.mu held.
func (s *Store) onEvict(key string, e entry) {
	for _, tag := range e.tags {
		if keys, ok := s.byTag[tag]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(s.byTag, tag)
			}
		}
	}
}

func (s *Store) Get(key string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.items.Get(key)
	if !ok {
		return nil, false
	}
	return e.value, true
}

func (s *Store) Set(key string, value any, tags ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(key, value, tags)
}

func (s *Store) set(key string, value any, tags []string) {
	if _, ok := s.items.Peek(key); ok {
		s.items.Remove(key)
	}
	s.items.Add(key, entry{value: value, tags: tags})
	for _, tag := range tags {
		keys, ok := s.byTag[tag]
		if !ok {
			keys = make(map[string]struct{})
			s.byTag[tag] = keys
		}
		keys[key] = struct{}{}
	}
}

// Invalidate drops the given keys.
func (s *Store) Invalidate(keys ...string) {
	s.mu.Lock()
	removed := make([]string, 0, len(keys))
	for _, key := range keys {
		s.gens["key:"+key]++
		if s.items.Remove(key) {
			removed = append(removed, key)
		}
	}
	s.mu.Unlock()
	s.notify(removed)
}

// InvalidateTags drops every entry tagged with any of tags.
func (s *Store) InvalidateTags(tags ...string) {
	s.mu.Lock()
	seen := make(map[string]struct{})
	for _, tag := range tags {
		s.gens["tag:"+tag]++
		for key := range s.byTag[tag] {
			seen[key] = struct{}{}
		}
	}
	removed := make([]string, 0, len(seen))
	for key := range seen {
		if s.items.Remove(key) {
			removed = append(removed, key)
		}
	}
	s.mu.Unlock()

	sort.Strings(removed)
	s.notify(removed)
}

// Subscribe registers fn to be called with the keys removed by each
// invalidation. The returned func unsubscribes.
func (s *Store) Subscribe(fn func(keys []string)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items.Len()
}

// generation sums the invalidation counters that affect key. The counters
// only grow, so an unchanged sum means nothing was invalidated.
func (s *Store) generation(key string, tags []string) uint64 {
	g := s.gens["key:"+key]
	for _, tag := range tags {
		g += s.gens["tag:"+tag]
	}
	return g
}

func (s *Store) notify(keys []string) {
	if len(keys) == 0 {
		return
	}
	s.mu.Lock()
	subs := make([]func([]string), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(keys)
	}
}

// Remember returns the cached value for key or loads, stores and returns it.
// Load errors are not cached. A result whose key or tags were invalidated
// while it was loading is returned but not stored.
func Remember[T any](s *Store, key string, tags []string, load func() (T, error)) (T, error) {
	s.mu.Lock()
	if e, ok := s.items.Get(key); ok {
		if typed, ok := e.value.(T); ok {
			s.mu.Unlock()
			return typed, nil
		}
	}
	gen := s.generation(key, tags)
	s.mu.Unlock()

	v, err := load()
	if err != nil {
		var zero T
		return zero, err
	}

	s.mu.Lock()
	if s.generation(key, tags) == gen {
		s.set(key, v, tags)
	}
	s.mu.Unlock()
	return v, nil
}
