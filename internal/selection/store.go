// Package selection holds the user's "my courses" list and persists it
// through a key-value backend on every change.
package selection

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/i-am-zach/uiuc-grade-stats/internal/types"
)

// DefaultKey is the entry the list is stored under.
const DefaultKey = "courses"

// KV is a single-key persistence backend. Get on a missing key returns
// ok == false and no error.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
}

// Store is the selected-courses list. Mutations hold the lock across the
// read-modify-write and the persist, so writes never overlap and a failed
// persist leaves the list as it was.
type Store struct {
	kv  KV
	key string

	mu      sync.Mutex
	courses []types.CourseRef
}

// Open loads the list stored under key. A missing entry is written back as
// an empty list.
func Open(ctx context.Context, kv KV, key string) (*Store, error) {
	if key == "" {
		key = DefaultKey
	}
	s := &Store{kv: kv, key: key}

	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to read selected courses: %w", err)
	}
	if !ok {
		if err := s.persist(ctx, []types.CourseRef{}); err != nil {
			return nil, err
		}
		s.courses = []types.CourseRef{}
		return s, nil
	}

	courses := []types.CourseRef{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &courses); err != nil {
			return nil, fmt.Errorf("failed to decode selected courses: %w", err)
		}
	}
	if courses == nil {
		courses = []types.CourseRef{}
	}
	s.courses = courses
	return s, nil
}

// List returns a copy of the selected courses in insertion order.
func (s *Store) List() []types.CourseRef {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]types.CourseRef, len(s.courses))
	copy(out, s.courses)
	return out
}

func (s *Store) Contains(ref types.CourseRef) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return indexOf(s.courses, ref) >= 0
}

// Add appends ref. Adding a course that is already selected is a no-op and
// reports false.
func (s *Store) Add(ctx context.Context, ref types.CourseRef) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOf(s.courses, ref) >= 0 {
		return false, nil
	}

	next := make([]types.CourseRef, len(s.courses), len(s.courses)+1)
	copy(next, s.courses)
	next = append(next, ref)

	if err := s.persist(ctx, next); err != nil {
		return false, err
	}
	s.courses = next
	return true, nil
}

// Remove drops every entry equal to ref and reports whether any was removed.
func (s *Store) Remove(ctx context.Context, ref types.CourseRef) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]types.CourseRef, 0, len(s.courses))
	for _, c := range s.courses {
		if c != ref {
			next = append(next, c)
		}
	}
	if len(next) == len(s.courses) {
		return false, nil
	}

	if err := s.persist(ctx, next); err != nil {
		return false, err
	}
	s.courses = next
	return true, nil
}

// Clear empties the list.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := []types.CourseRef{}
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.courses = next
	return nil
}

func (s *Store) persist(ctx context.Context, courses []types.CourseRef) error {
	raw, err := json.Marshal(courses)
	if err != nil {
		return fmt.Errorf("failed to encode selected courses: %w", err)
	}
	if err := s.kv.Put(ctx, s.key, raw); err != nil {
		return fmt.Errorf("failed to persist selected courses: %w", err)
	}
	return nil
}

func indexOf(courses []types.CourseRef, ref types.CourseRef) int {
	for i, c := range courses {
		if c == ref {
			return i
		}
	}
	return -1
}
