// Package dedup provides a capacity-bounded set with FIFO eviction,
// used to suppress re-delivery of modem log entries across poll cycles.
package dedup

import "fmt"

// Set holds at most capacity values, evicting the oldest-inserted value
// when full. Membership checks are O(1). A Set is not safe for
// concurrent use; the worker owns one and touches it from one goroutine.
type Set[T comparable] struct {
	capacity int
	members  map[T]struct{}
	order    []T
}

func New[T comparable](capacity int) *Set[T] {
	if capacity <= 0 {
		panic("dedup: capacity must be positive")
	}
	return &Set[T]{
		capacity: capacity,
		members:  make(map[T]struct{}, capacity),
	}
}

func (s *Set[T]) Contains(v T) bool {
	_, ok := s.members[v]
	return ok
}

// Insert adds v unconditionally, first evicting the oldest member when
// the set is full. The evicted value is returned with ok=true. Inserting
// a value that is already a member desynchronizes the set; callers that
// want duplicate suppression must check Contains first.
func (s *Set[T]) Insert(v T) (evicted T, ok bool) {
	if len(s.order) >= s.capacity {
		evicted, ok = s.PopOldest()
	}
	s.members[v] = struct{}{}
	s.order = append(s.order, v)
	return evicted, ok
}

// PopOldest removes and returns the oldest-inserted member, or ok=false
// if the set is empty.
func (s *Set[T]) PopOldest() (T, bool) {
	var zero T
	if len(s.order) == 0 {
		return zero, false
	}
	oldest := s.order[0]
	s.order = s.order[1:]
	if _, ok := s.members[oldest]; !ok {
		// The member index and order queue are maintained in lockstep;
		// a miss here means the set is corrupted and nothing it reports
		// can be trusted.
		panic(fmt.Sprintf("dedup: order queue and member index desynchronized on %v", oldest))
	}
	delete(s.members, oldest)
	return oldest, true
}

func (s *Set[T]) Len() int {
	return len(s.order)
}
