// Package selection provides the ordered-unique collections that back the
// skills and sector choices of a wizard session.
package selection

// Set is an insertion-ordered collection of unique values.
// Every mutation is idempotent: adding a present value or removing an absent
// one is a silent no-op, so repeated UI events are always safe.
// The zero value is an empty, ready-to-use set.
type Set[T comparable] struct {
	items []T
	index map[T]int
}

// New returns a set seeded with values, dropping duplicates after their
// first occurrence.
func New[T comparable](values ...T) *Set[T] {
	s := &Set[T]{}
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts value unless it is already present. It reports whether the set changed.
func (s *Set[T]) Add(value T) bool {
	if s.index == nil {
		s.index = make(map[T]int)
	}
	if _, ok := s.index[value]; ok {
		return false
	}
	s.index[value] = len(s.items)
	s.items = append(s.items, value)
	return true
}

// AddAll inserts each value in order and returns how many were new.
func (s *Set[T]) AddAll(values ...T) int {
	added := 0
	for _, v := range values {
		if s.Add(v) {
			added++
		}
	}
	return added
}

// Remove deletes value if present. It reports whether the set changed.
func (s *Set[T]) Remove(value T) bool {
	pos, ok := s.index[value]
	if !ok {
		return false
	}
	s.items = append(s.items[:pos], s.items[pos+1:]...)
	delete(s.index, value)
	for i := pos; i < len(s.items); i++ {
		s.index[s.items[i]] = i
	}
	return true
}

// Toggle adds value when absent and removes it when present.
// It returns true if value is present after the call.
func (s *Set[T]) Toggle(value T) bool {
	if s.Contains(value) {
		s.Remove(value)
		return false
	}
	s.Add(value)
	return true
}

// Contains reports whether value is in the set.
func (s *Set[T]) Contains(value T) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[value]
	return ok
}

// Len returns the number of values.
func (s *Set[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Empty reports whether the set has no values.
func (s *Set[T]) Empty() bool {
	return s.Len() == 0
}

// Values returns a copy of the values in insertion order.
func (s *Set[T]) Values() []T {
	if s == nil {
		return []T{}
	}
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Replace discards the current contents and loads values in order.
func (s *Set[T]) Replace(values ...T) {
	s.Clear()
	s.AddAll(values...)
}

// Clear removes every value.
func (s *Set[T]) Clear() {
	s.items = nil
	s.index = nil
}

// Clone returns an independent copy.
func (s *Set[T]) Clone() *Set[T] {
	if s == nil {
		return New[T]()
	}
	return New(s.items...)
}

// Equal reports whether both sets hold the same values, ignoring order.
// Sector selections compare this way.
func (s *Set[T]) Equal(other *Set[T]) bool {
	if s.Len() != other.Len() {
		return false
	}
	for _, v := range s.Values() {
		if !other.Contains(v) {
			return false
		}
	}
	return true
}
