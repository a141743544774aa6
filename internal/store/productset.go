package store

import "sync"

// productSet is an insertion-ordered set of product IDs shared by the
// wishlist and compare stores.
type productSet struct {
	mu  sync.Mutex
	ids []string
}

func (s *productSet) contains(id string) bool {
	for _, existing := range s.ids {
		if existing == id {
			return true
		}
	}
	return false
}

// add appends id if absent and reports whether the set changed.
func (s *productSet) add(id string) bool {
	if s.contains(id) {
		return false
	}
	s.ids = append(s.ids, id)
	return true
}

// remove deletes id if present and reports whether the set changed.
func (s *productSet) remove(id string) bool {
	for i, existing := range s.ids {
		if existing == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			return true
		}
	}
	return false
}

func (s *productSet) items() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}
