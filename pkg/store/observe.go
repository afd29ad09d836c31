package store

import "github.com/aretw0/easel/pkg/domain"

type observer struct {
	id int
	fn func(domain.Change)
}

// Subscribe registers fn to run after every accepted mutation, in subscription order.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(domain.Change)) (cancel func()) {
	id := s.nextObserver
	s.nextObserver++
	s.observers = append(s.observers, observer{id: id, fn: fn})

	return func() {
		for i, o := range s.observers {
			if o.id == id {
				s.observers = append(s.observers[:i:i], s.observers[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) notify(change domain.Change) {
	// Observers may unsubscribe while being notified.
	current := append([]observer(nil), s.observers...)
	for _, o := range current {
		o.fn(change)
	}
}
