package workspace

import "sync"

type subscriber struct {
	id int
	fn func(prev, next State)
}

// Store holds a State and serializes dispatches to it.
type Store struct {
	mu     sync.Mutex
	state  State
	nextID int
	subs   []subscriber
}

// NewStore creates a store starting at initial.
func NewStore(initial State) *Store {
	return &Store{state: initial}
}

// State returns the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch reduces a into the current state. Subscribers are notified in
// subscription order when the state changed. A rejected action leaves the
// state untouched.
func (s *Store) Dispatch(a Action) (State, error) {
	_, next, err := s.Apply(a)
	return next, err
}

// Apply is Dispatch that also returns the state a was applied to.
func (s *Store) Apply(a Action) (prev, next State, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev = s.state
	next, err = Reduce(prev, a)
	if err != nil {
		return prev, prev, err
	}
	s.set(next)
	return prev, next, nil
}

// RevertPreferences undoes the preference change from prev to next. A
// field is reset only while it still holds the value next gave it, so
// later dispatches and transient fields are kept.
func (s *Store) RevertPreferences(prev, next State) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.state
	if prev.SidebarCollapsed != next.SidebarCollapsed && cur.SidebarCollapsed == next.SidebarCollapsed {
		cur.SidebarCollapsed = prev.SidebarCollapsed
	}
	if prev.ViewMode != next.ViewMode && cur.ViewMode == next.ViewMode {
		cur.ViewMode = prev.ViewMode
	}
	s.set(cur)
	return cur
}

// set stores next and notifies subscribers on change. Callers hold mu.
func (s *Store) set(next State) {
	prev := s.state
	s.state = next
	if equal(prev, next) {
		return
	}
	for _, sub := range s.subs {
		sub.fn(prev, next)
	}
}

// Subscribe registers fn to run after every state change. Subscribers run
// with the store locked and must not dispatch. The returned func removes fn.
func (s *Store) Subscribe(fn func(prev, next State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func equal(a, b State) bool {
	if a.SidebarCollapsed != b.SidebarCollapsed || a.PaletteOpen != b.PaletteOpen || a.ViewMode != b.ViewMode {
		return false
	}
	if a.OpenItemID == nil || b.OpenItemID == nil {
		return a.OpenItemID == b.OpenItemID
	}
	return *a.OpenItemID == *b.OpenItemID
}
