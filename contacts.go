package collide

import (
	"slices"
	"sync"
)

// contactSet holds the active pairs of the previous and the current step.
// Contacts are pooled: one found in step N goes back to the pool at the end
// of step N+1.
type contactSet struct {
	previous map[uint64]*Contact
	current  map[uint64]*Contact
	pool     sync.Pool
	keys     []uint64
}

func newContactSet() *contactSet {
	return &contactSet{
		previous: make(map[uint64]*Contact),
		current:  make(map[uint64]*Contact),
		pool: sync.Pool{New: func() any {
			return &Contact{}
		}},
	}
}

func (s *contactSet) get() *Contact {
	c := s.pool.Get().(*Contact)
	c.reset()
	return c
}

func (s *contactSet) put(c *Contact) {
	c.A, c.B = nil, nil
	s.pool.Put(c)
}

// carry copies last step's contact for key into the current step. Pairs
// whose bodies cannot move keep their contact this way, so no Exit fires for
// a body that merely fell asleep on the ground.
func (s *contactSet) carry(key, stamp uint64) bool {
	prev, ok := s.previous[key]
	if !ok {
		return false
	}
	c := s.get()
	c.copyFrom(prev)
	c.stamp = stamp
	s.current[key] = c
	return true
}

func (s *contactSet) add(c *Contact) {
	s.current[c.Key] = c
}

func sortedKeys(m map[uint64]*Contact, dst []uint64) []uint64 {
	dst = dst[:0]
	for k := range m {
		dst = append(dst, k)
	}
	slices.Sort(dst)
	return dst
}

// diff appends the Enter and Stay events of the current step in key order,
// then the Exit events of pairs that ended, also in key order.
func (s *contactSet) diff(events []Event) []Event {
	s.keys = sortedKeys(s.current, s.keys)
	for _, key := range s.keys {
		c := s.current[key]
		phase := phaseEnter
		if _, ok := s.previous[key]; ok {
			phase = phaseStay
		}
		events = append(events, Event{Kind: contactEventKind(phase, c.Trigger), Contact: c})
	}
	s.keys = sortedKeys(s.previous, s.keys)
	for _, key := range s.keys {
		if _, ok := s.current[key]; ok {
			continue
		}
		c := s.previous[key]
		events = append(events, Event{Kind: contactEventKind(phaseExit, c.Trigger), Contact: c})
	}
	return events
}

// swap turns the current step's contacts into the previous ones and recycles
// the contacts that are now two steps old.
func (s *contactSet) swap() {
	for _, c := range s.previous {
		s.put(c)
	}
	clear(s.previous)
	s.previous, s.current = s.current, s.previous
}

// discard recycles the contacts of an unfinished step.
func (s *contactSet) discard() {
	for _, c := range s.current {
		s.put(c)
	}
	clear(s.current)
}

// active returns the contacts found by the last completed step, in key order.
func (s *contactSet) active() []*Contact {
	keys := sortedKeys(s.previous, nil)
	out := make([]*Contact, len(keys))
	for i, k := range keys {
		out[i] = s.previous[k]
	}
	return out
}
