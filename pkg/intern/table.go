// Package intern provides a process-wide string interning table.
//
// Interned strings are stored once and referenced through a Handle, a single
// pointer word that can be copied freely and compared with ==. Entries are
// never removed, so memory is bounded by the number of distinct strings seen
// rather than by the number of Intern calls.
package intern

import (
	"strings"
	"sync"
	"sync/atomic"
)

// Handle references a canonical string held by a Table.
// Two handles obtained from the same table are equal if and only if their
// strings are equal. The zero Handle resolves to the empty string.
type Handle struct {
	p *string
}

// String returns the canonical string. It never takes a lock.
func (h Handle) String() string {
	if h.p == nil {
		return ""
	}
	return *h.p
}

// IsZero reports whether h was never produced by Intern.
func (h Handle) IsZero() bool {
	return h.p == nil
}

// Observer receives a notification for every Intern call.
// hit is false when the call inserted a new string. distinct is the table
// size seen by that call; concurrent notifications may deliver sizes out of
// order, so observers tracking the size should keep the maximum.
type Observer interface {
	Interned(hit bool, distinct int)
}

// Stats is a point-in-time snapshot of table usage.
type Stats struct {
	Distinct int    `json:"distinct" yaml:"distinct"`
	Hits     uint64 `json:"hits" yaml:"hits"`
	Misses   uint64 `json:"misses" yaml:"misses"`
}

// Table is an append-only set of canonical strings.
type Table struct {
	mu      sync.RWMutex
	entries map[string]*string

	hits     atomic.Uint64
	misses   atomic.Uint64
	observer atomic.Pointer[observerBox]
}

type observerBox struct {
	o Observer
}

// Option configures a Table.
type Option func(*Table)

// WithObserver attaches o to the table at construction time.
func WithObserver(o Observer) Option {
	return func(t *Table) {
		t.SetObserver(o)
	}
}

// NewTable creates an empty table. Most callers want Default instead.
func NewTable(opts ...Option) *Table {
	t := &Table{
		entries: make(map[string]*string),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Intern returns the canonical handle for s, inserting s on first use.
func (t *Table) Intern(s string) Handle {
	t.mu.RLock()
	p, ok := t.entries[s]
	t.mu.RUnlock()
	if ok {
		t.record(true, 0)
		return Handle{p: p}
	}

	t.mu.Lock()
	// Double-check: another goroutine may have inserted s meanwhile.
	if p, ok := t.entries[s]; ok {
		t.mu.Unlock()
		t.record(true, 0)
		return Handle{p: p}
	}
	// The table keeps its own copy of s.
	owned := strings.Clone(s)
	p = &owned
	t.entries[owned] = p
	distinct := len(t.entries)
	t.mu.Unlock()

	t.record(false, distinct)
	return Handle{p: p}
}

// Lookup returns the handle for s without inserting it.
func (t *Table) Lookup(s string) (Handle, bool) {
	t.mu.RLock()
	p, ok := t.entries[s]
	t.mu.RUnlock()
	return Handle{p: p}, ok
}

// Resolve returns the canonical string for h.
func (t *Table) Resolve(h Handle) string {
	return h.String()
}

// Len returns the number of distinct strings interned so far.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Stats returns a snapshot of the table counters.
func (t *Table) Stats() Stats {
	return Stats{
		Distinct: t.Len(),
		Hits:     t.hits.Load(),
		Misses:   t.misses.Load(),
	}
}

// SetObserver replaces the table observer. A nil observer disables
// notifications.
func (t *Table) SetObserver(o Observer) {
	if o == nil {
		t.observer.Store(nil)
		return
	}
	t.observer.Store(&observerBox{o: o})
}

func (t *Table) record(hit bool, distinct int) {
	if hit {
		t.hits.Add(1)
	} else {
		t.misses.Add(1)
	}
	box := t.observer.Load()
	if box == nil {
		return
	}
	if hit {
		distinct = t.Len()
	}
	box.o.Interned(hit, distinct)
}

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// Default returns the process-wide table, creating it on first use.
// It is never torn down.
func Default() *Table {
	defaultOnce.Do(func() {
		defaultTable = NewTable()
	})
	return defaultTable
}

// Intern interns s in the process-wide table.
func Intern(s string) Handle {
	return Default().Intern(s)
}

// Resolve returns the canonical string for h.
func Resolve(h Handle) string {
	return h.String()
}

// SetObserver attaches o to the process-wide table.
func SetObserver(o Observer) {
	Default().SetObserver(o)
}
