package points

import (
	"sync"
	"time"
)

// NotFoundError — returned when no points are stored under the requested
// receipt identifier. A client-visible "no result", not a system fault.
type NotFoundError struct {
	message string
}

// Error returns a textual description of the error.
func (e *NotFoundError) Error() string {
	return e.message
}

// NewNotFoundError creates a NotFoundError for the given receipt identifier.
func NewNotFoundError(id string) *NotFoundError {
	return &NotFoundError{message: "points not found: " + id}
}

// Repository stores computed point totals keyed by receipt identifier.
// Implementations must be safe for concurrent use. Entries are written once
// and never mutated; Get for an unknown id returns NotFoundError.
type Repository interface {
	Put(id string, points int)
	Get(id string) (int, error)
}

// entry — a stored total together with the time it was written, so that an
// expiry policy can be applied without changing the stored shape.
type entry struct {
	points   int
	storedAt time.Time
}

// MemoryRepository is a thread-safe in-memory points store. Each processed
// receipt occupies one map entry for the life of the process, unless a
// positive ttl is configured, in which case a background sweeper removes
// entries older than the ttl.
//
// Usage:
//
//	repo := points.NewMemoryRepository(0) // keep entries forever
//	go repo.Serve()
//	repo.Put(id, 31)
type MemoryRepository struct {
	ttl time.Duration // entry lifetime; zero disables expiry

	entries   map[string]entry
	entriesMu sync.RWMutex

	done     chan struct{} // closed by Stop to halt the sweeper
	stopOnce sync.Once
}

// Put stores the point total under the given identifier. Identifiers are
// generated fresh per receipt, so an existing entry is never overwritten in
// practice; if one were, the newer value would win. Thread-safe.
func (mr *MemoryRepository) Put(id string, points int) {
	mr.entriesMu.Lock()
	defer mr.entriesMu.Unlock()
	mr.entries[id] = entry{points: points, storedAt: time.Now()}
}

// Get returns the point total stored under the given identifier.
// Returns NotFoundError when the identifier is unknown. Thread-safe.
func (mr *MemoryRepository) Get(id string) (int, error) {
	mr.entriesMu.RLock()
	defer mr.entriesMu.RUnlock()
	e, found := mr.entries[id]
	if !found {
		return 0, NewNotFoundError(id)
	}
	return e.points, nil
}

// Len returns the number of stored entries. Thread-safe.
func (mr *MemoryRepository) Len() int {
	mr.entriesMu.RLock()
	defer mr.entriesMu.RUnlock()
	return len(mr.entries)
}

// Serve runs the background sweep that removes entries older than the ttl,
// checking once a minute. It blocks and should be started in its own
// goroutine:
//
//	go repo.Serve()
//
// With a zero ttl Serve returns immediately and entries live for the whole
// process. Stop makes Serve return.
func (mr *MemoryRepository) Serve() {
	if mr.ttl <= 0 {
		return
	}

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-mr.done:
			return
		case <-ticker.C:
			mr.sweepOnce(time.Now())
		}
	}
}

// sweepOnce removes every entry whose age at the given instant exceeds the
// ttl. Expired ids are collected under a read lock first so the write lock
// is only taken when there is something to delete.
func (mr *MemoryRepository) sweepOnce(now time.Time) {
	var expired []string

	mr.entriesMu.RLock()
	for id, e := range mr.entries {
		if now.Sub(e.storedAt) > mr.ttl {
			expired = append(expired, id)
		}
	}
	mr.entriesMu.RUnlock()

	if len(expired) > 0 {
		mr.entriesMu.Lock()
		for _, id := range expired {
			delete(mr.entries, id)
		}
		mr.entriesMu.Unlock()
	}
}

// Stop halts the background sweep. Safe to call more than once and even if
// Serve never ran.
func (mr *MemoryRepository) Stop() {
	mr.stopOnce.Do(func() { close(mr.done) })
}

// NewMemoryRepository creates a new in-memory points store.
// Parameters:
//   - ttl: lifetime of a stored entry; zero or negative keeps entries for
//     the whole process.
//
// Call Serve in a separate goroutine to activate expiry.
func NewMemoryRepository(ttl time.Duration) *MemoryRepository {
	return &MemoryRepository{
		ttl:     ttl,
		entries: make(map[string]entry),
		done:    make(chan struct{}),
	}
}
