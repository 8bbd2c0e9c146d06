// Package httpstream implements the streamable HTTP + SSE MCP transport:
// POST /mcp for requests, GET /mcp (Accept: text/event-stream) for the
// response stream, DELETE /mcp to close a session, GET /health for
// liveness.
package httpstream

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

const (
	defaultIdleTTL       = 15 * time.Minute
	defaultSweepInterval = time.Minute
	responseBufferLimit  = 64
)

// session holds one MCP client's transport-level state: its outstanding
// SSE subscriber (at most one concurrent, per spec.md §4.6) and any
// responses buffered because no stream was attached when they were
// produced.
type session struct {
	id         string
	mu         sync.Mutex
	lastActive time.Time
	stream     chan []byte // non-nil while a GET /mcp SSE reader is attached
	buffered   [][]byte
	closed     bool
}

func newSession(id string) *session {
	return &session{id: id, lastActive: time.Now()}
}

func (s *session) touch() {
	s.mu.Lock()
	s.lastActive = time.Now()
	s.mu.Unlock()
}

func (s *session) idleSince(now time.Time, ttl time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastActive) > ttl
}

// deliver sends frame to the attached SSE stream, or buffers it (dropping
// the oldest on overflow) if no stream is currently attached.
func (s *session) deliver(frame []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stream != nil {
		select {
		case s.stream <- frame:
			return
		default:
			// Attached but not draining fast enough: fall through to buffer.
		}
	}
	if len(s.buffered) >= responseBufferLimit {
		s.buffered = s.buffered[1:]
	}
	s.buffered = append(s.buffered, frame)
}

// attach registers ch as this session's sole SSE stream and flushes any
// buffered frames into it. ok is false if a stream is already attached.
func (s *session) attach(ch chan []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stream != nil {
		return false
	}
	s.stream = ch
	for _, frame := range s.buffered {
		ch <- frame
	}
	s.buffered = nil
	return true
}

func (s *session) detach(ch chan []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stream == ch {
		s.stream = nil
	}
}

func (s *session) markClosed() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

func (s *session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// sessionTable is the guarded id -> session map with an idle-TTL sweeper,
// modeled directly on the teacher's specCacheStore: a mutex-guarded map and
// a CompareAndSwap-guarded singleton sweeper goroutine, whose ticker loop
// runs one sweep pass at a time.
type sessionTable struct {
	mu             sync.Mutex
	sessions       map[string]*session
	idleTTL        time.Duration
	sweepInterval  time.Duration
	sweeperStarted atomic.Bool
}

func newSessionTable(idleTTL time.Duration) *sessionTable {
	if idleTTL <= 0 {
		idleTTL = defaultIdleTTL
	}
	return &sessionTable{
		sessions:      map[string]*session{},
		idleTTL:       idleTTL,
		sweepInterval: defaultSweepInterval,
	}
}

func (t *sessionTable) create() *session {
	t.mu.Lock()
	defer t.mu.Unlock()
	id, err := uuid.NewRandom()
	if err != nil {
		// crypto/rand failure: retry once with uuid.New, which reads the
		// same source and panics if it fails again.
		id = uuid.New()
	}
	s := newSession(id.String())
	t.sessions[s.id] = s
	return s
}

func (t *sessionTable) get(id string) (*session, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s, ok := t.sessions[id]
	return s, ok
}

func (t *sessionTable) remove(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.sessions, id)
}

func (t *sessionTable) sweep() {
	now := time.Now()
	t.mu.Lock()
	var stale []string
	for id, s := range t.sessions {
		if s.idleSince(now, t.idleTTL) {
			stale = append(stale, id)
		}
	}
	for _, id := range stale {
		delete(t.sessions, id)
	}
	t.mu.Unlock()
}

// startSweeper launches the background idle-session GC. Safe to call more
// than once; only the first call spawns a goroutine, stopped by cancelling
// done.
func (t *sessionTable) startSweeper(done <-chan struct{}) {
	if !t.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer t.sweeperStarted.Store(false)
		ticker := time.NewTicker(t.sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				t.sweep()
			}
		}
	}()
}
