package httpstream

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/oas2mcp/oas2mcp/mcpdispatch"
	"github.com/oas2mcp/oas2mcp/oaserr"
)

const sessionHeader = "Mcp-Session-Id"
const defaultBasePath = "/mcp"

// Options configures a Handler. AllowedOrigins is matched against the
// incoming Origin header; an empty slice disables origin checking
// (same-origin tooling / no browser client expected). BasePath defaults to
// "/mcp" if empty, overridable so the bridge can be mounted behind a
// reverse proxy at a different path (the CLI's --path flag).
type Options struct {
	AllowedOrigins []string
	IdleTTL        time.Duration
	BasePath       string
}

// Handler serves the streamable HTTP MCP transport over one Dispatcher.
// POST <BasePath> carries one JSON-RPC request per call; GET <BasePath>
// (with Accept: text/event-stream) attaches an SSE stream that responses
// for that session are fanned out onto; DELETE <BasePath> ends the
// session.
type Handler struct {
	dispatcher *mcpdispatch.Dispatcher
	sessions   *sessionTable
	origins    map[string]bool
	basePath   string
	done       chan struct{}
}

func New(dispatcher *mcpdispatch.Dispatcher, opts Options) *Handler {
	origins := make(map[string]bool, len(opts.AllowedOrigins))
	for _, o := range opts.AllowedOrigins {
		origins[o] = true
	}
	basePath := opts.BasePath
	if basePath == "" {
		basePath = defaultBasePath
	}
	h := &Handler{
		dispatcher: dispatcher,
		sessions:   newSessionTable(opts.IdleTTL),
		origins:    origins,
		basePath:   basePath,
		done:       make(chan struct{}),
	}
	h.sessions.startSweeper(h.done)
	return h
}

// Close stops the idle-session sweeper. It does not close any open HTTP
// connections; the caller's http.Server shutdown handles that.
func (h *Handler) Close() {
	close(h.done)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/health" {
		h.handleHealth(w, r)
		return
	}
	if r.URL.Path != h.basePath {
		http.NotFound(w, r)
		return
	}
	if origin := r.Header.Get("Origin"); !h.checkOrigin(r) {
		http.Error(w, (&oaserr.OriginRejectedError{Origin: origin}).Error(), http.StatusForbidden)
		return
	}

	switch r.Method {
	case http.MethodPost:
		h.handlePost(w, r)
	case http.MethodGet:
		h.handleStream(w, r)
	case http.MethodDelete:
		h.handleDelete(w, r)
	default:
		w.Header().Set("Allow", "GET, POST, DELETE")
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"healthy"}`))
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	if len(h.origins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return h.origins[origin]
}

// handlePost answers one JSON-RPC request. An initialize call with no
// session header mints a new session and returns its id in the response
// header; every subsequent call must echo that header.
func (h *Handler) handlePost(w http.ResponseWriter, r *http.Request) {
	if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
		return
	}

	var req mcpdispatch.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("malformed request body: %v", err), http.StatusBadRequest)
		return
	}

	sessionID := r.Header.Get(sessionHeader)
	var sess *session
	if sessionID == "" {
		if req.Method != "initialize" {
			http.Error(w, "missing "+sessionHeader, http.StatusBadRequest)
			return
		}
		sess = h.sessions.create()
	} else {
		var ok bool
		sess, ok = h.sessions.get(sessionID)
		if !ok {
			http.Error(w, (&oaserr.SessionUnknownError{SessionID: sessionID}).Error(), http.StatusBadRequest)
			return
		}
	}
	sess.touch()

	resp := h.dispatcher.Dispatch(r.Context(), &req)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(sessionHeader, sess.id)
	encoded, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	// Fan the response out to an attached SSE stream too, so a client that
	// issued the POST from one tab and is listening on another still sees it.
	sess.deliver(encoded)
	w.Write(encoded)
}

// handleStream attaches an SSE reader to the named session and blocks,
// writing each delivered response frame as an SSE "message" event, until
// the client disconnects or the session is closed.
func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	if !strings.Contains(r.Header.Get("Accept"), "text/event-stream") {
		http.Error(w, "GET "+h.basePath+" requires Accept: text/event-stream", http.StatusBadRequest)
		return
	}
	sessionID := r.Header.Get(sessionHeader)
	sess, ok := h.sessions.get(sessionID)
	if !ok {
		http.Error(w, (&oaserr.SessionUnknownError{SessionID: sessionID}).Error(), http.StatusBadRequest)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	ch := make(chan []byte, responseBufferLimit)
	if !sess.attach(ch) {
		http.Error(w, "session already has an attached stream", http.StatusConflict)
		return
	}
	defer sess.detach(ch)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-h.done:
			fmt.Fprintf(w, "event: close\ndata: {}\n\n")
			flusher.Flush()
			return
		case frame, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: message\ndata: %s\n\n", frame)
			flusher.Flush()
		}
	}
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	sessionID := r.Header.Get(sessionHeader)
	if sessionID == "" {
		http.Error(w, "missing "+sessionHeader, http.StatusBadRequest)
		return
	}
	sess, ok := h.sessions.get(sessionID)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	sess.markClosed()
	h.sessions.remove(sessionID)
	w.WriteHeader(http.StatusNoContent)
}

// sessionCount reports the number of live sessions. Exposed for tests.
func (h *Handler) sessionCount() int {
	h.sessions.mu.Lock()
	defer h.sessions.mu.Unlock()
	return len(h.sessions.sessions)
}
