package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	mathrand "math/rand/v2"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/getriverd/riverd/pkg/generator"
	"github.com/getriverd/riverd/pkg/httputil"
	"github.com/getriverd/riverd/pkg/logging"
	"github.com/getriverd/riverd/pkg/shape"
)

// Options configures a Handler.
type Options struct {
	// MaxConnections caps concurrent streams. 0 means unlimited.
	MaxConnections int

	// KeepaliveInterval between liveness signals. 0 disables them.
	KeepaliveInterval time.Duration

	// MaxEvents per stream before a graceful close. 0 means unlimited.
	MaxEvents int64

	// Logger for operational events. Defaults to a no-op logger.
	Logger *slog.Logger
}

// Handler serves streaming sessions. One Handler is shared by all
// connections; all per-connection state lives on the Stream.
type Handler struct {
	registry  *generator.Registry
	encoder   *Encoder
	manager   *Manager
	log       *slog.Logger
	keepalive time.Duration
	maxEvents int64
	nextID    atomic.Int64
}

// NewHandler creates a stream handler backed by the given generator
// registry.
func NewHandler(reg *generator.Registry, opts Options) *Handler {
	log := opts.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Handler{
		registry:  reg,
		encoder:   NewEncoder(),
		manager:   NewManager(opts.MaxConnections),
		log:       log,
		keepalive: opts.KeepaliveInterval,
		maxEvents: opts.MaxEvents,
	}
}

// Manager returns the connection manager.
func (h *Handler) Manager() *Manager {
	return h.manager
}

// ServeHTTP handles the streaming endpoint for the SSE and NDJSON
// formats. Validation failures return 400 before streaming begins;
// afterwards the session runs until the client disconnects or a
// terminal error ends it.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q, err := ParseQuery(r.URL.Query())
	if err != nil {
		httputil.WriteBadRequest(w, "invalid_query", err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		httputil.WriteInternalError(w, "streaming_unsupported", ErrFlusherNotSupported.Error())
		return
	}

	h.setStreamHeaders(w, q.Format)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	s := &Stream{
		ID:        h.nextStreamID(),
		ClientIP:  r.RemoteAddr,
		UserAgent: r.UserAgent(),
		Format:    q.Format,
		StartTime: time.Now(),
		Status:    StatusActive,
		query:     q,
		ctx:       ctx,
		cancel:    cancel,
		send: &httpSender{
			encoder: h.encoder,
			writer:  w,
			flusher: flusher,
			format:  q.Format,
		},
	}

	if err := h.manager.Register(s); err != nil {
		httputil.WriteServiceUnavailable(w, "too_many_streams", err.Error())
		return
	}
	defer h.manager.Deregister(s.ID)

	// Commit the response so the client sees headers before the first
	// emission delay elapses.
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	h.log.Info("stream connected",
		"id", s.ID,
		"remote", s.ClientIP,
		"format", q.Format,
		"interval_min", q.IntervalMin,
		"interval_max", q.IntervalMax,
	)

	h.run(s)

	h.log.Info("stream closed",
		"id", s.ID,
		"events", s.eventsSent(),
		"duration_ms", time.Since(s.StartTime).Milliseconds(),
	)
}

// setStreamHeaders sets response headers for the chosen format.
func (h *Handler) setStreamHeaders(w http.ResponseWriter, format string) {
	if format == FormatNDJSON {
		w.Header().Set("Content-Type", ContentTypeNDJSON)
	} else {
		w.Header().Set("Content-Type", ContentTypeEventStream)
	}
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no") // Disable nginx buffering
}

// run drives one session's emission loop. A persistent timer holds
// the drawn delay; it is reset only after an emission, so keepalive
// ticks never push the next event out. Each firing re-parses the
// shape, fills it, and emits one event. A shape that fails to parse
// ends only this session, with a terminal diagnostic sent to the
// client.
func (h *Handler) run(s *Stream) {
	ctx := s.ctx

	var keepaliveCh <-chan time.Time
	if h.keepalive > 0 {
		ticker := time.NewTicker(h.keepalive)
		defer ticker.Stop()
		keepaliveCh = ticker.C
	}

	timer := time.NewTimer(drawDelay(s.query.IntervalMin, s.query.IntervalMax))
	defer timer.Stop()

	for {
		if h.maxEvents > 0 && s.eventsSent() >= h.maxEvents {
			s.setStatus(StatusClosed)
			return
		}

		select {
		case <-ctx.Done():
			// Client disconnected or server shutting down.
			s.setStatus(StatusClosed)
			return

		case <-keepaliveCh:
			if err := s.send.sendKeepalive(s); err != nil {
				s.setStatus(StatusClosed)
				return
			}

		case <-timer.C:
			payload, err := h.render(s.query.Shape)
			if err != nil {
				h.log.Warn("stream template failed", "id", s.ID, "error", err)
				s.setStatus(StatusClosing)
				_ = s.send.sendError(s, err.Error())
				s.setStatus(StatusClosed)
				return
			}
			if err := s.send.sendEvent(s, payload); err != nil {
				s.setStatus(StatusClosed)
				return
			}
			timer.Reset(drawDelay(s.query.IntervalMin, s.query.IntervalMax))
		}
	}
}

// render re-parses the raw shape and fills it. Parsing happens every
// tick so a template edit mid-stream is impossible and a malformed
// template fails on each emission rather than once.
func (h *Handler) render(raw string) ([]byte, error) {
	var decoded any
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		return nil, fmt.Errorf("parse shape: %w", err)
	}

	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil, ErrShapeNotObject
	}

	filled := shape.Fill(obj, h.registry)
	return json.Marshal(filled)
}

// maxDelayMs is the largest millisecond count representable as a
// time.Duration. Bounds above it are clamped so the multiplication
// below cannot overflow into a zero or negative delay.
const maxDelayMs = uint64(math.MaxInt64 / int64(time.Millisecond))

// drawDelay picks a uniform delay in [min, max) milliseconds. An
// empty or inverted range degrades to a fixed delay of min.
func drawDelay(min, max uint64) time.Duration {
	if min > maxDelayMs {
		min = maxDelayMs
	}
	if max > maxDelayMs {
		max = maxDelayMs
	}
	if max <= min {
		return time.Duration(min) * time.Millisecond
	}
	return time.Duration(min+mathrand.Uint64N(max-min)) * time.Millisecond
}

// nextStreamID generates a unique stream identifier.
func (h *Handler) nextStreamID() string {
	return "stream-" + strconv.FormatInt(h.nextID.Add(1), 10)
}

// eventsSent reads the delivered-event count.
func (s *Stream) eventsSent() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.EventsSent
}

// setStatus updates the stream status.
func (s *Stream) setStatus(st Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Status = st
}

// httpSender writes frames to an http.ResponseWriter, formatted as
// SSE events or NDJSON lines.
type httpSender struct {
	encoder *Encoder
	writer  http.ResponseWriter
	flusher http.Flusher
	format  string
}

func (t *httpSender) sendEvent(s *Stream, payload []byte) error {
	var frame string
	if t.format == FormatNDJSON {
		frame = string(payload) + "\n"
	} else {
		frame = t.encoder.FormatEvent(s.eventsSent()+1, string(payload))
	}
	return t.write(s, frame, true)
}

func (t *httpSender) sendError(s *Stream, msg string) error {
	var frame string
	if t.format == FormatNDJSON {
		body, err := json.Marshal(map[string]string{"error": msg})
		if err != nil {
			body = []byte(`{"error":"stream failed"}`)
		}
		frame = string(body) + "\n"
	} else {
		frame = t.encoder.FormatErrorEvent(msg)
	}
	return t.write(s, frame, false)
}

func (t *httpSender) sendKeepalive(s *Stream) error {
	// Comment frames only exist in the SSE wire format.
	if t.format != FormatSSE {
		return nil
	}
	return t.write(s, t.encoder.FormatKeepalive(), false)
}

// write delivers one frame and updates the stream counters.
func (t *httpSender) write(s *Stream, frame string, countEvent bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := io.WriteString(t.writer, frame); err != nil {
		return err
	}
	t.flusher.Flush()

	s.BytesSent += int64(len(frame))
	if countEvent {
		s.EventsSent++
	}
	return nil
}
