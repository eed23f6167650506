package stream

import (
	"context"
	"net/http"
	"time"

	ws "github.com/coder/websocket"

	"github.com/getriverd/riverd/pkg/httputil"
)

// wsWriteTimeout bounds a single WebSocket write or ping.
const wsWriteTimeout = 10 * time.Second

// ServeWS handles the WebSocket streaming endpoint. It shares the
// query contract and emission loop with the HTTP transports; each
// rendition is delivered as one text message.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	q, err := ParseQuery(r.URL.Query())
	if err != nil {
		httputil.WriteBadRequest(w, "invalid_query", err.Error())
		return
	}

	conn, err := ws.Accept(w, r, nil)
	if err != nil {
		h.log.Warn("websocket accept failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	defer conn.CloseNow() //nolint:errcheck

	// The session never reads application data. CloseRead keeps
	// control frames flowing and cancels the context when the peer
	// closes or the connection drops.
	ctx, cancel := context.WithCancel(conn.CloseRead(r.Context()))
	defer cancel()

	s := &Stream{
		ID:        h.nextStreamID(),
		ClientIP:  r.RemoteAddr,
		UserAgent: r.UserAgent(),
		Format:    FormatWS,
		StartTime: time.Now(),
		Status:    StatusActive,
		query:     q,
		ctx:       ctx,
		cancel:    cancel,
		send:      &wsSender{conn: conn},
	}

	if err := h.manager.Register(s); err != nil {
		_ = conn.Close(ws.StatusTryAgainLater, "too many streams")
		return
	}
	defer h.manager.Deregister(s.ID)

	h.log.Info("stream connected",
		"id", s.ID,
		"remote", s.ClientIP,
		"format", FormatWS,
		"interval_min", q.IntervalMin,
		"interval_max", q.IntervalMax,
	)

	h.run(s)

	h.log.Info("stream closed",
		"id", s.ID,
		"events", s.eventsSent(),
		"duration_ms", time.Since(s.StartTime).Milliseconds(),
	)

	_ = conn.Close(ws.StatusNormalClosure, "")
}

// wsSender writes renditions as WebSocket text messages.
type wsSender struct {
	conn *ws.Conn
}

func (t *wsSender) sendEvent(s *Stream, payload []byte) error {
	ctx, cancel := context.WithTimeout(s.ctx, wsWriteTimeout)
	defer cancel()

	if err := t.conn.Write(ctx, ws.MessageText, payload); err != nil {
		return err
	}

	s.mu.Lock()
	s.BytesSent += int64(len(payload))
	s.EventsSent++
	s.mu.Unlock()
	return nil
}

func (t *wsSender) sendError(s *Stream, msg string) error {
	// Close reasons are capped at 125 bytes by the protocol.
	if len(msg) > 120 {
		msg = msg[:120]
	}
	return t.conn.Close(ws.StatusInternalError, msg)
}

func (t *wsSender) sendKeepalive(s *Stream) error {
	ctx, cancel := context.WithTimeout(s.ctx, wsWriteTimeout)
	defer cancel()
	return t.conn.Ping(ctx)
}
