// Package stream implements the per-connection streaming sessions
// that drive the template fill: query validation, the randomized
// emission loop, and the SSE, NDJSON, and WebSocket transports.
package stream

import (
	"errors"
)

// Content types for the HTTP transports.
const (
	// ContentTypeEventStream is the MIME type for SSE responses.
	ContentTypeEventStream = "text/event-stream"

	// ContentTypeNDJSON is the MIME type for newline-delimited JSON.
	ContentTypeNDJSON = "application/x-ndjson"
)

// Stream output formats selectable via the format query parameter.
const (
	FormatSSE    = "sse"
	FormatNDJSON = "ndjson"
	FormatWS     = "websocket"
)

// MinIntervalMs is the floor applied to both interval bounds.
const MinIntervalMs = 1000

// SSE field prefixes per W3C specification.
const (
	fieldEvent   = "event:"
	fieldData    = "data:"
	fieldID      = "id:"
	fieldComment = ":"
)

// Status represents the lifecycle state of a stream.
type Status string

const (
	StatusActive  Status = "active"
	StatusClosing Status = "closing"
	StatusClosed  Status = "closed"
)

// Errors.
var (
	// ErrStreamClosed indicates the stream has been closed.
	ErrStreamClosed = errors.New("stream: closed")

	// ErrFlusherNotSupported indicates the response writer cannot flush.
	ErrFlusherNotSupported = errors.New("stream: flusher not supported")

	// ErrMaxConnectionsReached indicates the connection cap was hit.
	ErrMaxConnectionsReached = errors.New("stream: maximum connections reached")

	// ErrShapeNotObject indicates the shape parsed to a non-object root.
	ErrShapeNotObject = errors.New("stream: shape root is not a JSON object")
)
