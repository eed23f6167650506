package stream

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Encoder formats SSE frames per the W3C specification.
// See: https://html.spec.whatwg.org/multipage/server-sent-events.html
type Encoder struct{}

// NewEncoder creates a new SSE encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// FormatEvent formats one event with an id and data payload.
// Multiline data is split across data: fields; a blank line
// dispatches the event.
func (e *Encoder) FormatEvent(id int64, data string) string {
	var sb strings.Builder

	sb.WriteString(fieldID)
	sb.WriteString(strconv.FormatInt(id, 10))
	sb.WriteByte('\n')

	for _, line := range strings.Split(data, "\n") {
		sb.WriteString(fieldData)
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	sb.WriteByte('\n')
	return sb.String()
}

// FormatErrorEvent formats a terminal diagnostic as an "error" typed
// event with a JSON body.
func (e *Encoder) FormatErrorEvent(msg string) string {
	body, err := json.Marshal(map[string]string{"error": msg})
	if err != nil {
		body = []byte(`{"error":"stream failed"}`)
	}

	var sb strings.Builder
	sb.WriteString(fieldEvent)
	sb.WriteString("error\n")
	sb.WriteString(fieldData)
	sb.Write(body)
	sb.WriteString("\n\n")
	return sb.String()
}

// FormatKeepalive returns a keepalive comment. Comments start with
// a colon and are ignored by EventSource clients.
func (e *Encoder) FormatKeepalive() string {
	return fieldComment + " keepalive\n\n"
}
