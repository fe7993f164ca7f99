// ABOUTME: Server-sent events sink bridging the stream protocol onto HTTP
package httpserver

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/harper/voicerelay/internal/stream"
)

// sseSink writes stream events as SSE frames, flushing after each one.
type sseSink struct {
	resp *echo.Response
}

func newSSESink(resp *echo.Response) *sseSink {
	return &sseSink{resp: resp}
}

// Send writes one event. The event type becomes the SSE event name and the
// payload its data line; events without payloads carry an empty object.
func (s *sseSink) Send(ev stream.Event) error {
	data := []byte("{}")
	if ev.Data != nil {
		encoded, err := json.Marshal(ev.Data)
		if err != nil {
			return fmt.Errorf("encode %s event: %w", ev.Type, err)
		}
		data = encoded
	}
	if _, err := fmt.Fprintf(s.resp, "event: %s\ndata: %s\n\n", ev.Type, data); err != nil {
		return err
	}
	if f, ok := s.resp.Writer.(http.Flusher); ok {
		f.Flush()
	}
	return nil
}
