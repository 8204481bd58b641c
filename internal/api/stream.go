package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// wsMessage is the framing envelope for server stream messages.
type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// wsErrorPayload is the payload of a server "error" frame.
type wsErrorPayload struct {
	Message string `json:"message"`
}

// StreamConn reads server events from a WebSocket connection. It
// implements dispatch.EventSource: Next returns io.EOF once the server
// sends its "done" frame.
type StreamConn struct {
	conn *websocket.Conn
}

// OpenStream dials the server's streaming endpoint and sends the
// initial request payload. The returned source yields one decoded
// event per server frame.
func (c *Client) OpenStream(ctx context.Context, path string, request any) (*StreamConn, error) {
	dialer := websocket.Dialer{
		HandshakeTimeout: 10 * time.Second,
	}

	var header http.Header
	if c.token != "" {
		header = http.Header{"Authorization": {"Bearer " + c.token}}
	}

	conn, _, err := dialer.DialContext(ctx, wsURL(c.baseURL, path), header)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to event stream: %w", err)
	}

	if err := conn.WriteJSON(request); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to start stream: %w", err)
	}

	return &StreamConn{conn: conn}, nil
}

// Next reads the next server frame. Deadlines track the context so a
// cancelled context unblocks the read.
func (s *StreamConn) Next(ctx context.Context) (any, error) {
	if deadline, ok := ctx.Deadline(); ok {
		s.conn.SetReadDeadline(deadline)
	} else {
		s.conn.SetReadDeadline(time.Time{})
	}

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var msg wsMessage
		if err := s.conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			if websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				return nil, io.EOF
			}
			return nil, fmt.Errorf("stream read failed: %w", err)
		}

		switch msg.Type {
		case "event":
			var payload any
			if len(msg.Payload) > 0 {
				if err := json.Unmarshal(msg.Payload, &payload); err != nil {
					return nil, fmt.Errorf("malformed stream event: %w", err)
				}
			}
			return payload, nil

		case "done":
			return nil, io.EOF

		case "error":
			var errPayload wsErrorPayload
			if json.Unmarshal(msg.Payload, &errPayload) == nil && errPayload.Message != "" {
				return nil, fmt.Errorf("server error: %s", errPayload.Message)
			}
			return nil, fmt.Errorf("server error")

		case "ping":
			continue

		default:
			// Unknown frame types are skipped so new server versions
			// stay compatible with older clients.
			continue
		}
	}
}

// Close closes the underlying connection.
func (s *StreamConn) Close() error {
	s.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	return s.conn.Close()
}

// wsURL rewrites an http(s) base URL into its ws(s) counterpart.
func wsURL(base, path string) string {
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://") + path
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://") + path
	default:
		return base + path
	}
}
