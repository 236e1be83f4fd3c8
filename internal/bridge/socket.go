package bridge

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// event is the incoming WebSocket message format sent by the config script.
type event struct {
	Type  string `json:"type"` // status, progress, print, error, contextlost
	Text  string `json:"text,omitempty"`
	Done  int    `json:"done,omitempty"`
	Total int    `json:"total,omitempty"`
}

// reply is the outgoing WebSocket message format.
type reply struct {
	Type     string `json:"type"` // ack, fatal, error
	Accepted bool   `json:"accepted"`
	Content  string `json:"content,omitempty"`
}

// SocketHandler receives the demo module's status callbacks over a
// WebSocket and runs them through a Monitor per connection.
type SocketHandler struct {
	logger *zap.Logger
}

// NewSocketHandler returns a handler logging to logger.
func NewSocketHandler(logger *zap.Logger) *SocketHandler {
	return &SocketHandler{logger: logger}
}

func (h *SocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("demo socket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	sink := &socketSink{conn: conn, logger: h.logger}
	monitor := NewMonitor(sink)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("demo socket read", zap.Error(err))
			}
			return
		}

		var ev event
		if err := json.Unmarshal(msg, &ev); err != nil {
			sink.send(reply{Type: "error", Content: "invalid message format"})
			continue
		}

		switch ev.Type {
		case "status":
			sink.send(reply{Type: "ack", Accepted: monitor.SetStatus(ev.Text)})
		case "progress":
			sink.send(reply{Type: "ack", Accepted: monitor.Progress(ev.Done, ev.Total)})
		case "print":
			monitor.Print(ev.Text)
			sink.send(reply{Type: "ack", Accepted: true})
		case "error":
			if !monitor.Fail(ReasonError) {
				sink.send(reply{Type: "ack", Accepted: false})
			}
		case "contextlost":
			if !monitor.Fail(ReasonContextLost) {
				sink.send(reply{Type: "ack", Accepted: false})
			}
		default:
			sink.send(reply{Type: "error", Content: "unknown message type: " + ev.Type})
		}
	}
}

// socketSink logs updates and tells the browser when the module has failed.
type socketSink struct {
	conn   *websocket.Conn
	logger *zap.Logger
}

func (s *socketSink) Status(text string) {
	s.logger.Debug("demo status", zap.String("text", text))
}

func (s *socketSink) Progress(done, total int) {
	s.logger.Debug("demo progress", zap.Int("done", done), zap.Int("total", total))
}

func (s *socketSink) Print(line string) {
	s.logger.Info("demo output", zap.String("line", line))
}

func (s *socketSink) Fatal(reason Reason, message string) {
	s.logger.Warn("demo failed", zap.String("reason", string(reason)))
	s.send(reply{Type: "fatal", Accepted: true, Content: message})
}

func (s *socketSink) send(r reply) {
	if err := s.conn.WriteJSON(r); err != nil {
		s.logger.Warn("demo socket write", zap.Error(err))
	}
}
