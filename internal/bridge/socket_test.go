package bridge

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func dialSocket(t *testing.T, logger *zap.Logger) *websocket.Conn {
	t.Helper()
	server := httptest.NewServer(NewSocketHandler(logger))
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("websocket dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func roundTrip(t *testing.T, conn *websocket.Conn, ev event) reply {
	t.Helper()
	if err := conn.WriteJSON(ev); err != nil {
		t.Fatalf("write: %v", err)
	}
	var r reply
	if err := conn.ReadJSON(&r); err != nil {
		t.Fatalf("read: %v", err)
	}
	return r
}

func TestSocketAcceptsStatus(t *testing.T) {
	conn := dialSocket(t, zap.NewNop())

	if r := roundTrip(t, conn, event{Type: "status", Text: "Downloading..."}); r.Type != "ack" || !r.Accepted {
		t.Errorf("status reply = %+v, want accepted ack", r)
	}
	if r := roundTrip(t, conn, event{Type: "progress", Done: 1, Total: 4}); r.Type != "ack" || !r.Accepted {
		t.Errorf("progress reply = %+v, want accepted ack", r)
	}
}

func TestSocketContextLost(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	conn := dialSocket(t, zap.New(core))

	roundTrip(t, conn, event{Type: "status", Text: "Running..."})

	r := roundTrip(t, conn, event{Type: "contextlost"})
	if r.Type != "fatal" {
		t.Fatalf("contextlost reply = %+v, want fatal", r)
	}
	if !strings.Contains(r.Content, "reload is required") {
		t.Errorf("fatal content = %q, want reload message", r.Content)
	}

	if r := roundTrip(t, conn, event{Type: "status", Text: "Running again"}); r.Accepted {
		t.Error("status after context loss should be suppressed")
	}
	if r := roundTrip(t, conn, event{Type: "error"}); r.Type != "ack" || r.Accepted {
		t.Errorf("second failure reply = %+v, want rejected ack", r)
	}

	if n := logs.FilterMessage("demo failed").Len(); n != 1 {
		t.Errorf("logged %d failures, want 1", n)
	}
}

// The frames below are byte for byte what the config script sends while the
// loader reports its dependencies and then loses the WebGL context.
func TestSocketReplaysLoaderFrames(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	conn := dialSocket(t, zap.New(core))

	frames := []struct {
		raw      string
		wantType string
		accepted bool
	}{
		{`{"type":"status","text":"Downloading..."}`, "ack", true},
		{`{"type":"status","text":"Preparing... (0/2)"}`, "ack", true},
		{`{"type":"status","text":"Preparing... (1/2)"}`, "ack", true},
		{`{"type":"status","text":"All downloads complete."}`, "ack", true},
		{`{"type":"print","text":"raycaster ready"}`, "ack", true},
		{`{"type":"contextlost"}`, "fatal", true},
		{`{"type":"status","text":"Preparing... (2/2)"}`, "ack", false},
	}
	for _, f := range frames {
		if err := conn.WriteMessage(websocket.TextMessage, []byte(f.raw)); err != nil {
			t.Fatalf("write %s: %v", f.raw, err)
		}
		var r reply
		if err := conn.ReadJSON(&r); err != nil {
			t.Fatalf("read after %s: %v", f.raw, err)
		}
		if r.Type != f.wantType || r.Accepted != f.accepted {
			t.Errorf("%s: reply = %+v, want type %s accepted %v", f.raw, r, f.wantType, f.accepted)
		}
	}

	progress := logs.FilterMessage("demo progress").All()
	if len(progress) != 2 {
		t.Fatalf("logged %d progress updates, want 2", len(progress))
	}
	last := progress[1].ContextMap()
	if last["done"] != int64(1) || last["total"] != int64(2) {
		t.Errorf("last progress = %v, want done=1 total=2", last)
	}

	var labels []string
	for _, e := range logs.FilterMessage("demo status").All() {
		labels = append(labels, e.ContextMap()["text"].(string))
	}
	want := "Downloading...|Preparing...|Preparing...|All downloads complete."
	if got := strings.Join(labels, "|"); got != want {
		t.Errorf("status labels = %s, want %s", got, want)
	}
}

func TestSocketRejectsUnknownType(t *testing.T) {
	conn := dialSocket(t, zap.NewNop())

	r := roundTrip(t, conn, event{Type: "teleport"})
	if r.Type != "error" || !strings.Contains(r.Content, "teleport") {
		t.Errorf("reply = %+v, want unknown type error", r)
	}
}

func TestSocketRejectsBadJSON(t *testing.T) {
	conn := dialSocket(t, zap.NewNop())

	if err := conn.WriteMessage(websocket.TextMessage, []byte("{not json")); err != nil {
		t.Fatalf("write: %v", err)
	}
	var r reply
	if err := conn.ReadJSON(&r); err != nil {
		t.Fatalf("read: %v", err)
	}
	if r.Type != "error" {
		t.Errorf("reply = %+v, want error", r)
	}
}
