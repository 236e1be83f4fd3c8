package bridge

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type recordingSink struct {
	events []string
	fatal  []string
}

func (r *recordingSink) Status(text string)       { r.events = append(r.events, "status:"+text) }
func (r *recordingSink) Progress(done, total int) { r.events = append(r.events, progressEvent(done, total)) }
func (r *recordingSink) Print(line string)        { r.events = append(r.events, "print:"+line) }
func (r *recordingSink) Fatal(reason Reason, message string) {
	r.fatal = append(r.fatal, string(reason)+":"+message)
}

func progressEvent(done, total int) string {
	return "progress:" + strings.Repeat("#", done) + "/" + strings.Repeat("#", total)
}

func TestMonitorForwardsStatus(t *testing.T) {
	sink := &recordingSink{}
	m := NewMonitor(sink)

	m.SetStatus("Downloading...")
	m.SetStatus("Downloading...") // repeated text is dropped
	m.SetStatus("Preparing... (1/3)")
	m.Progress(2, 3)
	m.Print("hello")

	want := []string{
		"status:Downloading...",
		"status:Preparing...",
		progressEvent(1, 3),
		progressEvent(2, 3),
		"print:hello",
	}
	if diff := cmp.Diff(want, sink.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestMonitorContextLostSuppressesStatus(t *testing.T) {
	sink := &recordingSink{}
	m := NewMonitor(sink)

	m.SetStatus("Running...")
	if !m.Fail(ReasonContextLost) {
		t.Fatal("first Fail should surface the notice")
	}

	if m.SetStatus("Still running?") {
		t.Error("status after failure should be suppressed")
	}
	if m.Progress(5, 10) {
		t.Error("progress after failure should be suppressed")
	}
	if m.Fail(ReasonError) {
		t.Error("second Fail should not surface another notice")
	}

	if len(sink.fatal) != 1 {
		t.Fatalf("fatal notices = %d, want 1", len(sink.fatal))
	}
	if !strings.Contains(sink.fatal[0], "reload is required") {
		t.Errorf("fatal notice = %q, want reload message", sink.fatal[0])
	}
	if m.Reason() != ReasonContextLost {
		t.Errorf("Reason = %q, want %q", m.Reason(), ReasonContextLost)
	}
	if diff := cmp.Diff([]string{"status:Running..."}, sink.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestMonitorPrintSurvivesFailure(t *testing.T) {
	sink := &recordingSink{}
	m := NewMonitor(sink)
	m.Fail(ReasonError)
	m.Print("stack trace")

	if diff := cmp.Diff([]string{"print:stack trace"}, sink.events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input       string
		label       string
		done, total int
		ok          bool
	}{
		{"Downloading data... (3/10)", "Downloading data...", 3, 10, true},
		{"Preparing... (0/1)", "Preparing...", 0, 1, true},
		{"Loading (2.5/4)", "Loading", 2, 4, true},
		{"Running...", "", 0, 0, false},
		{"", "", 0, 0, false},
		{"(1/2)", "", 0, 0, false},
	}
	for _, tt := range tests {
		label, done, total, ok := parseStatus(tt.input)
		if label != tt.label || done != tt.done || total != tt.total || ok != tt.ok {
			t.Errorf("parseStatus(%q) = (%q, %d, %d, %v), want (%q, %d, %d, %v)",
				tt.input, label, done, total, ok, tt.label, tt.done, tt.total, tt.ok)
		}
	}
}

func TestConfigScript(t *testing.T) {
	s, err := ConfigScript("module-config", ScriptConfig{
		HandleName: "Module",
		CanvasID:   "canvas",
		StatusID:   "status",
		ProgressID: "progress",
		SpinnerID:  "spinner",
		OutputID:   "output",
		SocketPath: "/ws/demo",
	})
	if err != nil {
		t.Fatalf("ConfigScript: %v", err)
	}
	if s.ID != "module-config" || s.Src != "" {
		t.Errorf("script = %+v, want inline script with id module-config", s)
	}
	for _, want := range []string{
		`var name = "Module";`,
		`document.getElementById("canvas")`,
		`"webglcontextlost"`,
		`"/ws/demo"`,
		"full page reload is required",
	} {
		if !strings.Contains(s.Inline, want) {
			t.Errorf("config script missing %q", want)
		}
	}

	// The status frame carries the raw "Label (n/m)" text; the label is only
	// stripped afterwards for display.
	sent := strings.Index(s.Inline, `send({ type: "status", text: text });`)
	stripped := strings.Index(s.Inline, "text = m[1];")
	if sent < 0 || stripped < 0 || sent > stripped {
		t.Error("status frame should be sent before the progress suffix is stripped")
	}
	if !strings.Contains(s.Inline, "socket.onopen") || !strings.Contains(s.Inline, "pending.push(frame)") {
		t.Error("frames sent while the socket connects should be queued and flushed on open")
	}
}

func TestConfigScriptEscapesValues(t *testing.T) {
	s, err := ConfigScript("c", ScriptConfig{HandleName: "</script><b>", CanvasID: "canvas"})
	if err != nil {
		t.Fatalf("ConfigScript: %v", err)
	}
	if strings.Contains(s.Inline, "</script>") {
		t.Error("handle name must not be able to close the script element")
	}
}
