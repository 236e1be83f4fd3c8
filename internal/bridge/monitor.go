package bridge

import (
	"regexp"
	"strconv"
	"strings"
)

// ReloadMessage is shown once the module has failed. The compute context
// cannot be resumed, so the only way forward is a reload.
const ReloadMessage = "The demo has stopped and cannot recover. A full page reload is required."

// Reason identifies why the module failed.
type Reason string

const (
	ReasonError       Reason = "error"
	ReasonContextLost Reason = "webglcontextlost"
)

// Sink receives the updates a Monitor lets through.
type Sink interface {
	Status(text string)
	Progress(done, total int)
	Print(line string)
	Fatal(reason Reason, message string)
}

// Monitor applies the loader's reporting rules: repeated status text is
// dropped, "Label (n/m)" status text drives the progress bar, and after the
// first failure every status and progress update is suppressed.
type Monitor struct {
	sink   Sink
	last   string
	failed bool
	reason Reason
}

// NewMonitor returns a healthy Monitor reporting to sink.
func NewMonitor(sink Sink) *Monitor {
	return &Monitor{sink: sink}
}

// Failed reports whether Fail has been called.
func (m *Monitor) Failed() bool { return m.failed }

// Reason returns the first failure reason, or "" while healthy.
func (m *Monitor) Reason() Reason { return m.reason }

// SetStatus forwards a status line. It reports whether the update reached
// the sink.
func (m *Monitor) SetStatus(text string) bool {
	if m.failed || text == m.last {
		return false
	}
	m.last = text

	label, done, total, ok := parseStatus(text)
	if ok {
		m.sink.Status(label)
		m.sink.Progress(done, total)
		return true
	}
	m.sink.Status(text)
	return true
}

// Progress forwards a dependency count the way the loader reports it:
// remaining out of the most ever outstanding.
func (m *Monitor) Progress(done, total int) bool {
	if m.failed {
		return false
	}
	m.sink.Progress(done, total)
	return true
}

// Print forwards module output. Output is not status and survives failure.
func (m *Monitor) Print(line string) {
	m.sink.Print(line)
}

// Fail surfaces the reload notice. Only the first call reaches the sink.
func (m *Monitor) Fail(reason Reason) bool {
	if m.failed {
		return false
	}
	m.failed = true
	m.reason = reason
	m.sink.Fatal(reason, ReloadMessage)
	return true
}

var statusProgress = regexp.MustCompile(`^([^(]+)\((\d+(?:\.\d+)?)/(\d+)\)\s*$`)

// parseStatus splits "Downloading data... (3/10)" into its label and counts.
func parseStatus(text string) (label string, done, total int, ok bool) {
	m := statusProgress.FindStringSubmatch(text)
	if m == nil {
		return "", 0, 0, false
	}
	d, err := strconv.ParseFloat(m[2], 64)
	if err != nil {
		return "", 0, 0, false
	}
	t, err := strconv.Atoi(m[3])
	if err != nil {
		return "", 0, 0, false
	}
	return strings.TrimSpace(m[1]), int(d), t, true
}
