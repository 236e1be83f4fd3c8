package bridge

// Capabilities are the optional entry points an external module exposes on
// its handle. A nil field means the module does not provide it.
type Capabilities struct {
	RequestFullscreen func(lockPointer, resizeCanvas bool)
}

// Handle is the attachment slot an external module inspects to find its
// render target. In the browser it is published under a fixed global name;
// here it is passed explicitly to the bridge that fills it.
type Handle struct {
	name   string
	canvas Element
	caps   Capabilities
}

// NewHandle returns a handle exposed under the given global name.
func NewHandle(name string, caps Capabilities) *Handle {
	return &Handle{name: name, caps: caps}
}

// Name is the global identifier the module's loader looks for.
func (h *Handle) Name() string { return h.name }

// Canvas returns the attached canvas, or nil when detached.
func (h *Handle) Canvas() Element { return h.canvas }

// SetCapabilities replaces the module's capabilities, as happens when the
// module finishes loading after the canvas was attached.
func (h *Handle) SetCapabilities(caps Capabilities) { h.caps = caps }

func (h *Handle) attach(el Element) { h.canvas = el }

func (h *Handle) detach() { h.canvas = nil }
