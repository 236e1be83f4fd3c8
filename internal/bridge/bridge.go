// Package bridge attaches a page-supplied canvas to an externally loaded
// rendering module for as long as the demo page is mounted.
//
// Loading the module and showing its canvas are separate operations: the
// loader script is injected once per document and never removed, while the
// canvas and the inline configuration are cycled on every visit.
package bridge

import (
	"errors"
	"fmt"
)

// ErrCanvasMissing is returned by Activate when the host has no element with
// the configured canvas id.
var ErrCanvasMissing = errors.New("canvas element not found")

// Options configure a Bridge.
type Options struct {
	CanvasID string
	Loader   Script // external module loader; injected at most once
	Config   Script // inline configuration; removed on Deactivate
}

// Bridge drives the attach/detach lifecycle against a Host. It is not safe
// for concurrent use; the page shell mounts one route at a time.
type Bridge struct {
	host   Host
	handle *Handle
	opts   Options

	active         bool
	configInjected bool
	resize         bool
	pointerLock    bool
}

// New returns an inactive bridge. Pointer lock starts on and resize off,
// matching the demo page's checkboxes.
func New(host Host, handle *Handle, opts Options) *Bridge {
	return &Bridge{host: host, handle: handle, opts: opts, pointerLock: true}
}

// Handle returns the attachment slot the bridge publishes the canvas on.
func (b *Bridge) Handle() *Handle { return b.handle }

// Active reports whether the demo page is currently mounted.
func (b *Bridge) Active() bool { return b.active }

// Activate publishes the canvas on the handle, makes it visible, and ensures
// the module is loaded. Activating an active bridge is a no-op.
func (b *Bridge) Activate() error {
	if b.active {
		return nil
	}
	canvas := b.host.ElementByID(b.opts.CanvasID)
	if canvas == nil {
		return fmt.Errorf("activating demo: %w (id %q)", ErrCanvasMissing, b.opts.CanvasID)
	}

	b.handle.attach(canvas)
	canvas.SetHidden(false)
	b.EnsureLoaded()
	b.active = true
	return nil
}

// EnsureLoaded injects the inline configuration and the loader script if
// their markers are absent. It reports whether the loader was injected by
// this call.
func (b *Bridge) EnsureLoaded() bool {
	if b.opts.Config.ID != "" && !b.host.HasScript(b.opts.Config.ID) {
		b.host.InjectScript(b.opts.Config)
		b.configInjected = true
	}
	if b.opts.Loader.ID == "" || b.host.HasScript(b.opts.Loader.ID) {
		return false
	}
	b.host.InjectScript(b.opts.Loader)
	return true
}

// Deactivate hides the canvas and removes the inline configuration this
// bridge injected. The loader stays in place: loading it again would
// redefine the module.
func (b *Bridge) Deactivate() {
	if canvas := b.host.ElementByID(b.opts.CanvasID); canvas != nil {
		canvas.SetHidden(true)
	}
	if b.configInjected {
		b.host.RemoveScript(b.opts.Config.ID)
		b.configInjected = false
	}
	b.handle.detach()
	b.active = false
}

// ToggleResize flips whether fullscreen resizes the canvas and returns the
// new setting. ok is false, and nothing changes, while inactive.
func (b *Bridge) ToggleResize() (resize, ok bool) {
	if !b.active {
		return b.resize, false
	}
	b.resize = !b.resize
	return b.resize, true
}

// TogglePointerLock flips whether fullscreen locks and hides the pointer.
// ok is false, and nothing changes, while inactive.
func (b *Bridge) TogglePointerLock() (locked, ok bool) {
	if !b.active {
		return b.pointerLock, false
	}
	b.pointerLock = !b.pointerLock
	return b.pointerLock, true
}

// RequestFullscreen forwards to the module's fullscreen capability with the
// current toggles. It reports whether the module was called.
func (b *Bridge) RequestFullscreen() bool {
	if !b.active || b.handle.caps.RequestFullscreen == nil {
		return false
	}
	b.handle.caps.RequestFullscreen(b.pointerLock, b.resize)
	return true
}
