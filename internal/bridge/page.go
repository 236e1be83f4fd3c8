package bridge

// PageElement is an element the server-rendered page shell declares.
type PageElement struct {
	id     string
	hidden bool
}

func (e *PageElement) ID() string            { return e.id }
func (e *PageElement) Hidden() bool          { return e.hidden }
func (e *PageElement) SetHidden(hidden bool) { e.hidden = hidden }

// PageHost records the mutations a bridge makes while one page is rendered,
// so the template can emit the resulting document.
type PageHost struct {
	elements map[string]*PageElement
	scripts  []Script
}

// NewPageHost returns a host holding the given elements. Every element
// starts hidden, matching the shell markup.
func NewPageHost(ids ...string) *PageHost {
	h := &PageHost{elements: make(map[string]*PageElement, len(ids))}
	for _, id := range ids {
		h.elements[id] = &PageElement{id: id, hidden: true}
	}
	return h
}

// ElementByID implements Host.
func (h *PageHost) ElementByID(id string) Element {
	el, ok := h.elements[id]
	if !ok {
		return nil
	}
	return el
}

// HasScript implements Host.
func (h *PageHost) HasScript(id string) bool {
	for _, s := range h.scripts {
		if s.ID == id {
			return true
		}
	}
	return false
}

// InjectScript implements Host.
func (h *PageHost) InjectScript(s Script) {
	h.scripts = append(h.scripts, s)
}

// RemoveScript implements Host.
func (h *PageHost) RemoveScript(id string) {
	kept := h.scripts[:0]
	for _, s := range h.scripts {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	h.scripts = kept
}

// Scripts returns the injected scripts in injection order.
func (h *PageHost) Scripts() []Script {
	return append([]Script(nil), h.scripts...)
}

// Hidden reports whether the element is hidden; unknown ids are hidden.
func (h *PageHost) Hidden(id string) bool {
	el, ok := h.elements[id]
	return !ok || el.hidden
}
