package bridge

// Element is the part of a DOM node the bridge touches.
type Element interface {
	ID() string
	Hidden() bool
	SetHidden(hidden bool)
}

// Script is a script element the bridge may inject. ID doubles as the
// presence marker checked before injecting.
type Script struct {
	ID     string
	Src    string
	Inline string
}

// Host is the document the bridge runs against. The page shell supplies the
// elements; the bridge only looks them up, toggles them, and adds or removes
// scripts.
type Host interface {
	ElementByID(id string) Element
	HasScript(id string) bool
	InjectScript(s Script)
	RemoveScript(id string)
}
