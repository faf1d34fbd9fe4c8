package frame

import "sort"

// Namespace is the shared variable stash between the widget and the
// algorithm runner. The widget registers the keys it owns at setup and
// writes its array back while editing; the runner mutates values between
// steps and snapshots them into Frames.
//
// A Namespace is not safe for concurrent use; it lives on the UI event
// loop like the widget itself.
type Namespace struct {
	vars  map[string]any
	order []string
}

// NewNamespace returns an empty namespace.
func NewNamespace() *Namespace {
	return &Namespace{vars: make(map[string]any)}
}

// Register declares a variable with an initial value. Registering an
// existing name resets its value.
func (n *Namespace) Register(name string, initial any) {
	if _, ok := n.vars[name]; !ok {
		n.order = append(n.order, name)
	}
	n.vars[name] = normalize(initial)
}

// Set assigns a value, registering the name if needed.
func (n *Namespace) Set(name string, v any) {
	n.Register(name, v)
}

// Get returns the current value of a variable.
func (n *Namespace) Get(name string) (any, bool) {
	v, ok := n.vars[name]
	return v, ok
}

// Names returns the registered names in registration order.
func (n *Namespace) Names() []string {
	out := make([]string, len(n.order))
	copy(out, n.order)
	return out
}

// Snapshot freezes the current values into a Frame.
func (n *Namespace) Snapshot() Frame {
	return New(n.vars)
}

// Reset sets every registered variable back to nil, keeping the keys.
func (n *Namespace) Reset(keep ...string) {
	kept := make([]string, len(keep))
	copy(kept, keep)
	sort.Strings(kept)
	for _, name := range n.order {
		i := sort.SearchStrings(kept, name)
		if i < len(kept) && kept[i] == name {
			continue
		}
		n.vars[name] = nil
	}
}

// Clone returns an independent copy of the namespace, for handing to a
// runner off the event loop.
func (n *Namespace) Clone() *Namespace {
	c := NewNamespace()
	for _, name := range n.order {
		c.Register(name, n.vars[name])
	}
	return c
}
