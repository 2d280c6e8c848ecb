// Package comments embeds the utterances comment widget into a mount point.
//
// The widget is a third-party script that renders its own UI next to the
// script element. A Mount keeps at most one configuration live under its
// container: any change of Params, and every teardown, removes all children
// of the container before anything else is appended.
package comments

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	// ScriptSrc is the widget client served by utterances.
	ScriptSrc = "https://utteranc.es/client.js"
	// MountID identifies the container the hosting page provides.
	MountID = "comments"
)

// Params configures one widget instance. Changing any field requires a full
// remount.
type Params struct {
	Repo      string
	IssueTerm string
	Label     string
	Theme     string
}

// State is the lifecycle state of a Mount.
type State int

const (
	Unmounted State = iota
	Mounted
)

func (s State) String() string {
	switch s {
	case Mounted:
		return "mounted"
	default:
		return "unmounted"
	}
}

// Event is reported after each transition. Children counts the container's
// child nodes at that moment, or -1 when the container is missing.
type Event struct {
	State    State
	Params   Params
	Children int
}

// Option configures a Mount.
type Option func(*Mount)

// WithObserver registers fn to be called after every transition.
func WithObserver(fn func(Event)) Option {
	return func(m *Mount) {
		m.observe = fn
	}
}

// Mount manages the widget under the element with the given id in doc.
// A Mount is owned by a single render and is not safe for concurrent use.
type Mount struct {
	doc     *html.Node
	id      string
	state   State
	params  Params
	observe func(Event)
}

// New returns an unmounted Mount for the element with id inside doc.
func New(doc *html.Node, id string, opts ...Option) *Mount {
	m := &Mount{doc: doc, id: id}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State reports the current lifecycle state.
func (m *Mount) State() State { return m.state }

// Params reports the parameters of the live configuration.
func (m *Mount) Params() Params { return m.params }

// Activate brings the widget to configuration p. Re-activating with the
// current params is a no-op; different params tear the old widget down
// first. If the container is missing the append is silently skipped.
func (m *Mount) Activate(p Params) {
	if m.state == Mounted {
		if m.params == p {
			return
		}
		m.Teardown()
	}

	container := m.container()
	if container != nil {
		container.AppendChild(Script(p))
	}
	m.params = p
	m.state = Mounted
	m.notify(container)
}

// Teardown removes every child of the container, including whatever the
// widget script rendered there, and returns to Unmounted.
func (m *Mount) Teardown() {
	container := m.container()
	if container != nil {
		for c := container.FirstChild; c != nil; c = container.FirstChild {
			container.RemoveChild(c)
		}
	}
	m.params = Params{}
	m.state = Unmounted
	m.notify(container)
}

func (m *Mount) container() *html.Node {
	return FindByID(m.doc, m.id)
}

func (m *Mount) notify(container *html.Node) {
	if m.observe == nil {
		return
	}
	n := -1
	if container != nil {
		n = 0
		for c := container.FirstChild; c != nil; c = c.NextSibling {
			n++
		}
	}
	m.observe(Event{State: m.state, Params: m.params, Children: n})
}

// Script builds the async, cross-origin script element that loads the widget.
func Script(p Params) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     "script",
		DataAtom: atom.Script,
		Attr: []html.Attribute{
			{Key: "src", Val: ScriptSrc},
			{Key: "async", Val: ""},
			{Key: "repo", Val: p.Repo},
			{Key: "issue-term", Val: p.IssueTerm},
			{Key: "label", Val: p.Label},
			{Key: "theme", Val: p.Theme},
			{Key: "crossorigin", Val: "anonymous"},
		},
	}
}

// FindByID returns the first element under n (n included) whose id is id.
func FindByID(n *html.Node, id string) *html.Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := FindByID(c, id); found != nil {
			return found
		}
	}
	return nil
}
