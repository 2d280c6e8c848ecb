package comments

import (
	"context"
	"io"

	"github.com/a-h/templ"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Container returns an empty mount point element.
func Container() *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
		Attr: []html.Attribute{
			{Key: "id", Val: MountID},
			{Key: "class", Val: "mt-8"},
		},
	}
}

// Section renders the comments container with the widget mounted for p.
// The mount lives for the duration of the render and is torn down after the
// markup has been written.
func Section(p Params, opts ...Option) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		root := Container()
		m := New(root, MountID, opts...)
		m.Activate(p)
		defer m.Teardown()
		return html.Render(w, root)
	})
}
