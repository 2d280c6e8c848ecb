package metadata

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// Head renders out as <title> and <meta> tags for the document head.
func Head(out Output) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<title>")
		b.WriteString(templ.EscapeString(out.Title))
		b.WriteString("</title>")
		writeMeta(&b, "name", "description", out.Description)
		if out.OpenGraph.URL != "" {
			b.WriteString(`<link rel="canonical" href="`)
			b.WriteString(templ.EscapeString(out.OpenGraph.URL))
			b.WriteString(`">`)
		}

		og := out.OpenGraph
		writeMeta(&b, "property", "og:title", og.Title)
		writeMeta(&b, "property", "og:description", og.Description)
		writeMeta(&b, "property", "og:url", og.URL)
		writeMeta(&b, "property", "og:site_name", og.SiteName)
		writeMeta(&b, "property", "og:image", og.Images)
		writeMeta(&b, "property", "og:locale", og.Locale)
		if og.Type != "" {
			writeMeta(&b, "property", "og:type", og.Type)
		}

		tw := out.Twitter
		writeMeta(&b, "name", "twitter:card", tw.Card)
		writeMeta(&b, "name", "twitter:title", tw.Title)
		writeMeta(&b, "name", "twitter:description", tw.Description)
		writeMeta(&b, "name", "twitter:image", tw.Images)

		for _, key := range OtherKeys {
			v, ok := out.Other[key]
			if !ok {
				continue
			}
			writeMeta(&b, "name", key, fmt.Sprint(v))
		}

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeMeta(b *strings.Builder, attr, key, content string) {
	b.WriteString("<meta ")
	b.WriteString(attr)
	b.WriteString(`="`)
	b.WriteString(templ.EscapeString(key))
	b.WriteString(`" content="`)
	b.WriteString(templ.EscapeString(content))
	b.WriteString(`">`)
}
